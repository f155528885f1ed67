// Package transform holds the placement of one image on a fixed-size canvas
// and turns pointer, touch, wheel and button input into placement changes.
package transform

import (
	"math"

	"canvas-cropper/internal/logging"
	"canvas-cropper/internal/raster"
)

var engLog = logging.Module("transform")

// DefaultMinScale is the scale floor.
const DefaultMinScale = 0.1

// State is the affine placement of the image. Translate is the offset of
// the image center from the canvas center in canvas pixels, expressed in
// the rotated and mirrored frame. Rotation accumulates without wrapping.
type State struct {
	Scale      float64 `json:"scale"`
	Rotation   float64 `json:"rotation_deg"`
	FlipX      float64 `json:"flip_x"`
	FlipY      float64 `json:"flip_y"`
	TranslateX float64 `json:"translate_x"`
	TranslateY float64 `json:"translate_y"`
}

// Identity is the placement right after a load, before fitting.
func Identity() State {
	return State{Scale: 1, FlipX: 1, FlipY: 1}
}

// Placement converts to the renderer's view of the state.
func (s State) Placement() raster.Placement {
	return raster.Placement{
		Scale:       s.Scale,
		RotationDeg: s.Rotation,
		FlipX:       s.FlipX,
		FlipY:       s.FlipY,
		TranslateX:  s.TranslateX,
		TranslateY:  s.TranslateY,
	}
}

func (s State) finite() bool {
	for _, v := range [...]float64{s.Scale, s.Rotation, s.FlipX, s.FlipY, s.TranslateX, s.TranslateY} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// rescaleTranslate multiplies the offset by the scale ratio so a zoom stays
// centered on the canvas rather than on the image.
func (s *State) rescaleTranslate(oldScale float64) {
	ratio := s.Scale / oldScale
	s.TranslateX *= ratio
	s.TranslateY *= ratio
}
