package raster

import (
	"fmt"
	"image"
	"strings"

	"canvas-cropper/internal/mathutil"

	"golang.org/x/image/draw"
)

// Quality picks the resampling kernel.
type Quality int

const (
	Bilinear Quality = iota
	Nearest
)

// ParseQuality reads "bilinear" (the default for "") or "nearest".
func ParseQuality(s string) (Quality, error) {
	switch strings.ToLower(s) {
	case "", "bilinear":
		return Bilinear, nil
	case "nearest":
		return Nearest, nil
	}
	return Bilinear, fmt.Errorf("raster: unknown quality %q", s)
}

func (q Quality) transformer() draw.Transformer {
	if q == Nearest {
		return draw.NearestNeighbor
	}
	return draw.BiLinear
}

// Placement is the affine state of the image on the canvas. Translate is
// the offset of the image center from the canvas center.
type Placement struct {
	Scale       float64
	RotationDeg float64
	FlipX       float64
	FlipY       float64
	TranslateX  float64
	TranslateY  float64
}

// PlacementMatrix maps source pixel coordinates to canvas coordinates. The
// composition order is fixed: move to the canvas center, rotate, scale with
// mirror, then draw the image centered and shifted by translate/scale.
// Swapping rotate and scale changes the result once a mirror is applied.
func PlacementMatrix(canvasW, canvasH, imgW, imgH int, p Placement) mathutil.Mat3 {
	return mathutil.Translate(float64(canvasW)/2, float64(canvasH)/2).
		Then(mathutil.Rotate(mathutil.Deg2Rad(p.RotationDeg))).
		Then(mathutil.Scale(p.Scale*p.FlipX, p.Scale*p.FlipY)).
		Then(mathutil.Translate(
			-float64(imgW)/2+p.TranslateX/p.Scale,
			-float64(imgH)/2+p.TranslateY/p.Scale,
		))
}

// Render clears fb and draws src with placement p. It only writes to fb.
func Render(fb *FrameBuffer, src *image.NRGBA, p Placement, q Quality) {
	fb.Clear()
	if src == nil {
		return
	}
	m := PlacementMatrix(fb.Width(), fb.Height(), src.Rect.Dx(), src.Rect.Dy(), p)
	q.transformer().Transform(fb.img, m.Aff3(), src, src.Bounds(), draw.Over, nil)
}
