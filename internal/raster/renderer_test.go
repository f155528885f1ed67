package raster

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

var (
	red  = color.NRGBA{R: 255, A: 255}
	blue = color.NRGBA{B: 255, A: 255}
)

// halves is w×h, red on the left half and blue on the right.
func halves(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x < w/2 {
				img.SetNRGBA(x, y, red)
			} else {
				img.SetNRGBA(x, y, blue)
			}
		}
	}
	return img
}

func identity() Placement {
	return Placement{Scale: 1, FlipX: 1, FlipY: 1}
}

func TestRender_IdentityCentered(t *testing.T) {
	fb := NewFrameBuffer(8, 8)
	Render(fb, halves(4, 4), identity(), Nearest)

	img := fb.Image()
	assert.Equal(t, color.NRGBA{}, img.NRGBAAt(1, 1))
	assert.Equal(t, red, img.NRGBAAt(2, 2))
	assert.Equal(t, blue, img.NRGBAAt(5, 5))
	assert.Equal(t, color.NRGBA{}, img.NRGBAAt(6, 6))
}

func TestRender_MirrorX(t *testing.T) {
	fb := NewFrameBuffer(4, 2)
	p := identity()
	p.FlipX = -1
	Render(fb, halves(4, 2), p, Nearest)

	assert.Equal(t, blue, fb.Image().NRGBAAt(0, 0))
	assert.Equal(t, red, fb.Image().NRGBAAt(3, 1))
}

func TestRender_Rotate90(t *testing.T) {
	fb := NewFrameBuffer(2, 4)
	p := identity()
	p.RotationDeg = 90
	Render(fb, halves(4, 2), p, Nearest)

	// clockwise quarter turn: the left half ends up on top
	assert.Equal(t, red, fb.Image().NRGBAAt(1, 0))
	assert.Equal(t, blue, fb.Image().NRGBAAt(1, 3))
}

func TestRender_TranslateInCanvasPixels(t *testing.T) {
	fb := NewFrameBuffer(8, 4)
	p := identity()
	p.TranslateX = 2
	Render(fb, halves(4, 4), p, Nearest)

	assert.Equal(t, color.NRGBA{}, fb.Image().NRGBAAt(3, 0))
	assert.Equal(t, red, fb.Image().NRGBAAt(4, 0))
	assert.Equal(t, blue, fb.Image().NRGBAAt(7, 0))
}

func TestRender_ClearsPreviousFrame(t *testing.T) {
	fb := NewFrameBuffer(8, 8)
	Render(fb, halves(4, 4), identity(), Bilinear)
	Render(fb, nil, identity(), Bilinear)
	for _, v := range fb.Image().Pix {
		require.Zero(t, v)
	}
}

func TestRender_Idempotent(t *testing.T) {
	fb := NewFrameBuffer(16, 9)
	p := Placement{Scale: 0.7, RotationDeg: 33, FlipX: -1, FlipY: 1, TranslateX: 3, TranslateY: -2}
	src := halves(10, 6)
	Render(fb, src, p, Bilinear)
	first := fb.Snapshot()
	Render(fb, src, p, Bilinear)
	assert.Equal(t, first.Pix, fb.Image().Pix)
}

func TestPlacementMatrix_ImageCenterLandsOnOffset(t *testing.T) {
	p := Placement{Scale: 0.25, RotationDeg: 0, FlipX: -1, FlipY: -1, TranslateX: 10, TranslateY: -6}
	m := PlacementMatrix(200, 100, 40, 20, p)
	c := m.Apply(r2.Vec{X: 20, Y: 10})
	// mirror applies to the stored offset too
	assert.InDelta(t, 100-10.0, c.X, 1e-9)
	assert.InDelta(t, 50+6.0, c.Y, 1e-9)

	corner := m.Apply(r2.Vec{})
	assert.InDelta(t, 90+5.0, corner.X, 1e-9)
	assert.InDelta(t, 56+2.5, corner.Y, 1e-9)
}

func TestFrameBuffer_Resize(t *testing.T) {
	fb := NewFrameBuffer(2, 2)
	fb.Image().Pix[0] = 9
	fb.Resize(5, 3)
	assert.Equal(t, 5, fb.Width())
	assert.Equal(t, 3, fb.Height())
	assert.Zero(t, fb.Image().Pix[0])
}

func TestSample(t *testing.T) {
	tex := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	tex.SetNRGBA(0, 0, color.NRGBA{A: 255})
	tex.SetNRGBA(1, 0, color.NRGBA{R: 255, G: 255, B: 255, A: 255})

	assert.Equal(t, color.NRGBA{R: 128, G: 128, B: 128, A: 255}, Sample(tex, 1.0, 0.5))
	assert.Equal(t, color.NRGBA{A: 255}, Sample(tex, -3, 0.5))
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, Sample(tex, 9, 9))
}

func TestParseQuality(t *testing.T) {
	q, err := ParseQuality("")
	require.NoError(t, err)
	assert.Equal(t, Bilinear, q)

	q, err = ParseQuality("Nearest")
	require.NoError(t, err)
	assert.Equal(t, Nearest, q)

	_, err = ParseQuality("lanczos")
	assert.Error(t, err)
}
