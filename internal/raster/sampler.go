package raster

import (
	"image"
	"image/color"
	"math"
)

// Sample performs bilinear filtering at pixel-space (x, y), where pixel
// centers sit at half-integers. Coordinates are clamped to the edge.
// Accesses tex.Pix directly for performance.
func Sample(tex *image.NRGBA, x, y float64) color.NRGBA {
	w := tex.Rect.Dx()
	h := tex.Rect.Dy()

	fx := clampf(x-0.5, 0, float64(w-1))
	fy := clampf(y-0.5, 0, float64(h-1))
	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	x1 := min(x0+1, w-1)
	y1 := min(y0+1, h-1)
	dx := fx - float64(x0)
	dy := fy - float64(y0)

	stride := tex.Stride
	pix := tex.Pix

	// Four texels
	i00 := y0*stride + x0*4
	i10 := y0*stride + x1*4
	i01 := y1*stride + x0*4
	i11 := y1*stride + x1*4

	w00 := (1 - dx) * (1 - dy)
	w10 := dx * (1 - dy)
	w01 := (1 - dx) * dy
	w11 := dx * dy

	var out [4]uint8
	for k := 0; k < 4; k++ {
		v := float64(pix[i00+k])*w00 + float64(pix[i10+k])*w10 + float64(pix[i01+k])*w01 + float64(pix[i11+k])*w11
		out[k] = uint8(v + 0.5)
	}
	return color.NRGBA{R: out[0], G: out[1], B: out[2], A: out[3]}
}

func clampf(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
