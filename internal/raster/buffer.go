// Package raster owns the output pixel buffer and draws a placed image
// into it.
package raster

import "image"

// FrameBuffer is the logical canvas. Its size is the export resolution; how
// large it is shown on screen is decided elsewhere.
type FrameBuffer struct {
	img *image.NRGBA
}

// NewFrameBuffer allocates a transparent w×h buffer.
func NewFrameBuffer(w, h int) *FrameBuffer {
	return &FrameBuffer{img: image.NewNRGBA(image.Rect(0, 0, w, h))}
}

func (fb *FrameBuffer) Width() int  { return fb.img.Rect.Dx() }
func (fb *FrameBuffer) Height() int { return fb.img.Rect.Dy() }

// Resize replaces the buffer with a cleared one of the new size.
func (fb *FrameBuffer) Resize(w, h int) {
	fb.img = image.NewNRGBA(image.Rect(0, 0, w, h))
}

// Clear makes every pixel transparent.
func (fb *FrameBuffer) Clear() {
	clear(fb.img.Pix)
}

// Image exposes the live buffer.
func (fb *FrameBuffer) Image() *image.NRGBA {
	return fb.img
}

// Snapshot copies the current pixels.
func (fb *FrameBuffer) Snapshot() *image.NRGBA {
	out := image.NewNRGBA(fb.img.Rect)
	copy(out.Pix, fb.img.Pix)
	return out
}
