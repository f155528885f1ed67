// Package imageio loads source images into immutable handles and encodes
// the composited canvas for export.
package imageio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"canvas-cropper/internal/logging"

	_ "github.com/ftrvxmtrx/tga"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var ioLog = logging.Module("imageio")

// ErrDecode marks input that is not a readable image.
var ErrDecode = errors.New("imageio: not a decodable image")

// DecodeError carries the decoder's reason. errors.Is(err, ErrDecode) holds.
type DecodeError struct {
	Source string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("imageio: decode %s: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("imageio: decode: %v", e.Err)
}

func (e *DecodeError) Unwrap() []error { return []error{ErrDecode, e.Err} }

// Handle is a decoded raster. It is never mutated after Decode returns;
// loading another image produces a new Handle.
type Handle struct {
	img    *image.NRGBA
	format string
}

// NaturalWidth is the decoded width in pixels.
func (h *Handle) NaturalWidth() int { return h.img.Rect.Dx() }

// NaturalHeight is the decoded height in pixels.
func (h *Handle) NaturalHeight() int { return h.img.Rect.Dy() }

// Image returns the pixels. Callers must treat them as read-only.
func (h *Handle) Image() *image.NRGBA { return h.img }

// Format is the codec name reported by image.Decode ("png", "jpeg", "tga", ...).
func (h *Handle) Format() string { return h.format }

// NewHandle wraps an in-memory image. The pixels are copied.
func NewHandle(src image.Image) (*Handle, error) {
	b := src.Bounds()
	if b.Empty() {
		return nil, &DecodeError{Err: errors.New("empty image")}
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Rect, src, b.Min, draw.Src)
	return &Handle{img: dst, format: "memory"}, nil
}

// Decode reads a whole image from r. The context is checked before and
// after decoding so a superseded load can be dropped by the caller.
func Decode(ctx context.Context, r io.Reader) (*Handle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if img.Bounds().Empty() {
		return nil, &DecodeError{Err: errors.New("zero-sized image")}
	}
	h := &Handle{img: toNRGBA(img), format: format}
	ioLog.Debug().
		Str("format", format).
		Int("width", h.NaturalWidth()).
		Int("height", h.NaturalHeight()).
		Msg("decoded image")
	return h, nil
}

// DecodeBytes decodes an in-memory file.
func DecodeBytes(ctx context.Context, data []byte) (*Handle, error) {
	return Decode(ctx, bytes.NewReader(data))
}

// LoadFile reads and decodes path.
func LoadFile(ctx context.Context, path string) (*Handle, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("imageio: read %s: %w", path, err)
	}
	h, err := DecodeBytes(ctx, raw)
	if err != nil {
		var de *DecodeError
		if errors.As(err, &de) {
			de.Source = path
		}
		return nil, err
	}
	return h, nil
}

// toNRGBA converts any image to a zero-origin NRGBA.
func toNRGBA(src image.Image) *image.NRGBA {
	b := src.Bounds()
	if n, ok := src.(*image.NRGBA); ok && b.Min == (image.Point{}) {
		return n
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	switch src.(type) {
	case *image.YCbCr, *image.Gray:
		// No alpha: draw, then force opaque
		draw.Draw(dst, dst.Rect, src, b.Min, draw.Src)
		for i := 3; i < len(dst.Pix); i += 4 {
			dst.Pix[i] = 255
		}
	default:
		draw.Draw(dst, dst.Rect, src, b.Min, draw.Src)
	}
	return dst
}
