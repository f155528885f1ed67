package imageio

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/HugoSmits86/nativewebp"
)

// Format is an export encoding.
type Format string

const (
	PNG  Format = "png"
	WebP Format = "webp"
)

// ParseFormat accepts "png" or "webp"; empty means PNG.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", PNG:
		return PNG, nil
	case WebP:
		return WebP, nil
	}
	return "", fmt.Errorf("imageio: unknown export format %q", s)
}

// Ext is the file extension including the dot.
func (f Format) Ext() string {
	return "." + string(f)
}

// MIME is the clipboard / download content type.
func (f Format) MIME() string {
	if f == WebP {
		return "image/webp"
	}
	return "image/png"
}

// Encode writes img in the given format. WebP output is lossless.
func Encode(w io.Writer, img image.Image, f Format) error {
	switch f {
	case PNG:
		if err := png.Encode(w, img); err != nil {
			return fmt.Errorf("imageio: png encode: %w", err)
		}
	case WebP:
		if err := nativewebp.Encode(w, img, nil); err != nil {
			return fmt.Errorf("imageio: webp encode: %w", err)
		}
	default:
		return fmt.Errorf("imageio: unknown export format %q", f)
	}
	return nil
}

// ExportName is the download name for an export taken at now, with the
// clock shifted by offsetHours: cropped_image_2006-01-02_15-04-05.png
func ExportName(now time.Time, offsetHours int, f Format) string {
	local := now.UTC().Add(time.Duration(offsetHours) * time.Hour)
	return "cropped_image_" + local.Format("2006-01-02_15-04-05") + f.Ext()
}

// WriteFile encodes img to dir/name, creating dir as needed.
func WriteFile(dir, name string, img image.Image, f Format) (string, error) {
	outPath := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return "", fmt.Errorf("imageio: mkdir: %w", err)
	}
	out, err := os.Create(outPath)
	if err != nil {
		return "", fmt.Errorf("imageio: create %s: %w", outPath, err)
	}
	if err := Encode(out, img, f); err != nil {
		out.Close()
		return "", err
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("imageio: close %s: %w", outPath, err)
	}
	ioLog.Info().Str("path", outPath).Str("format", string(f)).Msg("exported")
	return outPath, nil
}
