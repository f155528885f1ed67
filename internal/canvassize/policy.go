// Package canvassize derives the on-screen box of the output canvas from its
// logical resolution and the class of device it is shown on.
package canvassize

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"

	"canvas-cropper/internal/mathutil"
)

// ErrInvalidResolution is returned for a non-positive width or height.
var ErrInvalidResolution = errors.New("canvassize: invalid resolution")

// DeviceClass selects the display cap. It is decided by the caller and
// injected; nothing in here inspects the runtime environment.
type DeviceClass int

const (
	Desktop DeviceClass = iota
	Mobile
)

func (d DeviceClass) String() string {
	switch d {
	case Desktop:
		return "desktop"
	case Mobile:
		return "mobile"
	default:
		return "unknown"
	}
}

// ParseDeviceClass accepts "desktop" or "mobile" (case-insensitive).
func ParseDeviceClass(s string) (DeviceClass, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "desktop":
		return Desktop, nil
	case "mobile":
		return Mobile, nil
	}
	return Desktop, fmt.Errorf("canvassize: unknown device class %q", s)
}

// DisplayCap is the longest on-screen edge in display pixels.
func (d DeviceClass) DisplayCap() int {
	if d == Mobile {
		return 384
	}
	return 512
}

// DefaultResolution is the canvas size a fresh editor starts with.
func (d DeviceClass) DefaultResolution() Resolution {
	if d == Mobile {
		return Resolution{Width: 384, Height: 288}
	}
	return Resolution{Width: 512, Height: 384}
}

var mobileUA = regexp.MustCompile(`(?i)Android|webOS|iPhone|iPad|iPod|BlackBerry|IEMobile|Opera Mini`)

// ClassifyUserAgent picks a DeviceClass from a User-Agent string.
func ClassifyUserAgent(ua string) DeviceClass {
	if mobileUA.MatchString(ua) {
		return Mobile
	}
	return Desktop
}

// Resolution is the logical pixel size of the output buffer.
type Resolution struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (r Resolution) Valid() bool {
	return r.Width > 0 && r.Height > 0
}

func (r Resolution) String() string {
	return fmt.Sprintf("%d x %d", r.Width, r.Height)
}

// DisplayBox is the on-screen size of the canvas. It never changes the
// buffer; the buffer is scaled into this box for display.
type DisplayBox struct {
	Width  float64
	Height float64
}

// Display fits res into the device cap along its longer edge, keeping the
// aspect ratio. Edges below the cap are shown at 1:1.
func Display(res Resolution, dev DeviceClass) (DisplayBox, error) {
	if !res.Valid() {
		return DisplayBox{}, fmt.Errorf("%w: %s", ErrInvalidResolution, res)
	}
	maxSize := float64(dev.DisplayCap())
	w, h := float64(res.Width), float64(res.Height)
	aspect := w / h

	if res.Width > res.Height {
		dw := math.Min(w, maxSize)
		return DisplayBox{Width: dw, Height: dw / aspect}, nil
	}
	dh := math.Min(h, maxSize)
	return DisplayBox{Width: dh * aspect, Height: dh}, nil
}

// ForAspect keeps width and derives the height of an aspect preset w:h.
func ForAspect(width, w, h int) (Resolution, error) {
	if width <= 0 || w <= 0 || h <= 0 {
		return Resolution{}, fmt.Errorf("%w: aspect %d:%d at width %d", ErrInvalidResolution, w, h, width)
	}
	height := int(mathutil.RoundHalfUp(float64(width) * (float64(h) / float64(w))))
	res := Resolution{Width: width, Height: height}
	if !res.Valid() {
		return Resolution{}, fmt.Errorf("%w: %s", ErrInvalidResolution, res)
	}
	return res, nil
}

// Square is the resolution of a square preset button.
func Square(size int) Resolution {
	return Resolution{Width: size, Height: size}
}
