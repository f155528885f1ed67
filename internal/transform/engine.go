package transform

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"

	"canvas-cropper/internal/canvassize"
	"canvas-cropper/internal/imageio"
	"canvas-cropper/internal/mathutil"
	"canvas-cropper/internal/raster"

	"gonum.org/v1/gonum/spatial/r2"
)

// ErrNoImage is returned by operations that need a loaded image.
var ErrNoImage = errors.New("transform: no image loaded")

// Options configure an Engine.
type Options struct {
	Device canvassize.DeviceClass
	// Resolution defaults to the device's default resolution.
	Resolution canvassize.Resolution
	// MinScale defaults to DefaultMinScale.
	MinScale float64
	// ZoomStep is the additive step of the zoom buttons. Zero selects
	// 1/max(naturalWidth, naturalHeight) of the loaded image.
	ZoomStep float64
	Quality  raster.Quality
}

// Engine owns one image, its placement and the output buffer. It is not
// safe for concurrent use; input handlers are expected to run one at a
// time.
type Engine struct {
	opts     Options
	res      canvassize.Resolution
	display  canvassize.DisplayBox
	fb       *raster.FrameBuffer
	img      *imageio.Handle
	state    State
	gestures [numDevices]Gesture
}

// New creates an engine with an empty canvas.
func New(opts Options) *Engine {
	if opts.MinScale <= 0 {
		opts.MinScale = DefaultMinScale
	}
	res := opts.Resolution
	if !res.Valid() {
		res = opts.Device.DefaultResolution()
	}
	e := &Engine{
		opts:  opts,
		fb:    raster.NewFrameBuffer(res.Width, res.Height),
		state: Identity(),
	}
	e.res = res
	e.display, _ = canvassize.Display(res, opts.Device)
	return e
}

// State returns a copy of the placement.
func (e *Engine) State() State { return e.state }

// Gesture returns the session of a device class.
func (e *Engine) Gesture(dev Device) Gesture { return e.gestures[dev] }

// HasImage reports whether an image has been loaded.
func (e *Engine) HasImage() bool { return e.img != nil }

// Image returns the loaded handle, or nil.
func (e *Engine) Image() *imageio.Handle { return e.img }

// Resolution is the logical buffer size.
func (e *Engine) Resolution() canvassize.Resolution { return e.res }

// Display is the on-screen box pointer coordinates are measured in.
func (e *Engine) Display() canvassize.DisplayBox { return e.display }

// Frame is the live output buffer.
func (e *Engine) Frame() *image.NRGBA { return e.fb.Image() }

// SetResolution resizes the buffer to exactly w×h and re-renders. The image
// is not refit. Non-positive sizes leave everything unchanged.
func (e *Engine) SetResolution(w, h int) error {
	res := canvassize.Resolution{Width: w, Height: h}
	box, err := canvassize.Display(res, e.opts.Device)
	if err != nil {
		engLog.Warn().Int("width", w).Int("height", h).Msg("ignoring invalid resolution")
		return err
	}
	e.res = res
	e.display = box
	e.fb.Resize(w, h)
	engLog.Debug().
		Stringer("resolution", res).
		Float64("display_w", box.Width).
		Float64("display_h", box.Height).
		Msg("resolution changed")
	e.render()
	return nil
}

// SetAspect keeps the current width and applies a w:h preset.
func (e *Engine) SetAspect(w, h int) error {
	res, err := canvassize.ForAspect(e.res.Width, w, h)
	if err != nil {
		engLog.Warn().Err(err).Msg("ignoring aspect preset")
		return err
	}
	return e.SetResolution(res.Width, res.Height)
}

// Load decodes r and installs it. On failure the previous image and
// placement are kept.
func (e *Engine) Load(ctx context.Context, r io.Reader) error {
	h, err := imageio.Decode(ctx, r)
	if err != nil {
		engLog.Warn().Err(err).Msg("load failed")
		return err
	}
	e.SetImage(h)
	return nil
}

// SetImage installs a decoded image, resets the placement and fits it.
func (e *Engine) SetImage(h *imageio.Handle) {
	if h == nil {
		return
	}
	e.img = h
	e.ResetToFit()
}

// ResetToFit resets rotation, mirror and offset and scales the image to
// fit inside the canvas on its constraining axis. The fit scale may be
// below MinScale; the floor only applies to later zooming. Open gesture
// sessions are dropped.
func (e *Engine) ResetToFit() {
	if e.img == nil {
		return
	}
	e.state = Identity()
	e.state.Scale = FitScale(e.img.NaturalWidth(), e.img.NaturalHeight(), e.res)
	e.gestures = [numDevices]Gesture{}
	engLog.Debug().Float64("scale", e.state.Scale).Msg("fit to canvas")
	e.render()
}

// FitScale is the scale that fits an image of w×h inside res without
// cropping.
func FitScale(w, h int, res canvassize.Resolution) float64 {
	imageAspect := float64(w) / float64(h)
	canvasAspect := float64(res.Width) / float64(res.Height)
	if imageAspect > canvasAspect {
		return float64(res.Width) / float64(w)
	}
	return float64(res.Height) / float64(h)
}

func finiteVec(vs ...r2.Vec) bool {
	for _, v := range vs {
		if math.IsNaN(v.X) || math.IsNaN(v.Y) || math.IsInf(v.X, 0) || math.IsInf(v.Y, 0) {
			return false
		}
	}
	return true
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// commit applies next if it keeps every field finite.
func (e *Engine) commit(next State) {
	if !next.finite() {
		engLog.Warn().Interface("state", next).Msg("dropping non-finite update")
		return
	}
	e.state = next
	e.render()
}

func (e *Engine) toLocal(p r2.Vec) r2.Vec {
	return mathutil.ToLocal(p, e.state.Rotation, e.state.FlipX, e.state.FlipY)
}

// Pan moves the image by a display-space pointer delta, converted into the
// rotated and mirrored frame. The delta is not divided by scale.
func (e *Engine) Pan(delta r2.Vec) {
	if e.img == nil || !finiteVec(delta) {
		return
	}
	l := e.toLocal(delta)
	next := e.state
	next.TranslateX += l.X
	next.TranslateY += l.Y
	e.commit(next)
}

// RotateDrag adds a pointer angle delta in degrees.
func (e *Engine) RotateDrag(deltaDeg float64) {
	if e.img == nil || !finite(deltaDeg) {
		return
	}
	next := e.state
	next.Rotation += deltaDeg
	e.commit(next)
}

// DiscreteRotate adds a fixed step, normally ±90.
func (e *Engine) DiscreteRotate(deg float64) {
	e.RotateDrag(deg)
}

func (e *Engine) RotateLeft()  { e.DiscreteRotate(-90) }
func (e *Engine) RotateRight() { e.DiscreteRotate(90) }

// Axis selects a mirror axis.
type Axis int

const (
	Horizontal Axis = iota // mirrors X
	Vertical               // mirrors Y
)

// Flip toggles a mirror. Translate and scale are untouched; drag direction
// under the mirror is handled by the local-frame conversion.
func (e *Engine) Flip(axis Axis) {
	if e.img == nil {
		return
	}
	next := e.state
	if axis == Vertical {
		next.FlipY = -next.FlipY
	} else {
		next.FlipX = -next.FlipX
	}
	e.commit(next)
}

// Anchor is the fixed point of a zoom.
type Anchor int

const (
	// AnchorCenter keeps the canvas center fixed.
	AnchorCenter Anchor = iota
	// AnchorCursor keeps the image point under the cursor fixed.
	AnchorCursor
)

// Zoom multiplies scale by factor. at is the cursor in display coordinates
// and only matters for AnchorCursor.
func (e *Engine) Zoom(factor float64, anchor Anchor, at r2.Vec) {
	if e.img == nil || !finite(factor) || factor <= 0 {
		return
	}
	old := e.state.Scale
	next := e.state
	next.Scale *= factor
	if next.Scale < e.opts.MinScale {
		next.Scale = e.opts.MinScale
	}

	switch anchor {
	case AnchorCursor:
		if !finiteVec(at) {
			return
		}
		// q is the cursor relative to the canvas center in the frame the
		// offset lives in; keep q - offset proportional to scale.
		q := e.toLocal(r2.Sub(e.displayToBuffer(at), e.center()))
		k := next.Scale / old
		t := r2.Vec{X: next.TranslateX, Y: next.TranslateY}
		t = r2.Sub(q, r2.Scale(k, r2.Sub(q, t)))
		next.TranslateX, next.TranslateY = t.X, t.Y
	default:
		next.rescaleTranslate(old)
	}
	e.commit(next)
}

// Wheel zooms around the canvas center: out by 0.9 for positive deltaY,
// in by 1.1 otherwise.
func (e *Engine) Wheel(deltaY float64) {
	factor := 1.1
	if deltaY > 0 {
		factor = 0.9
	}
	e.Zoom(factor, AnchorCenter, r2.Vec{})
}

// ZoomStep is the additive step of the zoom buttons for the loaded image.
func (e *Engine) ZoomStep() float64 {
	if e.opts.ZoomStep > 0 || e.img == nil {
		return e.opts.ZoomStep
	}
	return 1 / float64(max(e.img.NaturalWidth(), e.img.NaturalHeight()))
}

// ZoomIn adds one button step and keeps the zoom centered.
func (e *Engine) ZoomIn() {
	e.stepZoom(e.ZoomStep())
}

// ZoomOut subtracts one button step, never going below the floor.
func (e *Engine) ZoomOut() {
	e.stepZoom(-e.ZoomStep())
}

func (e *Engine) stepZoom(step float64) {
	if e.img == nil {
		return
	}
	old := e.state.Scale
	next := e.state
	next.Scale += step
	if next.Scale < e.opts.MinScale {
		next.Scale = e.opts.MinScale
	}
	next.rescaleTranslate(old)
	e.commit(next)
}

func (e *Engine) center() r2.Vec {
	return r2.Vec{X: float64(e.res.Width) / 2, Y: float64(e.res.Height) / 2}
}

func (e *Engine) displayCenter() r2.Vec {
	return r2.Vec{X: e.display.Width / 2, Y: e.display.Height / 2}
}

func (e *Engine) displayToBuffer(p r2.Vec) r2.Vec {
	return r2.Vec{
		X: p.X * float64(e.res.Width) / e.display.Width,
		Y: p.Y * float64(e.res.Height) / e.display.Height,
	}
}

// Render redraws the buffer from the current placement. It does not change
// the placement and can be called any number of times.
func (e *Engine) Render() {
	e.render()
}

func (e *Engine) render() {
	if e.img == nil {
		return
	}
	raster.Render(e.fb, e.img.Image(), e.state.Placement(), e.opts.Quality)
}

// ExportRaster returns a copy of the current canvas pixels.
func (e *Engine) ExportRaster() *image.NRGBA {
	return e.fb.Snapshot()
}

// Export encodes the current canvas.
func (e *Engine) Export(w io.Writer, f imageio.Format) error {
	if err := imageio.Encode(w, e.fb.Image(), f); err != nil {
		return fmt.Errorf("transform: export: %w", err)
	}
	return nil
}

// HitTest maps a display-space point to source image pixel coordinates
// through the inverse placement. inside is false off the image.
func (e *Engine) HitTest(p r2.Vec) (src r2.Vec, inside bool) {
	if e.img == nil || !finiteVec(p) {
		return r2.Vec{}, false
	}
	w, h := e.img.NaturalWidth(), e.img.NaturalHeight()
	m := raster.PlacementMatrix(e.res.Width, e.res.Height, w, h, e.state.Placement())
	src = m.Inverse().Apply(e.displayToBuffer(p))
	inside = src.X >= 0 && src.Y >= 0 && src.X < float64(w) && src.Y < float64(h)
	return src, inside
}

// ColorAt samples the source image under a display-space point.
func (e *Engine) ColorAt(p r2.Vec) (color.NRGBA, error) {
	if e.img == nil {
		return color.NRGBA{}, ErrNoImage
	}
	src, inside := e.HitTest(p)
	if !inside {
		return color.NRGBA{}, nil
	}
	return raster.Sample(e.img.Image(), src.X, src.Y), nil
}
