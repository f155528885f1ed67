package transform

import (
	"canvas-cropper/internal/mathutil"

	"gonum.org/v1/gonum/spatial/r2"
)

// StartPan begins a drag at display point p, replacing any gesture of the
// same device class.
func (e *Engine) StartPan(dev Device, p r2.Vec) {
	if e.img == nil || !finiteVec(p) {
		return
	}
	e.gestures[dev] = Gesture{
		Mode:          Panning,
		AnchorLocal:   e.toLocal(p),
		BaseTranslate: r2.Vec{X: e.state.TranslateX, Y: e.state.TranslateY},
	}
	engLog.Debug().Stringer("device", dev).Msg("pan start")
}

// StartRotate begins a rotate drag; the angle is measured around the
// center of the display box.
func (e *Engine) StartRotate(dev Device, p r2.Vec) {
	if e.img == nil || !finiteVec(p) {
		return
	}
	e.gestures[dev] = Gesture{
		Mode:         Rotating,
		AnchorAngle:  mathutil.Angle(r2.Sub(p, e.displayCenter())),
		BaseRotation: e.state.Rotation,
	}
	engLog.Debug().Stringer("device", dev).Msg("rotate start")
}

// StartPinch begins a two-finger gesture with fingers at a and b. Any
// single-pointer session of the device is discarded, anchor included.
// With rotate set the fingers' angle drives rotation, otherwise their
// distance drives scale.
func (e *Engine) StartPinch(dev Device, a, b r2.Vec, rotate bool) {
	if e.img == nil || !finiteVec(a, b) {
		return
	}
	d := r2.Sub(b, a)
	dist := r2.Norm(d)
	e.gestures[dev] = Gesture{
		Mode:                 Pinching,
		PinchRotate:          rotate,
		BaseRotation:         e.state.Rotation,
		InitialPinchDistance: dist,
		InitialPinchAngle:    mathutil.Angle(d),
		PrevPinchDistance:    dist,
	}
	engLog.Debug().Stringer("device", dev).Bool("rotate", rotate).Float64("distance", dist).Msg("pinch start")
}

// Move feeds a single-pointer position to the device's gesture. It does
// nothing while idle or pinching.
func (e *Engine) Move(dev Device, p r2.Vec) {
	if e.img == nil || !finiteVec(p) {
		return
	}
	g := e.gestures[dev]
	switch g.Mode {
	case Panning:
		cur := e.toLocal(p)
		next := e.state
		next.TranslateX = g.BaseTranslate.X + (cur.X - g.AnchorLocal.X)
		next.TranslateY = g.BaseTranslate.Y + (cur.Y - g.AnchorLocal.Y)
		e.commit(next)
	case Rotating:
		angle := mathutil.Angle(r2.Sub(p, e.displayCenter()))
		next := e.state
		next.Rotation = g.BaseRotation + mathutil.Rad2Deg(angle-g.AnchorAngle)
		e.commit(next)
	}
}

// MovePinch feeds both finger positions to a pinch gesture. Pinch zoom
// scales by the ratio to the previous frame's distance and, unlike the
// wheel, leaves the offset alone.
func (e *Engine) MovePinch(dev Device, a, b r2.Vec) {
	if e.img == nil || !finiteVec(a, b) {
		return
	}
	g := &e.gestures[dev]
	if g.Mode != Pinching {
		return
	}
	d := r2.Sub(b, a)
	dist := r2.Norm(d)

	next := e.state
	if g.PinchRotate {
		next.Rotation = g.BaseRotation + mathutil.Rad2Deg(mathutil.Angle(d)-g.InitialPinchAngle)
	} else if g.PrevPinchDistance > 0 {
		next.Scale *= dist / g.PrevPinchDistance
		if next.Scale < e.opts.MinScale {
			next.Scale = e.opts.MinScale
		}
	}
	g.PrevPinchDistance = dist
	e.commit(next)
}

// EndGesture clears the device's session, including the pinch distance.
func (e *Engine) EndGesture(dev Device) {
	if e.gestures[dev].Active() {
		engLog.Debug().Stringer("device", dev).Stringer("mode", e.gestures[dev].Mode).Msg("gesture end")
	}
	e.gestures[dev] = Gesture{}
}
