// Package input adapts raw mouse, touch, wheel and button events to engine
// calls. Positions are element-relative display coordinates.
package input

import (
	"fmt"

	"canvas-cropper/internal/logging"
	"canvas-cropper/internal/transform"

	"gonum.org/v1/gonum/spatial/r2"
)

var inLog = logging.Module("input")

// Phase is the stage of a raw event.
type Phase int

const (
	PhaseDown Phase = iota
	PhaseMove
	PhaseUp
	PhaseCancel
	PhaseWheel
)

func (p Phase) String() string {
	switch p {
	case PhaseDown:
		return "down"
	case PhaseMove:
		return "move"
	case PhaseUp:
		return "up"
	case PhaseCancel:
		return "cancel"
	case PhaseWheel:
		return "wheel"
	default:
		return "unknown"
	}
}

// Modifiers are the keyboard flags held during a mouse event.
type Modifiers struct {
	Ctrl  bool
	Shift bool
	Alt   bool
}

// Event is a normalized input event. Points holds the pointer for mouse
// events and every active touch for touch events.
type Event struct {
	Device    transform.Device
	Phase     Phase
	Points    []r2.Vec
	Modifiers Modifiers
	DeltaY    float64
}

// Router dispatches events to the mouse and touch adapters of one engine.
type Router struct {
	Mouse *Mouse
	Touch *Touch
}

// NewRouter wires both adapters to e.
func NewRouter(e *transform.Engine) *Router {
	return &Router{Mouse: NewMouse(e), Touch: NewTouch(e)}
}

// Dispatch feeds ev to the adapter of its device class.
func (r *Router) Dispatch(ev Event) {
	switch ev.Device {
	case transform.Mouse:
		r.dispatchMouse(ev)
	case transform.Touch:
		r.dispatchTouch(ev)
	default:
		inLog.Warn().Int("device", int(ev.Device)).Msg("unknown device")
	}
}

func (r *Router) dispatchMouse(ev Event) {
	switch ev.Phase {
	case PhaseWheel:
		r.Mouse.Wheel(ev.DeltaY)
	case PhaseUp, PhaseCancel:
		r.Mouse.Up()
	default:
		if len(ev.Points) == 0 {
			return
		}
		if ev.Phase == PhaseDown {
			r.Mouse.Down(ev.Points[0], ev.Modifiers)
		} else {
			r.Mouse.Move(ev.Points[0])
		}
	}
}

func (r *Router) dispatchTouch(ev Event) {
	switch ev.Phase {
	case PhaseDown:
		r.Touch.Start(ev.Points)
	case PhaseMove:
		r.Touch.Move(ev.Points)
	case PhaseUp:
		r.Touch.End()
	case PhaseCancel:
		r.Touch.Cancel()
	}
}

// Mouse is the pointer adapter: a plain drag pans, a Ctrl-drag rotates,
// the wheel zooms around the canvas center.
type Mouse struct {
	e *transform.Engine
}

func NewMouse(e *transform.Engine) *Mouse {
	return &Mouse{e: e}
}

func (m *Mouse) Down(p r2.Vec, mods Modifiers) {
	if mods.Ctrl {
		m.e.StartRotate(transform.Mouse, p)
		return
	}
	m.e.StartPan(transform.Mouse, p)
}

func (m *Mouse) Move(p r2.Vec) {
	m.e.Move(transform.Mouse, p)
}

func (m *Mouse) Up() {
	m.e.EndGesture(transform.Mouse)
}

func (m *Mouse) Wheel(deltaY float64) {
	m.e.Wheel(deltaY)
}

// Touch is the touch adapter. One finger pans. Two fingers pinch-zoom, or
// rotate when rotation mode is on.
type Touch struct {
	e            *transform.Engine
	rotationMode bool
}

func NewTouch(e *transform.Engine) *Touch {
	return &Touch{e: e}
}

// ToggleRotationMode flips two-finger behaviour and returns the new mode.
func (t *Touch) ToggleRotationMode() bool {
	t.rotationMode = !t.rotationMode
	inLog.Debug().Bool("rotation_mode", t.rotationMode).Msg("rotation mode toggled")
	return t.rotationMode
}

// RotationMode reports whether two fingers rotate.
func (t *Touch) RotationMode() bool {
	return t.rotationMode
}

// Start handles touchstart with the full list of active touches.
func (t *Touch) Start(touches []r2.Vec) {
	switch len(touches) {
	case 1:
		t.e.StartPan(transform.Touch, touches[0])
	case 2:
		t.e.StartPinch(transform.Touch, touches[0], touches[1], t.rotationMode)
	}
}

// Move handles touchmove.
func (t *Touch) Move(touches []r2.Vec) {
	switch len(touches) {
	case 1:
		t.e.Move(transform.Touch, touches[0])
	case 2:
		t.e.MovePinch(transform.Touch, touches[0], touches[1])
	}
}

// End handles touchend. Lifting any finger ends the session; a remaining
// finger does nothing until it is put down again.
func (t *Touch) End() {
	t.e.EndGesture(transform.Touch)
}

// Cancel handles touchcancel.
func (t *Touch) Cancel() {
	t.e.EndGesture(transform.Touch)
}

// Command is a toolbar button.
type Command string

const (
	RotateLeft     Command = "rotate_left"
	RotateRight    Command = "rotate_right"
	ZoomIn         Command = "zoom_in"
	ZoomOut        Command = "zoom_out"
	FlipHorizontal Command = "flip_horizontal"
	FlipVertical   Command = "flip_vertical"
	Reset          Command = "reset"
)

// Press runs a toolbar command against e.
func Press(e *transform.Engine, c Command) error {
	switch c {
	case RotateLeft:
		e.RotateLeft()
	case RotateRight:
		e.RotateRight()
	case ZoomIn:
		e.ZoomIn()
	case ZoomOut:
		e.ZoomOut()
	case FlipHorizontal:
		e.Flip(transform.Horizontal)
	case FlipVertical:
		e.Flip(transform.Vertical)
	case Reset:
		e.ResetToFit()
	default:
		return fmt.Errorf("input: unknown command %q", c)
	}
	return nil
}
