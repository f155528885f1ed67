package transform

import "gonum.org/v1/gonum/spatial/r2"

// Device is an input device class. Each class has at most one gesture in
// flight.
type Device int

const (
	Mouse Device = iota
	Touch
	numDevices
)

func (d Device) String() string {
	switch d {
	case Mouse:
		return "mouse"
	case Touch:
		return "touch"
	default:
		return "unknown"
	}
}

// Mode tags the active gesture. Exactly one applies at a time, so panning
// and rotating together cannot be represented.
type Mode int

const (
	Idle Mode = iota
	Panning
	Rotating
	Pinching
)

func (m Mode) String() string {
	switch m {
	case Idle:
		return "idle"
	case Panning:
		return "panning"
	case Rotating:
		return "rotating"
	case Pinching:
		return "pinching"
	default:
		return "unknown"
	}
}

// Gesture is the transient record of one interaction. Only the fields of
// the current Mode are meaningful; the zero value is Idle.
type Gesture struct {
	Mode Mode

	// Panning: pointer at start in the local frame, offset at start.
	AnchorLocal   r2.Vec
	BaseTranslate r2.Vec

	// Rotating, and Pinching with PinchRotate: pointer angle at start
	// (radians) and rotation at start (degrees).
	AnchorAngle  float64
	BaseRotation float64

	// Pinching: PinchRotate selects two-finger rotation over pinch zoom.
	// PrevPinchDistance is the running distance; zero means unset.
	PinchRotate          bool
	InitialPinchDistance float64
	InitialPinchAngle    float64
	PrevPinchDistance    float64
}

// Active reports whether a gesture is in flight.
func (g Gesture) Active() bool {
	return g.Mode != Idle
}
