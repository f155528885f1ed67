package batch

import (
	"fmt"
	"strconv"
	"strings"

	"canvas-cropper/internal/input"
	"canvas-cropper/internal/transform"

	"gonum.org/v1/gonum/spatial/r2"
)

// Point is an [x, y] pair in display coordinates.
type Point [2]float64

func (p Point) vec() r2.Vec { return r2.Vec{X: p[0], Y: p[1]} }

// Op is one recorded editor action. Which fields apply depends on Op:
//
//	pan          dx, dy
//	rotate       degrees (button step)
//	rotate_drag  degrees
//	zoom         factor, anchor ("center"|"cursor"), at
//	wheel        delta_y
//	flip         axis ("horizontal"|"vertical")
//	press        command (toolbar button name)
//	drag         from, to, ctrl
//	pinch        from[2], to[2], rotate
//	resolution   width, height
//	aspect       width, height (ratio w:h, keeps the canvas width)
//	fit
type Op struct {
	Op      string  `json:"op"`
	DX      float64 `json:"dx,omitempty"`
	DY      float64 `json:"dy,omitempty"`
	Degrees float64 `json:"degrees,omitempty"`
	Factor  float64 `json:"factor,omitempty"`
	Anchor  string  `json:"anchor,omitempty"`
	At      Point   `json:"at,omitempty"`
	DeltaY  float64 `json:"delta_y,omitempty"`
	Axis    string  `json:"axis,omitempty"`
	Command string  `json:"command,omitempty"`
	From    []Point `json:"from,omitempty"`
	To      []Point `json:"to,omitempty"`
	Ctrl    bool    `json:"ctrl,omitempty"`
	Rotate  bool    `json:"rotate,omitempty"`
	Width   int     `json:"width,omitempty"`
	Height  int     `json:"height,omitempty"`
}

// Apply runs ops in order against e. Resolution errors are returned since
// a recipe asked for them explicitly.
func Apply(e *transform.Engine, ops []Op) error {
	router := input.NewRouter(e)
	for i, op := range ops {
		if err := applyOne(e, router, op); err != nil {
			return fmt.Errorf("batch: op %d (%s): %w", i, op.Op, err)
		}
	}
	return nil
}

func applyOne(e *transform.Engine, router *input.Router, op Op) error {
	switch op.Op {
	case "pan":
		e.Pan(r2.Vec{X: op.DX, Y: op.DY})
	case "rotate":
		e.DiscreteRotate(op.Degrees)
	case "rotate_drag":
		e.RotateDrag(op.Degrees)
	case "zoom":
		anchor := transform.AnchorCenter
		switch op.Anchor {
		case "", "center":
		case "cursor":
			anchor = transform.AnchorCursor
		default:
			return fmt.Errorf("unknown anchor %q", op.Anchor)
		}
		e.Zoom(op.Factor, anchor, op.At.vec())
	case "wheel":
		router.Mouse.Wheel(op.DeltaY)
	case "flip":
		switch op.Axis {
		case "horizontal", "x":
			e.Flip(transform.Horizontal)
		case "vertical", "y":
			e.Flip(transform.Vertical)
		default:
			return fmt.Errorf("unknown axis %q", op.Axis)
		}
	case "press":
		return input.Press(e, input.Command(op.Command))
	case "drag":
		if len(op.From) != 1 || len(op.To) != 1 {
			return fmt.Errorf("drag needs one from and one to point")
		}
		router.Mouse.Down(op.From[0].vec(), input.Modifiers{Ctrl: op.Ctrl})
		router.Mouse.Move(op.To[0].vec())
		router.Mouse.Up()
	case "pinch":
		if len(op.From) != 2 || len(op.To) != 2 {
			return fmt.Errorf("pinch needs two from and two to points")
		}
		touch := router.Touch
		if touch.RotationMode() != op.Rotate {
			touch.ToggleRotationMode()
		}
		touch.Start([]r2.Vec{op.From[0].vec(), op.From[1].vec()})
		touch.Move([]r2.Vec{op.To[0].vec(), op.To[1].vec()})
		touch.End()
	case "resolution":
		return e.SetResolution(op.Width, op.Height)
	case "aspect":
		return e.SetAspect(op.Width, op.Height)
	case "fit":
		e.ResetToFit()
	default:
		return fmt.Errorf("unknown op %q", op.Op)
	}
	return nil
}

// ParseScript reads the compact CLI form of a recipe, ops separated by ';':
//
//	pan:10,-4;rotate:90;rotate_drag:12.5;zoom:1.2;wheel:-1;flip:horizontal;
//	press:zoom_in;resolution:800x600;aspect:16:9;fit
func ParseScript(s string) ([]Op, error) {
	var ops []Op
	for _, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, arg, _ := strings.Cut(part, ":")
		op := Op{Op: name}
		var err error
		switch name {
		case "pan":
			op.DX, op.DY, err = parsePair(arg, ",")
		case "rotate", "rotate_drag":
			op.Degrees, err = strconv.ParseFloat(arg, 64)
		case "zoom":
			op.Factor, err = strconv.ParseFloat(arg, 64)
		case "wheel":
			op.DeltaY, err = strconv.ParseFloat(arg, 64)
		case "flip":
			op.Axis = arg
		case "press":
			op.Command = arg
		case "resolution":
			var w, h float64
			w, h, err = parsePair(arg, "x")
			op.Width, op.Height = int(w), int(h)
		case "aspect":
			var w, h float64
			w, h, err = parsePair(arg, ":")
			op.Width, op.Height = int(w), int(h)
		case "fit":
		default:
			err = fmt.Errorf("unknown op")
		}
		if err != nil {
			return nil, fmt.Errorf("batch: script %q: %w", part, err)
		}
		ops = append(ops, op)
	}
	return ops, nil
}

func parsePair(s, sep string) (float64, float64, error) {
	as, bs, ok := strings.Cut(s, sep)
	if !ok {
		return 0, 0, fmt.Errorf("expected two values separated by %q", sep)
	}
	a, err := strconv.ParseFloat(strings.TrimSpace(as), 64)
	if err != nil {
		return 0, 0, err
	}
	b, err := strconv.ParseFloat(strings.TrimSpace(bs), 64)
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}
