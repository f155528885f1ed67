package input

import (
	"image"
	"testing"

	"canvas-cropper/internal/canvassize"
	"canvas-cropper/internal/imageio"
	"canvas-cropper/internal/transform"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

func newEngine(t *testing.T) *transform.Engine {
	t.Helper()
	e := transform.New(transform.Options{Resolution: canvassize.Resolution{Width: 400, Height: 300}})
	h, err := imageio.NewHandle(image.NewNRGBA(image.Rect(0, 0, 200, 100)))
	require.NoError(t, err)
	e.SetImage(h)
	return e
}

func TestMouse_DragPans(t *testing.T) {
	e := newEngine(t)
	r := NewRouter(e)

	r.Dispatch(Event{Device: transform.Mouse, Phase: PhaseDown, Points: []r2.Vec{{X: 10, Y: 10}}})
	r.Dispatch(Event{Device: transform.Mouse, Phase: PhaseMove, Points: []r2.Vec{{X: 40, Y: 30}}})
	r.Dispatch(Event{Device: transform.Mouse, Phase: PhaseUp})

	assert.Equal(t, 30.0, e.State().TranslateX)
	assert.Equal(t, 20.0, e.State().TranslateY)
	assert.False(t, e.Gesture(transform.Mouse).Active())

	// moves after release do nothing
	r.Dispatch(Event{Device: transform.Mouse, Phase: PhaseMove, Points: []r2.Vec{{X: 99, Y: 99}}})
	assert.Equal(t, 30.0, e.State().TranslateX)
}

func TestMouse_CtrlDragRotates(t *testing.T) {
	e := newEngine(t)
	m := NewMouse(e)

	m.Down(r2.Vec{X: 300, Y: 150}, Modifiers{Ctrl: true})
	assert.Equal(t, transform.Rotating, e.Gesture(transform.Mouse).Mode)
	m.Move(r2.Vec{X: 200, Y: 50})
	assert.InDelta(t, -90.0, e.State().Rotation, 1e-9)
	assert.Equal(t, 0.0, e.State().TranslateX)
	m.Up()
}

func TestMouse_Wheel(t *testing.T) {
	e := newEngine(t)
	scale := e.State().Scale
	NewRouter(e).Dispatch(Event{Device: transform.Mouse, Phase: PhaseWheel, DeltaY: 100})
	assert.InDelta(t, scale*0.9, e.State().Scale, 1e-12)
}

func TestTouch_SecondFingerCancelsPan(t *testing.T) {
	e := newEngine(t)
	tc := NewTouch(e)

	tc.Start([]r2.Vec{{X: 50, Y: 50}})
	tc.Move([]r2.Vec{{X: 60, Y: 50}})
	require.Equal(t, 10.0, e.State().TranslateX)
	scale := e.State().Scale

	tc.Start([]r2.Vec{{X: 60, Y: 50}, {X: 160, Y: 50}})
	tc.Move([]r2.Vec{{X: 60, Y: 50}, {X: 260, Y: 50}})
	assert.InDelta(t, scale*2, e.State().Scale, 1e-12)
	assert.Equal(t, 10.0, e.State().TranslateX)

	// one-finger frame in the middle of a pinch carries no residual pan
	tc.Move([]r2.Vec{{X: 0, Y: 0}})
	assert.Equal(t, 10.0, e.State().TranslateX)

	tc.End()
	assert.Zero(t, e.Gesture(transform.Touch).PrevPinchDistance)
}

func TestTouch_RotationMode(t *testing.T) {
	e := newEngine(t)
	tc := NewTouch(e)
	require.True(t, tc.ToggleRotationMode())
	scale := e.State().Scale

	tc.Start([]r2.Vec{{X: 0, Y: 0}, {X: 100, Y: 0}})
	tc.Move([]r2.Vec{{X: 0, Y: 0}, {X: 0, Y: 200}})
	assert.InDelta(t, 90.0, e.State().Rotation, 1e-9)
	assert.Equal(t, scale, e.State().Scale)

	tc.Cancel()
	assert.False(t, e.Gesture(transform.Touch).Active())
	assert.False(t, tc.ToggleRotationMode())
}

func TestTouch_ThreeFingersIgnored(t *testing.T) {
	e := newEngine(t)
	tc := NewTouch(e)
	tc.Start([]r2.Vec{{}, {X: 1}, {X: 2}})
	assert.False(t, e.Gesture(transform.Touch).Active())
}

func TestPress(t *testing.T) {
	e := newEngine(t)
	require.NoError(t, Press(e, RotateRight))
	require.NoError(t, Press(e, FlipHorizontal))
	require.NoError(t, Press(e, FlipVertical))
	assert.Equal(t, 90.0, e.State().Rotation)
	assert.Equal(t, -1.0, e.State().FlipX)
	assert.Equal(t, -1.0, e.State().FlipY)

	fit := transform.FitScale(200, 100, e.Resolution())
	require.NoError(t, Press(e, ZoomIn))
	assert.InDelta(t, fit+1.0/200, e.State().Scale, 1e-12)
	require.NoError(t, Press(e, ZoomOut))
	require.NoError(t, Press(e, RotateLeft))

	require.NoError(t, Press(e, Reset))
	assert.Equal(t, 0.0, e.State().Rotation)
	assert.Equal(t, fit, e.State().Scale)

	assert.Error(t, Press(e, Command("explode")))
}
