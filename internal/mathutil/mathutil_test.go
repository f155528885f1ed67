package mathutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestMat3_ContextOrder(t *testing.T) {
	// translate to (100, 50) then rotate 90°: local +X lands on screen +Y
	m := Translate(100, 50).Then(Rotate(Deg2Rad(90)))
	p := m.Apply(r2.Vec{X: 10})
	assert.InDelta(t, 100.0, p.X, 1e-9)
	assert.InDelta(t, 60.0, p.Y, 1e-9)

	// scale by 2 first, then move by local 5 (10 real)
	m = Scale(2, 2).Then(Translate(5, 0))
	p = m.Apply(r2.Vec{X: 10})
	assert.InDelta(t, 30.0, p.X, 1e-9)
}

func TestMat3_Inverse(t *testing.T) {
	m := Translate(256, 192).Then(Rotate(Deg2Rad(33))).Then(Scale(-0.5, 0.5)).Then(Translate(-40, 12))
	inv := m.Inverse()
	p := r2.Vec{X: 17, Y: -3}
	back := inv.Apply(m.Apply(p))
	assert.InDelta(t, p.X, back.X, 1e-9)
	assert.InDelta(t, p.Y, back.Y, 1e-9)

	id := Mat3Mul(m, inv)
	for i, want := range Mat3Identity() {
		assert.InDelta(t, want, id[i], 1e-9)
	}
}

func TestMat3_SingularInverseIsIdentity(t *testing.T) {
	require.Equal(t, Mat3Identity(), Scale(0, 1).Inverse())
}

func TestMat3_Aff3(t *testing.T) {
	a := Translate(3, 4).Then(Scale(2, 5)).Aff3()
	assert.Equal(t, [6]float64{2, 0, 3, 0, 5, 4}, [6]float64(a))
}

func TestToLocal_InverseOfForward(t *testing.T) {
	points := []r2.Vec{{X: 0, Y: 0}, {X: 12.5, Y: -7}, {X: -300, Y: 44}, {X: 1, Y: 1}}
	for _, rot := range []float64{0, 30, 90, -135, 270, 725} {
		for _, fx := range []float64{1, -1} {
			for _, fy := range []float64{1, -1} {
				for _, p := range points {
					back := FromLocal(ToLocal(p, rot, fx, fy), rot, fx, fy)
					assert.InDelta(t, p.X, back.X, 1e-9, "rot=%v flip=(%v,%v)", rot, fx, fy)
					assert.InDelta(t, p.Y, back.Y, 1e-9, "rot=%v flip=(%v,%v)", rot, fx, fy)
				}
			}
		}
	}
}

func TestToLocal_Rotation90(t *testing.T) {
	l := ToLocal(r2.Vec{X: 10, Y: 0}, 90, 1, 1)
	assert.InDelta(t, 0.0, l.X, 1e-9)
	assert.InDelta(t, -10.0, l.Y, 1e-9)

	l = ToLocal(r2.Vec{X: 3, Y: 4}, 0, -1, 1)
	assert.Equal(t, r2.Vec{X: -3, Y: 4}, l)
}

func TestAngle(t *testing.T) {
	assert.InDelta(t, math.Pi/2, Angle(r2.Vec{Y: 5}), 1e-12)
	assert.InDelta(t, 90.0, Rad2Deg(Deg2Rad(90)), 1e-12)
}

func TestRoundHalfUp(t *testing.T) {
	assert.Equal(t, 3.0, RoundHalfUp(2.5))
	assert.Equal(t, -2.0, RoundHalfUp(-2.5))
	assert.Equal(t, 600.0, RoundHalfUp(599.9999))
}
