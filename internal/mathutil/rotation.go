package mathutil

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Rotate returns a rotation by a radians. With a y-down raster a positive
// angle turns clockwise on screen.
func Rotate(a float64) Mat3 {
	c, s := math.Cos(a), math.Sin(a)
	return Mat3{
		c, -s, 0,
		s, c, 0,
		0, 0, 1,
	}
}

// Deg2Rad converts degrees to radians.
func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180
}

// Rad2Deg converts radians to degrees.
func Rad2Deg(r float64) float64 {
	return r * 180 / math.Pi
}

// ToLocal undoes a rotation (degrees) and then a mirror on p:
//
//	x' = ( x*cos + y*sin) * flipX
//	y' = (-x*sin + y*cos) * flipY
//
// Deltas taken between two ToLocal results live in the frame the image
// offset is drawn in, so a drag follows the pointer under any rotation or
// mirror.
func ToLocal(p r2.Vec, rotationDeg, flipX, flipY float64) r2.Vec {
	rot := Deg2Rad(rotationDeg)
	c, s := math.Cos(rot), math.Sin(rot)
	return r2.Vec{
		X: (p.X*c + p.Y*s) * flipX,
		Y: (-p.X*s + p.Y*c) * flipY,
	}
}

// FromLocal is the forward mirror-then-rotate step, the inverse of ToLocal.
func FromLocal(l r2.Vec, rotationDeg, flipX, flipY float64) r2.Vec {
	m := Rotate(Deg2Rad(rotationDeg)).Then(Scale(flipX, flipY))
	return m.ApplyLinear(l)
}

// Angle returns the direction of v in radians, atan2(v.Y, v.X).
func Angle(v r2.Vec) float64 {
	return math.Atan2(v.Y, v.X)
}
