package canopy

import "math"

// Vector2 is a 2D point or direction. It is a plain value type: every
// operation returns a new vector and never modifies the receiver.
type Vector2 struct {
	X, Y float64
}

// Vec2 is a convenience constructor for Vector2.
func Vec2(x, y float64) Vector2 {
	return Vector2{X: x, Y: y}
}

// Add returns v + o.
func (v Vector2) Add(o Vector2) Vector2 {
	return Vector2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o.
func (v Vector2) Sub(o Vector2) Vector2 {
	return Vector2{v.X - o.X, v.Y - o.Y}
}

// Mul returns v scaled by s.
func (v Vector2) Mul(s float64) Vector2 {
	return Vector2{v.X * s, v.Y * s}
}

// MulVec returns the componentwise product of v and o.
func (v Vector2) MulVec(o Vector2) Vector2 {
	return Vector2{v.X * o.X, v.Y * o.Y}
}

// Div returns v divided by s.
func (v Vector2) Div(s float64) Vector2 {
	return Vector2{v.X / s, v.Y / s}
}

// DivVec returns the componentwise quotient of v and o.
func (v Vector2) DivVec(o Vector2) Vector2 {
	return Vector2{v.X / o.X, v.Y / o.Y}
}

// Neg returns -v.
func (v Vector2) Neg() Vector2 {
	return Vector2{-v.X, -v.Y}
}

// Dot returns the dot product of v and o.
func (v Vector2) Dot(o Vector2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Cross returns the z component of the 3D cross product of v and o.
func (v Vector2) Cross(o Vector2) float64 {
	return v.X*o.Y - v.Y*o.X
}

// Length returns the Euclidean length of v.
func (v Vector2) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// LengthSquared returns the squared length of v.
func (v Vector2) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Distance returns the distance between v and o.
func (v Vector2) Distance(o Vector2) float64 {
	return v.Sub(o).Length()
}

// DistanceSquared returns the squared distance between v and o.
func (v Vector2) DistanceSquared(o Vector2) float64 {
	return v.Sub(o).LengthSquared()
}

// Normalize returns a unit vector with the direction of v.
// The zero vector is returned unchanged.
func (v Vector2) Normalize() Vector2 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return Vector2{v.X / l, v.Y / l}
}

// Angle returns the angle of v in radians, measured from the positive X axis.
func (v Vector2) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// Rotate returns v rotated by angle radians around the origin.
func (v Vector2) Rotate(angle float64) Vector2 {
	sin, cos := math.Sincos(angle)
	return Vector2{
		v.X*cos - v.Y*sin,
		v.X*sin + v.Y*cos,
	}
}

// RotateAround returns v rotated by angle radians around pivot.
func (v Vector2) RotateAround(pivot Vector2, angle float64) Vector2 {
	return v.Sub(pivot).Rotate(angle).Add(pivot)
}

// Lerp linearly interpolates between v (t=0) and o (t=1).
func (v Vector2) Lerp(o Vector2, t float64) Vector2 {
	return Vector2{
		v.X + (o.X-v.X)*t,
		v.Y + (o.Y-v.Y)*t,
	}
}

// Min returns the componentwise minimum of v and o.
func (v Vector2) Min(o Vector2) Vector2 {
	return Vector2{math.Min(v.X, o.X), math.Min(v.Y, o.Y)}
}

// Max returns the componentwise maximum of v and o.
func (v Vector2) Max(o Vector2) Vector2 {
	return Vector2{math.Max(v.X, o.X), math.Max(v.Y, o.Y)}
}

// Round rounds both components to the nearest integer.
func (v Vector2) Round() Vector2 {
	return Vector2{math.Round(v.X), math.Round(v.Y)}
}

// Equals reports whether v and o differ by at most eps on each axis.
func (v Vector2) Equals(o Vector2, eps float64) bool {
	return math.Abs(v.X-o.X) <= eps && math.Abs(v.Y-o.Y) <= eps
}

// IsFinite reports whether both components are neither NaN nor infinite.
func (v Vector2) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}
