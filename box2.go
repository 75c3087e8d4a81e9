package canopy

import "math"

// Box2 is an axis-aligned bounding box. The coordinate system has its origin
// at the top-left, with Y increasing downward.
//
// A box is empty when Max is smaller than Min on either axis. Every other
// operation assumes Min <= Max componentwise.
type Box2 struct {
	Min, Max Vector2
}

// EmptyBox2 returns an empty box that any ExpandByPoint will initialize.
func EmptyBox2() Box2 {
	return Box2{
		Min: Vector2{math.Inf(1), math.Inf(1)},
		Max: Vector2{math.Inf(-1), math.Inf(-1)},
	}
}

// NewBox2 returns the box spanning min to max.
func NewBox2(min, max Vector2) Box2 {
	return Box2{Min: min, Max: max}
}

// Box2FromPoints returns the smallest box containing every point.
// With no points the result is empty.
func Box2FromPoints(points ...Vector2) Box2 {
	b := EmptyBox2()
	for _, p := range points {
		b = b.ExpandByPoint(p)
	}
	return b
}

// Box2FromCenterAndSize returns the box of the given size centered on center.
func Box2FromCenterAndSize(center, size Vector2) Box2 {
	half := size.Mul(0.5)
	return Box2{Min: center.Sub(half), Max: center.Add(half)}
}

// IsEmpty reports whether the box contains no points.
func (b Box2) IsEmpty() bool {
	return b.Max.X < b.Min.X || b.Max.Y < b.Min.Y
}

// Center returns the center point, or the zero vector for an empty box.
func (b Box2) Center() Vector2 {
	if b.IsEmpty() {
		return Vector2{}
	}
	return b.Min.Add(b.Max).Mul(0.5)
}

// Size returns the width and height, or the zero vector for an empty box.
func (b Box2) Size() Vector2 {
	if b.IsEmpty() {
		return Vector2{}
	}
	return b.Max.Sub(b.Min)
}

// ExpandByPoint returns the box grown to include p.
func (b Box2) ExpandByPoint(p Vector2) Box2 {
	return Box2{Min: b.Min.Min(p), Max: b.Max.Max(p)}
}

// ExpandByVector returns the box grown by v on every side.
func (b Box2) ExpandByVector(v Vector2) Box2 {
	return Box2{Min: b.Min.Sub(v), Max: b.Max.Add(v)}
}

// ExpandByScalar returns the box grown by s on every side.
func (b Box2) ExpandByScalar(s float64) Box2 {
	return b.ExpandByVector(Vector2{s, s})
}

// ContainsPoint reports whether p lies inside the box.
// Points on the edge are considered inside.
func (b Box2) ContainsPoint(p Vector2) bool {
	return !(p.X < b.Min.X || p.X > b.Max.X ||
		p.Y < b.Min.Y || p.Y > b.Max.Y)
}

// ContainsBox reports whether o lies entirely inside b.
func (b Box2) ContainsBox(o Box2) bool {
	return b.Min.X <= o.Min.X && o.Max.X <= b.Max.X &&
		b.Min.Y <= o.Min.Y && o.Max.Y <= b.Max.Y
}

// Intersects reports whether b and o overlap.
// Boxes sharing only an edge are considered intersecting.
func (b Box2) Intersects(o Box2) bool {
	return !(o.Max.X < b.Min.X || o.Min.X > b.Max.X ||
		o.Max.Y < b.Min.Y || o.Min.Y > b.Max.Y)
}

// Intersect returns the overlap of b and o. The result is empty when they
// do not overlap.
func (b Box2) Intersect(o Box2) Box2 {
	return Box2{Min: b.Min.Max(o.Min), Max: b.Max.Min(o.Max)}
}

// Union returns the smallest box containing both b and o.
func (b Box2) Union(o Box2) Box2 {
	return Box2{Min: b.Min.Min(o.Min), Max: b.Max.Max(o.Max)}
}

// ClampPoint returns p clamped to the box.
func (b Box2) ClampPoint(p Vector2) Vector2 {
	return p.Max(b.Min).Min(b.Max)
}

// DistanceToPoint returns the distance from p to the nearest point of the
// box, or zero when p is inside.
func (b Box2) DistanceToPoint(p Vector2) float64 {
	return b.ClampPoint(p).Distance(p)
}

// Translate returns the box moved by offset.
func (b Box2) Translate(offset Vector2) Box2 {
	return Box2{Min: b.Min.Add(offset), Max: b.Max.Add(offset)}
}

// Transform returns the axis-aligned bounds of the box's four corners
// transformed by m.
func (b Box2) Transform(m Matrix) Box2 {
	if b.IsEmpty() {
		return b
	}
	return Box2FromPoints(
		m.TransformPoint(b.Min),
		m.TransformPoint(Vector2{b.Max.X, b.Min.Y}),
		m.TransformPoint(b.Max),
		m.TransformPoint(Vector2{b.Min.X, b.Max.Y}),
	)
}

// Equals reports whether both corners match within eps.
func (b Box2) Equals(o Box2, eps float64) bool {
	return b.Min.Equals(o.Min, eps) && b.Max.Equals(o.Max, eps)
}
