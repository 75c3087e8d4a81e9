package canopy

// Shape decides whether a local-space point hits a node. A node without a
// Shape is never hit.
type Shape interface {
	IsInside(local Vector2) bool
}

// Drawer is implemented by shapes that render themselves. The surface
// transform already maps the node's local space onto the canvas; canvas is
// the surface rectangle.
type Drawer interface {
	Draw(s Surface, vp *Viewport, canvas Box2)
}

// Styler is implemented by shapes that set paint state before Draw.
type Styler interface {
	Style(s Surface, vp *Viewport, canvas Box2)
}

// Clipper is implemented by shapes usable as masks. Clip must build the
// shape's path in local space and call Surface.Clip.
type Clipper interface {
	Clip(s Surface, vp *Viewport, canvas Box2)
}

// Paint describes how a built-in shape is filled and stroked. A zero alpha
// skips the corresponding pass.
type Paint struct {
	Fill      Color
	Stroke    Color
	LineWidth float64
}

func (p Paint) apply(s Surface) {
	if p.Fill.A > 0 {
		c := p.Fill.RGBA()
		s.SetRGBA(c.R, c.G, c.B, c.A)
		if err := s.Fill(); err != nil {
			Logger().Warn("canopy: fill failed", "error", err)
		}
	}
	if p.Stroke.A > 0 && p.LineWidth > 0 {
		c := p.Stroke.RGBA()
		s.SetRGBA(c.R, c.G, c.B, c.A)
		s.SetLineWidth(p.LineWidth)
		if err := s.Stroke(); err != nil {
			Logger().Warn("canopy: stroke failed", "error", err)
		}
	}
	s.ClearPath()
}

// --- BoxShape ---

// BoxShape is an axis-aligned rectangle in local coordinates.
type BoxShape struct {
	Box Box2
	Paint
}

// NewBoxShape returns a box of the given size with its top-left corner at the
// local origin.
func NewBoxShape(width, height float64, fill Color) *BoxShape {
	return &BoxShape{
		Box:   NewBox2(Vector2{}, Vector2{width, height}),
		Paint: Paint{Fill: fill},
	}
}

// IsInside reports whether local lies inside the box. Edges count as inside.
func (b *BoxShape) IsInside(local Vector2) bool {
	return b.Box.ContainsPoint(local)
}

func (b *BoxShape) path(s Surface) {
	size := b.Box.Size()
	s.DrawRectangle(b.Box.Min.X, b.Box.Min.Y, size.X, size.Y)
}

// Draw fills and strokes the box.
func (b *BoxShape) Draw(s Surface, _ *Viewport, _ Box2) {
	if b.Box.IsEmpty() {
		return
	}
	b.path(s)
	b.apply(s)
}

// Clip restricts drawing to the box.
func (b *BoxShape) Clip(s Surface, _ *Viewport, _ Box2) {
	b.path(s)
	s.Clip()
}

// --- CircleShape ---

// CircleShape is a circle centered on the local origin.
type CircleShape struct {
	Radius float64
	Paint
}

// NewCircleShape returns a filled circle.
func NewCircleShape(radius float64, fill Color) *CircleShape {
	return &CircleShape{Radius: radius, Paint: Paint{Fill: fill}}
}

// IsInside reports whether local lies inside or on the circle.
func (c *CircleShape) IsInside(local Vector2) bool {
	return local.LengthSquared() <= c.Radius*c.Radius
}

// Draw fills and strokes the circle.
func (c *CircleShape) Draw(s Surface, _ *Viewport, _ Box2) {
	if c.Radius <= 0 {
		return
	}
	s.DrawCircle(0, 0, c.Radius)
	c.apply(s)
}

// Clip restricts drawing to the circle.
func (c *CircleShape) Clip(s Surface, _ *Viewport, _ Box2) {
	s.DrawCircle(0, 0, c.Radius)
	s.Clip()
}

// --- PolygonShape ---

// PolygonShape is a convex polygon in local coordinates.
// Points must define a convex polygon in either winding order.
type PolygonShape struct {
	Points []Vector2
	Paint
}

// NewPolygonShape returns a filled convex polygon.
func NewPolygonShape(points []Vector2, fill Color) *PolygonShape {
	return &PolygonShape{Points: points, Paint: Paint{Fill: fill}}
}

// IsInside reports whether local lies inside the polygon using a
// cross-product sign test. Edges count as inside.
func (p *PolygonShape) IsInside(local Vector2) bool {
	n := len(p.Points)
	if n < 3 {
		return false
	}

	// Check that the point is on the same side of every edge.
	var positive, negative bool
	for i := 0; i < n; i++ {
		a := p.Points[i]
		b := p.Points[(i+1)%n]

		cross := b.Sub(a).Cross(local.Sub(a))
		if cross > 0 {
			positive = true
		} else if cross < 0 {
			negative = true
		}
		if positive && negative {
			return false
		}
	}
	return true
}

func (p *PolygonShape) path(s Surface) {
	s.MoveTo(p.Points[0].X, p.Points[0].Y)
	for _, pt := range p.Points[1:] {
		s.LineTo(pt.X, pt.Y)
	}
	s.ClosePath()
}

// Draw fills and strokes the polygon.
func (p *PolygonShape) Draw(s Surface, _ *Viewport, _ Box2) {
	if len(p.Points) < 3 {
		return
	}
	p.path(s)
	p.apply(s)
}

// Clip restricts drawing to the polygon.
func (p *PolygonShape) Clip(s Surface, _ *Viewport, _ Box2) {
	if len(p.Points) < 3 {
		return
	}
	p.path(s)
	s.Clip()
}

// Bounds returns the polygon's local bounding box.
func (p *PolygonShape) Bounds() Box2 {
	return Box2FromPoints(p.Points...)
}
