package canopy

// RecenterMode selects how ViewportControls moves the viewport center each
// frame.
type RecenterMode uint8

const (
	RecenterNone    RecenterMode = iota // leave Center alone
	RecenterCanvas                      // keep Center on the world point under the canvas midpoint
	RecenterPointer                     // keep Center on the world point under the pointer
)

// DefaultZoomSpeed is the scale change per wheel unit, relative to the
// current scale.
const DefaultZoomSpeed = 1e-3

// ViewportControls turns pointer input into viewport pan, zoom and rotation.
type ViewportControls struct {
	Viewport *Viewport

	// DragButton pans the viewport while held.
	DragButton PointerButton
	// RotateButton rotates the viewport around the pointer position where it
	// was first pressed.
	RotateButton PointerButton

	AllowDrag     bool
	AllowScale    bool
	AllowRotation bool

	Recenter RecenterMode

	// ZoomSpeed multiplies the wheel delta.
	ZoomSpeed float64
	// MinScale and MaxScale clamp the zoom. Zero means unbounded.
	MinScale float64
	MaxScale float64

	rotationPoint   Vector2
	rotationInitial float64
	rotating        bool
}

// NewViewportControls returns controls for vp with right-drag panning,
// middle-drag rotation and wheel zoom enabled.
func NewViewportControls(vp *Viewport) *ViewportControls {
	return &ViewportControls{
		Viewport:      vp,
		DragButton:    ButtonRight,
		RotateButton:  ButtonMiddle,
		AllowDrag:     true,
		AllowScale:    true,
		AllowRotation: true,
		Recenter:      RecenterNone,
		ZoomSpeed:     DefaultZoomSpeed,
	}
}

// Update applies one frame of pointer input. canvas is the canvas rectangle
// in canvas space, used by RecenterCanvas.
func (c *ViewportControls) Update(p *Pointer, canvas Box2) {
	vp := c.Viewport
	if vp == nil || p == nil {
		return
	}

	if c.AllowScale && p.Wheel != 0 {
		vp.Scale -= p.Wheel * c.ZoomSpeed * vp.Scale
		vp.Scale = c.clampScale(vp.Scale)
		vp.MarkDirty()
	}

	if c.AllowRotation && p.ButtonPressed(c.RotateButton) {
		if !c.rotating {
			c.rotationPoint = p.Position
			c.rotationInitial = vp.Rotation
			c.rotating = true
		} else {
			vp.Rotation = c.rotationInitial + p.Position.Sub(c.rotationPoint).Angle()
			vp.MarkDirty()
		}
	} else {
		c.rotating = false
		if c.AllowDrag && p.ButtonPressed(c.DragButton) {
			vp.Position = vp.Position.Add(p.Delta)
			vp.MarkDirty()
		}
	}

	switch c.Recenter {
	case RecenterCanvas:
		vp.SetCenter(vp.ScreenToWorld(canvas.Center()))
	case RecenterPointer:
		vp.SetCenter(vp.ScreenToWorld(p.Position))
	}
}

// Reset forgets the rotation pivot.
func (c *ViewportControls) Reset() {
	c.rotating = false
	c.rotationPoint = Vector2{}
	c.rotationInitial = 0
}

func (c *ViewportControls) clampScale(s float64) float64 {
	if c.MinScale > 0 && s < c.MinScale {
		s = c.MinScale
	}
	if c.MaxScale > 0 && s > c.MaxScale {
		s = c.MaxScale
	}
	return s
}
