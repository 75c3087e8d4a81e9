package canopy

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// viewportAnim holds the active tweens of a viewport. A nil tween is idle.
type viewportAnim struct {
	posX, posY *gween.Tween
	scale      *gween.Tween
	rotation   *gween.Tween
}

func (a *viewportAnim) idle() bool {
	return a.posX == nil && a.posY == nil && a.scale == nil && a.rotation == nil
}

// step advances t and writes its value into dst. The tween is cleared once
// it finishes.
func step(t **gween.Tween, dst *float64, dt float32) {
	if *t == nil {
		return
	}
	val, done := (*t).Update(dt)
	*dst = float64(val)
	if done {
		*t = nil
	}
}

// Viewport is the camera over the scene: it maps world space onto canvas
// space.
//
// The mapping is T(Position) · T(Center) · R(Rotation) · S(Scale) · T(-Center):
// world points are scaled and rotated around Center, then shifted by
// Position. With a zero Center this is T(Position) · R · S.
type Viewport struct {
	// Position is the canvas-space translation applied after scale and rotation.
	Position Vector2
	// Scale is the uniform zoom factor (1 = no zoom, >1 = zoom in).
	Scale float64
	// Rotation is the viewport rotation in radians.
	Rotation float64
	// Center is the world-space pivot for scale and rotation. Use SetCenter
	// to move it without the view jumping.
	Center Vector2

	matrix        Matrix
	inverseMatrix Matrix
	dirty         bool

	// parameters the cached matrix was built from
	builtPosition Vector2
	builtScale    float64
	builtRotation float64
	builtCenter   Vector2

	anim viewportAnim
}

// NewViewport returns an identity viewport.
func NewViewport() *Viewport {
	return &Viewport{
		Scale:         1,
		matrix:        Identity(),
		inverseMatrix: Identity(),
		dirty:         true,
	}
}

// MarkDirty forces a recomputation of the matrices on the next UpdateMatrix.
func (v *Viewport) MarkDirty() {
	v.dirty = true
}

// UpdateMatrix recomputes the cached matrices when the viewport is dirty or
// any of its fields changed since the last call, and reports whether it did.
func (v *Viewport) UpdateMatrix() bool {
	if !v.dirty &&
		v.Position == v.builtPosition &&
		v.Scale == v.builtScale &&
		v.Rotation == v.builtRotation &&
		v.Center == v.builtCenter {
		return false
	}
	v.matrix = Compose(
		v.Position.X+v.Center.X, v.Position.Y+v.Center.Y,
		v.Scale, v.Scale,
		v.Center.X, v.Center.Y,
		v.Rotation,
	)
	v.inverseMatrix = v.matrix.Inverse()
	v.builtPosition = v.Position
	v.builtScale = v.Scale
	v.builtRotation = v.Rotation
	v.builtCenter = v.Center
	v.dirty = false
	return true
}

// Matrix returns the world-to-canvas matrix, refreshing it if needed.
func (v *Viewport) Matrix() Matrix {
	v.UpdateMatrix()
	return v.matrix
}

// InverseMatrix returns the canvas-to-world matrix, refreshing it if needed.
// It has non-finite entries while Scale is zero.
func (v *Viewport) InverseMatrix() Matrix {
	v.UpdateMatrix()
	return v.inverseMatrix
}

// WorldToScreen converts a world-space point to canvas space.
func (v *Viewport) WorldToScreen(world Vector2) Vector2 {
	return v.Matrix().TransformPoint(world)
}

// ScreenToWorld converts a canvas-space point to world space.
func (v *Viewport) ScreenToWorld(screen Vector2) Vector2 {
	return v.InverseMatrix().TransformPoint(screen)
}

// VisibleBounds returns the axis-aligned world-space bounds of the canvas
// rectangle.
func (v *Viewport) VisibleBounds(canvas Box2) Box2 {
	return canvas.Transform(v.InverseMatrix())
}

// SetCenter moves the scale and rotation pivot to c. Position is adjusted so
// that every world point keeps its canvas position.
func (v *Viewport) SetCenter(c Vector2) {
	rs := func(p Vector2) Vector2 {
		return p.Rotate(v.Rotation).Mul(v.Scale)
	}
	// p + c + RS(x - c) == p' + c' + RS(x - c')
	v.Position = v.Position.Add(v.Center).Sub(rs(v.Center)).Sub(c).Add(rs(c))
	v.Center = c
	v.dirty = true
}

// Reset restores the identity view and cancels every animation.
func (v *Viewport) Reset() {
	v.Position = Vector2{}
	v.Scale = 1
	v.Rotation = 0
	v.Center = Vector2{}
	v.anim = viewportAnim{}
	v.dirty = true
}

// --- Animation ---

// ScrollTo animates Position to target over duration seconds.
// A nil easeFn uses linear easing.
func (v *Viewport) ScrollTo(target Vector2, duration float32, easeFn ease.TweenFunc) {
	easeFn = orLinear(easeFn)
	v.anim.posX = gween.New(float32(v.Position.X), float32(target.X), duration, easeFn)
	v.anim.posY = gween.New(float32(v.Position.Y), float32(target.Y), duration, easeFn)
}

// ZoomTo animates Scale to target over duration seconds.
func (v *Viewport) ZoomTo(target float64, duration float32, easeFn ease.TweenFunc) {
	v.anim.scale = gween.New(float32(v.Scale), float32(target), duration, orLinear(easeFn))
}

// RotateTo animates Rotation to target radians over duration seconds.
func (v *Viewport) RotateTo(target float64, duration float32, easeFn ease.TweenFunc) {
	v.anim.rotation = gween.New(float32(v.Rotation), float32(target), duration, orLinear(easeFn))
}

// Animating reports whether any viewport animation is still running.
func (v *Viewport) Animating() bool {
	return !v.anim.idle()
}

// StopAnimations cancels every running animation, leaving the viewport where
// it is.
func (v *Viewport) StopAnimations() {
	v.anim = viewportAnim{}
}

// Update advances the running animations by dt seconds.
func (v *Viewport) Update(dt float32) {
	if v.anim.idle() {
		return
	}
	step(&v.anim.posX, &v.Position.X, dt)
	step(&v.anim.posY, &v.Position.Y, dt)
	step(&v.anim.scale, &v.Scale, dt)
	step(&v.anim.rotation, &v.Rotation, dt)
	v.dirty = true
}

func orLinear(fn ease.TweenFunc) ease.TweenFunc {
	if fn == nil {
		return ease.Linear
	}
	return fn
}
