package canopy

import "sync"

// PointerButton identifies a pointer button. Values follow the DOM
// MouseEvent.button numbering.
type PointerButton uint8

const (
	ButtonLeft    PointerButton = iota // primary button, also the first touch
	ButtonMiddle                       // wheel click
	ButtonRight                        // secondary button
	ButtonBack                         // browser back
	ButtonForward                      // browser forward
)

const numPointerButtons = 5

// Pointer normalizes raw mouse and touch events into a per-frame snapshot.
//
// Raw events (MoveTo, ButtonDown, WheelEvent, ...) may arrive at any time and
// from any goroutine; they are accumulated in a guarded shadow state.
// Update drains the shadow state into the exported snapshot fields and is
// the only call that changes them. Several raw events arriving within one
// frame collapse to a single edge visible for exactly one Update.
type Pointer struct {
	// Position is the pointer position, canvas-relative when a canvas is set.
	Position Vector2
	// Delta is the summed movement since the previous Update.
	Delta Vector2
	// Wheel is the last wheel delta seen since the previous Update, or 0.
	Wheel float64

	keys          [numPointerButtons]Key
	doubleClicked [numPointerButtons]bool

	canvas    Box2
	hasCanvas bool

	mu  sync.Mutex
	raw rawPointer
}

// rawPointer is the shadow accumulator written by raw events.
type rawPointer struct {
	position        Vector2
	delta           Vector2
	positionUpdated bool
	hasPosition     bool
	wheel           float64
	wheelUpdated    bool
	keys            [numPointerButtons]Key
	doubleClicked   [numPointerButtons]bool
	touching        bool
	lastTouch       Vector2
}

// NewPointer returns a pointer at the origin with every button released.
func NewPointer() *Pointer {
	return &Pointer{}
}

// --- Raw events ---

// MoveTo records an absolute pointer position in window space. The movement
// is derived from the previous absolute position; the first sample only
// establishes a position and carries no movement.
func (p *Pointer) MoveTo(x, y float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.raw.hasPosition {
		p.raw.delta.X += x - p.raw.position.X
		p.raw.delta.Y += y - p.raw.position.Y
	}
	p.raw.position = Vector2{x, y}
	p.raw.positionUpdated = true
	p.raw.hasPosition = true
}

// SetPosition places the pointer without reporting any movement. Use it
// when the pointer appears somewhere new, such as a press at a fresh
// location.
func (p *Pointer) SetPosition(x, y float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.raw.position = Vector2{x, y}
	p.raw.positionUpdated = true
	p.raw.hasPosition = true
}

// Move records an absolute position together with the host-reported
// movement for this event.
func (p *Pointer) Move(x, y, dx, dy float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.raw.delta.X += dx
	p.raw.delta.Y += dy
	p.raw.position = Vector2{x, y}
	p.raw.positionUpdated = true
	p.raw.hasPosition = true
}

// ButtonDown records a button press.
func (p *Pointer) ButtonDown(b PointerButton) {
	if b >= numPointerButtons {
		return
	}
	p.mu.Lock()
	p.raw.keys[b].Update(ActionDown)
	p.mu.Unlock()
}

// ButtonUp records a button release.
func (p *Pointer) ButtonUp(b PointerButton) {
	if b >= numPointerButtons {
		return
	}
	p.mu.Lock()
	p.raw.keys[b].Update(ActionUp)
	p.mu.Unlock()
}

// WheelEvent records a wheel event. Positive values scroll down (zoom out).
func (p *Pointer) WheelEvent(delta float64) {
	p.mu.Lock()
	p.raw.wheel = delta
	p.raw.wheelUpdated = true
	p.mu.Unlock()
}

// DoubleClick records a double click of the given button.
func (p *Pointer) DoubleClick(b PointerButton) {
	if b >= numPointerButtons {
		return
	}
	p.mu.Lock()
	p.raw.doubleClicked[b] = true
	p.mu.Unlock()
}

// TouchStart maps the first touch point onto a left button press.
func (p *Pointer) TouchStart(x, y float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.raw.position = Vector2{x, y}
	p.raw.positionUpdated = true
	p.raw.lastTouch = Vector2{x, y}
	p.raw.touching = true
	p.raw.hasPosition = true
	p.raw.keys[ButtonLeft].Update(ActionDown)
}

// TouchMove moves the first touch point. The movement is measured from the
// previous touch position.
func (p *Pointer) TouchMove(x, y float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.raw.touching {
		p.raw.delta.X += x - p.raw.lastTouch.X
		p.raw.delta.Y += y - p.raw.lastTouch.Y
	}
	p.raw.lastTouch = Vector2{x, y}
	p.raw.position = Vector2{x, y}
	p.raw.positionUpdated = true
}

// TouchEnd releases the first touch point.
func (p *Pointer) TouchEnd() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.raw.touching = false
	p.raw.keys[ButtonLeft].Update(ActionUp)
}

// --- Frame snapshot ---

// Update collapses the raw events received since the previous call into the
// exported snapshot. Call it exactly once per frame.
func (p *Pointer) Update() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i := range p.keys {
		consumeKey(&p.raw.keys[i], &p.keys[i])

		if p.raw.doubleClicked[i] && p.doubleClicked[i] {
			p.raw.doubleClicked[i] = false
		}
		p.doubleClicked[i] = p.raw.doubleClicked[i]
	}

	if p.raw.wheelUpdated {
		p.Wheel = p.raw.wheel
		p.raw.wheelUpdated = false
	} else {
		p.Wheel = 0
	}

	if p.raw.positionUpdated {
		p.Delta = p.raw.delta
		p.Position = p.raw.position
		if p.hasCanvas {
			p.Position = p.Position.Sub(p.canvas.Min)
		}
		p.raw.delta = Vector2{}
		p.raw.positionUpdated = false
	} else {
		p.Delta = Vector2{}
	}
}

// Reset clears the snapshot and every pending raw event.
func (p *Pointer) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Position = Vector2{}
	p.Delta = Vector2{}
	p.Wheel = 0
	p.keys = [numPointerButtons]Key{}
	p.doubleClicked = [numPointerButtons]bool{}
	p.raw = rawPointer{}
}

// --- Canvas binding ---

// SetCanvas binds the pointer to a canvas occupying bounds in window space.
// Position becomes relative to bounds.Min from the next Update on.
func (p *Pointer) SetCanvas(bounds Box2) {
	p.mu.Lock()
	p.canvas = bounds
	p.hasCanvas = true
	p.mu.Unlock()
}

// ClearCanvas makes Position window-relative again.
func (p *Pointer) ClearCanvas() {
	p.mu.Lock()
	p.hasCanvas = false
	p.mu.Unlock()
}

// InsideCanvas reports whether the pointer lies within the bound canvas.
// Always true when no canvas is bound.
func (p *Pointer) InsideCanvas() bool {
	p.mu.Lock()
	bound, canvas := p.hasCanvas, p.canvas
	p.mu.Unlock()
	if !bound {
		return true
	}
	size := canvas.Size()
	return NewBox2(Vector2{}, size).ContainsPoint(p.Position)
}

// --- Queries ---

// Key returns the snapshot state of a button.
func (p *Pointer) Key(b PointerButton) Key {
	if b >= numPointerButtons {
		return Key{}
	}
	return p.keys[b]
}

// ButtonPressed reports whether b is held this frame.
func (p *Pointer) ButtonPressed(b PointerButton) bool {
	return p.Key(b).Pressed
}

// ButtonJustPressed reports whether b went down this frame.
func (p *Pointer) ButtonJustPressed(b PointerButton) bool {
	return p.Key(b).JustPressed
}

// ButtonJustReleased reports whether b went up this frame.
func (p *Pointer) ButtonJustReleased(b PointerButton) bool {
	return p.Key(b).JustReleased
}

// ButtonDoubleClicked reports whether b was double clicked this frame.
func (p *Pointer) ButtonDoubleClicked(b PointerButton) bool {
	if b >= numPointerButtons {
		return false
	}
	return p.doubleClicked[b]
}
