package canopy

// injectKind selects what a synthetic event does to the pointer.
type injectKind uint8

const (
	injectPress injectKind = iota
	injectMove
	injectRelease
	injectWheel
	injectDoubleClick
	injectIdle
)

// syntheticPointerEvent represents a single injected pointer event.
// Positions are window coordinates, fed through the same raw event methods
// as real input.
type syntheticPointerEvent struct {
	kind   injectKind
	pos    Vector2
	button PointerButton
	wheel  float64
}

// Injector is an InputSource replaying scripted pointer events, one event per
// Poll. It drives automated tests and the test runner.
type Injector struct {
	pointer *Pointer
	queue   []syntheticPointerEvent
	closed  bool
}

// NewInjector returns an injector writing into p.
func NewInjector(p *Pointer) *Injector {
	return &Injector{pointer: p}
}

// Injector returns the renderer's injector, creating and registering it on
// first use.
func (r *Renderer) Injector() *Injector {
	if r.injector == nil {
		r.injector = NewInjector(r.pointer)
		r.AddInputSource(r.injector)
	}
	return r.injector
}

// Pending returns the number of queued events.
func (in *Injector) Pending() int {
	return len(in.queue)
}

// Poll applies the next queued event to the pointer.
func (in *Injector) Poll() {
	if in.closed || len(in.queue) == 0 {
		return
	}
	evt := in.queue[0]
	copy(in.queue, in.queue[1:])
	in.queue[len(in.queue)-1] = syntheticPointerEvent{}
	in.queue = in.queue[:len(in.queue)-1]

	p := in.pointer
	switch evt.kind {
	case injectPress:
		p.SetPosition(evt.pos.X, evt.pos.Y)
		p.ButtonDown(evt.button)
	case injectMove:
		p.MoveTo(evt.pos.X, evt.pos.Y)
	case injectRelease:
		p.SetPosition(evt.pos.X, evt.pos.Y)
		p.ButtonUp(evt.button)
	case injectWheel:
		p.WheelEvent(evt.wheel)
	case injectDoubleClick:
		p.SetPosition(evt.pos.X, evt.pos.Y)
		p.DoubleClick(evt.button)
	}
}

// Close drops the queue. Later injections are ignored.
func (in *Injector) Close() error {
	in.closed = true
	in.queue = nil
	return nil
}

func (in *Injector) push(evt syntheticPointerEvent) {
	if in.closed {
		return
	}
	in.queue = append(in.queue, evt)
}

// InjectPress queues a press of button b at (x, y).
func (in *Injector) InjectPress(x, y float64, b PointerButton) {
	in.push(syntheticPointerEvent{kind: injectPress, pos: Vector2{x, y}, button: b})
}

// InjectMove queues a pointer move to (x, y). Held buttons stay held, so a
// move between InjectPress and InjectRelease drags.
func (in *Injector) InjectMove(x, y float64) {
	in.push(syntheticPointerEvent{kind: injectMove, pos: Vector2{x, y}})
}

// InjectRelease queues a release of button b at (x, y).
func (in *Injector) InjectRelease(x, y float64, b PointerButton) {
	in.push(syntheticPointerEvent{kind: injectRelease, pos: Vector2{x, y}, button: b})
}

// InjectWheel queues a wheel event.
func (in *Injector) InjectWheel(delta float64) {
	in.push(syntheticPointerEvent{kind: injectWheel, wheel: delta})
}

// InjectDoubleClick queues a double click of the left button at (x, y).
func (in *Injector) InjectDoubleClick(x, y float64) {
	in.push(syntheticPointerEvent{kind: injectDoubleClick, pos: Vector2{x, y}, button: ButtonLeft})
}

// InjectWait queues n frames without input.
func (in *Injector) InjectWait(n int) {
	for i := 0; i < n; i++ {
		in.push(syntheticPointerEvent{kind: injectIdle})
	}
}

// InjectClick is a convenience that queues a left press followed by a
// release at the same position. Consumes two frames.
func (in *Injector) InjectClick(x, y float64) {
	in.InjectPress(x, y, ButtonLeft)
	in.InjectRelease(x, y, ButtonLeft)
}

// InjectDrag queues a full left-button drag: press at from, linearly
// interpolated moves over frames-2 intermediate frames, and release at to.
// The total sequence consumes frames frames. Minimum frames is 2 (press +
// release).
func (in *Injector) InjectDrag(from, to Vector2, frames int) {
	if frames < 2 {
		frames = 2
	}
	in.InjectPress(from.X, from.Y, ButtonLeft)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		p := from.Lerp(to, t)
		in.InjectMove(p.X, p.Y)
	}
	in.InjectRelease(to.X, to.Y, ButtonLeft)
}
