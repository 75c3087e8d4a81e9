package canopy

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	doubleClickInterval = 300 * time.Millisecond
	doubleClickDistance = 4.0 // pixels
	wheelScale          = 100.0
)

// ebitenButtons maps pointer buttons onto ebiten mouse buttons.
var ebitenButtons = [numPointerButtons]ebiten.MouseButton{
	ButtonLeft:    ebiten.MouseButtonLeft,
	ButtonMiddle:  ebiten.MouseButtonMiddle,
	ButtonRight:   ebiten.MouseButtonRight,
	ButtonBack:    ebiten.MouseButton3,
	ButtonForward: ebiten.MouseButton4,
}

// clickTracker turns two close presses of one button into a double click.
type clickTracker struct {
	last    [numPointerButtons]time.Time
	lastPos [numPointerButtons]Vector2
}

// press records a press and reports whether it completes a double click.
// A completed double click resets the button, so a third press starts over.
func (c *clickTracker) press(b PointerButton, pos Vector2, now time.Time) bool {
	if b >= numPointerButtons {
		return false
	}
	last := c.last[b]
	if !last.IsZero() &&
		now.Sub(last) <= doubleClickInterval &&
		pos.Distance(c.lastPos[b]) <= doubleClickDistance {
		c.last[b] = time.Time{}
		return true
	}
	c.last[b] = now
	c.lastPos[b] = pos
	return false
}

// EbitenInput is an InputSource reading mouse, wheel, the first touch point
// and the keyboard from ebiten. It must be polled from ebiten's Update.
type EbitenInput struct {
	Pointer  *Pointer
	Keyboard *Keyboard

	clicks    clickTracker
	cursor    Vector2
	hasCursor bool
	touchID   ebiten.TouchID
	touching  bool
	keyBuf    []ebiten.Key
	touchBuf  []ebiten.TouchID
	closed    bool

	now func() time.Time
}

// NewEbitenInput returns a source feeding p and, when non-nil, kb.
func NewEbitenInput(p *Pointer, kb *Keyboard) *EbitenInput {
	return &EbitenInput{Pointer: p, Keyboard: kb, now: time.Now}
}

// Poll reads this tick's input from ebiten.
func (e *EbitenInput) Poll() {
	if e.closed || e.Pointer == nil {
		return
	}
	e.pollMouse()
	e.pollTouch()
	e.pollKeys()
}

// Close detaches the source. Later polls contribute nothing.
func (e *EbitenInput) Close() error {
	e.closed = true
	return nil
}

func (e *EbitenInput) pollMouse() {
	p := e.Pointer
	cx, cy := ebiten.CursorPosition()
	cur := Vector2{float64(cx), float64(cy)}
	if !e.touching && (!e.hasCursor || cur != e.cursor) {
		p.MoveTo(cur.X, cur.Y)
		e.cursor = cur
		e.hasCursor = true
	}

	for b, mb := range ebitenButtons {
		btn := PointerButton(b)
		if inpututil.IsMouseButtonJustPressed(mb) {
			p.ButtonDown(btn)
			if e.clicks.press(btn, cur, e.now()) {
				p.DoubleClick(btn)
			}
		}
		if inpututil.IsMouseButtonJustReleased(mb) {
			p.ButtonUp(btn)
		}
	}

	// ebiten reports wheel up as positive; pointers use the browser sign.
	if _, dy := ebiten.Wheel(); dy != 0 {
		p.WheelEvent(-dy * wheelScale)
	}
}

func (e *EbitenInput) pollTouch() {
	p := e.Pointer
	if !e.touching {
		e.touchBuf = inpututil.AppendJustPressedTouchIDs(e.touchBuf[:0])
		if len(e.touchBuf) == 0 {
			return
		}
		e.touchID = e.touchBuf[0]
		e.touching = true
		x, y := ebiten.TouchPosition(e.touchID)
		pos := Vector2{float64(x), float64(y)}
		p.TouchStart(pos.X, pos.Y)
		if e.clicks.press(ButtonLeft, pos, e.now()) {
			p.DoubleClick(ButtonLeft)
		}
		return
	}
	if inpututil.IsTouchJustReleased(e.touchID) {
		e.touching = false
		p.TouchEnd()
		return
	}
	x, y := ebiten.TouchPosition(e.touchID)
	p.TouchMove(float64(x), float64(y))
}

func (e *EbitenInput) pollKeys() {
	kb := e.Keyboard
	if kb == nil {
		return
	}
	e.keyBuf = inpututil.AppendJustPressedKeys(e.keyBuf[:0])
	for _, k := range e.keyBuf {
		kb.KeyDown(k)
	}
	e.keyBuf = inpututil.AppendJustReleasedKeys(e.keyBuf[:0])
	for _, k := range e.keyBuf {
		kb.KeyUp(k)
	}
}
