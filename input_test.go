package canopy

import (
	"math"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func newTestRenderer() (*Renderer, *recordingSurface) {
	s := newRecordingSurface(800, 600)
	return NewRenderer(s, NewPointer()), s
}

// newHitBox returns a draggable box node covering (x, y)-(x+w, y+h) in its
// parent's space.
func newHitBox(name string, x, y, w, h float64) *Node {
	n := NewShapeNode(name, NewBoxShape(w, h, ColorWhite))
	n.Position = Vec2(x, y)
	n.Draggable = true
	return n
}

// mockStore records interaction events forwarded to the ECS bridge.
type mockStore struct {
	events []InteractionEvent
}

func (m *mockStore) EmitEvent(e InteractionEvent) {
	m.events = append(m.events, e)
}

// --- End-to-end ---

func TestCircleDragEndToEnd(t *testing.T) {
	root := NewNode("root")
	circle := NewShapeNode("circle", NewCircleShape(5, ColorWhite))
	circle.Position = Vec2(100, 100)
	circle.Draggable = true
	root.AddChild(circle)

	r, _ := newTestRenderer()
	vp := NewViewport()
	p := r.Pointer()

	var down int
	circle.OnButtonDown = func(PointerContext) { down++ }
	var drags []Vector2
	r.OnEvent(EventDrag, func(e InteractionEvent) {
		if e.Node == circle {
			drags = append(drags, e.Delta)
		}
	})

	// Frame 0: matrices are computed at the end of the first frame.
	p.MoveTo(100, 100)
	r.Render(root, vp)

	// Frame 1: press on the circle.
	p.ButtonDown(ButtonLeft)
	r.Render(root, vp)
	if down != 1 {
		t.Fatalf("OnButtonDown calls = %d, want 1", down)
	}
	if !circle.BeingDragged() {
		t.Fatal("circle should be dragged after the press")
	}

	// Frame 2: move by (10, 0).
	p.MoveTo(110, 100)
	r.Render(root, vp)

	if len(drags) == 0 {
		t.Fatal("no drag events")
	}
	assertVec(t, "last drag delta", drags[len(drags)-1], Vec2(10, 0))
	assertNear(t, "circle.Position.X", circle.Position.X, 110)
	assertNear(t, "circle.Position.Y", circle.Position.Y, 100)

	// Frame 3: release.
	p.ButtonUp(ButtonLeft)
	r.Render(root, vp)
	if circle.BeingDragged() {
		t.Error("release should end the drag")
	}
}

// --- Topmost wins ---

func TestTopmostLayerWinsDragStart(t *testing.T) {
	root := NewNode("root")
	low := newHitBox("low", 0, 0, 100, 100)
	high := newHitBox("high", 50, 50, 100, 100)
	high.Layer = 1
	// low is added last, so tree order alone would favor it.
	root.AddChild(high)
	root.AddChild(low)

	var lowDown, highDown int
	low.OnButtonDown = func(PointerContext) { lowDown++ }
	high.OnButtonDown = func(PointerContext) { highDown++ }

	r, _ := newTestRenderer()
	vp := NewViewport()
	r.Pointer().MoveTo(75, 75)
	r.Render(root, vp)

	r.Pointer().ButtonDown(ButtonLeft)
	r.Render(root, vp)

	if highDown != 1 {
		t.Errorf("high OnButtonDown = %d, want 1", highDown)
	}
	if lowDown != 0 {
		t.Errorf("low OnButtonDown = %d, want 0", lowDown)
	}
	if !high.BeingDragged() || low.BeingDragged() {
		t.Error("only the higher layer should be dragged")
	}
}

func TestDeeperLevelWinsWithinLayer(t *testing.T) {
	root := NewNode("root")
	parent := newHitBox("parent", 0, 0, 100, 100)
	child := newHitBox("child", 10, 10, 20, 20)
	root.AddChild(parent)
	parent.AddChild(child)

	r, _ := newTestRenderer()
	vp := NewViewport()
	r.Pointer().MoveTo(15, 15)
	r.Render(root, vp)
	r.Pointer().ButtonDown(ButtonLeft)
	r.Render(root, vp)

	if !child.BeingDragged() || parent.BeingDragged() {
		t.Error("the deeper node should start the drag")
	}
}

func TestNonDraggableDoesNotStopSearch(t *testing.T) {
	root := NewNode("root")
	under := newHitBox("under", 0, 0, 100, 100)
	over := newHitBox("over", 0, 0, 100, 100)
	over.Draggable = false
	over.Layer = 1
	root.AddChild(under)
	root.AddChild(over)

	var overDown, underDown int
	over.OnButtonDown = func(PointerContext) { overDown++ }
	under.OnButtonDown = func(PointerContext) { underDown++ }

	r, _ := newTestRenderer()
	vp := NewViewport()
	r.Pointer().MoveTo(50, 50)
	r.Render(root, vp)
	r.Pointer().ButtonDown(ButtonLeft)
	r.Render(root, vp)

	if overDown != 1 || underDown != 1 {
		t.Errorf("button down = over %d, under %d, want 1, 1", overDown, underDown)
	}
	if !under.BeingDragged() {
		t.Error("the draggable node below should be dragged")
	}
}

// --- Hover ---

func TestEnterOverLeave(t *testing.T) {
	root := NewNode("root")
	box := newHitBox("box", 0, 0, 10, 10)
	root.AddChild(box)

	var events []string
	box.OnPointerEnter = func(PointerContext) { events = append(events, "enter") }
	box.OnPointerOver = func(PointerContext) { events = append(events, "over") }
	box.OnPointerLeave = func(PointerContext) { events = append(events, "leave") }

	r, _ := newTestRenderer()
	vp := NewViewport()
	p := r.Pointer()

	p.MoveTo(50, 50)
	r.Render(root, vp)
	if len(events) != 0 {
		t.Fatalf("events outside = %v", events)
	}

	p.MoveTo(5, 5)
	r.Render(root, vp)
	r.Render(root, vp)
	if !box.PointerInside() {
		t.Error("PointerInside should be true")
	}

	p.MoveTo(50, 50)
	r.Render(root, vp)
	if box.PointerInside() {
		t.Error("PointerInside should be false")
	}

	want := []string{"enter", "over", "over", "leave"}
	if len(events) != len(want) {
		t.Fatalf("events = %v, want %v", events, want)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("event %d = %s, want %s", i, events[i], want[i])
		}
	}
}

func TestPointerEventsDisabled(t *testing.T) {
	root := NewNode("root")
	box := newHitBox("box", 0, 0, 10, 10)
	box.PointerEvents = false
	root.AddChild(box)

	var entered bool
	box.OnPointerEnter = func(PointerContext) { entered = true }

	r, _ := newTestRenderer()
	vp := NewViewport()
	r.Pointer().MoveTo(5, 5)
	r.Render(root, vp)
	r.Render(root, vp)
	if entered {
		t.Error("node with PointerEvents off should not be hit")
	}
}

func TestInvisibleNodeNotHit(t *testing.T) {
	root := NewNode("root")
	parent := NewNode("parent")
	box := newHitBox("box", 0, 0, 10, 10)
	root.AddChild(parent)
	parent.AddChild(box)

	var entered bool
	box.OnPointerEnter = func(PointerContext) { entered = true }

	r, _ := newTestRenderer()
	vp := NewViewport()
	r.Pointer().MoveTo(5, 5)
	r.Render(root, vp)
	parent.Visible = false
	entered = false
	r.Render(root, vp)
	if entered {
		t.Error("nodes under an invisible parent should not be hit")
	}
}

// --- Buttons ---

func TestButtonPressedUpAndDoubleClick(t *testing.T) {
	root := NewNode("root")
	box := newHitBox("box", 0, 0, 10, 10)
	box.Draggable = false
	root.AddChild(box)

	var pressed, up, dbl int
	box.OnButtonPressed = func(PointerContext) { pressed++ }
	box.OnButtonUp = func(PointerContext) { up++ }
	box.OnDoubleClick = func(PointerContext) { dbl++ }

	r, _ := newTestRenderer()
	vp := NewViewport()
	p := r.Pointer()
	p.MoveTo(5, 5)
	r.Render(root, vp)

	p.ButtonDown(ButtonLeft)
	r.Render(root, vp)
	r.Render(root, vp)
	p.ButtonUp(ButtonLeft)
	p.DoubleClick(ButtonLeft)
	r.Render(root, vp)
	r.Render(root, vp)

	if pressed != 2 {
		t.Errorf("OnButtonPressed = %d, want 2", pressed)
	}
	if up != 1 {
		t.Errorf("OnButtonUp = %d, want 1", up)
	}
	if dbl != 1 {
		t.Errorf("OnDoubleClick = %d, want 1", dbl)
	}
}

func TestInteractionButton(t *testing.T) {
	root := NewNode("root")
	box := newHitBox("box", 0, 0, 10, 10)
	root.AddChild(box)

	var downs []PointerButton
	box.OnButtonDown = func(ctx PointerContext) { downs = append(downs, ctx.Button) }

	r, _ := newTestRenderer()
	r.InteractionButton = ButtonRight
	vp := NewViewport()
	p := r.Pointer()
	p.MoveTo(5, 5)
	r.Render(root, vp)

	p.ButtonDown(ButtonLeft)
	r.Render(root, vp)
	if len(downs) != 0 {
		t.Fatal("left button should be ignored")
	}
	p.ButtonDown(ButtonRight)
	r.Render(root, vp)
	if len(downs) != 1 || downs[0] != ButtonRight {
		t.Errorf("downs = %v, want [right]", downs)
	}
}

// --- Drag ---

func TestDragEndFiresOutsideNode(t *testing.T) {
	root := NewNode("root")
	box := newHitBox("box", 0, 0, 10, 10)
	box.OnPointerDrag = func(DragContext) {} // stay in place
	root.AddChild(box)

	var ends int
	box.OnPointerDragEnd = func(PointerContext) { ends++ }

	r, _ := newTestRenderer()
	vp := NewViewport()
	p := r.Pointer()
	p.MoveTo(5, 5)
	r.Render(root, vp)
	p.ButtonDown(ButtonLeft)
	r.Render(root, vp)
	p.MoveTo(300, 300)
	r.Render(root, vp)
	p.ButtonUp(ButtonLeft)
	r.Render(root, vp)

	if ends != 1 {
		t.Errorf("OnPointerDragEnd = %d, want 1", ends)
	}
	if box.BeingDragged() {
		t.Error("drag should end on release")
	}
	if box.Position != (Vector2{}) {
		t.Errorf("custom drag hook should replace the default, Position = %v", box.Position)
	}
}

func TestDragThroughZoomedViewport(t *testing.T) {
	root := NewNode("root")
	box := newHitBox("box", 0, 0, 10, 10)
	root.AddChild(box)

	r, _ := newTestRenderer()
	vp := NewViewport()
	vp.Scale = 2
	p := r.Pointer()

	// World (5, 5) is canvas (10, 10).
	p.MoveTo(10, 10)
	r.Render(root, vp)
	p.ButtonDown(ButtonLeft)
	r.Render(root, vp)
	if !box.BeingDragged() {
		t.Fatal("box should be dragged")
	}
	p.MoveTo(30, 10)
	r.Render(root, vp)

	assertVec(t, "Position", box.Position, Vec2(10, 0))
}

func TestDragDeltaInParentSpace(t *testing.T) {
	root := NewNode("root")
	parent := NewNode("parent")
	parent.Position = Vec2(100, 100)
	parent.Rotation = math.Pi / 2
	child := NewShapeNode("child", NewCircleShape(5, ColorWhite))
	child.Draggable = true
	root.AddChild(parent)
	parent.AddChild(child)

	var last DragContext
	child.OnPointerDrag = func(ctx DragContext) {
		last = ctx
		defaultDrag(ctx)
	}

	r, _ := newTestRenderer()
	vp := NewViewport()
	p := r.Pointer()
	p.MoveTo(100, 100)
	r.Render(root, vp)
	p.ButtonDown(ButtonLeft)
	r.Render(root, vp)
	p.MoveTo(110, 100)
	r.Render(root, vp)

	assertVec(t, "WorldDelta", last.WorldDelta, Vec2(10, 0))
	assertVec(t, "Delta", last.Delta, Vec2(0, -10))
	assertVec(t, "child world", child.LocalToWorld(Vector2{}), Vec2(110, 100))
}

func TestIgnoreViewportUsesCanvasPointer(t *testing.T) {
	root := NewNode("root")
	hud := newHitBox("hud", 0, 0, 10, 10)
	hud.IgnoreViewport = true
	world := newHitBox("world", 0, 0, 10, 10)
	root.AddChild(hud)
	root.AddChild(world)

	r, _ := newTestRenderer()
	vp := NewViewport()
	vp.Position = Vec2(100, 0)
	r.Pointer().MoveTo(5, 5)
	r.Render(root, vp)
	r.Render(root, vp)

	if !hud.PointerInside() {
		t.Error("screen-space node should be hit at the canvas position")
	}
	if world.PointerInside() {
		t.Error("world node is at canvas x 100 and should be missed")
	}
}

func TestSingularViewportHitsNothing(t *testing.T) {
	root := NewNode("root")
	box := newHitBox("box", -10, -10, 20, 20)
	root.AddChild(box)

	r, _ := newTestRenderer()
	vp := NewViewport()
	vp.Scale = 0
	r.Pointer().MoveTo(0, 0)
	r.Render(root, vp)
	r.Pointer().ButtonDown(ButtonLeft)
	r.Render(root, vp)

	if box.PointerInside() || box.BeingDragged() {
		t.Error("a singular viewport should miss every node")
	}
}

func TestSingularNodeNotHit(t *testing.T) {
	root := NewNode("root")
	box := newHitBox("box", 0, 0, 10, 10)
	box.Scale = Vec2(0, 0)
	root.AddChild(box)

	r, _ := newTestRenderer()
	vp := NewViewport()
	r.Pointer().MoveTo(0, 0)
	r.Render(root, vp)
	r.Render(root, vp)
	if box.PointerInside() {
		t.Error("a zero-scale node should never be hit")
	}
}

// --- Update hooks ---

func TestOnUpdateRunsForVisibleNodes(t *testing.T) {
	root := NewNode("root")
	a := NewNode("a")
	b := NewNode("b")
	b.Visible = false
	root.AddChild(a)
	root.AddChild(b)

	var aCalls, bCalls int
	a.OnUpdate = func() { aCalls++ }
	b.OnUpdate = func() { bCalls++ }

	r, _ := newTestRenderer()
	r.Render(root, nil)
	r.Render(root, nil)
	if aCalls != 2 || bCalls != 0 {
		t.Errorf("OnUpdate calls = %d, %d, want 2, 0", aCalls, bCalls)
	}
}

// --- Dispatch ---

func TestDispatchOrder(t *testing.T) {
	root := NewNode("root")
	box := newHitBox("box", 0, 0, 10, 10)
	box.EntityID = 7
	root.AddChild(box)

	var order []string
	r, _ := newTestRenderer()
	store := &mockStore{}
	r.SetEntityStore(store)
	r.OnEvent(EventPointerEnter, func(InteractionEvent) { order = append(order, "scene") })
	box.OnPointerEnter = func(PointerContext) {
		order = append(order, "node")
		if len(store.events) != 0 {
			t.Error("store should receive the event after the node hook")
		}
	}

	vp := NewViewport()
	r.Pointer().MoveTo(5, 5)
	r.Render(root, vp)
	r.Render(root, vp)

	if len(order) != 2 || order[0] != "scene" || order[1] != "node" {
		t.Errorf("order = %v, want [scene node]", order)
	}
	found := false
	for _, e := range store.events {
		if e.Type == EventPointerEnter {
			found = true
			if e.EntityID != 7 || e.NodeID != box.ID {
				t.Errorf("event = %+v", e)
			}
		}
	}
	if !found {
		t.Error("store did not receive the enter event")
	}
}

func TestEntityStoreSkipsZeroEntity(t *testing.T) {
	root := NewNode("root")
	box := newHitBox("box", 0, 0, 10, 10)
	root.AddChild(box)

	r, _ := newTestRenderer()
	store := &mockStore{}
	r.SetEntityStore(store)
	vp := NewViewport()
	r.Pointer().MoveTo(5, 5)
	r.Render(root, vp)
	r.Render(root, vp)
	if len(store.events) != 0 {
		t.Errorf("events = %d, want 0 for EntityID 0", len(store.events))
	}
}

func TestCallbackHandleRemove(t *testing.T) {
	r, _ := newTestRenderer()
	var a, b int
	ha := r.OnEvent(EventPointerOver, func(InteractionEvent) { a++ })
	r.OnEvent(EventPointerOver, func(InteractionEvent) { b++ })

	root := NewNode("root")
	root.AddChild(newHitBox("box", 0, 0, 10, 10))
	vp := NewViewport()
	r.Pointer().MoveTo(5, 5)
	r.Render(root, vp)

	ha.Remove()
	ha.Remove() // second remove is a no-op
	r.Render(root, vp)

	if a != 1 || b != 2 {
		t.Errorf("calls = %d, %d, want 1, 2", a, b)
	}
	if n := len(r.handlers.handlers[EventPointerOver]); n != 1 {
		t.Errorf("registered handlers = %d, want 1", n)
	}
}

func TestOnEventInvalid(t *testing.T) {
	r, _ := newTestRenderer()
	h := r.OnEvent(numEventTypes, func(InteractionEvent) {})
	h.Remove() // zero handle, should not panic
	h = r.OnEvent(EventDrag, nil)
	if len(r.handlers.handlers[EventDrag]) != 0 {
		t.Error("nil callback should not be registered")
	}
	h.Remove()
}

func TestModifiersFromKeyboard(t *testing.T) {
	root := NewNode("root")
	box := newHitBox("box", 0, 0, 10, 10)
	root.AddChild(box)

	var mods KeyModifiers
	box.OnButtonDown = func(ctx PointerContext) { mods = ctx.Modifiers }

	r, _ := newTestRenderer()
	r.Keyboard = NewKeyboard()
	vp := NewViewport()
	r.Pointer().MoveTo(5, 5)
	r.Render(root, vp)

	r.Keyboard.KeyDown(ebiten.KeyShiftLeft)
	r.Pointer().ButtonDown(ButtonLeft)
	r.Render(root, vp)

	if mods&ModShift == 0 {
		t.Errorf("Modifiers = %b, want shift", mods)
	}
}

func TestDefaultDragZeroDeltaKeepsClean(t *testing.T) {
	n := NewNode("n")
	n.MatrixAutoUpdate = false
	n.UpdateMatrix()
	defaultDrag(DragContext{PointerContext: PointerContext{Node: n}})
	if n.transformDirty {
		t.Error("zero delta should not dirty the node")
	}
	defaultDrag(DragContext{PointerContext: PointerContext{Node: n}, Delta: Vec2(1, 2)})
	if !n.transformDirty || n.Position != Vec2(1, 2) {
		t.Error("default drag should move and dirty the node")
	}
}
