package canopy

import "github.com/google/uuid"

// PointerContext carries the pointer state handed to node interaction hooks.
type PointerContext struct {
	Node     *Node
	Pointer  *Pointer
	Viewport *Viewport
	// World is the pointer in world space, or in canvas space for nodes that
	// ignore the viewport.
	World Vector2
	// Local is the pointer in the node's local space.
	Local     Vector2
	Button    PointerButton
	Modifiers KeyModifiers
}

// DragContext extends PointerContext with the movement of one drag frame.
type DragContext struct {
	PointerContext
	// Delta is the movement in the dragged node's parent space, ready to be
	// added to its Position.
	Delta Vector2
	// WorldDelta is the same movement in world space.
	WorldDelta Vector2
}

// InputSource feeds raw host events into a Pointer and Keyboard. The
// Renderer polls every registered source once per frame, before the pointer
// snapshot is taken.
type InputSource interface {
	Poll()
	Close() error
}

// EntityStore is the interface for optional ECS integration.
// When set on a Renderer, interaction events are forwarded to the ECS.
type EntityStore interface {
	EmitEvent(event InteractionEvent)
}

// InteractionEvent is the flat form of an interaction, passed to scene-level
// listeners and the ECS bridge.
type InteractionEvent struct {
	Type      EventType
	EntityID  uint32
	NodeID    uuid.UUID
	Node      *Node
	World     Vector2
	Local     Vector2
	Button    PointerButton
	Modifiers KeyModifiers
	// Drag fields (valid for EventDrag)
	Delta      Vector2
	WorldDelta Vector2
}

// --- Handler registry ---

type eventHandler struct {
	id uint32
	fn func(InteractionEvent)
}

type handlerRegistry struct {
	handlers [numEventTypes][]eventHandler
	nextID   uint32
}

// CallbackHandle allows removing a registered scene-level callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires.
// The entry is removed from the slice to avoid nil iteration waste.
func (h CallbackHandle) Remove() {
	if h.reg == nil || h.event >= numEventTypes {
		return
	}
	s := h.reg.handlers[h.event]
	for i := range s {
		if s[i].id == h.id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = eventHandler{}
			h.reg.handlers[h.event] = s[:len(s)-1]
			return
		}
	}
}

func (reg *handlerRegistry) add(event EventType, fn func(InteractionEvent)) CallbackHandle {
	if event >= numEventTypes || fn == nil {
		return CallbackHandle{}
	}
	reg.nextID++
	id := reg.nextID
	reg.handlers[event] = append(reg.handlers[event], eventHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: reg, event: event}
}

// OnEvent registers a scene-level callback for one event type. Scene-level
// callbacks run before the node's own hook.
func (r *Renderer) OnEvent(event EventType, fn func(InteractionEvent)) CallbackHandle {
	return r.handlers.add(event, fn)
}

// --- Hit-test & event pass ---

// processPointer runs the hit-test and event pass over the sorted list.
// Matrices are the ones computed at the end of the previous frame.
func (r *Renderer) processPointer(vp *Viewport) {
	p := r.pointer
	btn := r.InteractionButton
	key := p.Key(btn)
	doubleClicked := p.ButtonDoubleClicked(btn)
	mods := r.modifiers()
	world := vp.InverseMatrix().TransformPoint(p.Position)
	warned := false

	for _, n := range r.sorted {
		if !n.PointerEvents {
			continue
		}
		point := world
		if n.IgnoreViewport {
			point = p.Position
		}
		local := n.WorldToLocal(point)
		if !local.IsFinite() && n.Shape != nil && !warned {
			Logger().Warn("canopy: non-finite hit-test point", "node", n.Name, "id", n.ID)
			warned = true
		}
		ctx := PointerContext{
			Node: n, Pointer: p, Viewport: vp,
			World: point, Local: local,
			Button: btn, Modifiers: mods,
		}

		if n.IsInside(local) {
			if !n.pointerInside {
				n.pointerInside = true
				r.fire(EventPointerEnter, n.OnPointerEnter, ctx)
			}
			r.fire(EventPointerOver, n.OnPointerOver, ctx)
			if doubleClicked {
				r.fire(EventDoubleClick, n.OnDoubleClick, ctx)
			}
			if key.Pressed {
				r.fire(EventButtonPressed, n.OnButtonPressed, ctx)
			}
			if key.JustReleased {
				r.fire(EventButtonUp, n.OnButtonUp, ctx)
			}
			if key.JustPressed {
				r.fire(EventButtonDown, n.OnButtonDown, ctx)
				if n.Draggable {
					n.beingDragged = true
					r.fire(EventDragStart, n.OnPointerDragStart, ctx)
					break
				}
			}
		} else if n.pointerInside {
			n.pointerInside = false
			r.fire(EventPointerLeave, n.OnPointerLeave, ctx)
		}

		if key.JustReleased && n.beingDragged {
			n.beingDragged = false
			r.fire(EventDragEnd, n.OnPointerDragEnd, ctx)
		}
	}
}

// processDrag moves every node being dragged, then runs the update hooks.
func (r *Renderer) processDrag(vp *Viewport) {
	p := r.pointer
	inv := vp.InverseMatrix()
	prev := p.Position.Sub(p.Delta)
	world := inv.TransformPoint(p.Position)
	worldDelta := world.Sub(inv.TransformPoint(prev))
	mods := r.modifiers()

	for _, n := range r.sorted {
		if n.beingDragged && !n.destroyed {
			point, delta := world, worldDelta
			if n.IgnoreViewport {
				point, delta = p.Position, p.Delta
			}
			ctx := DragContext{
				PointerContext: PointerContext{
					Node: n, Pointer: p, Viewport: vp,
					World: point, Local: n.WorldToLocal(point),
					Button: r.InteractionButton, Modifiers: mods,
				},
				Delta:      parentDelta(n, delta),
				WorldDelta: delta,
			}
			r.fireDrag(n, ctx)
		}
		if n.OnUpdate != nil {
			n.OnUpdate()
		}
	}
}

// parentDelta converts a world-space movement into n's parent space.
func parentDelta(n *Node, world Vector2) Vector2 {
	if n.parent == nil {
		return world
	}
	d := n.parent.inverseGlobalMatrix.TransformVector(world)
	if !d.IsFinite() {
		return Vector2{}
	}
	return d
}

// defaultDrag is the drag behavior of nodes without an OnPointerDrag hook.
func defaultDrag(ctx DragContext) {
	if ctx.Delta == (Vector2{}) {
		return
	}
	n := ctx.Node
	n.Position = n.Position.Add(ctx.Delta)
	n.transformDirty = true
}

// --- Dispatch ---

func (r *Renderer) fire(event EventType, hook func(PointerContext), ctx PointerContext) {
	ev := interactionEvent(event, ctx)
	for _, h := range r.handlers.handlers[event] {
		h.fn(ev)
	}
	if hook != nil {
		hook(ctx)
	}
	r.emitInteractionEvent(ev)
}

func (r *Renderer) fireDrag(n *Node, ctx DragContext) {
	ev := interactionEvent(EventDrag, ctx.PointerContext)
	ev.Delta = ctx.Delta
	ev.WorldDelta = ctx.WorldDelta
	for _, h := range r.handlers.handlers[EventDrag] {
		h.fn(ev)
	}
	if n.OnPointerDrag != nil {
		n.OnPointerDrag(ctx)
	} else {
		defaultDrag(ctx)
	}
	r.emitInteractionEvent(ev)
}

func interactionEvent(event EventType, ctx PointerContext) InteractionEvent {
	ev := InteractionEvent{
		Type:      event,
		World:     ctx.World,
		Local:     ctx.Local,
		Button:    ctx.Button,
		Modifiers: ctx.Modifiers,
	}
	if ctx.Node != nil {
		ev.Node = ctx.Node
		ev.NodeID = ctx.Node.ID
		ev.EntityID = ctx.Node.EntityID
	}
	return ev
}

func (r *Renderer) modifiers() KeyModifiers {
	if r.Keyboard == nil {
		return 0
	}
	return r.Keyboard.Modifiers()
}

// --- ECS bridge ---

func (r *Renderer) emitInteractionEvent(ev InteractionEvent) {
	if r.store == nil || ev.EntityID == 0 {
		return
	}
	r.store.EmitEvent(ev)
}
