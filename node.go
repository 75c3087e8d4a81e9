package canopy

import (
	"github.com/google/uuid"
)

// Node is the fundamental scene graph element. A single flat struct is used for
// all node kinds; what a node looks like and where it can be hit is decided by
// its Shape.
//
// A node owns its children. The parent link is a plain back pointer and never
// keeps a node alive on its own.
type Node struct {
	// Identity
	ID   uuid.UUID
	Name string

	// Hierarchy
	parent   *Node
	children []*Node
	level    int

	// Transform (local)
	Position Vector2
	Origin   Vector2
	Scale    Vector2
	Rotation float64

	// MatrixAutoUpdate recomputes the local matrix every frame. When false the
	// matrix is only recomputed after a setter or MarkDirty.
	MatrixAutoUpdate bool

	// Computed (unexported, refreshed by UpdateMatrix)
	matrix              Matrix
	globalMatrix        Matrix
	inverseGlobalMatrix Matrix
	transformDirty      bool

	// Visibility & interaction
	Visible        bool
	PointerEvents  bool
	IgnoreViewport bool
	Draggable      bool

	// Ordering. Higher layers are hit first and drawn last.
	Layer int

	// Masking
	IsMask              bool
	SaveContextState    bool
	RestoreContextState bool
	masks               []*Node

	// Transient interaction state, owned by the Renderer.
	pointerInside bool
	beingDragged  bool

	// Shape decides hit-testing and, through the optional Drawer, Styler and
	// Clipper interfaces, how the node is rendered.
	Shape Shape

	// Metadata
	UserData any
	EntityID uint32

	// Lifecycle callbacks
	OnAdd    func(parent *Node)
	OnRemove func(parent *Node)
	OnUpdate func()

	// Per-node interaction callbacks (nil by default; zero cost when unused)
	OnPointerEnter     func(PointerContext)
	OnPointerOver      func(PointerContext)
	OnPointerLeave     func(PointerContext)
	OnButtonDown       func(PointerContext)
	OnButtonPressed    func(PointerContext)
	OnButtonUp         func(PointerContext)
	OnDoubleClick      func(PointerContext)
	OnPointerDragStart func(PointerContext)
	OnPointerDragEnd   func(PointerContext)
	OnPointerDrag      func(DragContext)

	// Internal
	destroyed bool
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ID = uuid.New()
	n.Scale = Vector2{1, 1}
	n.MatrixAutoUpdate = true
	n.Visible = true
	n.PointerEvents = true
	n.SaveContextState = true
	n.RestoreContextState = true
	n.matrix = Identity()
	n.globalMatrix = Identity()
	n.inverseGlobalMatrix = Identity()
	n.transformDirty = true
}

// NewNode creates a node with no shape.
func NewNode(name string) *Node {
	n := &Node{Name: name}
	nodeDefaults(n)
	return n
}

// NewShapeNode creates a node drawn and hit-tested by shape.
func NewShapeNode(name string, shape Shape) *Node {
	n := NewNode(name)
	n.Shape = shape
	return n
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	n.insertChild(child, -1)
}

// AddChildAt inserts child at the given index.
// Same reparenting and cycle-check behavior as AddChild.
// Panics if index is outside [0, NumChildren()].
func (n *Node) AddChildAt(child *Node, index int) {
	if index < 0 || index > len(n.children) {
		panic("canopy: child index out of range")
	}
	n.insertChild(child, index)
}

func (n *Node) insertChild(child *Node, index int) {
	if child == nil {
		panic("canopy: cannot add nil child")
	}
	if globalDebug {
		debugCheckDestroyed(n, "AddChild (parent)")
		debugCheckDestroyed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("canopy: adding child would create a cycle")
	}
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}
	// Reparenting within n can shrink the list by one.
	if index < 0 || index > len(n.children) {
		index = len(n.children)
	}

	child.parent = n
	n.children = append(n.children, nil)
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = child

	setSubtreeLevel(child, n.level+1)
	markSubtreeDirty(child)
	notifySubtree(child, true)

	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
}

// RemoveChild detaches child from this node.
// No-op if child is nil or not a direct child of n.
func (n *Node) RemoveChild(child *Node) {
	if child == nil || child.parent != n {
		return
	}
	if globalDebug {
		debugCheckDestroyed(n, "RemoveChild (parent)")
	}
	n.removeChildByPtr(child)
	child.parent = nil
	setSubtreeLevel(child, 0)
	markSubtreeDirty(child)

	child.onRemove(n)
	for _, c := range child.children {
		notifySubtree(c, false)
	}
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.parent == nil {
		return
	}
	n.parent.RemoveChild(n)
}

// RemoveChildren detaches all children from this node, in order.
func (n *Node) RemoveChildren() {
	for len(n.children) > 0 {
		n.RemoveChild(n.children[0])
	}
}

// Destroy detaches the node from its parent and marks its whole subtree as
// destroyed. A destroyed node keeps its children so it can still be inspected,
// but in debug mode any further tree operation on it panics.
func (n *Node) Destroy() {
	if n.destroyed {
		return
	}
	n.RemoveFromParent()
	n.Traverse(func(d *Node) bool {
		d.destroyed = true
		d.pointerInside = false
		d.beingDragged = false
		return true
	})
}

// IsDestroyed returns true if Destroy was called on this node or an ancestor.
func (n *Node) IsDestroyed() bool {
	return n.destroyed
}

// Parent returns the parent node, or nil for a root or detached node.
func (n *Node) Parent() *Node {
	return n.parent
}

// Level returns the depth of the node below its root. A root has level 0.
func (n *Node) Level() int {
	return n.level
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	if index < 0 || index >= len(n.children) {
		panic("canopy: child index out of range")
	}
	return n.children[index]
}

// Root walks the parent chain and returns the topmost ancestor.
func (n *Node) Root() *Node {
	r := n
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// --- Traversal & lookup ---

// Traverse visits the node and then its descendants in pre-order, children
// in list order. Returning false from visit skips that node's children.
func (n *Node) Traverse(visit func(*Node) bool) {
	if !visit(n) {
		return
	}
	for _, c := range n.children {
		c.Traverse(visit)
	}
}

// FindByID returns the first node in the subtree with the given ID.
func (n *Node) FindByID(id uuid.UUID) *Node {
	var found *Node
	n.Traverse(func(d *Node) bool {
		if found != nil {
			return false
		}
		if d.ID == id {
			found = d
			return false
		}
		return true
	})
	return found
}

// FindByName returns the first node in pre-order with the given name.
func (n *Node) FindByName(name string) *Node {
	var found *Node
	n.Traverse(func(d *Node) bool {
		if found != nil {
			return false
		}
		if d.Name == name {
			found = d
			return false
		}
		return true
	})
	return found
}

// --- Interaction state ---

// PointerInside reports whether the pointer was over the node at the last
// hit-test pass.
func (n *Node) PointerInside() bool {
	return n.pointerInside
}

// BeingDragged reports whether the node is currently grabbed.
func (n *Node) BeingDragged() bool {
	return n.beingDragged
}

// --- Helpers ---

// isAncestor reports whether candidate is node or an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// markSubtreeDirty sets transformDirty on node and all its descendants.
func markSubtreeDirty(node *Node) {
	node.transformDirty = true
	for _, child := range node.children {
		markSubtreeDirty(child)
	}
}

func setSubtreeLevel(node *Node, level int) {
	node.level = level
	for _, child := range node.children {
		setSubtreeLevel(child, level+1)
	}
}

// notifySubtree fires OnAdd or OnRemove for node and its descendants in
// pre-order. Each node receives its own parent.
func notifySubtree(node *Node, added bool) {
	if added {
		node.onAdd(node.parent)
	} else {
		node.onRemove(node.parent)
	}
	for _, child := range node.children {
		notifySubtree(child, added)
	}
}

func (n *Node) onAdd(parent *Node) {
	if n.OnAdd != nil {
		n.OnAdd(parent)
	}
}

func (n *Node) onRemove(parent *Node) {
	if n.OnRemove != nil {
		n.OnRemove(parent)
	}
}
