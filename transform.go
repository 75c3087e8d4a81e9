package canopy

// computeLocalMatrix builds the local matrix from the node's transform
// properties.
//
// Composition order:
//
//	Translate(-Origin) -> Scale -> Rotate -> Translate(Position)
func computeLocalMatrix(n *Node) Matrix {
	return Compose(
		n.Position.X, n.Position.Y,
		n.Scale.X, n.Scale.Y,
		n.Origin.X, n.Origin.Y,
		n.Rotation,
	)
}

// UpdateMatrix recomputes the node's matrices when MatrixAutoUpdate is set
// or the node is dirty, and reports whether it did. The parent's global
// matrix is assumed to be current.
func (n *Node) UpdateMatrix() bool {
	if !n.MatrixAutoUpdate && !n.transformDirty {
		return false
	}
	n.ForceUpdateMatrix()
	return true
}

// ForceUpdateMatrix recomputes the node's local, global and inverse global
// matrices unconditionally.
//
// A singular global matrix (zero scale) is kept as is. Its inverse has
// non-finite entries, which makes the node unhittable until it becomes
// invertible again.
func (n *Node) ForceUpdateMatrix() {
	n.matrix = computeLocalMatrix(n)
	if n.parent != nil {
		n.globalMatrix = n.matrix.Premultiply(n.parent.globalMatrix)
	} else {
		n.globalMatrix = n.matrix
	}
	n.inverseGlobalMatrix = n.globalMatrix.Inverse()
	n.transformDirty = false
}

// UpdateMatrixTree refreshes the node and its whole subtree. A child whose
// parent was recomputed is recomputed too, even if it is not dirty itself.
func (n *Node) UpdateMatrixTree() {
	updateMatrixTree(n, false)
}

// updateMatrixTree recomputes n when it is dirty, auto-updating, or its
// parent was recomputed this pass.
func updateMatrixTree(n *Node, parentRecomputed bool) {
	recompute := parentRecomputed
	if recompute {
		n.ForceUpdateMatrix()
	} else {
		recompute = n.UpdateMatrix()
	}
	for _, child := range n.children {
		updateMatrixTree(child, recompute)
	}
}

// Matrix returns the cached local matrix.
func (n *Node) Matrix() Matrix {
	return n.matrix
}

// GlobalMatrix returns the cached local-to-world matrix.
func (n *Node) GlobalMatrix() Matrix {
	return n.globalMatrix
}

// InverseGlobalMatrix returns the cached world-to-local matrix.
func (n *Node) InverseGlobalMatrix() Matrix {
	return n.inverseGlobalMatrix
}

// --- Transform property setters ---

// SetPosition sets the node's local position and marks it dirty.
func (n *Node) SetPosition(x, y float64) {
	n.Position = Vector2{x, y}
	n.transformDirty = true
}

// SetScale sets the node's scale and marks it dirty.
func (n *Node) SetScale(sx, sy float64) {
	n.Scale = Vector2{sx, sy}
	n.transformDirty = true
}

// SetRotation sets the node's rotation (in radians) and marks it dirty.
func (n *Node) SetRotation(r float64) {
	n.Rotation = r
	n.transformDirty = true
}

// SetOrigin sets the node's origin, the local pivot for scale and rotation,
// and marks it dirty.
func (n *Node) SetOrigin(ox, oy float64) {
	n.Origin = Vector2{ox, oy}
	n.transformDirty = true
}

// SetLayer sets the node's layer. Layers only affect ordering, so the
// transform stays clean.
func (n *Node) SetLayer(layer int) {
	n.Layer = layer
}

// MarkDirty marks the node's transform as dirty, forcing recomputation
// on the next frame. Useful after bulk-setting fields directly.
func (n *Node) MarkDirty() {
	n.transformDirty = true
}

// --- Coordinate conversion ---

// WorldToLocal converts a world-space point to this node's local coordinate space.
func (n *Node) WorldToLocal(world Vector2) Vector2 {
	return n.inverseGlobalMatrix.TransformPoint(world)
}

// LocalToWorld converts a local-space point to world-space.
func (n *Node) LocalToWorld(local Vector2) Vector2 {
	return n.globalMatrix.TransformPoint(local)
}

// --- Hit testing ---

// IsInside reports whether a local-space point lies inside the node's shape.
// A node without a shape is never hit.
func (n *Node) IsInside(local Vector2) bool {
	if n.Shape == nil || !local.IsFinite() {
		return false
	}
	return n.Shape.IsInside(local)
}

// IsWorldPointInside reports whether a world-space point hits this node. With
// recursive set, a hit on any descendant counts too.
func (n *Node) IsWorldPointInside(world Vector2, recursive bool) bool {
	if n.IsInside(n.WorldToLocal(world)) {
		return true
	}
	if recursive {
		for _, c := range n.children {
			if c.IsWorldPointInside(world, true) {
				return true
			}
		}
	}
	return false
}

// GetWorldPointIntersections returns every node of the subtree whose shape
// contains the world-space point, in pre-order.
func (n *Node) GetWorldPointIntersections(world Vector2) []*Node {
	var hits []*Node
	n.Traverse(func(d *Node) bool {
		if d.IsInside(d.WorldToLocal(world)) {
			hits = append(hits, d)
		}
		return true
	})
	return hits
}
