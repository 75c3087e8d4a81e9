package canopy

// AddMask appends a mask to this node. While drawing, the surface is clipped
// to every mask in order before the node itself is drawn.
//
// A mask is referenced, not owned: it may live anywhere in the tree or
// outside it. Its Shape must implement Clipper to have any effect. Adding
// the same mask twice is a no-op.
func (n *Node) AddMask(mask *Node) {
	if mask == nil || mask == n {
		return
	}
	for _, m := range n.masks {
		if m == mask {
			return
		}
	}
	n.masks = append(n.masks, mask)
}

// RemoveMask removes a mask from this node. No-op if mask is not set.
func (n *Node) RemoveMask(mask *Node) {
	for i, m := range n.masks {
		if m == mask {
			copy(n.masks[i:], n.masks[i+1:])
			n.masks[len(n.masks)-1] = nil
			n.masks = n.masks[:len(n.masks)-1]
			return
		}
	}
}

// ClearMasks removes every mask from this node.
func (n *Node) ClearMasks() {
	clear(n.masks)
	n.masks = n.masks[:0]
}

// Masks returns the mask list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Masks() []*Node {
	return n.masks
}
