package canopy

import "github.com/gogpu/gg"

// appendVisible appends n and its visible descendants in pre-order. An
// invisible node hides its whole subtree.
func appendVisible(n *Node, buf []*Node) []*Node {
	if !n.Visible {
		return buf
	}
	buf = append(buf, n)
	for _, c := range n.children {
		buf = appendVisible(c, buf)
	}
	return buf
}

// flatten rebuilds the renderer's node list from the scene tree.
func (r *Renderer) flatten(scene *Node) {
	for i := range r.sorted {
		r.sorted[i] = nil
	}
	r.sorted = appendVisible(scene, r.sorted[:0])
}

// nodeLessOrEqual reports whether a sorts before or equal to b.
// Sort key: Layer descending, then level descending. Equal keys keep their
// tree order.
func nodeLessOrEqual(a, b *Node) bool {
	if a.Layer != b.Layer {
		return a.Layer > b.Layer
	}
	return a.level >= b.level
}

// mergeSort sorts r.sorted in-place using r.sortBuf as scratch space.
// Bottom-up merge sort: stable, and allocation-free once the buffer has grown.
func (r *Renderer) mergeSort() {
	n := len(r.sorted)
	if n <= 1 {
		return
	}
	if cap(r.sortBuf) < n {
		r.sortBuf = make([]*Node, n)
	}
	r.sortBuf = r.sortBuf[:n]

	a := r.sorted
	b := r.sortBuf
	swapped := false

	for width := 1; width < n; width *= 2 {
		for i := 0; i < n; i += 2 * width {
			lo := i
			mid := lo + width
			if mid > n {
				mid = n
			}
			hi := lo + 2*width
			if hi > n {
				hi = n
			}
			mergeRun(a, b, lo, mid, hi)
		}
		a, b = b, a
		swapped = !swapped
	}

	if swapped {
		copy(r.sorted, r.sortBuf)
	}
	for i := range r.sortBuf {
		r.sortBuf[i] = nil
	}
}

// mergeRun merges two sorted runs [lo, mid) and [mid, hi) from src into dst.
func mergeRun(src, dst []*Node, lo, mid, hi int) {
	i, j, k := lo, mid, lo
	for i < mid && j < hi {
		if nodeLessOrEqual(src[i], src[j]) {
			dst[k] = src[i]
			i++
		} else {
			dst[k] = src[j]
			j++
		}
		k++
	}
	for i < mid {
		dst[k] = src[i]
		i++
		k++
	}
	for j < hi {
		dst[k] = src[j]
		j++
		k++
	}
}

// --- Draw pass ---

// drawNodes paints the sorted list back to front. It returns the number of
// drawn nodes and applied masks for debug stats.
func (r *Renderer) drawNodes(scene *Node, vp *Viewport, canvas Box2) (drawn, masks int) {
	s := r.surface
	view := vp.Matrix().GG()

	for i := len(r.sorted) - 1; i >= 0; i-- {
		n := r.sorted[i]
		if n.IsMask {
			continue
		}
		if n.SaveContextState {
			s.Push()
		}

		for _, m := range n.masks {
			clipper, ok := m.Shape.(Clipper)
			if !ok {
				continue
			}
			// Masks outside the scene tree miss the tree-wide refresh.
			if m.parent == nil && m != scene {
				m.UpdateMatrix()
			}
			applyNodeTransform(s, m, view)
			clipper.Clip(s, vp, canvas)
			masks++
		}

		applyNodeTransform(s, n, view)
		if st, ok := n.Shape.(Styler); ok {
			st.Style(s, vp, canvas)
		}
		if d, ok := n.Shape.(Drawer); ok {
			d.Draw(s, vp, canvas)
			drawn++
		}

		if n.RestoreContextState {
			s.Pop()
		}
	}
	return drawn, masks
}

// applyNodeTransform sets the surface transform to the node's global matrix,
// behind the viewport unless the node ignores it.
func applyNodeTransform(s Surface, n *Node, view gg.Matrix) {
	if n.IgnoreViewport {
		s.Identity()
	} else {
		s.SetTransform(view)
	}
	s.Transform(n.globalMatrix.GG())
}
