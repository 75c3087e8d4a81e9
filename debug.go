package canopy

import (
	"fmt"
	"time"
)

// globalDebug mirrors the most recently set Renderer debug flag so that node
// tree operations can run their debug checks without a renderer reference.
var globalDebug bool

// debugStats holds per-frame timing and node metrics.
// Only populated when the Renderer is in debug mode.
type debugStats struct {
	flattenTime time.Duration
	sortTime    time.Duration
	inputTime   time.Duration
	matrixTime  time.Duration
	drawTime    time.Duration
	nodeCount   int
	maskCount   int
	drawnCount  int
}

// logUpdate reports the update half of a frame at Debug level.
func (st *debugStats) logUpdate() {
	Logger().Debug("canopy: update",
		"flatten", st.flattenTime,
		"sort", st.sortTime,
		"input", st.inputTime,
		"matrix", st.matrixTime,
		"nodes", st.nodeCount,
	)
}

// logDraw reports the draw half of a frame at Debug level.
func (st *debugStats) logDraw() {
	Logger().Debug("canopy: draw",
		"draw", st.drawTime,
		"drawn", st.drawnCount,
		"masks", st.maskCount,
	)
}

// debugCheckDestroyed panics with a descriptive message when a destroyed node
// is used in a tree operation. Only called in debug mode.
func debugCheckDestroyed(n *Node, op string) {
	if n.destroyed {
		panic(fmt.Sprintf("canopy debug: %s on destroyed node %q (ID %s)", op, n.Name, n.ID))
	}
}

// debugCheckTreeDepth warns if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	if n.level+1 > debugMaxTreeDepth {
		Logger().Warn("canopy: tree depth exceeds threshold",
			"node", n.Name, "depth", n.level+1, "threshold", debugMaxTreeDepth)
	}
}

// debugCheckChildCount warns if a node has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		Logger().Warn("canopy: child count exceeds threshold",
			"node", n.Name, "children", len(n.children), "threshold", debugMaxChildCount)
	}
}
