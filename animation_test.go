package canopy

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func TestTweenPositionReachesTarget(t *testing.T) {
	node := NewNode("pos")
	node.Position = Vec2(10, 20)

	g := TweenPosition(node, Vec2(100, 200), 1.0, ease.Linear)

	// Run for full duration using exact halves to avoid float32 accumulation drift.
	g.Update(0.5)
	g.Update(0.5)

	if !g.Done {
		t.Fatal("expected Done after full duration")
	}
	if math.Abs(node.Position.X-100) > 0.5 {
		t.Errorf("X = %f, want ~100", node.Position.X)
	}
	if math.Abs(node.Position.Y-200) > 0.5 {
		t.Errorf("Y = %f, want ~200", node.Position.Y)
	}
}

func TestTweenScaleReachesTarget(t *testing.T) {
	node := NewNode("scale")

	g := TweenScale(node, Vec2(2, 3), 0.5, ease.Linear)

	g.Update(0.25)
	g.Update(0.25)

	if !g.Done {
		t.Fatal("expected Done after full duration")
	}
	if math.Abs(node.Scale.X-2.0) > 0.01 {
		t.Errorf("Scale.X = %f, want ~2.0", node.Scale.X)
	}
	if math.Abs(node.Scale.Y-3.0) > 0.01 {
		t.Errorf("Scale.Y = %f, want ~3.0", node.Scale.Y)
	}
}

func TestTweenOriginInterpolates(t *testing.T) {
	node := NewNode("origin")

	tw := TweenOrigin(node, Vec2(10, -10), 1.0, nil)

	tw.Update(0.5)
	if tw.Done {
		t.Fatal("should not be done at halfway")
	}
	if math.Abs(node.Origin.X-5) > 0.05 || math.Abs(node.Origin.Y+5) > 0.05 {
		t.Errorf("Origin = %v, want ~(5,-5) at halfway", node.Origin)
	}
}

func TestTweenColorAllComponents(t *testing.T) {
	box := NewBoxShape(10, 10, Color{R: 1, G: 0, B: 0, A: 1})
	target := Color{R: 0, G: 1, B: 0.5, A: 0.5}

	g := TweenColor(&box.Fill, target, 1.0, ease.Linear)

	g.Update(0.5)
	g.Update(0.5)

	if !g.Done {
		t.Fatal("expected Done after full duration")
	}
	if math.Abs(box.Fill.R-target.R) > 0.01 {
		t.Errorf("R = %f, want %f", box.Fill.R, target.R)
	}
	if math.Abs(box.Fill.G-target.G) > 0.01 {
		t.Errorf("G = %f, want %f", box.Fill.G, target.G)
	}
	if math.Abs(box.Fill.B-target.B) > 0.01 {
		t.Errorf("B = %f, want %f", box.Fill.B, target.B)
	}
	if math.Abs(box.Fill.A-target.A) > 0.01 {
		t.Errorf("A = %f, want %f", box.Fill.A, target.A)
	}
}

func TestTweenRotationReachesTarget(t *testing.T) {
	node := NewNode("rot")

	tw := TweenRotation(node, math.Pi, 1.0, ease.Linear)

	tw.Update(0.5)
	tw.Update(0.5)

	if !tw.Done {
		t.Fatal("expected done after full duration")
	}
	if math.Abs(node.Rotation-math.Pi) > 0.05 {
		t.Errorf("Rotation = %f, want ~%f", node.Rotation, math.Pi)
	}
}

func TestTweenGroupDoneFlagTransition(t *testing.T) {
	node := NewNode("done")
	g := TweenPosition(node, Vec2(50, 50), 0.5, ease.Linear)

	if g.Done {
		t.Fatal("should not be Done at start")
	}

	// Partway through, not done.
	g.Update(0.25)
	if g.Done {
		t.Fatal("should not be Done partway through")
	}

	// Complete.
	g.Update(0.25)
	if !g.Done {
		t.Fatal("should be Done after full duration")
	}

	// Update after done should be a no-op, not panic.
	g.Update(0.1)
	if !g.Done {
		t.Fatal("should remain Done")
	}
}

func TestTweenGroupMarksDirty(t *testing.T) {
	node := NewNode("dirty")
	node.MatrixAutoUpdate = false
	node.UpdateMatrix()
	if node.transformDirty {
		t.Fatal("UpdateMatrix left the node dirty")
	}

	g := TweenPosition(node, Vec2(100, 100), 1.0, ease.Linear)
	g.Update(0.1)

	if !node.transformDirty {
		t.Fatal("expected node to be marked dirty after TweenGroup update")
	}
}

func TestTweenGroupDestroyedNode(t *testing.T) {
	node := NewNode("destroyed")
	node.Position = Vec2(10, 20)

	g := TweenPosition(node, Vec2(100, 200), 1.0, ease.Linear)

	node.Destroy()

	g.Update(0.1)

	if !g.Done {
		t.Fatal("expected Done after destroyed node detected")
	}
	// Values should not have changed.
	assertVec(t, "position", node.Position, Vec2(10, 20))
}

func TestTweenGroupDestroyedMidAnimation(t *testing.T) {
	node := NewNode("mid-destroy")

	g := TweenPosition(node, Vec2(100, 100), 1.0, ease.Linear)

	// Run a few frames.
	g.Update(0.1)
	g.Update(0.1)
	if g.Done {
		t.Fatal("should not be Done yet")
	}

	node.Destroy()
	saved := node.Position

	g.Update(0.1)
	if !g.Done {
		t.Fatal("expected Done after node destroyed mid-animation")
	}
	if node.Position != saved {
		t.Error("node fields should not change after destruction")
	}
}

func TestTweenEasingFunctionsProduceDifferentCurves(t *testing.T) {
	// Spot-check: linear vs OutCubic at the midpoint should differ.
	nodeL := NewNode("linear")
	nodeC := NewNode("cubic")

	gL := TweenPosition(nodeL, Vec2(100, 0), 1.0, ease.Linear)
	gC := TweenPosition(nodeC, Vec2(100, 0), 1.0, ease.OutCubic)

	// Advance to midpoint.
	gL.Update(0.5)
	gC.Update(0.5)

	// OutCubic should be ahead of linear at midpoint.
	if math.Abs(nodeL.Position.X-nodeC.Position.X) < 1.0 {
		t.Errorf("easing curves should produce different values at midpoint: linear=%f cubic=%f",
			nodeL.Position.X, nodeC.Position.X)
	}
}

func TestTweenGroupUpdateZeroAlloc(t *testing.T) {
	node := NewNode("alloc")
	g := TweenPosition(node, Vec2(100, 100), 1.0, ease.Linear)

	// Warm up, the first call might differ.
	g.Update(0.01)

	result := testing.AllocsPerRun(100, func() {
		g.Update(0.001)
	})
	if result > 0 {
		t.Errorf("TweenGroup.Update allocated %f times per run, want 0", result)
	}
}
