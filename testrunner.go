package canopy

import (
	"encoding/json"
	"fmt"
)

// testStep is a single action in a test script.
type testStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Delta  float64 `json:"delta,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

var knownActions = map[string]bool{
	"screenshot":  true,
	"click":       true,
	"drag":        true,
	"wheel":       true,
	"doubleclick": true,
	"wait":        true,
}

// TestRunner sequences injected input events and screenshots across frames
// for automated visual testing. Attach it to a Renderer via SetTestRunner.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script:
//
//	{"steps": [
//		{"action": "click", "x": 100, "y": 200},
//		{"action": "drag", "fromX": 0, "fromY": 0, "toX": 50, "toY": 0, "frames": 6},
//		{"action": "wheel", "delta": -120},
//		{"action": "doubleclick", "x": 10, "y": 10},
//		{"action": "wait", "frames": 3},
//		{"action": "screenshot", "label": "after"}
//	]}
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		if !knownActions[st.Action] {
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner to the renderer. The runner feeds the
// renderer's Injector and advances once per Update, before input is polled.
func (r *Renderer) SetTestRunner(runner *TestRunner) {
	r.testRunner = runner
	if runner != nil {
		r.Injector()
	}
}

// Done reports whether all steps in the test script have been executed.
func (tr *TestRunner) Done() bool {
	return tr.done
}

// step advances the test runner by one frame.
func (tr *TestRunner) step(r *Renderer) {
	if tr.done {
		return
	}
	in := r.Injector()
	// Wait for pending injections to drain before advancing.
	if in.Pending() > 0 {
		return
	}
	if tr.waitCount > 0 {
		tr.waitCount--
		return
	}
	if tr.cursor >= len(tr.steps) {
		tr.done = true
		return
	}

	st := tr.steps[tr.cursor]
	tr.cursor++

	switch st.Action {
	case "screenshot":
		r.Screenshot(st.Label)
	case "click":
		in.InjectClick(st.X, st.Y)
	case "drag":
		in.InjectDrag(Vector2{st.FromX, st.FromY}, Vector2{st.ToX, st.ToY}, st.Frames)
	case "wheel":
		in.InjectWheel(st.Delta)
	case "doubleclick":
		in.InjectDoubleClick(st.X, st.Y)
	case "wait":
		if st.Frames > 0 {
			tr.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if tr.cursor >= len(tr.steps) && tr.waitCount == 0 && in.Pending() == 0 {
		tr.done = true
	}
}
