package canopy

import (
	"errors"
	"time"
)

// Renderer runs the per-frame pipeline over a scene tree: input snapshot,
// hit-testing and event dispatch, drag and update hooks, matrix refresh and
// the draw pass onto a Surface.
//
// A Renderer is not safe for concurrent use. Only the raw event methods of
// its Pointer and Keyboard may be called from other goroutines.
type Renderer struct {
	// AutoClear clears the surface with ClearColor before every Draw.
	AutoClear  bool
	ClearColor Color

	// InteractionButton is the pointer button that drives press, release and
	// drag events.
	InteractionButton PointerButton

	// Keyboard, when set, is updated every frame and supplies the modifier
	// state of interaction events.
	Keyboard *Keyboard

	// Controls, when set, applies pan, zoom and rotation input to its
	// viewport after the pointer snapshot and before that frame's
	// hit-test.
	Controls *ViewportControls

	// ScreenshotDir is the directory where screenshot PNGs are saved.
	// Defaults to "screenshots".
	ScreenshotDir string

	surface Surface
	pointer *Pointer
	sources []InputSource

	handlers handlerRegistry
	store    EntityStore

	// Render state
	sorted  []*Node
	sortBuf []*Node

	debug   bool
	stats   debugStats
	stopped bool

	injector        *Injector
	testRunner      *TestRunner
	screenshotQueue []string
}

// NewRenderer creates a renderer drawing onto surface and reading pointer.
// A nil pointer gets a fresh one.
func NewRenderer(surface Surface, pointer *Pointer) *Renderer {
	if surface == nil {
		panic("canopy: renderer needs a surface")
	}
	if pointer == nil {
		pointer = NewPointer()
	}
	return &Renderer{
		AutoClear:         true,
		ClearColor:        ColorTransparent,
		InteractionButton: ButtonLeft,
		ScreenshotDir:     "screenshots",
		surface:           surface,
		pointer:           pointer,
	}
}

// Surface returns the surface the renderer draws onto.
func (r *Renderer) Surface() Surface {
	return r.surface
}

// SetSurface replaces the draw target, e.g. after a window resize.
func (r *Renderer) SetSurface(s Surface) {
	if s != nil {
		r.surface = s
	}
}

// Pointer returns the pointer the renderer reads.
func (r *Renderer) Pointer() *Pointer {
	return r.pointer
}

// Canvas returns the surface rectangle in canvas space.
func (r *Renderer) Canvas() Box2 {
	return surfaceBounds(r.surface)
}

// SortedNodes returns the nodes of the last Update in hit-test order, topmost
// first. The returned slice MUST NOT be mutated.
func (r *Renderer) SortedNodes() []*Node {
	return r.sorted
}

// AddInputSource registers a source polled at the start of every Update.
func (r *Renderer) AddInputSource(src InputSource) {
	if src == nil || r.stopped {
		return
	}
	r.sources = append(r.sources, src)
}

// SetEntityStore sets the optional ECS bridge.
func (r *Renderer) SetEntityStore(store EntityStore) {
	r.store = store
}

// SetDebugMode enables or disables debug mode. When enabled, destroyed-node
// access panics, tree depth and child count warnings are logged, and
// per-frame timing stats are logged at Debug level.
func (r *Renderer) SetDebugMode(enabled bool) {
	r.debug = enabled
	globalDebug = enabled
}

// Stop ends the render loop. Every input source is closed and Update and
// Draw become no-ops. The returned error joins the errors of the sources.
func (r *Renderer) Stop() error {
	if r.stopped {
		return nil
	}
	r.stopped = true
	var errs []error
	for _, src := range r.sources {
		if err := src.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	r.sources = nil
	Logger().Info("canopy: renderer stopped")
	return errors.Join(errs...)
}

// Stopped reports whether Stop has been called.
func (r *Renderer) Stopped() bool {
	return r.stopped
}

// --- Frame pipeline ---

// Update runs the input half of a frame: flatten and sort the scene, take
// the input snapshot, apply viewport controls, refresh the viewport,
// hit-test and dispatch events, run drag and update hooks, and refresh the
// scene's matrices.
//
// Hit-testing uses the matrices of the previous frame. Changes made by the
// hooks become visible to the Draw of the same frame.
func (r *Renderer) Update(scene *Node, vp *Viewport) {
	if r.stopped || scene == nil {
		return
	}
	if vp == nil {
		vp = NewViewport()
	}

	var t0 time.Time
	if r.debug {
		r.stats = debugStats{}
		t0 = time.Now()
	}

	r.flatten(scene)

	if r.debug {
		r.stats.flattenTime = time.Since(t0)
		r.stats.nodeCount = len(r.sorted)
		t0 = time.Now()
	}

	r.mergeSort()

	if r.debug {
		r.stats.sortTime = time.Since(t0)
		t0 = time.Now()
	}

	if r.testRunner != nil {
		r.testRunner.step(r)
	}
	for _, src := range r.sources {
		src.Poll()
	}
	r.pointer.Update()
	if r.Keyboard != nil {
		r.Keyboard.Update()
	}
	if r.Controls != nil {
		r.Controls.Update(r.pointer, r.Canvas())
	}

	vp.UpdateMatrix()
	r.processPointer(vp)
	r.processDrag(vp)

	if r.debug {
		r.stats.inputTime = time.Since(t0)
		t0 = time.Now()
	}

	scene.UpdateMatrixTree()

	if r.debug {
		r.stats.matrixTime = time.Since(t0)
		r.stats.logUpdate()
	}
}

// Draw paints the nodes sorted by the last Update onto the surface, bottom
// layer and shallowest level first.
func (r *Renderer) Draw(scene *Node, vp *Viewport) {
	if r.stopped || scene == nil {
		return
	}
	if vp == nil {
		vp = NewViewport()
	}

	var t0 time.Time
	if r.debug {
		t0 = time.Now()
	}

	s := r.surface
	s.Identity()
	if r.AutoClear {
		s.ClearWithColor(r.ClearColor.RGBA())
	}

	drawn, masks := r.drawNodes(scene, vp, surfaceBounds(s))
	s.Identity()

	if r.debug {
		r.stats.drawTime = time.Since(t0)
		r.stats.drawnCount = drawn
		r.stats.maskCount = masks
		r.stats.logDraw()
	}

	r.flushScreenshots()
}

// Render runs Update then Draw.
func (r *Renderer) Render(scene *Node, vp *Viewport) {
	r.Update(scene, vp)
	r.Draw(scene, vp)
}
