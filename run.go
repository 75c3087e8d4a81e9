package canopy

import (
	"context"
	"errors"
	"fmt"

	"github.com/gogpu/gg"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// App is what Run drives each tick.
type App struct {
	Scene    *Node
	Viewport *Viewport
	// Controls, when set, turns each tick's pointer snapshot into viewport
	// movement.
	Controls *ViewportControls
	// Update, when set, runs once per tick before the renderer. Returning
	// ErrStopped ends Run cleanly; any other error ends Run with that error.
	Update func() error
}

// RunConfig holds window and loop settings for Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int
	// ClearColor overrides the renderer's clear color when non-zero.
	ClearColor Color
	// ShowFPS draws the current FPS and TPS in the top-left corner.
	ShowFPS bool
	// TPS sets ebiten's tick rate. Zero keeps the default of 60.
	TPS int
	// Context cancels the loop when done.
	Context context.Context
}

// ErrStopped is returned by Run for a renderer that was already stopped.
// App.Update may also return it to end Run without an error.
var ErrStopped = errors.New("canopy: stopped")

// tickSeconds is the viewport animation step of one tick.
func tickSeconds() float32 {
	return 1 / float32(ebiten.TPS())
}

// game adapts a Renderer to ebiten.Game. The renderer draws into a software
// surface whose pixels are uploaded to the screen each frame.
type game struct {
	r       *Renderer
	app     App
	cfg     RunConfig
	surface *gg.Context
	frame   *ebiten.Image
	err     error
}

// Run opens a window and drives r with app until the window closes, r is
// stopped, the context is cancelled or App.Update fails.
//
// The renderer's surface must be a *gg.Context, which Run resizes with the
// window. Input comes from an EbitenInput registered on r.
func Run(r *Renderer, app App, cfg RunConfig) error {
	if r == nil || app.Scene == nil {
		return errors.New("canopy: Run needs a renderer and a scene")
	}
	if r.Stopped() {
		return ErrStopped
	}
	surface, ok := r.surface.(*gg.Context)
	if !ok {
		return errors.New("canopy: Run needs a *gg.Context surface")
	}

	if app.Viewport == nil {
		app.Viewport = NewViewport()
		if app.Controls != nil && app.Controls.Viewport == nil {
			app.Controls.Viewport = app.Viewport
		}
	}
	if cfg.Width <= 0 {
		cfg.Width = 800
	}
	if cfg.Height <= 0 {
		cfg.Height = 600
	}
	if cfg.Context == nil {
		cfg.Context = context.Background()
	}
	if cfg.ClearColor != (Color{}) {
		r.ClearColor = cfg.ClearColor
	}
	if app.Controls != nil {
		if app.Controls.Viewport == nil {
			app.Controls.Viewport = app.Viewport
		}
		r.Controls = app.Controls
	}
	if r.Keyboard == nil {
		r.Keyboard = NewKeyboard()
	}
	r.AddInputSource(NewEbitenInput(r.pointer, r.Keyboard))

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if cfg.TPS > 0 {
		ebiten.SetTPS(cfg.TPS)
	}

	g := &game{r: r, app: app, cfg: cfg, surface: surface}
	Logger().Info("canopy: run", "title", cfg.Title, "width", cfg.Width, "height", cfg.Height)

	err := ebiten.RunGame(g)
	if stopErr := r.Stop(); stopErr != nil {
		Logger().Warn("canopy: closing input sources", "error", stopErr)
	}
	if err != nil {
		return err
	}
	return g.err
}

func (g *game) Update() error {
	if g.r.Stopped() {
		return ebiten.Termination
	}
	if err := g.cfg.Context.Err(); err != nil {
		return ebiten.Termination
	}
	if g.app.Update != nil {
		if err := g.app.Update(); err != nil {
			if !errors.Is(err, ErrStopped) {
				g.err = err
			}
			return ebiten.Termination
		}
	}

	g.app.Viewport.Update(tickSeconds())
	g.r.Update(g.app.Scene, g.app.Viewport)
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.r.Draw(g.app.Scene, g.app.Viewport)

	pix := g.surface.ResizeTarget()
	if g.frame == nil || g.frame.Bounds().Dx() != pix.Width() || g.frame.Bounds().Dy() != pix.Height() {
		if g.frame != nil {
			g.frame.Deallocate()
		}
		g.frame = ebiten.NewImage(pix.Width(), pix.Height())
	}
	g.frame.WritePixels(pix.Data())
	screen.DrawImage(g.frame, nil)

	if g.cfg.ShowFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if err := g.surface.Resize(outsideWidth, outsideHeight); err != nil {
		Logger().Warn("canopy: resize surface", "error", err)
	}
	return outsideWidth, outsideHeight
}
