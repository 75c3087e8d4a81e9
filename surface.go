package canopy

import (
	"image"

	"github.com/gogpu/gg"
)

// Surface is the canvas-like raster target the Renderer draws onto. The
// interface mirrors the immediate-mode API of a 2D canvas: a current
// transform with a save/restore stack, a current path, a clip region and a
// current paint.
//
// *gg.Context satisfies Surface and is what Run draws into. Tests use a
// recording fake.
type Surface interface {
	// State stack: transform and clip.
	Push()
	Pop()

	// Transform
	Identity()
	SetTransform(m gg.Matrix)
	Transform(m gg.Matrix)

	// Clipping
	Clip()
	ResetClip()

	// Path
	MoveTo(x, y float64)
	LineTo(x, y float64)
	ClosePath()
	ClearPath()
	DrawRectangle(x, y, w, h float64)
	DrawCircle(x, y, r float64)

	// Paint
	SetRGBA(r, g, b, a float64)
	SetLineWidth(width float64)
	Fill() error
	Stroke() error

	// Target
	ClearWithColor(c gg.RGBA)
	Width() int
	Height() int
	Image() image.Image
}

var _ Surface = (*gg.Context)(nil)

// NewSurface returns a software-rasterized surface of the given size.
func NewSurface(width, height int) *gg.Context {
	return gg.NewContext(width, height)
}

// surfaceBounds returns the surface rectangle in canvas space.
func surfaceBounds(s Surface) Box2 {
	return NewBox2(Vector2{}, Vector2{float64(s.Width()), float64(s.Height())})
}
