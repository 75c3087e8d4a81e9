package canopy

import "github.com/gogpu/gg"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// Common colors.
var (
	ColorWhite       = Color{1, 1, 1, 1}
	ColorBlack       = Color{0, 0, 0, 1}
	ColorTransparent = Color{0, 0, 0, 0}
)

// RGBA converts the color to the rasterizer's color type.
func (c Color) RGBA() gg.RGBA {
	return gg.RGBA{R: clamp01(c.R), G: clamp01(c.G), B: clamp01(c.B), A: clamp01(c.A)}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// EventType identifies a kind of interaction event.
type EventType uint8

const (
	EventPointerEnter  EventType = iota // pointer entered a node's shape
	EventPointerOver                    // pointer is over a node's shape, fires every frame
	EventPointerLeave                   // pointer left a node's shape
	EventButtonDown                     // interaction button went down over a node
	EventButtonPressed                  // interaction button is held over a node, fires every frame
	EventButtonUp                       // interaction button went up over a node
	EventDoubleClick                    // left button double clicked over a node
	EventDragStart                      // a draggable node was grabbed
	EventDrag                           // a grabbed node is being moved, fires every frame
	EventDragEnd                        // a grabbed node was released

	numEventTypes
)

var eventTypeNames = [numEventTypes]string{
	"pointerenter",
	"pointerover",
	"pointerleave",
	"buttondown",
	"buttonpressed",
	"buttonup",
	"doubleclick",
	"dragstart",
	"drag",
	"dragend",
}

// String returns the lower-case event name.
func (e EventType) String() string {
	if e < numEventTypes {
		return eventTypeNames[e]
	}
	return "unknown"
}
