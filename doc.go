// Package canopy is a retained-mode 2D scene graph with pointer interaction
// for [Ebitengine], rasterized in software through [gg].
//
// Canopy keeps a tree of nodes with local transforms, turns raw pointer and
// keyboard events into per-frame snapshots, hit-tests the tree against the
// pointer, dispatches enter, over, leave, button and drag events, and paints
// the tree back to front through a pannable, zoomable [Viewport].
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	root := canopy.NewNode("root")
//	box := canopy.NewShapeNode("box", canopy.NewBoxShape(40, 40, canopy.ColorWhite))
//	box.Draggable = true
//	root.AddChild(box)
//
//	r := canopy.NewRenderer(canopy.NewSurface(640, 480), nil)
//	canopy.Run(r, canopy.App{Scene: root}, canopy.RunConfig{
//		Title: "My App", Width: 640, Height: 480,
//	})
//
// For full control, feed the renderer's [Pointer] yourself and call
// [Renderer.Update] and [Renderer.Draw] once per frame.
//
// # Scene graph
//
// Every element is a [Node]. A node's [Shape] decides where it can be hit;
// shapes that also implement [Drawer], [Styler] or [Clipper] paint the node
// or serve as masks. [BoxShape], [CircleShape] and [PolygonShape] cover the
// common cases.
//
// Nodes are ordered by Layer, then by depth: higher layers and deeper nodes
// are hit first and drawn last.
//
// # Frame pipeline
//
// Each [Renderer.Update] flattens and sorts the visible tree, polls every
// [InputSource], snapshots the [Pointer] and [Keyboard], hit-tests against
// the matrices of the previous frame, runs drag and update hooks, then
// refreshes every matrix. [Renderer.Draw] paints the result.
//
// Events reach scene-wide listeners registered with [Renderer.OnEvent]
// first, then the node's own hook, then the optional [EntityStore]. The ecs
// subpackage bridges them into a [Donburi] world.
//
// # Testing
//
// An [Injector] replays scripted pointer input one event per frame, and
// [LoadTestScript] drives it from JSON together with PNG screenshots.
//
// [Ebitengine]: https://ebitengine.org
// [gg]: https://github.com/gogpu/gg
// [Donburi]: https://github.com/yohamta/donburi
package canopy
