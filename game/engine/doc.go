// Package engine provides the core logic of the swap picture puzzle.
//
// The engine package implements:
//   - The board model: an image cut into an N×N grid of tiles
//   - A Fisher–Yates shuffle over the tiles with a pluggable random source
//   - Hit-testing of surface-local points against tile rectangles
//   - The pointer interaction state machine (drag a tile, drop it on another to swap)
//   - Win detection
//
// Core Types:
//
// Board owns the geometry and the tiles. Each Tile carries a stable TileID,
// its Origin (the slot it belongs to) and its current Position. Machine
// implements the Engine interface: it consumes pointer Events and returns a
// Transition describing what changed and which frame must be redrawn. The
// package never draws; see the render package for that.
//
// Usage:
//
//	machine, err := engine.NewGame(img.Width, img.Height, 4, engine.DefaultRandom())
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	machine.Handle(engine.Event{Type: engine.PointerDown})  // shuffles
//	t := machine.Handle(engine.Event{Type: engine.PointerDown, Point: p})
//	if t.Redraw != engine.RedrawNone {
//		ops := render.Compose(machine.View(), t.Redraw, img.Name, theme)
//		render.Replay(surface, ops)
//	}
//
// States:
//
// Idle shows the solved picture until the first pointer-down, which shuffles
// the board (once per session). In Shuffled a pointer-down on a tile starts a
// drag; moves update the hovered tile; pointer-up swaps the dragged tile with
// the hovered one, passes through Evaluating and ends either back in Shuffled
// or in Won, which ignores all further input.
package engine
