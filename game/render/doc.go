// Package render turns engine views into drawing operations.
//
// The engine never draws. A host asks Compose for the ops of a frame and
// replays them on its Surface: a canvas in the browser, an ebiten image on
// the desktop, or a Recorder in tests. Ops are plain data, so the same frame
// can be sent over a WebSocket and replayed remotely.
//
// Frames are always drawn in full:
//
//	ops := render.Compose(machine.View(), transition.Redraw, "cat.png", render.DefaultTheme())
//	if err := render.Replay(surface, ops); err != nil {
//		// render.ErrUnsupportedSurface
//	}
package render
