package main

import "github.com/wricardo/swap-puzzle/game/engine"

// pointerTracker turns per-frame mouse polling into pointer events.
// Moves are reported only when the cursor actually moved.
type pointerTracker struct {
	last  engine.Point
	known bool
}

// mouseState is what one Update tick observed
type mouseState struct {
	X, Y          int
	JustPressed   bool
	JustReleased  bool
	InsideSurface bool
}

func (p *pointerTracker) events(m mouseState) []engine.Event {
	pt := engine.Point{X: float64(m.X), Y: float64(m.Y)}
	var out []engine.Event

	if m.JustPressed && m.InsideSurface {
		out = append(out, engine.Event{Type: engine.PointerDown, Point: pt})
	} else if p.known && pt != p.last {
		out = append(out, engine.Event{Type: engine.PointerMove, Point: pt})
	}
	if m.JustReleased {
		out = append(out, engine.Event{Type: engine.PointerUp, Point: pt})
	}

	p.last = pt
	p.known = true
	return out
}
