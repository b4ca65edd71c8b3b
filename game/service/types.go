package service

import (
	"time"

	"github.com/wricardo/swap-puzzle/game/asset"
	"github.com/wricardo/swap-puzzle/game/engine"
	"github.com/wricardo/swap-puzzle/game/render"
)

// SessionInfo provides information about a puzzle session
type SessionInfo struct {
	ID             string       `json:"id"`
	Image          asset.Image  `json:"image"`
	State          engine.State `json:"state"`
	Dimension      int          `json:"dimension"`
	Width          int          `json:"width"`
	Height         int          `json:"height"`
	Swaps          int          `json:"swaps"`
	Drops          int          `json:"drops"`
	Misplaced      int          `json:"misplaced"`
	Won            bool         `json:"won"`
	CreatedAt      time.Time    `json:"created_at"`
	LastAccessedAt time.Time    `json:"last_accessed_at"`
}

// EventResult is what one pointer event produced
type EventResult struct {
	SessionID  string            `json:"session_id"`
	State      engine.State      `json:"state"`
	Transition engine.Transition `json:"transition"`
	Events     []GameEvent       `json:"events"`
	Won        bool              `json:"won"`
	Frame      *Frame            `json:"frame,omitempty"` // nil when nothing needs redrawing
}

// Frame is a complete set of drawing ops for a session
type Frame struct {
	SessionID string        `json:"session_id"`
	Image     string        `json:"image"`
	Width     int           `json:"width"`
	Height    int           `json:"height"`
	Redraw    engine.Redraw `json:"redraw"`
	Ops       []render.Op   `json:"ops"`
}

// Game event types
const (
	EventShuffle = "shuffle"
	EventPick    = "pick"
	EventSwap    = "swap"
	EventDrop    = "drop"
	EventWon     = "won"
	EventIgnored = "ignored"
)

// GameEvent represents something that happened during play
type GameEvent struct {
	Type      string         `json:"type"`
	Message   string         `json:"message"`
	Timestamp time.Time      `json:"timestamp"`
	Tile      *engine.TileID `json:"tile,omitempty"`
	With      *engine.TileID `json:"with,omitempty"`
}

// Options configure a GameService
type Options struct {
	Dimension int
	Theme     render.Theme

	// NewRandom supplies the shuffle source of each new machine
	NewRandom func() engine.RandomSource
}
