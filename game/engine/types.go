package engine

// State is a step of the pointer interaction lifecycle
type State string

const (
	Idle       State = "idle"
	Shuffled   State = "shuffled"
	Dragging   State = "dragging"
	Evaluating State = "evaluating"
	Won        State = "won"

	// Validation constants
	MinDimension     = 2
	MaxDimension     = 16
	DefaultDimension = 4
)

// EventType identifies a pointer event delivered by the host
type EventType string

const (
	PointerDown EventType = "pointer_down"
	PointerMove EventType = "pointer_move"
	PointerUp   EventType = "pointer_up"
)

// Valid reports whether t is one of the three pointer events
func (t EventType) Valid() bool {
	switch t {
	case PointerDown, PointerMove, PointerUp:
		return true
	}
	return false
}

// Point is a surface-local pointer position
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Slot is the top-left pixel of a grid cell on the board
type Slot struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Rect is an axis-aligned rectangle in surface pixels
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Contains reports whether p lies inside r, edges included
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.W &&
		p.Y >= r.Y && p.Y <= r.Y+r.H
}

// TileID is the stable handle of a tile: the row-major index of its origin
type TileID int

// Tile is one cell of the picture
type Tile struct {
	ID       TileID `json:"id"`
	Origin   Slot   `json:"origin"`
	Position Slot   `json:"position"`
}

// InPlace reports whether the tile sits on its origin slot
func (t *Tile) InPlace() bool {
	return t.Position == t.Origin
}

// Rect returns the on-screen rectangle of the tile at its current slot
func (t *Tile) Rect(tileWidth, tileHeight int) Rect {
	return Rect{
		X: float64(t.Position.X),
		Y: float64(t.Position.Y),
		W: float64(tileWidth),
		H: float64(tileHeight),
	}
}

// SourceRect returns the region of the source image the tile shows
func (t *Tile) SourceRect(tileWidth, tileHeight int) Rect {
	return Rect{
		X: float64(t.Origin.X),
		Y: float64(t.Origin.Y),
		W: float64(tileWidth),
		H: float64(tileHeight),
	}
}

// Event is a pointer event in surface-local coordinates
type Event struct {
	Type  EventType `json:"type"`
	Point Point     `json:"point"`
}

// Redraw tells the renderer which frame a transition requires
type Redraw string

const (
	RedrawNone  Redraw = ""
	RedrawStart Redraw = "start"
	RedrawBoard Redraw = "board"
	RedrawPick  Redraw = "pick"
	RedrawDrag  Redraw = "drag"
	RedrawWon   Redraw = "won"
)

// Swap records two tiles that exchanged positions
type Swap struct {
	A TileID `json:"a"`
	B TileID `json:"b"`
}

// Transition describes what a single event changed
type Transition struct {
	Event    Event   `json:"event"`
	From     State   `json:"from"`
	To       State   `json:"to"`
	Path     []State `json:"path,omitempty"` // intermediate states, e.g. evaluating
	Ignored  bool    `json:"ignored"`
	Shuffled bool    `json:"shuffled,omitempty"`
	Selected *TileID `json:"selected,omitempty"`
	Hovered  *TileID `json:"hovered,omitempty"`
	Swap     *Swap   `json:"swap,omitempty"`
	Won      bool    `json:"won,omitempty"`
	Redraw   Redraw  `json:"redraw,omitempty"`
}

// View is a read-only snapshot of a machine, enough to draw a frame
type View struct {
	State      State   `json:"state"`
	Dimension  int     `json:"dimension"`
	TileWidth  int     `json:"tile_width"`
	TileHeight int     `json:"tile_height"`
	Tiles      []Tile  `json:"tiles"`
	Selected   *TileID `json:"selected,omitempty"`
	Hovered    *TileID `json:"hovered,omitempty"`
	Pointer    Point   `json:"pointer"`
	Swaps      int     `json:"swaps"`
	Drops      int     `json:"drops"`
	Solved     bool    `json:"solved"`
}

// Width returns the board width in pixels
func (v View) Width() int { return v.TileWidth * v.Dimension }

// Height returns the board height in pixels
func (v View) Height() int { return v.TileHeight * v.Dimension }

// Tile returns the tile with the given handle, or nil
func (v View) Tile(id TileID) *Tile {
	for i := range v.Tiles {
		if v.Tiles[i].ID == id {
			return &v.Tiles[i]
		}
	}
	return nil
}
