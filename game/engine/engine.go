package engine

import "fmt"

// Engine provides the main interface for puzzle interaction
type Engine interface {
	// Event dispatch
	Handle(ev Event) Transition

	// State inspection
	State() State
	View() View
	Board() *Board
	IsWon() bool
	Redraw() Redraw

	// Counters
	Swaps() int
	Drops() int
}

// Machine implements Engine for a single session. It is not safe for
// concurrent use; callers deliver events one at a time.
type Machine struct {
	board *Board
	rng   RandomSource
	state State

	// selected and hovered point into board-owned tiles
	selected *Tile
	hovered  *Tile
	pointer  Point

	swaps int
	drops int
}

// NewMachine creates a machine in the Idle state around an unshuffled board
func NewMachine(board *Board, rng RandomSource) (*Machine, error) {
	if board == nil {
		return nil, fmt.Errorf("board cannot be nil")
	}
	if rng == nil {
		rng = DefaultRandom()
	}
	return &Machine{
		board: board,
		rng:   rng,
		state: Idle,
	}, nil
}

// NewGame builds a board for an image of the given size and wraps it in a machine
func NewGame(imageWidth, imageHeight, dimension int, rng RandomSource) (*Machine, error) {
	board, err := NewBoard(imageWidth, imageHeight, dimension)
	if err != nil {
		return nil, err
	}
	return NewMachine(board, rng)
}

// Handle applies one pointer event and reports what changed.
// Events that do not apply to the current state are returned with Ignored set.
func (m *Machine) Handle(ev Event) Transition {
	t := Transition{
		Event: ev,
		From:  m.state,
		To:    m.state,
	}

	switch {
	case m.state == Idle && ev.Type == PointerDown:
		m.start(&t)
	case m.state == Shuffled && ev.Type == PointerDown:
		m.pick(&t, ev.Point)
	case m.state == Dragging && ev.Type == PointerMove:
		m.drag(&t, ev.Point)
	case m.state == Dragging && ev.Type == PointerUp:
		m.drop(&t, ev.Point)
	default:
		t.Ignored = true
	}

	t.To = m.state
	return t
}

// start shuffles the board once; the Idle state is never re-entered
func (m *Machine) start(t *Transition) {
	m.board.Tiles = Shuffle(m.board.Tiles, m.rng)
	m.state = Shuffled
	t.Shuffled = true
	t.Redraw = RedrawBoard
}

func (m *Machine) pick(t *Transition, p Point) {
	m.pointer = p
	tile := m.board.TileAt(p)
	if tile == nil {
		t.Ignored = true
		return
	}

	m.selected = tile
	m.hovered = nil
	m.state = Dragging
	t.Selected = idOf(tile)
	t.Redraw = RedrawPick
}

func (m *Machine) drag(t *Transition, p Point) {
	m.pointer = p
	m.hovered = TileAtExcept(p, m.board.Tiles, m.board.TileWidth, m.board.TileHeight, m.selected)

	t.Selected = idOf(m.selected)
	t.Hovered = idOf(m.hovered)
	t.Redraw = RedrawDrag
}

// drop resolves the drag: swap with the hovered tile if any, then evaluate
func (m *Machine) drop(t *Transition, p Point) {
	m.pointer = p
	t.Path = []State{Evaluating}
	t.Selected = idOf(m.selected)
	t.Hovered = idOf(m.hovered)

	if m.hovered != nil {
		m.board.SwapPositions(m.selected, m.hovered)
		t.Swap = &Swap{A: m.selected.ID, B: m.hovered.ID}
		m.swaps++
	}
	m.drops++
	m.selected = nil
	m.hovered = nil

	if m.board.Solved() {
		m.state = Won
		t.Won = true
		t.Redraw = RedrawWon
		return
	}
	m.state = Shuffled
	t.Redraw = RedrawBoard
}

// State returns the current interaction state
func (m *Machine) State() State {
	return m.state
}

// Board returns the board owned by the machine
func (m *Machine) Board() *Board {
	return m.board
}

// IsWon returns whether the puzzle has been solved
func (m *Machine) IsWon() bool {
	return m.state == Won
}

// Swaps returns the number of committed swaps
func (m *Machine) Swaps() int {
	return m.swaps
}

// Drops returns the number of resolved drags, with or without a swap
func (m *Machine) Drops() int {
	return m.drops
}

// Redraw returns the frame that shows the current state from scratch
func (m *Machine) Redraw() Redraw {
	switch m.state {
	case Idle:
		return RedrawStart
	case Dragging:
		if m.hovered == nil {
			return RedrawPick
		}
		return RedrawDrag
	case Won:
		return RedrawWon
	default:
		return RedrawBoard
	}
}

// View returns a snapshot of the machine
func (m *Machine) View() View {
	return View{
		State:      m.state,
		Dimension:  m.board.Dimension,
		TileWidth:  m.board.TileWidth,
		TileHeight: m.board.TileHeight,
		Tiles:      m.board.Snapshot(),
		Selected:   idOf(m.selected),
		Hovered:    idOf(m.hovered),
		Pointer:    m.pointer,
		Swaps:      m.swaps,
		Drops:      m.drops,
		Solved:     m.board.Solved(),
	}
}

func idOf(t *Tile) *TileID {
	if t == nil {
		return nil
	}
	id := t.ID
	return &id
}
