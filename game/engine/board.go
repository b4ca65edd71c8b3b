package engine

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDimension = errors.New("invalid dimension")
	ErrImageTooSmall    = errors.New("image too small for dimension")
)

// Board owns the grid geometry and the tiles of one session
type Board struct {
	Dimension  int
	TileWidth  int
	TileHeight int

	// Tiles in iteration order. Shuffling reorders this slice; byID never changes.
	Tiles []*Tile
	byID  []*Tile
}

// NewBoard cuts an image of the given size into dimension×dimension tiles.
// Tile sizes use floor division, so any remainder of the image is not part of the board.
func NewBoard(imageWidth, imageHeight, dimension int) (*Board, error) {
	if dimension < MinDimension || dimension > MaxDimension {
		return nil, fmt.Errorf("%w: must be between %d and %d, got %d",
			ErrInvalidDimension, MinDimension, MaxDimension, dimension)
	}

	tileWidth := imageWidth / dimension
	tileHeight := imageHeight / dimension
	if tileWidth < 1 || tileHeight < 1 {
		return nil, fmt.Errorf("%w: %dx%d image cannot hold %d tiles per side",
			ErrImageTooSmall, imageWidth, imageHeight, dimension)
	}

	tiles := CreateTiles(dimension, tileWidth, tileHeight)
	byID := make([]*Tile, len(tiles))
	copy(byID, tiles)

	return &Board{
		Dimension:  dimension,
		TileWidth:  tileWidth,
		TileHeight: tileHeight,
		Tiles:      tiles,
		byID:       byID,
	}, nil
}

// CreateTiles returns dimension² tiles whose origins enumerate the grid in
// row-major order. Positions start on the origins, so the board is solved
// until it is shuffled.
func CreateTiles(dimension, tileWidth, tileHeight int) []*Tile {
	if dimension <= 0 {
		return nil
	}

	tiles := make([]*Tile, 0, dimension*dimension)
	for i, slot := range Slots(dimension, tileWidth, tileHeight) {
		tiles = append(tiles, &Tile{
			ID:       TileID(i),
			Origin:   slot,
			Position: slot,
		})
	}
	return tiles
}

// Slots returns every slot of the grid in row-major order
func Slots(dimension, tileWidth, tileHeight int) []Slot {
	slots := make([]Slot, 0, dimension*dimension)
	for row := 0; row < dimension; row++ {
		for col := 0; col < dimension; col++ {
			slots = append(slots, Slot{X: col * tileWidth, Y: row * tileHeight})
		}
	}
	return slots
}

// Width returns the board width in pixels
func (b *Board) Width() int { return b.TileWidth * b.Dimension }

// Height returns the board height in pixels
func (b *Board) Height() int { return b.TileHeight * b.Dimension }

// Bounds returns the board rectangle
func (b *Board) Bounds() Rect {
	return Rect{W: float64(b.Width()), H: float64(b.Height())}
}

// Tile returns the tile with the given handle, or nil
func (b *Board) Tile(id TileID) *Tile {
	if id < 0 || int(id) >= len(b.byID) {
		return nil
	}
	return b.byID[id]
}

// TileAt hit-tests the board in iteration order
func (b *Board) TileAt(p Point) *Tile {
	return TileAt(p, b.Tiles, b.TileWidth, b.TileHeight)
}

// SwapPositions exchanges the slots of two tiles; no other tile moves
func (b *Board) SwapPositions(a, c *Tile) {
	a.Position, c.Position = c.Position, a.Position
}

// Solved reports whether every tile sits on its origin
func (b *Board) Solved() bool {
	return IsSolved(b.Tiles)
}

// Snapshot copies the tiles in iteration order
func (b *Board) Snapshot() []Tile {
	out := make([]Tile, len(b.Tiles))
	for i, t := range b.Tiles {
		out[i] = *t
	}
	return out
}
