package engine

// TileAt returns the first tile, in iteration order, whose rectangle at its
// current slot contains p. All four edges count as inside. Returns nil on a miss.
func TileAt(p Point, tiles []*Tile, tileWidth, tileHeight int) *Tile {
	return TileAtExcept(p, tiles, tileWidth, tileHeight, nil)
}

// TileAtExcept is TileAt with one tile excluded from the search
func TileAtExcept(p Point, tiles []*Tile, tileWidth, tileHeight int, except *Tile) *Tile {
	for _, t := range tiles {
		if t == except {
			continue
		}
		if t.Rect(tileWidth, tileHeight).Contains(p) {
			return t
		}
	}
	return nil
}
