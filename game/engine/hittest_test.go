package engine

import "testing"

func TestTileAt(t *testing.T) {
	tiles := CreateTiles(2, 50, 40)

	tests := []struct {
		name  string
		point Point
		want  *Tile
	}{
		{"inside top-left", Point{10, 10}, tiles[0]},
		{"inside top-right", Point{75, 20}, tiles[1]},
		{"inside bottom-left", Point{25, 60}, tiles[2]},
		{"inside bottom-right", Point{99, 79}, tiles[3]},
		{"board corner", Point{0, 0}, tiles[0]},
		{"far edge inclusive", Point{100, 80}, tiles[3]},
		{"negative coordinate", Point{-1, 10}, nil},
		{"beyond width", Point{100.5, 10}, nil},
		{"beyond height", Point{10, 80.5}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TileAt(tt.point, tiles, 50, 40)
			if got != tt.want {
				t.Errorf("TileAt(%+v) = %v, want %v", tt.point, got, tt.want)
			}
		})
	}
}

func TestTileAt_SharedEdgeIsConsistent(t *testing.T) {
	tiles := CreateTiles(2, 50, 40)

	// x=50 belongs to both top tiles; the first in iteration order wins every time
	for i := 0; i < 3; i++ {
		if got := TileAt(Point{50, 20}, tiles, 50, 40); got != tiles[0] {
			t.Fatalf("Expected shared edge to resolve to tile 0, got %v", got)
		}
	}

	// reordering the sequence changes which neighbour is first
	reordered := []*Tile{tiles[1], tiles[0], tiles[2], tiles[3]}
	if got := TileAt(Point{50, 20}, reordered, 50, 40); got != tiles[1] {
		t.Errorf("Expected shared edge to resolve to tile 1 when it comes first, got %v", got)
	}
}

func TestTileAtExcept(t *testing.T) {
	tiles := CreateTiles(2, 50, 50)

	if got := TileAtExcept(Point{25, 25}, tiles, 50, 50, tiles[0]); got != nil {
		t.Errorf("Expected excluded tile to be skipped, got %v", got)
	}
	// on the shared edge the excluded tile yields to its neighbour
	if got := TileAtExcept(Point{50, 25}, tiles, 50, 50, tiles[0]); got != tiles[1] {
		t.Errorf("Expected neighbour tile 1, got %v", got)
	}
}
