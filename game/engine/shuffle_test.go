package engine

import (
	"fmt"
	"testing"
)

func TestShuffle_IsPermutation(t *testing.T) {
	tiles := CreateTiles(4, 25, 25)
	origins := make(map[*Tile]Slot)
	for _, tile := range tiles {
		origins[tile] = tile.Origin
	}

	shuffled := Shuffle(tiles, NewSeededRandom(42))

	if len(shuffled) != len(origins) {
		t.Fatalf("Expected %d tiles, got %d", len(origins), len(shuffled))
	}

	seenTiles := make(map[*Tile]bool)
	seenSlots := make(map[Slot]bool)
	for _, tile := range shuffled {
		origin, ok := origins[tile]
		if !ok {
			t.Fatalf("Shuffle introduced an unknown tile %+v", tile)
		}
		if seenTiles[tile] {
			t.Fatalf("Tile %d appears twice", tile.ID)
		}
		seenTiles[tile] = true

		if tile.Origin != origin {
			t.Errorf("Tile %d origin changed from %+v to %+v", tile.ID, origin, tile.Origin)
		}
		if seenSlots[tile.Position] {
			t.Errorf("Slot %+v is occupied twice", tile.Position)
		}
		seenSlots[tile.Position] = true
	}

	for _, slot := range Slots(4, 25, 25) {
		if !seenSlots[slot] {
			t.Errorf("Slot %+v is empty after shuffle", slot)
		}
	}
}

func TestShuffle_PositionsFollowNewOrder(t *testing.T) {
	tiles := Shuffle(CreateTiles(3, 10, 10), NewSeededRandom(9))
	for i, slot := range Slots(3, 10, 10) {
		if tiles[i].Position != slot {
			t.Errorf("Index %d: expected position %+v, got %+v", i, slot, tiles[i].Position)
		}
	}
}

func TestShuffle_FisherYatesSteps(t *testing.T) {
	tiles := CreateTiles(2, 50, 50)
	// i=4 j=3, i=3 j=2, i=2 j=0, i=1 j=0 swaps only the first two tiles
	shuffled := Shuffle(tiles, &scriptedRandom{values: []int{3, 2, 0, 0}})

	order := []TileID{shuffled[0].ID, shuffled[1].ID, shuffled[2].ID, shuffled[3].ID}
	expected := []TileID{1, 0, 2, 3}
	for i := range expected {
		if order[i] != expected[i] {
			t.Fatalf("Expected order %v, got %v", expected, order)
		}
	}
}

func TestShuffle_IdentityIsNotRerolled(t *testing.T) {
	tiles := Shuffle(CreateTiles(3, 10, 10), identityRandom{})
	if !IsSolved(tiles) {
		t.Error("Expected the identity permutation to be kept and the board to be solved")
	}
}

func TestShuffle_Uniformity(t *testing.T) {
	const trials = 24000
	rng := NewSeededRandom(2024)
	counts := make(map[string]int)

	for i := 0; i < trials; i++ {
		tiles := Shuffle(CreateTiles(2, 10, 10), rng)
		key := fmt.Sprintf("%d%d%d%d", tiles[0].ID, tiles[1].ID, tiles[2].ID, tiles[3].ID)
		counts[key]++
	}

	if len(counts) != 24 {
		t.Fatalf("Expected all 24 permutations, got %d", len(counts))
	}

	expected := trials / 24
	for key, n := range counts {
		if n < expected*85/100 || n > expected*115/100 {
			t.Errorf("Permutation %s occurred %d times, expected about %d", key, n, expected)
		}
	}
}

func TestShuffle_Empty(t *testing.T) {
	if got := Shuffle(nil, NewSeededRandom(1)); len(got) != 0 {
		t.Errorf("Expected empty result, got %d tiles", len(got))
	}
}
