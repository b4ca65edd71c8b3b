package engine

import (
	"cmp"
	cryptoRand "crypto/rand"
	"math/rand/v2"
	"slices"
)

// RandomSource yields uniform integers in [0, n)
type RandomSource interface {
	IntN(n int) int
}

// DefaultRandom returns a ChaCha8 generator seeded from crypto/rand
func DefaultRandom() RandomSource {
	var seed [32]byte
	if _, err := cryptoRand.Read(seed[:]); err != nil {
		// fall back to the runtime-seeded global source
		return globalRandom{}
	}
	return rand.New(rand.NewChaCha8(seed))
}

// NewSeededRandom returns a reproducible generator (tests, statistics)
func NewSeededRandom(seed uint64) RandomSource {
	return rand.New(rand.NewPCG(seed, 0))
}

type globalRandom struct{}

func (globalRandom) IntN(n int) int { return rand.IntN(n) }

// Shuffle permutes tiles in place with a Fisher–Yates shuffle and then
// reassigns slots row-major in the new order. Origins are untouched.
// An identity permutation is kept as is.
func Shuffle(tiles []*Tile, rng RandomSource) []*Tile {
	if len(tiles) == 0 {
		return tiles
	}
	if rng == nil {
		rng = DefaultRandom()
	}

	for i := len(tiles); i > 0; i-- {
		j := rng.IntN(i)
		tiles[i-1], tiles[j] = tiles[j], tiles[i-1]
	}

	slots := make([]Slot, len(tiles))
	for i, t := range tiles {
		slots[i] = t.Position
	}
	slices.SortFunc(slots, compareRowMajor)
	for i, slot := range slots {
		tiles[i].Position = slot
	}
	return tiles
}

func compareRowMajor(a, b Slot) int {
	if a.Y != b.Y {
		return cmp.Compare(a.Y, b.Y)
	}
	return cmp.Compare(a.X, b.X)
}
