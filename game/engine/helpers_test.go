package engine

// scriptedRandom replays fixed IntN results
type scriptedRandom struct {
	values []int
	next   int
}

func (s *scriptedRandom) IntN(n int) int {
	v := s.values[s.next%len(s.values)]
	s.next++
	if v >= n {
		return n - 1
	}
	return v
}

// identityRandom makes every Fisher–Yates step swap an element with itself
type identityRandom struct{}

func (identityRandom) IntN(n int) int { return n - 1 }

func centerOf(t *Tile, tileWidth, tileHeight int) Point {
	return Point{
		X: float64(t.Position.X) + float64(tileWidth)/2,
		Y: float64(t.Position.Y) + float64(tileHeight)/2,
	}
}
