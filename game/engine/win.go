package engine

// IsSolved reports whether every tile occupies its origin slot
func IsSolved(tiles []*Tile) bool {
	for _, t := range tiles {
		if !t.InPlace() {
			return false
		}
	}
	return true
}

// Misplaced counts tiles that are not on their origin slot
func Misplaced(tiles []*Tile) int {
	n := 0
	for _, t := range tiles {
		if !t.InPlace() {
			n++
		}
	}
	return n
}
