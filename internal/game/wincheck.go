// apps/go-server/internal/game/wincheck.go
//
// Win detection for Bingo cards. HasBingo is a pure predicate over a
// marked-cell set so it can be exercised without building a Card.

package game

// HasBingo reports whether the marked set completes a line on an n by n
// board: any full row, any full column, the main diagonal, or the
// anti-diagonal.
func HasBingo(marked map[Coord]bool, n int) bool {
	if n < 1 {
		return false
	}
	for r := 0; r < n; r++ {
		if lineComplete(marked, n, func(i int) Coord { return Coord{Row: r, Col: i} }) {
			return true
		}
	}
	for c := 0; c < n; c++ {
		if lineComplete(marked, n, func(i int) Coord { return Coord{Row: i, Col: c} }) {
			return true
		}
	}
	if lineComplete(marked, n, func(i int) Coord { return Coord{Row: i, Col: i} }) {
		return true
	}
	return lineComplete(marked, n, func(i int) Coord { return Coord{Row: i, Col: n - 1 - i} })
}

// lineComplete checks that every cell produced by at(0..n-1) is marked.
func lineComplete(marked map[Coord]bool, n int, at func(int) Coord) bool {
	for i := 0; i < n; i++ {
		if !marked[at(i)] {
			return false
		}
	}
	return true
}
