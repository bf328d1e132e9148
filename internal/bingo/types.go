// internal/bingo/types.go
//
// Core type definitions for the bingo engine.
// Defines:
//   - Tile: the candidates placed in one cell (1 in levels mode, 1–3 in tags mode).
//   - Grid: the fixed 5x5 board.
//   - Mask: per-cell completion flags derived from a FoundSet.
//   - FoundSet: tokens the player has confirmed so far.
//   - Candidates: the deduplicated pool a grid is drawn from.

package bingo

import "errors"

// Size is the number of rows and columns on a board.
const Size = 5

// Mode selects how a grid is generated.
type Mode string

const (
	ModeLevels Mode = "levels" // one unique level per cell
	ModeTags   Mode = "tags"   // 1–3 category-distinct words per cell
)

// Valid reports whether m names a known mode.
func (m Mode) Valid() bool {
	return m == ModeLevels || m == ModeTags
}

var (
	// ErrEmptyCandidateList is returned when there is nothing to draw from.
	ErrEmptyCandidateList = errors.New("bingo: empty candidate list")
	// ErrInsufficientCandidates is returned when the pool cannot fill a grid
	// within the retry bounds.
	ErrInsufficientCandidates = errors.New("bingo: insufficient candidates")
)

// Tile holds the candidates placed in a single cell.
type Tile []string

// Grid is a 5x5 board, indexed [row][col].
type Grid [Size][Size]Tile

// Mask marks which cells are fully found.
type Mask [Size][Size]bool

// FoundSet is the set of player-confirmed tokens.
type FoundSet map[string]struct{}

// Add inserts tokens and returns the ones that were not present before.
func (f FoundSet) Add(tokens ...string) []string {
	var added []string
	for _, t := range tokens {
		if _, ok := f[t]; ok {
			continue
		}
		f[t] = struct{}{}
		added = append(added, t)
	}
	return added
}

// Has reports whether token is in the set.
func (f FoundSet) Has(token string) bool {
	_, ok := f[token]
	return ok
}

// Candidates is the pool grids are generated from.
// Categories is only consulted in tags mode; a word missing from it is unconstrained.
type Candidates struct {
	Words      []string
	Categories map[string]int
}

// category returns the category of w and whether it has one.
func (c Candidates) category(w string) (int, bool) {
	if c.Categories == nil {
		return 0, false
	}
	cat, ok := c.Categories[w]
	return cat, ok
}

// Map returns a copy of g with fn applied to every word.
func (g Grid) Map(fn func(string) string) Grid {
	var out Grid
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			t := make(Tile, len(g[r][c]))
			for i, w := range g[r][c] {
				t[i] = fn(w)
			}
			out[r][c] = t
		}
	}
	return out
}

// Words returns every word on the grid in row-major order, repeats included.
func (g Grid) Words() []string {
	var out []string
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			out = append(out, g[r][c]...)
		}
	}
	return out
}
