// internal/bingo/generate.go
//
// Deterministic grid generation.
// Responsibilities:
//   - Levels mode: 25 distinct entries drawn by rejection sampling.
//   - Tags mode: per cell, a weighted multiplicity (1/2/3) filled with words that
//     share no category, restarting the cell when a fill runs out of attempts.
//
// Notes:
//   - Every call owns its *rand.Rand; identical (candidates, seed) pairs yield
//     identical grids.
//   - Retry bounds turn pathological pools into ErrInsufficientCandidates
//     instead of an endless loop.

package bingo

import (
	"fmt"
	"math/rand"
)

const (
	maxSimpleDraws  = 100_000 // total draws allowed for a levels grid
	maxFillAttempts = 100     // draws per cell fill before restarting the cell
	maxCellRestarts = 5_000   // cell restarts before giving up
)

// multiplicity weights for tags mode, relative.
var multiplicityWeights = [...]struct {
	words  int
	weight int
}{
	{1, 60},
	{2, 35},
	{3, 5},
}

// Generate builds a grid for mode from c, seeded by seed.
func Generate(c Candidates, mode Mode, seed Seed) (Grid, error) {
	rng := seed.Rand()
	switch mode {
	case ModeLevels:
		return GenerateSimple(c.Words, rng)
	case ModeTags:
		return GenerateTagged(c, rng)
	default:
		return Grid{}, fmt.Errorf("bingo: unknown mode %q", mode)
	}
}

// GenerateSimple draws 25 distinct entries from words and packs them row-major.
func GenerateSimple(words []string, rng *rand.Rand) (Grid, error) {
	if len(words) == 0 {
		return Grid{}, ErrEmptyCandidateList
	}
	if n := countUnique(words); n < Size*Size {
		return Grid{}, fmt.Errorf("%w: need %d unique entries, have %d", ErrInsufficientCandidates, Size*Size, n)
	}

	var g Grid
	seen := make(map[string]struct{}, Size*Size)
	placed := 0
	for draws := 0; placed < Size*Size; draws++ {
		if draws >= maxSimpleDraws {
			return Grid{}, fmt.Errorf("%w: gave up after %d draws", ErrInsufficientCandidates, draws)
		}
		w := words[rng.Intn(len(words))]
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		g[placed/Size][placed%Size] = Tile{w}
		placed++
	}
	return g, nil
}

// GenerateTagged fills each cell with 1–3 words, no two from the same category.
func GenerateTagged(c Candidates, rng *rand.Rand) (Grid, error) {
	if len(c.Words) == 0 {
		return Grid{}, ErrEmptyCandidateList
	}
	var g Grid
	for i := 0; i < Size*Size; i++ {
		t, err := fillCell(c, rng)
		if err != nil {
			return Grid{}, fmt.Errorf("cell %s: %w", Coord(i/Size, i%Size), err)
		}
		g[i/Size][i%Size] = t
	}
	return g, nil
}

// fillCell draws a multiplicity and tries to fill it, restarting the whole cell
// when a fill exhausts its attempts.
func fillCell(c Candidates, rng *rand.Rand) (Tile, error) {
	for restart := 0; restart < maxCellRestarts; restart++ {
		k := pickMultiplicity(rng)
		if t, ok := tryFill(c, k, rng); ok {
			return t, nil
		}
	}
	return nil, fmt.Errorf("%w: no fill after %d restarts", ErrInsufficientCandidates, maxCellRestarts)
}

// tryFill draws up to maxFillAttempts words and reports whether k were accepted.
func tryFill(c Candidates, k int, rng *rand.Rand) (Tile, bool) {
	selected := make(Tile, 0, k)
	usedCats := make(map[int]struct{}, k)
	for attempts := 0; len(selected) < k && attempts < maxFillAttempts; attempts++ {
		w := c.Words[rng.Intn(len(c.Words))]
		cat, hasCat := c.category(w)
		if hasCat {
			if _, used := usedCats[cat]; used {
				continue
			}
		}
		if contains(selected, w) {
			continue
		}
		selected = append(selected, w)
		if hasCat {
			usedCats[cat] = struct{}{}
		}
	}
	return selected, len(selected) == k
}

// pickMultiplicity performs the weighted draw over multiplicityWeights.
func pickMultiplicity(rng *rand.Rand) int {
	total := 0
	for _, mw := range multiplicityWeights {
		total += mw.weight
	}
	n := rng.Intn(total)
	for _, mw := range multiplicityWeights {
		if n < mw.weight {
			return mw.words
		}
		n -= mw.weight
	}
	return multiplicityWeights[len(multiplicityWeights)-1].words
}

func countUnique(words []string) int {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return len(set)
}

func contains(t Tile, w string) bool {
	for _, x := range t {
		if x == w {
			return true
		}
	}
	return false
}
