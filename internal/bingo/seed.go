// internal/bingo/seed.go
//
// Seeds. Integer text is used as-is; any other text is hashed, so the same
// seed string always yields the same board.

package bingo

import (
	"crypto/sha256"
	"encoding/binary"
	"math/rand"
	"strconv"
	"strings"
)

// Seed drives the pseudo-random sequence used to build a grid.
type Seed int64

// ParseSeed turns user text into a Seed.
// Base-10 integers are used as-is; any other text is hashed with SHA-256.
func ParseSeed(text string) Seed {
	text = strings.TrimSpace(text)
	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		return Seed(n)
	}
	sum := sha256.Sum256([]byte(text))
	return Seed(binary.BigEndian.Uint64(sum[:8]))
}

// Rand returns a fresh generator seeded with s.
func (s Seed) Rand() *rand.Rand {
	return rand.New(rand.NewSource(int64(s)))
}
