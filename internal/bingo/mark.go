// internal/bingo/mark.go
//
// Marking and line detection.
//   - Mark: which tiles contain at least one found token (exact match).
//   - CheckLines: completed rows, columns and diagonals, in that order.
//   - Coord/ParseCoord: "A1".."E5" tile names (row letter, column digit).

package bingo

import (
	"fmt"
	"strings"
)

const (
	DiagonalMain = "Diagonal Top-Left to Bottom-Right"
	DiagonalAnti = "Diagonal Top-Right to Bottom-Left"
)

const rowLetters = "ABCDE"

// Mark reports, per cell, whether every word of the tile is in found.
// Matching is exact; callers normalize both sides beforehand if needed.
func Mark(g Grid, found FoundSet) Mask {
	var m Mask
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			m[r][c] = tileFound(g[r][c], found)
		}
	}
	return m
}

func tileFound(t Tile, found FoundSet) bool {
	for _, w := range t {
		if !found.Has(w) {
			return false
		}
	}
	return true
}

// CheckLines lists every complete line: rows top to bottom, columns left to
// right, then the main and anti diagonals. The result is never nil.
func CheckLines(m Mask) []string {
	lines := []string{}
	for r := 0; r < Size; r++ {
		if m.row(r) {
			lines = append(lines, RowName(r))
		}
	}
	for c := 0; c < Size; c++ {
		if m.col(c) {
			lines = append(lines, ColumnName(c))
		}
	}
	diag, anti := true, true
	for i := 0; i < Size; i++ {
		diag = diag && m[i][i]
		anti = anti && m[i][Size-1-i]
	}
	if diag {
		lines = append(lines, DiagonalMain)
	}
	if anti {
		lines = append(lines, DiagonalAnti)
	}
	return lines
}

func (m Mask) row(r int) bool {
	for c := 0; c < Size; c++ {
		if !m[r][c] {
			return false
		}
	}
	return true
}

func (m Mask) col(c int) bool {
	for r := 0; r < Size; r++ {
		if !m[r][c] {
			return false
		}
	}
	return true
}

// RowName returns "Row A".."Row E".
func RowName(r int) string { return "Row " + string(rowLetters[r]) }

// ColumnName returns "Column 1".."Column 5".
func ColumnName(c int) string { return fmt.Sprintf("Column %d", c+1) }

// Coord returns the board coordinate of a cell, e.g. "A1" or "E5".
func Coord(row, col int) string {
	return fmt.Sprintf("%c%d", rowLetters[row], col+1)
}

// ParseCoord is the inverse of Coord. Letters are case-insensitive.
func ParseCoord(s string) (row, col int, err error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) != 2 {
		return 0, 0, fmt.Errorf("bingo: invalid coordinate %q", s)
	}
	row = strings.IndexByte(rowLetters, s[0])
	col = int(s[1] - '1')
	if row < 0 || col < 0 || col >= Size {
		return 0, 0, fmt.Errorf("bingo: invalid coordinate %q", s)
	}
	return row, col, nil
}
