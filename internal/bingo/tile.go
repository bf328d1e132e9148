// internal/bingo/tile.go
//
// Per-tile highlight state. Highlights are a player aid only and never
// affect marking.

package bingo

import "fmt"

// TileState is a player-controlled highlight on a tile. It is purely visual and
// never affects marking.
type TileState int

const (
	Unmarked TileState = iota
	Flag1
	Flag2
)

var tileStateNames = [...]string{"unmarked", "flag1", "flag2"}

// Next advances the state: Unmarked → Flag1 → Flag2 → Unmarked.
func (s TileState) Next() TileState {
	return (s + 1) % TileState(len(tileStateNames))
}

func (s TileState) String() string {
	if s < 0 || int(s) >= len(tileStateNames) {
		return "unknown"
	}
	return tileStateNames[s]
}

// MarshalText renders the state by name in JSON payloads.
func (s TileState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a state name produced by MarshalText.
func (s *TileState) UnmarshalText(b []byte) error {
	for i, name := range tileStateNames {
		if string(b) == name {
			*s = TileState(i)
			return nil
		}
	}
	return fmt.Errorf("bingo: unknown tile state %q", b)
}
