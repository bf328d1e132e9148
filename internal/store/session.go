// internal/store/session.go
//
// Session is the live state of one board: the immutable grid plus the
// player's found tokens and tile highlights.

package store

import (
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/robalobadob/bingo/internal/bingo"
)

// Session holds the state of a single board being played.
type Session struct {
	ID       string
	Mode     bingo.Mode
	SeedText string     // seed as the player typed it
	Seed     bingo.Seed // parsed seed the grid was generated from
	Grid     bingo.Grid
	Daily    string // date key for daily boards, empty otherwise
	Start    time.Time

	mu         sync.Mutex
	owner      string // user id or anonymous id
	found      bingo.FoundSet
	tiles      [bingo.Size][bingo.Size]bingo.TileState
	inputs     int
	firstBingo time.Time
}

// NewSession wraps a generated grid in a fresh session.
func NewSession(mode bingo.Mode, seedText string, seed bingo.Seed, g bingo.Grid) *Session {
	return &Session{
		ID:       ulid.Make().String(),
		Mode:     mode,
		SeedText: seedText,
		Seed:     seed,
		Grid:     g,
		Start:    time.Now(),
		found:    bingo.FoundSet{},
	}
}

// Owner returns the user id or anonymous id the session belongs to.
func (s *Session) Owner() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.owner
}

// SetOwner hands the session to another player, e.g. when a guest signs up.
func (s *Session) SetOwner(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.owner = id
}

// Snapshot is a consistent copy of a session's mutable state.
type Snapshot struct {
	Found      bingo.FoundSet
	Tiles      [bingo.Size][bingo.Size]bingo.TileState
	Inputs     int
	FirstBingo time.Time
}

// Submit adds tokens to the found set and returns those that were new.
func (s *Session) Submit(tokens []string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inputs++
	return s.found.Add(tokens...)
}

// MarkBingo records the first time a line was completed. It returns true
// only for the call that recorded it.
func (s *Session) MarkBingo(at time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.firstBingo.IsZero() {
		return false
	}
	s.firstBingo = at
	return true
}

// CycleTile advances the highlight of one tile and returns the new state.
func (s *Session) CycleTile(row, col int) bingo.TileState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tiles[row][col] = s.tiles[row][col].Next()
	return s.tiles[row][col]
}

// Snapshot copies the mutable state under the session lock.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	found := make(bingo.FoundSet, len(s.found))
	for k := range s.found {
		found[k] = struct{}{}
	}
	return Snapshot{Found: found, Tiles: s.tiles, Inputs: s.inputs, FirstBingo: s.firstBingo}
}
