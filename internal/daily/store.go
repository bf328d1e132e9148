// internal/daily/store.go
//
// SQLite persistence for daily results and the per-day leaderboard.
// One row per (user, date, mode); later inserts for the same key are ignored.

package daily

import (
	"context"
	"database/sql"

	"github.com/robalobadob/bingo/internal/bingo"
)

// Result is one player's first bingo on a daily board.
type Result struct {
	UserID    string     `json:"userId"`
	Date      string     `json:"date"`
	Mode      bingo.Mode `json:"mode"`
	ElapsedMs int        `json:"elapsedMs"`
	Inputs    int        `json:"inputs"`
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// AlreadyPlayed reports whether a result exists for user, date and mode.
func (s *Store) AlreadyPlayed(ctx context.Context, userID, date string, mode bingo.Mode) (bool, error) {
	var cnt int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM daily_results WHERE user_id=? AND date=? AND mode=?`,
		userID, date, string(mode),
	).Scan(&cnt)
	return cnt > 0, err
}

// InsertResult stores r; a second result for the same user, date and mode is ignored.
func (s *Store) InsertResult(ctx context.Context, r Result) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO daily_results(user_id, date, mode, elapsed_ms, inputs)
		 VALUES(?,?,?,?,?)`, r.UserID, r.Date, string(r.Mode), r.ElapsedMs, r.Inputs,
	)
	return err
}

type LBRow struct {
	UserID    string `json:"userId"`
	ElapsedMs int    `json:"elapsedMs"`
	Inputs    int    `json:"inputs"`
}

// Leaderboard returns the fastest first bingos for a date and mode.
func (s *Store) Leaderboard(ctx context.Context, date string, mode bingo.Mode, limit int) ([]LBRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, elapsed_ms, inputs
		 FROM daily_results
		 WHERE date=? AND mode=?
		 ORDER BY elapsed_ms ASC, inputs ASC, created_at ASC
		 LIMIT ?`, date, string(mode), limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []LBRow{}
	for rows.Next() {
		var r LBRow
		if err := rows.Scan(&r.UserID, &r.ElapsedMs, &r.Inputs); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
