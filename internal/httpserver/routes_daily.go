// internal/httpserver/routes_daily.go
//
// HTTP routes for the daily board.
// Exposes two endpoints under /daily:
//   - POST /daily/new         → start today's board for a mode (creates or reuses session)
//   - GET  /daily/leaderboard → fastest first bingos for today (or a given date)
//
// Everyone gets the same board per date and mode: the seed is HMAC(salt, date|mode).
// Each player can record one result per date and mode; the result is stored on
// the first completed line. Marking uses the regular /boards/{id}/* routes.

package httpserver

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/robalobadob/bingo/internal/bingo"
	"github.com/robalobadob/bingo/internal/daily"
	"github.com/robalobadob/bingo/internal/store"
)

// dailyServer tracks active daily sessions per player.
type dailyServer struct {
	srv      *Server
	sessions map[string]string // userID|date|mode → board id
	mu       sync.Mutex        // guards sessions
}

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	dd := &dailyServer{srv: s, sessions: make(map[string]string)}
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", dd.handleNew)
		r.Get("/leaderboard", dd.handleLeaderboard)
	})
}

type dailyNewReq struct {
	Mode string `json:"mode"`
}

type dailyNewRes struct {
	Date   string     `json:"date"`
	Played bool       `json:"played"`
	Board  *boardView `json:"board,omitempty"`
}

// handleNew returns today's board for the caller.
//   - If a result is already stored for today → Played=true, no board.
//   - Otherwise reuse the in-memory session or generate the board.
func (d *dailyServer) handleNew(w http.ResponseWriter, r *http.Request) {
	var req dailyNewReq
	_ = json.NewDecoder(r.Body).Decode(&req)
	mode, ok := parseMode(req.Mode)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown_mode")
		return
	}

	uid := d.srv.ownerID(w, r)
	now := time.Now().UTC()
	date := daily.DateKey(now)

	if played, err := d.srv.daily.AlreadyPlayed(r.Context(), uid, date, mode); err == nil && played {
		_ = json.NewEncoder(w).Encode(dailyNewRes{Date: date, Played: true})
		return
	}

	key := uid + "|" + date + "|" + string(mode)
	d.mu.Lock()
	id, ok := d.sessions[key]
	d.mu.Unlock()
	if ok {
		if sess, err := d.srv.store.Get(r.Context(), id); err == nil {
			v := buildView(sess, sess.Snapshot())
			_ = json.NewEncoder(w).Encode(dailyNewRes{Date: date, Board: &v})
			return
		}
	}

	sess, err := d.srv.newSession(w, r, mode, "daily:"+date, daily.Seed(now, d.srv.cfg.DailySalt, mode), date)
	if err != nil {
		d.srv.writeGenerateError(w, err)
		return
	}
	d.mu.Lock()
	d.sessions[key] = sess.ID
	d.mu.Unlock()

	v := buildView(sess, sess.Snapshot())
	_ = json.NewEncoder(w).Encode(dailyNewRes{Date: date, Board: &v})
}

type lbRes struct {
	Date string        `json:"date"`
	Mode bingo.Mode    `json:"mode"`
	Top  []daily.LBRow `json:"top"`
}

// handleLeaderboard returns the leaderboard for the given date (default today).
func (d *dailyServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	mode, ok := parseMode(r.URL.Query().Get("mode"))
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown_mode")
		return
	}
	date := r.URL.Query().Get("date")
	if date == "" {
		date = daily.DateKey(time.Now())
	}
	rows, err := d.srv.daily.Leaderboard(r.Context(), date, mode, 20)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	_ = json.NewEncoder(w).Encode(lbRes{Date: date, Mode: mode, Top: rows})
}

// dailyResult builds the stored result for a session's first bingo.
func dailyResult(owner string, sess *store.Session, snap store.Snapshot, at time.Time) daily.Result {
	return daily.Result{
		UserID:    owner,
		Date:      sess.Daily,
		Mode:      sess.Mode,
		ElapsedMs: int(at.Sub(sess.Start).Milliseconds()),
		Inputs:    snap.Inputs,
	}
}
