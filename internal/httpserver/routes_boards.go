// internal/httpserver/routes_boards.go
//
// Board endpoints. The handlers are the presentation layer around the core:
// they normalize player input, keep the found set and tile highlights in the
// session, and recompute the mask and completed lines on every read.
//
//   - POST /boards                        → generate a board from {mode, seed}
//   - GET  /boards/{id}                   → current board view
//   - POST /boards/{id}/found             → submit comma-separated tokens
//   - POST /boards/{id}/tiles/{coord}/cycle → advance a tile highlight
//   - GET  /boards/{id}/suggest?q=        → autocomplete from the loaded list
//
// Boards can be viewed by anyone holding the id; only the owner (account or
// anonymous cookie) may submit tokens or cycle tiles.

package httpserver

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/cases"

	"github.com/robalobadob/bingo/internal/bingo"
	"github.com/robalobadob/bingo/internal/lists"
	"github.com/robalobadob/bingo/internal/store"
)

const defaultSuggestLimit = 50

func (s *Server) mountBoards(r chi.Router) {
	r.Post("/boards", s.handleNewBoard)
	r.Get("/boards/{id}", s.handleGetBoard)
	r.Post("/boards/{id}/found", s.handleFound)
	r.Post("/boards/{id}/tiles/{coord}/cycle", s.handleCycleTile)
	r.Get("/boards/{id}/suggest", s.handleSuggest)
}

// ------------------------------ views ---------------------------------------

type tileView struct {
	Coord  string          `json:"coord"`
	Words  []string        `json:"words"`
	Level  *lists.Level    `json:"level,omitempty"`
	State  bingo.TileState `json:"state"`
	Marked bool            `json:"marked"`
}

type boardView struct {
	BoardID string       `json:"boardId"`
	Mode    bingo.Mode   `json:"mode"`
	Seed    string       `json:"seed"`
	Daily   string       `json:"daily,omitempty"`
	Tiles   [][]tileView `json:"tiles"`
	Found   []string     `json:"found"`
	Bingos  []string     `json:"bingos"`
}

// fold is the normalization applied to both player tokens and grid words.
func fold(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// parseInput splits comma-separated player input into normalized tokens.
func parseInput(input string) []string {
	var out []string
	for _, part := range strings.Split(input, ",") {
		if t := fold(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// matchGrid is the grid as players type it: folded words, and only the
// level id for level entries.
func matchGrid(sess *store.Session) bingo.Grid {
	if sess.Mode == bingo.ModeLevels {
		return sess.Grid.Map(func(w string) string { return fold(lists.ParseLevel(w).ID) })
	}
	return sess.Grid.Map(fold)
}

// evaluate recomputes the mask and completed lines from a snapshot.
func evaluate(sess *store.Session, snap store.Snapshot) (bingo.Mask, []string) {
	mask := bingo.Mark(matchGrid(sess), snap.Found)
	return mask, bingo.CheckLines(mask)
}

func buildView(sess *store.Session, snap store.Snapshot) boardView {
	mask, lines := evaluate(sess, snap)
	v := boardView{
		BoardID: sess.ID,
		Mode:    sess.Mode,
		Seed:    sess.SeedText,
		Daily:   sess.Daily,
		Tiles:   make([][]tileView, bingo.Size),
		Found:   make([]string, 0, len(snap.Found)),
		Bingos:  lines,
	}
	for r := 0; r < bingo.Size; r++ {
		v.Tiles[r] = make([]tileView, bingo.Size)
		for c := 0; c < bingo.Size; c++ {
			tv := tileView{
				Coord:  bingo.Coord(r, c),
				Words:  sess.Grid[r][c],
				State:  snap.Tiles[r][c],
				Marked: mask[r][c],
			}
			if sess.Mode == bingo.ModeLevels && len(sess.Grid[r][c]) == 1 {
				lv := lists.ParseLevel(sess.Grid[r][c][0])
				tv.Level = &lv
			}
			v.Tiles[r][c] = tv
		}
	}
	for t := range snap.Found {
		v.Found = append(v.Found, t)
	}
	sort.Strings(v.Found)
	return v
}

// ------------------------------ handlers ------------------------------------

type newBoardReq struct {
	Mode string `json:"mode"` // "levels" | "tags" (default "tags")
	Seed string `json:"seed"` // any text; random when empty
}

func (s *Server) handleNewBoard(w http.ResponseWriter, r *http.Request) {
	var req newBoardReq
	_ = json.NewDecoder(r.Body).Decode(&req)

	mode, ok := parseMode(req.Mode)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown_mode")
		return
	}
	seedText := strings.TrimSpace(req.Seed)
	if seedText == "" {
		seedText = randomSeedText()
	}

	sess, err := s.newSession(w, r, mode, seedText, bingo.ParseSeed(seedText), "")
	if err != nil {
		s.writeGenerateError(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(buildView(sess, sess.Snapshot()))
}

func (s *Server) handleGetBoard(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	_ = json.NewEncoder(w).Encode(buildView(sess, sess.Snapshot()))
}

type foundReq struct {
	Input string `json:"input"`
}

type foundRes struct {
	boardView
	Added       []string `json:"added"`
	NewlyMarked []string `json:"newlyMarked"`
}

// handleFound adds the player's tokens and reports what changed.
func (s *Server) handleFound(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookupOwned(w, r)
	if !ok {
		return
	}
	var req foundReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}

	before, _ := evaluate(sess, sess.Snapshot())
	added := sess.Submit(parseInput(req.Input))
	snap := sess.Snapshot()
	view := buildView(sess, snap)

	res := foundRes{boardView: view, Added: added, NewlyMarked: []string{}}
	if res.Added == nil {
		res.Added = []string{}
	}
	for row := range view.Tiles {
		for col, t := range view.Tiles[row] {
			if t.Marked && !before[row][col] {
				res.NewlyMarked = append(res.NewlyMarked, t.Coord)
			}
		}
	}

	s.bumpInputs(r.Context(), sess.ID)
	if len(view.Bingos) > 0 {
		if now := time.Now(); sess.MarkBingo(now) {
			s.recordBingo(r.Context(), currentUser(r), sess, snap, view.Bingos, now)
		}
	}
	_ = json.NewEncoder(w).Encode(res)
}

func (s *Server) handleCycleTile(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookupOwned(w, r)
	if !ok {
		return
	}
	coord := chi.URLParam(r, "coord")
	row, col, err := bingo.ParseCoord(coord)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_coord")
		return
	}
	state := sess.CycleTile(row, col)
	_ = json.NewEncoder(w).Encode(map[string]any{"coord": bingo.Coord(row, col), "state": state})
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	limit := defaultSuggestLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	pool := s.lists.Words.Words
	if sess.Mode == bingo.ModeLevels {
		pool = make([]string, len(s.lists.Levels))
		for i, l := range s.lists.Levels {
			pool[i] = lists.ParseLevel(l).ID
		}
	}
	_ = json.NewEncoder(w).Encode(map[string]any{
		"suggestions": lists.Suggest(pool, r.URL.Query().Get("q"), limit),
	})
}

// ------------------------------ helpers -------------------------------------

func parseMode(s string) (bingo.Mode, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return bingo.ModeTags, true
	}
	m := bingo.Mode(s)
	return m, m.Valid()
}

// randomSeedText returns a fresh decimal seed for boards created without one.
func randomSeedText() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return strconv.FormatUint(binary.LittleEndian.Uint64(b[:])>>1, 10)
}

// lookup loads the session named by the {id} URL param, writing a 404 if missing.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*store.Session, bool) {
	sess, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found")
		return nil, false
	}
	return sess, true
}

// lookupOwned is lookup for mutating routes: the caller must own the board.
func (s *Server) lookupOwned(w http.ResponseWriter, r *http.Request) (*store.Session, bool) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return nil, false
	}
	if sess.Owner() != s.ownerID(w, r) {
		writeError(w, http.StatusForbidden, "not_owner")
		return nil, false
	}
	return sess, true
}

// newSession generates a grid, stores the session and records a history row.
func (s *Server) newSession(w http.ResponseWriter, r *http.Request,
	mode bingo.Mode, seedText string, seed bingo.Seed, dailyDate string) (*store.Session, error) {
	ctx := r.Context()
	g, err := bingo.Generate(s.lists.Candidates(mode), mode, seed)
	if err != nil {
		return nil, err
	}
	sess := store.NewSession(mode, seedText, seed, g)
	sess.Daily = dailyDate

	me := currentUser(r)
	sess.SetOwner(s.ownerID(w, r))
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, err
	}

	if me != nil {
		s.insertBoardRow(ctx, sess, "user_id")
		if _, err := s.db.ExecContext(ctx, `UPDATE users SET boards_played = boards_played + 1 WHERE id=?`, me.ID); err != nil {
			log.Warn().Err(err).Str("user", me.ID).Msg("bump boards played")
		}
	} else {
		s.insertBoardRow(ctx, sess, "anonymous_id")
	}

	log.Info().Str("boardId", sess.ID).Str("mode", string(mode)).Str("seed", seedText).Msg("board created")
	return sess, nil
}

// insertBoardRow persists a history row; failures are logged, not returned.
func (s *Server) insertBoardRow(ctx context.Context, sess *store.Session, ownerCol string) {
	var dailyDate any
	if sess.Daily != "" {
		dailyDate = sess.Daily
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO boards (id, `+ownerCol+`, mode, seed, daily_date, started_at) VALUES (?,?,?,?,?,?)`,
		sess.ID, sess.Owner(), string(sess.Mode), sess.SeedText, dailyDate, sess.Start.UTC().Format(time.RFC3339))
	if err != nil {
		log.Warn().Err(err).Str("boardId", sess.ID).Msg("insert board row")
	}
}

func (s *Server) bumpInputs(ctx context.Context, boardID string) {
	if _, err := s.db.ExecContext(ctx, `UPDATE boards SET inputs = inputs + 1 WHERE id=?`, boardID); err != nil {
		log.Warn().Err(err).Str("boardId", boardID).Msg("update inputs")
	}
}

// recordBingo persists the first completed line of a board: history row,
// user stats when me is logged in and, for daily boards, the daily result.
func (s *Server) recordBingo(ctx context.Context, me *authUser, sess *store.Session, snap store.Snapshot, lines []string, at time.Time) {
	log.Info().Str("boardId", sess.ID).Strs("lines", lines).Msg("bingo")

	if _, err := s.db.ExecContext(ctx, `UPDATE boards SET first_bingo_at=?, lines=? WHERE id=?`,
		at.UTC().Format(time.RFC3339), len(lines), sess.ID); err != nil {
		log.Warn().Err(err).Str("boardId", sess.ID).Msg("record bingo")
	}
	owner := sess.Owner()
	if me != nil {
		owner = me.ID
		if _, err := s.db.ExecContext(ctx, `UPDATE users SET bingos = bingos + 1 WHERE id=?`, me.ID); err != nil {
			log.Warn().Err(err).Str("user", me.ID).Msg("bump bingos")
		}
	}
	if sess.Daily != "" {
		err := s.daily.InsertResult(ctx, dailyResult(owner, sess, snap, at))
		if err != nil {
			log.Warn().Err(err).Str("boardId", sess.ID).Msg("insert daily result")
		}
	}
}

// writeGenerateError maps generation failures to HTTP responses.
func (s *Server) writeGenerateError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, bingo.ErrEmptyCandidateList):
		writeError(w, http.StatusUnprocessableEntity, "empty_candidate_list")
	case errors.Is(err, bingo.ErrInsufficientCandidates):
		writeError(w, http.StatusUnprocessableEntity, "insufficient_candidates")
	default:
		log.Error().Err(err).Msg("create board")
		writeError(w, http.StatusInternalServerError, "create_failed")
	}
}
