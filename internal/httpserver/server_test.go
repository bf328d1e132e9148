package httpserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/bingo/internal/bingo"
	"github.com/robalobadob/bingo/internal/config"
	"github.com/robalobadob/bingo/internal/database"
	"github.com/robalobadob/bingo/internal/lists"
	"github.com/robalobadob/bingo/internal/store"
	"github.com/robalobadob/bingo/migrations"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	os.Exit(m.Run())
}

type testClient struct {
	t   *testing.T
	srv *httptest.Server
	hc  *http.Client
}

func newTestClient(t *testing.T, l *lists.Lists) *testClient {
	t.Helper()
	if l == nil {
		var err error
		l, err = lists.Load("", "")
		require.NoError(t, err)
	}
	db, err := database.Open(filepath.Join(t.TempDir(), "app.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.Migrate(db, migrations.FS))

	s := New(config.Default(), l, store.NewMemoryStore(), db)
	srv := httptest.NewServer(s.Router())
	t.Cleanup(srv.Close)
	return newClientFor(t, srv)
}

// newClientFor returns a second player with its own cookie jar.
func newClientFor(t *testing.T, srv *httptest.Server) *testClient {
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &testClient{t: t, srv: srv, hc: &http.Client{Jar: jar}}
}

func (c *testClient) do(method, path string, body any) (int, []byte) {
	c.t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(c.t, err)
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, c.srv.URL+path, rd)
	require.NoError(c.t, err)
	res, err := c.hc.Do(req)
	require.NoError(c.t, err)
	defer res.Body.Close()
	out, err := io.ReadAll(res.Body)
	require.NoError(c.t, err)
	return res.StatusCode, out
}

func decode[T any](t *testing.T, b []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(b, &v), string(b))
	return v
}

func (c *testClient) newBoard(mode, seed string) boardView {
	c.t.Helper()
	status, body := c.do(http.MethodPost, "/boards", map[string]string{"mode": mode, "seed": seed})
	require.Equal(c.t, http.StatusOK, status, string(body))
	return decode[boardView](c.t, body)
}

func allWords(v boardView) []string {
	var out []string
	for _, row := range v.Tiles {
		for _, t := range row {
			out = append(out, t.Words...)
		}
	}
	return out
}

func TestHealthAndLists(t *testing.T) {
	c := newTestClient(t, nil)

	status, body := c.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"ok":true}`, string(body))

	status, body = c.do(http.MethodGet, "/lists", nil)
	require.Equal(t, http.StatusOK, status)
	counts := decode[map[string]int](t, body)
	assert.Greater(t, counts["levels"], 0)
	assert.Greater(t, counts["words"], 0)

	status, _ = c.do(http.MethodGet, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestBoards_SameSeedSameBoard(t *testing.T) {
	c := newTestClient(t, nil)
	a := c.newBoard("tags", "race night")
	b := c.newBoard("tags", "race night")

	assert.NotEqual(t, a.BoardID, b.BoardID)
	assert.Equal(t, a.Tiles, b.Tiles)
	assert.Equal(t, "race night", a.Seed)
	assert.Empty(t, a.Bingos)
	require.Len(t, a.Tiles, bingo.Size)
	for _, row := range a.Tiles {
		require.Len(t, row, bingo.Size)
	}
	assert.Equal(t, "A1", a.Tiles[0][0].Coord)
	assert.Equal(t, "E5", a.Tiles[4][4].Coord)
}

func TestBoards_RandomSeedWhenEmpty(t *testing.T) {
	c := newTestClient(t, nil)
	v := c.newBoard("", "")
	assert.Equal(t, bingo.ModeTags, v.Mode)
	assert.NotEmpty(t, v.Seed)
}

func TestBoards_FoundAllWordsCompletesEveryLine(t *testing.T) {
	c := newTestClient(t, nil)
	v := c.newBoard("tags", "42")

	// Upper-case input is folded before matching.
	input := strings.ToUpper(strings.Join(allWords(v), ", "))
	status, body := c.do(http.MethodPost, "/boards/"+v.BoardID+"/found", map[string]string{"input": input})
	require.Equal(t, http.StatusOK, status, string(body))

	res := decode[foundRes](t, body)
	assert.Len(t, res.NewlyMarked, bingo.Size*bingo.Size)
	assert.Equal(t, []string{
		"Row A", "Row B", "Row C", "Row D", "Row E",
		"Column 1", "Column 2", "Column 3", "Column 4", "Column 5",
		bingo.DiagonalMain, bingo.DiagonalAnti,
	}, res.Bingos)

	// Resubmitting adds nothing new.
	status, body = c.do(http.MethodPost, "/boards/"+v.BoardID+"/found", map[string]string{"input": input})
	require.Equal(t, http.StatusOK, status)
	res = decode[foundRes](t, body)
	assert.Empty(t, res.Added)
	assert.Empty(t, res.NewlyMarked)
	assert.Len(t, res.Bingos, 12)
}

func TestBoards_LevelsRowByID(t *testing.T) {
	c := newTestClient(t, nil)
	v := c.newBoard("levels", "7")

	var ids []string
	for _, tile := range v.Tiles[0] {
		require.NotNil(t, tile.Level)
		require.Len(t, tile.Words, 1)
		ids = append(ids, tile.Level.ID)
	}
	status, body := c.do(http.MethodPost, "/boards/"+v.BoardID+"/found", map[string]string{"input": strings.Join(ids, ",")})
	require.Equal(t, http.StatusOK, status, string(body))

	res := decode[foundRes](t, body)
	assert.Equal(t, []string{"Row A"}, res.Bingos)
	assert.Equal(t, []string{"A1", "A2", "A3", "A4", "A5"}, res.NewlyMarked)

	status, body = c.do(http.MethodGet, "/boards/"+v.BoardID, nil)
	require.Equal(t, http.StatusOK, status)
	got := decode[boardView](t, body)
	assert.True(t, got.Tiles[0][4].Marked)
	assert.False(t, got.Tiles[1][0].Marked)
}

func TestBoards_Errors(t *testing.T) {
	small := &lists.Lists{
		Levels: []string{"a", "b", "c"},
		Words:  bingo.Candidates{},
	}
	c := newTestClient(t, small)

	status, body := c.do(http.MethodPost, "/boards", map[string]string{"mode": "levels", "seed": "1"})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "insufficient_candidates", decode[map[string]string](t, body)["error"])

	status, body = c.do(http.MethodPost, "/boards", map[string]string{"mode": "tags", "seed": "1"})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "empty_candidate_list", decode[map[string]string](t, body)["error"])

	status, _ = c.do(http.MethodPost, "/boards", map[string]string{"mode": "speed"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = c.do(http.MethodGet, "/boards/unknown", nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = c.do(http.MethodPost, "/boards/unknown/found", map[string]string{"input": "x"})
	assert.Equal(t, http.StatusNotFound, status)
}

func TestBoards_CycleTile(t *testing.T) {
	c := newTestClient(t, nil)
	v := c.newBoard("tags", "3")
	path := "/boards/" + v.BoardID + "/tiles/c4/cycle"

	for _, want := range []string{"flag1", "flag2", "unmarked"} {
		status, body := c.do(http.MethodPost, path, nil)
		require.Equal(t, http.StatusOK, status)
		got := decode[map[string]string](t, body)
		assert.Equal(t, "C4", got["coord"])
		assert.Equal(t, want, got["state"])
	}

	c.do(http.MethodPost, path, nil)
	_, body := c.do(http.MethodGet, "/boards/"+v.BoardID, nil)
	var raw struct {
		Tiles [][]struct {
			State  string `json:"state"`
			Marked bool   `json:"marked"`
		} `json:"tiles"`
	}
	require.NoError(t, json.Unmarshal(body, &raw))
	assert.Equal(t, "flag1", raw.Tiles[2][3].State)
	assert.False(t, raw.Tiles[2][3].Marked, "highlights never mark a tile")

	status, _ := c.do(http.MethodPost, "/boards/"+v.BoardID+"/tiles/Z9/cycle", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestBoards_LevelIDsAreDistinctCells(t *testing.T) {
	lines := []string{"abc, race", "abc, puzzle"}
	for i := 0; i < 23; i++ {
		lines = append(lines, fmt.Sprintf("id%02d, race", i))
	}
	levels, err := lists.ReadLevels(strings.NewReader(strings.Join(lines, "\n")))
	require.NoError(t, err)

	// 24 distinct ids cannot fill a board.
	c := newTestClient(t, &lists.Lists{Levels: levels})
	status, body := c.do(http.MethodPost, "/boards", map[string]string{"mode": "levels", "seed": "1"})
	assert.Equal(t, http.StatusUnprocessableEntity, status, string(body))

	levels = append(levels, "id23, race")
	c = newTestClient(t, &lists.Lists{Levels: levels})
	v := c.newBoard("levels", "1")
	status, body = c.do(http.MethodPost, "/boards/"+v.BoardID+"/found", map[string]string{"input": "ABC"})
	require.Equal(t, http.StatusOK, status, string(body))
	assert.Len(t, decode[foundRes](t, body).NewlyMarked, 1)
}

func TestBoards_OnlyOwnerMutates(t *testing.T) {
	alice := newTestClient(t, nil)
	bob := newClientFor(t, alice.srv)
	v := alice.newBoard("tags", "11")

	status, _ := bob.do(http.MethodGet, "/boards/"+v.BoardID, nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = bob.do(http.MethodPost, "/boards/"+v.BoardID+"/found", map[string]string{"input": strings.Join(allWords(v), ",")})
	assert.Equal(t, http.StatusForbidden, status)
	status, _ = bob.do(http.MethodPost, "/boards/"+v.BoardID+"/tiles/A1/cycle", nil)
	assert.Equal(t, http.StatusForbidden, status)

	_, body := alice.do(http.MethodGet, "/boards/"+v.BoardID, nil)
	got := decode[boardView](t, body)
	assert.Empty(t, got.Found)
	assert.Equal(t, bingo.Unmarked, got.Tiles[0][0].State)
}

func TestBoards_Suggest(t *testing.T) {
	l := &lists.Lists{
		Levels: []string{"abc, race"},
		Words:  bingo.Candidates{Words: []string{"double jump", "jump", "lava"}},
	}
	c := newTestClient(t, l)
	v := c.newBoard("tags", "1")

	status, body := c.do(http.MethodGet, "/boards/"+v.BoardID+"/suggest?q=lava,+JU", nil)
	require.Equal(t, http.StatusOK, status)
	got := decode[map[string][]string](t, body)
	assert.Equal(t, []string{"double jump", "jump"}, got["suggestions"])

	_, body = c.do(http.MethodGet, "/boards/"+v.BoardID+"/suggest?q=u&limit=1", nil)
	assert.Equal(t, []string{"double jump"}, decode[map[string][]string](t, body)["suggestions"])
}

func TestParseInput(t *testing.T) {
	assert.Equal(t, []string{"jump", "wall jump", "lava"}, parseInput(" Jump,WALL Jump , ,lava,"))
	assert.Empty(t, parseInput(" , "))
}
