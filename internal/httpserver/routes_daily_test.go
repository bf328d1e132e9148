package httpserver

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDaily_SameBoardForEveryone(t *testing.T) {
	alice := newTestClient(t, nil)
	bob := newClientFor(t, alice.srv)

	status, body := alice.do(http.MethodPost, "/daily/new", map[string]string{"mode": "tags"})
	require.Equal(t, http.StatusOK, status, string(body))
	a := decode[dailyNewRes](t, body)
	require.NotNil(t, a.Board)
	assert.False(t, a.Played)

	_, body = bob.do(http.MethodPost, "/daily/new", map[string]string{"mode": "tags"})
	b := decode[dailyNewRes](t, body)
	require.NotNil(t, b.Board)

	assert.NotEqual(t, a.Board.BoardID, b.Board.BoardID)
	assert.Equal(t, a.Board.Tiles, b.Board.Tiles)
	assert.Equal(t, a.Date, a.Board.Daily)

	// Asking again reuses the session.
	_, body = alice.do(http.MethodPost, "/daily/new", map[string]string{"mode": "tags"})
	again := decode[dailyNewRes](t, body)
	require.NotNil(t, again.Board)
	assert.Equal(t, a.Board.BoardID, again.Board.BoardID)
}

func TestDaily_BingoRecordsResult(t *testing.T) {
	c := newTestClient(t, nil)

	_, body := c.do(http.MethodPost, "/daily/new", map[string]string{"mode": "levels"})
	d := decode[dailyNewRes](t, body)
	require.NotNil(t, d.Board)

	var ids []string
	for _, row := range d.Board.Tiles {
		ids = append(ids, row[0].Level.ID)
	}
	status, body := c.do(http.MethodPost, "/boards/"+d.Board.BoardID+"/found", map[string]string{"input": strings.Join(ids, ", ")})
	require.Equal(t, http.StatusOK, status, string(body))
	assert.Equal(t, []string{"Column 1"}, decode[foundRes](t, body).Bingos)

	status, body = c.do(http.MethodGet, "/daily/leaderboard?mode=levels", nil)
	require.Equal(t, http.StatusOK, status)
	lb := decode[lbRes](t, body)
	require.Len(t, lb.Top, 1)
	assert.Equal(t, 1, lb.Top[0].Inputs)

	// One result per player per day.
	_, body = c.do(http.MethodPost, "/daily/new", map[string]string{"mode": "levels"})
	again := decode[dailyNewRes](t, body)
	assert.True(t, again.Played)
	assert.Nil(t, again.Board)

	// Other modes are unaffected.
	_, body = c.do(http.MethodPost, "/daily/new", map[string]string{"mode": "tags"})
	assert.False(t, decode[dailyNewRes](t, body).Played)
}

func TestDaily_LeaderboardBadMode(t *testing.T) {
	c := newTestClient(t, nil)
	status, _ := c.do(http.MethodGet, "/daily/leaderboard?mode=speed", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}
