package lists

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/bingo/internal/bingo"
)

func TestReadLevels(t *testing.T) {
	in := "abc123, race\n\n  def456, short, lasers  \nabc123, race\nzzz\n"
	got, err := ReadLevels(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []string{"abc123, race", "def456, short, lasers", "zzz"}, got)
}

func TestReadLevels_DedupesByID(t *testing.T) {
	in := "abc, race\nabc, puzzle\nABC\nxyz, puzzle\n"
	got, err := ReadLevels(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []string{"abc, race", "xyz, puzzle"}, got)
}

func TestReadWords(t *testing.T) {
	in := strings.Join([]string{
		"jump, 1",
		"dash,2",
		"lava , 3 ",
		"wall jump, 1",
		"blue, green", // not an integer: whole line is the word
		"checkpoint",  // no category
		"jump, 1",     // duplicate
		"",
		"a, b, 7", // split at the last comma only
	}, "\n")

	c, err := ReadWords(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, []string{"a, b", "blue, green", "checkpoint", "dash", "jump", "lava", "wall jump"}, c.Words)
	assert.Equal(t, map[string]int{
		"jump":      1,
		"dash":      2,
		"lava":      3,
		"wall jump": 1,
		"a, b":      7,
	}, c.Categories)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, Level{ID: "x9k2p", Tags: []string{"race", "bombs"}}, ParseLevel("x9k2p, race, bombs"))
	assert.Equal(t, Level{ID: "solo"}, ParseLevel("solo"))
	assert.Equal(t, Level{ID: "trail"}, ParseLevel("trail, "))
}

func TestSuggest(t *testing.T) {
	words := []string{"double jump", "dash", "jump", "Wall Jump", "lava"}

	tests := []struct {
		name  string
		query string
		limit int
		want  []string
	}{
		{"substring", "jum", 0, []string{"double jump", "jump", "Wall Jump"}},
		{"last token only", "lava, DA", 0, []string{"dash"}},
		{"limit", "j", 2, []string{"double jump", "jump"}},
		{"empty query matches all", "", 0, words},
		{"trailing comma", "jump, ", 0, words},
		{"no match", "zzz", 0, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Suggest(words, tt.query, tt.limit))
		})
	}
}

func TestLoad_EmbeddedDefaults(t *testing.T) {
	l, err := Load("", "")
	require.NoError(t, err)

	levels, words := l.Stats()
	assert.GreaterOrEqual(t, levels, bingo.Size*bingo.Size)
	assert.Greater(t, words, 0)
	assert.NotEmpty(t, l.Words.Categories)

	_, err = bingo.Generate(l.Candidates(bingo.ModeLevels), bingo.ModeLevels, 1)
	require.NoError(t, err)
	_, err = bingo.Generate(l.Candidates(bingo.ModeTags), bingo.ModeTags, 1)
	require.NoError(t, err)
}

func TestLoad_Files(t *testing.T) {
	dir := t.TempDir()
	levels := filepath.Join(dir, "levels.txt")
	words := filepath.Join(dir, "words.txt")
	require.NoError(t, os.WriteFile(levels, []byte("one\ntwo\none\n"), 0o644))
	require.NoError(t, os.WriteFile(words, []byte("b, 1\na\n"), 0o644))

	l, err := Load(levels, words)
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, l.Levels)
	assert.Equal(t, []string{"a", "b"}, l.Words.Words)

	_, err = bingo.Generate(l.Candidates(bingo.ModeLevels), bingo.ModeLevels, 1)
	assert.ErrorIs(t, err, bingo.ErrInsufficientCandidates)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.txt"), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
