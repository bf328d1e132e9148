// internal/lists/lists.go
//
// Loads the candidate lists that boards are generated from.
//
// Responsibilities:
//   - Read levels (one entry per line, first occurrence of each level id wins).
//   - Read words with an optional trailing ", <int>" category.
//   - Fall back to the embedded defaults in assets when no file is configured.
//
// Environment variables (via config.Config):
//   LEVELS_FILE=/path/to/levels.txt
//   WORDS_FILE=/path/to/words.txt
//
// Lists are loaded once at startup and never mutated afterwards.

package lists

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/cases"

	"github.com/robalobadob/bingo/assets"
	"github.com/robalobadob/bingo/internal/bingo"
)

// Lists bundles the loaded levels and words.
type Lists struct {
	Levels []string
	Words  bingo.Candidates
}

// Candidates returns the pool for mode.
func (l *Lists) Candidates(mode bingo.Mode) bingo.Candidates {
	if mode == bingo.ModeLevels {
		return bingo.Candidates{Words: l.Levels}
	}
	return l.Words
}

// Stats returns counts of loaded entries: (levels, words).
func (l *Lists) Stats() (levels int, words int) {
	return len(l.Levels), len(l.Words.Words)
}

// Load reads both lists from the given paths, using the embedded defaults for
// any path left empty.
func Load(levelsPath, wordsPath string) (*Lists, error) {
	lr, err := open(levelsPath, assets.LevelsFile)
	if err != nil {
		return nil, err
	}
	defer lr.Close()
	levels, err := ReadLevels(lr)
	if err != nil {
		return nil, fmt.Errorf("read levels: %w", err)
	}

	wr, err := open(wordsPath, assets.WordsFile)
	if err != nil {
		return nil, err
	}
	defer wr.Close()
	words, err := ReadWords(wr)
	if err != nil {
		return nil, fmt.Errorf("read words: %w", err)
	}
	return &Lists{Levels: levels, Words: words}, nil
}

func open(path, fallback string) (io.ReadCloser, error) {
	if path == "" {
		return assets.Open(fallback)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}

// ReadLevels returns the non-blank trimmed lines of r. Players mark levels by
// id, so lines are deduplicated by case-folded level id in first-occurrence
// order.
func ReadLevels(r io.Reader) ([]string, error) {
	var out []string
	fold := cases.Fold()
	seen := make(map[string]struct{})
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		id := fold.String(ParseLevel(line).ID)
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, line)
	}
	return out, sc.Err()
}

// ReadWords parses "word" or "word, <category>" lines. A suffix that is not an
// integer is not a category; the whole line is kept as the word. The result
// is sorted and deduplicated.
func ReadWords(r io.Reader) (bingo.Candidates, error) {
	c := bingo.Candidates{Categories: make(map[string]int)}
	set := make(map[string]struct{})
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		word, cat, ok := splitCategory(line)
		if ok {
			c.Categories[word] = cat
		}
		set[word] = struct{}{}
	}
	if err := sc.Err(); err != nil {
		return bingo.Candidates{}, err
	}
	c.Words = make([]string, 0, len(set))
	for w := range set {
		c.Words = append(c.Words, w)
	}
	sort.Strings(c.Words)
	return c, nil
}

// splitCategory splits at the last comma when the tail is an integer.
func splitCategory(line string) (word string, cat int, ok bool) {
	i := strings.LastIndexByte(line, ',')
	if i < 0 {
		return line, 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(line[i+1:]))
	if err != nil {
		return line, 0, false
	}
	return strings.TrimSpace(line[:i]), n, true
}

// Level is a levels-mode entry split for display.
type Level struct {
	ID   string   `json:"id"`
	Tags []string `json:"tags,omitempty"`
}

// ParseLevel splits "levelId, tag, tag" into its parts.
func ParseLevel(line string) Level {
	parts := strings.Split(line, ",")
	lv := Level{ID: strings.TrimSpace(parts[0])}
	for _, p := range parts[1:] {
		if p = strings.TrimSpace(p); p != "" {
			lv.Tags = append(lv.Tags, p)
		}
	}
	return lv
}

// Suggest returns up to limit words containing the last comma-separated token
// of query, case-insensitively. A limit <= 0 means no limit.
func Suggest(words []string, query string, limit int) []string {
	if i := strings.LastIndexByte(query, ','); i >= 0 {
		query = query[i+1:]
	}
	query = strings.ToLower(strings.TrimSpace(query))

	out := []string{}
	for _, w := range words {
		if strings.Contains(strings.ToLower(w), query) {
			out = append(out, w)
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out
}
