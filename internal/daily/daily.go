package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"

	"github.com/robalobadob/bingo/internal/bingo"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Seed returns the board seed for a date and mode using HMAC(salt, "YYYY-MM-DD|mode").
// Everyone playing the same mode on the same day gets the same board.
func Seed(date time.Time, salt string, mode bingo.Mode) bingo.Seed {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date) + "|" + string(mode)))
	sum := h.Sum(nil)
	// first 8 bytes as the seed
	return bingo.Seed(binary.BigEndian.Uint64(sum[:8]))
}
