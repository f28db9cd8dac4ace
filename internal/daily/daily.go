// internal/daily/daily.go
//
// Deterministic "word of the day" selection. Everyone who starts a daily game
// on the same UTC date and tier gets the same word; the salt keeps the
// sequence unpredictable from the word list alone.

package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"

	"github.com/robalobadob/hangman/apps/go-server/internal/words"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WordIndex returns a deterministic index using HMAC(salt, YYYY-MM-DD|tier) % n.
func WordIndex(date time.Time, salt string, d words.Difficulty, n int) int {
	if n <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	h.Write([]byte{'|'})
	h.Write([]byte(d.String()))
	sum := h.Sum(nil)
	// first 8 bytes as uint64 for modulus distribution
	v := binary.BigEndian.Uint64(sum[:8])
	return int(v % uint64(n))
}

// Picker returns a words.Picker that always selects the daily word for d.
func Picker(date time.Time, salt string, d words.Difficulty) words.Picker {
	return func(n int) int { return WordIndex(date, salt, d, n) }
}
