// apps/go-server/internal/game/daily.go
//
// Daily round seeding. Rounds started with the same date and salt share
// one seed, so everyone playing the daily game sees the same boards and
// the same draw order until midnight UTC.

package game

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// DailySeed returns a deterministic seed for a date using
// HMAC(salt, YYYY-MM-DD). Changing the salt rotates the entire
// schedule without touching any other logic.
func DailySeed(date time.Time, salt string) int64 {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	return int64(binary.BigEndian.Uint64(sum[:8]))
}
