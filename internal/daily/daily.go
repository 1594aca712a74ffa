// Package daily derives the day's target word from the calendar date and
// records per-player daily results.
package daily

import (
	"time"

	"github.com/robalobadob/crypto-wordle/internal/words"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Hash folds key into a signed 32-bit value with hash = hash*31 + c,
// wrapping on every step.
func Hash(key string) int32 {
	var h int32
	for i := 0; i < len(key); i++ {
		h = h*31 + int32(key[i])
	}
	return h
}

// IndexFor maps a date key onto [0, n). The absolute value is taken in 64 bits
// so math.MinInt32 stays positive.
func IndexFor(key string, n int) int {
	if n <= 0 {
		return 0
	}
	h := int64(Hash(key))
	if h < 0 {
		h = -h
	}
	return int(h % int64(n))
}

// Selector picks the daily word from an injected list.
type Selector struct {
	list *words.List
}

// NewSelector returns a Selector over list.
func NewSelector(list *words.List) *Selector {
	return &Selector{list: list}
}

// Index returns the list position of the word for t's UTC date.
func (s *Selector) Index(t time.Time) int {
	return IndexFor(DateKey(t), s.list.Len())
}

// Word returns the target word for t's UTC date.
func (s *Selector) Word(t time.Time) string {
	return s.list.At(s.Index(t))
}

// Hint returns the hint for the target word of t's UTC date.
func (s *Selector) Hint(t time.Time) string {
	return s.list.Hint(s.Word(t))
}

// List exposes the underlying word list.
func (s *Selector) List() *words.List { return s.list }
