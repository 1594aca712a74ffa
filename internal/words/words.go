// internal/words/words.go
//
// Word list management for the daily game.
//
// Responsibilities:
//   - Load the ordered answer list and its hint table, either from the embedded
//     assets or from a file named by WORDS_FILE.
//   - Normalise entries (upper case, exactly 5 letters A–Z) and drop duplicates
//     while keeping the first occurrence, so daily indexes stay stable.
//   - Answer hint lookups with a generic fallback.
//
// File format (WORDS_FILE):
//   WORD
//   WORD|hint text
// Blank lines and lines starting with '#' are ignored.
//
// A *List is immutable after construction and safe for concurrent reads.

package words

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/samber/lo"

	"github.com/robalobadob/crypto-wordle/assets"
)

// Length is the number of letters in every answer.
const Length = 5

// FallbackHint is returned for words without an entry in the hint table.
const FallbackHint = "A common English word"

// ErrEmpty is returned when a list ends up with no usable answers.
var ErrEmpty = errors.New("words: answers list is empty")

// List is an ordered, de-duplicated answer list with hints.
type List struct {
	answers []string
	index   map[string]int
	hints   map[string]string
}

// New builds a List from raw answers and a word→hint table.
// Invalid entries are skipped; hints for unknown words are ignored.
func New(answers []string, hints map[string]string) (*List, error) {
	clean := lo.Uniq(lo.FilterMap(answers, func(w string, _ int) (string, bool) {
		w = Normalize(w)
		return w, IsWord(w)
	}))
	if len(clean) == 0 {
		return nil, ErrEmpty
	}

	l := &List{
		answers: clean,
		index:   make(map[string]int, len(clean)),
		hints:   make(map[string]string, len(hints)),
	}
	for i, w := range clean {
		l.index[w] = i
	}
	for w, h := range hints {
		w = Normalize(w)
		if _, ok := l.index[w]; ok && strings.TrimSpace(h) != "" {
			l.hints[w] = strings.TrimSpace(h)
		}
	}
	return l, nil
}

// Default returns the list embedded in the binary.
func Default() (*List, error) {
	ans, err := assets.AnswersList()
	if err != nil {
		return nil, fmt.Errorf("read embedded answers: %w", err)
	}
	lines, err := assets.HintLines()
	if err != nil {
		return nil, fmt.Errorf("read embedded hints: %w", err)
	}
	_, hints := parseLines(lines)
	return New(ans, hints)
}

// Load reads a list from path, or returns Default when path is empty.
func Load(path string) (*List, error) {
	if path == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		lines = append(lines, s)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	ans, hints := parseLines(lines)
	return New(ans, hints)
}

// parseLines splits "WORD|hint" lines into the answer order and hint table.
func parseLines(lines []string) ([]string, map[string]string) {
	ans := make([]string, 0, len(lines))
	hints := make(map[string]string, len(lines))
	for _, line := range lines {
		word, hint, _ := strings.Cut(line, "|")
		word = Normalize(word)
		ans = append(ans, word)
		if hint != "" {
			hints[word] = hint
		}
	}
	return ans, hints
}

// Len returns the number of answers.
func (l *List) Len() int { return len(l.answers) }

// At returns the answer at index i.
func (l *List) At(i int) string { return l.answers[i] }

// Answers returns a copy of the ordered answers.
func (l *List) Answers() []string { return append([]string(nil), l.answers...) }

// Contains reports whether w is an answer.
func (l *List) Contains(w string) bool {
	_, ok := l.index[Normalize(w)]
	return ok
}

// IndexOf returns the position of w in the list.
func (l *List) IndexOf(w string) (int, bool) {
	i, ok := l.index[Normalize(w)]
	return i, ok
}

// Hint returns the hint for w, or FallbackHint.
func (l *List) Hint(w string) string {
	if h, ok := l.hints[Normalize(w)]; ok {
		return h
	}
	return FallbackHint
}

// Normalize trims and upper-cases w.
func Normalize(w string) string {
	return strings.ToUpper(strings.TrimSpace(w))
}

// IsWord reports whether w is exactly Length upper-case ASCII letters.
func IsWord(w string) bool {
	if len(w) != Length {
		return false
	}
	for i := 0; i < len(w); i++ {
		if w[i] < 'A' || w[i] > 'Z' {
			return false
		}
	}
	return true
}
