package dedup

import (
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"golang.org/x/text/unicode/norm"
)

// Set remembers post texts seen during one scrape. It lives in memory only
// and is not safe for concurrent use; a scrape is a single goroutine.
type Set struct {
	seen mapset.Set[string]
}

func NewSet() *Set {
	return &Set{seen: mapset.NewThreadUnsafeSet[string]()}
}

// Add records text and reports whether it was new.
func (s *Set) Add(text string) bool {
	return s.seen.Add(Key(text))
}

// Unique returns texts with later duplicates removed, keeping encounter order.
func Unique(texts []string) []string {
	set := NewSet()
	out := make([]string, 0, len(texts))
	for _, t := range texts {
		if set.Add(t) {
			out = append(out, t)
		}
	}
	return out
}

// Key is the comparison form of a post: NFC normalized, each line trimmed
// with inner whitespace collapsed, blank lines dropped.
func Key(text string) string {
	text = norm.NFC.String(text)
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
