package wordlist

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"
)

// Set is the accumulating wordlist: a deduplicated set of words shared by
// every crawl task. Adds are commutative and idempotent, so a mutex-guarded
// map insert is all the coordination the extractors need.
type Set struct {
	mu    sync.Mutex
	words map[string]struct{}
}

// NewSet creates an empty word set.
func NewSet() *Set {
	return &Set{words: make(map[string]struct{})}
}

// Add inserts a word. Duplicates collapse silently.
func (s *Set) Add(word string) {
	s.mu.Lock()
	s.words[word] = struct{}{}
	s.mu.Unlock()
}

// Len returns the number of distinct words collected so far.
func (s *Set) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.words)
}

// Sorted returns all words in lexicographic order.
func (s *Set) Sorted() []string {
	s.mu.Lock()
	words := make([]string, 0, len(s.words))
	for w := range s.words {
		words = append(words, w)
	}
	s.mu.Unlock()

	sort.Strings(words)
	return words
}

// WriteTo writes the sorted wordlist, one word per line, to w.
// It implements io.WriterTo.
func (s *Set) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var written int64
	for _, word := range s.Sorted() {
		n, err := fmt.Fprintln(bw, word)
		written += int64(n)
		if err != nil {
			return written, err
		}
	}
	return written, bw.Flush()
}

// WriteFile writes the sorted wordlist to the named file, creating or
// truncating it.
func (s *Set) WriteFile(path string) error {
	f, err := os.Create(path) //nolint:gosec // User-provided output path is intentional
	if err != nil {
		return fmt.Errorf("failed to create wordlist file: %w", err)
	}

	if _, err := s.WriteTo(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write wordlist: %w", err)
	}

	return f.Close()
}
