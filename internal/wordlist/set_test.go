package wordlist

import (
	"os"
	"reflect"
	"strings"
	"sync"
	"testing"
)

// TestSet tests the shared word set.
func TestSet(t *testing.T) {
	t.Parallel()

	t.Run("duplicates collapse", func(t *testing.T) {
		t.Parallel()

		s := NewSet()
		s.Add("word")
		s.Add("word")
		s.Add("other")

		if s.Len() != 2 {
			t.Errorf("expected 2 words, got %d", s.Len())
		}
	})

	t.Run("sorted returns lexicographic order", func(t *testing.T) {
		t.Parallel()

		s := NewSet()
		for _, w := range []string{"zebra", "apple", "mango"} {
			s.Add(w)
		}

		want := []string{"apple", "mango", "zebra"}
		if got := s.Sorted(); !reflect.DeepEqual(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("concurrent adds are safe", func(t *testing.T) {
		t.Parallel()

		s := NewSet()
		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for _, w := range []string{"alpha", "beta", "gamma"} {
					s.Add(w)
				}
			}()
		}
		wg.Wait()

		if s.Len() != 3 {
			t.Errorf("expected 3 words, got %d", s.Len())
		}
	})

	t.Run("WriteTo emits one word per line, sorted", func(t *testing.T) {
		t.Parallel()

		s := NewSet()
		s.Add("bravo")
		s.Add("alpha")

		var b strings.Builder
		n, err := s.WriteTo(&b)
		if err != nil {
			t.Fatalf("WriteTo failed: %v", err)
		}

		want := "alpha\nbravo\n"
		if b.String() != want {
			t.Errorf("expected %q, got %q", want, b.String())
		}
		if n != int64(len(want)) {
			t.Errorf("expected %d bytes written, got %d", len(want), n)
		}
	})

	t.Run("WriteFile round-trips", func(t *testing.T) {
		t.Parallel()

		s := NewSet()
		s.Add("secret")

		path := t.TempDir() + "/wordlist.txt"
		if err := s.WriteFile(path); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}

		data, err := readFile(path)
		if err != nil {
			t.Fatalf("failed to read wordlist: %v", err)
		}
		if data != "secret\n" {
			t.Errorf("expected %q, got %q", "secret\n", data)
		}
	})
}

func readFile(path string) (string, error) {
	data, err := os.ReadFile(path) //nolint:gosec
	return string(data), err
}
