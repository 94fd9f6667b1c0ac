package identity

import (
	"sync"
	"testing"

	"github.com/oklog/ulid/v2"
)

func TestULIDGeneratorUniqueUnderBurst(t *testing.T) {
	g := NewULIDGenerator()

	const workers = 8
	const perWorker = 500

	var mu sync.Mutex
	seen := make(map[string]struct{}, workers*perWorker)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids := make([]string, 0, perWorker)
			for i := 0; i < perWorker; i++ {
				ids = append(ids, g.NewID())
			}
			mu.Lock()
			defer mu.Unlock()
			for _, id := range ids {
				if _, dup := seen[id]; dup {
					t.Errorf("duplicate id %s", id)
				}
				seen[id] = struct{}{}
			}
		}()
	}
	wg.Wait()

	if len(seen) != workers*perWorker {
		t.Fatalf("expected %d unique ids, got %d", workers*perWorker, len(seen))
	}
}

func TestULIDGeneratorIsSortable(t *testing.T) {
	g := NewULIDGenerator()
	prev := g.NewID()
	for i := 0; i < 100; i++ {
		next := g.NewID()
		if next <= prev {
			t.Fatalf("expected %s > %s", next, prev)
		}
		if _, err := ulid.ParseStrict(next); err != nil {
			t.Fatalf("not a valid ULID: %v", err)
		}
		prev = next
	}
}

func TestSequence(t *testing.T) {
	s := NewSequence("c")
	if got := s.NewID(); got != "c-1" {
		t.Fatalf("expected c-1, got %s", got)
	}
	if got := s.NewID(); got != "c-2" {
		t.Fatalf("expected c-2, got %s", got)
	}
}
