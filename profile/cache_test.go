package profile

import (
	"sync"
	"testing"
)

func TestCacheSharesInfo(t *testing.T) {
	s1, err := NewSpergel(0.77, 1, ScaleRadius, 1, nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	s2, err := NewSpergel(0.77, 5, ScaleRadius, -3, nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if s1.info != s2.info {
		t.Fatalf("Same (nu, params) did not share an info struct.")
	}

	// Work memoized through one instance is immediately visible through
	// the other.
	_ = s1.StepK()
	s2.info.mu.Lock()
	stepk := s2.info.stepk
	s2.info.mu.Unlock()
	if stepk == 0 {
		t.Errorf("stepK memoized via s1 is not visible via s2.")
	}
}

func TestCacheDistinctParams(t *testing.T) {
	params := *DefaultGSParams
	s1, err := NewSpergel(0.77, 1, ScaleRadius, 1, nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	s2, err := NewSpergel(0.77, 1, ScaleRadius, 1, &params)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if s1.info == s2.info {
		t.Errorf("Structurally equal but distinct params shared a key.")
	}
}

func TestCacheEviction(t *testing.T) {
	params := *DefaultGSParams
	params.MaxSpergelCache = 3

	nus := []float64{0.31, 0.32, 0.33, 0.34}
	infos := make([]*spergelInfo, len(nus))
	for i, nu := range nus {
		s, err := NewSpergel(nu, 1, ScaleRadius, 1, &params)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		infos[i] = s.info
	}

	if n := spergelCache.len(); n > 3 {
		t.Errorf("Cache holds %d entries past capacity 3.", n)
	}

	// nus[0] was least recently used and must have been evicted: a new
	// request builds a fresh entry with its own identity. The old info
	// is still alive and valid through infos[0].
	s, err := NewSpergel(nus[0], 1, ScaleRadius, 1, &params)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if s.info == infos[0] {
		t.Errorf("Expected a fresh info after eviction.")
	}

	// nus[2] and nus[3] were touched most recently and must still be
	// cached.
	s3, err := NewSpergel(nus[3], 1, ScaleRadius, 1, &params)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if s3.info != infos[3] {
		t.Errorf("Recently used entry was evicted.")
	}
}

func TestCacheConcurrentGet(t *testing.T) {
	params := *DefaultGSParams
	results := make([]*spergelInfo, 32)

	var wg sync.WaitGroup
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s, err := NewSpergel(1.23, 1, ScaleRadius, 1, &params)
			if err != nil {
				t.Errorf("Unexpected error: %v", err)
				return
			}
			results[i] = s.info
		}(i)
	}
	wg.Wait()

	for i := 1; i < len(results); i++ {
		if results[i] != results[0] {
			t.Fatalf("Concurrent gets built %d distinct infos.", i)
		}
	}
}
