package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/linkcheck/internal/linkcheck"
)

// Snapshot represents the latest check results available to the UI.
type Snapshot struct {
	Request             linkcheck.CheckRequest
	Results             []linkcheck.LinkResult
	HasResults          bool
	Generation          int // Bumped on every successful Update
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive failed checks
}

// IsOffline returns true when the backend has failed several checks in a row.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Broken counts results that are not working.
func (s Snapshot) Broken() int {
	n := 0
	for _, r := range s.Results {
		if !r.IsWorking {
			n++
		}
	}
	return n
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update replaces the stored result set wholesale. When err is non-nil the
// previous results are kept but the error is recorded for visibility.
func (s *Store) Update(req linkcheck.CheckRequest, results []linkcheck.LinkResult, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.LastUpdated = time.Now()
		s.snapshot.ConsecutiveFailures++
		return
	}

	s.snapshot.Request = req
	s.snapshot.Results = cloneResults(results)
	s.snapshot.HasResults = true
	s.snapshot.Generation++
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Results = cloneResults(s.snapshot.Results)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneResults(items []linkcheck.LinkResult) []linkcheck.LinkResult {
	if len(items) == 0 {
		return nil
	}
	dup := make([]linkcheck.LinkResult, len(items))
	copy(dup, items)
	return dup
}
