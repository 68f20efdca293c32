package scheduler

import (
	"errors"
	"sync"
	"time"
	"watchdash/internal/agents"
	"watchdash/internal/provider"
	"watchdash/internal/status"
)

// Payload is what one source produced in one successful fetch.
type Payload struct {
	// Label names the data origin for headers (provider display name, repo).
	Label string
	// Detail is a secondary header line, e.g. the service URL.
	Detail  string
	Records []status.Record
	Agents  []agents.Agent
}

// SourceState is the last known state of one source.
type SourceState struct {
	Payload
	// Err is the error of the most recent attempt, nil after a success.
	Err       error
	UpdatedAt time.Time
	CheckedAt time.Time
	Loaded    bool
}

// Snapshot is an immutable view of every source. Callers must not modify
// the slices or the map it holds.
type Snapshot struct {
	Generation uint64
	Sources    map[string]SourceState
}

// Source returns the state of key, zero if never fetched.
func (s *Snapshot) Source(key string) SourceState {
	if s == nil {
		return SourceState{}
	}
	return s.Sources[key]
}

// Store holds the current snapshot. Readers get a pointer copy; writers
// replace the pointer. Nothing is mutated in place.
type Store struct {
	mu      sync.RWMutex
	current *Snapshot
}

// NewStore returns a store holding an empty snapshot.
func NewStore() *Store {
	return &Store{current: &Snapshot{Sources: map[string]SourceState{}}}
}

// Current returns the most recently completed snapshot.
func (s *Store) Current() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *Store) swap(next *Snapshot) {
	s.mu.Lock()
	s.current = next
	s.mu.Unlock()
}

type sourceResult struct {
	key     string
	payload Payload
	err     error
}

// next derives a new snapshot from prev and one cycle of results. A failed
// source keeps its previous payload, except for configuration errors,
// which drop it since the data no longer belongs to any configuration.
func next(prev *Snapshot, results []sourceResult, now time.Time) *Snapshot {
	sources := make(map[string]SourceState, len(prev.Sources)+len(results))
	for k, v := range prev.Sources {
		sources[k] = v
	}
	for _, r := range results {
		st := sources[r.key]
		st.CheckedAt = now
		switch {
		case r.err == nil:
			st.Payload = r.payload
			st.Err = nil
			st.UpdatedAt = now
			st.Loaded = true
		case provider.IsConfigError(r.err):
			st.Payload = Payload{}
			st.Err = r.err
			st.Loaded = false
		default:
			st.Err = r.err
		}
		sources[r.key] = st
	}
	return &Snapshot{Generation: prev.Generation + 1, Sources: sources}
}

// IsConfigError reports whether the state's error should route the user to
// configuration.
func (s SourceState) IsConfigError() bool {
	return s.Err != nil && provider.IsConfigError(s.Err)
}

// TimedOut reports whether the last attempt hit the plugin deadline.
func (s SourceState) TimedOut() bool {
	return errors.Is(s.Err, provider.ErrPluginTimeout)
}
