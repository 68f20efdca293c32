// Package scheduler decides when sources are fetched. It runs one fetch
// cycle at a time on a worker goroutine, driven by a ticker, explicit
// requests and an optional change-notification channel, and publishes each
// completed cycle as a new Snapshot.
package scheduler

import (
	"context"
	"sync/atomic"
	"time"
	"watchdash/pkg/logging"
)

const subsystem = "Scheduler"

// DefaultInterval is the polling period used when none is configured.
const DefaultInterval = 30 * time.Second

// State of the scheduler.
type State int32

const (
	StateIdle State = iota
	StateFetching
)

func (s State) String() string {
	if s == StateFetching {
		return "fetching"
	}
	return "idle"
}

// Trigger is the reason a cycle was requested.
type Trigger int

const (
	TriggerStartup Trigger = iota
	TriggerTimer
	TriggerManual
	TriggerChange
)

func (t Trigger) String() string {
	switch t {
	case TriggerStartup:
		return "startup"
	case TriggerTimer:
		return "timer"
	case TriggerManual:
		return "manual"
	case TriggerChange:
		return "change"
	default:
		return "unknown"
	}
}

// Source is anything the scheduler can fetch.
type Source interface {
	Key() string
	Fetch(ctx context.Context) (Payload, error)
}

// Update is published whenever the state changes or a cycle completes.
type Update struct {
	State    State
	Trigger  Trigger
	Snapshot *Snapshot
}

// Options configures a Scheduler.
type Options struct {
	Interval time.Duration
	// Changes delivers edge-triggered external change events. May be nil.
	Changes <-chan struct{}
	Log     *logging.Logger
	Now     func() time.Time
}

// Scheduler owns the fetch lifecycle. Create with New, start with Run.
type Scheduler struct {
	store   *Store
	sources []Source
	opts    Options

	requests chan Trigger
	results  chan []sourceResult
	updates  chan Update

	state    atomic.Int32
	inFlight atomic.Int32
	cycles   atomic.Int64
}

// New builds a scheduler over sources, writing into store.
func New(store *Store, sources []Source, opts Options) *Scheduler {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Scheduler{
		store:    store,
		sources:  sources,
		opts:     opts,
		requests: make(chan Trigger, 1),
		results:  make(chan []sourceResult, 1),
		updates:  make(chan Update, 1),
	}
}

// Store returns the store the scheduler writes to.
func (s *Scheduler) Store() *Store { return s.store }

// Updates delivers state changes. Only the latest unread update is kept.
func (s *Scheduler) Updates() <-chan Update { return s.updates }

// State returns the current state.
func (s *Scheduler) State() State { return State(s.state.Load()) }

// Cycles returns the number of fetch cycles started so far.
func (s *Scheduler) Cycles() int64 { return s.cycles.Load() }

// Request asks for a fetch. It never blocks. Requests made while a fetch
// is running, or while another request is pending, are dropped.
func (s *Scheduler) Request(t Trigger) {
	select {
	case s.requests <- t:
	default:
		s.opts.Log.Debug(subsystem, "%s request coalesced with a pending one", t)
	}
}

// Run drives the scheduler until ctx is done. A cycle still running at that
// point is abandoned and its result discarded.
func (s *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.opts.Interval)
	defer ticker.Stop()

	s.start(ctx, TriggerStartup, ticker)
	for {
		select {
		case <-ctx.Done():
			s.opts.Log.Debug(subsystem, "stopping, state %s", s.State())
			return ctx.Err()
		case <-ticker.C:
			s.start(ctx, TriggerTimer, ticker)
		case t := <-s.requests:
			s.start(ctx, t, ticker)
		case _, ok := <-s.opts.Changes:
			if !ok {
				s.opts.Changes = nil
				continue
			}
			s.start(ctx, TriggerChange, ticker)
		case res := <-s.results:
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.finish(res)
		}
	}
}

// start begins a cycle unless one is running. Only the Run goroutine calls
// it, so the state check cannot race with another start.
func (s *Scheduler) start(ctx context.Context, t Trigger, ticker *time.Ticker) {
	if s.State() == StateFetching {
		s.opts.Log.Debug(subsystem, "%s trigger ignored, fetch in flight", t)
		return
	}
	s.state.Store(int32(StateFetching))
	s.cycles.Add(1)
	ticker.Reset(s.opts.Interval)
	s.opts.Log.Debug(subsystem, "fetch started by %s", t)
	s.publish(Update{State: StateFetching, Trigger: t, Snapshot: s.store.Current()})

	go s.work(ctx, t)
}

func (s *Scheduler) work(ctx context.Context, t Trigger) {
	s.inFlight.Add(1)
	defer s.inFlight.Add(-1)

	results := make([]sourceResult, 0, len(s.sources))
	for _, src := range s.sources {
		if ctx.Err() != nil {
			return
		}
		payload, err := src.Fetch(ctx)
		if err != nil && ctx.Err() == nil {
			s.opts.Log.Warn(subsystem, "%s fetch failed (%s): %v", src.Key(), t, err)
		}
		results = append(results, sourceResult{key: src.Key(), payload: payload, err: err})
	}

	if ctx.Err() != nil {
		return
	}
	select {
	case s.results <- results:
	case <-ctx.Done():
	}
}

func (s *Scheduler) finish(results []sourceResult) {
	snap := next(s.store.Current(), results, s.opts.Now())
	s.store.swap(snap)
	s.state.Store(int32(StateIdle))
	s.opts.Log.Debug(subsystem, "fetch finished, generation %d", snap.Generation)
	s.publish(Update{State: StateIdle, Snapshot: snap})
}

// publish replaces any unread update with u. Only the Run goroutine
// publishes, so the loop terminates.
func (s *Scheduler) publish(u Update) {
	for {
		select {
		case s.updates <- u:
			return
		default:
		}
		select {
		case <-s.updates:
		default:
		}
	}
}
