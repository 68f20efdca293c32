package status

import (
	"fmt"
	"time"
)

// Record is one observed unit of work: a deploy or a CI run. Records are
// values; a refresh produces a new slice rather than editing old entries.
type Record struct {
	ID          string
	Title       string
	Author      string
	Ref         string
	Build       Status
	Deploy      Status
	StartedAt   time.Time
	FinishedAt  time.Time
	URL         string
	Environment string

	// RawStatus and RawDetail keep the provider's own vocabulary for display
	// (e.g. the Actions "status" and "conclusion" columns).
	RawStatus string
	RawDetail string
}

// NewRecord validates r and returns it. A finish time before the start time
// is rejected.
func NewRecord(r Record) (Record, error) {
	if !r.Build.Valid() || !r.Deploy.Valid() {
		return Record{}, fmt.Errorf("record %q: invalid status pair (%d, %d)", r.ID, r.Build, r.Deploy)
	}
	if !r.StartedAt.IsZero() && !r.FinishedAt.IsZero() && r.FinishedAt.Before(r.StartedAt) {
		return Record{}, fmt.Errorf("record %q: finished_at %s is before started_at %s",
			r.ID, r.FinishedAt.Format(time.RFC3339), r.StartedAt.Format(time.RFC3339))
	}
	return r, nil
}

// Active reports whether either phase is still in progress.
func (r Record) Active() bool {
	return r.Build.Active() || r.Deploy.Active()
}

// Overall returns the status that best summarises the record: the deploy
// phase once it has started, the build phase otherwise.
func (r Record) Overall() Status {
	if r.Build == Failed || r.Build == Cancelled {
		return r.Build
	}
	if r.Deploy != Pending && r.Deploy != Unknown {
		return r.Deploy
	}
	return r.Build
}

// Elapsed returns the duration of the record relative to now. Running
// records measure from start to now.
func (r Record) Elapsed(now time.Time) (time.Duration, bool) {
	if r.StartedAt.IsZero() {
		return 0, false
	}
	end := r.FinishedAt
	if end.IsZero() {
		end = now
	}
	d := end.Sub(r.StartedAt)
	if d < 0 {
		d = 0
	}
	return d, true
}
