// Package agents reads the per-agent status files that coding agents drop
// into the project, one single-line file per agent:
//
//	agent<TAB>ticket<TAB>updated_ts<TAB>summary<TAB>last_action|ts
//
// Missing trailing fields are treated as empty.
package agents

import (
	"strconv"
	"strings"
	"time"
)

const fieldCount = 5

// Agent is one parsed status file.
type Agent struct {
	Name         string
	Ticket       string
	UpdatedAt    time.Time
	Summary      string
	LastAction   string
	LastActionAt time.Time

	// File is the status file name, unique across all scanned directories.
	File string
}

// ParseLine parses one status line.
func ParseLine(line string) Agent {
	parts := strings.Split(strings.TrimRight(line, "\r\n"), "\t")
	for len(parts) < fieldCount {
		parts = append(parts, "")
	}
	a := Agent{
		Name:    strings.TrimSpace(parts[0]),
		Ticket:  strings.TrimSpace(parts[1]),
		Summary: strings.TrimSpace(parts[3]),
	}
	a.UpdatedAt = parseEpoch(parts[2])
	a.LastAction, a.LastActionAt = splitLastAction(strings.TrimSpace(parts[4]))
	return a
}

// splitLastAction separates "description|epoch". Without a parseable
// timestamp the whole value is the description.
func splitLastAction(raw string) (string, time.Time) {
	i := strings.LastIndexByte(raw, '|')
	if i < 0 {
		return raw, time.Time{}
	}
	ts := parseEpoch(raw[i+1:])
	if ts.IsZero() {
		return raw, time.Time{}
	}
	return raw[:i], ts
}

func parseEpoch(s string) time.Time {
	secs, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || secs <= 0 {
		return time.Time{}
	}
	return time.Unix(secs, 0)
}

// Stale reports whether the agent has not updated within threshold. An
// agent with no timestamp is never stale.
func (a Agent) Stale(now time.Time, threshold time.Duration) bool {
	if a.UpdatedAt.IsZero() {
		return false
	}
	return now.Sub(a.UpdatedAt) > threshold
}

// SinceUpdate returns how long ago the agent last updated.
func (a Agent) SinceUpdate(now time.Time) time.Duration {
	if a.UpdatedAt.IsZero() {
		return 0
	}
	if d := now.Sub(a.UpdatedAt); d > 0 {
		return d
	}
	return 0
}
