// Package status holds the canonical status model every source is
// normalised into, and the per-provider tables that translate raw provider
// vocabularies onto it.
package status

import "strings"

// Status is the canonical state of one phase (build or deploy) of a record.
type Status int

const (
	Unknown Status = iota
	Pending
	Building
	Deploying
	Live
	Failed
	Cancelled
)

var statusNames = map[Status]string{
	Unknown:   "unknown",
	Pending:   "pending",
	Building:  "building",
	Deploying: "deploying",
	Live:      "live",
	Failed:    "failed",
	Cancelled: "cancelled",
}

// All lists every canonical status in declaration order.
var All = []Status{Unknown, Pending, Building, Deploying, Live, Failed, Cancelled}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// Valid reports whether s is one of the declared canonical values.
func (s Status) Valid() bool {
	_, ok := statusNames[s]
	return ok
}

// Active reports whether work in this phase is still in progress.
func (s Status) Active() bool {
	return s == Pending || s == Building || s == Deploying
}

// Terminal reports whether the phase has finished, successfully or not.
func (s Status) Terminal() bool {
	return s == Live || s == Failed || s == Cancelled
}

// Parse converts a canonical name back into a Status. "success" is accepted
// as an alias of live since finished builds are reported that way. Anything
// else is Unknown.
func Parse(raw string) Status {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "pending", "queued":
		return Pending
	case "building":
		return Building
	case "deploying":
		return Deploying
	case "live", "success":
		return Live
	case "failed":
		return Failed
	case "cancelled", "canceled":
		return Cancelled
	default:
		return Unknown
	}
}

// Pair is the (build, deploy) projection of a single raw provider code. The
// two halves are always resolved together.
type Pair struct {
	Build  Status
	Deploy Status
}

// UnknownPair is returned for raw codes no table knows about.
var UnknownPair = Pair{Build: Unknown, Deploy: Unknown}
