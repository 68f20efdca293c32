package provider

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
	"watchdash/internal/status"
)

// maxLineSize bounds one list line; longer lines are reported as malformed.
const maxLineSize = 1 << 20

// wireRecord is the lenient on-the-wire shape of one list line. Plugins may
// use either name of each aliased pair.
type wireRecord struct {
	Commit string `json:"commit"`
	ID     string `json:"id"`

	Message string `json:"message"`
	Title   string `json:"title"`

	Author string `json:"author"`
	Tag    string `json:"tag"`
	Branch string `json:"branch"`

	Status string `json:"status"`
	Phase  string `json:"phase"`

	BuildStatus  string `json:"build_status"`
	DeployStatus string `json:"deploy_status"`

	BuildStarted   flexTime `json:"build_started"`
	StartedAt      flexTime `json:"started_at"`
	DeployFinished flexTime `json:"deploy_finished"`
	FinishedAt     flexTime `json:"finished_at"`

	ServiceURL  string `json:"service_url"`
	URL         string `json:"url"`
	Environment string `json:"environment"`
}

// flexTime accepts epoch seconds as a number or string, RFC 3339 strings,
// and null or "" for absent.
type flexTime struct{ time.Time }

func (f *flexTime) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" || s == `""` {
		return nil
	}
	if unq, err := strconv.Unquote(s); err == nil {
		s = strings.TrimSpace(unq)
	}
	if s == "" {
		return nil
	}
	if secs, err := strconv.ParseFloat(s, 64); err == nil {
		whole := int64(secs)
		f.Time = time.Unix(whole, int64((secs-float64(whole))*1e9))
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("unrecognised timestamp %q", s)
	}
	f.Time = t
	return nil
}

// ParseRecords parses list output line by line. Blank lines are ignored.
// Every other line that does not yield a record is returned as a
// *RecordError; parsing continues past it.
func ParseRecords(out []byte, provider string, mapper *status.Mapper) ([]status.Record, []error) {
	var (
		records []status.Record
		skipped []error
	)
	scanner := bufio.NewScanner(bytes.NewReader(out))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		rec, err := parseLine(line, provider, mapper)
		if err != nil {
			skipped = append(skipped, &RecordError{Line: lineNo, Reason: err.Error()})
			continue
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		skipped = append(skipped, &RecordError{Line: lineNo + 1, Reason: err.Error()})
	}
	return records, skipped
}

func parseLine(line []byte, provider string, mapper *status.Mapper) (status.Record, error) {
	if line[0] != '{' {
		return status.Record{}, fmt.Errorf("not a JSON object")
	}
	var w wireRecord
	if err := json.Unmarshal(line, &w); err != nil {
		return status.Record{}, err
	}

	id := firstNonEmpty(w.Commit, w.ID)
	if id == "" {
		return status.Record{}, fmt.Errorf("missing commit/id")
	}
	if w.Status == "" && w.BuildStatus == "" && w.DeployStatus == "" {
		return status.Record{}, fmt.Errorf("missing status")
	}

	pair := resolvePair(w, provider, mapper)
	return status.NewRecord(status.Record{
		ID:          id,
		Title:       firstLine(firstNonEmpty(w.Message, w.Title)),
		Author:      w.Author,
		Ref:         firstNonEmpty(w.Tag, w.Branch),
		Build:       pair.Build,
		Deploy:      pair.Deploy,
		StartedAt:   firstTime(w.BuildStarted, w.StartedAt),
		FinishedAt:  firstTime(w.DeployFinished, w.FinishedAt),
		URL:         firstNonEmpty(w.ServiceURL, w.URL),
		Environment: w.Environment,
		RawStatus:   firstNonEmpty(w.Status, w.DeployStatus, w.BuildStatus),
		RawDetail:   w.Phase,
	})
}

// resolvePair prefers the provider's own raw code. Canonical build/deploy
// fields are accepted as-is, and raw codes in them go through the table.
func resolvePair(w wireRecord, provider string, mapper *status.Mapper) status.Pair {
	if w.Status != "" {
		if p := mapper.MapWith(provider, w.Status, w.Phase); p != status.UnknownPair {
			return p
		}
		if w.BuildStatus == "" && w.DeployStatus == "" {
			p := status.Parse(w.Status)
			return status.Pair{Build: p, Deploy: p}
		}
	}
	build := status.Parse(w.BuildStatus)
	if build == status.Unknown && w.BuildStatus != "" {
		build = mapper.Map(provider, w.BuildStatus).Build
	}
	deploy := status.Parse(w.DeployStatus)
	if deploy == status.Unknown && w.DeployStatus != "" {
		deploy = mapper.Map(provider, w.DeployStatus).Deploy
	}
	if w.DeployStatus == "" {
		deploy = status.Pending
		if build == status.Unknown {
			deploy = status.Unknown
		}
	}
	return status.Pair{Build: build, Deploy: deploy}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func firstTime(values ...flexTime) time.Time {
	for _, v := range values {
		if !v.IsZero() {
			return v.Time
		}
	}
	return time.Time{}
}
