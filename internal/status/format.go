package status

import (
	"fmt"
	"time"
)

// FormatDuration renders d as "Ns", "Nm Ns" or "Nh Nm".
func FormatDuration(d time.Duration) string {
	secs := int(d / time.Second)
	if secs < 0 {
		secs = 0
	}
	switch {
	case secs < 60:
		return fmt.Sprintf("%ds", secs)
	case secs < 3600:
		return fmt.Sprintf("%dm %ds", secs/60, secs%60)
	default:
		return fmt.Sprintf("%dh %dm", secs/3600, (secs%3600)/60)
	}
}

// FormatElapsed renders the record's elapsed time. Records still in progress
// get an " ago" suffix since the value keeps growing. Missing start yields "-".
func FormatElapsed(r Record, now time.Time) string {
	d, ok := r.Elapsed(now)
	if !ok {
		return "-"
	}
	s := FormatDuration(d)
	if r.FinishedAt.IsZero() && r.Active() {
		s += " ago"
	}
	return s
}

// FormatAgo renders how long ago t was in coarse units.
func FormatAgo(t, now time.Time) string {
	if t.IsZero() {
		return "-"
	}
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d/time.Minute))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d/time.Hour))
	default:
		return fmt.Sprintf("%dd ago", int(d/(24*time.Hour)))
	}
}
