package agents

import (
	"strings"

	"github.com/samber/lo"
)

// StripTicketPrefix removes the prefix shared by every ticket id, cut back
// to the last '-' or '/' so only whole segments go. Tickets may hold
// comma-separated ids. With fewer than two ids nothing is stripped.
func StripTicketPrefix(tickets []string) ([]string, string) {
	atoms := lo.FlatMap(tickets, func(t string, _ int) []string {
		return splitTicket(t)
	})
	if len(atoms) <= 1 {
		return tickets, ""
	}

	prefix := commonPrefix(atoms)
	if !strings.HasSuffix(prefix, "-") && !strings.HasSuffix(prefix, "/") {
		cut := strings.LastIndexAny(prefix, "-/")
		prefix = prefix[:cut+1]
	}
	if prefix == "" {
		return tickets, ""
	}

	stripped := lo.Map(tickets, func(t string, _ int) string {
		parts := lo.Map(strings.Split(t, ","), func(p string, _ int) string {
			return strings.TrimPrefix(strings.TrimSpace(p), prefix)
		})
		return strings.Join(parts, ", ")
	})
	return stripped, prefix
}

func splitTicket(t string) []string {
	return lo.FilterMap(strings.Split(t, ","), func(p string, _ int) (string, bool) {
		p = strings.TrimSpace(p)
		return p, p != ""
	})
}

func commonPrefix(values []string) string {
	prefix := values[0]
	for _, v := range values[1:] {
		for prefix != "" && !strings.HasPrefix(v, prefix) {
			prefix = prefix[:len(prefix)-1]
		}
		if prefix == "" {
			break
		}
	}
	return prefix
}
