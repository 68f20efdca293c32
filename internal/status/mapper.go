package status

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/samber/lo"
)

// TieBreak splits one raw code into different pairs depending on a second
// raw field from the provider (e.g. the phase a generic failure happened in).
type TieBreak struct {
	Secondary map[string]Pair
	// Fallback is used when the secondary value is absent or not listed.
	Fallback Pair
}

// Table is the finite vocabulary of one provider.
type Table struct {
	Codes     map[string]Pair
	TieBreaks map[string]TieBreak
}

// Lookup resolves raw (and optionally secondary) against the table. The
// boolean is false for unmapped codes, which resolve to UnknownPair.
func (t Table) Lookup(raw, secondary string) (Pair, bool) {
	raw = normalise(raw)
	secondary = normalise(secondary)
	if tb, ok := t.TieBreaks[raw]; ok {
		if p, ok := tb.Secondary[secondary]; ok {
			return p, true
		}
		return tb.Fallback, true
	}
	if p, ok := t.Codes[raw]; ok {
		return p, true
	}
	return UnknownPair, false
}

// Mapper translates provider vocabularies into canonical pairs. It has no
// I/O and is safe for concurrent reads once built. Providers are keyed by
// plugin name without its file extension, so render.py uses the render table.
type Mapper struct {
	tables map[string]Table
}

// NewMapper returns a mapper preloaded with the built-in tables.
func NewMapper() *Mapper {
	m := &Mapper{tables: make(map[string]Table)}
	for name, t := range builtinTables() {
		m.Register(name, t)
	}
	return m
}

// Register installs or replaces the table for provider. Not safe to call
// concurrently with Map.
func (m *Mapper) Register(provider string, t Table) {
	m.tables[providerKey(provider)] = t
}

// Providers returns the registered provider ids, sorted.
func (m *Mapper) Providers() []string {
	names := lo.Keys(m.tables)
	sort.Strings(names)
	return names
}

// Table returns the table registered for provider.
func (m *Mapper) Table(provider string) (Table, bool) {
	t, ok := m.tables[providerKey(provider)]
	return t, ok
}

// Map resolves raw for provider. Unknown providers and unmapped codes map to
// UnknownPair.
func (m *Mapper) Map(provider, raw string) Pair {
	return m.MapWith(provider, raw, "")
}

// MapWith is Map with a secondary raw field for tie-break rules.
func (m *Mapper) MapWith(provider, raw, secondary string) Pair {
	t, ok := m.tables[providerKey(provider)]
	if !ok {
		return UnknownPair
	}
	p, _ := t.Lookup(raw, secondary)
	return p
}

func normalise(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func providerKey(provider string) string {
	key := normalise(provider)
	return strings.TrimSuffix(key, filepath.Ext(key))
}
