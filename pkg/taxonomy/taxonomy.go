package taxonomy

import (
	"sort"

	"github.com/artem13815/jobmatch/pkg/nlp"
)

// Entry maps a canonical skill name to its known aliases.
// Canonical names are the unit of comparison for the whole pipeline.
type Entry struct {
	Canonical string   `json:"canonical"`
	Aliases   []string `json:"aliases,omitempty"`
}

// Taxonomy is an immutable, insertion-ordered skill vocabulary. Build it once
// and share it; concurrent readers need no synchronization.
type Taxonomy struct {
	entries []compiled
	order   map[string]int
}

type compiled struct {
	canonical string
	// normalized alias phrases, longest first, canonical form included
	phrases []string
}

// New compiles entries into a matchable taxonomy. Entries with an empty
// canonical name after normalization are skipped; duplicate canonicals keep
// the first occurrence.
func New(entries []Entry) *Taxonomy {
	t := &Taxonomy{order: make(map[string]int, len(entries))}
	for _, e := range entries {
		canonical := nlp.Normalize(e.Canonical)
		if canonical == "" {
			continue
		}
		if _, ok := t.order[canonical]; ok {
			continue
		}
		c := compiled{canonical: canonical}
		seen := map[string]struct{}{}
		add := func(s string) {
			s = nlp.Normalize(s)
			if s == "" {
				return
			}
			if _, ok := seen[s]; ok {
				return
			}
			seen[s] = struct{}{}
			c.phrases = append(c.phrases, s)
		}
		add(canonical)
		for _, a := range e.Aliases {
			add(a)
		}
		// longest alias first, so overlapping aliases resolve to the most
		// specific match in a scan window
		sort.SliceStable(c.phrases, func(i, j int) bool {
			return len(c.phrases[i]) > len(c.phrases[j])
		})
		t.order[canonical] = len(t.entries)
		t.entries = append(t.entries, c)
	}
	return t
}

// Len returns the number of canonical skills.
func (t *Taxonomy) Len() int { return len(t.entries) }

// Extract scans free text and returns the canonical names of every skill
// whose alias occurs as a whole token or phrase, in taxonomy insertion order.
// Deterministic: identical text always yields the identical slice.
func (t *Taxonomy) Extract(text string) []string {
	normalized := nlp.Normalize(text)
	if normalized == "" {
		return []string{}
	}
	out := []string{}
	for _, e := range t.entries {
		for _, p := range e.phrases {
			if nlp.ContainsPhrase(normalized, p) {
				out = append(out, e.canonical)
				break
			}
		}
	}
	return out
}

// Sort orders canonical skill names by taxonomy insertion order, in place.
// Names unknown to the taxonomy sort last, keeping their relative order.
func (t *Taxonomy) Sort(skills []string) {
	sort.SliceStable(skills, func(i, j int) bool {
		oi, iok := t.order[skills[i]]
		oj, jok := t.order[skills[j]]
		if iok != jok {
			return iok
		}
		return oi < oj
	})
}
