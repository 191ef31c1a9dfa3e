package courses

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/artem13815/jobmatch/pkg/nlp"
)

// CourseRef is a catalog entry suggesting how to close one skill gap.
type CourseRef struct {
	Title    string `json:"title"`
	Provider string `json:"provider"`
	URL      string `json:"url"`
}

// Catalog maps canonical skill names to curated course lists. Immutable after
// load; list order is the curated ranking and is never re-sorted.
type Catalog struct {
	bySkill map[string][]CourseRef
	cap     int
}

//go:embed default.json
var defaultCatalog []byte

// Default builds the catalog shipped with the binary.
func Default(cap int) *Catalog {
	c, err := Parse(defaultCatalog, cap)
	if err != nil {
		panic(fmt.Sprintf("courses: embedded catalog is invalid: %v", err))
	}
	return c
}

// Parse decodes a JSON object of skill → course list. Keys are normalized to
// canonical form; lists are truncated to cap entries (cap <= 0 means no cap).
func Parse(data []byte, cap int) (*Catalog, error) {
	var raw map[string][]CourseRef
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse course catalog: %w", err)
	}
	return FromMap(raw, cap), nil
}

// FromMap builds a catalog from already-structured entries, normalizing skill
// keys and applying the per-skill cap.
func FromMap(raw map[string][]CourseRef, cap int) *Catalog {
	c := &Catalog{bySkill: make(map[string][]CourseRef, len(raw)), cap: cap}
	for skill, refs := range raw {
		key := nlp.Normalize(skill)
		if key == "" {
			continue
		}
		if cap > 0 && len(refs) > cap {
			refs = refs[:cap]
		}
		c.bySkill[key] = refs
	}
	return c
}

// LoadFile reads a catalog from a JSON file.
func LoadFile(path string, cap int) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read course catalog %s: %w", path, err)
	}
	return Parse(data, cap)
}

// Recommend returns a course list for every missing skill. Skills without a
// catalog entry map to an empty list, never a missing key, so callers can
// render "no suggestions" deterministically.
func (c *Catalog) Recommend(missing []string) map[string][]CourseRef {
	out := make(map[string][]CourseRef, len(missing))
	for _, skill := range missing {
		refs := c.bySkill[nlp.Normalize(skill)]
		if refs == nil {
			refs = []CourseRef{}
		}
		out[skill] = refs
	}
	return out
}

// Len returns the number of skills with at least one course.
func (c *Catalog) Len() int { return len(c.bySkill) }
