package taxonomy

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
)

//go:embed default.json
var defaultVocabulary []byte

// Default builds the taxonomy shipped with the binary.
func Default() *Taxonomy {
	t, err := Parse(defaultVocabulary)
	if err != nil {
		// the embedded vocabulary is validated by tests; a parse failure
		// here is a build defect
		panic(fmt.Sprintf("taxonomy: embedded vocabulary is invalid: %v", err))
	}
	return t
}

// Parse decodes a JSON array of entries and compiles it.
func Parse(data []byte) (*Taxonomy, error) {
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse taxonomy: %w", err)
	}
	return New(entries), nil
}

// LoadFile reads a taxonomy from a JSON file.
func LoadFile(path string) (*Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read taxonomy %s: %w", path, err)
	}
	return Parse(data)
}
