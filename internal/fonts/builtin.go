package fonts

import (
	"fmt"
	"os"
	"sort"

	"github.com/BurntSushi/toml"
)

// builtinFile is the TOML layout of the curated built-in font table:
//
//	[[font]]
//	name = "Arial"
//	default_weight = "regular"
//	weights = { regular = "400", bold = "700" }
type builtinFile struct {
	Font []builtinFont `toml:"font"`
}

type builtinFont struct {
	Name          string            `toml:"name"`
	DefaultWeight string            `toml:"default_weight"`
	Weights       map[string]string `toml:"weights"`
}

// LoadBuiltins decodes a built-in font table. Weights are ordered "regular"
// first, then ascending. An omitted default_weight resolves the same way as
// for generated entries. The returned entries have WebSafe set.
func LoadBuiltins(data []byte) ([]Entry, error) {
	var f builtinFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse builtin fonts: %w", err)
	}

	seen := make(map[string]bool, len(f.Font))
	entries := make([]Entry, 0, len(f.Font))
	for i, bf := range f.Font {
		if bf.Name == "" {
			return nil, fmt.Errorf("builtin font #%d: name is required", i+1)
		}
		if seen[bf.Name] {
			return nil, fmt.Errorf("builtin font %q: duplicate name", bf.Name)
		}
		seen[bf.Name] = true

		if len(bf.Weights) == 0 {
			return nil, fmt.Errorf("builtin font %q: no weights", bf.Name)
		}
		labels := make([]string, 0, len(bf.Weights))
		for label := range bf.Weights {
			labels = append(labels, label)
		}
		sort.Strings(labels)
		var weights Weights
		for _, label := range labels {
			weights.add(label, bf.Weights[label])
		}
		weights = weights.Sorted()

		def := bf.DefaultWeight
		if def == "" {
			def = defaultWeightFor(weights)
		} else if !weights.Has(def) {
			return nil, fmt.Errorf("builtin font %q: default_weight %q is not one of its weights", bf.Name, def)
		}

		entries = append(entries, Entry{
			Name:          bf.Name,
			DefaultWeight: def,
			Weights:       weights,
			WebSafe:       true,
		})
	}
	return entries, nil
}

// LoadBuiltinsFile reads and decodes a built-in font table from path.
func LoadBuiltinsFile(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read builtin fonts %s: %w", path, err)
	}
	return LoadBuiltins(data)
}
