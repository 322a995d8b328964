package fonts

import (
	"sort"
	"strings"
)

// italicMarker is the suffix Google Fonts appends to italic variant keys.
const italicMarker = "i"

// BaseWeight strips trailing italic markers from a variant key: "700i" -> "700".
func BaseWeight(variant string) string {
	return strings.TrimRight(variant, italicMarker)
}

// LabelFor maps a base weight to its label: "400" -> "regular",
// "700" -> "bold", anything else is its own label.
func LabelFor(base string) string {
	switch base {
	case WeightRegular:
		return LabelRegular
	case WeightBold:
		return LabelBold
	default:
		return base
	}
}

// Normalize builds a manifest from family records, in input order. Records
// without a name are skipped.
//
// Variant keys are visited in ascending lexical order. The sort is what makes
// label collisions deterministic: "400" sorts before "400i", so when both
// collapse onto "regular" the non-italic key is the one retained. Italic
// variants are never represented in the output.
//
// A family without variants is seeded with {"regular": "400"}, so every entry
// has at least one weight and its DefaultWeight is always one of its labels.
func Normalize(families []Family) *Manifest {
	m := NewManifest()
	for _, f := range families {
		if f.Name == "" {
			continue
		}
		m.Set(normalizeFamily(f))
	}
	return m
}

// normalizeFamily converts a single family record into an [Entry].
func normalizeFamily(f Family) Entry {
	variants := make([]string, len(f.Variants))
	copy(variants, f.Variants)
	sort.Strings(variants)

	var weights Weights
	for _, v := range variants {
		base := BaseWeight(v)
		if base == "" {
			continue
		}
		weights.add(LabelFor(base), base)
	}
	if len(weights) == 0 {
		weights.add(LabelRegular, WeightRegular)
	}

	return Entry{
		Name:          f.Name,
		DefaultWeight: defaultWeightFor(weights),
		Weights:       weights,
	}
}
