// Package fonts normalizes Google Fonts family metadata into font entries and
// serializes them for the website (JSON data) and the images service (a Go
// source table).
//
// The pipeline is:
//
//	ParseMetadata -> Normalize -> MarshalData / RenderSource
//
// Ordering is significant everywhere. Families keep the order supplied by the
// input document, and weights keep the order in which Normalize inserted them,
// so that repeated runs over the same input produce byte-identical output.
package fonts

import "sort"

// ///////////////////////////////////////////////
// Weight Labels
// ///////////////////////////////////////////////

const (
	// LabelRegular is the alias used for base weight "400".
	LabelRegular = "regular"
	// LabelBold is the alias used for base weight "700".
	LabelBold = "bold"

	// WeightRegular is the numeric weight seeded into families without variants.
	WeightRegular = "400"
	// WeightBold is the numeric weight aliased as [LabelBold].
	WeightBold = "700"
)

// ///////////////////////////////////////////////
// Weights
// ///////////////////////////////////////////////

// Weight is a single label -> numeric weight pair, e.g. {"bold", "700"}.
type Weight struct {
	Label string
	Value string
}

// Weights is an insertion-ordered weight table. Labels are unique.
type Weights []Weight

// Get returns the value stored under label.
func (w Weights) Get(label string) (string, bool) {
	for _, wt := range w {
		if wt.Label == label {
			return wt.Value, true
		}
	}
	return "", false
}

// Has reports whether label is present.
func (w Weights) Has(label string) bool {
	_, ok := w.Get(label)
	return ok
}

// Labels returns the labels in insertion order.
func (w Weights) Labels() []string {
	labels := make([]string, len(w))
	for i, wt := range w {
		labels[i] = wt.Label
	}
	return labels
}

// Values returns the numeric weight values in insertion order.
func (w Weights) Values() []string {
	values := make([]string, len(w))
	for i, wt := range w {
		values[i] = wt.Value
	}
	return values
}

// add appends label -> value unless label is already present (first write wins).
// It reports whether the pair was stored.
func (w *Weights) add(label, value string) bool {
	if w.Has(label) {
		return false
	}
	*w = append(*w, Weight{Label: label, Value: value})
	return true
}

// Sorted returns a copy ordered with "regular" first (when present) and the
// remaining labels ascending.
func (w Weights) Sorted() Weights {
	out := make(Weights, len(w))
	copy(out, w)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Label, out[j].Label
		if (a == LabelRegular) != (b == LabelRegular) {
			return a == LabelRegular
		}
		return a < b
	})
	return out
}

// ///////////////////////////////////////////////
// Entry
// ///////////////////////////////////////////////

// Entry is a normalized font family.
type Entry struct {
	// Name is the family name, verbatim from the source.
	Name string
	// DefaultWeight is a label present in Weights.
	DefaultWeight string
	// Weights maps weight labels to numeric weight strings. Never empty.
	Weights Weights
	// WebSafe marks manually curated built-in entries. Only the Go source
	// table renders it; the JSON data format has no field for it.
	WebSafe bool
}

// defaultWeightFor returns "regular" when present, else the first label.
func defaultWeightFor(w Weights) string {
	if w.Has(LabelRegular) {
		return LabelRegular
	}
	if len(w) == 0 {
		return ""
	}
	return w[0].Label
}

// ///////////////////////////////////////////////
// Manifest
// ///////////////////////////////////////////////

// Manifest is an insertion-ordered mapping from family name to [Entry].
// The zero value is not usable; create one with [NewManifest].
type Manifest struct {
	entries []Entry
	index   map[string]int
}

// NewManifest returns an empty manifest.
func NewManifest() *Manifest {
	return &Manifest{index: make(map[string]int)}
}

// Set stores e under e.Name. A name that is already present is replaced in
// place and keeps its original position.
func (m *Manifest) Set(e Entry) {
	if i, ok := m.index[e.Name]; ok {
		m.entries[i] = e
		return
	}
	m.index[e.Name] = len(m.entries)
	m.entries = append(m.entries, e)
}

// Get returns the entry for name.
func (m *Manifest) Get(name string) (Entry, bool) {
	i, ok := m.index[name]
	if !ok {
		return Entry{}, false
	}
	return m.entries[i], true
}

// Len returns the number of families.
func (m *Manifest) Len() int {
	return len(m.entries)
}

// Names returns family names in manifest order.
func (m *Manifest) Names() []string {
	names := make([]string, len(m.entries))
	for i, e := range m.entries {
		names[i] = e.Name
	}
	return names
}

// Entries returns a copy of the entries in manifest order.
func (m *Manifest) Entries() []Entry {
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}
