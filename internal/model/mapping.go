package model

import "encoding/json"

// Pair is one original -> replacement entry of a Mapping.
type Pair struct {
	Original    string `json:"original"`
	Replacement string `json:"replacement"`
}

// Mapping is an insertion-ordered table from original values to their
// replacements. Keys are unique and, once set, never reassigned, so every
// occurrence of an original maps to the same replacement.
type Mapping struct {
	keys   []string
	values map[string]string
}

// NewMapping returns an empty Mapping.
func NewMapping() *Mapping {
	return &Mapping{values: make(map[string]string)}
}

// Get returns the replacement for original.
func (m *Mapping) Get(original string) (string, bool) {
	v, ok := m.values[original]
	return v, ok
}

// Has reports whether original already has a replacement.
func (m *Mapping) Has(original string) bool {
	_, ok := m.values[original]
	return ok
}

// Set records original -> replacement unless original is already present.
// It reports whether the entry was added.
func (m *Mapping) Set(original, replacement string) bool {
	if m.Has(original) {
		return false
	}
	m.keys = append(m.keys, original)
	m.values[original] = replacement
	return true
}

// Len returns the number of entries.
func (m *Mapping) Len() int {
	return len(m.keys)
}

// Pairs returns the entries in insertion order.
func (m *Mapping) Pairs() []Pair {
	pairs := make([]Pair, len(m.keys))
	for i, k := range m.keys {
		pairs[i] = Pair{Original: k, Replacement: m.values[k]}
	}
	return pairs
}

// Originals returns the keys in insertion order.
func (m *Mapping) Originals() []string {
	return append([]string(nil), m.keys...)
}

// MarshalJSON encodes the mapping as an ordered array of pairs.
func (m *Mapping) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Pairs())
}

// UnmarshalJSON decodes an ordered array of pairs.
func (m *Mapping) UnmarshalJSON(data []byte) error {
	var pairs []Pair
	if err := json.Unmarshal(data, &pairs); err != nil {
		return err
	}
	m.keys = nil
	m.values = make(map[string]string, len(pairs))
	for _, p := range pairs {
		m.Set(p.Original, p.Replacement)
	}
	return nil
}
