package model

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Model is a named additive composition of per-descriptor terms.
// Register during the build phase; Evaluate is a pure read and safe
// for concurrent callers once building is done.
type Model struct {
	name  string
	terms map[string]Term
}

// NewModel creates an empty model.
func NewModel(name string) *Model {
	return &Model{
		name:  name,
		terms: make(map[string]Term),
	}
}

// Name returns the model name.
func (m *Model) Name() string {
	return m.name
}

// Len returns the number of registered terms.
func (m *Model) Len() int {
	return len(m.terms)
}

// Register inserts or replaces the term for a descriptor name.
func (m *Model) Register(name string, t Term) {
	m.terms[name] = t
}

// Evaluate sums the registered terms over the record's values. A
// record key with no registered term contributes nothing; a missing
// (NaN) value contributes zero even when a term is registered. The
// raw sum is returned without normalization.
func (m *Model) Evaluate(record map[string]float64) float64 {
	score := 0.0
	for name, value := range record {
		t, ok := m.terms[name]
		if !ok || math.IsNaN(value) {
			continue
		}
		score += t.Evaluate(value)
	}
	return score
}

// Descriptors returns the registered descriptor names sorted.
func (m *Model) Descriptors() []string {
	names := make([]string, 0, len(m.terms))
	for name := range m.terms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// String renders the model name followed by each term's closed-form
// expression in sorted order, for audit output.
func (m *Model) String() string {
	parts := make([]string, 0, len(m.terms))
	for name, t := range m.terms {
		parts = append(parts, fmt.Sprintf("[%s] %s", name, t.Describe()))
	}
	sort.Strings(parts)
	return fmt.Sprintf("%s: %s", m.name, strings.Join(parts, " + "))
}
