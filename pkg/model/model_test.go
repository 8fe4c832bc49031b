package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustSigmoid(t *testing.T, mean, std, weight float64) *Sigmoid {
	t.Helper()
	fn, err := NewSigmoid(SigmoidParams{Mean: mean, Std: std, Weight: weight})
	require.NoError(t, err)
	return fn
}

func TestModelEvaluateEmpty(t *testing.T) {
	m := NewModel("empty")
	assert.Equal(t, 0.0, m.Evaluate(map[string]float64{"anything": 1.0}))
	assert.Equal(t, 0.0, m.Evaluate(nil))
}

func TestModelEvaluate(t *testing.T) {
	m := NewModel("cns")
	m.Register("mw", mustSigmoid(t, 300, 50, 0.6))
	m.Register("logp", mustSigmoid(t, 2, 1, 0.4))

	// Both descriptors at their peak.
	score := m.Evaluate(map[string]float64{"mw": 300, "logp": 2})
	assert.InDelta(t, 1.0, score, 1e-12)

	// Unregistered names contribute nothing.
	score = m.Evaluate(map[string]float64{"mw": 300, "tpsa": 90})
	assert.InDelta(t, 0.6, score, 1e-12)

	// Missing values contribute zero even when registered.
	score = m.Evaluate(map[string]float64{"mw": math.NaN(), "logp": 2})
	assert.InDelta(t, 0.4, score, 1e-12)
}

func TestModelRegisterReplaces(t *testing.T) {
	m := NewModel("m")
	m.Register("mw", mustSigmoid(t, 300, 50, 0.6))
	m.Register("mw", mustSigmoid(t, 300, 50, 0.1))

	assert.Equal(t, 1, m.Len())
	assert.InDelta(t, 0.1, m.Evaluate(map[string]float64{"mw": 300}), 1e-12)
}

func TestModelString(t *testing.T) {
	m := NewModel("cns")
	m.Register("mw", mustSigmoid(t, 300, 50, 0.6))
	m.Register("logp", mustSigmoid(t, 2, 1, 0.4))

	want := "cns: [logp] 0.40 * exp(-1.0 * (x - 2.00)^2 / (2.0 * (1.00)^2))" +
		" + [mw] 0.60 * exp(-1.0 * (x - 300.00)^2 / (2.0 * (50.00)^2))"
	assert.Equal(t, want, m.String())

	// Deterministic across calls.
	assert.Equal(t, m.String(), m.String())
}

func TestModelDescriptors(t *testing.T) {
	m := NewModel("m")
	m.Register("b", mustSigmoid(t, 1, 1, 1))
	m.Register("a", mustSigmoid(t, 1, 1, 1))

	assert.Equal(t, []string{"a", "b"}, m.Descriptors())
	assert.Equal(t, "m", m.Name())
}
