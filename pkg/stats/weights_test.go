package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignWeights(t *testing.T) {
	descs := []Descriptor{
		{Name: "a", Z: 3.0, Selected: true},
		{Name: "b", Z: 1.0, Selected: true},
		{Name: "c", Z: 9.9, Selected: false},
	}

	require.NoError(t, AssignWeights(descs))

	assert.InDelta(t, 0.75, descs[0].Weight, 1e-12)
	assert.InDelta(t, 0.25, descs[1].Weight, 1e-12)
	assert.True(t, math.IsNaN(descs[2].Weight), "non-selected weight stays undefined")

	sum := 0.0
	for _, d := range descs {
		if d.Selected {
			sum += d.Weight
		}
	}
	assert.InDelta(t, 1.0, sum, 1e-12)
}

func TestAssignWeightsSingleDescriptor(t *testing.T) {
	descs := []Descriptor{{Name: "a", Z: 3.0, Selected: true}}

	require.NoError(t, AssignWeights(descs))
	assert.Equal(t, 1.0, descs[0].Weight, "single selected descriptor takes the full weight")
}

func TestAssignWeightsEmptySelection(t *testing.T) {
	descs := []Descriptor{
		{Name: "a", Z: 3.0, Selected: false},
		{Name: "b", Z: 1.0, Selected: false},
	}

	err := AssignWeights(descs)
	assert.ErrorIs(t, err, ErrEmptyModel)
}

func TestAssignWeightsPipeline(t *testing.T) {
	tab := testTable(t)
	descs, _ := computeAndSelect(t, tab)

	require.NoError(t, AssignWeights(descs))

	selected := 0
	sum := 0.0
	for _, d := range descs {
		if d.Selected {
			selected++
			sum += d.Weight
		} else {
			assert.True(t, math.IsNaN(d.Weight), d.Name)
		}
	}
	require.Equal(t, 1, selected)
	assert.Equal(t, 1.0, sum)
}
