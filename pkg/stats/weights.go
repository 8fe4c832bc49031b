package stats

import (
	"errors"
	"math"
)

// ErrEmptyModel is returned when no descriptor survives significance
// and redundancy filtering, leaving nothing to weight.
var ErrEmptyModel = errors.New("no descriptors selected")

// AssignWeights converts the z-scores of the selected descriptors into
// convex weights summing to one. Non-selected descriptors keep a NaN
// weight.
func AssignWeights(descs []Descriptor) error {
	zSum := 0.0
	for _, d := range descs {
		if d.Selected {
			zSum += d.Z
		}
	}
	if zSum == 0 {
		return ErrEmptyModel
	}
	for i := range descs {
		if descs[i].Selected {
			descs[i].Weight = descs[i].Z / zSum
		} else {
			descs[i].Weight = math.NaN()
		}
	}
	return nil
}
