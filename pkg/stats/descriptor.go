// Package stats computes the per-descriptor separation statistics,
// redundancy selection, and contribution weights behind a pMPO model.
package stats

import (
	"encoding/json"
	"math"
)

// Descriptor holds the separation statistics and fitted shape
// parameters for one numeric column.
type Descriptor struct {
	Name     string  `json:"name" yaml:"name"`
	PValue   float64 `json:"p_value" yaml:"p_value"`
	GoodMean float64 `json:"good_mean" yaml:"good_mean"`
	GoodStd  float64 `json:"good_std" yaml:"good_std"`
	GoodN    int     `json:"good_nsamples" yaml:"good_nsamples"`
	BadMean  float64 `json:"bad_mean" yaml:"bad_mean"`
	BadStd   float64 `json:"bad_std" yaml:"bad_std"`
	BadN     int     `json:"bad_nsamples" yaml:"bad_nsamples"`

	// Significant is true when PValue < the configured p cutoff and
	// the descriptor is not degenerate.
	Significant bool `json:"significant" yaml:"significant"`

	// Degenerate marks a column whose shape parameters cannot be
	// fitted (zero spread in a partition, b <= 0, or bad mean equal
	// to the cutoff). Degenerate descriptors are never selected and
	// their unusable parameters are NaN.
	Degenerate bool `json:"degenerate" yaml:"degenerate"`

	Cutoff     float64 `json:"cutoff" yaml:"cutoff"`
	Inflection float64 `json:"inflection" yaml:"inflection"`
	B          float64 `json:"b" yaml:"b"`
	C          float64 `json:"c" yaml:"c"`
	Z          float64 `json:"z" yaml:"z"`

	// Selected is set by the redundancy selector, Weight by the
	// weight normalizer. Weight is NaN for non-selected descriptors.
	Selected bool    `json:"selected" yaml:"selected"`
	Weight   float64 `json:"w" yaml:"w"`
}

// MarshalJSON renders non-finite parameters as null so the table stays
// valid JSON when a descriptor is degenerate or unselected.
func (d Descriptor) MarshalJSON() ([]byte, error) {
	type row struct {
		Name        string   `json:"name"`
		PValue      *float64 `json:"p_value"`
		GoodMean    *float64 `json:"good_mean"`
		GoodStd     *float64 `json:"good_std"`
		GoodN       int      `json:"good_nsamples"`
		BadMean     *float64 `json:"bad_mean"`
		BadStd      *float64 `json:"bad_std"`
		BadN        int      `json:"bad_nsamples"`
		Significant bool     `json:"significant"`
		Degenerate  bool     `json:"degenerate"`
		Cutoff      *float64 `json:"cutoff"`
		Inflection  *float64 `json:"inflection"`
		B           *float64 `json:"b"`
		C           *float64 `json:"c"`
		Z           *float64 `json:"z"`
		Selected    bool     `json:"selected"`
		Weight      *float64 `json:"w"`
	}
	return json.Marshal(row{
		Name:        d.Name,
		PValue:      finite(d.PValue),
		GoodMean:    finite(d.GoodMean),
		GoodStd:     finite(d.GoodStd),
		GoodN:       d.GoodN,
		BadMean:     finite(d.BadMean),
		BadStd:      finite(d.BadStd),
		BadN:        d.BadN,
		Significant: d.Significant,
		Degenerate:  d.Degenerate,
		Cutoff:      finite(d.Cutoff),
		Inflection:  finite(d.Inflection),
		B:           finite(d.B),
		C:           finite(d.C),
		Z:           finite(d.Z),
		Selected:    d.Selected,
		Weight:      finite(d.Weight),
	})
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
