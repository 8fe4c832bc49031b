package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/sunflower6069/pmpo/pkg/dataset"
)

// Correlation is the symmetric matrix of squared Pearson correlation
// coefficients between significant descriptors. Read-only once built.
type Correlation struct {
	names []string
	r2    map[string]map[string]float64
}

// Names returns the descriptor names on both axes, in statistics
// table order.
func (c *Correlation) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// R2 returns the squared correlation between two descriptors, or NaN
// when either name is not in the matrix.
func (c *Correlation) R2(a, b string) float64 {
	row, ok := c.r2[a]
	if !ok {
		return math.NaN()
	}
	v, ok := row[b]
	if !ok {
		return math.NaN()
	}
	return v
}

// Matrix returns the full matrix keyed by name on both axes.
func (c *Correlation) Matrix() map[string]map[string]float64 {
	out := make(map[string]map[string]float64, len(c.r2))
	for a, row := range c.r2 {
		cp := make(map[string]float64, len(row))
		for b, v := range row {
			cp[b] = v
		}
		out[a] = cp
	}
	return out
}

// SelectUncorrelated computes the r² matrix over all significant
// descriptors and greedily marks a mutually non-redundant subset as
// selected. The descs slice must already be sorted ascending by
// p-value: each descriptor is accepted only if its r² against every
// previously accepted descriptor stays at or below r2Cutoff, so the
// iteration order is part of the contract.
func SelectUncorrelated(t *dataset.Table, descs []Descriptor, r2Cutoff float64) (*Correlation, error) {
	if r2Cutoff <= 0 {
		r2Cutoff = R2CutoffDefault
	}

	names := make([]string, 0, len(descs))
	cols := make(map[string][]float64, len(descs))
	for _, d := range descs {
		if !d.Significant {
			continue
		}
		values, ok := t.Numeric(d.Name)
		if !ok {
			return nil, fmt.Errorf("significant column %s is not numeric", d.Name)
		}
		names = append(names, d.Name)
		cols[d.Name] = values
	}

	corr := &Correlation{
		names: names,
		r2:    make(map[string]map[string]float64, len(names)),
	}
	for _, a := range names {
		corr.r2[a] = make(map[string]float64, len(names))
		for _, b := range names {
			corr.r2[a][b] = squaredCorrelation(cols[a], cols[b])
		}
	}

	accepted := make(map[string]bool, len(names))
	for i := range descs {
		d := &descs[i]
		if !d.Significant {
			continue
		}
		redundant := false
		for name := range accepted {
			if corr.r2[d.Name][name] > r2Cutoff {
				redundant = true
				break
			}
		}
		if !redundant {
			accepted[d.Name] = true
			d.Selected = true
		}
	}

	return corr, nil
}

// squaredCorrelation computes r² over the rows where both columns are
// present.
func squaredCorrelation(a, b []float64) float64 {
	xs := make([]float64, 0, len(a))
	ys := make([]float64, 0, len(a))
	for i := range a {
		if math.IsNaN(a[i]) || math.IsNaN(b[i]) {
			continue
		}
		xs = append(xs, a[i])
		ys = append(ys, b[i])
	}
	if len(xs) < 2 {
		return math.NaN()
	}
	r := stat.Correlation(xs, ys, nil)
	return r * r
}
