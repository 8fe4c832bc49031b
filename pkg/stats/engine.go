package stats

import (
	"fmt"
	"log/slog"
	"math"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/sunflower6069/pmpo/pkg/dataset"
)

const (
	// MinSamplesDefault is the minimum number of good and bad
	// observations required to compute statistics for a column.
	MinSamplesDefault = 10
	// PCutoffDefault is the p-value below which separation is significant.
	PCutoffDefault = 0.01
	// QCutoffDefault is the tail probability used to parameterize the
	// fitted function at the bad-population mean.
	QCutoffDefault = 0.05
	// R2CutoffDefault is the squared correlation above which two
	// descriptors are considered redundant.
	R2CutoffDefault = 0.53
)

// Options configures the descriptor statistics computation. Zero
// fields fall back to the package defaults.
type Options struct {
	MinSamples int
	PCutoff    float64
	QCutoff    float64
	Ignore     []string
}

func (o Options) withDefaults() Options {
	if o.MinSamples <= 0 {
		o.MinSamples = MinSamplesDefault
	}
	if o.PCutoff <= 0 {
		o.PCutoff = PCutoffDefault
	}
	if o.QCutoff <= 0 {
		o.QCutoff = QCutoffDefault
	}
	return o
}

// Compute measures how well every numeric column of t separates good
// from bad rows, as labeled by the boolean labelColumn. Columns on the
// ignore list, non-numeric columns, and columns with fewer than
// MinSamples good or bad observations are skipped. The result is
// sorted ascending by p-value.
//
// Columns are independent, so the per-column work runs across a small
// worker pool; results are merged and sorted after all workers finish.
func Compute(t *dataset.Table, labelColumn string, opts Options) ([]Descriptor, error) {
	opts = opts.withDefaults()

	labels, ok := t.Column(labelColumn)
	if !ok {
		return nil, fmt.Errorf("label column %s not found", labelColumn)
	}

	ignored := make(map[string]bool, len(opts.Ignore)+1)
	for _, name := range opts.Ignore {
		ignored[name] = true
	}
	ignored[labelColumn] = true

	cols := make([]string, 0)
	for _, name := range t.NumericColumns() {
		if !ignored[name] {
			cols = append(cols, name)
		}
	}

	results := make([]*Descriptor, len(cols))
	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, name := range cols {
		i, name := i, name
		g.Go(func() error {
			values, ok := t.Numeric(name)
			if !ok {
				return fmt.Errorf("column %s is not numeric", name)
			}
			results[i] = computeColumn(name, values, labels, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	descs := make([]Descriptor, 0, len(results))
	for _, d := range results {
		if d != nil {
			descs = append(descs, *d)
		}
	}
	sort.SliceStable(descs, func(i, j int) bool {
		return descs[i].PValue < descs[j].PValue
	})

	slog.Debug("descriptor statistics computed", "analyzed", len(descs), "skipped", len(cols)-len(descs))
	return descs, nil
}

// computeColumn builds the statistics row for one column, or nil when
// the column lacks enough labeled observations.
func computeColumn(name string, values []float64, labels []any, opts Options) *Descriptor {
	good := make([]float64, 0, len(values))
	bad := make([]float64, 0, len(values))
	for i, v := range values {
		if math.IsNaN(v) {
			continue
		}
		isGood, ok := labels[i].(bool)
		if !ok {
			// Missing or non-boolean label: the row joins no partition.
			continue
		}
		if isGood {
			good = append(good, v)
		} else {
			bad = append(bad, v)
		}
	}
	if len(good) < opts.MinSamples || len(bad) < opts.MinSamples {
		slog.Debug("skipping column with insufficient samples",
			"column", name, "good", len(good), "bad", len(bad), "min", opts.MinSamples)
		return nil
	}

	d := &Descriptor{
		Name:     name,
		PValue:   welchP(good, bad),
		GoodMean: mean(good),
		GoodN:    len(good),
		BadMean:  mean(bad),
		BadN:     len(bad),
		Weight:   math.NaN(),
	}
	d.GoodStd = popStd(good, d.GoodMean)
	d.BadStd = popStd(bad, d.BadMean)
	d.Significant = d.PValue < opts.PCutoff

	fitShape(d, opts.QCutoff)
	return d
}

// fitShape derives the cutoff, inflection, and sigmoid parameters for
// a descriptor row. A row whose parameters cannot be fitted is marked
// degenerate and excluded from significance so it is never selected.
func fitShape(d *Descriptor, qCutoff float64) {
	if d.GoodStd == 0 || d.BadStd == 0 {
		markDegenerate(d)
		return
	}

	// The cutoff sits between the two means, pulled toward the
	// smaller-mean group by that group's spread.
	if d.GoodMean < d.BadMean {
		d.Cutoff = d.GoodMean + d.GoodStd*(d.BadMean-d.GoodMean)/(d.GoodStd+d.BadStd)
	} else {
		d.Cutoff = d.BadMean + d.BadStd*(d.GoodMean-d.BadMean)/(d.GoodStd+d.BadStd)
	}

	// Height of a unit gaussian centered at the good mean, evaluated
	// at the cutoff. Always in (0, 1].
	dev := d.Cutoff - d.GoodMean
	d.Inflection = math.Exp(-(dev * dev) / (2 * d.GoodStd * d.GoodStd))
	d.B = 1/d.Inflection - 1
	d.Z = math.Abs(dev) / d.GoodStd

	if d.B <= 0 || d.BadMean == d.Cutoff {
		d.C = math.NaN()
		d.Degenerate = true
		d.Significant = false
		return
	}

	n := 1/qCutoff - 1
	d.C = math.Pow(10, math.Log10(n/d.B)/(-1*(d.BadMean-d.Cutoff)))
}

func markDegenerate(d *Descriptor) {
	d.Degenerate = true
	d.Significant = false
	d.Cutoff = math.NaN()
	d.Inflection = math.NaN()
	d.B = math.NaN()
	d.C = math.NaN()
	d.Z = math.NaN()
}
