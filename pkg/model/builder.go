package model

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/sunflower6069/pmpo/pkg/dataset"
	"github.com/sunflower6069/pmpo/pkg/label"
	"github.com/sunflower6069/pmpo/pkg/stats"
)

// LabelColumnDefault is the name of the derived boolean label column
// added to the dataset during the build.
const LabelColumnDefault = "pMPO_POSITIVE"

var errLabelColumnRequired = errors.New("label column required")

// Config drives a model build. Only Name and LabelColumn are
// required; everything else has a default.
type Config struct {
	// Name of the resulting model.
	Name string
	// LabelColumn is the raw good/bad indicator column in the input.
	LabelColumn string
	// GoodValue decides which raw label values mark good rows.
	// The zero value is the default truth-set policy.
	GoodValue label.Policy
	// LabelAs renames the derived boolean column.
	LabelAs string
	// MinSamples, PCutoff, QCutoff, R2Cutoff override the statistics
	// thresholds; zero values fall back to package defaults.
	MinSamples int
	PCutoff    float64
	QCutoff    float64
	R2Cutoff   float64
	// Ignore lists columns excluded from analysis, such as identifiers.
	Ignore []string
}

// Builder runs the full statistics pipeline over a dataset and holds
// the results: the descriptor table, the correlation matrix, and the
// finished model. Construction is the single point where the build
// can fail; the getters never do.
type Builder struct {
	cfg   Config
	descs []stats.Descriptor
	corr  *stats.Correlation
	model *Model
}

// NewBuilder labels the dataset, computes descriptor statistics,
// selects non-redundant descriptors, assigns weights, and assembles
// the scoring model. The derived boolean column is added to t; the
// raw label column and the derived column are excluded from analysis.
func NewBuilder(t *dataset.Table, cfg Config) (*Builder, error) {
	if cfg.LabelColumn == "" {
		return nil, errLabelColumnRequired
	}
	if cfg.LabelAs == "" {
		cfg.LabelAs = LabelColumnDefault
	}

	raw, ok := t.Column(cfg.LabelColumn)
	if !ok {
		return nil, fmt.Errorf("label column %s not found", cfg.LabelColumn)
	}
	if err := t.SetBools(cfg.LabelAs, cfg.GoodValue.Apply(raw)); err != nil {
		return nil, fmt.Errorf("deriving label column: %w", err)
	}

	descs, err := stats.Compute(t, cfg.LabelAs, stats.Options{
		MinSamples: cfg.MinSamples,
		PCutoff:    cfg.PCutoff,
		QCutoff:    cfg.QCutoff,
		Ignore:     append([]string{cfg.LabelColumn}, cfg.Ignore...),
	})
	if err != nil {
		return nil, fmt.Errorf("computing descriptor statistics: %w", err)
	}

	corr, err := stats.SelectUncorrelated(t, descs, cfg.R2Cutoff)
	if err != nil {
		return nil, fmt.Errorf("selecting descriptors: %w", err)
	}

	if err := stats.AssignWeights(descs); err != nil {
		return nil, fmt.Errorf("weighting descriptors: %w", err)
	}

	m := NewModel(cfg.Name)
	for _, d := range descs {
		if !d.Selected {
			continue
		}
		fn, err := NewSigmoid(SigmoidParams{Mean: d.GoodMean, Std: d.GoodStd, Weight: d.Weight})
		if err != nil {
			return nil, fmt.Errorf("building term for %s: %w", d.Name, err)
		}
		m.Register(d.Name, fn)
	}

	slog.Debug("model built", "name", cfg.Name, "descriptors", len(descs), "terms", m.Len())

	return &Builder{cfg: cfg, descs: descs, corr: corr, model: m}, nil
}

// Statistics returns the full descriptor table, sorted ascending by
// p-value, including non-significant and non-selected rows.
func (b *Builder) Statistics() []stats.Descriptor {
	return b.descs
}

// Correlation returns the r² matrix over the significant descriptors.
func (b *Builder) Correlation() *stats.Correlation {
	return b.corr
}

// Model returns the finished scoring model. The model is assembled
// once at construction and reused; later mutation of the statistics
// table does not change it.
func (b *Builder) Model() *Model {
	return b.model
}
