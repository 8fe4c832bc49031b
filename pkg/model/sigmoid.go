// Package model holds the runtime scoring abstraction: single
// descriptor terms, the additive model composed from them, and the
// builder that derives a model from a labeled dataset.
package model

import (
	"errors"
	"fmt"
	"math"
)

var (
	errNotFinite   = errors.New("parameter must be a finite number")
	errNonPositive = errors.New("std must be positive")
)

// Term is one single-descriptor scoring function of a model.
type Term interface {
	// Evaluate scores a single descriptor value.
	Evaluate(x float64) float64
	// Describe renders the closed-form expression of the term.
	Describe() string
}

// SigmoidParams are the three shape parameters of a Sigmoid term.
type SigmoidParams struct {
	Mean   float64 `json:"mean" yaml:"mean"`
	Std    float64 `json:"std" yaml:"std"`
	Weight float64 `json:"weight" yaml:"weight"`
}

// Sigmoid is a weighted gaussian bump centered at a descriptor's good
// mean. Immutable after construction.
//
// The cutoff/inflection fitting upstream is sigmoidal; the runtime
// evaluation is this gaussian kernel. The two are intentionally
// different shapes.
type Sigmoid struct {
	mean   float64
	std    float64
	weight float64
}

// NewSigmoid validates the parameters and builds a term. All three
// parameters must be finite and std must be positive. Zero and
// negative weights are allowed.
func NewSigmoid(p SigmoidParams) (*Sigmoid, error) {
	if !isFinite(p.Mean) {
		return nil, fmt.Errorf("mean %v: %w", p.Mean, errNotFinite)
	}
	if !isFinite(p.Std) {
		return nil, fmt.Errorf("std %v: %w", p.Std, errNotFinite)
	}
	if !isFinite(p.Weight) {
		return nil, fmt.Errorf("weight %v: %w", p.Weight, errNotFinite)
	}
	if p.Std <= 0 {
		return nil, fmt.Errorf("std %v: %w", p.Std, errNonPositive)
	}
	return &Sigmoid{mean: p.Mean, std: p.Std, weight: p.Weight}, nil
}

// Evaluate computes weight * exp(-(x-mean)^2 / (2*std^2)). The peak
// value at x == mean is exactly the weight.
func (s *Sigmoid) Evaluate(x float64) float64 {
	d := x - s.mean
	return s.weight * math.Exp(-(d*d)/(2*s.std*s.std))
}

// Describe renders the term's closed-form expression.
func (s *Sigmoid) Describe() string {
	return fmt.Sprintf("%.2f * exp(-1.0 * (x - %.2f)^2 / (2.0 * (%.2f)^2))", s.weight, s.mean, s.std)
}

// Params returns a copy of the term's parameters.
func (s *Sigmoid) Params() SigmoidParams {
	return SigmoidParams{Mean: s.mean, Std: s.std, Weight: s.weight}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
