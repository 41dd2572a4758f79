// SPDX-License-Identifier: MIT

package ranef

import (
	"fmt"
	"math"
	"slices"

	"github.com/katalvlaran/mixedviz/matrix"
)

// DefaultReferenceScale is the diagonal of every Λ_f in the default
// reference parameter vector.
const DefaultReferenceScale = 10_000.0

const opBuildPair = "BuildPair"

// ShrinkagePair holds one factor's conditional means at the fitted
// parameters and at the reference parameters. Both tables have the same
// levels and columns in the same order.
type ShrinkagePair struct {
	Factor          string
	Estimated       Info
	Reference       Info
	ReferenceParams []float64
}

// Shrinkage returns Reference − Estimated means (n×k): how far every
// conditional mean was pulled toward zero by the penalty.
//
// Errors: ErrDimensionMismatch for a pair not built by BuildPair.
func (p ShrinkagePair) Shrinkage() (*matrix.Dense, error) {
	if p.Reference.ranef == nil || p.Estimated.ranef == nil {
		return nil, fmt.Errorf("shrinkage of an empty pair: %w", ErrDimensionMismatch)
	}

	return matrix.Sub(p.Reference.ranef, p.Estimated.ranef)
}

// PairOption configures BuildPair.
type PairOption func(*pairConfig)

type pairConfig struct {
	params    []float64
	hasParams bool // set by WithReferenceParams, even for an empty theta
	scale     float64
}

// WithReferenceParams evaluates the reference table at theta instead of
// the default. theta must have the model's θ length.
func WithReferenceParams(theta []float64) PairOption {
	cp := append([]float64(nil), theta...)

	return func(c *pairConfig) { c.params, c.hasParams = cp, true }
}

// WithReferenceScale sets the Λ diagonal of the default reference θ.
// Panics on a non-finite or non-positive scale.
func WithReferenceScale(s float64) PairOption {
	if math.IsNaN(s) || math.IsInf(s, 0) || s <= 0 {
		panic(fmt.Sprintf("ranef: WithReferenceScale(%g): need a finite scale > 0", s))
	}

	return func(c *pairConfig) { c.scale = s }
}

// ReferenceParams returns the θ that makes every Λ_f equal scale·I,
// following the layout of m.CovarianceParams().
//
// Errors: ErrUnfittedModel, ErrInconsistentModel (term counts disagree with
// the length of θ).
func ReferenceParams(m FittedModel, scale float64) ([]float64, error) {
	if err := checkFitted(m); err != nil {
		return nil, err
	}
	theta := make([]float64, 0, len(m.CovarianceParams()))
	var i, j int
	for _, f := range m.GroupingFactors() {
		terms, err := m.TermNames(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f, err)
		}
		k := len(terms)
		for j = 0; j < k; j++ {
			for i = j; i < k; i++ {
				if i == j {
					theta = append(theta, scale)
				} else {
					theta = append(theta, 0)
				}
			}
		}
	}
	if len(theta) != len(m.CovarianceParams()) {
		return nil, fmt.Errorf("layout gives %d parameters, model has %d: %w",
			len(theta), len(m.CovarianceParams()), ErrInconsistentModel)
	}

	return theta, nil
}

// BuildPair extracts factor at the fitted parameters and again at the
// reference parameters. An empty factor selects the first grouping factor.
//
// The reference table comes from m.WithCovarianceParams, so m itself is
// left untouched.
//
// Errors: ErrUnfittedModel, *UnknownFactorError, ErrDimensionMismatch
// (reference θ of the wrong length), ErrInconsistentModel.
func BuildPair(m FittedModel, factor string, opts ...PairOption) (ShrinkagePair, error) {
	cfg := pairConfig{scale: DefaultReferenceScale}
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := checkFitted(m); err != nil {
		return ShrinkagePair{}, fmt.Errorf("%s: %w", opBuildPair, err)
	}
	if factor == "" {
		fs := m.GroupingFactors()
		if len(fs) == 0 {
			return ShrinkagePair{}, fmt.Errorf("%s: no grouping factors: %w", opBuildPair, ErrInconsistentModel)
		}
		factor = fs[0]
	}
	if err := checkFactor(m, factor); err != nil {
		return ShrinkagePair{}, fmt.Errorf("%s: %w", opBuildPair, err)
	}

	ref := cfg.params
	if !cfg.hasParams {
		var err error
		if ref, err = ReferenceParams(m, cfg.scale); err != nil {
			return ShrinkagePair{}, fmt.Errorf("%s: %w", opBuildPair, err)
		}
	}
	if want := len(m.CovarianceParams()); len(ref) != want {
		return ShrinkagePair{}, fmt.Errorf("%s: reference θ has %d values, model has %d: %w",
			opBuildPair, len(ref), want, ErrDimensionMismatch)
	}

	estimated, err := extractFactor(m, factor)
	if err != nil {
		return ShrinkagePair{}, fmt.Errorf("%s: estimated: %w", opBuildPair, err)
	}
	view, err := m.WithCovarianceParams(ref)
	if err != nil {
		return ShrinkagePair{}, fmt.Errorf("%s: reference model: %w", opBuildPair, err)
	}
	if err = checkFitted(view); err != nil {
		return ShrinkagePair{}, fmt.Errorf("%s: reference model: %w", opBuildPair, err)
	}
	reference, err := extractFactor(view, factor)
	if err != nil {
		return ShrinkagePair{}, fmt.Errorf("%s: reference: %w", opBuildPair, err)
	}
	if !slices.Equal(estimated.levels, reference.levels) || !slices.Equal(estimated.columns, reference.columns) {
		return ShrinkagePair{}, fmt.Errorf("%s: reference levels differ: %w", opBuildPair, ErrInconsistentModel)
	}

	return ShrinkagePair{
		Factor:          factor,
		Estimated:       estimated,
		Reference:       reference,
		ReferenceParams: append([]float64(nil), ref...),
	}, nil
}
