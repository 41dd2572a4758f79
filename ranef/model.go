// SPDX-License-Identifier: MIT

package ranef

import (
	"slices"

	"github.com/katalvlaran/mixedviz/matrix"
)

// FittedModel is the capability set the extractor needs from a fitted
// linear mixed model.
//
// Contract:
//   - GroupingFactors is ordered and defines the θ layout: every factor, in
//     that order, contributes the column-major lower triangle of its k×k
//     relative covariance factor Λ_f (k(k+1)/2 values).
//   - Levels / TermNames / ConditionalModes / SphericalCovariances agree on
//     n (levels) and k (terms) for one factor.
//   - Returned slices and matrices are owned by the caller.
//   - WithCovarianceParams returns an independent view; the receiver is
//     not modified.
type FittedModel interface {
	Converged() bool
	GroupingFactors() []string
	Levels(factor string) ([]string, error)
	TermNames(factor string) ([]string, error)
	ConditionalModes(factor string) (*matrix.Dense, error)
	CovarianceFactor(factor string) (*matrix.Dense, error)
	SphericalCovariances(factor string) ([]*matrix.Dense, error)
	ResidualScale() float64
	CovarianceParams() []float64
	WithCovarianceParams(theta []float64) (FittedModel, error)
}

// checkFitted fails fast on nil or unconverged models.
func checkFitted(m FittedModel) error {
	if m == nil || !m.Converged() {
		return ErrUnfittedModel
	}

	return nil
}

// checkFactor returns an *UnknownFactorError unless factor is in the model.
func checkFactor(m FittedModel, factor string) error {
	known := m.GroupingFactors()
	if !slices.Contains(known, factor) {
		return newUnknownFactorError(factor, known)
	}

	return nil
}
