// SPDX-License-Identifier: MIT

package lmm

import "github.com/katalvlaran/mixedviz/matrix"

// Term describes the random effects of one grouping factor.
//
//   - Factor : grouping factor name (unique within a model).
//   - Groups : level identifier of every observation (length n).
//   - Columns: random-effect term names (length k), e.g. "(Intercept)", "days".
//   - Z      : per-observation random-effects design, n×k.
type Term struct {
	Factor  string
	Groups  []string
	Columns []string
	Z       *matrix.Dense
}

// Data is the complete input of a linear mixed model.
//
//   - Response  : y, length n.
//   - Fixed     : fixed-effects design X, n×p.
//   - FixedNames: coefficient names (length p); optional.
//   - Random    : one Term per grouping factor; order defines θ layout.
type Data struct {
	Response   []float64
	Fixed      *matrix.Dense
	FixedNames []string
	Random     []Term
}

// Estimates are the externally obtained parameter values of a fitted model.
//
//   - Theta: relative covariance parameters (see package doc for the layout).
//   - Beta : fixed-effects coefficients, length p.
//   - Sigma: residual standard deviation, > 0.
type Estimates struct {
	Theta []float64
	Beta  []float64
	Sigma float64
}

// clone returns a deep copy so callers cannot reach the model's slices.
func (e Estimates) clone() Estimates {
	return Estimates{
		Theta: append([]float64(nil), e.Theta...),
		Beta:  append([]float64(nil), e.Beta...),
		Sigma: e.Sigma,
	}
}

// factor is the validated, level-indexed form of a Term.
type factor struct {
	name    string
	levels  []string      // sorted level ids
	refs    []int         // level index per observation
	columns []string      // k term names
	z       *matrix.Dense // n×k
	offset  int           // first column of this factor in u / Z
	thetaAt int           // first θ index of this factor
}

func (f *factor) k() int { return len(f.columns) }

func (f *factor) nTheta() int { return f.k() * (f.k() + 1) / 2 }

// design is the immutable, shared part of every Model derived from one New call.
type design struct {
	y          []float64
	x          *matrix.Dense
	fixedNames []string
	factors    []*factor
	byName     map[string]int
	q          int           // total random-effects dimension Σ n_f·k_f
	nTheta     int           // total θ length
	zFull      *matrix.Dense // n×q random-effects model matrix
}
