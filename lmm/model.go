// SPDX-License-Identifier: MIT

package lmm

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/mixedviz/matrix"
)

// Model is a linear mixed model with (optionally) attached estimates.
// A Model is immutable: every method either reads or returns a new Model.
type Model struct {
	d      *design
	fitted bool
	est    Estimates

	// Populated by solve() for fitted models, indexed like d.factors.
	lambdas []*matrix.Dense   // Λ_f, k×k lower-triangular
	modes   []*matrix.Dense   // b per factor, n_f×k
	sph     [][]*matrix.Dense // per factor, per level k×k block of A⁻¹
}

// New validates data and returns an unfitted Model.
//
// Levels of every factor are sorted lexicographically; that order is the one
// every table derived from the model reports.
//
// Errors: ErrBadData (wrapped with the offending field).
func New(data Data) (*Model, error) {
	n := len(data.Response)
	if n == 0 {
		return nil, fmt.Errorf("Response: empty: %w", ErrBadData)
	}
	for i, v := range data.Response {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("Response[%d]: %w", i, ErrBadData)
		}
	}
	if data.Fixed == nil || data.Fixed.Rows() != n {
		return nil, fmt.Errorf("Fixed: want %d rows: %w", n, ErrBadData)
	}
	if data.FixedNames != nil && len(data.FixedNames) != data.Fixed.Cols() {
		return nil, fmt.Errorf("FixedNames: want %d names: %w", data.Fixed.Cols(), ErrBadData)
	}
	if len(data.Random) == 0 {
		return nil, fmt.Errorf("Random: no grouping factors: %w", ErrBadData)
	}

	d := &design{
		y:          append([]float64(nil), data.Response...),
		x:          data.Fixed.Clone().(*matrix.Dense),
		fixedNames: append([]string(nil), data.FixedNames...),
		byName:     make(map[string]int, len(data.Random)),
	}
	for idx, t := range data.Random {
		f, err := newFactor(t, n)
		if err != nil {
			return nil, err
		}
		if _, dup := d.byName[f.name]; dup {
			return nil, fmt.Errorf("Random[%d]: duplicate factor %q: %w", idx, f.name, ErrBadData)
		}
		f.offset = d.q
		f.thetaAt = d.nTheta
		d.q += len(f.levels) * f.k()
		d.nTheta += f.nTheta()
		d.byName[f.name] = idx
		d.factors = append(d.factors, f)
	}

	zFull, err := assembleZ(d, n)
	if err != nil {
		return nil, err
	}
	d.zFull = zFull

	return &Model{d: d}, nil
}

// newFactor validates one Term and indexes its levels.
func newFactor(t Term, n int) (*factor, error) {
	if t.Factor == "" {
		return nil, fmt.Errorf("Term: empty factor name: %w", ErrBadData)
	}
	if len(t.Groups) != n {
		return nil, fmt.Errorf("Term %q: want %d group ids: %w", t.Factor, n, ErrBadData)
	}
	if t.Z == nil || t.Z.Rows() != n || t.Z.Cols() != len(t.Columns) || len(t.Columns) == 0 {
		return nil, fmt.Errorf("Term %q: Z must be %d×%d: %w", t.Factor, n, len(t.Columns), ErrBadData)
	}

	seen := make(map[string]struct{})
	for i, g := range t.Groups {
		if g == "" {
			return nil, fmt.Errorf("Term %q: empty group id at %d: %w", t.Factor, i, ErrBadData)
		}
		seen[g] = struct{}{}
	}
	levels := make([]string, 0, len(seen))
	for g := range seen {
		levels = append(levels, g)
	}
	sort.Strings(levels)

	index := make(map[string]int, len(levels))
	for i, l := range levels {
		index[l] = i
	}
	refs := make([]int, n)
	for i, g := range t.Groups {
		refs[i] = index[g]
	}

	return &factor{
		name:    t.Factor,
		levels:  levels,
		refs:    refs,
		columns: append([]string(nil), t.Columns...),
		z:       t.Z.Clone().(*matrix.Dense),
	}, nil
}

// assembleZ scatters every factor's n×k design into the n×q model matrix:
// observation i, level ℓ of factor f, term j → column offset_f + ℓ·k + j.
func assembleZ(d *design, n int) (*matrix.Dense, error) {
	z, err := matrix.NewDense(n, d.q)
	if err != nil {
		return nil, fmt.Errorf("Z: %w", err)
	}
	var i, j int
	var row []float64
	for _, f := range d.factors {
		k := f.k()
		for i = 0; i < n; i++ {
			if row, err = f.z.Row(i); err != nil {
				return nil, err
			}
			for j = 0; j < k; j++ {
				if err = z.Set(i, f.offset+f.refs[i]*k+j, row[j]); err != nil {
					return nil, err
				}
			}
		}
	}

	return z, nil
}

// WithEstimates returns a fitted copy of m carrying est. The receiver is not
// modified.
//
// Errors: ErrThetaLength, ErrBadEstimates, or a wrapped matrix error from the
// penalized least-squares solve.
func (m *Model) WithEstimates(est Estimates) (*Model, error) {
	if len(est.Theta) != m.d.nTheta {
		return nil, fmt.Errorf("Theta: got %d, want %d: %w", len(est.Theta), m.d.nTheta, ErrThetaLength)
	}
	if len(est.Beta) != m.d.x.Cols() {
		return nil, fmt.Errorf("Beta: got %d, want %d: %w", len(est.Beta), m.d.x.Cols(), ErrBadEstimates)
	}
	if math.IsNaN(est.Sigma) || math.IsInf(est.Sigma, 0) || est.Sigma <= 0 {
		return nil, fmt.Errorf("Sigma=%g: %w", est.Sigma, ErrBadEstimates)
	}
	for i, v := range est.Beta {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("Beta[%d]: %w", i, ErrBadEstimates)
		}
	}
	if err := m.checkTheta(est.Theta); err != nil {
		return nil, err
	}

	out := &Model{d: m.d, fitted: true, est: est.clone()}
	if err := out.solve(); err != nil {
		return nil, err
	}

	return out, nil
}

// Refit evaluates the model at another covariance parameter vector, holding
// β and σ fixed, and returns the result as an independent Model.
//
// Errors: ErrNotFitted, ErrThetaLength, ErrBadEstimates.
func (m *Model) Refit(theta []float64) (*Model, error) {
	if !m.fitted {
		return nil, ErrNotFitted
	}
	est := m.est.clone()
	est.Theta = append([]float64(nil), theta...)

	return m.WithEstimates(est)
}

// checkTheta requires finite values and a non-negative diagonal of every Λ_f.
func (m *Model) checkTheta(theta []float64) error {
	for i, v := range theta {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("Theta[%d]: %w", i, ErrBadEstimates)
		}
	}
	for _, f := range m.d.factors {
		pos := f.thetaAt
		for j := 0; j < f.k(); j++ {
			if theta[pos] < 0 {
				return fmt.Errorf("Theta[%d] (diagonal of %q): %w", pos, f.name, ErrBadEstimates)
			}
			pos += f.k() - j
		}
	}

	return nil
}

// lookup resolves a factor name.
func (m *Model) lookup(name string) (int, *factor, error) {
	idx, ok := m.d.byName[name]
	if !ok {
		return 0, nil, fmt.Errorf("%q: %w", name, ErrUnknownFactor)
	}

	return idx, m.d.factors[idx], nil
}

// Converged reports whether the model carries estimates.
func (m *Model) Converged() bool { return m != nil && m.fitted }

// NumObs returns the number of observations.
func (m *Model) NumObs() int { return len(m.d.y) }

// GroupingFactors returns the factor names in Data order.
func (m *Model) GroupingFactors() []string {
	out := make([]string, len(m.d.factors))
	for i, f := range m.d.factors {
		out[i] = f.name
	}

	return out
}

// Levels returns the sorted level ids of a factor.
func (m *Model) Levels(name string) ([]string, error) {
	_, f, err := m.lookup(name)
	if err != nil {
		return nil, err
	}

	return append([]string(nil), f.levels...), nil
}

// TermNames returns the random-effect term names of a factor.
func (m *Model) TermNames(name string) ([]string, error) {
	_, f, err := m.lookup(name)
	if err != nil {
		return nil, err
	}

	return append([]string(nil), f.columns...), nil
}

// FixedNames returns the fixed-effects coefficient names (may be empty).
func (m *Model) FixedNames() []string { return append([]string(nil), m.d.fixedNames...) }

// CovarianceParams returns a copy of θ (nil when unfitted).
func (m *Model) CovarianceParams() []float64 {
	if !m.fitted {
		return nil
	}

	return append([]float64(nil), m.est.Theta...)
}

// NumCovarianceParams returns the length θ must have.
func (m *Model) NumCovarianceParams() int { return m.d.nTheta }

// InitialCovarianceParams returns the θ for which every Λ_f is the identity.
func (m *Model) InitialCovarianceParams() []float64 {
	theta := make([]float64, m.d.nTheta)
	for _, f := range m.d.factors {
		pos := f.thetaAt
		for j := 0; j < f.k(); j++ {
			theta[pos] = 1
			pos += f.k() - j
		}
	}

	return theta
}

// FixedEffects returns a copy of β (nil when unfitted).
func (m *Model) FixedEffects() []float64 {
	if !m.fitted {
		return nil
	}

	return append([]float64(nil), m.est.Beta...)
}

// ResidualScale returns σ (0 when unfitted).
func (m *Model) ResidualScale() float64 {
	if !m.fitted {
		return 0
	}

	return m.est.Sigma
}

// ConditionalModes returns b for a factor as an n_f×k table (a copy).
func (m *Model) ConditionalModes(name string) (*matrix.Dense, error) {
	idx, _, err := m.lookup(name)
	if err != nil {
		return nil, err
	}
	if !m.fitted {
		return nil, ErrNotFitted
	}

	return m.modes[idx].Clone().(*matrix.Dense), nil
}

// CovarianceFactor returns Λ_f (a copy).
func (m *Model) CovarianceFactor(name string) (*matrix.Dense, error) {
	idx, _, err := m.lookup(name)
	if err != nil {
		return nil, err
	}
	if !m.fitted {
		return nil, ErrNotFitted
	}

	return m.lambdas[idx].Clone().(*matrix.Dense), nil
}

// SphericalCovariances returns, per level, the k×k diagonal block of A⁻¹
// belonging to that level (copies). Scaled by σ² and mapped through Λ_f they
// give the conditional covariance of the level's random effects.
func (m *Model) SphericalCovariances(name string) ([]*matrix.Dense, error) {
	idx, _, err := m.lookup(name)
	if err != nil {
		return nil, err
	}
	if !m.fitted {
		return nil, ErrNotFitted
	}
	out := make([]*matrix.Dense, len(m.sph[idx]))
	for i, s := range m.sph[idx] {
		out[i] = s.Clone().(*matrix.Dense)
	}

	return out, nil
}
