// SPDX-License-Identifier: MIT

package ranef

import (
	"fmt"
	"math"

	"github.com/katalvlaran/mixedviz/matrix"
)

// Info summarizes the random effects of one grouping factor.
//
// Invariants (enforced by NewInfo):
//   - Levels, Ranef rows and StdDev rows share n ≥ 1.
//   - ColumnNames, Ranef cols and StdDev cols share k ≥ 1.
//   - Every entry is finite; standard deviations are ≥ 0.
//
// Info is immutable: accessors return copies and Reorder returns a new value.
type Info struct {
	factor  string
	levels  []string
	ranef   *matrix.Dense
	stddev  *matrix.Dense
	columns []string
}

// NewInfo validates and copies its inputs into an Info.
//
// Errors: ErrDimensionMismatch (shapes), ErrNonFinite (NaN/Inf),
// ErrNegativeStdDev.
func NewInfo(factor string, levels, columns []string, ranef, stddev *matrix.Dense) (Info, error) {
	n, k := len(levels), len(columns)
	if n == 0 || k == 0 {
		return Info{}, fmt.Errorf("%s: %d levels, %d columns: %w", factor, n, k, ErrDimensionMismatch)
	}
	if !hasShape(ranef, n, k) {
		return Info{}, fmt.Errorf("%s: ranef must be %d×%d: %w", factor, n, k, ErrDimensionMismatch)
	}
	if !hasShape(stddev, n, k) {
		return Info{}, fmt.Errorf("%s: stddev must be %d×%d: %w", factor, n, k, ErrDimensionMismatch)
	}
	if err := checkFinite(ranef, false); err != nil {
		return Info{}, fmt.Errorf("%s: ranef %w", factor, err)
	}
	if err := checkFinite(stddev, true); err != nil {
		return Info{}, fmt.Errorf("%s: stddev %w", factor, err)
	}

	return Info{
		factor:  factor,
		levels:  append([]string(nil), levels...),
		ranef:   ranef.Clone().(*matrix.Dense),
		stddev:  stddev.Clone().(*matrix.Dense),
		columns: append([]string(nil), columns...),
	}, nil
}

func hasShape(t *matrix.Dense, r, c int) bool {
	return t != nil && t.Rows() == r && t.Cols() == c
}

// checkFinite scans t for NaN/Inf (and negatives when nonNegative is set).
func checkFinite(t *matrix.Dense, nonNegative bool) error {
	var err error
	t.Do(func(i, j int, v float64) bool {
		switch {
		case math.IsNaN(v) || math.IsInf(v, 0):
			err = fmt.Errorf("(%d,%d)=%g: %w", i, j, v, ErrNonFinite)
		case nonNegative && v < 0:
			err = fmt.Errorf("(%d,%d)=%g: %w", i, j, v, ErrNegativeStdDev)
		}
		return err == nil
	})

	return err
}

// Factor returns the grouping factor name.
func (in Info) Factor() string { return in.factor }

// Len returns n, the number of levels.
func (in Info) Len() int { return len(in.levels) }

// NumTerms returns k, the number of random-effect terms.
func (in Info) NumTerms() int { return len(in.columns) }

// Levels returns a copy of the level ids in row order.
func (in Info) Levels() []string { return append([]string(nil), in.levels...) }

// ColumnNames returns a copy of the term names.
func (in Info) ColumnNames() []string { return append([]string(nil), in.columns...) }

// Ranef returns a copy of the n×k conditional means (nil for the zero Info).
func (in Info) Ranef() *matrix.Dense { return cloneOrNil(in.ranef) }

// StdDev returns a copy of the n×k conditional standard deviations.
func (in Info) StdDev() *matrix.Dense { return cloneOrNil(in.stddev) }

func cloneOrNil(t *matrix.Dense) *matrix.Dense {
	if t == nil {
		return nil
	}

	return t.Clone().(*matrix.Dense)
}

// Column returns the conditional means of term c for every level.
// Errors: ErrIndexOutOfRange.
func (in Info) Column(c int) ([]float64, error) {
	if c < 0 || c >= len(in.columns) {
		return nil, fmt.Errorf("column %d of %d: %w", c, len(in.columns), ErrIndexOutOfRange)
	}
	out := make([]float64, len(in.levels))
	var err error
	for i := range out {
		if out[i], err = in.ranef.At(i, c); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// Row returns level i's id, means and standard deviations.
// Errors: ErrIndexOutOfRange.
func (in Info) Row(i int) (string, []float64, []float64, error) {
	if i < 0 || i >= len(in.levels) {
		return "", nil, nil, fmt.Errorf("row %d of %d: %w", i, len(in.levels), ErrIndexOutOfRange)
	}
	means, err := in.ranef.Row(i)
	if err != nil {
		return "", nil, nil, err
	}
	sds, err := in.stddev.Row(i)
	if err != nil {
		return "", nil, nil, err
	}

	return in.levels[i], means, sds, nil
}

// Reorder returns a new Info whose row r is row perm[r] of the receiver.
// Errors: ErrDimensionMismatch (zero Info or len(perm) ≠ n),
// ErrIndexOutOfRange (perm is not a permutation of 0..n-1).
func (in Info) Reorder(perm []int) (Info, error) {
	if in.ranef == nil || in.stddev == nil {
		return Info{}, fmt.Errorf("reorder of an empty Info: %w", ErrDimensionMismatch)
	}
	n := len(in.levels)
	if len(perm) != n {
		return Info{}, fmt.Errorf("perm length %d, want %d: %w", len(perm), n, ErrDimensionMismatch)
	}
	seen := make([]bool, n)
	for _, p := range perm {
		if p < 0 || p >= n || seen[p] {
			return Info{}, fmt.Errorf("perm entry %d: %w", p, ErrIndexOutOfRange)
		}
		seen[p] = true
	}

	cols := make([]int, len(in.columns))
	for j := range cols {
		cols[j] = j
	}
	ranef, err := in.ranef.Induced(perm, cols)
	if err != nil {
		return Info{}, err
	}
	stddev, err := in.stddev.Induced(perm, cols)
	if err != nil {
		return Info{}, err
	}
	levels := make([]string, n)
	for r, p := range perm {
		levels[r] = in.levels[p]
	}

	return Info{
		factor:  in.factor,
		levels:  levels,
		ranef:   ranef,
		stddev:  stddev,
		columns: append([]string(nil), in.columns...),
	}, nil
}
