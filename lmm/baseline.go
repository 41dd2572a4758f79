// SPDX-License-Identifier: MIT

package lmm

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/mixedviz/matrix"
)

// GroupwiseLeastSquares fits every level of a factor on its own by ordinary
// least squares: b̂_ℓ = (Z_ℓᵀZ_ℓ)⁻¹ Z_ℓᵀ (y_ℓ − X_ℓβ). The other grouping
// factors are ignored. With a single grouping factor this is the limit the
// conditional modes approach as Λ grows without bound.
//
// The result is an n_f×k table in level order.
//
// Errors: ErrUnknownFactor, ErrNotFitted, ErrSingularGroup (a level with too
// few distinct observations for its k terms).
func (m *Model) GroupwiseLeastSquares(name string) (*matrix.Dense, error) {
	_, f, err := m.lookup(name)
	if err != nil {
		return nil, err
	}
	if !m.fitted {
		return nil, ErrNotFitted
	}

	xb, err := matrix.MatVec(m.d.x, m.est.Beta)
	if err != nil {
		return nil, err
	}

	k := f.k()
	rowsOf := make([][]int, len(f.levels))
	for i, ref := range f.refs {
		rowsOf[ref] = append(rowsOf[ref], i)
	}
	cols := make([]int, k)
	for j := range cols {
		cols[j] = j
	}

	out, err := matrix.NewDense(len(f.levels), k)
	if err != nil {
		return nil, err
	}
	var (
		zl, zlt, ztz, inv *matrix.Dense
		zr, est           []float64
		rl                []float64
	)
	for lvl, rows := range rowsOf {
		if zl, err = f.z.Induced(rows, cols); err != nil {
			return nil, err
		}
		rl = rl[:0]
		for _, i := range rows {
			rl = append(rl, m.d.y[i]-xb[i])
		}
		if zlt, err = matrix.Transpose(zl); err != nil {
			return nil, err
		}
		if ztz, err = matrix.Mul(zlt, zl); err != nil {
			return nil, err
		}
		if inv, err = matrix.Inverse(ztz); err != nil {
			if errors.Is(err, matrix.ErrSingular) {
				return nil, fmt.Errorf("%s level %q: %w", f.name, f.levels[lvl], ErrSingularGroup)
			}

			return nil, err
		}
		if zr, err = matrix.MatVec(zlt, rl); err != nil {
			return nil, err
		}
		if est, err = matrix.MatVec(inv, zr); err != nil {
			return nil, err
		}
		for j, v := range est {
			if err = out.Set(lvl, j, v); err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}
