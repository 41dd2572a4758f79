// SPDX-License-Identifier: MIT

package lmm

import (
	"fmt"

	"github.com/katalvlaran/mixedviz/matrix"
)

// Stage tags used when wrapping matrix errors raised by the solve.
const (
	stageResidual = "residual"
	stageLambda   = "lambda"
	stageSystem   = "system"
	stageFactor   = "cholesky"
	stageModes    = "modes"
)

func solveErrorf(stage string, err error) error {
	return fmt.Errorf("lmm: solve %s: %w", stage, err)
}

// solve evaluates the penalized least-squares system at m.est and fills
// lambdas, modes and sph.
//
// Implementation:
//   - Stage 1: r = y − Xβ.
//   - Stage 2: Λ_f from θ; block-diagonal Λ (q×q) with one Λ_f per level.
//   - Stage 3: A = (ZΛ)ᵀ(ZΛ) + I, factor A = LLᵀ.
//   - Stage 4: u = A⁻¹(ZΛ)ᵀr; b_ℓ = Λ_f·u_ℓ; S_ℓ = block of A⁻¹ at level ℓ.
//
// Complexity: dominated by the q×q factorization and inverse, O(q³).
func (m *Model) solve() error {
	d := m.d

	xb, err := matrix.MatVec(d.x, m.est.Beta)
	if err != nil {
		return solveErrorf(stageResidual, err)
	}
	r := make([]float64, len(d.y))
	for i := range r {
		r[i] = d.y[i] - xb[i]
	}

	m.lambdas = make([]*matrix.Dense, len(d.factors))
	lambda, err := matrix.NewDense(d.q, d.q)
	if err != nil {
		return solveErrorf(stageLambda, err)
	}
	var lvl, i, j int
	var base int
	var lf *matrix.Dense
	var v float64
	for fi, f := range d.factors {
		if lf, err = lambdaFactor(f, m.est.Theta); err != nil {
			return solveErrorf(stageLambda, err)
		}
		m.lambdas[fi] = lf
		k := f.k()
		for lvl = range f.levels {
			base = f.offset + lvl*k
			for i = 0; i < k; i++ {
				for j = 0; j <= i; j++ {
					if v, err = lf.At(i, j); err != nil {
						return solveErrorf(stageLambda, err)
					}
					if err = lambda.Set(base+i, base+j, v); err != nil {
						return solveErrorf(stageLambda, err)
					}
				}
			}
		}
	}

	zl, err := matrix.Mul(d.zFull, lambda)
	if err != nil {
		return solveErrorf(stageSystem, err)
	}
	zlt, err := matrix.Transpose(zl)
	if err != nil {
		return solveErrorf(stageSystem, err)
	}
	cross, err := matrix.Mul(zlt, zl)
	if err != nil {
		return solveErrorf(stageSystem, err)
	}
	eye, err := matrix.NewIdentity(d.q)
	if err != nil {
		return solveErrorf(stageSystem, err)
	}
	a, err := matrix.Add(cross, eye)
	if err != nil {
		return solveErrorf(stageSystem, err)
	}

	l, err := matrix.Cholesky(a)
	if err != nil {
		return solveErrorf(stageFactor, err)
	}
	rhs, err := matrix.MatVec(zlt, r)
	if err != nil {
		return solveErrorf(stageModes, err)
	}
	u, err := matrix.CholeskySolve(l, rhs)
	if err != nil {
		return solveErrorf(stageModes, err)
	}
	ainv, err := matrix.CholeskyInverse(l)
	if err != nil {
		return solveErrorf(stageModes, err)
	}

	m.modes = make([]*matrix.Dense, len(d.factors))
	m.sph = make([][]*matrix.Dense, len(d.factors))
	for fi, f := range d.factors {
		if m.modes[fi], m.sph[fi], err = levelBlocks(f, m.lambdas[fi], u, ainv); err != nil {
			return solveErrorf(stageModes, err)
		}
	}

	return nil
}

// lambdaFactor unpacks the column-major lower triangle of Λ_f from θ.
func lambdaFactor(f *factor, theta []float64) (*matrix.Dense, error) {
	k := f.k()
	lf, err := matrix.NewDense(k, k)
	if err != nil {
		return nil, err
	}
	pos := f.thetaAt
	var i, j int
	for j = 0; j < k; j++ {
		for i = j; i < k; i++ {
			if err = lf.Set(i, j, theta[pos]); err != nil {
				return nil, err
			}
			pos++
		}
	}

	return lf, nil
}

// levelBlocks maps the spherical modes u back to b = Λ_f·u_ℓ for every level
// of f and cuts the level's k×k diagonal block out of A⁻¹.
func levelBlocks(f *factor, lf *matrix.Dense, u []float64, ainv *matrix.Dense) (*matrix.Dense, []*matrix.Dense, error) {
	k := f.k()
	modes, err := matrix.NewDense(len(f.levels), k)
	if err != nil {
		return nil, nil, err
	}
	blocks := make([]*matrix.Dense, len(f.levels))
	idx := make([]int, k)
	var lvl, j, base int
	var b []float64
	for lvl = range f.levels {
		base = f.offset + lvl*k
		if b, err = matrix.MatVec(lf, u[base:base+k]); err != nil {
			return nil, nil, err
		}
		for j = 0; j < k; j++ {
			if err = modes.Set(lvl, j, b[j]); err != nil {
				return nil, nil, err
			}
			idx[j] = base + j
		}
		if blocks[lvl], err = ainv.Induced(idx, idx); err != nil {
			return nil, nil, err
		}
	}

	return modes, blocks, nil
}
