// SPDX-License-Identifier: MIT
package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/mixedviz/matrix"
)

func TestCholeskyKnownFactor(t *testing.T) {
	t.Parallel()

	L, err := matrix.Cholesky(spd3(t))
	require.NoError(t, err)
	requireClose(t, NewFilledDense(t, 3, 3, []float64{
		2, 0, 0,
		6, 1, 0,
		-8, 5, 3,
	}), L, 1e-12)
}

func TestCholeskyErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		m    matrix.Matrix
		want error
	}{
		{"nil", nil, matrix.ErrNilMatrix},
		{"not square", NewFilledDense(t, 2, 3, make([]float64, 6)), matrix.ErrDimensionMismatch},
		{"asymmetric", NewFilledDense(t, 2, 2, []float64{1, 2, 0, 1}), matrix.ErrAsymmetry},
		{"indefinite", NewFilledDense(t, 2, 2, []float64{1, 2, 2, 1}), matrix.ErrNotPositiveDefinite},
		{"zero", NewFilledDense(t, 2, 2, []float64{0, 0, 0, 0}), matrix.ErrNotPositiveDefinite},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := matrix.Cholesky(tc.m)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestCholeskySolveAndInverse(t *testing.T) {
	t.Parallel()
	a := spd3(t)
	L, err := matrix.Cholesky(hide{a})
	require.NoError(t, err)

	x, err := matrix.CholeskySolve(L, []float64{1, 2, 3})
	require.NoError(t, err)
	ax, err := matrix.MatVec(a, x)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 2, 3}, ax, 1e-9)

	inv, err := matrix.CholeskyInverse(L)
	require.NoError(t, err)
	require.NoError(t, matrix.ValidateSymmetric(inv, 0), "inverse is symmetrized exactly")

	lu, err := matrix.Inverse(a)
	require.NoError(t, err)
	requireClose(t, lu, inv, 1e-9)

	_, err = matrix.CholeskySolve(L, []float64{1})
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestTriangularSolves(t *testing.T) {
	t.Parallel()
	L := NewFilledDense(t, 2, 2, []float64{2, 0, 1, 4})

	y, err := matrix.SolveLower(L, []float64{4, 10})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{2, 2}, y, 1e-15)

	x, err := matrix.SolveLowerT(L, []float64{5, 8})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1.5, 2}, x, 1e-15) // Lᵀ = [[2,1],[0,4]]

	_, err = matrix.SolveLower(NewFilledDense(t, 2, 2, []float64{0, 0, 1, 1}), []float64{1, 1})
	assert.ErrorIs(t, err, matrix.ErrSingular)
}
