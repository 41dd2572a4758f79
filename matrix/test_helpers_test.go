// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers.
//
// Purpose:
//   • Provide small, deterministic fixtures for the kernels.
//   • Keep all data finite and well-formed to avoid numeric-policy interference.

package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/mixedviz/matrix"
)

// hide wraps any Matrix to hide its concrete type, forcing the asDense
// materialization path inside the kernels.
type hide struct{ matrix.Matrix }

// NewFilledDense builds an r×c *Dense from row-major vals or fails the test.
func NewFilledDense(t *testing.T, r, c int, vals []float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFrom(r, c, vals)
	require.NoError(t, err)

	return m
}

// spd3 is a fixed symmetric positive definite 3×3 fixture.
func spd3(t *testing.T) *matrix.Dense {
	t.Helper()

	return NewFilledDense(t, 3, 3, []float64{
		4, 12, -16,
		12, 37, -43,
		-16, -43, 98,
	})
}

// requireClose asserts element-wise closeness with a fixed tolerance.
func requireClose(t *testing.T, want, got matrix.Matrix, tol float64) {
	t.Helper()
	ok, err := matrix.AllClose(got, want, tol, tol)
	require.NoError(t, err)
	require.Truef(t, ok, "want\n%v\ngot\n%v", want, got)
}
