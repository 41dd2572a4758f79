// SPDX-License-Identifier: MIT
// Package matrix - Cholesky factorization and triangular solves.
//
// Purpose:
//   - Factor symmetric positive definite (SPD) systems A = L·Lᵀ, the natural
//     decomposition of a penalized cross-product ΛᵀZᵀZΛ + I.
//   - Solve A·x = b and form A⁻¹ from the factor without pivoting (SPD needs none).
//
// Determinism:
//   - Fixed loop orders (column-by-column factorization, top-down / bottom-up solves).

package matrix

import (
	"fmt"
	"math"
)

const (
	opCholesky        = "Cholesky"
	opSolveLower      = "SolveLower"
	opSolveLowerT     = "SolveLowerT"
	opCholeskySolve   = "CholeskySolve"
	opCholeskyInverse = "CholeskyInverse"
)

// Cholesky computes the lower-triangular L with A = L·Lᵀ.
//
// Implementation:
//   - Stage 1: validate non-nil, square and symmetric within DefaultEpsilon (relative).
//   - Stage 2: for j=0..n-1: L[j,j] = sqrt(A[j,j] − Σ_k L[j,k]²), then
//     L[i,j] = (A[i,j] − Σ_k L[i,k]·L[j,k]) / L[j,j] for i>j.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrAsymmetry.
//   - ErrNotPositiveDefinite when a pivot is ≤ 0 or not finite.
//
// Complexity:
//   - Time O(n³/3), Space O(n²).
func Cholesky(m Matrix) (*Dense, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return nil, matrixErrorf(opCholesky, err)
	}
	if err := ValidateSymmetric(m, DefaultEpsilon); err != nil {
		return nil, matrixErrorf(opCholesky, err)
	}
	a, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opCholesky, err)
	}

	n := a.r
	L, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opCholesky, err)
	}

	var (
		i, j, k int
		sum     float64
		pivot   float64
	)
	for j = 0; j < n; j++ {
		sum = a.data[j*n+j]
		for k = 0; k < j; k++ {
			sum -= L.data[j*n+k] * L.data[j*n+k]
		}
		if !(sum > 0) || math.IsInf(sum, 0) { // also rejects NaN
			return nil, matrixErrorf(opCholesky, fmt.Errorf("pivot %d: %w", j, ErrNotPositiveDefinite))
		}
		pivot = math.Sqrt(sum)
		L.data[j*n+j] = pivot
		for i = j + 1; i < n; i++ {
			sum = a.data[i*n+j]
			for k = 0; k < j; k++ {
				sum -= L.data[i*n+k] * L.data[j*n+k]
			}
			L.data[i*n+j] = sum / pivot
		}
	}

	return L, nil
}

// SolveLower solves L·y = b by forward substitution for lower-triangular L.
// Only the lower triangle of L is read.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch, ErrSingular (zero diagonal).
// Complexity: O(n²).
func SolveLower(l Matrix, b []float64) ([]float64, error) {
	if err := ValidateSquareNonNil(l); err != nil {
		return nil, matrixErrorf(opSolveLower, err)
	}
	if err := ValidateVecLen(b, l.Rows()); err != nil {
		return nil, matrixErrorf(opSolveLower, err)
	}
	L, err := asDense(l)
	if err != nil {
		return nil, matrixErrorf(opSolveLower, err)
	}

	n := L.r
	y := make([]float64, n)
	var i, k int
	var sum float64
	for i = 0; i < n; i++ {
		sum = b[i]
		for k = 0; k < i; k++ {
			sum -= L.data[i*n+k] * y[k]
		}
		if L.data[i*n+i] == ZeroPivot {
			return nil, matrixErrorf(opSolveLower, ErrSingular)
		}
		y[i] = sum / L.data[i*n+i]
	}

	return y, nil
}

// SolveLowerT solves Lᵀ·x = y by backward substitution for lower-triangular L,
// without materializing Lᵀ.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch, ErrSingular (zero diagonal).
// Complexity: O(n²).
func SolveLowerT(l Matrix, y []float64) ([]float64, error) {
	if err := ValidateSquareNonNil(l); err != nil {
		return nil, matrixErrorf(opSolveLowerT, err)
	}
	if err := ValidateVecLen(y, l.Rows()); err != nil {
		return nil, matrixErrorf(opSolveLowerT, err)
	}
	L, err := asDense(l)
	if err != nil {
		return nil, matrixErrorf(opSolveLowerT, err)
	}

	n := L.r
	x := make([]float64, n)
	var i, k int
	var sum float64
	for i = n - 1; i >= 0; i-- {
		sum = y[i]
		for k = i + 1; k < n; k++ {
			sum -= L.data[k*n+i] * x[k] // Lᵀ[i,k] == L[k,i]
		}
		if L.data[i*n+i] == ZeroPivot {
			return nil, matrixErrorf(opSolveLowerT, ErrSingular)
		}
		x[i] = sum / L.data[i*n+i]
	}

	return x, nil
}

// CholeskySolve solves A·x = b given the Cholesky factor L of A.
// Complexity: O(n²).
func CholeskySolve(l Matrix, b []float64) ([]float64, error) {
	y, err := SolveLower(l, b)
	if err != nil {
		return nil, matrixErrorf(opCholeskySolve, err)
	}
	x, err := SolveLowerT(l, y)
	if err != nil {
		return nil, matrixErrorf(opCholeskySolve, err)
	}

	return x, nil
}

// CholeskyInverse forms A⁻¹ from the Cholesky factor L of A by solving
// A·x = e_col for each basis column. The result is symmetrized exactly
// (upper triangle mirrored from the lower) so downstream symmetry checks
// never trip over round-off.
//
// Complexity: Time O(n³), Space O(n²).
func CholeskyInverse(l Matrix) (*Dense, error) {
	if err := ValidateSquareNonNil(l); err != nil {
		return nil, matrixErrorf(opCholeskyInverse, err)
	}
	n := l.Rows()
	inv, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opCholeskyInverse, err)
	}

	e := make([]float64, n)
	var col, i int
	var x []float64
	for col = 0; col < n; col++ {
		for i = range e {
			e[i] = 0
		}
		e[col] = 1
		if x, err = CholeskySolve(l, e); err != nil {
			return nil, matrixErrorf(opCholeskyInverse, err)
		}
		for i = col; i < n; i++ {
			inv.data[i*n+col] = x[i]
			inv.data[col*n+i] = x[i]
		}
	}

	return inv, nil
}
