// SPDX-License-Identifier: MIT

// Package matrix offers the dense linear algebra used by the mixed-model
// diagnostics in this module.
//
// The matrix package provides:
//
//   - Dense, a row-major float64 matrix with error-returning accessors and a
//     finite-only numeric policy.
//   - Kernels: Add, Sub, Mul, Transpose, Scale, MatVec.
//   - Factorizations: LU (Doolittle, no pivoting) with Inverse, and Cholesky
//     with triangular solves for symmetric positive definite systems such as
//     the penalized least-squares system of a linear mixed model.
//
// Every kernel allocates a fresh result and never mutates its operands, so a
// matrix shared between goroutines may be read concurrently.
//
// See the examples in this package for usage patterns.
package matrix
