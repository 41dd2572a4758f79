// SPDX-License-Identifier: MIT

// Package lmm holds an in-memory linear mixed model whose parameter
// estimates were obtained elsewhere, and evaluates the quantities the
// random-effects diagnostics need from it.
//
// Overview:
//
//   - A Model is built from Data: the response y, the fixed-effects design X,
//     and one Term per grouping factor (level id per observation plus the
//     per-observation random-effects design Z_f).
//   - New returns an unfitted model. WithEstimates attaches (θ, β, σ) and
//     returns a fitted copy.
//   - θ parameterizes the relative covariance factor: for every factor (in
//     Data order) the column-major lower triangle of the k×k matrix Λ_f.
//     For k=2 that is Λ11, Λ21, Λ22.
//
// Penalized least squares:
//
//	A = ΛᵀZᵀZΛ + I          (Cholesky factor L)
//	u = A⁻¹ ΛᵀZᵀ(y − Xβ)    (spherical conditional modes)
//	b = Λu                  (conditional modes, one k-vector per level)
//	Var(b | y) = σ² Λ A⁻¹ Λᵀ
//
// WithCovarianceParams re-runs the system at another θ on an independent
// copy, holding β and σ fixed, so a Model is never mutated after
// construction and may be read from any number of goroutines.
//
// Errors (sentinel):
//
//   - ErrBadData        malformed Data (lengths, empty factors, duplicate names).
//   - ErrBadEstimates   non-finite θ/β, negative Λ diagonal, σ ≤ 0.
//   - ErrThetaLength    θ of the wrong length.
//   - ErrNotFitted      estimates requested from an unfitted model.
//   - ErrUnknownFactor  factor name not present in the model.
//   - ErrSingularGroup  a level's cross-product cannot be inverted.
package lmm
