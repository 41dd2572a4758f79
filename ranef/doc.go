// SPDX-License-Identifier: MIT

// Package ranef extracts and arranges the random-effect summaries of a
// fitted linear mixed model for two diagnostics: the caterpillar plot
// (conditional means with prediction intervals, one row per level) and the
// shrinkage plot (conditional means at the fitted covariance parameters
// against the same quantities at a reference parameter vector that
// effectively removes the penalty).
//
// What:
//
//   - FittedModel is the narrow capability set a model must offer.
//     *lmm.Model implements it; tests may supply their own.
//   - Info is the per-factor table: level ids, conditional means (n×k),
//     conditional standard deviations (n×k) and the k term names.
//   - Extract / ExtractFactor build Info tables from a model.
//   - Order / OrderBy compute a stable display order of the rows.
//   - BuildPair produces a ShrinkagePair (estimated vs reference table).
//
// Conditional standard deviations:
//
//	V_ℓ = σ² · Λ_f · S_ℓ · Λ_fᵀ,   sd_ℓ = sqrt(diag V_ℓ)
//
// where S_ℓ is the k×k block of (ΛᵀZᵀZΛ + I)⁻¹ that belongs to level ℓ.
//
// Reference parameters:
//
// The default reference θ puts DefaultReferenceScale on every diagonal
// position of every Λ_f and zero elsewhere (Λ = 10 000·I). At that point
// the penalty is negligible and the conditional means are close to
// per-level least-squares estimates.
//
// Determinism & side effects:
//
//   - Every operation is a pure function of the model. The model is never
//     mutated: the reference table is computed on the independent view
//     returned by FittedModel.WithCovarianceParams.
//   - Ordering uses a stable sort, so ties keep level order.
//   - Extract may run factors on several goroutines (WithConcurrency); the
//     result does not depend on the degree of parallelism.
//
// Errors:
//
//   - ErrUnfittedModel         model is nil or not converged.
//   - ErrUnknownGroupingFactor factor not in the model (*UnknownFactorError).
//   - ErrIndexOutOfRange       ordering column outside 0..k-1, bad permutation.
//   - ErrDimensionMismatch     reference θ length or table shapes disagree.
//   - ErrNonFinite, ErrNegativeStdDev  table values rejected by NewInfo.
//   - ErrInconsistentModel     the model returned tables that break the Info
//     invariants (shape, NaN/Inf).
package ranef
