// SPDX-License-Identifier: MIT

package lmm

import "errors"

// Sentinel errors returned by the lmm package. Match with errors.Is.
var (
	// ErrBadData indicates that Data failed validation (mismatched lengths,
	// empty terms, duplicate factor names, non-finite values).
	ErrBadData = errors.New("lmm: invalid model data")

	// ErrBadEstimates indicates non-finite parameters, a negative diagonal
	// element of a relative covariance factor, or a non-positive residual scale.
	ErrBadEstimates = errors.New("lmm: invalid parameter estimates")

	// ErrThetaLength indicates a covariance parameter vector of the wrong length.
	ErrThetaLength = errors.New("lmm: covariance parameter length mismatch")

	// ErrNotFitted indicates that estimates were requested from an unfitted model.
	ErrNotFitted = errors.New("lmm: model has no estimates")

	// ErrUnknownFactor indicates that a grouping factor name is not in the model.
	ErrUnknownFactor = errors.New("lmm: unknown grouping factor")

	// ErrSingularGroup indicates that a level's unpenalized cross-product Z_ℓᵀZ_ℓ
	// is singular, so its least-squares estimate is not identified.
	ErrSingularGroup = errors.New("lmm: singular group cross-product")
)
