// SPDX-License-Identifier: MIT

// Package matrix: numeric policy defaults (single source of truth).
package matrix

const (
	// DefaultEpsilon is the non-negative tolerance used by structural checks
	// (symmetry before Cholesky, AllClose in callers).
	DefaultEpsilon = 1e-9

	// DefaultValidateNaNInf toggles strict finite-value validation in Set and
	// in the NewDenseFrom ingestion path.
	DefaultValidateNaNInf = true
)
