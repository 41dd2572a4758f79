// SPDX-License-Identifier: MIT

package ranef

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Sentinel errors. Match with errors.Is.
var (
	// ErrUnfittedModel indicates a nil model or one without converged estimates.
	ErrUnfittedModel = errors.New("ranef: model is not fitted")

	// ErrUnknownGroupingFactor indicates a factor name the model does not have.
	ErrUnknownGroupingFactor = errors.New("ranef: unknown grouping factor")

	// ErrIndexOutOfRange indicates a column index outside 0..k-1 or an
	// invalid row permutation.
	ErrIndexOutOfRange = errors.New("ranef: index out of range")

	// ErrDimensionMismatch indicates vectors or tables of incompatible length.
	ErrDimensionMismatch = errors.New("ranef: dimension mismatch")

	// ErrNonFinite indicates a NaN or ±Inf in a table.
	ErrNonFinite = errors.New("ranef: non-finite value")

	// ErrNegativeStdDev indicates a negative conditional standard deviation.
	ErrNegativeStdDev = errors.New("ranef: negative standard deviation")

	// ErrInconsistentModel indicates that the model returned tables whose
	// shapes or values break the Info invariants.
	ErrInconsistentModel = errors.New("ranef: model returned inconsistent tables")
)

// maxSuggestDistance bounds the edit distance of a "did you mean" hint.
const maxSuggestDistance = 3

// UnknownFactorError reports a factor name missing from the model. It
// matches ErrUnknownGroupingFactor under errors.Is.
type UnknownFactorError struct {
	Factor     string   // requested name
	Known      []string // factors the model does have
	Suggestion string   // closest known name, "" when nothing is close
}

func newUnknownFactorError(name string, known []string) *UnknownFactorError {
	return &UnknownFactorError{
		Factor:     name,
		Known:      append([]string(nil), known...),
		Suggestion: closest(name, known),
	}
}

func (e *UnknownFactorError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %q", ErrUnknownGroupingFactor.Error(), e.Factor)
	if e.Suggestion != "" {
		fmt.Fprintf(&b, " (did you mean %q?)", e.Suggestion)
	} else if len(e.Known) > 0 {
		fmt.Fprintf(&b, " (have %s)", strings.Join(e.Known, ", "))
	}

	return b.String()
}

// Is reports whether target is ErrUnknownGroupingFactor.
func (e *UnknownFactorError) Is(target error) bool {
	return target == ErrUnknownGroupingFactor
}

// closest returns the known name with the smallest edit distance to name,
// or "" when none is within maxSuggestDistance. Ties resolve to the earlier
// name.
func closest(name string, known []string) string {
	best, bestDist := "", maxSuggestDistance+1
	for _, k := range known {
		if d := levenshtein.ComputeDistance(name, k); d < bestDist {
			best, bestDist = k, d
		}
	}

	return best
}
