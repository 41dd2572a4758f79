// SPDX-License-Identifier: MIT
package simulate_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/mixedviz/simulate"
)

// TestOptionsPanicOnNonsense verifies eager validation in option constructors.
func TestOptionsPanicOnNonsense(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		fn   func()
	}{
		{"groups", func() { simulate.WithGroups(1) }},
		{"occasions", func() { simulate.WithOccasions(1) }},
		{"factor name", func() { simulate.WithFactorName("") }},
		{"fixed NaN", func() { simulate.WithFixed(math.NaN(), 0) }},
		{"sd zero", func() { simulate.WithRandomSD(0, 1, 0) }},
		{"corr one", func() { simulate.WithRandomSD(1, 1, 1) }},
		{"residual", func() { simulate.WithResidualSD(-1) }},
		{"crossed levels", func() { simulate.WithCrossedFactor("item", 1, 1) }},
		{"crossed sd", func() { simulate.WithCrossedFactor("item", 3, -1) }},
		{"crossed name", func() { simulate.WithCrossedFactor("", 3, 1) }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Panics(t, tc.fn)
		})
	}
}

func TestWithFixedAndFactorName(t *testing.T) {
	t.Parallel()
	m, err := simulate.Longitudinal(simulate.WithFixed(1, 2), simulate.WithFactorName("patient"))
	if assert.NoError(t, err) {
		assert.Equal(t, []float64{1, 2}, m.FixedEffects())
		assert.Equal(t, []string{"patient"}, m.GroupingFactors())
	}
}
