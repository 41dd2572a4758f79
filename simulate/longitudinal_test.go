// SPDX-License-Identifier: MIT
package simulate_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/mixedviz/simulate"
)

func TestLongitudinalDefaults(t *testing.T) {
	t.Parallel()
	m, err := simulate.Longitudinal()
	require.NoError(t, err)

	assert.True(t, m.Converged())
	assert.Equal(t, []string{simulate.DefaultFactorName}, m.GroupingFactors())
	assert.Equal(t, simulate.DefaultGroups*simulate.DefaultOccasions, m.NumObs())
	assert.Equal(t, []float64{251.4, 10.5}, m.FixedEffects())
	assert.Equal(t, 25.6, m.ResidualScale())

	levels, err := m.Levels("subj")
	require.NoError(t, err)
	require.Len(t, levels, 18)
	assert.Equal(t, "S01", levels[0])
	assert.Equal(t, "S10", levels[9])

	terms, err := m.TermNames("subj")
	require.NoError(t, err)
	assert.Equal(t, []string{simulate.InterceptName, simulate.SlopeName}, terms)
}

// θ is chol(Σ)/σ: Λ11 = sd₀/σ, Λ21 = ρ·sd₁/σ, Λ22 = sd₁·sqrt(1−ρ²)/σ.
func TestLongitudinalOracleTheta(t *testing.T) {
	t.Parallel()
	_, est, err := simulate.LongitudinalData(
		simulate.WithRandomSD(20, 4, 0.5),
		simulate.WithResidualSD(10),
	)
	require.NoError(t, err)

	require.Len(t, est.Theta, 3)
	assert.InDelta(t, 2.0, est.Theta[0], 1e-12)
	assert.InDelta(t, 0.2, est.Theta[1], 1e-12)
	assert.InDelta(t, 0.4*math.Sqrt(0.75), est.Theta[2], 1e-12)
	assert.Equal(t, 10.0, est.Sigma)
}

func TestLongitudinalIsDeterministic(t *testing.T) {
	t.Parallel()
	a, _, err := simulate.LongitudinalData(simulate.WithSeed(7))
	require.NoError(t, err)
	b, _, err := simulate.LongitudinalData(simulate.WithSeed(7))
	require.NoError(t, err)
	c, _, err := simulate.LongitudinalData(simulate.WithSeed(8))
	require.NoError(t, err)

	assert.Equal(t, a.Response, b.Response)
	assert.NotEqual(t, a.Response, c.Response)
}

func TestLongitudinalDesign(t *testing.T) {
	t.Parallel()
	data, _, err := simulate.LongitudinalData(simulate.WithGroups(3), simulate.WithOccasions(4))
	require.NoError(t, err)

	require.Len(t, data.Response, 12)
	assert.Equal(t, []string{"S01", "S01", "S01", "S01", "S02"}, data.Random[0].Groups[:5])
	row, err := data.Fixed.Row(6)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, row) // S02, day 2
}

func TestLongitudinalCrossedFactor(t *testing.T) {
	t.Parallel()
	data, est, err := simulate.LongitudinalData(
		simulate.WithGroups(2),
		simulate.WithOccasions(3),
		simulate.WithCrossedFactor("item", 4, 5),
		simulate.WithResidualSD(10),
	)
	require.NoError(t, err)

	require.Len(t, data.Random, 2)
	item := data.Random[1]
	assert.Equal(t, "item", item.Factor)
	// item = (g + t) mod 4
	assert.Equal(t, []string{"I01", "I02", "I03", "I02", "I03", "I04"}, item.Groups)
	assert.Equal(t, 0.5, est.Theta[3])

	m, err := simulate.Longitudinal(simulate.WithCrossedFactor("item", 4, 5))
	require.NoError(t, err)
	assert.Equal(t, []string{"subj", "item"}, m.GroupingFactors())
	assert.Len(t, m.CovarianceParams(), 4)
}

func TestLongitudinalDuplicateFactorName(t *testing.T) {
	t.Parallel()
	_, err := simulate.Longitudinal(simulate.WithCrossedFactor("subj", 3, 1))
	assert.Error(t, err)
}
