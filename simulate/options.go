// SPDX-License-Identifier: MIT

package simulate

import (
	"fmt"
	"math"
	"math/rand"
)

// Option customizes a simulated design.
type Option func(*simConfig)

// WithSeed seeds the generator.
func WithSeed(seed int64) Option {
	return func(c *simConfig) { c.rng = rand.New(rand.NewSource(seed)) }
}

// WithGroups sets the number of levels of the primary factor. Panics if n < 2.
func WithGroups(n int) Option {
	if n < 2 {
		panic(fmt.Sprintf("simulate: WithGroups(%d): need n ≥ 2", n))
	}

	return func(c *simConfig) { c.groups = n }
}

// WithOccasions sets the observations per group. Panics if m < 2 (the
// per-group slope would not be identified).
func WithOccasions(m int) Option {
	if m < 2 {
		panic(fmt.Sprintf("simulate: WithOccasions(%d): need m ≥ 2", m))
	}

	return func(c *simConfig) { c.occasions = m }
}

// WithFactorName renames the primary grouping factor. Panics on "".
func WithFactorName(name string) Option {
	if name == "" {
		panic("simulate: WithFactorName(\"\")")
	}

	return func(c *simConfig) { c.factorName = name }
}

// WithFixed sets the fixed intercept and slope.
func WithFixed(intercept, slope float64) Option {
	if !finite(intercept) || !finite(slope) {
		panic(fmt.Sprintf("simulate: WithFixed(%g, %g): need finite values", intercept, slope))
	}

	return func(c *simConfig) { c.beta0, c.beta1 = intercept, slope }
}

// WithRandomSD sets the standard deviations of the random intercept and
// slope and their correlation. Panics unless both sds are > 0 and |corr| < 1.
func WithRandomSD(sdIntercept, sdSlope, corr float64) Option {
	if !(sdIntercept > 0) || !(sdSlope > 0) || !finite(sdIntercept) || !finite(sdSlope) || !(math.Abs(corr) < 1) {
		panic(fmt.Sprintf("simulate: WithRandomSD(%g, %g, %g)", sdIntercept, sdSlope, corr))
	}

	return func(c *simConfig) { c.sdIntercept, c.sdSlope, c.corr = sdIntercept, sdSlope, corr }
}

// WithResidualSD sets σ. Panics unless σ > 0.
func WithResidualSD(sigma float64) Option {
	if !(sigma > 0) || !finite(sigma) {
		panic(fmt.Sprintf("simulate: WithResidualSD(%g)", sigma))
	}

	return func(c *simConfig) { c.sigma = sigma }
}

// WithCrossedFactor adds a second, crossed grouping factor with a random
// intercept of standard deviation sd. Observation (g, t) belongs to item
// (g+t) mod levels. Panics on an empty name, levels < 2 or sd < 0.
func WithCrossedFactor(name string, levels int, sd float64) Option {
	if name == "" || levels < 2 || !(sd >= 0) || !finite(sd) {
		panic(fmt.Sprintf("simulate: WithCrossedFactor(%q, %d, %g)", name, levels, sd))
	}

	return func(c *simConfig) { c.crossed = &crossedSpec{name: name, levels: levels, sd: sd} }
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
