// SPDX-License-Identifier: MIT

package simulate

import "math/rand"

// Deterministic defaults.
const (
	DefaultSeed       = int64(1)
	DefaultGroups     = 18
	DefaultOccasions  = 10
	DefaultFactorName = "subj"

	defaultIntercept   = 251.4
	defaultSlope       = 10.5
	defaultSDIntercept = 24.7
	defaultSDSlope     = 5.9
	defaultCorrelation = 0.07
	defaultResidualSD  = 25.6

	groupPrefix = "S"
	itemPrefix  = "I"
)

// Term names of the generated design.
const (
	InterceptName = "(Intercept)"
	SlopeName     = "days"
)

type crossedSpec struct {
	name   string
	levels int
	sd     float64
}

// simConfig holds every generation knob; built by newConfig.
type simConfig struct {
	rng        *rand.Rand
	groups     int
	occasions  int
	factorName string

	beta0, beta1 float64
	sdIntercept  float64
	sdSlope      float64
	corr         float64
	sigma        float64

	crossed *crossedSpec
}

// newConfig applies opts over the defaults; later options win.
func newConfig(opts ...Option) simConfig {
	cfg := simConfig{
		groups:      DefaultGroups,
		occasions:   DefaultOccasions,
		factorName:  DefaultFactorName,
		beta0:       defaultIntercept,
		beta1:       defaultSlope,
		sdIntercept: defaultSDIntercept,
		sdSlope:     defaultSDSlope,
		corr:        defaultCorrelation,
		sigma:       defaultResidualSD,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.rng == nil {
		cfg.rng = rand.New(rand.NewSource(DefaultSeed))
	}

	return cfg
}
