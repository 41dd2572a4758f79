// SPDX-License-Identifier: MIT

package simulate

import (
	"fmt"
	"strconv"

	"github.com/katalvlaran/mixedviz/lmm"
	"github.com/katalvlaran/mixedviz/matrix"
)

// Longitudinal generates a dataset and returns it as a fitted model whose
// estimates are the generating values.
func Longitudinal(opts ...Option) (*lmm.Model, error) {
	data, est, err := LongitudinalData(opts...)
	if err != nil {
		return nil, err
	}
	m, err := lmm.New(data)
	if err != nil {
		return nil, fmt.Errorf("simulate: %w", err)
	}
	fitted, err := m.WithEstimates(est)
	if err != nil {
		return nil, fmt.Errorf("simulate: %w", err)
	}

	return fitted, nil
}

// LongitudinalData generates the raw model data and the oracle estimates.
//
// Implementation:
//   - Stage 1: L = chol(Σ) for the intercept/slope covariance.
//   - Stage 2: per group draw z ~ N(0, I₂), b = L·z.
//   - Stage 3: optional crossed item intercepts.
//   - Stage 4: per observation assemble y, X = [1 t], Z = [1 t].
//
// Draw order is fixed (group effects, item effects, then residuals in
// group-major order), so the output depends only on the options.
func LongitudinalData(opts ...Option) (lmm.Data, lmm.Estimates, error) {
	cfg := newConfig(opts...)

	cov, err := matrix.NewDenseFrom(2, 2, []float64{
		cfg.sdIntercept * cfg.sdIntercept, cfg.corr * cfg.sdIntercept * cfg.sdSlope,
		cfg.corr * cfg.sdIntercept * cfg.sdSlope, cfg.sdSlope * cfg.sdSlope,
	})
	if err != nil {
		return lmm.Data{}, lmm.Estimates{}, fmt.Errorf("simulate: covariance: %w", err)
	}
	chol, err := matrix.Cholesky(cov)
	if err != nil {
		return lmm.Data{}, lmm.Estimates{}, fmt.Errorf("simulate: covariance: %w", err)
	}

	effects := make([][]float64, cfg.groups)
	var g, t int
	for g = 0; g < cfg.groups; g++ {
		if effects[g], err = matrix.MatVec(chol, []float64{cfg.rng.NormFloat64(), cfg.rng.NormFloat64()}); err != nil {
			return lmm.Data{}, lmm.Estimates{}, fmt.Errorf("simulate: effects: %w", err)
		}
	}
	var items []float64
	if cfg.crossed != nil {
		items = make([]float64, cfg.crossed.levels)
		for i := range items {
			items[i] = cfg.crossed.sd * cfg.rng.NormFloat64()
		}
	}

	n := cfg.groups * cfg.occasions
	y := make([]float64, 0, n)
	design := make([]float64, 0, 2*n)
	groups := make([]string, 0, n)
	var itemIDs []string
	var day, mu float64
	for g = 0; g < cfg.groups; g++ {
		for t = 0; t < cfg.occasions; t++ {
			day = float64(t)
			mu = cfg.beta0 + cfg.beta1*day + effects[g][0] + effects[g][1]*day
			if items != nil {
				item := (g + t) % len(items)
				mu += items[item]
				itemIDs = append(itemIDs, label(itemPrefix, item, len(items)))
			}
			y = append(y, mu+cfg.sigma*cfg.rng.NormFloat64())
			design = append(design, 1, day)
			groups = append(groups, label(groupPrefix, g, cfg.groups))
		}
	}

	x, err := matrix.NewDenseFrom(n, 2, design)
	if err != nil {
		return lmm.Data{}, lmm.Estimates{}, fmt.Errorf("simulate: design: %w", err)
	}
	data := lmm.Data{
		Response:   y,
		Fixed:      x,
		FixedNames: []string{InterceptName, SlopeName},
		Random: []lmm.Term{{
			Factor:  cfg.factorName,
			Groups:  groups,
			Columns: []string{InterceptName, SlopeName},
			Z:       x.Clone().(*matrix.Dense),
		}},
	}

	l11, _ := chol.At(0, 0)
	l21, _ := chol.At(1, 0)
	l22, _ := chol.At(1, 1)
	theta := []float64{l11 / cfg.sigma, l21 / cfg.sigma, l22 / cfg.sigma}

	if cfg.crossed != nil {
		ones := make([]float64, n)
		for i := range ones {
			ones[i] = 1
		}
		zi, err := matrix.NewDenseFrom(n, 1, ones)
		if err != nil {
			return lmm.Data{}, lmm.Estimates{}, fmt.Errorf("simulate: crossed design: %w", err)
		}
		data.Random = append(data.Random, lmm.Term{
			Factor:  cfg.crossed.name,
			Groups:  itemIDs,
			Columns: []string{InterceptName},
			Z:       zi,
		})
		theta = append(theta, cfg.crossed.sd/cfg.sigma)
	}

	return data, lmm.Estimates{
		Theta: theta,
		Beta:  []float64{cfg.beta0, cfg.beta1},
		Sigma: cfg.sigma,
	}, nil
}

// label renders prefix + zero-padded index (1-based), e.g. S01…S18, so that
// lexicographic order equals numeric order.
func label(prefix string, idx, count int) string {
	width := len(strconv.Itoa(count))
	if width < 2 {
		width = 2
	}

	return fmt.Sprintf("%s%0*d", prefix, width, idx+1)
}
