// SPDX-License-Identifier: MIT

package ranef

import (
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/mixedviz/matrix"
)

// DefaultConcurrency is the number of factors Extract processes at once.
const DefaultConcurrency = 1

const (
	opExtract       = "Extract"
	opExtractFactor = "ExtractFactor"
)

// ExtractOption configures Extract.
type ExtractOption func(*extractConfig)

type extractConfig struct {
	factors     []string
	concurrency int
}

// WithFactors restricts Extract to the named factors. Duplicates are ignored.
func WithFactors(names ...string) ExtractOption {
	cp := append([]string(nil), names...)

	return func(c *extractConfig) { c.factors = cp }
}

// WithConcurrency sets how many factors are extracted in parallel.
// Panics if n < 1.
func WithConcurrency(n int) ExtractOption {
	if n < 1 {
		panic(fmt.Sprintf("ranef: WithConcurrency(%d): need n ≥ 1", n))
	}

	return func(c *extractConfig) { c.concurrency = n }
}

// Extract builds one Info per grouping factor of m (or per WithFactors name).
//
// All preconditions are checked before any table is built: the model must
// be fitted and every requested factor must exist. The result is the same
// for any WithConcurrency setting.
//
// Errors: ErrUnfittedModel, *UnknownFactorError, ErrInconsistentModel, or a
// wrapped error from the model.
func Extract(m FittedModel, opts ...ExtractOption) (map[string]Info, error) {
	cfg := extractConfig{concurrency: DefaultConcurrency}
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := checkFitted(m); err != nil {
		return nil, fmt.Errorf("%s: %w", opExtract, err)
	}

	names := cfg.factors
	if names == nil {
		names = m.GroupingFactors()
	}
	names = dedupe(names)
	for _, name := range names {
		if err := checkFactor(m, name); err != nil {
			return nil, fmt.Errorf("%s: %w", opExtract, err)
		}
	}

	infos := make([]Info, len(names))
	var g errgroup.Group
	g.SetLimit(cfg.concurrency)
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			info, err := extractFactor(m, name)
			if err != nil {
				return err
			}
			infos[i] = info
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", opExtract, err)
	}

	out := make(map[string]Info, len(names))
	for i, name := range names {
		out[name] = infos[i]
	}

	return out, nil
}

// ExtractFactor builds the Info of one grouping factor.
//
// Means are the model's conditional modes. Standard deviations are
// sqrt(diag(σ²·Λ_f·S_ℓ·Λ_fᵀ)) per level ℓ.
//
// Errors: ErrUnfittedModel, *UnknownFactorError, ErrInconsistentModel.
func ExtractFactor(m FittedModel, factor string) (Info, error) {
	if err := checkFitted(m); err != nil {
		return Info{}, fmt.Errorf("%s: %w", opExtractFactor, err)
	}
	if err := checkFactor(m, factor); err != nil {
		return Info{}, fmt.Errorf("%s: %w", opExtractFactor, err)
	}

	return extractFactor(m, factor)
}

// extractFactor assumes checkFitted and checkFactor have passed.
func extractFactor(m FittedModel, factor string) (Info, error) {
	levels, err := m.Levels(factor)
	if err != nil {
		return Info{}, fmt.Errorf("%s %s: levels: %w", opExtractFactor, factor, err)
	}
	terms, err := m.TermNames(factor)
	if err != nil {
		return Info{}, fmt.Errorf("%s %s: terms: %w", opExtractFactor, factor, err)
	}
	modes, err := m.ConditionalModes(factor)
	if err != nil {
		return Info{}, fmt.Errorf("%s %s: modes: %w", opExtractFactor, factor, err)
	}
	sds, err := conditionalStdDev(m, factor, len(levels), len(terms))
	if err != nil {
		return Info{}, fmt.Errorf("%s %s: %w", opExtractFactor, factor, err)
	}

	info, err := NewInfo(factor, levels, terms, modes, sds)
	if err != nil {
		return Info{}, fmt.Errorf("%s: %w: %w", opExtractFactor, ErrInconsistentModel, err)
	}

	return info, nil
}

// conditionalStdDev computes the n×k table of conditional standard deviations.
func conditionalStdDev(m FittedModel, factor string, n, k int) (*matrix.Dense, error) {
	lambda, err := m.CovarianceFactor(factor)
	if err != nil {
		return nil, fmt.Errorf("covariance factor: %w", err)
	}
	if !hasShape(lambda, k, k) {
		return nil, fmt.Errorf("covariance factor must be %d×%d: %w", k, k, ErrInconsistentModel)
	}
	blocks, err := m.SphericalCovariances(factor)
	if err != nil {
		return nil, fmt.Errorf("spherical covariances: %w", err)
	}
	if len(blocks) != n {
		return nil, fmt.Errorf("%d spherical blocks for %d levels: %w", len(blocks), n, ErrInconsistentModel)
	}
	sigma := m.ResidualScale()
	if math.IsNaN(sigma) || math.IsInf(sigma, 0) || sigma < 0 {
		return nil, fmt.Errorf("residual scale %g: %w", sigma, ErrInconsistentModel)
	}

	lambdaT, err := matrix.Transpose(lambda)
	if err != nil {
		return nil, err
	}
	out, err := matrix.NewDense(n, k)
	if err != nil {
		return nil, err
	}
	s2 := sigma * sigma
	var (
		lvl, j   int
		ls, v    *matrix.Dense
		variance float64
	)
	for lvl = 0; lvl < n; lvl++ {
		if !hasShape(blocks[lvl], k, k) {
			return nil, fmt.Errorf("spherical block %d must be %d×%d: %w", lvl, k, k, ErrInconsistentModel)
		}
		if ls, err = matrix.Mul(lambda, blocks[lvl]); err != nil {
			return nil, err
		}
		if v, err = matrix.Mul(ls, lambdaT); err != nil {
			return nil, err
		}
		if v, err = matrix.Scale(v, s2); err != nil {
			return nil, err
		}
		for j, variance = range v.Diag() {
			if variance < 0 { // round-off on a degenerate Λ
				variance = 0
			}
			if err = out.Set(lvl, j, math.Sqrt(variance)); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrInconsistentModel, err)
			}
		}
	}

	return out, nil
}

// dedupe keeps the first occurrence of every name.
func dedupe(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}

	return out
}
