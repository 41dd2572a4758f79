// SPDX-License-Identifier: MIT

package render

import (
	"fmt"
	"math"

	"github.com/katalvlaran/mixedviz/ranef"
)

// CriticalValue returns z with P(|Z| ≤ z) = level for a standard normal Z,
// i.e. Φ⁻¹((1+level)/2) = √2·erf⁻¹(level).
func CriticalValue(level float64) float64 {
	return math.Sqrt2 * math.Erfinv(level)
}

// Caterpillar adds one error-bar layer per selected term of info: rows in
// WithOrderBy order, bars at mean ± z·sd.
//
// Errors: ErrNilCanvas, ranef.ErrIndexOutOfRange, or the canvas's own error.
func Caterpillar(c Canvas, info ranef.Info, opts ...Option) error {
	if c == nil {
		return ErrNilCanvas
	}
	cfg := newConfig(opts...)
	sorted, err := ranef.Sorted(info, cfg.orderBy)
	if err != nil {
		return fmt.Errorf("render: caterpillar: %w", err)
	}

	cols := cfg.columns
	if cols == nil {
		cols = make([]int, sorted.NumTerms())
		for j := range cols {
			cols[j] = j
		}
	}
	z := CriticalValue(cfg.level)
	names := sorted.ColumnNames()
	levels := sorted.Levels()
	sds := sorted.StdDev()

	for _, col := range cols {
		means, err := sorted.Column(col)
		if err != nil {
			return fmt.Errorf("render: caterpillar: %w", err)
		}
		layer := ErrorBarLayer{
			Factor: sorted.Factor(),
			Term:   names[col],
			Level:  cfg.level,
			Bars:   make([]Bar, len(means)),
		}
		for i, mean := range means {
			sd, err := sds.At(i, col)
			if err != nil {
				return err
			}
			layer.Bars[i] = Bar{Label: levels[i], Estimate: mean, Lower: mean - z*sd, Upper: mean + z*sd}
		}
		if err = c.AddErrorBarLayer(layer); err != nil {
			return fmt.Errorf("render: caterpillar %s: %w", layer.Term, err)
		}
	}

	return nil
}

// Shrinkage adds one scatter-matrix layer for pair. Rows follow
// WithOrderBy applied to the estimated table; the reference rows are
// permuted the same way.
func Shrinkage(c Canvas, pair ranef.ShrinkagePair, opts ...Option) error {
	if c == nil {
		return ErrNilCanvas
	}
	cfg := newConfig(opts...)
	perm, err := ranef.Order(pair.Estimated, cfg.orderBy)
	if err != nil {
		return fmt.Errorf("render: shrinkage: %w", err)
	}

	layer := ScatterMatrixLayer{
		Factor:          pair.Factor,
		Columns:         pair.Estimated.ColumnNames(),
		ReferenceParams: append([]float64(nil), pair.ReferenceParams...),
		Points:          make([]ScatterPoint, len(perm)),
	}
	for r, p := range perm {
		level, est, _, err := pair.Estimated.Row(p)
		if err != nil {
			return err
		}
		_, ref, _, err := pair.Reference.Row(p)
		if err != nil {
			return err
		}
		layer.Points[r] = ScatterPoint{Label: level, Estimated: est, Reference: ref}
	}
	if err = c.AddScatterMatrixLayer(layer); err != nil {
		return fmt.Errorf("render: shrinkage: %w", err)
	}

	return nil
}
