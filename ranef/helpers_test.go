// SPDX-License-Identifier: MIT

package ranef_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/mixedviz/lmm"
	"github.com/katalvlaran/mixedviz/matrix"
	"github.com/katalvlaran/mixedviz/ranef"
	"github.com/katalvlaran/mixedviz/simulate"
)

// sleepstudy is the default simulated design: 18 subjects × 10 days.
func sleepstudy(t *testing.T, opts ...simulate.Option) *lmm.Model {
	t.Helper()
	m, err := simulate.Longitudinal(opts...)
	require.NoError(t, err)

	return m
}

func dense(t *testing.T, r, c int, vals ...float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFrom(r, c, vals)
	require.NoError(t, err)

	return m
}

// table is a comparable snapshot of an Info.
type table struct {
	Factor  string
	Levels  []string
	Columns []string
	Ranef   [][]float64
	StdDev  [][]float64
}

func snapshot(t *testing.T, in ranef.Info) table {
	t.Helper()
	tb := table{Factor: in.Factor(), Levels: in.Levels(), Columns: in.ColumnNames()}
	for i := 0; i < in.Len(); i++ {
		_, means, sds, err := in.Row(i)
		require.NoError(t, err)
		tb.Ranef = append(tb.Ranef, means)
		tb.StdDev = append(tb.StdDev, sds)
	}

	return tb
}

// brokenModes replaces the conditional modes of an otherwise valid model.
type brokenModes struct {
	ranef.FittedModel
	modes *matrix.Dense
}

func (b brokenModes) ConditionalModes(string) (*matrix.Dense, error) { return b.modes, nil }

// brokenLambda replaces the relative covariance factor.
type brokenLambda struct {
	ranef.FittedModel
	lambda *matrix.Dense
}

func (b brokenLambda) CovarianceFactor(string) (*matrix.Dense, error) { return b.lambda, nil }

// frozenView returns a view that ignores θ and reports itself unfitted.
type frozenView struct{ ranef.FittedModel }

func (frozenView) WithCovarianceParams([]float64) (ranef.FittedModel, error) {
	return unfitted{}, nil
}

type unfitted struct{ ranef.FittedModel }

func (unfitted) Converged() bool { return false }
