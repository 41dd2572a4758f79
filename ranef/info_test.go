// SPDX-License-Identifier: MIT

package ranef_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/mixedviz/ranef"
)

// threeLevels is a hand-built 3×2 table.
func threeLevels(t *testing.T) ranef.Info {
	t.Helper()
	info, err := ranef.NewInfo("g",
		[]string{"a", "b", "c"},
		[]string{"(Intercept)", "x"},
		dense(t, 3, 2, 3, -1, 1, 0, 2, 5),
		dense(t, 3, 2, 0.5, 0.1, 0.4, 0.2, 0.3, 0.3),
	)
	require.NoError(t, err)

	return info
}

func TestNewInfoValidation(t *testing.T) {
	t.Parallel()
	levels, cols := []string{"a", "b"}, []string{"x"}
	good := dense(t, 2, 1, 1, 2)

	tests := []struct {
		name   string
		levels []string
		cols   []string
		want   error
	}{
		{"no levels", nil, cols, ranef.ErrDimensionMismatch},
		{"no columns", levels, nil, ranef.ErrDimensionMismatch},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ranef.NewInfo("g", tc.levels, tc.cols, good, good)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	_, err := ranef.NewInfo("g", levels, cols, dense(t, 3, 1, 1, 2, 3), good)
	assert.ErrorIs(t, err, ranef.ErrDimensionMismatch)
	_, err = ranef.NewInfo("g", levels, cols, good, nil)
	assert.ErrorIs(t, err, ranef.ErrDimensionMismatch)
	_, err = ranef.NewInfo("g", levels, cols, good, dense(t, 2, 1, 1, -0.1))
	assert.ErrorIs(t, err, ranef.ErrNegativeStdDev)
}

func TestInfoIsImmutable(t *testing.T) {
	t.Parallel()
	info := threeLevels(t)

	levels := info.Levels()
	levels[0] = "zzz"
	r := info.Ranef()
	require.NoError(t, r.Set(0, 0, 100))

	assert.Equal(t, []string{"a", "b", "c"}, info.Levels())
	col, err := info.Column(0)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 1, 2}, col)
}

func TestInfoRowAndColumn(t *testing.T) {
	t.Parallel()
	info := threeLevels(t)

	level, means, sds, err := info.Row(2)
	require.NoError(t, err)
	assert.Equal(t, "c", level)
	assert.Equal(t, []float64{2, 5}, means)
	assert.Equal(t, []float64{0.3, 0.3}, sds)

	_, _, _, err = info.Row(3)
	assert.ErrorIs(t, err, ranef.ErrIndexOutOfRange)
	_, err = info.Column(2)
	assert.ErrorIs(t, err, ranef.ErrIndexOutOfRange)
}

func TestInfoReorder(t *testing.T) {
	t.Parallel()
	info := threeLevels(t)

	got, err := info.Reorder([]int{1, 2, 0})
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c", "a"}, got.Levels())
	col, err := got.Column(1)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 5, -1}, col)
	_, _, sds, err := got.Row(0)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.4, 0.2}, sds)

	_, err = info.Reorder([]int{0, 1})
	assert.ErrorIs(t, err, ranef.ErrDimensionMismatch)
	_, err = info.Reorder([]int{0, 0, 1})
	assert.ErrorIs(t, err, ranef.ErrIndexOutOfRange)
	_, err = info.Reorder([]int{0, 1, 3})
	assert.ErrorIs(t, err, ranef.ErrIndexOutOfRange)
}

func TestZeroInfoReorder(t *testing.T) {
	t.Parallel()
	var zero ranef.Info

	_, err := zero.Reorder(nil)
	assert.ErrorIs(t, err, ranef.ErrDimensionMismatch)
	_, err = ranef.Sorted(zero, ranef.Unsorted())
	assert.ErrorIs(t, err, ranef.ErrDimensionMismatch)
	_, err = ranef.Sorted(zero, ranef.DefaultOrderBy)
	assert.ErrorIs(t, err, ranef.ErrIndexOutOfRange)
}
