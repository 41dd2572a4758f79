// SPDX-License-Identifier: MIT

// Package matrix_test contains unit tests for the Dense implementation
// of the Matrix interface in the matrix package.
package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/mixedviz/matrix"
)

// TestNewDenseInvalidDimensions ensures that NewDense rejects non-positive dimensions.
func TestNewDenseInvalidDimensions(t *testing.T) {
	_, err := matrix.NewDense(0, 5)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)

	_, err = matrix.NewDense(5, 0)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}

// TestNewDenseFrom covers the copy semantics and the ingestion checks.
func TestNewDenseFrom(t *testing.T) {
	vals := []float64{1, 2, 3, 4, 5, 6}
	m, err := matrix.NewDenseFrom(2, 3, vals)
	require.NoError(t, err)
	vals[0] = 99 // must not leak into m

	v, err := m.At(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)
	v, err = m.At(1, 2)
	require.NoError(t, err)
	assert.Equal(t, 6.0, v)

	_, err = matrix.NewDenseFrom(2, 3, []float64{1, 2})
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = matrix.NewDenseFrom(1, 2, []float64{1, math.NaN()})
	assert.ErrorIs(t, err, matrix.ErrNaNInf)
}

// TestAtSetOutOfRange ensures At() and Set() return ErrOutOfRange on invalid access.
func TestAtSetOutOfRange(t *testing.T) {
	m, err := matrix.NewDense(2, 2)
	require.NoError(t, err)

	_, err = m.At(-1, 0)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
	_, err = m.At(0, 2)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
	require.ErrorIs(t, m.Set(2, 0, 1.23), matrix.ErrOutOfRange)
	require.ErrorIs(t, m.Set(0, -1, 4.56), matrix.ErrOutOfRange)
}

// TestSetRejectsNonFinite checks the default numeric policy.
func TestSetRejectsNonFinite(t *testing.T) {
	m, err := matrix.NewDense(1, 1)
	require.NoError(t, err)

	require.ErrorIs(t, m.Set(0, 0, math.Inf(1)), matrix.ErrNaNInf)
	require.ErrorIs(t, m.Set(0, 0, math.NaN()), matrix.ErrNaNInf)
	require.NoError(t, m.Set(0, 0, 7.89))

	v, err := m.At(0, 0)
	require.NoError(t, err)
	require.Equal(t, 7.89, v)
}

// TestCloneIndependence ensures Clone() returns a deep copy that does not share storage.
func TestCloneIndependence(t *testing.T) {
	m := NewFilledDense(t, 2, 2, []float64{1, 0, 0, 2})

	clone := m.Clone()
	require.NoError(t, clone.Set(0, 0, 3.0))

	orig, err := m.At(0, 0)
	require.NoError(t, err)
	require.Equal(t, 1.0, orig)
}

// TestRowAndDiag covers the copying accessors.
func TestRowAndDiag(t *testing.T) {
	m := NewFilledDense(t, 2, 3, []float64{1, 2, 3, 4, 5, 6})

	row, err := m.Row(1)
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 5, 6}, row)
	row[0] = 100
	v, _ := m.At(1, 0)
	assert.Equal(t, 4.0, v, "Row must return a copy")

	_, err = m.Row(2)
	assert.ErrorIs(t, err, matrix.ErrOutOfRange)

	assert.Equal(t, []float64{1, 5}, m.Diag())
}

// TestInduced extracts permuted and repeated index sets.
func TestInduced(t *testing.T) {
	m := NewFilledDense(t, 3, 3, []float64{
		1, 2, 3,
		4, 5, 6,
		7, 8, 9,
	})

	tests := []struct {
		name string
		rows []int
		cols []int
		want []float64
		r, c int
	}{
		{"block", []int{1, 2}, []int{1, 2}, []float64{5, 6, 8, 9}, 2, 2},
		{"permuted rows", []int{2, 0}, []int{0, 1, 2}, []float64{7, 8, 9, 1, 2, 3}, 2, 3},
		{"repeated", []int{0, 0}, []int{2}, []float64{3, 3}, 2, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := m.Induced(tc.rows, tc.cols)
			require.NoError(t, err)
			requireClose(t, NewFilledDense(t, tc.r, tc.c, tc.want), got, 0)
		})
	}

	empty, err := m.Induced(nil, []int{0})
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Rows())

	_, err = m.Induced([]int{3}, []int{0})
	assert.ErrorIs(t, err, matrix.ErrOutOfRange)
}

// TestDoStopsEarly verifies row-major visiting and early exit.
func TestDoStopsEarly(t *testing.T) {
	m := NewFilledDense(t, 2, 2, []float64{1, 2, 3, 4})

	var seen []float64
	m.Do(func(_, _ int, v float64) bool {
		seen = append(seen, v)
		return v < 2
	})
	assert.Equal(t, []float64{1, 2}, seen)
}

// TestString renders one bracketed line per row.
func TestString(t *testing.T) {
	m := NewFilledDense(t, 2, 2, []float64{1, 2.5, -3, 0})
	assert.Equal(t, "[1, 2.5]\n[-3, 0]\n", m.String())
}
