// SPDX-License-Identifier: MIT

package ranef

import (
	"fmt"
	"sort"
)

// OrderBy selects how Order arranges the rows of an Info. The zero value
// is Unsorted.
type OrderBy struct {
	column int
	sorted bool
}

// DefaultOrderBy sorts by the first term (usually the intercept).
var DefaultOrderBy = ByColumn(0)

// ByColumn sorts rows ascending by the conditional means of column c (0-based).
func ByColumn(c int) OrderBy { return OrderBy{column: c, sorted: true} }

// Unsorted keeps the rows in level order.
func Unsorted() OrderBy { return OrderBy{} }

// Column reports the sort column and whether sorting is requested at all.
func (o OrderBy) Column() (int, bool) { return o.column, o.sorted }

func (o OrderBy) String() string {
	if !o.sorted {
		return "unsorted"
	}

	return fmt.Sprintf("column %d", o.column)
}

// Order returns the display permutation of info's rows: position r shows
// row perm[r]. With ByColumn the rows are stable-sorted ascending by that
// column, so equal values keep level order and the result is idempotent.
//
// Errors: ErrIndexOutOfRange when the column is not in 0..k-1.
// Complexity: O(n log n).
func Order(info Info, by OrderBy) ([]int, error) {
	n := info.Len()
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	c, sorted := by.Column()
	if !sorted {
		return perm, nil
	}

	key, err := info.Column(c)
	if err != nil {
		return nil, fmt.Errorf("Order: %w", err)
	}
	sort.SliceStable(perm, func(a, b int) bool { return key[perm[a]] < key[perm[b]] })

	return perm, nil
}

// Sorted is Order followed by Info.Reorder.
func Sorted(info Info, by OrderBy) (Info, error) {
	perm, err := Order(info, by)
	if err != nil {
		return Info{}, err
	}

	return info.Reorder(perm)
}
