// SPDX-License-Identifier: MIT

package ranef_test

import (
	"fmt"

	"github.com/katalvlaran/mixedviz/matrix"
	"github.com/katalvlaran/mixedviz/ranef"
	"github.com/katalvlaran/mixedviz/simulate"
)

// ExampleExtract extracts the per-subject table of a simulated sleep study.
func ExampleExtract() {
	m, err := simulate.Longitudinal(simulate.WithSeed(42))
	if err != nil {
		fmt.Println(err)
		return
	}
	infos, err := ranef.Extract(m)
	if err != nil {
		fmt.Println(err)
		return
	}
	info := infos["subj"]
	fmt.Println(info.Factor(), info.Len(), info.NumTerms(), info.ColumnNames())

	_, err = ranef.ExtractFactor(m, "subject")
	fmt.Println(err)

	// Output:
	// subj 18 2 [(Intercept) days]
	// ExtractFactor: ranef: unknown grouping factor "subject" (did you mean "subj"?)
}

// ExampleOrder sorts levels by their intercept, keeping ties in level order.
func ExampleOrder() {
	means, _ := matrix.NewDenseFrom(4, 1, []float64{0.5, -1, 0.5, -2})
	sds, _ := matrix.NewDenseFrom(4, 1, []float64{1, 1, 1, 1})
	info, _ := ranef.NewInfo("g", []string{"a", "b", "c", "d"}, []string{"(Intercept)"}, means, sds)

	perm, _ := ranef.Order(info, ranef.DefaultOrderBy)
	fmt.Println(perm)

	_, err := ranef.Order(info, ranef.ByColumn(5))
	fmt.Println(err)

	// Output:
	// [3 1 0 2]
	// Order: column 5 of 1: ranef: index out of range
}

// ExampleBuildPair compares conditional means with and without shrinkage.
func ExampleBuildPair() {
	m, _ := simulate.Longitudinal()
	pair, err := ranef.BuildPair(m, "")
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(pair.Factor, pair.ReferenceParams)
	fmt.Println(pair.Estimated.Len() == pair.Reference.Len())

	// Output:
	// subj [10000 0 10000]
	// true
}
