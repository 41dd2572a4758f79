// SPDX-License-Identifier: MIT

package matrix_test

import (
	"fmt"

	"github.com/katalvlaran/mixedviz/matrix"
)

// ExampleCholesky factors a small SPD matrix and solves a system with it.
func ExampleCholesky() {
	a, _ := matrix.NewDenseFrom(2, 2, []float64{
		4, 2,
		2, 3,
	})
	L, err := matrix.Cholesky(a)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Print(L)

	x, _ := matrix.CholeskySolve(L, []float64{6, 5})
	fmt.Printf("x = [%.3f %.3f]\n", x[0], x[1])

	// Output:
	// [2, 0]
	// [1, 1.4142135623730951]
	// x = [1.000 1.000]
}

// ExampleDense_Induced cuts a level's block out of a larger matrix.
func ExampleDense_Induced() {
	m, _ := matrix.NewDenseFrom(4, 4, []float64{
		1, 0, 0, 0,
		0, 2, 0, 0,
		0, 0, 3, 9,
		0, 0, 9, 4,
	})
	block, _ := m.Induced([]int{2, 3}, []int{2, 3})
	fmt.Print(block)

	// Output:
	// [3, 9]
	// [9, 4]
}
