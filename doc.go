// SPDX-License-Identifier: MIT

// Package mixedviz computes the random-effect summaries behind two
// diagnostics of linear mixed models: caterpillar plots and shrinkage plots.
//
// 🚀 What is in the box?
//
//	• Conditional means and standard deviations per level of every grouping factor
//	• Caterpillar ordering: sort levels by any term, or keep level order
//	• Shrinkage pairs: conditional means at the fitted θ and at a reference θ
//	• A terminal canvas and YAML export for both diagnostics
//
// Under the hood, everything is organized under these subpackages:
//
//	matrix/   : dense row-major matrices, Cholesky, LU, inverse
//	lmm/      : model data, externally supplied estimates, penalized least squares
//	ranef/    : Info tables, Extract, Order/Sorted, BuildPair, YAML export
//	render/   : presentation math (intervals, display order) onto a Canvas
//	simulate/ : deterministic longitudinal designs with oracle estimates
//	cmd/mixedviz: the CLI (cobra + viper)
//
// Quick example:
//
//	m, _ := simulate.Longitudinal()
//	infos, _ := ranef.Extract(m)
//	_ = render.Caterpillar(termcanvas.New(os.Stdout), infos["subj"])
//
// See each subpackage's doc.go for details.
package mixedviz
