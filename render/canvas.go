// SPDX-License-Identifier: MIT

package render

// Canvas is the drawing surface the diagnostics are rendered onto.
type Canvas interface {
	AddErrorBarLayer(ErrorBarLayer) error
	AddScatterMatrixLayer(ScatterMatrixLayer) error
}

// Bar is one row of a caterpillar panel.
type Bar struct {
	Label    string
	Estimate float64
	Lower    float64
	Upper    float64
}

// ErrorBarLayer is one caterpillar panel: a single term of one factor,
// rows in display order.
type ErrorBarLayer struct {
	Factor string
	Term   string
	Level  float64 // coverage of the intervals, e.g. 0.95
	Bars   []Bar
}

// ScatterPoint is one level of a shrinkage panel; Estimated and Reference
// are indexed like ScatterMatrixLayer.Columns.
type ScatterPoint struct {
	Label     string
	Estimated []float64
	Reference []float64
}

// ScatterMatrixLayer pairs every level's conditional means at the fitted
// and at the reference parameters.
type ScatterMatrixLayer struct {
	Factor          string
	Columns         []string
	ReferenceParams []float64
	Points          []ScatterPoint
}
