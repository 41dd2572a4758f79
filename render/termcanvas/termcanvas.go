// SPDX-License-Identifier: MIT

// Package termcanvas draws render layers as text: caterpillar panels as
// horizontal interval bars and shrinkage panels as tables. Styling uses
// lipgloss; when the writer is not a terminal the output is plain text.
package termcanvas

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/katalvlaran/mixedviz/render"
)

// DefaultWidth is the total line width when WithWidth is not given.
const DefaultWidth = 80

const (
	minWidth   = 40
	numberCols = 28 // " -123.45 [-123.45, -123.45]"

	glyphBar    = '─'
	glyphCenter = '●'
	glyphZero   = '│'
	glyphArrow  = "→"
)

const (
	colorTitle  lipgloss.Color = "#cba6f7"
	colorBar    lipgloss.Color = "#89b4fa"
	colorCenter lipgloss.Color = "#f38ba8"
	colorMuted  lipgloss.Color = "#6c7086"
)

// Canvas writes every layer to w as soon as it is added.
type Canvas struct {
	w     io.Writer
	width int

	title  lipgloss.Style
	bar    lipgloss.Style
	center lipgloss.Style
	muted  lipgloss.Style
}

var _ render.Canvas = (*Canvas)(nil)

// Option configures a Canvas.
type Option func(*Canvas)

// WithWidth sets the line width. Panics if width < 40.
func WithWidth(width int) Option {
	if width < minWidth {
		panic(fmt.Sprintf("termcanvas: WithWidth(%d): need ≥ %d", width, minWidth))
	}

	return func(c *Canvas) { c.width = width }
}

// New returns a Canvas writing to w.
func New(w io.Writer, opts ...Option) *Canvas {
	r := lipgloss.NewRenderer(w)
	c := &Canvas{
		w:      w,
		width:  DefaultWidth,
		title:  r.NewStyle().Bold(true).Foreground(colorTitle),
		bar:    r.NewStyle().Foreground(colorBar),
		center: r.NewStyle().Foreground(colorCenter),
		muted:  r.NewStyle().Foreground(colorMuted),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// AddErrorBarLayer draws one caterpillar panel:
//
//	subj: (Intercept), 95% intervals
//	S09  ────●────   │             -40.21 [-70.55, -9.87]
func (c *Canvas) AddErrorBarLayer(l render.ErrorBarLayer) error {
	var b strings.Builder
	b.WriteString(c.title.Render(fmt.Sprintf("%s: %s, %g%% intervals", l.Factor, l.Term, 100*l.Level)))
	b.WriteByte('\n')

	labelW := 0
	for _, bar := range l.Bars {
		labelW = max(labelW, lipgloss.Width(bar.Label))
	}
	plotW := max(c.width-labelW-numberCols-2, 10)

	lo, hi := 0.0, 0.0
	for _, bar := range l.Bars {
		lo = math.Min(lo, bar.Lower)
		hi = math.Max(hi, bar.Upper)
	}
	pos := scaler(lo, hi, plotW)

	for _, bar := range l.Bars {
		b.WriteString(padRight(bar.Label, labelW))
		b.WriteString("  ")
		b.WriteString(c.plotRow(pos(bar.Lower), pos(bar.Estimate), pos(bar.Upper), pos(0), plotW))
		b.WriteString(c.muted.Render(fmt.Sprintf(" %8.2f [%8.2f, %8.2f]", bar.Estimate, bar.Lower, bar.Upper)))
		b.WriteByte('\n')
	}
	b.WriteByte('\n')

	_, err := io.WriteString(c.w, b.String())

	return err
}

// plotRow renders one interval line of width w.
func (c *Canvas) plotRow(from, mid, to, zero, w int) string {
	cells := make([]rune, w)
	for i := range cells {
		cells[i] = ' '
	}
	cells[zero] = glyphZero
	for i := from; i <= to; i++ {
		cells[i] = glyphBar
	}

	var b strings.Builder
	b.WriteString(c.muted.Render(string(cells[:from])))
	b.WriteString(c.bar.Render(string(cells[from:mid])))
	b.WriteString(c.center.Render(string(glyphCenter)))
	b.WriteString(c.bar.Render(string(cells[mid+1 : to+1])))
	b.WriteString(c.muted.Render(string(cells[to+1:])))

	return b.String()
}

// AddScatterMatrixLayer prints reference → estimated means per level and
// term, followed by the shrinkage Δ = estimated − reference.
func (c *Canvas) AddScatterMatrixLayer(l render.ScatterMatrixLayer) error {
	var b strings.Builder
	b.WriteString(c.title.Render(fmt.Sprintf("%s: shrinkage, reference θ = %s", l.Factor, formatParams(l.ReferenceParams))))
	b.WriteByte('\n')

	labelW := len("level")
	for _, p := range l.Points {
		labelW = max(labelW, lipgloss.Width(p.Label))
	}
	const cellW = 30

	b.WriteString(padRight("level", labelW))
	for _, col := range l.Columns {
		b.WriteString("  ")
		b.WriteString(c.muted.Render(padRight(col, cellW)))
	}
	b.WriteByte('\n')

	for _, p := range l.Points {
		b.WriteString(padRight(p.Label, labelW))
		for j := range l.Columns {
			if j >= len(p.Estimated) || j >= len(p.Reference) {
				return fmt.Errorf("termcanvas: level %s: %d columns, have %d/%d values",
					p.Label, len(l.Columns), len(p.Estimated), len(p.Reference))
			}
			cell := fmt.Sprintf("%9.2f %s %9.2f (%+.2f)",
				p.Reference[j], glyphArrow, p.Estimated[j], p.Estimated[j]-p.Reference[j])
			b.WriteString("  ")
			b.WriteString(padRight(cell, cellW))
		}
		b.WriteByte('\n')
	}
	b.WriteByte('\n')

	_, err := io.WriteString(c.w, b.String())

	return err
}

// scaler maps [lo, hi] onto cell indexes 0..w-1.
func scaler(lo, hi float64, w int) func(float64) int {
	span := hi - lo
	return func(v float64) int {
		if span <= 0 {
			return w / 2
		}
		i := int(math.Round((v - lo) / span * float64(w-1)))

		return min(max(i, 0), w-1)
	}
}

func padRight(s string, w int) string {
	if d := w - lipgloss.Width(s); d > 0 {
		return s + strings.Repeat(" ", d)
	}

	return s
}

func formatParams(theta []float64) string {
	parts := make([]string, len(theta))
	for i, v := range theta {
		parts[i] = fmt.Sprintf("%g", v)
	}

	return "[" + strings.Join(parts, " ") + "]"
}
