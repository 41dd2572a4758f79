// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/mixedviz/internal/config"
	"github.com/katalvlaran/mixedviz/ranef"
	"github.com/katalvlaran/mixedviz/render"
	"github.com/katalvlaran/mixedviz/render/termcanvas"
)

func newCaterpillarCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "caterpillar [factor...]",
		Short: "Conditional means with prediction intervals per level",
		Long: `Print one caterpillar panel per random-effect term of every requested
grouping factor (all factors when none are named). Rows are sorted by
--order-by; intervals cover --level.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCaterpillar(cmd, args)
		},
	}
}

func (a *app) runCaterpillar(cmd *cobra.Command, factors []string) error {
	m, err := a.model()
	if err != nil {
		return err
	}
	if len(factors) == 0 {
		factors = m.GroupingFactors()
	}
	factors = unique(factors)
	infos, err := ranef.Extract(m,
		ranef.WithFactors(factors...),
		ranef.WithConcurrency(a.cfg.Output.Concurrency))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if a.cfg.Output.Format == config.FormatYAML {
		tables := make([]ranef.Info, 0, len(factors))
		for _, f := range factors {
			sorted, err := ranef.Sorted(infos[f], a.orderBy())
			if err != nil {
				return err
			}
			tables = append(tables, sorted)
		}

		return writeYAML(out, tables)
	}

	canvas := termcanvas.New(out, termcanvas.WithWidth(a.cfg.Output.Width))
	for _, f := range factors {
		info := infos[f]
		a.log.Info("caterpillar", "factor", f, "levels", info.Len(), "terms", info.ColumnNames())
		if err = render.Caterpillar(canvas, info,
			render.WithOrderBy(a.orderBy()),
			render.WithLevel(a.cfg.Output.Level)); err != nil {
			return fmt.Errorf("caterpillar %s: %w", f, err)
		}
	}

	return nil
}

// unique keeps the first occurrence of every name, in order.
func unique(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}

	return out
}
