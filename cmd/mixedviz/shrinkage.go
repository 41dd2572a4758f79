// SPDX-License-Identifier: MIT

package main

import (
	"github.com/spf13/cobra"

	"github.com/katalvlaran/mixedviz/internal/config"
	"github.com/katalvlaran/mixedviz/ranef"
	"github.com/katalvlaran/mixedviz/render"
	"github.com/katalvlaran/mixedviz/render/termcanvas"
)

func newShrinkageCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shrinkage [factor]",
		Short: "Conditional means at the fitted vs the reference θ",
		Long: `Print, for every level of the factor (the first grouping factor when
omitted), the conditional means at a reference θ whose Λ diagonal is
--scale and at the fitted θ, with the difference between the two.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			factor := ""
			if len(args) == 1 {
				factor = args[0]
			}

			return a.runShrinkage(cmd, factor)
		},
	}
}

func (a *app) runShrinkage(cmd *cobra.Command, factor string) error {
	m, err := a.model()
	if err != nil {
		return err
	}
	pair, err := ranef.BuildPair(m, factor, ranef.WithReferenceScale(a.cfg.Shrinkage.Scale))
	if err != nil {
		return err
	}
	a.log.Info("shrinkage", "factor", pair.Factor, "levels", pair.Estimated.Len(), "reference_theta", pair.ReferenceParams)

	out := cmd.OutOrStdout()
	if a.cfg.Output.Format == config.FormatYAML {
		return writeYAML(out, pair)
	}

	return render.Shrinkage(termcanvas.New(out, termcanvas.WithWidth(a.cfg.Output.Width)), pair,
		render.WithOrderBy(a.orderBy()))
}
