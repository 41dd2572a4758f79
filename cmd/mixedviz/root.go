// SPDX-License-Identifier: MIT

package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/mixedviz/internal/config"
	"github.com/katalvlaran/mixedviz/internal/logging"
	"github.com/katalvlaran/mixedviz/lmm"
	"github.com/katalvlaran/mixedviz/ranef"
	"github.com/katalvlaran/mixedviz/simulate"
)

// app carries the state shared by all subcommands after PersistentPreRunE.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     config.Config
	log     *slog.Logger
}

// flag name → config key
var flagKeys = []struct{ flag, key string }{
	{"log-level", "log.level"},
	{"format", "output.format"},
	{"width", "output.width"},
	{"level", "output.level"},
	{"order-by", "output.order_by"},
	{"concurrency", "output.concurrency"},
	{"seed", "model.seed"},
	{"groups", "model.groups"},
	{"occasions", "model.occasions"},
	{"factor", "model.factor"},
	{"crossed", "model.crossed"},
	{"crossed-levels", "model.crossed_levels"},
	{"crossed-sd", "model.crossed_sd"},
	{"scale", "shrinkage.scale"},
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "mixedviz",
		Short: "Random-effect diagnostics for linear mixed models",
		Long: `mixedviz simulates a longitudinal linear mixed model and prints the
random-effect summaries behind two diagnostics:

  caterpillar - conditional means with prediction intervals per level
  shrinkage   - conditional means at the fitted vs a reference θ

Settings come from flags, MIXEDVIZ_* environment variables or --config.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.load,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (yaml, toml or json)")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.String("format", config.FormatText, "output format: text or yaml")
	pf.Int("width", 80, "text output width")
	pf.Float64("level", 0.95, "prediction interval coverage")
	pf.Int("order-by", 0, "sort rows by this term (0-based), -1 keeps level order")
	pf.Int("concurrency", 1, "factors extracted in parallel")
	pf.Int64("seed", 1, "simulation seed")
	pf.Int("groups", 18, "levels of the primary factor")
	pf.Int("occasions", 10, "observations per level")
	pf.String("factor", "subj", "primary grouping factor name")
	pf.String("crossed", "", "add a crossed random-intercept factor with this name")
	pf.Int("crossed-levels", 6, "levels of the crossed factor")
	pf.Float64("crossed-sd", 10, "standard deviation of the crossed intercepts")
	pf.Float64("scale", ranef.DefaultReferenceScale, "Λ diagonal of the reference θ")
	for _, fk := range flagKeys {
		_ = a.v.BindPFlag(fk.key, pf.Lookup(fk.flag))
	}

	root.AddCommand(newCaterpillarCmd(a), newShrinkageCmd(a))

	return root
}

// load resolves configuration and builds the logger.
func (a *app) load(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	errOut := cmd.ErrOrStderr()
	log, err := logging.New(errOut, cfg.Log.Level, !logging.IsTerminal(errOut))
	if err != nil {
		return err
	}
	a.cfg, a.log = cfg, log

	return nil
}

// model simulates the configured design.
func (a *app) model() (*lmm.Model, error) {
	mc := a.cfg.Model
	opts := []simulate.Option{
		simulate.WithSeed(mc.Seed),
		simulate.WithGroups(mc.Groups),
		simulate.WithOccasions(mc.Occasions),
		simulate.WithFactorName(mc.Factor),
	}
	if mc.Crossed != "" {
		opts = append(opts, simulate.WithCrossedFactor(mc.Crossed, mc.CrossedLevels, mc.CrossedSD))
	}
	m, err := simulate.Longitudinal(opts...)
	if err != nil {
		return nil, err
	}
	a.log.Debug("model simulated",
		"factors", m.GroupingFactors(),
		"observations", m.NumObs(),
		"theta", m.CovarianceParams(),
		"sigma", m.ResidualScale())

	return m, nil
}

func (a *app) orderBy() ranef.OrderBy {
	if a.cfg.Output.OrderBy < 0 {
		return ranef.Unsorted()
	}

	return ranef.ByColumn(a.cfg.Output.OrderBy)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}

	return enc.Close()
}
