// SPDX-License-Identifier: MIT

// Package config loads mixedviz CLI settings from defaults, an optional
// config file, MIXEDVIZ_* environment variables and bound flags.
package config

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g.
// MIXEDVIZ_MODEL_SEED=7.
const EnvPrefix = "MIXEDVIZ"

// Output formats.
const (
	FormatText = "text"
	FormatYAML = "yaml"
)

// ErrInvalid indicates a setting outside its allowed range.
var ErrInvalid = errors.New("config: invalid setting")

// Config is the complete CLI configuration.
type Config struct {
	Log       LogConfig       `mapstructure:"log"`
	Output    OutputConfig    `mapstructure:"output"`
	Model     ModelConfig     `mapstructure:"model"`
	Shrinkage ShrinkageConfig `mapstructure:"shrinkage"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// OutputConfig holds presentation settings.
type OutputConfig struct {
	Format      string  `mapstructure:"format"`
	Width       int     `mapstructure:"width"`
	Level       float64 `mapstructure:"level"`
	OrderBy     int     `mapstructure:"order_by"` // column index, -1 keeps level order
	Concurrency int     `mapstructure:"concurrency"`
}

// ModelConfig describes the simulated model the commands run on.
type ModelConfig struct {
	Seed          int64   `mapstructure:"seed"`
	Groups        int     `mapstructure:"groups"`
	Occasions     int     `mapstructure:"occasions"`
	Factor        string  `mapstructure:"factor"`
	Crossed       string  `mapstructure:"crossed"`
	CrossedLevels int     `mapstructure:"crossed_levels"`
	CrossedSD     float64 `mapstructure:"crossed_sd"`
}

// ShrinkageConfig holds the reference parameter settings.
type ShrinkageConfig struct {
	Scale float64 `mapstructure:"scale"`
}

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("output.format", FormatText)
	v.SetDefault("output.width", 80)
	v.SetDefault("output.level", 0.95)
	v.SetDefault("output.order_by", 0)
	v.SetDefault("output.concurrency", 1)
	v.SetDefault("model.seed", 1)
	v.SetDefault("model.groups", 18)
	v.SetDefault("model.occasions", 10)
	v.SetDefault("model.factor", "subj")
	v.SetDefault("model.crossed", "")
	v.SetDefault("model.crossed_levels", 6)
	v.SetDefault("model.crossed_sd", 10.0)
	v.SetDefault("shrinkage.scale", 10000.0)
}

// Load resolves the configuration held by v. When path is non-empty the
// file must exist and parse; otherwise only defaults, environment and
// bound flags apply.
func Load(v *viper.Viper, path string) (Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}

	return c, nil
}

// Validate checks ranges that the libraries would otherwise reject with a
// panic.
func (c Config) Validate() error {
	switch {
	case c.Output.Format != FormatText && c.Output.Format != FormatYAML:
		return fmt.Errorf("output.format %q: %w", c.Output.Format, ErrInvalid)
	case c.Output.Width < 40:
		return fmt.Errorf("output.width %d < 40: %w", c.Output.Width, ErrInvalid)
	case !(c.Output.Level > 0 && c.Output.Level < 1):
		return fmt.Errorf("output.level %g not in (0,1): %w", c.Output.Level, ErrInvalid)
	case c.Output.OrderBy < -1:
		return fmt.Errorf("output.order_by %d: %w", c.Output.OrderBy, ErrInvalid)
	case c.Output.Concurrency < 1:
		return fmt.Errorf("output.concurrency %d: %w", c.Output.Concurrency, ErrInvalid)
	case c.Model.Groups < 2 || c.Model.Occasions < 2:
		return fmt.Errorf("model needs ≥ 2 groups and occasions: %w", ErrInvalid)
	case c.Model.Factor == "":
		return fmt.Errorf("model.factor empty: %w", ErrInvalid)
	case c.Model.Crossed != "" && (c.Model.CrossedLevels < 2 || c.Model.CrossedSD < 0):
		return fmt.Errorf("model.crossed needs ≥ 2 levels and sd ≥ 0: %w", ErrInvalid)
	case c.Model.Crossed != "" && c.Model.Crossed == c.Model.Factor:
		return fmt.Errorf("model.crossed %q duplicates model.factor: %w", c.Model.Crossed, ErrInvalid)
	case !(c.Shrinkage.Scale > 0) || math.IsInf(c.Shrinkage.Scale, 0):
		return fmt.Errorf("shrinkage.scale %g: %w", c.Shrinkage.Scale, ErrInvalid)
	}

	return nil
}
