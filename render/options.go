// SPDX-License-Identifier: MIT

package render

import (
	"fmt"

	"github.com/katalvlaran/mixedviz/ranef"
)

// DefaultLevel is the default coverage of caterpillar intervals.
const DefaultLevel = 0.95

// Option configures Caterpillar and Shrinkage.
type Option func(*config)

type config struct {
	orderBy ranef.OrderBy
	level   float64
	columns []int
}

func newConfig(opts ...Option) config {
	cfg := config{orderBy: ranef.DefaultOrderBy, level: DefaultLevel}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// WithOrderBy sets the row order.
func WithOrderBy(by ranef.OrderBy) Option {
	return func(c *config) { c.orderBy = by }
}

// WithLevel sets the interval coverage. Panics unless 0 < level < 1.
func WithLevel(level float64) Option {
	if !(level > 0 && level < 1) {
		panic(fmt.Sprintf("render: WithLevel(%g): need 0 < level < 1", level))
	}

	return func(c *config) { c.level = level }
}

// WithColumns restricts Caterpillar to the given terms (0-based), in that
// order. Out-of-range indexes surface as ranef.ErrIndexOutOfRange.
func WithColumns(cols ...int) Option {
	cp := append([]int(nil), cols...)

	return func(c *config) { c.columns = cp }
}
