// SPDX-License-Identifier: MIT

package lmm

import "github.com/katalvlaran/mixedviz/ranef"

var _ ranef.FittedModel = (*Model)(nil)

// WithCovarianceParams is Refit typed for the ranef capability set.
func (m *Model) WithCovarianceParams(theta []float64) (ranef.FittedModel, error) {
	out, err := m.Refit(theta)
	if err != nil {
		return nil, err
	}

	return out, nil
}
