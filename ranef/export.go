// SPDX-License-Identifier: MIT

package ranef

import "gopkg.in/yaml.v3"

var (
	_ yaml.Marshaler = Info{}
	_ yaml.Marshaler = ShrinkagePair{}
)

// Table document shapes used by the YAML export.
type (
	infoDoc struct {
		Factor  string   `yaml:"factor"`
		Columns []string `yaml:"columns"`
		Rows    []rowDoc `yaml:"rows"`
	}

	rowDoc struct {
		Level  string    `yaml:"level"`
		Ranef  []float64 `yaml:"ranef,flow"`
		StdDev []float64 `yaml:"stddev,flow"`
	}

	pairDoc struct {
		Factor          string    `yaml:"factor"`
		ReferenceParams []float64 `yaml:"reference_params,flow"`
		Estimated       infoDoc   `yaml:"estimated"`
		Reference       infoDoc   `yaml:"reference"`
	}
)

func (in Info) doc() (infoDoc, error) {
	d := infoDoc{Factor: in.factor, Columns: in.ColumnNames(), Rows: make([]rowDoc, in.Len())}
	for i := range d.Rows {
		level, means, sds, err := in.Row(i)
		if err != nil {
			return infoDoc{}, err
		}
		d.Rows[i] = rowDoc{Level: level, Ranef: means, StdDev: sds}
	}

	return d, nil
}

// MarshalYAML renders the table row by row (gopkg.in/yaml.v3 Marshaler).
func (in Info) MarshalYAML() (interface{}, error) {
	return in.doc()
}

// MarshalYAML renders both tables and the reference θ.
func (p ShrinkagePair) MarshalYAML() (interface{}, error) {
	est, err := p.Estimated.doc()
	if err != nil {
		return nil, err
	}
	ref, err := p.Reference.doc()
	if err != nil {
		return nil, err
	}

	return pairDoc{
		Factor:          p.Factor,
		ReferenceParams: p.ReferenceParams,
		Estimated:       est,
		Reference:       ref,
	}, nil
}
