// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/mixedviz/internal/config"
	"github.com/katalvlaran/mixedviz/ranef"
)

// run executes the root command and returns stdout and stderr.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()

	return stdout.String(), stderr.String(), err
}

type tableDoc struct {
	Factor  string   `yaml:"factor"`
	Columns []string `yaml:"columns"`
	Rows    []struct {
		Level  string    `yaml:"level"`
		Ranef  []float64 `yaml:"ranef"`
		StdDev []float64 `yaml:"stddev"`
	} `yaml:"rows"`
}

func TestCaterpillarText(t *testing.T) {
	t.Parallel()
	out, _, err := run(t, "caterpillar", "--groups", "4", "--log-level", "error")
	require.NoError(t, err)

	assert.Contains(t, out, "subj: (Intercept), 95% intervals")
	assert.Contains(t, out, "subj: days, 95% intervals")
	for _, lvl := range []string{"S01", "S02", "S03", "S04"} {
		assert.Contains(t, out, lvl)
	}
}

func TestCaterpillarYAML(t *testing.T) {
	t.Parallel()
	out, _, err := run(t, "caterpillar", "--format", "yaml", "--groups", "5",
		"--crossed", "item", "--crossed-levels", "3", "--concurrency", "2")
	require.NoError(t, err)

	var docs []tableDoc
	require.NoError(t, yaml.Unmarshal([]byte(out), &docs))
	require.Len(t, docs, 2)
	assert.Equal(t, "subj", docs[0].Factor)
	assert.Equal(t, []string{"(Intercept)", "days"}, docs[0].Columns)
	require.Len(t, docs[0].Rows, 5)
	for i := 1; i < len(docs[0].Rows); i++ {
		assert.LessOrEqual(t, docs[0].Rows[i-1].Ranef[0], docs[0].Rows[i].Ranef[0])
	}
	assert.Equal(t, "item", docs[1].Factor)
	assert.Len(t, docs[1].Rows, 3)
}

func TestCaterpillarUnsortedYAML(t *testing.T) {
	t.Parallel()
	out, _, err := run(t, "caterpillar", "subj", "--format", "yaml", "--groups", "3", "--order-by", "-1")
	require.NoError(t, err)

	var docs []tableDoc
	require.NoError(t, yaml.Unmarshal([]byte(out), &docs))
	require.Len(t, docs, 1)
	var levels []string
	for _, r := range docs[0].Rows {
		levels = append(levels, r.Level)
	}
	assert.Equal(t, []string{"S01", "S02", "S03"}, levels)
}

func TestCaterpillarRepeatedFactor(t *testing.T) {
	t.Parallel()
	out, _, err := run(t, "caterpillar", "subj", "subj", "--groups", "3")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "subj: (Intercept), 95% intervals"))

	out, _, err = run(t, "caterpillar", "subj", "subj", "--format", "yaml", "--groups", "3")
	require.NoError(t, err)
	var docs []tableDoc
	require.NoError(t, yaml.Unmarshal([]byte(out), &docs))
	assert.Len(t, docs, 1)
}

func TestCaterpillarUnknownFactor(t *testing.T) {
	t.Parallel()
	_, _, err := run(t, "caterpillar", "subject")
	require.Error(t, err)
	assert.ErrorIs(t, err, ranef.ErrUnknownGroupingFactor)
	assert.Contains(t, err.Error(), `did you mean "subj"?`)
}

func TestShrinkageYAML(t *testing.T) {
	t.Parallel()
	out, _, err := run(t, "shrinkage", "--format", "yaml", "--groups", "4", "--scale", "500")
	require.NoError(t, err)

	var doc struct {
		Factor          string    `yaml:"factor"`
		ReferenceParams []float64 `yaml:"reference_params"`
		Estimated       tableDoc  `yaml:"estimated"`
		Reference       tableDoc  `yaml:"reference"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "subj", doc.Factor)
	assert.Equal(t, []float64{500, 0, 500}, doc.ReferenceParams)
	assert.Len(t, doc.Estimated.Rows, 4)
	assert.Len(t, doc.Reference.Rows, 4)
}

func TestShrinkageText(t *testing.T) {
	t.Parallel()
	out, _, err := run(t, "shrinkage", "subj", "--groups", "3", "--width", "100")
	require.NoError(t, err)
	assert.Contains(t, out, "subj: shrinkage, reference θ = [10000 0 10000]")
	assert.Equal(t, 3+3, strings.Count(out, "→"))
}

func TestShrinkageTooManyArgs(t *testing.T) {
	t.Parallel()
	_, _, err := run(t, "shrinkage", "a", "b")
	assert.Error(t, err)
}

func TestInvalidSetting(t *testing.T) {
	t.Parallel()
	_, _, err := run(t, "caterpillar", "--format", "json")
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestShrinkageInfiniteScale(t *testing.T) {
	t.Parallel()
	_, _, err := run(t, "shrinkage", "--scale", "Inf")
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestDebugLogging(t *testing.T) {
	t.Parallel()
	_, stderr, err := run(t, "shrinkage", "--groups", "2", "--log-level", "debug")
	require.NoError(t, err)
	assert.Contains(t, stderr, "model simulated")
	assert.Contains(t, stderr, "shrinkage")
}
