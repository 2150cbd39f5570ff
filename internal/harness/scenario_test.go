package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadScenario(t *testing.T) {
	path := writeScenario(t, `
name: sample
description: loads from yaml
expressions:
  - name: a
    expr: a
  - name: a1
    expr: a * 1
rules:
  - "$x * 1 => $x"
passes: 1
assertions:
  - type: equal
    left: a
    right: a1
`)

	s, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, "sample", s.Name)
	assert.Len(t, s.Expressions, 2)
	assert.Len(t, s.Rules, 1)
	assert.Equal(t, 1, s.Passes)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadScenario_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"no name", "expressions: [{name: a, expr: a}]"},
		{"no expressions", "name: x"},
		{"duplicate names", `
name: x
expressions:
  - {name: a, expr: a}
  - {name: a, expr: b}
`},
		{"union references unknown", `
name: x
expressions:
  - {name: a, expr: a}
unions:
  - {left: a, right: nope}
`},
		{"assertion references unknown", `
name: x
expressions:
  - {name: a, expr: a}
assertions:
  - {type: equal, left: a, right: nope}
`},
		{"unknown assertion type", `
name: x
expressions:
  - {name: a, expr: a}
assertions:
  - {type: bogus}
`},
		{"class_count without count", `
name: x
expressions:
  - {name: a, expr: a}
assertions:
  - {type: class_count}
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeScenario(t, tt.content)
			_, err := LoadScenario(path)
			assert.Error(t, err)
		})
	}
}
