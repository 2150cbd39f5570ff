package harness

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario defines a declarative e-graph conformance scenario.
type Scenario struct {
	// Name uniquely identifies this scenario; it is also the golden
	// file name.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description,omitempty"`

	// Expressions are built into the graph in order. Later expressions
	// share sub-terms with earlier ones through hash-consing.
	Expressions []NamedExpression `yaml:"expressions"`

	// Unions asserts equalities between named expressions before any
	// rewriting happens.
	Unions []UnionStep `yaml:"unions,omitempty"`

	// Rules are rewrite rules in the expression language, applied in
	// order on every pass.
	Rules []string `yaml:"rules,omitempty"`

	// Passes is the number of rewrite passes. Defaults to 1 when rules
	// are present.
	Passes int `yaml:"passes,omitempty"`

	// Assertions validate the final graph.
	Assertions []Assertion `yaml:"assertions"`
}

// NamedExpression binds a name to an expression source string, so unions
// and assertions can refer to its class id.
type NamedExpression struct {
	Name string `yaml:"name"`
	Expr string `yaml:"expr"`
}

// UnionStep asserts that two named expressions are equal.
type UnionStep struct {
	Left  string `yaml:"left"`
	Right string `yaml:"right"`
}

// Assertion types.
const (
	AssertEqual      = "equal"       // find(left) == find(right)
	AssertNotEqual   = "not_equal"   // find(left) != find(right)
	AssertClassCount = "class_count" // NumClasses() == count
)

// Assertion is one check over the final graph.
type Assertion struct {
	Type  string `yaml:"type"`
	Left  string `yaml:"left,omitempty"`
	Right string `yaml:"right,omitempty"`
	Count int    `yaml:"count,omitempty"`
}

// LoadScenario reads a scenario from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load scenario: %w", err)
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("load scenario %s: %w", path, err)
	}

	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return &s, nil
}

func (s *Scenario) validate() error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if len(s.Expressions) == 0 {
		return fmt.Errorf("at least one expression is required")
	}

	names := make(map[string]bool, len(s.Expressions))
	for _, e := range s.Expressions {
		if e.Name == "" || e.Expr == "" {
			return fmt.Errorf("expressions need both name and expr")
		}
		if names[e.Name] {
			return fmt.Errorf("duplicate expression name %q", e.Name)
		}
		names[e.Name] = true
	}

	for _, u := range s.Unions {
		if !names[u.Left] || !names[u.Right] {
			return fmt.Errorf("union references unknown expression %q or %q", u.Left, u.Right)
		}
	}

	for _, a := range s.Assertions {
		switch a.Type {
		case AssertEqual, AssertNotEqual:
			if !names[a.Left] || !names[a.Right] {
				return fmt.Errorf("%s assertion references unknown expression %q or %q", a.Type, a.Left, a.Right)
			}
		case AssertClassCount:
			if a.Count <= 0 {
				return fmt.Errorf("class_count assertion needs a positive count")
			}
		default:
			return fmt.Errorf("unknown assertion type %q", a.Type)
		}
	}

	return nil
}
