package harness

import (
	"fmt"

	"github.com/roach88/eqsat/internal/eg"
	"github.com/roach88/eqsat/internal/exprlang"
)

// TraceEvent records the class count after one phase of a scenario run.
// Phases are "build", "unions", and one "pass" event per rewrite pass.
type TraceEvent struct {
	Phase   string `json:"phase"`
	Pass    int    `json:"pass,omitempty"`
	Classes int    `json:"classes"`
}

// AssertionResult is the outcome of one scenario assertion.
type AssertionResult struct {
	Type  string `json:"type"`
	Left  string `json:"left,omitempty"`
	Right string `json:"right,omitempty"`
	Count int    `json:"count,omitempty"`
	OK    bool   `json:"ok"`
}

// Result is the outcome of running a scenario.
type Result struct {
	Graph      *eg.Graph
	IDs        map[string]eg.ClassID
	Trace      []TraceEvent
	Assertions []AssertionResult
}

// Failed reports how many assertions did not hold.
func (r *Result) Failed() int {
	failed := 0
	for _, a := range r.Assertions {
		if !a.OK {
			failed++
		}
	}
	return failed
}

// Run executes a scenario: build expressions, apply unions, run rewrite
// passes, evaluate assertions. Errors are structural (bad expressions or
// rules); failed assertions are reported in the result, not as errors.
func Run(scenario *Scenario) (*Result, error) {
	if err := scenario.validate(); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	g := eg.New()
	ids := make(map[string]eg.ClassID, len(scenario.Expressions))

	for _, e := range scenario.Expressions {
		id, err := exprlang.ParseExpression(e.Expr, g)
		if err != nil {
			return nil, fmt.Errorf("expression %q: %w", e.Name, err)
		}
		ids[e.Name] = id
	}
	g.RestoreInvariants()

	result := &Result{Graph: g, IDs: ids}
	result.Trace = append(result.Trace, TraceEvent{Phase: "build", Classes: g.NumClasses()})

	if len(scenario.Unions) > 0 {
		for _, u := range scenario.Unions {
			g.Unite(ids[u.Left], ids[u.Right])
		}
		g.RestoreInvariants()
		result.Trace = append(result.Trace, TraceEvent{Phase: "unions", Classes: g.NumClasses()})
	}

	rules := make([]eg.RewriteRule, len(scenario.Rules))
	for i, src := range scenario.Rules {
		rule, err := exprlang.ParseRule(src)
		if err != nil {
			return nil, fmt.Errorf("rule %q: %w", src, err)
		}
		rules[i] = rule
	}

	passes := scenario.Passes
	if passes == 0 && len(rules) > 0 {
		passes = 1
	}

	for pass := 1; pass <= passes; pass++ {
		for _, rule := range rules {
			g.Rewrite(rule)
		}
		result.Trace = append(result.Trace, TraceEvent{Phase: "pass", Pass: pass, Classes: g.NumClasses()})
	}

	for _, a := range scenario.Assertions {
		result.Assertions = append(result.Assertions, evaluate(a, g, ids))
	}

	return result, nil
}

func evaluate(a Assertion, g *eg.Graph, ids map[string]eg.ClassID) AssertionResult {
	res := AssertionResult{Type: a.Type, Left: a.Left, Right: a.Right, Count: a.Count}
	switch a.Type {
	case AssertEqual:
		res.OK = g.Find(ids[a.Left]) == g.Find(ids[a.Right])
	case AssertNotEqual:
		res.OK = g.Find(ids[a.Left]) != g.Find(ids[a.Right])
	case AssertClassCount:
		res.OK = g.NumClasses() == a.Count
	}
	return res
}
