// Package rulepack loads named sets of rewrite rules from CUE files.
//
// A rule pack is declared as:
//
//	pack: {
//		name: "arith-basics"
//		rules: [
//			{name: "commutativity", rule: "$x + $y => $y + $x"},
//			{name: "identity", rule: "$x * 1 => $x"},
//		]
//	}
//
// Rule strings use the expression language from internal/exprlang. Loading
// is all-or-nothing: a pack with any invalid rule fails to compile.
package rulepack

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/eqsat/internal/eg"
	"github.com/roach88/eqsat/internal/exprlang"
)

// NamedRule pairs a rule's declared name with the compiled rewrite rule.
type NamedRule struct {
	Name string
	Rule eg.RewriteRule
}

// Pack is a compiled rule pack.
type Pack struct {
	Name  string
	Rules []NamedRule
}

// CompileError reports a malformed rule pack with CUE position info when
// available.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Load reads and compiles a rule pack from a CUE file.
func Load(path string) (*Pack, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load rule pack: %w", err)
	}

	ctx := cuecontext.New()
	v := ctx.CompileBytes(src, cue.Filename(path))
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	return Compile(v.LookupPath(cue.ParsePath("pack")))
}

// Compile parses a CUE value into a Pack. The value should be the pack
// struct itself.
func Compile(v cue.Value) (*Pack, error) {
	if !v.Exists() {
		return nil, &CompileError{Field: "pack", Message: "pack is required"}
	}
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	pack := &Pack{}

	nameVal := v.LookupPath(cue.ParsePath("name"))
	if !nameVal.Exists() {
		return nil, &CompileError{
			Field:   "name",
			Message: "name is required",
			Pos:     v.Pos(),
		}
	}
	name, err := nameVal.String()
	if err != nil {
		return nil, formatCUEError(err)
	}
	pack.Name = name

	rulesVal := v.LookupPath(cue.ParsePath("rules"))
	if !rulesVal.Exists() {
		return nil, &CompileError{
			Field:   "rules",
			Message: "rules is required",
			Pos:     v.Pos(),
		}
	}

	iter, err := rulesVal.List()
	if err != nil {
		return nil, formatCUEError(err)
	}
	for iter.Next() {
		named, err := compileRule(iter.Value())
		if err != nil {
			return nil, err
		}
		pack.Rules = append(pack.Rules, *named)
	}

	if len(pack.Rules) == 0 {
		return nil, &CompileError{
			Field:   "rules",
			Message: "at least one rule is required",
			Pos:     rulesVal.Pos(),
		}
	}

	return pack, nil
}

func compileRule(v cue.Value) (*NamedRule, error) {
	nameVal := v.LookupPath(cue.ParsePath("name"))
	if !nameVal.Exists() {
		return nil, &CompileError{
			Field:   "rules.name",
			Message: "rule name is required",
			Pos:     v.Pos(),
		}
	}
	name, err := nameVal.String()
	if err != nil {
		return nil, formatCUEError(err)
	}

	ruleVal := v.LookupPath(cue.ParsePath("rule"))
	if !ruleVal.Exists() {
		return nil, &CompileError{
			Field:   "rules.rule",
			Message: fmt.Sprintf("rule %q has no rule string", name),
			Pos:     v.Pos(),
		}
	}
	src, err := ruleVal.String()
	if err != nil {
		return nil, formatCUEError(err)
	}

	rule, err := exprlang.ParseRule(src)
	if err != nil {
		return nil, &CompileError{
			Field:   "rules.rule",
			Message: fmt.Sprintf("rule %q: %v", name, err),
			Pos:     ruleVal.Pos(),
		}
	}

	return &NamedRule{Name: name, Rule: rule}, nil
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	first := errs[0]
	return &CompileError{
		Field:   "cue",
		Message: first.Error(),
		Pos:     first.Position(),
	}
}
