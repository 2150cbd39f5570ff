// Package exprlang parses the small expression language used to feed the
// e-graph: expressions like "(a + b) + c" and rewrite rules like
// "$x * ($y * $z) => ($x * $y) * $z" or "$x * 0 => 0".
//
// Symbols are runs of letters and digits; pattern variables are symbols
// prefixed with '$'; the binary operators are - + * / and associate to the
// left; "=>" separates the two sides of a rewrite rule.
//
// The parser is the validation boundary: malformed input yields a
// *ParseError, never a panic.
package exprlang

import (
	"fmt"

	"github.com/roach88/eqsat/internal/eg"
)

// ParseError reports a syntax error with a byte offset into the source.
type ParseError struct {
	Pos     int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at offset %d: %s", e.Pos, e.Message)
}

func errAt(pos int, format string, args ...any) *ParseError {
	return &ParseError{Pos: pos, Message: fmt.Sprintf(format, args...)}
}

// node is the parsed syntax tree: a symbol, a pattern variable, or a
// binary operation.
type node struct {
	// op is set for operations; name for symbols and variables.
	op          string
	name        string
	isVariable  bool
	left, right *node
	pos         int
}

// ParseExpression parses src and builds the expression into the graph,
// returning the class id of the root. Pattern variables are not allowed
// in plain expressions.
func ParseExpression(src string, g *eg.Graph) (eg.ClassID, error) {
	root, err := parseOne(src)
	if err != nil {
		return 0, err
	}
	return buildExpression(root, g)
}

// ParsePattern parses src into a pattern for matching or instantiation.
func ParsePattern(src string) (eg.Pattern, error) {
	root, err := parseOne(src)
	if err != nil {
		return nil, err
	}
	return buildPattern(root), nil
}

// ParseRule parses "lhs => rhs" into a rewrite rule.
func ParseRule(src string) (eg.RewriteRule, error) {
	p := newParser(src)
	lhs, err := p.parseExpression()
	if err != nil {
		return eg.RewriteRule{}, err
	}
	if p.peek().kind != tokArrow {
		return eg.RewriteRule{}, errAt(p.peek().pos, "expected \"=>\" in rewrite rule")
	}
	p.next()
	rhs, err := p.parseExpression()
	if err != nil {
		return eg.RewriteRule{}, err
	}
	if p.peek().kind != tokEOF {
		return eg.RewriteRule{}, errAt(p.peek().pos, "unexpected trailing input")
	}
	return eg.RewriteRule{
		LeftHand:  buildPattern(lhs),
		RightHand: buildPattern(rhs),
	}, nil
}

func parseOne(src string) (*node, error) {
	p := newParser(src)
	root, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if p.peek().kind == tokError {
		return nil, p.err
	}
	if p.peek().kind != tokEOF {
		return nil, errAt(p.peek().pos, "unexpected trailing input")
	}
	return root, nil
}

func buildExpression(n *node, g *eg.Graph) (eg.ClassID, error) {
	if n.isVariable {
		return 0, errAt(n.pos, "pattern variable $%s not allowed in expression", n.name)
	}
	if n.op == "" {
		return g.AddTerm(n.name), nil
	}
	left, err := buildExpression(n.left, g)
	if err != nil {
		return 0, err
	}
	right, err := buildExpression(n.right, g)
	if err != nil {
		return 0, err
	}
	return g.AddOperation(n.op, []eg.ClassID{left, right}), nil
}

func buildPattern(n *node) eg.Pattern {
	if n.isVariable {
		return eg.Variable(n.name)
	}
	if n.op == "" {
		return eg.PatternTerm{Name: n.name}
	}
	return eg.PatternTerm{
		Name: n.op,
		Args: []eg.Pattern{buildPattern(n.left), buildPattern(n.right)},
	}
}
