package eg

import "fmt"

// Instantiate resolves a pattern to a class id under the given bindings.
// A variable resolves to its bound id; a term pattern recursively
// instantiates its arguments and hash-conses the resulting term, so an
// already-present term yields its existing class. Panics on unbound
// variables - the rule is ill-formed.
func (g *Graph) Instantiate(p Pattern, env Bindings) ClassID {
	switch p := p.(type) {
	case Variable:
		id, ok := env[string(p)]
		if !ok {
			panic(fmt.Sprintf("eg: unbound pattern variable $%s", string(p)))
		}
		return id

	case PatternTerm:
		if len(p.Args) == 0 {
			return g.AddTerm(p.Name)
		}
		children := make([]ClassID, len(p.Args))
		for i, arg := range p.Args {
			children[i] = g.Instantiate(arg, env)
		}
		return g.AddOperation(p.Name, children)

	default:
		panic(fmt.Sprintf("eg: unknown pattern type %T", p))
	}
}

// Rewrite applies a rule graph-wide: it matches the left-hand side against
// every class of the pre-rewrite state, instantiates both sides under each
// environment, unites the buffered pairs after the traversal, and restores
// invariants once.
//
// A single call is not guaranteed to reach fixpoint for rules that
// compose; clients drive saturation by repeated calls and own the
// termination policy. The equivalence relation only grows - classes are
// never split.
func (g *Graph) Rewrite(rule RewriteRule) {
	type unionPair struct {
		lhs, rhs ClassID
	}

	// Collect matches before any union: the class table is being read,
	// and the set of matches must depend only on the pre-rewrite state.
	var pending []unionPair
	for _, classID := range g.Classes() {
		for _, env := range g.Match(rule.LeftHand, classID, nil) {
			lhs := g.Instantiate(rule.LeftHand, env)
			rhs := g.Instantiate(rule.RightHand, env)
			pending = append(pending, unionPair{lhs: lhs, rhs: rhs})
		}
	}

	for _, p := range pending {
		g.Unite(p.lhs, p.rhs)
	}

	g.RestoreInvariants()
}
