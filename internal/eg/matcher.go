package eg

import "fmt"

// Match evaluates a pattern against the class rooted at Find(classID) and
// returns every satisfying environment. An empty result is a legitimate
// no-match, not an error.
//
// A nil env starts an empty environment. Matching a variable that is
// already bound succeeds only if the binding resolves to the same root;
// matching an unbound variable extends a copy of the environment.
// Term-pattern arguments are threaded left to right, so earlier bindings
// constrain later ones.
func (g *Graph) Match(p Pattern, classID ClassID, env Bindings) []Bindings {
	rootID := g.unionFind.Find(classID)

	switch p := p.(type) {
	case Variable:
		name := string(p)
		if bound, ok := env[name]; ok {
			if g.unionFind.Find(bound) == rootID {
				return []Bindings{env}
			}
			return nil
		}
		if env == nil {
			env = Bindings{}
		}
		return []Bindings{env.extend(name, rootID)}

	case PatternTerm:
		var results []Bindings
		for _, t := range g.classes[rootID].terms {
			if t.name != p.Name || len(t.children) != len(p.Args) {
				continue
			}
			envs := []Bindings{env}
			for i, arg := range p.Args {
				var next []Bindings
				for _, e := range envs {
					next = append(next, g.Match(arg, t.children[i], e)...)
				}
				envs = next
				if len(envs) == 0 {
					break
				}
			}
			for _, e := range envs {
				if e == nil {
					e = Bindings{}
				}
				results = append(results, e)
			}
		}
		return results

	default:
		panic(fmt.Sprintf("eg: unknown pattern type %T", p))
	}
}
