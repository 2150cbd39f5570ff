package eg

// Pattern is a tagged variant: a Variable or a PatternTerm. Exhaustive
// type switches over the two cases replace a vtable hierarchy.
type Pattern interface {
	pattern()
}

// Variable is a pattern variable, written $name in the test language.
// It matches any class and binds the class's canonical id.
type Variable string

func (Variable) pattern() {}

// PatternTerm matches terms with the given name whose children match the
// argument patterns position by position. A PatternTerm with no arguments
// matches leaf symbols.
type PatternTerm struct {
	Name string
	Args []Pattern
}

func (PatternTerm) pattern() {}

// RewriteRule equates every instance of LeftHand with the corresponding
// instantiation of RightHand.
type RewriteRule struct {
	LeftHand  Pattern
	RightHand Pattern
}

// Bindings is a variable-to-class-id environment produced by matching.
//
// Environments are copy-on-extend: binding a new variable produces a new
// value, so sibling match branches never observe each other's bindings.
type Bindings map[string]ClassID

// extend returns a copy of b with name bound to id.
func (b Bindings) extend(name string, id ClassID) Bindings {
	next := make(Bindings, len(b)+1)
	for k, v := range b {
		next[k] = v
	}
	next[name] = id
	return next
}
