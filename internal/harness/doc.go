// Package harness runs declarative e-graph scenarios for conformance
// testing.
//
// A scenario is a YAML file naming expressions to build, equalities to
// assert, rewrite rules to apply for a number of passes, and assertions
// over the resulting graph. The harness records a trace of class counts
// per phase; RunWithGolden compares the trace against a golden file under
// testdata/golden so behavioral drift shows up as a diff.
package harness
