package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/roach88/eqsat/internal/eg"
)

// classView is the JSON shape of one equivalence class.
type classView struct {
	ID    eg.ClassID `json:"id"`
	Terms []string   `json:"terms"`
}

// graphView is the JSON shape of a printed graph.
type graphView struct {
	Classes     []classView       `json:"classes"`
	ClassCount  int               `json:"class_count"`
	Fingerprint string            `json:"fingerprint,omitempty"`
	Expressions map[string]string `json:"expressions,omitempty"`
}

// renderTerm formats a term as name(child, child) with canonical child
// class ids, or as the bare name for leaves.
func renderTerm(g *eg.Graph, t *eg.Term) string {
	if t.Arity() == 0 {
		return t.Name()
	}
	parts := make([]string, t.Arity())
	for i, child := range t.Children() {
		parts[i] = fmt.Sprintf("#%d", g.Find(child))
	}
	return fmt.Sprintf("%s(%s)", t.Name(), strings.Join(parts, ", "))
}

func buildGraphView(g *eg.Graph, fingerprint string, exprs map[string]eg.ClassID) graphView {
	view := graphView{
		ClassCount:  g.NumClasses(),
		Fingerprint: fingerprint,
	}

	for _, id := range g.Classes() {
		cv := classView{ID: id}
		for _, t := range g.Class(id).Terms() {
			cv.Terms = append(cv.Terms, renderTerm(g, t))
		}
		view.Classes = append(view.Classes, cv)
	}

	if len(exprs) > 0 {
		view.Expressions = make(map[string]string, len(exprs))
		for name, id := range exprs {
			view.Expressions[name] = fmt.Sprintf("#%d", g.Find(id))
		}
	}

	return view
}

// printGraph writes the graph's classes in the selected format.
func printGraph(w io.Writer, opts *RootOptions, g *eg.Graph, fingerprint string, exprs map[string]eg.ClassID) error {
	view := buildGraphView(g, fingerprint, exprs)

	if opts.Format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	}

	fmt.Fprintf(w, "%d classes\n", view.ClassCount)
	for _, cv := range view.Classes {
		fmt.Fprintf(w, "  #%d: %s\n", cv.ID, strings.Join(cv.Terms, " = "))
	}
	if view.Fingerprint != "" {
		fmt.Fprintf(w, "fingerprint %s\n", view.Fingerprint)
	}
	names := make([]string, 0, len(view.Expressions))
	for name := range view.Expressions {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "%s -> %s\n", name, view.Expressions[name])
	}
	return nil
}
