package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/eqsat/internal/eg"
	"github.com/roach88/eqsat/internal/exprlang"
	"github.com/roach88/eqsat/internal/rulepack"
	"github.com/roach88/eqsat/internal/store"
	"github.com/roach88/eqsat/internal/wire"
)

// maxSaturationPasses bounds --passes 0 saturation so a diverging rule
// set cannot spin forever.
const maxSaturationPasses = 64

// RunOptions holds flags for the run command.
type RunOptions struct {
	Rules  string
	Passes int
	DB     string
	Save   string
}

// NewRunCommand creates the run command: build expressions into an
// e-graph, apply a rule pack, and print the resulting classes.
func NewRunCommand(root *RootOptions) *cobra.Command {
	opts := &RunOptions{}

	cmd := &cobra.Command{
		Use:   "run [expression]...",
		Short: "Build expressions and apply rewrite rules",
		Long: "Builds each expression argument into a shared e-graph, applies the\n" +
			"rule pack for the requested number of passes (0 = run until the\n" +
			"graph's fingerprint stops changing), and prints the classes.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd, root, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.Rules, "rules", "", "path to a CUE rule pack")
	cmd.Flags().IntVar(&opts.Passes, "passes", 1, "rewrite passes (0 = saturate)")
	cmd.Flags().StringVar(&opts.DB, "db", "", "snapshot database path")
	cmd.Flags().StringVar(&opts.Save, "save", "", "save the result under this snapshot name (requires --db)")

	return cmd
}

func runRun(cmd *cobra.Command, root *RootOptions, opts *RunOptions, args []string) error {
	if opts.Save != "" && opts.DB == "" {
		return fmt.Errorf("--save requires --db")
	}

	g := eg.New()
	exprs := make(map[string]eg.ClassID, len(args))
	for _, src := range args {
		id, err := exprlang.ParseExpression(src, g)
		if err != nil {
			return fmt.Errorf("expression %q: %w", src, err)
		}
		exprs[src] = id
	}
	g.RestoreInvariants()
	slog.Debug("expressions built", "classes", g.NumClasses(), "terms", g.NumTerms())

	if opts.Rules != "" {
		pack, err := rulepack.Load(opts.Rules)
		if err != nil {
			return err
		}
		if err := saturate(g, pack, opts.Passes); err != nil {
			return err
		}
	}

	fingerprint := wire.Fingerprint(g.Snapshot())

	if opts.Save != "" {
		s, err := store.Open(opts.DB)
		if err != nil {
			return err
		}
		defer s.Close()

		payload := wire.Encode(g.Snapshot())
		id, err := s.SaveSnapshot(cmd.Context(), opts.Save, payload, fingerprint, g.NumClasses())
		if err != nil {
			return err
		}
		slog.Debug("snapshot saved", "name", opts.Save, "id", id)
	}

	return printGraph(cmd.OutOrStdout(), root, g, fingerprint, exprs)
}

// saturate applies every rule of the pack per pass. With passes == 0 it
// runs until the graph's fingerprint stops changing.
func saturate(g *eg.Graph, pack *rulepack.Pack, passes int) error {
	toFixpoint := passes == 0
	if toFixpoint {
		passes = maxSaturationPasses
	}

	previous := wire.Fingerprint(g.Snapshot())
	for pass := 1; pass <= passes; pass++ {
		for _, rule := range pack.Rules {
			g.Rewrite(rule.Rule)
		}
		current := wire.Fingerprint(g.Snapshot())
		slog.Debug("rewrite pass complete",
			"pack", pack.Name, "pass", pass, "classes", g.NumClasses())

		if toFixpoint && current == previous {
			return nil
		}
		previous = current
	}

	if toFixpoint {
		return fmt.Errorf("no fixpoint after %d passes; rule set may diverge", maxSaturationPasses)
	}
	return nil
}
