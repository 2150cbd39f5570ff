package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/eqsat/internal/eg"
	"github.com/roach88/eqsat/internal/store"
	"github.com/roach88/eqsat/internal/wire"
)

// NewSnapshotsCommand creates the snapshots command: list stored
// snapshots in insertion order.
func NewSnapshotsCommand(root *RootOptions) *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "snapshots",
		Short: "List stored snapshots",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := store.Open(dbPath)
			if err != nil {
				return err
			}
			defer s.Close()

			records, err := s.ListSnapshots(cmd.Context())
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if root.Format == "json" {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(records)
			}

			for _, rec := range records {
				fmt.Fprintf(w, "%s\t%s\tseq=%d\tclasses=%d\t%s\n",
					rec.ID, rec.Name, rec.CreatedSeq, rec.ClassCount, rec.Fingerprint)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "snapshot database path")
	cmd.MarkFlagRequired("db")

	return cmd
}

// NewExportCommand creates the export command: write a stored snapshot's
// wire encoding to a file.
func NewExportCommand(root *RootOptions) *cobra.Command {
	var (
		dbPath string
		name   string
		out    string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a stored snapshot to a wire-format file",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := store.Open(dbPath)
			if err != nil {
				return err
			}
			defer s.Close()

			rec, err := s.LoadSnapshot(cmd.Context(), name)
			if err != nil {
				return err
			}

			if err := os.WriteFile(out, rec.Payload, 0o644); err != nil {
				return fmt.Errorf("export snapshot: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "exported %s (%d classes) to %s\n",
				rec.Name, rec.ClassCount, out)
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "snapshot database path")
	cmd.Flags().StringVar(&name, "name", "", "snapshot name")
	cmd.Flags().StringVar(&out, "out", "", "output file")
	cmd.MarkFlagRequired("db")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("out")

	return cmd
}

// NewImportCommand creates the import command: decode a wire-format file,
// rebuild the graph, and print its classes.
func NewImportCommand(root *RootOptions) *cobra.Command {
	var in string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a wire-format snapshot file and print its classes",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(in)
			if err != nil {
				return fmt.Errorf("import snapshot: %w", err)
			}

			snapshot, err := wire.Decode(data)
			if err != nil {
				return err
			}

			g, err := eg.FromSnapshot(snapshot)
			if err != nil {
				return err
			}

			return printGraph(cmd.OutOrStdout(), root, g, wire.Fingerprint(snapshot), nil)
		},
	}

	cmd.Flags().StringVar(&in, "in", "", "input file")
	cmd.MarkFlagRequired("in")

	return cmd
}
