package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/uklc/lessons/internal/catalog"
)

func newExportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all lessons as JSON",
		Long:  "Write the whole catalog as indented JSON to a backup file (default " + catalog.ExportFilename + "). Use -o - for stdout.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(a, cmd)
		},
	}

	cmd.Flags().StringP("output", "o", catalog.ExportFilename, "Output file, - for stdout")
	return cmd
}

func runExport(a *app, cmd *cobra.Command) error {
	out, _ := cmd.Flags().GetString("output")

	m, rec, err := a.openCatalog(cmd.Context())
	if err != nil {
		return err
	}
	defer rec.Close()

	if out == "-" {
		return m.Export(cmd.OutOrStdout())
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := m.Export(f); err != nil {
		f.Close()
		return fmt.Errorf("export: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("export: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"exported":%d,"file":%q}`+"\n", len(m.Lessons()), out)
	return nil
}
