package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func newImportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Replace all lessons from a JSON backup",
		Long:  "Replace the whole catalog with the lessons in a JSON backup (file or stdin). Expects the format produced by export. Nothing changes if any record is invalid.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(a, cmd, args)
		},
	}

	return cmd
}

func runImport(a *app, cmd *cobra.Command, args []string) error {
	if err := a.requireAdmin(); err != nil {
		return err
	}

	var r io.Reader = cmd.InOrStdin()
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("import: %w", err)
		}
		defer f.Close()
		r = f
	}

	m, rec, err := a.openCatalog(cmd.Context())
	if err != nil {
		return err
	}
	defer rec.Close()

	n, err := m.Import(cmd.Context(), r)
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"imported":%d}`+"\n", n)
	return nil
}
