package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/uklc/lessons/internal/model"
)

func newRmCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm",
		Short: "Delete a lesson",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRm(a, cmd)
		},
	}

	cmd.Flags().String("id", "", "Lesson id (required)")
	cmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
	cmd.MarkFlagRequired("id")

	return cmd
}

func runRm(a *app, cmd *cobra.Command) error {
	if err := a.requireAdmin(); err != nil {
		return err
	}
	id, _ := cmd.Flags().GetString("id")
	yes, _ := cmd.Flags().GetBool("yes")

	m, rec, err := a.openCatalog(cmd.Context())
	if err != nil {
		return err
	}
	defer rec.Close()

	confirm := func(l model.Lesson) bool {
		if yes {
			return true
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Delete %q (%s)? [y/N] ", l.Title, l.ID)
		line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true
		}
		return false
	}

	if err := m.Delete(cmd.Context(), id, confirm); err != nil {
		return fmt.Errorf("rm: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"id":%q}`+"\n", id)
	return nil
}
