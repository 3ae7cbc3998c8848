package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newGetCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Show one lesson",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, _ := cmd.Flags().GetString("id")

			m, rec, err := a.openCatalog(cmd.Context())
			if err != nil {
				return err
			}
			defer rec.Close()

			l, err := m.Get(id)
			if err != nil {
				return fmt.Errorf("get: %w", err)
			}
			return printJSON(cmd, l)
		},
	}

	cmd.Flags().String("id", "", "Lesson id (required)")
	cmd.MarkFlagRequired("id")
	return cmd
}
