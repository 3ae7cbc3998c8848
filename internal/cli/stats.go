package cli

import (
	"github.com/spf13/cobra"
)

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show catalog statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, rec, err := a.openCatalog(cmd.Context())
			if err != nil {
				return err
			}
			defer rec.Close()

			st := m.Stats()
			st.StoredBytes = rec.Size()
			return printJSON(cmd, st)
		},
	}
}
