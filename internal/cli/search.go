package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func newSearchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search lessons by title or description",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, rec, err := a.openCatalog(cmd.Context())
			if err != nil {
				return err
			}
			defer rec.Close()

			crit := criteriaFromFlags(cmd)
			crit.Search = strings.Join(args, " ")
			return printJSON(cmd, m.Filter(crit))
		},
	}

	addFilterFlags(cmd)
	return cmd
}
