package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newListCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List lessons",
		Long:  "List lessons in catalog order. All given filters must match.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(a, cmd)
		},
	}

	cmd.Flags().StringP("search", "s", "", "Case-insensitive text to find in title or description")
	addFilterFlags(cmd)
	cmd.Flags().Bool("ids-only", false, "Only output id and title")

	return cmd
}

func runList(a *app, cmd *cobra.Command) error {
	search, _ := cmd.Flags().GetString("search")
	idsOnly, _ := cmd.Flags().GetBool("ids-only")

	m, rec, err := a.openCatalog(cmd.Context())
	if err != nil {
		return err
	}
	defer rec.Close()

	crit := criteriaFromFlags(cmd)
	crit.Search = search
	lessons := m.Filter(crit)

	if idsOnly {
		for _, l := range lessons {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", l.ID, l.Title)
		}
		return nil
	}
	return printJSON(cmd, lessons)
}
