package cli

import (
	"github.com/spf13/cobra"

	"github.com/uklc/lessons/internal/model"
)

func newValuesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "values",
		Short: "Show the known weeks, programmes, levels, focuses and tags",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printJSON(cmd, map[string][]string{
				"weeks":      model.Weeks,
				"programmes": model.Programmes,
				"levels":     model.Levels,
				"focuses":    model.Focuses,
				"tags":       model.CommonTags,
			})
		},
	}
}
