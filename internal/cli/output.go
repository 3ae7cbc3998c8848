package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/uklc/lessons/internal/filter"
)

func printJSON(cmd *cobra.Command, v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(b))
	return err
}

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().String("week", "", "Filter by week")
	cmd.Flags().String("programme", "", "Filter by programme")
	cmd.Flags().String("level", "", "Filter by level")
	cmd.Flags().String("focus", "", "Filter by focus")
	cmd.Flags().StringP("tags", "t", "", "Filter by tags, all must match (comma-separated)")
}

func criteriaFromFlags(cmd *cobra.Command) filter.Criteria {
	week, _ := cmd.Flags().GetString("week")
	programme, _ := cmd.Flags().GetString("programme")
	level, _ := cmd.Flags().GetString("level")
	focus, _ := cmd.Flags().GetString("focus")
	tagsStr, _ := cmd.Flags().GetString("tags")

	return filter.Criteria{
		Week:      week,
		Programme: programme,
		Level:     level,
		Focus:     focus,
		Tags:      splitTags(tagsStr),
	}
}
