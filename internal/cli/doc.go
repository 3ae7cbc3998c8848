package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/uklc/lessons/internal/model"
)

func newDocCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doc",
		Short: "Resolve a lesson's PDF",
		Long:  "Print the SharePoint link of a lesson's PDF, or write an embedded PDF to a file.",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, _ := cmd.Flags().GetString("id")
			out, _ := cmd.Flags().GetString("output")

			m, rec, err := a.openCatalog(cmd.Context())
			if err != nil {
				return err
			}
			defer rec.Close()

			l, err := m.Get(id)
			if err != nil {
				return fmt.Errorf("doc: %w", err)
			}
			if l.PDFPath == "" {
				return fmt.Errorf("doc: lesson %s has no document", l.ID)
			}
			ref, err := model.ParseDocumentRef(l.PDFPath)
			if err != nil {
				return fmt.Errorf("doc: %w", err)
			}

			if ref.Kind == model.DocumentLink {
				fmt.Fprintln(cmd.OutOrStdout(), ref.URL)
				return nil
			}
			if out == "" {
				out = l.ID + ".pdf"
			}
			if err := os.WriteFile(out, ref.Data, 0o644); err != nil {
				return fmt.Errorf("doc: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().String("id", "", "Lesson id (required)")
	cmd.Flags().StringP("output", "o", "", "File for an embedded PDF (default <id>.pdf)")
	cmd.MarkFlagRequired("id")
	return cmd
}
