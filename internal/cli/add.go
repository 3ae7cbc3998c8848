package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/uklc/lessons/internal/model"
)

func newAddCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a lesson",
		Long:  "Add a lesson. Use --description - to read the description from stdin.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(a, cmd)
		},
	}

	addLessonFlags(cmd)
	cmd.MarkFlagRequired("title")
	cmd.MarkFlagRequired("week")
	cmd.MarkFlagRequired("programme")
	cmd.MarkFlagRequired("level")
	cmd.MarkFlagRequired("focus")

	return cmd
}

func addLessonFlags(cmd *cobra.Command) {
	cmd.Flags().String("title", "", "Lesson title")
	cmd.Flags().String("week", "", "Week: "+strings.Join(model.Weeks, ", "))
	cmd.Flags().String("programme", "", "Programme: "+strings.Join(model.Programmes, ", "))
	cmd.Flags().String("level", "", "Level: "+strings.Join(model.Levels, ", "))
	cmd.Flags().String("focus", "", "Focus: "+strings.Join(model.Focuses, ", "))
	cmd.Flags().String("description", "", "Description (- reads stdin)")
	cmd.Flags().StringP("tags", "t", "", "Comma-separated tags")
	cmd.Flags().String("pdf", "", "SharePoint link or PDF data URI")
	cmd.Flags().String("pdf-file", "", "Local PDF file to embed")
	cmd.MarkFlagsMutuallyExclusive("pdf", "pdf-file")
}

func runAdd(a *app, cmd *cobra.Command) error {
	if err := a.requireAdmin(); err != nil {
		return err
	}

	title, _ := cmd.Flags().GetString("title")
	week, _ := cmd.Flags().GetString("week")
	programme, _ := cmd.Flags().GetString("programme")
	level, _ := cmd.Flags().GetString("level")
	focus, _ := cmd.Flags().GetString("focus")
	tagsStr, _ := cmd.Flags().GetString("tags")

	description, err := descriptionFlag(cmd)
	if err != nil {
		return err
	}
	pdfPath, err := pdfFlags(cmd)
	if err != nil {
		return err
	}

	m, rec, err := a.openCatalog(cmd.Context())
	if err != nil {
		return err
	}
	defer rec.Close()

	l, err := m.Create(cmd.Context(), model.Draft{
		Title:       strings.TrimSpace(title),
		Week:        week,
		Programme:   programme,
		Level:       level,
		Focus:       focus,
		Description: description,
		Tags:        splitTags(tagsStr),
		PDFPath:     pdfPath,
	})
	if err != nil {
		return fmt.Errorf("add: %w", err)
	}
	return printJSON(cmd, l)
}

func descriptionFlag(cmd *cobra.Command) (string, error) {
	d, _ := cmd.Flags().GetString("description")
	if d != "-" {
		return d, nil
	}
	b, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

func pdfFlags(cmd *cobra.Command) (string, error) {
	if path, _ := cmd.Flags().GetString("pdf-file"); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read pdf: %w", err)
		}
		return model.EncodePDF(b)
	}
	pdf, _ := cmd.Flags().GetString("pdf")
	return pdf, nil
}
