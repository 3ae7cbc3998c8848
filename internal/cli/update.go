package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newUpdateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Edit a lesson",
		Long:  "Edit a lesson in place. Only the given flags change; --tags replaces the tag list and --pdf \"\" removes the document.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpdate(a, cmd)
		},
	}

	cmd.Flags().String("id", "", "Lesson id (required)")
	cmd.Flags().Int("revision", 0, "Fail if the lesson is no longer at this revision")
	addLessonFlags(cmd)
	cmd.MarkFlagRequired("id")

	return cmd
}

func runUpdate(a *app, cmd *cobra.Command) error {
	if err := a.requireAdmin(); err != nil {
		return err
	}
	id, _ := cmd.Flags().GetString("id")
	revision, _ := cmd.Flags().GetInt("revision")

	m, rec, err := a.openCatalog(cmd.Context())
	if err != nil {
		return err
	}
	defer rec.Close()

	l, err := m.Get(id)
	if err != nil {
		return fmt.Errorf("update: %w", err)
	}

	for name, dst := range map[string]*string{
		"title":     &l.Title,
		"week":      &l.Week,
		"programme": &l.Programme,
		"level":     &l.Level,
		"focus":     &l.Focus,
	} {
		if cmd.Flags().Changed(name) {
			v, _ := cmd.Flags().GetString(name)
			*dst = strings.TrimSpace(v)
		}
	}
	if cmd.Flags().Changed("description") {
		if l.Description, err = descriptionFlag(cmd); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("tags") {
		tagsStr, _ := cmd.Flags().GetString("tags")
		l.Tags = splitTags(tagsStr)
	}
	if cmd.Flags().Changed("pdf") || cmd.Flags().Changed("pdf-file") {
		if l.PDFPath, err = pdfFlags(cmd); err != nil {
			return err
		}
	}
	l.Revision = revision

	updated, err := m.Update(cmd.Context(), *l)
	if err != nil {
		return fmt.Errorf("update: %w", err)
	}
	return printJSON(cmd, updated)
}
