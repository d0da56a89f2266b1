package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jakechorley/workforce-scheduler/pkg/core/services"
)

// ListTemplatesCmd creates the listTemplates command
func ListTemplatesCmd(app *AppContext) *cobra.Command {
	var (
		organizationID string
		locationIDs    []string
	)

	cmd := &cobra.Command{
		Use:   "listTemplates",
		Short: "List an organization's active shift templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			templates, err := services.ListTemplates(app.Ctx, app.Database, app.Logger, organizationID, locationIDs)
			if err != nil {
				return err
			}

			printTemplates(cmd.OutOrStdout(), templates)
			return nil
		},
	}

	cmd.Flags().StringVar(&organizationID, "org", "", "Organization ID")
	cmd.Flags().StringSliceVar(&locationIDs, "location", nil, "Only list templates at these locations (repeatable)")
	_ = cmd.MarkFlagRequired("org")

	return cmd
}

func printTemplates(w io.Writer, templates []services.TemplateSummary) {
	fmt.Fprintf(w, "\nFound %d active templates:\n\n", len(templates))
	for _, t := range templates {
		extra := ""
		if t.RequiredSkillID != "" {
			extra += fmt.Sprintf(" [Skill: %s]", t.RequiredSkillID)
		}
		if t.LocationID != "" {
			extra += fmt.Sprintf(" [Location: %s]", t.LocationID)
		}
		fmt.Fprintf(w, "- %s (%s) %s-%s, %.1fh paid%s\n",
			t.Name,
			t.ID,
			t.StartTime,
			t.EndTime,
			t.DurationHours,
			extra,
		)
	}
}
