package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/workforce-scheduler/pkg/core/scheduler"
	"github.com/jakechorley/workforce-scheduler/pkg/core/services"
)

// AutoScheduleCmd creates the autoSchedule command
func AutoScheduleCmd(app *AppContext) *cobra.Command {
	var (
		organizationID     string
		week               string
		locationIDs        []string
		ignoreAvailability bool
		maxHours           float64
		asJSON             bool
	)

	cmd := &cobra.Command{
		Use:   "autoSchedule",
		Short: "Fill an organization's week with draft shifts",
		Long: `Generate draft shifts for every open template slot in the week starting on --week.
Existing shifts are kept and their slots are skipped, so running the command twice is safe.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			weekStart, err := time.ParseInLocation(scheduler.DateLayout, week, app.Cfg.Location())
			if err != nil {
				return fmt.Errorf("week must be a YYYY-MM-DD date: %w", err)
			}

			req := services.AutoScheduleRequest{
				OrganizationID: organizationID,
				WeekStart:      weekStart,
				LocationIDs:    locationIDs,
			}
			if cmd.Flags().Changed("ignore-availability") {
				respect := !ignoreAvailability
				req.RespectAvailability = &respect
			}
			if cmd.Flags().Changed("max-hours") {
				req.MaxHoursPerEmployee = &maxHours
			}

			app.Logger.Debug("autoSchedule command",
				zap.String("organization_id", organizationID),
				zap.String("week", week),
				zap.Strings("location_ids", locationIDs))

			result, err := services.RunAutoSchedule(app.Ctx, app.Database, app.Oracle, app.Locker, app.Cfg, app.Logger, req)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}

			printAutoScheduleResult(cmd.OutOrStdout(), result)
			return nil
		},
	}

	cmd.Flags().StringVar(&organizationID, "org", "", "Organization ID")
	cmd.Flags().StringVar(&week, "week", "", "First day of the week to schedule (YYYY-MM-DD)")
	cmd.Flags().StringSliceVar(&locationIDs, "location", nil, "Only use templates at these locations (repeatable)")
	cmd.Flags().BoolVar(&ignoreAvailability, "ignore-availability", false, "Ignore employees' weekly availability")
	cmd.Flags().Float64Var(&maxHours, "max-hours", 0, "Weekly hours cap per employee (default from config, then 40)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")
	_ = cmd.MarkFlagRequired("org")
	_ = cmd.MarkFlagRequired("week")

	return cmd
}

func printAutoScheduleResult(w io.Writer, result *services.AutoScheduleResult) {
	fmt.Fprintf(w, "\n✓ Auto-schedule complete for week of %s\n\n", result.WeekStart)
	fmt.Fprintf(w, "Created:    %d\n", result.Created)
	fmt.Fprintf(w, "Unfilled:   %d\n", result.Skipped)
	fmt.Fprintf(w, "Pre-filled: %d\n", result.PreFilled)

	if len(result.ClosedDates) > 0 {
		fmt.Fprintf(w, "\nClosed:\n")
		for _, closed := range result.ClosedDates {
			if closed.Reason != "" {
				fmt.Fprintf(w, "  %s  %s\n", closed.Date, closed.Reason)
			} else {
				fmt.Fprintf(w, "  %s\n", closed.Date)
			}
		}
	}

	if len(result.Assignments) > 0 {
		fmt.Fprintf(w, "\nHours this week:\n")
		for _, assignment := range result.Assignments {
			fmt.Fprintf(w, "  %-24s %6.1fh\n", assignment.EmployeeID, assignment.TotalHours)
		}
	}

	if len(result.UnfilledSlots) > 0 {
		fmt.Fprintf(w, "\nUnfilled slots:\n")
		for _, slot := range result.UnfilledSlots {
			fmt.Fprintf(w, "  %s  %-20s %s\n", slot.Date, slot.TemplateName, slot.Reason)
		}
	}

	if len(result.Warnings) > 0 {
		fmt.Fprintln(w)
		for _, warning := range result.Warnings {
			fmt.Fprintf(w, "⚠️  %s\n", warning)
		}
	}
	fmt.Fprintln(w)
}
