package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/workforce-scheduler/pkg/core/services"
)

// VerifyAuditCmd creates the verifyAudit command
func VerifyAuditCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "verifyAudit",
		Short: "Check the hash chain of the shift audit log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := services.VerifyAuditLog(app.Ctx, app.Database, app.Logger)
			if err != nil {
				return err
			}

			if !report.Valid {
				fmt.Fprintf(cmd.OutOrStdout(), "✗ Audit log is broken: %s\n", report.Problem)
				return errors.New("audit log verification failed")
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Audit log intact (%d entries)\n", report.Entries)
			return nil
		},
	}
}
