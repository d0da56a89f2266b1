package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/workforce-scheduler/pkg/audit"
)

// AuditLogStore defines the database operations needed by VerifyAuditLog
type AuditLogStore interface {
	ListAuditEntries(ctx context.Context) ([]audit.Entry, error)
}

// AuditReport summarises a verification of the audit chain
type AuditReport struct {
	Entries int    `json:"entries"`
	Valid   bool   `json:"valid"`
	Problem string `json:"problem,omitempty"`
}

// VerifyAuditLog re-computes every hash in the audit chain.
// A broken chain is reported in the result, not returned as an error.
func VerifyAuditLog(ctx context.Context, database AuditLogStore, logger *zap.Logger) (*AuditReport, error) {
	entries, err := database.ListAuditEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch audit log: %w", err)
	}

	logger.Debug("Verifying audit chain", zap.Int("entries", len(entries)))

	report := &AuditReport{Entries: len(entries), Valid: true}
	if err := audit.Verify(entries); err != nil {
		report.Valid = false
		report.Problem = err.Error()
		logger.Warn("Audit chain verification failed", zap.Error(err))
	}

	return report, nil
}
