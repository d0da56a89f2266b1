package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/workforce-scheduler/pkg/audit"
)

type mockAuditLogStore struct {
	entries []audit.Entry
	err     error
}

func (m *mockAuditLogStore) ListAuditEntries(ctx context.Context) ([]audit.Entry, error) {
	return m.entries, m.err
}

func buildChain(n int) []audit.Entry {
	var entries []audit.Entry
	prev := ""
	for i := 0; i < n; i++ {
		entry := audit.Entry{
			ID:             string(rune('a' + i)),
			OrganizationID: "org-1",
			Action:         audit.ActionShiftCreated,
			EntityID:       "shift",
			Payload:        `{"id":"shift"}`,
			PrevHash:       prev,
			CreatedAt:      monday.Add(time.Duration(i) * time.Minute),
		}
		entry.Hash = audit.ComputeHash(prev, entry)
		prev = entry.Hash
		entries = append(entries, entry)
	}
	return entries
}

func TestVerifyAuditLog(t *testing.T) {
	t.Run("intact chain", func(t *testing.T) {
		report, err := VerifyAuditLog(context.Background(), &mockAuditLogStore{entries: buildChain(3)}, zap.NewNop())
		require.NoError(t, err)
		assert.Equal(t, &AuditReport{Entries: 3, Valid: true}, report)
	})

	t.Run("empty chain", func(t *testing.T) {
		report, err := VerifyAuditLog(context.Background(), &mockAuditLogStore{}, zap.NewNop())
		require.NoError(t, err)
		assert.True(t, report.Valid)
		assert.Zero(t, report.Entries)
	})

	t.Run("tampered entry", func(t *testing.T) {
		entries := buildChain(3)
		entries[1].Payload = `{"id":"other"}`

		report, err := VerifyAuditLog(context.Background(), &mockAuditLogStore{entries: entries}, zap.NewNop())
		require.NoError(t, err)
		assert.False(t, report.Valid)
		assert.Contains(t, report.Problem, "entry 1")
	})

	t.Run("store error", func(t *testing.T) {
		_, err := VerifyAuditLog(context.Background(), &mockAuditLogStore{err: errors.New("boom")}, zap.NewNop())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to fetch audit log")
	})
}
