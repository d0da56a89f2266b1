package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakechorley/workforce-scheduler/pkg/core/model"
	"github.com/jakechorley/workforce-scheduler/pkg/core/scheduler"
)

// Sink stores audit entries.
// AppendAuditEntry must read the newest hash, Link the entry to it and store it as
// one atomic step, so concurrent writers in any process extend a single chain.
type Sink interface {
	AppendAuditEntry(ctx context.Context, entry Entry) (Entry, error)
}

// Recorder is a scheduler.Repository that appends an audit entry for every shift it creates.
// Reads pass straight through to the wrapped repository.
type Recorder struct {
	scheduler.Repository

	sink   Sink
	logger *zap.Logger
	now    func() time.Time
}

func NewRecorder(repo scheduler.Repository, sink Sink, logger *zap.Logger) *Recorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recorder{
		Repository: repo,
		sink:       sink,
		logger:     logger,
		now:        time.Now,
	}
}

// CreateShift persists the shift then records it. A failed audit write is logged and
// does not undo or fail the shift creation.
func (r *Recorder) CreateShift(ctx context.Context, shift model.Shift) (string, error) {
	id, err := r.Repository.CreateShift(ctx, shift)
	if err != nil || id == "" {
		return id, err
	}

	shift.ID = id
	if err := r.record(ctx, ActionShiftCreated, shift.OrganizationID, id, shift); err != nil {
		r.logger.Warn("Failed to record audit entry",
			zap.String("shift_id", id),
			zap.Error(err))
	}

	return id, nil
}

func (r *Recorder) record(ctx context.Context, action, organizationID, entityID string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal audit payload: %w", err)
	}

	// Stores keep microseconds at most and the hash must survive a round trip
	createdAt := r.now().UTC().Truncate(time.Microsecond)

	entry := Entry{
		ID:             uuid.New().String(),
		OrganizationID: organizationID,
		Action:         action,
		EntityID:       entityID,
		Payload:        string(data),
		CreatedAt:      createdAt,
	}

	stored, err := r.sink.AppendAuditEntry(ctx, entry)
	if err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}

	r.logger.Debug("Recorded audit entry",
		zap.String("action", action),
		zap.String("entity_id", entityID),
		zap.String("hash", stored.Hash))

	return nil
}
