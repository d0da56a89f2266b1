package services

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/jakechorley/workforce-scheduler/pkg/core/model"
	"github.com/jakechorley/workforce-scheduler/pkg/core/scheduler"
)

// TemplateStore defines the database operations needed by ListTemplates
type TemplateStore interface {
	ListActiveTemplates(ctx context.Context, organizationID string, locationIDs []string) ([]model.ShiftTemplate, error)
}

// TemplateSummary is an active template with its paid length
type TemplateSummary struct {
	model.ShiftTemplate
	DurationHours float64 `json:"durationHours"`
}

// ListTemplates returns the organization's active templates in the order slots are generated within a day
func ListTemplates(ctx context.Context, database TemplateStore, logger *zap.Logger, organizationID string, locationIDs []string) ([]TemplateSummary, error) {
	if organizationID == "" {
		return nil, fmt.Errorf("%w: organization id is required", ErrInvalidRequest)
	}

	templates, err := database.ListActiveTemplates(ctx, organizationID, locationIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list shift templates: %w", err)
	}

	logger.Debug("Fetched templates", zap.String("organization_id", organizationID), zap.Int("count", len(templates)))

	summaries := make([]TemplateSummary, 0, len(templates))
	for _, tmpl := range templates {
		if !tmpl.IsActive {
			continue
		}
		summaries = append(summaries, TemplateSummary{
			ShiftTemplate: tmpl,
			DurationHours: scheduler.ShiftDurationHours(tmpl.StartTime, tmpl.EndTime, tmpl.BreakMinutes),
		})
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].StartTime < summaries[j].StartTime
	})

	return summaries, nil
}
