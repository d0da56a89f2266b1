package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/workforce-scheduler/pkg/core/model"
)

type mockTemplateStore struct {
	templates []model.ShiftTemplate
	err       error

	organizationID string
	locationIDs    []string
}

func (m *mockTemplateStore) ListActiveTemplates(ctx context.Context, organizationID string, locationIDs []string) ([]model.ShiftTemplate, error) {
	m.organizationID = organizationID
	m.locationIDs = locationIDs
	return m.templates, m.err
}

func TestListTemplates(t *testing.T) {
	store := &mockTemplateStore{templates: []model.ShiftTemplate{
		{ID: "night", Name: "Night", StartTime: "22:00", EndTime: "06:00", BreakMinutes: 30, IsActive: true},
		{ID: "early", Name: "Early", StartTime: "06:00", EndTime: "14:00", IsActive: true},
		{ID: "retired", Name: "Retired", StartTime: "05:00", EndTime: "09:00", IsActive: false},
	}}

	summaries, err := ListTemplates(context.Background(), store, zap.NewNop(), "org-1", []string{"loc-1"})
	require.NoError(t, err)

	assert.Equal(t, "org-1", store.organizationID)
	assert.Equal(t, []string{"loc-1"}, store.locationIDs)

	require.Len(t, summaries, 2)
	assert.Equal(t, "early", summaries[0].ID)
	assert.InDelta(t, 8.0, summaries[0].DurationHours, 0.001)
	assert.Equal(t, "night", summaries[1].ID)
	assert.InDelta(t, 7.5, summaries[1].DurationHours, 0.001)
}

func TestListTemplates_Errors(t *testing.T) {
	_, err := ListTemplates(context.Background(), &mockTemplateStore{}, zap.NewNop(), "", nil)
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = ListTemplates(context.Background(), &mockTemplateStore{err: errors.New("boom")}, zap.NewNop(), "org-1", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list shift templates")
}

func TestListTemplates_Empty(t *testing.T) {
	summaries, err := ListTemplates(context.Background(), &mockTemplateStore{}, zap.NewNop(), "org-1", nil)
	require.NoError(t, err)
	assert.NotNil(t, summaries)
	assert.Empty(t, summaries)
}
