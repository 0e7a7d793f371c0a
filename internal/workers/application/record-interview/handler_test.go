package recordinterview

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"recruit-workers/internal/common/config"
	"recruit-workers/internal/common/errors"
	"recruit-workers/internal/common/logger"
	"recruit-workers/internal/lifecycle"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) RecordInterview(ctx context.Context, id string, record lifecycle.InterviewRecord) (*lifecycle.Application, error) {
	args := m.Called(ctx, id, record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*lifecycle.Application), args.Error(1)
}

func createTestHandler(t *testing.T, svc Service) *Handler {
	return NewHandler(LoadConfig(config.WorkerConfig{}), svc, nil, logger.NewTestLogger(t))
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_Success(t *testing.T) {
	var input Input
	require.NoError(t, json.Unmarshal([]byte(`{
		"applicationId": "app-1",
		"checklistResults": {"communication": true, "problem solving": true, "english": false},
		"skillComments": {"0": "good Go knowledge", "2": "weak on Docker"},
		"notes": "Second interview recommended"
	}`), &input))

	responded := time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC)
	svc := new(MockService)
	svc.On("RecordInterview", mock.Anything, "app-1", lifecycle.InterviewRecord{
		ChecklistResults: map[string]bool{"communication": true, "problem solving": true, "english": false},
		SkillComments:    map[int]string{0: "good Go knowledge", 2: "weak on Docker"},
		Notes:            "Second interview recommended",
	}).Return(&lifecycle.Application{ID: "app-1", Status: lifecycle.StatusInterview, RespondedAt: &responded}, nil)

	output, err := createTestHandler(t, svc).Execute(context.Background(), &input)
	require.NoError(t, err)

	assert.Equal(t, "INTERVIEW", output.ApplicationStatus)
	assert.Equal(t, "2026-03-05T10:00:00Z", output.RespondedAt)
	assert.Equal(t, 2, output.ChecklistPassed)
	assert.Equal(t, 3, output.ChecklistTotal)
	svc.AssertExpectations(t)
}

func TestHandler_Execute_Errors(t *testing.T) {
	svc := new(MockService)
	svc.On("RecordInterview", mock.Anything, "ghost", mock.Anything).Return(nil, errors.NewNotFoundError("application", "ghost"))
	h := createTestHandler(t, svc)

	_, err := h.Execute(context.Background(), &Input{ApplicationID: "ghost"})
	assert.ErrorIs(t, err, errors.ErrNotFound)

	_, err = h.Execute(context.Background(), &Input{})
	assert.ErrorIs(t, err, errors.ErrInvalidInput)

	_, err = h.Execute(context.Background(), nil)
	assert.ErrorIs(t, err, errors.ErrInvalidInput)
}
