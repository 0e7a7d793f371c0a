package togglecareeraction

import (
	"context"
	"testing"

	"recruit-workers/internal/careerplan"
	"recruit-workers/internal/common/config"
	"recruit-workers/internal/common/errors"
	"recruit-workers/internal/common/logger"
	"recruit-workers/internal/readiness"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) ToggleAction(ctx context.Context, candidateID, actionID string) (*careerplan.CareerPlan, error) {
	args := m.Called(ctx, candidateID, actionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*careerplan.CareerPlan), args.Error(1)
}

func createTestHandler(t *testing.T, svc Service) *Handler {
	return NewHandler(LoadConfig(config.WorkerConfig{}), svc, nil, logger.NewTestLogger(t))
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_Success(t *testing.T) {
	svc := new(MockService)
	plan := &careerplan.CareerPlan{
		ID:             "plan-1",
		ReadinessScore: 56,
		Actions: []readiness.ActionItem{
			{ID: "a1", Weight: 20, Completed: true},
			{ID: "a2", Weight: 15, Completed: true},
			{ID: "a3", Weight: 15},
		},
	}
	svc.On("ToggleAction", mock.Anything, "cand-1", "a1").Return(plan, nil)

	output, err := createTestHandler(t, svc).Execute(context.Background(), &Input{CandidateID: "cand-1", ActionID: "a1"})
	require.NoError(t, err)

	assert.Equal(t, "a1", output.ActionID)
	assert.True(t, output.Completed)
	assert.Equal(t, 56, output.ReadinessScore)
	svc.AssertExpectations(t)
}

func TestHandler_Execute_UncheckedAction(t *testing.T) {
	svc := new(MockService)
	plan := &careerplan.CareerPlan{
		ReadinessScore: 28,
		Actions:        []readiness.ActionItem{{ID: "a1", Weight: 20}, {ID: "a2", Weight: 15}},
	}
	svc.On("ToggleAction", mock.Anything, "cand-1", "a2").Return(plan, nil)

	output, err := createTestHandler(t, svc).Execute(context.Background(), &Input{CandidateID: "cand-1", ActionID: "a2"})
	require.NoError(t, err)

	assert.False(t, output.Completed)
	assert.Equal(t, 28, output.ReadinessScore)
}

// ==========================
// Error Handling Tests
// ==========================

func TestHandler_Execute_ForeignAction(t *testing.T) {
	svc := new(MockService)
	svc.On("ToggleAction", mock.Anything, "cand-2", "a1").Return(nil, errors.NewNotFoundError("career action", "a1"))

	_, err := createTestHandler(t, svc).Execute(context.Background(), &Input{CandidateID: "cand-2", ActionID: "a1"})
	assert.ErrorIs(t, err, errors.ErrNotFound)
}
