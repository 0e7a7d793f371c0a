package readiness

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// ==========================
// Readiness computation
// ==========================

func TestCompute(t *testing.T) {
	tests := []struct {
		name     string
		actions  []ActionItem
		expected int
	}{
		{"empty", nil, 0},
		{"zero weight", []ActionItem{{Weight: 0, Completed: true}}, 0},
		{"two thirds", []ActionItem{{Weight: 20, Completed: true}, {Weight: 10}}, 67},
		{"all complete", []ActionItem{{Weight: 5, Completed: true}, {Weight: 15, Completed: true}}, 100},
		{"none complete", []ActionItem{{Weight: 5}, {Weight: 15}}, 0},
		{"half rounds up", []ActionItem{{Weight: 1, Completed: true}, {Weight: 7}}, 13},
		{"exact half after scaling", []ActionItem{{Weight: 29, Completed: true}, {Weight: 171}}, 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Compute(tt.actions))
		})
	}
}

func TestSmooth(t *testing.T) {
	assert.Equal(t, 59, Smooth(50, 67))
	assert.Equal(t, 34, Smooth(0, 67))
	assert.Equal(t, 0, Smooth(0, 0))
	assert.Equal(t, 100, Smooth(100, 100))
	assert.Equal(t, 1, Smooth(0, 1))
}

func TestFromCompatibility(t *testing.T) {
	assert.Equal(t, 72, FromCompatibility(0.72))
	assert.Equal(t, 0, FromCompatibility(-1))
	assert.Equal(t, 100, FromCompatibility(1.2))
}

func TestSummarize(t *testing.T) {
	s := Summarize([]ActionItem{
		{Weight: 20, Completed: true},
		{Weight: 10},
		{Weight: 5, Completed: true},
	})

	assert.Equal(t, Stats{TotalActions: 3, CompletedActions: 2, TotalWeight: 35, CompletedWeight: 25}, s)
}

// ==========================
// Category catalog and priority
// ==========================

func TestCostOf(t *testing.T) {
	tests := []struct {
		category string
		weight   int
		time     string
	}{
		{"CERTIFICATION", 20, "1-2 months"},
		{"project", 15, "2-4 weeks"},
		{"Experience", 15, "variable"},
		{"SKILL", 10, "2-3 weeks"},
		{"PORTFOLIO", 10, "1-2 weeks"},
		{"NETWORKING", 15, "1-2 weeks"},
		{" cv ", 10, "1 week"},
		{"INTERVIEW", 5, "1 week"},
		{"", 10, "to be determined"},
		{"HOBBY", 10, "to be determined"},
	}

	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			c := CostOf(tt.category)
			assert.Equal(t, tt.weight, c.Weight)
			assert.Equal(t, tt.time, c.EstimatedTime)
		})
	}
	assert.Len(t, Categories(), 8)
}

func TestPriorityAt_TenActions(t *testing.T) {
	expected := []Priority{
		PriorityHigh, PriorityHigh, PriorityHigh,
		PriorityMedium, PriorityMedium, PriorityMedium, PriorityMedium,
		PriorityLow, PriorityLow, PriorityLow,
	}
	for i, want := range expected {
		assert.Equal(t, want, PriorityAt(i, 10), fmt.Sprintf("index %d", i))
	}
}

func TestPriorityAt_FiveActions(t *testing.T) {
	got := make([]Priority, 5)
	for i := range got {
		got[i] = PriorityAt(i, 5)
	}
	assert.Equal(t, []Priority{PriorityHigh, PriorityHigh, PriorityMedium, PriorityMedium, PriorityLow}, got)
	assert.Equal(t, PriorityMedium, PriorityAt(0, 0))
}

func TestBuildActions(t *testing.T) {
	actions := BuildActions([]Suggestion{
		{Label: "Pass the CKA exam", Category: "certification"},
		{Label: "Ship a side project", Category: "PROJECT"},
		{Label: "Polish the resume", Category: ""},
	})

	assert.Len(t, actions, 3)
	for i, a := range actions {
		assert.Equal(t, i, a.OrderIndex)
		assert.False(t, a.Completed)
	}
	assert.Equal(t, 20, actions[0].Weight)
	assert.Equal(t, PriorityHigh, actions[0].Priority)
	assert.Equal(t, PriorityMedium, actions[1].Priority)
	assert.Equal(t, PriorityMedium, actions[2].Priority)
	assert.Equal(t, "to be determined", actions[2].EstimatedTime)
}
