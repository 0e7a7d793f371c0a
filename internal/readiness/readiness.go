// Package readiness turns a weighted checklist of career actions into a
// 0-100 readiness percentage.
package readiness

import (
	"math"

	"recruit-workers/internal/matching"
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// ActionItem is one recommended step of a career plan.
type ActionItem struct {
	ID            string   `json:"id"`
	Label         string   `json:"label"`
	Category      string   `json:"category"`
	Weight        int      `json:"weight"`
	EstimatedTime string   `json:"estimatedTime"`
	Priority      Priority `json:"priority"`
	OrderIndex    int      `json:"orderIndex"`
	Completed     bool     `json:"completed"`
}

// Stats summarises completion of an action list.
type Stats struct {
	TotalActions     int `json:"totalActions"`
	CompletedActions int `json:"completedActions"`
	TotalWeight      int `json:"totalWeight"`
	CompletedWeight  int `json:"completedWeight"`
}

func Summarize(actions []ActionItem) Stats {
	var s Stats
	for _, a := range actions {
		s.TotalActions++
		s.TotalWeight += a.Weight
		if a.Completed {
			s.CompletedActions++
			s.CompletedWeight += a.Weight
		}
	}
	return s
}

// Compute returns round(100 * completedWeight / totalWeight), or 0 when the
// list is empty or weighs nothing.
func Compute(actions []ActionItem) int {
	s := Summarize(actions)
	if s.TotalWeight <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(s.CompletedWeight) / float64(s.TotalWeight)))
}

// Smooth averages the stored readiness with a freshly computed one, rounding
// halves up. Used when a single action is toggled.
func Smooth(stored, fresh int) int {
	return int(math.Round(float64(stored+fresh) / 2))
}

// FromCompatibility converts a generator compatibility in [0,1] to a
// readiness score.
func FromCompatibility(c float64) int {
	return matching.ToPercent(c)
}
