package togglecareeraction

import "recruit-workers/internal/careerplan"

type Input struct {
	CandidateID string `json:"candidateId"`
	ActionID    string `json:"actionId"`
}

type Output struct {
	Plan           *careerplan.CareerPlan `json:"careerPlan"`
	ActionID       string                 `json:"actionId"`
	Completed      bool                   `json:"completed"`
	ReadinessScore int                    `json:"readinessScore"`
}
