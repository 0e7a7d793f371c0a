package refreshcareerplan

import "recruit-workers/internal/careerplan"

type Input struct {
	CandidateID string `json:"candidateId"`
}

type Output struct {
	Plan           *careerplan.CareerPlan `json:"careerPlan"`
	ReadinessScore int                    `json:"readinessScore"`
	ActionCount    int                    `json:"actionCount"`
	RefreshedAt    string                 `json:"refreshedAt"`
}
