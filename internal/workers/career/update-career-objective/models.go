package updatecareerobjective

import "recruit-workers/internal/careerplan"

type Input struct {
	CandidateID       string `json:"candidateId"`
	TargetJob         string `json:"targetJob"`
	TargetDomain      string `json:"targetDomain"`
	ObjectiveType     string `json:"objectiveType"`
	TimeHorizonMonths int    `json:"timeHorizonMonths"`
	Description       string `json:"description"`
}

func (i *Input) objective() careerplan.Objective {
	return careerplan.Objective{
		TargetJob:         i.TargetJob,
		TargetDomain:      i.TargetDomain,
		ObjectiveType:     i.ObjectiveType,
		TimeHorizonMonths: i.TimeHorizonMonths,
		Description:       i.Description,
	}
}

type Output struct {
	Plan   *careerplan.CareerPlan `json:"careerPlan"`
	PlanID string                 `json:"planId"`
}
