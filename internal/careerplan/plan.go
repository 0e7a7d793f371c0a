// Package careerplan keeps a candidate's career objective, its recommended
// actions and the readiness score derived from them.
package careerplan

import (
	"fmt"
	"strings"
	"time"

	"recruit-workers/internal/readiness"
)

// Seed values for a plan generated from the profile alone.
const (
	DefaultTargetJob         = "Position generated from profile"
	DefaultTargetDomain      = "Not specified"
	DefaultObjectiveType     = "FIRST_JOB"
	DefaultTimeHorizonMonths = 6
	DefaultDescription       = "Objective generated automatically from your profile"
)

type Objective struct {
	TargetJob         string `json:"targetJob"`
	TargetDomain      string `json:"targetDomain"`
	ObjectiveType     string `json:"objectiveType"`
	TimeHorizonMonths int    `json:"timeHorizonMonths"`
	Description       string `json:"description"`
}

// DefaultObjective is used when a plan has no target job yet.
func DefaultObjective() Objective {
	return Objective{
		TargetJob:         DefaultTargetJob,
		TargetDomain:      DefaultTargetDomain,
		ObjectiveType:     DefaultObjectiveType,
		TimeHorizonMonths: DefaultTimeHorizonMonths,
		Description:       DefaultDescription,
	}
}

type CareerPlan struct {
	ID          string `json:"id"`
	CandidateID string `json:"candidateId"`
	Objective
	ReadinessScore int                    `json:"readinessScore"`
	Actions        []readiness.ActionItem `json:"actions"`
	Stats          readiness.Stats        `json:"stats"`
	UpdatedAt      time.Time              `json:"updatedAt"`
}

func (p *CareerPlan) action(id string) *readiness.ActionItem {
	for i := range p.Actions {
		if p.Actions[i].ID == id {
			return &p.Actions[i]
		}
	}
	return nil
}

type Experience struct {
	Title   string `json:"title"`
	Company string `json:"company"`
}

// Profile is the candidate data summarised for the generator.
type Profile struct {
	FirstName   string       `json:"firstName"`
	LastName    string       `json:"lastName"`
	Skills      []string     `json:"skills"`
	Experiences []Experience `json:"experiences"`
	Languages   []string     `json:"languages"`
}

// ProfileText renders the profile summary sent to the generator.
func ProfileText(p *Profile) string {
	if p == nil {
		return "Candidate profile: (unavailable)\n"
	}

	var b strings.Builder
	b.WriteString("Candidate profile:\n")
	fmt.Fprintf(&b, "Name: %s %s\n", p.FirstName, p.LastName)
	if len(p.Skills) > 0 {
		fmt.Fprintf(&b, "Skills: %s\n", strings.Join(p.Skills, ", "))
	}
	if len(p.Experiences) > 0 {
		fmt.Fprintf(&b, "Experience: %d position(s)\n", len(p.Experiences))
		for _, e := range p.Experiences {
			fmt.Fprintf(&b, "  - %s at %s\n", e.Title, e.Company)
		}
	}
	if len(p.Languages) > 0 {
		fmt.Fprintf(&b, "Languages: %s\n", strings.Join(p.Languages, ", "))
	}
	return b.String()
}

// ObjectiveText renders the objective summary sent to the generator.
func ObjectiveText(o Objective) string {
	return fmt.Sprintf("Career objective:\n"+
		"- Target job: %s\n"+
		"- Domain: %s\n"+
		"- Objective type: %s\n"+
		"- Horizon: %d months\n"+
		"- Description: %s\n",
		o.TargetJob, o.TargetDomain, o.ObjectiveType, o.TimeHorizonMonths, o.Description)
}
