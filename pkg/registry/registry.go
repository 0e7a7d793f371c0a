// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"recruit-workers/internal/common/errors"
)

const (
	CategoryApplication = "application"
	CategoryCareer      = "career"
)

func LoadRegistry(path string) (*ActivityRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reg ActivityRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("decode registry %s: %w", path, err)
	}
	return &reg, nil
}

// Lookup returns the activity registered for taskType.
func (r *ActivityRegistry) Lookup(taskType string) (Activity, bool) {
	for _, a := range r.Activities {
		if a.TaskType == taskType {
			return a, true
		}
	}
	return Activity{}, false
}

// ByCategory returns the activities of one category sorted by task type.
func (r *ActivityRegistry) ByCategory(category string) []Activity {
	var out []Activity
	for _, a := range r.Activities {
		if a.Category == category {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TaskType < out[j].TaskType })
	return out
}

// Builtin is the catalog of the workers shipped with the worker manager.
func Builtin() *ActivityRegistry {
	codes := func(extra ...errors.ErrorCode) []string {
		out := []string{string(errors.ErrCodeInvalidInput), string(errors.ErrCodeParseError)}
		for _, c := range extra {
			out = append(out, string(c))
		}
		return out
	}

	return &ActivityRegistry{
		Version: "1.0.0",
		Activities: []Activity{
			{
				ID: "score-and-submit-application", DisplayName: "Score and submit application", Category: CategoryApplication,
				TaskType:    "score-and-submit-application",
				Description: "Scores a candidate against an offer and records a PENDING application",
				Inputs:      []string{"candidateId", "offerId", "coverLetter", "cvUrl"},
				Outputs:     []string{"applicationId", "applicationStatus", "compatibilityScore", "scoreBreakdown", "submittedAt"},
				ErrorCodes:  codes(errors.ErrCodeNotFound, errors.ErrCodeConflict, errors.ErrCodeDatabaseError),
				Timeout:     "10s", Retries: 3,
			},
			{
				ID: "change-application-status", DisplayName: "Change application status", Category: CategoryApplication,
				TaskType:    "change-application-status",
				Description: "Moves an application to a new status and stamps the response time",
				Inputs:      []string{"applicationId", "status", "action", "comment"},
				Outputs:     []string{"applicationId", "applicationStatus", "respondedAt", "recruiterComment", "terminal"},
				ErrorCodes:  codes(errors.ErrCodeNotFound, errors.ErrCodeDatabaseError),
				Timeout:     "10s", Retries: 3,
			},
			{
				ID: "record-interview", DisplayName: "Record interview", Category: CategoryApplication,
				TaskType:    "record-interview",
				Description: "Stores the interview checklist, skill comments and notes",
				Inputs:      []string{"applicationId", "checklistResults", "skillComments", "notes"},
				Outputs:     []string{"applicationId", "applicationStatus", "respondedAt", "checklistPassed", "checklistTotal"},
				ErrorCodes:  codes(errors.ErrCodeNotFound, errors.ErrCodeDatabaseError),
				Timeout:     "10s", Retries: 3,
			},
			{
				ID: "get-application", DisplayName: "Get application", Category: CategoryApplication,
				TaskType:   "get-application",
				Inputs:     []string{"applicationId"},
				Outputs:    []string{"application", "applicationStatus", "compatibilityScore"},
				ErrorCodes: codes(errors.ErrCodeNotFound, errors.ErrCodeDatabaseError),
				Timeout:    "5s", Retries: 3,
			},
			{
				ID: "list-offer-applications", DisplayName: "List offer applications", Category: CategoryApplication,
				TaskType:    "list-offer-applications",
				Description: "Lists applications of an offer or a recruiter, best score first",
				Inputs:      []string{"offerId", "recruiterId", "status"},
				Outputs:     []string{"applications", "count", "topScore"},
				ErrorCodes:  codes(errors.ErrCodeDatabaseError),
				Timeout:     "10s", Retries: 3,
			},
			{
				ID: "generate-career-plan", DisplayName: "Generate career plan", Category: CategoryCareer,
				TaskType:    "generate-career-plan",
				Description: "Creates the plan when missing, seeds a default objective and refreshes actions",
				Inputs:      []string{"candidateId"},
				Outputs:     []string{"careerPlan", "readinessScore", "actionCount"},
				ErrorCodes:  codes(errors.ErrCodeNotFound, errors.ErrCodeUpstreamFailure, errors.ErrCodeDatabaseError),
				Timeout:     "45s", Retries: 2,
			},
			{
				ID: "update-career-objective", DisplayName: "Update career objective", Category: CategoryCareer,
				TaskType:   "update-career-objective",
				Inputs:     []string{"candidateId", "targetJob", "targetDomain", "objectiveType", "timeHorizonMonths", "description"},
				Outputs:    []string{"careerPlan", "planId"},
				ErrorCodes: codes(errors.ErrCodeDatabaseError),
				Timeout:    "10s", Retries: 3,
			},
			{
				ID: "refresh-career-plan", DisplayName: "Refresh career plan", Category: CategoryCareer,
				TaskType:    "refresh-career-plan",
				Description: "Asks the suggestion generator for new actions and replaces the plan's list",
				Inputs:      []string{"candidateId"},
				Outputs:     []string{"careerPlan", "readinessScore", "actionCount", "refreshedAt"},
				ErrorCodes:  codes(errors.ErrCodeNotFound, errors.ErrCodeUpstreamFailure, errors.ErrCodeDatabaseError),
				Timeout:     "45s", Retries: 2,
			},
			{
				ID: "toggle-career-action", DisplayName: "Toggle career action", Category: CategoryCareer,
				TaskType:    "toggle-career-action",
				Description: "Flips an action's completion flag and smooths the readiness score",
				Inputs:      []string{"candidateId", "actionId"},
				Outputs:     []string{"careerPlan", "actionId", "completed", "readinessScore"},
				ErrorCodes:  codes(errors.ErrCodeNotFound, errors.ErrCodeDatabaseError),
				Timeout:     "10s", Retries: 3,
			},
			{
				ID: "get-career-plan", DisplayName: "Get career plan", Category: CategoryCareer,
				TaskType:   "get-career-plan",
				Inputs:     []string{"candidateId"},
				Outputs:    []string{"careerPlan", "readinessScore"},
				ErrorCodes: codes(errors.ErrCodeNotFound, errors.ErrCodeDatabaseError),
				Timeout:    "5s", Retries: 3,
			},
		},
	}
}
