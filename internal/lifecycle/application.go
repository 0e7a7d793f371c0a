// Package lifecycle scores new applications and moves them through the
// recruiter review workflow.
package lifecycle

import "time"

// InterviewRecord is the recruiter's grading of an interview. Writing a new
// record replaces the previous one.
type InterviewRecord struct {
	ChecklistResults map[string]bool `json:"checklistResults"`
	SkillComments    map[int]string  `json:"skillComments"`
	Notes            string          `json:"notes"`
}

type Application struct {
	ID               string           `json:"id"`
	CandidateID      string           `json:"candidateId"`
	OfferID          string           `json:"offerId"`
	Status           Status           `json:"status"`
	Score            int              `json:"score"`
	CoverLetter      string           `json:"coverLetter,omitempty"`
	CVURL            string           `json:"cvUrl,omitempty"`
	SubmittedAt      time.Time        `json:"submittedAt"`
	RespondedAt      *time.Time       `json:"respondedAt,omitempty"`
	RecruiterComment *string          `json:"recruiterComment,omitempty"`
	Interview        *InterviewRecord `json:"interview,omitempty"`
}

// Submission carries what a candidate sends when applying.
type Submission struct {
	CandidateID string
	OfferID     string
	CoverLetter string
	CVURL       string
}

// ListFilter selects applications for listing. Exactly one of OfferID or
// RecruiterID is expected; Status is optional.
type ListFilter struct {
	OfferID     string
	RecruiterID string
	Status      Status
}
