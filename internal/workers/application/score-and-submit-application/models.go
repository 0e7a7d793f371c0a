package scoreandsubmitapplication

import "recruit-workers/internal/matching"

type Input struct {
	CandidateID string `json:"candidateId"`
	OfferID     string `json:"offerId"`
	CoverLetter string `json:"coverLetter"`
	CVURL       string `json:"cvUrl"`
}

type Output struct {
	ApplicationID     string             `json:"applicationId"`
	ApplicationStatus string             `json:"applicationStatus"`
	Score             int                `json:"compatibilityScore"`
	Breakdown         matching.Breakdown `json:"scoreBreakdown"`
	SubmittedAt       string             `json:"submittedAt"` // RFC 3339
}
