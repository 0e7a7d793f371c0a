package listofferapplications

import "recruit-workers/internal/lifecycle"

// Input selects by offerId or by recruiterId (every offer the recruiter
// owns). Status optionally narrows the result.
type Input struct {
	OfferID     string `json:"offerId"`
	RecruiterID string `json:"recruiterId"`
	Status      string `json:"status"`
}

type Output struct {
	Applications []*lifecycle.Application `json:"applications"`
	Count        int                      `json:"count"`
	TopScore     int                      `json:"topScore"`
}
