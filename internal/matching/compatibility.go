package matching

import (
	"math"
	"strings"
)

// Signal weights. Experience and education are two summands over the same
// lookup, each with its own weight.
const (
	WeightSkills     = 0.50
	WeightExperience = 0.20
	WeightEducation  = 0.20
	WeightContract   = 0.10
)

// CandidateSignals is the read-only slice of a candidate profile used for
// scoring.
type CandidateSignals struct {
	Skills         []string `json:"skills"`
	EducationLevel string   `json:"educationLevel"`
	FieldOfStudy   string   `json:"fieldOfStudy"`
}

// OfferSignals is the part of a job offer used for scoring.
type OfferSignals struct {
	RequiredSkills  string `json:"requiredSkills"`
	ExperienceLevel string `json:"experienceLevel"`
	ContractType    string `json:"contractType"`
}

// Breakdown exposes the individual signals behind a score.
type Breakdown struct {
	SkillOverlap  float64 `json:"skillOverlap"`
	ExperienceFit float64 `json:"experienceFit"`
	EducationFit  float64 `json:"educationFit"`
	ContractFit   float64 `json:"contractFit"`
	Raw           float64 `json:"raw"`
	Score         int     `json:"score"`
}

// Scorer computes compatibility scores under a fixed Policy.
type Scorer struct {
	policy Policy
}

// NewScorer returns a Scorer applying policy.
func NewScorer(policy Policy) *Scorer {
	return &Scorer{policy: policy}
}

// Breakdown computes every signal for the pair. A nil side yields the zero
// Breakdown.
func (s *Scorer) Breakdown(offer *OfferSignals, candidate *CandidateSignals) Breakdown {
	if offer == nil || candidate == nil {
		return Breakdown{}
	}

	b := Breakdown{
		SkillOverlap:  s.policy.KeywordOverlap(offer.RequiredSkills, strings.Join(candidate.Skills, ", ")),
		ExperienceFit: s.policy.ExperienceFit(offer.ExperienceLevel, candidate.EducationLevel),
		EducationFit:  s.policy.EducationFit(offer.ExperienceLevel, candidate.EducationLevel),
		ContractFit:   s.policy.ContractFit(offer.ContractType, candidate.FieldOfStudy),
	}
	b.Raw = WeightSkills*b.SkillOverlap +
		WeightExperience*b.ExperienceFit +
		WeightEducation*b.EducationFit +
		WeightContract*b.ContractFit
	b.Score = ToPercent(b.Raw)
	return b
}

// Score returns the compatibility of candidate with offer in [0,100].
func (s *Scorer) Score(offer *OfferSignals, candidate *CandidateSignals) int {
	return s.Breakdown(offer, candidate).Score
}

// ToPercent scales a [0,1] value to a whole percentage. Out-of-range input is
// clamped, and halves round away from zero (math.Round), which for these
// non-negative values is round-half-up: 0.125 gives 13.
func ToPercent(v float64) int {
	pct := v * 100
	if math.IsNaN(pct) || pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	return int(math.Round(pct))
}
