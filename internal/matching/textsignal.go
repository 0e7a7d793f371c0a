// Package matching scores how well a candidate fits a job offer from short
// free-text signals.
package matching

import "strings"

// LevelRule maps an experience-level keyword group to the fit obtained when
// the candidate's education mentions one of Accepted, or none of them.
type LevelRule struct {
	Keywords []string
	Accepted []string
	Match    float64
	Miss     float64
}

// ContractPolicy drives ContractFit.
type ContractPolicy struct {
	InternshipKeyword string
	InternshipField   string
	PermanentKeyword  string
	Match             float64
	Default           float64
}

// Policy holds the keyword tables and defaults used by the text signals. All
// keywords are lower case.
type Policy struct {
	Levels []LevelRule
	// NeutralFit applies when no level keyword is recognised.
	NeutralFit float64
	// NoRequirement is the overlap reported when nothing is required.
	NoRequirement float64
	Contract      ContractPolicy
}

// DefaultPolicy returns a fresh copy of the production policy.
func DefaultPolicy() Policy {
	advanced := []string{"master", "ingénieur"}
	return Policy{
		Levels: []LevelRule{
			{Keywords: []string{"junior"}, Accepted: []string{"licence", "master", "ingénieur"}, Match: 1.0, Miss: 0.5},
			{Keywords: []string{"intermédiaire", "confirmé"}, Accepted: advanced, Match: 1.0, Miss: 0.7},
			{Keywords: []string{"senior"}, Accepted: advanced, Match: 0.8, Miss: 0.1},
		},
		NeutralFit:    0.5,
		NoRequirement: 1.0,
		Contract: ContractPolicy{
			InternshipKeyword: "stage",
			InternshipField:   "informatique",
			PermanentKeyword:  "cdi",
			Match:             1.0,
			Default:           0.5,
		},
	}
}

func isSeparator(r rune) bool {
	return r == ' ' || r == ',' || r == ';'
}

// Tokenize lower-cases s and splits it on spaces, commas and semicolons.
// Empty tokens are dropped.
func Tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), isSeparator)
}

// KeywordOverlap returns the share of required tokens matched by at least one
// candidate token. Either token containing the other counts as a match, so
// "java" matches "javascript".
func (p Policy) KeywordOverlap(required, candidate string) float64 {
	req := Tokenize(required)
	if len(req) == 0 {
		return p.NoRequirement
	}
	have := Tokenize(candidate)

	matched := 0
	for _, r := range req {
		for _, c := range have {
			if strings.Contains(r, c) || strings.Contains(c, r) {
				matched++
				break
			}
		}
	}
	return float64(matched) / float64(len(req))
}

// ExperienceFit looks up the first level rule whose keyword appears in
// requiredLevel and checks the candidate's education against it.
func (p Policy) ExperienceFit(requiredLevel, educationLevel string) float64 {
	level := strings.ToLower(requiredLevel)
	education := strings.ToLower(educationLevel)

	for _, rule := range p.Levels {
		if !containsAny(level, rule.Keywords) {
			continue
		}
		if containsAny(education, rule.Accepted) {
			return rule.Match
		}
		return rule.Miss
	}
	return p.NeutralFit
}

// EducationFit shares ExperienceFit's table. It exists as its own signal so it
// carries its own weight in the compatibility score.
func (p Policy) EducationFit(requiredLevel, educationLevel string) float64 {
	return p.ExperienceFit(requiredLevel, educationLevel)
}

// ContractFit rates how the offer's contract type suits the candidate's field
// of study.
func (p Policy) ContractFit(contractType, fieldOfStudy string) float64 {
	contract := strings.ToLower(contractType)
	field := strings.ToLower(fieldOfStudy)
	c := p.Contract

	if strings.Contains(contract, c.InternshipKeyword) && strings.Contains(field, c.InternshipField) {
		return c.Match
	}
	if strings.Contains(contract, c.PermanentKeyword) && !strings.Contains(field, c.InternshipKeyword) {
		return c.Match
	}
	return c.Default
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
