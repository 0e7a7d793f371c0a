package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// ==========================
// Text signals
// ==========================

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"go", "sql", "docker"}, Tokenize("Go, SQL;  Docker"))
	assert.Equal(t, []string{"go\tsql"}, Tokenize("go\tsql"))
	assert.Empty(t, Tokenize(" ;, "))
}

func TestKeywordOverlap(t *testing.T) {
	p := DefaultPolicy()

	tests := []struct {
		name      string
		required  string
		candidate string
		expected  float64
	}{
		{"blank requirement", "", "go", 1.0},
		{"separators only", " ,; ,", "go", 1.0},
		{"containment both ways", "Java, Spring", "I know java and react", 1.0},
		{"candidate token inside required", "postgresql", "sql", 1.0},
		{"required token inside candidate", "java", "javascript", 1.0},
		{"partial", "Go;SQL;Docker", "go", 1.0 / 3.0},
		{"no candidate tokens", "kubernetes", "", 0.0},
		{"case insensitive", "PYTHON", "python", 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, p.KeywordOverlap(tt.required, tt.candidate), 1e-9)
		})
	}
}

func TestExperienceFit(t *testing.T) {
	p := DefaultPolicy()

	tests := []struct {
		level     string
		education string
		expected  float64
	}{
		{"Junior", "Master en informatique", 1.0},
		{"junior", "Licence pro", 1.0},
		{"Junior", "Bac", 0.5},
		{"Confirmé", "Ingénieur", 1.0},
		{"Intermédiaire", "Licence", 0.7},
		{"Senior", "MASTER", 0.8},
		{"Senior", "Bac", 0.1},
		{"Expert", "Master", 0.5},
		{"", "", 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.level+"/"+tt.education, func(t *testing.T) {
			assert.Equal(t, tt.expected, p.ExperienceFit(tt.level, tt.education))
			assert.Equal(t, tt.expected, p.EducationFit(tt.level, tt.education))
		})
	}
}

func TestContractFit(t *testing.T) {
	p := DefaultPolicy()

	tests := []struct {
		contract string
		field    string
		expected float64
	}{
		{"Stage", "Informatique", 1.0},
		{"stage de fin d'études", "génie informatique", 1.0},
		{"Stage", "Marketing", 0.5},
		{"CDI", "Gestion", 1.0},
		{"CDI", "Stage en marketing", 0.5},
		{"CDD", "Informatique", 0.5},
		{"", "", 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.contract+"/"+tt.field, func(t *testing.T) {
			assert.Equal(t, tt.expected, p.ContractFit(tt.contract, tt.field))
		})
	}
}

func TestDefaultPolicy_ReturnsIndependentCopies(t *testing.T) {
	a := DefaultPolicy()
	a.Levels[0].Match = 0
	a.NeutralFit = 0

	b := DefaultPolicy()
	assert.Equal(t, 1.0, b.Levels[0].Match)
	assert.Equal(t, 0.5, b.NeutralFit)
}

// ==========================
// Compatibility score
// ==========================

func TestScorer_Score(t *testing.T) {
	s := NewScorer(DefaultPolicy())

	tests := []struct {
		name      string
		offer     *OfferSignals
		candidate *CandidateSignals
		expected  int
	}{
		{"nil offer", nil, &CandidateSignals{}, 0},
		{"nil candidate", &OfferSignals{}, nil, 0},
		{
			name:      "perfect fit",
			offer:     &OfferSignals{RequiredSkills: "Go, SQL", ExperienceLevel: "Junior", ContractType: "CDI"},
			candidate: &CandidateSignals{Skills: []string{"golang", "postgresql"}, EducationLevel: "Master", FieldOfStudy: "Informatique"},
			expected:  100,
		},
		{
			// 0.5/3 + 0.2*0.1 + 0.2*0.1 + 0.1*0.5 = 0.2567
			name:      "weak fit",
			offer:     &OfferSignals{RequiredSkills: "Go, SQL, Docker", ExperienceLevel: "Senior", ContractType: "CDD"},
			candidate: &CandidateSignals{Skills: []string{"go"}, EducationLevel: "Bac", FieldOfStudy: "Informatique"},
			expected:  26,
		},
		{
			// 1.0*0.5 + 0.5*0.2 + 0.5*0.2 + 0.5*0.1
			name:      "empty fields",
			offer:     &OfferSignals{},
			candidate: &CandidateSignals{},
			expected:  75,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Score(tt.offer, tt.candidate)
			assert.Equal(t, tt.expected, got)
			assert.GreaterOrEqual(t, got, 0)
			assert.LessOrEqual(t, got, 100)
		})
	}
}

func TestScorer_BreakdownKeepsSeparateEducationTerm(t *testing.T) {
	s := NewScorer(DefaultPolicy())
	b := s.Breakdown(
		&OfferSignals{RequiredSkills: "", ExperienceLevel: "Intermédiaire", ContractType: "Stage"},
		&CandidateSignals{EducationLevel: "Licence", FieldOfStudy: "Informatique"},
	)

	assert.Equal(t, 1.0, b.SkillOverlap)
	assert.Equal(t, 0.7, b.ExperienceFit)
	assert.Equal(t, 0.7, b.EducationFit)
	assert.Equal(t, 1.0, b.ContractFit)
	assert.InDelta(t, 0.5+0.14+0.14+0.1, b.Raw, 1e-9)
	assert.Equal(t, 88, b.Score)
}

func TestToPercent(t *testing.T) {
	tests := []struct {
		in       float64
		expected int
	}{
		{0, 0},
		{1, 100},
		{0.125, 13}, // half rounds up
		{0.375, 38},
		{0.124, 12},
		{-0.2, 0},
		{1.7, 100},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ToPercent(tt.in), "ToPercent(%v)", tt.in)
	}
}
