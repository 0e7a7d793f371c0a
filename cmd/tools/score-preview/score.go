package main

import (
	"recruit-workers/internal/matching"

	"github.com/spf13/cobra"
)

func newScoreCmd() *cobra.Command {
	var (
		offer     matching.OfferSignals
		candidate matching.CandidateSignals
	)

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a candidate against an offer and print the breakdown",
		Example: `  score-preview score --required "Go, PostgreSQL, Docker" --level Junior --contract CDI \
    --skill go --skill docker --education Master --field Informatique`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			breakdown := matching.NewScorer(matching.DefaultPolicy()).Breakdown(&offer, &candidate)
			return writeJSON(cmd, cmd.OutOrStdout(), breakdown)
		},
	}

	f := cmd.Flags()
	f.StringVar(&offer.RequiredSkills, "required", "", "offer required skills, free text")
	f.StringVar(&offer.ExperienceLevel, "level", "", "offer experience level (Junior, Senior, ...)")
	f.StringVar(&offer.ContractType, "contract", "", "offer contract type (CDI, Stage, ...)")
	f.StringSliceVar(&candidate.Skills, "skill", nil, "candidate skill, repeatable")
	f.StringVar(&candidate.EducationLevel, "education", "", "candidate education level")
	f.StringVar(&candidate.FieldOfStudy, "field", "", "candidate field of study")
	return cmd
}
