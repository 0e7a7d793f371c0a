package main

import (
	"fmt"
	"sort"

	"recruit-workers/internal/readiness"

	"github.com/spf13/cobra"
)

type readinessPreview struct {
	Actions  []readiness.ActionItem `json:"actions"`
	Stats    readiness.Stats        `json:"stats"`
	Computed int                    `json:"computed"`
	Smoothed *int                   `json:"smoothed,omitempty"`
}

func newReadinessCmd() *cobra.Command {
	var (
		categories []string
		completed  []int
		stored     int
	)

	cmd := &cobra.Command{
		Use:     "readiness",
		Short:   "Cost an ordered list of action categories and compute readiness",
		Example: `  score-preview readiness --category CERTIFICATION --category PROJECT --category CV --completed 1 --stored 72`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if len(categories) == 0 {
				return fmt.Errorf("at least one --category is required")
			}

			suggestions := make([]readiness.Suggestion, len(categories))
			for i, c := range categories {
				suggestions[i] = readiness.Suggestion{Label: fmt.Sprintf("action %d", i+1), Category: c}
			}
			actions := readiness.BuildActions(suggestions)
			for _, idx := range completed {
				if idx < 0 || idx >= len(actions) {
					return fmt.Errorf("completed index %d out of range [0,%d)", idx, len(actions))
				}
				actions[idx].Completed = true
			}

			preview := readinessPreview{
				Actions:  actions,
				Stats:    readiness.Summarize(actions),
				Computed: readiness.Compute(actions),
			}
			if cmd.Flags().Changed("stored") {
				smoothed := readiness.Smooth(stored, preview.Computed)
				preview.Smoothed = &smoothed
			}
			return writeJSON(cmd, cmd.OutOrStdout(), preview)
		},
	}

	f := cmd.Flags()
	f.StringSliceVar(&categories, "category", nil, "action category in plan order, repeatable")
	f.IntSliceVar(&completed, "completed", nil, "zero-based index of a completed action, repeatable")
	f.IntVar(&stored, "stored", 0, "previously stored readiness; prints the smoothed toggle result")
	return cmd
}

func newCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List known action categories with their weight and time estimate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			names := readiness.Categories()
			sort.Strings(names)

			out := make(map[string]readiness.CategoryCost, len(names))
			for _, n := range names {
				out[n] = readiness.CostOf(n)
			}
			return writeJSON(cmd, cmd.OutOrStdout(), out)
		},
	}
}
