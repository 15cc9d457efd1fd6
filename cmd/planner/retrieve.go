package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/noah-isme/course-planner-api/internal/app"
)

func newRetrieveCmd() *cobra.Command {
	scope := &scopeFlags{}
	var choicesFile string
	cmd := &cobra.Command{
		Use:   "retrieve",
		Short: "Print the activities matching lecturer choices",
		Long: `Read lecturer choices keyed by course name and print every matching
activity with its meetings. An empty lecturer list accepts any lecturer.

The choices file looks like:
  {"Calculus I": {"lecture_lecturers": ["Cohen"], "practice_lecturers": []}}`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			choices, _, err := readChoices(choicesFile)
			if err != nil {
				return err
			}
			return withPlanner(cmd, func(ctx context.Context, a *app.App) error {
				s, err := scope.resolve(a)
				if err != nil {
					return err
				}
				activities, err := a.Activities.Retrieve(ctx, choices, s)
				if err != nil {
					return err
				}
				return writeJSON(cmd, activities)
			})
		},
	}
	scope.register(cmd)
	cmd.Flags().StringVar(&choicesFile, "choices", "", "JSON file of choices keyed by course name")
	_ = cmd.MarkFlagRequired("choices")
	return cmd
}
