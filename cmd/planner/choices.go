package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/noah-isme/course-planner-api/internal/app"
)

func newChoicesCmd() *cobra.Command {
	scope := &scopeFlags{}
	var courses []string
	cmd := &cobra.Command{
		Use:   "choices",
		Short: "Print the lecturer choices of each course",
		Long: `Print, per course name, the lecturers teaching its lectures and its
practices. Repeat --course to restrict the output to given courses.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPlanner(cmd, func(ctx context.Context, a *app.App) error {
				s, err := scope.resolve(a)
				if err != nil {
					return err
				}
				choices, err := a.Choices.Build(ctx, s, courses)
				if err != nil {
					return err
				}
				return writeJSON(cmd, choices)
			})
		},
	}
	scope.register(cmd)
	cmd.Flags().StringArrayVar(&courses, "course", nil, "Course name (repeatable)")
	return cmd
}
