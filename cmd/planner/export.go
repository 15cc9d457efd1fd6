package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/noah-isme/course-planner-api/internal/app"
	"github.com/noah-isme/course-planner-api/internal/dto"
)

func newExportCmd() *cobra.Command {
	scope := &scopeFlags{}
	var choicesFile, format, title string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render a timetable for lecturer choices",
		Long:  `Render the activities matching the choices as a CSV or PDF timetable in RESULTS_DIR.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, payload, err := readChoices(choicesFile)
			if err != nil {
				return err
			}
			return withPlanner(cmd, func(ctx context.Context, a *app.App) error {
				s, err := scope.resolve(a)
				if err != nil {
					return err
				}
				result, err := a.Exports.Export(ctx, s, dto.ExportRequest{
					Campus:   s.Campus,
					Language: string(s.Language),
					Choices:  payload,
					Format:   format,
					Title:    title,
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%d activities, %d rows)\n", result.RelativePath, result.Activities, result.Rows)
				return nil
			})
		},
	}
	scope.register(cmd)
	cmd.Flags().StringVar(&choicesFile, "choices", "", "JSON file of choices keyed by course name")
	cmd.Flags().StringVar(&format, "format", "csv", "Timetable format: csv or pdf")
	cmd.Flags().StringVar(&title, "title", "", "PDF title")
	_ = cmd.MarkFlagRequired("choices")
	return cmd
}

func newCleanupCmd() *cobra.Command {
	var olderThan time.Duration
	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Remove stored timetables past their retention",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPlanner(cmd, func(ctx context.Context, a *app.App) error {
				removed, err := a.Exports.Cleanup(olderThan)
				if err != nil {
					return err
				}
				for _, path := range removed {
					fmt.Fprintln(cmd.OutOrStdout(), path)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "removed %d timetables\n", len(removed))
				return nil
			})
		},
	}
	cmd.Flags().DurationVar(&olderThan, "older-than", 0, "Retention override (default EXPORT_RESULT_TTL)")
	return cmd
}
