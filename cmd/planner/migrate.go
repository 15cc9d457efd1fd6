package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/noah-isme/course-planner-api/internal/app"
	"github.com/noah-isme/course-planner-api/pkg/database"
)

func newMigrateCmd() *cobra.Command {
	var drop bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create the catalog tables",
		Long: `Create every catalog table that is missing. With --drop the existing
tables are removed first, discarding all imported catalogs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPlanner(cmd, func(ctx context.Context, a *app.App) error {
				if drop {
					if err := database.DropAll(ctx, a.DB); err != nil {
						return err
					}
					if err := database.Migrate(ctx, a.DB); err != nil {
						return err
					}
				}
				if err := a.Ready(ctx); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "schema ready (%s)\n", a.Config.Database.Driver)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&drop, "drop", false, "Drop existing tables before migrating")
	return cmd
}
