package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/noah-isme/course-planner-api/internal/app"
	"github.com/noah-isme/course-planner-api/internal/csvio"
	"github.com/noah-isme/course-planner-api/internal/dto"
)

type importOptions struct {
	file      string
	format    string
	delimiter string
	campusID  int64
	campusEN  string
	campusHE  string
	language  string
}

func newImportCmd() *cobra.Command {
	opts := &importOptions{}
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import the catalog of one campus in one language",
		Long: `Import a catalog from JSON (the POST /catalog/import body) or CSV (one
row per meeting, rows grouped into activities by activity_id).

Examples:
  planner import --file catalog.json
  planner import --file fall.csv --campus-id 1 --campus "Machon Lev" --campus-he "מכון לב" --language en`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := opts.load()
			if err != nil {
				return err
			}
			return withPlanner(cmd, func(ctx context.Context, a *app.App) error {
				summary, err := a.Catalog.Import(ctx, req)
				if err != nil {
					return err
				}
				return writeJSON(cmd, summary)
			})
		},
	}
	cmd.Flags().StringVar(&opts.file, "file", "", "Catalog file (.json or .csv)")
	cmd.Flags().StringVar(&opts.format, "format", "", "Catalog format: json or csv (default from extension)")
	cmd.Flags().StringVar(&opts.delimiter, "delimiter", ",", "CSV field delimiter")
	cmd.Flags().Int64Var(&opts.campusID, "campus-id", 0, "Campus id")
	cmd.Flags().StringVar(&opts.campusEN, "campus", "", "Campus English name")
	cmd.Flags().StringVar(&opts.campusHE, "campus-he", "", "Campus Hebrew name")
	cmd.Flags().StringVar(&opts.language, "language", "", "Catalog language: en or he")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func (o *importOptions) load() (dto.CatalogImportRequest, error) {
	format := strings.ToLower(o.format)
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(o.file)), ".")
	}

	var req dto.CatalogImportRequest
	switch format {
	case "json":
		data, err := os.ReadFile(o.file)
		if err != nil {
			return req, fmt.Errorf("read catalog: %w", err)
		}
		if err := json.Unmarshal(data, &req); err != nil {
			return req, fmt.Errorf("parse catalog %s: %w", o.file, err)
		}
	case "csv":
		delim := []rune(o.delimiter)
		if len(delim) != 1 {
			return req, fmt.Errorf("--delimiter must be a single character")
		}
		var err error
		req, err = csvio.LoadCatalogFile(o.file, delim[0], dto.CampusPayload{}, "")
		if err != nil {
			return req, err
		}
	default:
		return req, fmt.Errorf("unsupported catalog format %q", format)
	}

	if o.campusID != 0 {
		req.Campus.ID = o.campusID
	}
	if o.campusEN != "" {
		req.Campus.EnglishName = o.campusEN
	}
	if o.campusHE != "" {
		req.Campus.HebrewName = o.campusHE
	}
	if o.language != "" {
		req.Language = o.language
	}
	return req, nil
}
