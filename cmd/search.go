package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/contact-finder/internal/export"
	"github.com/sells-group/contact-finder/internal/model"
	"github.com/sells-group/contact-finder/internal/pipeline"
)

var searchFlags struct {
	orgType   string
	locations []string
	limit     int
	sources   string
	enrich    bool
	output    string
	format    string
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search directories for organization contacts",
	Long:  "Runs the query against every enabled source, merges duplicates, classifies tiers and persists the run.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		e, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer e.Close()

		orgType := model.ParseOrgType(searchFlags.orgType)
		req := pipeline.Request{
			Query:     args[0],
			Type:      orgType,
			Locations: searchFlags.locations,
			Limit:     searchFlags.limit,
			Sources:   searchFlags.sources,
		}

		result, err := e.Aggregator.Run(ctx, req)
		if err != nil {
			return err
		}

		if searchFlags.enrich {
			location := cfg.Search.DefaultLocation
			if len(req.Locations) > 0 {
				location = req.Locations[0]
			}
			improved := e.Enricher.EnrichAll(ctx, result.Organizations, location)
			result.Stats = model.ComputeStats(result.Organizations, result.SourcesUsed)
			zap.L().Info("enrichment pass complete", zap.Int("improved", improved))
		}

		run := &model.Run{
			Query:    req.Query,
			Type:     orgType,
			Location: strings.Join(req.Locations, ", "),
			Limit:    req.Limit,
			Stats:    result.Stats,
		}
		if err := e.Store.CreateRun(ctx, run); err != nil {
			return err
		}
		if err := e.Store.SaveOrganizations(ctx, run.ID, result.Organizations); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Run %s: %d organizations (A:%d B:%d C:%d)\n",
			run.ID, result.Stats.Total, result.Stats.TierA, result.Stats.TierB, result.Stats.TierC)

		if searchFlags.output == "" {
			return nil
		}
		return writeOutput(searchFlags.output, searchFlags.format, result.Organizations, export.Metadata{
			Query:    req.Query,
			Type:     orgType,
			Location: run.Location,
			Stats:    result.Stats,
		})
	},
}

// writeOutput renders organizations to path in the requested format.
// Format defaults from the path extension.
func writeOutput(path, format string, orgs []model.Organization, meta export.Metadata) error {
	if format == "" {
		switch {
		case strings.HasSuffix(path, ".xlsx"):
			format = "xlsx"
		case strings.HasSuffix(path, ".json"):
			format = "json"
		default:
			format = "csv"
		}
	}

	if format == "xlsx" {
		return export.WriteXLSX(path, orgs, meta.Stats)
	}

	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "create output file %s", path)
	}
	defer f.Close()

	switch format {
	case "csv":
		return export.WriteCSV(f, orgs)
	case "json":
		return export.WriteJSON(f, meta, orgs)
	default:
		return eris.Errorf("unknown output format %q", format)
	}
}

func init() {
	searchCmd.Flags().StringVarP(&searchFlags.orgType, "type", "t", "business", "organization type (school, business, medical, ...)")
	searchCmd.Flags().StringSliceVarP(&searchFlags.locations, "location", "l", nil, "location(s) to search (default from config)")
	searchCmd.Flags().IntVarP(&searchFlags.limit, "limit", "n", 0, "maximum organizations to return (default from config)")
	searchCmd.Flags().StringVar(&searchFlags.sources, "sources", "all", "source selection: all, tanzania_only, or comma-separated keys")
	searchCmd.Flags().BoolVar(&searchFlags.enrich, "enrich", false, "run the enrichment backfill pass after merging")
	searchCmd.Flags().StringVarP(&searchFlags.output, "output", "o", "", "write results to file (csv, xlsx or json)")
	searchCmd.Flags().StringVar(&searchFlags.format, "format", "", "output format override (default from file extension)")
	rootCmd.AddCommand(searchCmd)
}
