package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sells-group/contact-finder/internal/model"
)

var researchFlags struct {
	runID    string
	location string
}

var researchCmd = &cobra.Command{
	Use:   "research [name]",
	Short: "Backfill missing contact fields",
	Long:  "Re-queries sources for organizations with incomplete contacts, either a stored run or a single named organization.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		e, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer e.Close()

		location := researchFlags.location
		if location == "" {
			location = cfg.Search.DefaultLocation
		}

		// Single ad-hoc organization.
		if len(args) == 1 {
			org := model.Organization{Name: args[0], Type: model.TypeSchool}
			org.Recalculate()
			e.Enricher.Enrich(ctx, &org, location)
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n  Phone:   %s\n  Email:   %s\n  Address: %s\n  Tier:    %s (%s)\n",
				org.Name, orDash(org.Phone), orDash(org.Email), orDash(org.Address), org.Tier, org.ContactStatus)
			return nil
		}

		if researchFlags.runID == "" {
			return fmt.Errorf("either an organization name or --run is required")
		}

		run, err := e.Store.GetRun(ctx, researchFlags.runID)
		if err != nil {
			return err
		}
		orgs, err := e.Store.GetOrganizations(ctx, run.ID)
		if err != nil {
			return err
		}

		improved := e.Enricher.EnrichAll(ctx, orgs, location)
		run.Stats = model.ComputeStats(orgs, run.Stats.SourcesUsed)

		// Persist the enriched set as a fresh run so history is kept.
		enriched := &model.Run{
			Query:    run.Query,
			Type:     run.Type,
			Location: run.Location,
			Limit:    run.Limit,
			Stats:    run.Stats,
		}
		if err := e.Store.CreateRun(ctx, enriched); err != nil {
			return err
		}
		if err := e.Store.SaveOrganizations(ctx, enriched.ID, orgs); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Enriched %d of %d organizations; saved as run %s\n",
			improved, len(orgs), enriched.ID)
		return nil
	},
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func init() {
	researchCmd.Flags().StringVar(&researchFlags.runID, "run", "", "stored run to enrich")
	researchCmd.Flags().StringVarP(&researchFlags.location, "location", "l", "", "location hint for source queries")
	rootCmd.AddCommand(researchCmd)
}
