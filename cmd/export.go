package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/contact-finder/internal/export"
)

var exportFlags struct {
	format        string
	schools       bool
	noWebsiteOnly bool
	includeTier   bool
}

var exportCmd = &cobra.Command{
	Use:   "export <run-id> <output-file>",
	Short: "Export a stored run",
	Long:  "Writes a stored run's organizations to CSV, XLSX or JSON. The school variants filter to outreach targets.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		e, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer e.Close()

		run, err := e.Store.GetRun(ctx, args[0])
		if err != nil {
			return err
		}
		orgs, err := e.Store.GetOrganizations(ctx, run.ID)
		if err != nil {
			return err
		}

		if exportFlags.schools {
			f, err := os.Create(args[1])
			if err != nil {
				return eris.Wrapf(err, "create output file %s", args[1])
			}
			defer f.Close()
			return export.WriteSchoolCSV(f, orgs, export.SchoolCSVOptions{
				NoWebsiteOnly: exportFlags.noWebsiteOnly,
				IncludeTier:   exportFlags.includeTier,
			})
		}

		return writeOutput(args[1], exportFlags.format, orgs, export.Metadata{
			Query:    run.Query,
			Type:     run.Type,
			Location: run.Location,
			Stats:    run.Stats,
		})
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportFlags.format, "format", "", "output format: csv, xlsx or json (default from file extension)")
	exportCmd.Flags().BoolVar(&exportFlags.schools, "schools", false, "school-focused CSV layout")
	exportCmd.Flags().BoolVar(&exportFlags.noWebsiteOnly, "no-website-only", false, "with --schools, keep only schools without a website")
	exportCmd.Flags().BoolVar(&exportFlags.includeTier, "include-tier", false, "with --schools, append tier and contact status columns")
	rootCmd.AddCommand(exportCmd)
}
