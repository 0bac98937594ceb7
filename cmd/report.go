package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sells-group/contact-finder/internal/export"
)

var reportSchools bool

var reportCmd = &cobra.Command{
	Use:   "report <run-id>",
	Short: "Print a text report for a stored run",
	Args:  cobra.ExactArgs(1),
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

		if reportSchools {
			return export.WriteSchoolReport(cmd.OutOrStdout(), orgs)
		}
		title := fmt.Sprintf("CONTACT REPORT: %s (%s)", run.Query, run.Location)
		return export.WriteReport(cmd.OutOrStdout(), title, orgs, run.Stats)
	},
}

func init() {
	reportCmd.Flags().BoolVar(&reportSchools, "schools", false, "school website opportunity layout")
	rootCmd.AddCommand(reportCmd)
}
