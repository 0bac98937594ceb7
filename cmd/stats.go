package main

import (
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
)

var statsLimit int

var statsCmd = &cobra.Command{
	Use:   "stats [run-id]",
	Short: "Show run statistics",
	Long:  "Without arguments lists recent runs; with a run id prints that run's tier and coverage breakdown.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		e, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer e.Close()

		out := cmd.OutOrStdout()

		if len(args) == 0 {
			runs, err := e.Store.ListRuns(ctx, statsLimit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(out, "No stored runs.")
				return nil
			}
			for _, run := range runs {
				fmt.Fprintf(out, "%s  %-30s %-10s total=%-4d A=%-3d B=%-3d C=%-3d %s\n",
					run.CreatedAt.Format("2006-01-02 15:04"), truncate(run.Query, 30),
					run.Type, run.Stats.Total, run.Stats.TierA, run.Stats.TierB, run.Stats.TierC, run.ID)
			}
			return nil
		}

		run, err := e.Store.GetRun(ctx, args[0])
		if err != nil {
			return err
		}
		s := run.Stats
		fmt.Fprintf(out, "Run %s\n", run.ID)
		fmt.Fprintf(out, "  Query:     %s (%s, %s)\n", run.Query, run.Type, run.Location)
		fmt.Fprintf(out, "  Created:   %s\n", run.CreatedAt.Format("2006-01-02 15:04:05"))
		fmt.Fprintf(out, "  Total:     %d\n", s.Total)
		fmt.Fprintf(out, "  Tiers:     A=%d B=%d C=%d (%.1f%% complete)\n", s.TierA, s.TierB, s.TierC, s.CompletenessRate())
		fmt.Fprintf(out, "  Coverage:  phones=%d emails=%d addresses=%d websites=%d\n",
			s.PhonesFound, s.EmailsFound, s.AddressesFound, s.WebsitesFound)
		if len(s.SourcesUsed) > 0 {
			fmt.Fprintf(out, "  Sources:   %s\n", strings.Join(s.SourcesUsed, ", "))
		}
		return nil
	},
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}

func init() {
	statsCmd.Flags().IntVarP(&statsLimit, "limit", "n", 20, "maximum runs to list")
	rootCmd.AddCommand(statsCmd)
}
