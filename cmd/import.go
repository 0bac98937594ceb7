package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/contact-finder/internal/export"
	"github.com/sells-group/contact-finder/internal/model"
	"github.com/sells-group/contact-finder/internal/pipeline"
)

var importFlags struct {
	orgType string
	label   string
}

var importCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Import a previously exported CSV as a new run",
	Long:  "Parses an exported CSV, re-merges duplicates, reclassifies tiers and persists the result as a stored run.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		e, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer e.Close()

		f, err := os.Open(args[0])
		if err != nil {
			return eris.Wrapf(err, "open import file %s", args[0])
		}
		defer f.Close()

		orgs, err := export.ReadCSV(f)
		if err != nil {
			return err
		}
		if importFlags.orgType != "" {
			t := model.ParseOrgType(importFlags.orgType)
			for i := range orgs {
				orgs[i].Type = t
			}
		}

		orgs = pipeline.Merge(orgs)
		stats := model.ComputeStats(orgs, []string{"Import"})

		label := importFlags.label
		if label == "" {
			label = fmt.Sprintf("import:%s", args[0])
		}
		run := &model.Run{Query: label, Type: model.ParseOrgType(importFlags.orgType), Stats: stats}
		if err := e.Store.CreateRun(ctx, run); err != nil {
			return err
		}
		if err := e.Store.SaveOrganizations(ctx, run.ID, orgs); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d organizations as run %s (A:%d B:%d C:%d)\n",
			stats.Total, run.ID, stats.TierA, stats.TierB, stats.TierC)
		return nil
	},
}

func init() {
	importCmd.Flags().StringVarP(&importFlags.orgType, "type", "t", "", "override organization type for every imported row")
	importCmd.Flags().StringVar(&importFlags.label, "label", "", "run label (default derived from file name)")
	rootCmd.AddCommand(importCmd)
}
