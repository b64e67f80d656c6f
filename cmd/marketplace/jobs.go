package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gigboard/marketplace/internal/core/domain"
	"github.com/gigboard/marketplace/internal/core/service"
	"github.com/gigboard/marketplace/internal/pkg/config"
	"github.com/gigboard/marketplace/internal/seed"
	"github.com/gigboard/marketplace/pkg/logger"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Inspect the job board",
}

var jobsSearchCmd = &cobra.Command{
	Use:   "search [text]",
	Short: "Search jobs in the configured store",
	Long: `Search jobs in the configured store.

Examples:
  marketplace jobs search landing
  marketplace jobs search --category design,web --max-budget 600`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := config.Load(ctx)
		if err != nil {
			return err
		}
		log := logger.Init(logger.Options{Level: "warn", Pretty: true})

		filter := domain.JobFilter{}
		if len(args) == 1 {
			filter.Search = args[0]
		}
		cats, _ := cmd.Flags().GetString("category")
		for _, c := range strings.Split(cats, ",") {
			if c = strings.TrimSpace(c); c == "" {
				continue
			}
			if !domain.Category(c).Valid() {
				return fmt.Errorf("unknown category %q", c)
			}
			filter.Categories = append(filter.Categories, domain.Category(c))
		}
		if cmd.Flags().Changed("min-budget") {
			v, _ := cmd.Flags().GetFloat64("min-budget")
			filter.MinBudget = &v
		}
		if cmd.Flags().Changed("max-budget") {
			v, _ := cmd.Flags().GetFloat64("max-budget")
			filter.MaxBudget = &v
		}

		b, err := openBackends(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer b.Close(ctx)

		if cfg.SeedDemoData {
			fixture, err := seed.Demo()
			if err != nil {
				return err
			}
			if err := seed.Load(ctx, fixture, b.accounts, b.jobs, log); err != nil {
				return err
			}
		}

		svc := service.NewJobService(b.jobs, service.JobOptions{AllowDecisionChanges: cfg.AllowDecisionChanges}, log)
		jobs, err := svc.SearchJobs(ctx, filter)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE\tCATEGORY\tBUDGET\tDEADLINE")
		for _, j := range jobs {
			fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%s\n", j.ID, j.Title, j.Category, j.Budget, j.Deadline)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d job(s)\n", len(jobs))
		return nil
	},
}

func init() {
	jobsSearchCmd.Flags().String("category", "", "comma-separated categories")
	jobsSearchCmd.Flags().Float64("min-budget", 0, "inclusive lower budget bound")
	jobsSearchCmd.Flags().Float64("max-budget", 0, "inclusive upper budget bound")
	jobsCmd.AddCommand(jobsSearchCmd)
}
