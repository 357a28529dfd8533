package main

import (
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"inventtrack/m/internal/dashboard"
	"inventtrack/m/internal/seed"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the local store schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()
		a.logger.Info("store ready", slog.String("driver", a.cfg.StoreDriver))
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed [csv]",
	Short: "Load a product catalog CSV into the local store",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "assets/products.csv"
		if len(args) == 1 {
			path = args[0]
		}
		a, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		report, err := seed.LoadProducts(cmd.Context(), a.repo, path, time.Now(), a.logger)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), report)
	},
}

var dashboardData bool

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Print dashboard statistics for the local store",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		if dashboardData {
			data, err := dashboard.Snapshot(cmd.Context(), a.repo)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), data)
		}
		stats, err := dashboard.Load(cmd.Context(), a.repo, time.Now())
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), stats)
	},
}

func init() {
	dashboardCmd.Flags().BoolVar(&dashboardData, "data", false, "print every record instead of the summary")
}
