package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"inventtrack/m/internal/apiclient"
	"inventtrack/m/internal/config"
	"inventtrack/m/internal/logging"
)

var remoteCmd = &cobra.Command{
	Use:   "remote",
	Short: "Query the hosted InventTrack API",
}

func remoteClient() (*apiclient.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return apiclient.New(cfg.APIURL, cfg.APIKey,
		apiclient.WithTimeout(cfg.APITimeout),
		apiclient.WithLogger(logging.New(cfg.LogFormat)),
	), nil
}

// emit prints the payload of a successful result or returns its error.
func emit[T any](cmd *cobra.Command, res apiclient.Result[T]) error {
	if !res.Success {
		return errors.New(res.Error)
	}
	return printJSON(cmd.OutOrStdout(), res.Data)
}

var (
	remoteSearch   string
	remoteCategory string
	remotePage     int
	remoteLimit    int
	remoteStart    string
	remoteEnd      string
)

var remoteProductsCmd = &cobra.Command{
	Use:   "products",
	Short: "List remote products",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := remoteClient()
		if err != nil {
			return err
		}
		return emit(cmd, c.Products().List(cmd.Context(), apiclient.ProductFilter{
			Page:     remotePage,
			Limit:    remoteLimit,
			Search:   remoteSearch,
			Category: remoteCategory,
		}))
	},
}

var remoteLowStockCmd = &cobra.Command{
	Use:   "low-stock",
	Short: "List remote products at or below their minimum stock",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := remoteClient()
		if err != nil {
			return err
		}
		return emit(cmd, c.Products().LowStock(cmd.Context()))
	},
}

var remoteStatsCmd = &cobra.Command{
	Use:       "stats purchases|sales",
	Short:     "Print remote purchase or sale statistics for a date range",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"purchases", "sales"},
	RunE: func(cmd *cobra.Command, args []string) error {
		start, err := parseDay(remoteStart)
		if err != nil {
			return err
		}
		end, err := parseDay(remoteEnd)
		if err != nil {
			return err
		}
		c, err := remoteClient()
		if err != nil {
			return err
		}
		switch args[0] {
		case "purchases":
			return emit(cmd, c.Purchases().Stats(cmd.Context(), start, end))
		case "sales":
			return emit(cmd, c.Sales().Stats(cmd.Context(), start, end))
		default:
			return fmt.Errorf("unknown stats kind %q", args[0])
		}
	},
}

func parseDay(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q must be in YYYY-MM-DD format", s)
	}
	return t, nil
}

func init() {
	remoteProductsCmd.Flags().StringVar(&remoteSearch, "search", "", "filter by name or sku")
	remoteProductsCmd.Flags().StringVar(&remoteCategory, "category", "", "filter by category")
	remoteProductsCmd.Flags().IntVar(&remotePage, "page", 1, "page number")
	remoteProductsCmd.Flags().IntVar(&remoteLimit, "limit", 20, "page size")

	today := time.Now().Format("2006-01-02")
	remoteStatsCmd.Flags().StringVar(&remoteStart, "start", today, "first day, YYYY-MM-DD")
	remoteStatsCmd.Flags().StringVar(&remoteEnd, "end", today, "last day, YYYY-MM-DD")

	remoteCmd.AddCommand(remoteProductsCmd, remoteLowStockCmd, remoteStatsCmd)
}
