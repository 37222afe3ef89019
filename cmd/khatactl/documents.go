package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"khata/internal/timeutil"
)

var refreshStatusCmd = &cobra.Command{
	Use:   "refresh-status",
	Short: "Re-derive the status of every open document",
	RunE: func(cmd *cobra.Command, _ []string) error {
		n, err := cli.docs.RefreshStatuses(cli.context(cmd), cli.tenant.ID)
		if err != nil {
			return fmt.Errorf("refreshing statuses: %w", err)
		}
		cli.log.Info("statuses refreshed", zap.Int("changed", n))
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "%d document statuses changed\n", n)
		return err
	},
}

var nextNumberCmd = &cobra.Command{
	Use:   "next-number",
	Short: "Reserve and print the next invoice number",
	Long: `Reserve the tenant's next invoice number and print it. The counter is
advanced, so the number will not be issued again.`,
	Example: `  khatactl next-number --tenant acme --date 2025-04-01`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		dateStr, _ := cmd.Flags().GetString("date")
		date := timeutil.Today()
		if dateStr != "" {
			d, err := time.Parse("2006-01-02", dateStr)
			if err != nil {
				return fmt.Errorf("invalid date format. Use YYYY-MM-DD: %w", err)
			}
			date = d
		}

		number, err := cli.docs.NextNumber(cli.context(cmd), cli.tenant.ID, date)
		if err != nil {
			return fmt.Errorf("reserving number: %w", err)
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), number)
		return err
	},
}

func init() {
	rootCmd.AddCommand(refreshStatusCmd)
	rootCmd.AddCommand(nextNumberCmd)

	nextNumberCmd.Flags().String("date", "", "Document date deciding the financial year (format: YYYY-MM-DD, default: today)")
}
