package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var importBankCmd = &cobra.Command{
	Use:   "import-bank",
	Short: "Import a bank statement CSV",
	Long: `Import a bank statement CSV into the tenant's unmatched bank transactions.

Rows already imported (same date, amount, reference and narration) are
skipped. A malformed row rejects the whole file.`,
	Example: `  khatactl import-bank --tenant acme --file hdfc-may.csv --account "HDFC Current"`,
	RunE:    runImportBank,
}

func init() {
	rootCmd.AddCommand(importBankCmd)

	importBankCmd.Flags().String("file", "", "Statement CSV path (required)")
	importBankCmd.Flags().String("account", "", "Account label stored on each transaction")
	_ = importBankCmd.MarkFlagRequired("file")
}

func runImportBank(cmd *cobra.Command, _ []string) error {
	path, _ := cmd.Flags().GetString("file")
	label, _ := cmd.Flags().GetString("account")

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening statement: %w", err)
	}
	defer f.Close()

	res, err := cli.bank.Import(cli.context(cmd), cli.tenant.ID, label, f)
	if err != nil {
		return fmt.Errorf("importing %s: %w", path, err)
	}
	cli.log.Info("statement imported",
		zap.String("file", path), zap.Int("imported", res.Imported), zap.Int("skipped", res.Skipped))
	return printJSON(cmd.OutOrStdout(), res)
}
