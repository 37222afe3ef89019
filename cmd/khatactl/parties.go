package main

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"khata/internal/domain"
	"khata/internal/service"
)

var ledgerCmd = &cobra.Command{
	Use:     "ledger PARTY_ID",
	Short:   "Print a party's ledger statement as JSON",
	Args:    cobra.ExactArgs(1),
	Example: `  khatactl ledger --tenant acme 0b9d... --from 2025-04-01 --to 2026-03-31`,
	RunE:    runLedger,
}

var importPartiesCmd = &cobra.Command{
	Use:   "import-parties",
	Short: "Create customers or vendors from an XLSX workbook",
	Long: `Create parties from the first sheet of an XLSX workbook.

The header row names the columns: name, gstin, pan, state code, email,
phone, address, opening balance. Only name is required. Rows that fail
validation are reported and do not stop the import.`,
	Example: `  khatactl import-parties --tenant acme --file customers.xlsx --kind customer`,
	RunE:    runImportParties,
}

func init() {
	rootCmd.AddCommand(ledgerCmd)
	rootCmd.AddCommand(importPartiesCmd)

	ledgerCmd.Flags().String("from", "", "Start date (format: YYYY-MM-DD)")
	ledgerCmd.Flags().String("to", "", "End date (format: YYYY-MM-DD)")

	importPartiesCmd.Flags().String("file", "", "Workbook path (required)")
	importPartiesCmd.Flags().String("kind", "customer", "Party kind: customer or vendor")
	_ = importPartiesCmd.MarkFlagRequired("file")
}

func runLedger(cmd *cobra.Command, args []string) error {
	partyID, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid party id %q", args[0])
	}
	from, err := dateFlag(cmd, "from")
	if err != nil {
		return err
	}
	to, err := dateFlag(cmd, "to")
	if err != nil {
		return err
	}

	stmt, err := cli.ledger.Statement(cli.context(cmd), cli.tenant.ID, partyID, from, to)
	if err != nil {
		return fmt.Errorf("building ledger: %w", err)
	}
	return printJSON(cmd.OutOrStdout(), stmt)
}

func runImportParties(cmd *cobra.Command, _ []string) error {
	path, _ := cmd.Flags().GetString("file")
	kindStr, _ := cmd.Flags().GetString("kind")
	kind := domain.PartyKind(kindStr)
	if kind != domain.PartyCustomer && kind != domain.PartyVendor {
		return fmt.Errorf("kind must be customer or vendor, got %q", kindStr)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	rows, err := service.ReadPartySheet(f, kind)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	res, err := service.ImportParties(cli.context(cmd), cli.parties, cli.tenant.ID, rows)
	if err != nil {
		return err
	}
	cli.log.Info("parties imported", zap.Int("created", res.Created), zap.Int("failed", len(res.Failed)))
	return printJSON(cmd.OutOrStdout(), res)
}

func dateFlag(cmd *cobra.Command, name string) (*time.Time, error) {
	s, _ := cmd.Flags().GetString(name)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s date format. Use YYYY-MM-DD: %w", name, err)
	}
	return &t, nil
}
