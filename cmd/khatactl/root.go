package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"khata/internal/config"
	"khata/internal/domain"
	"khata/internal/email/noop"
	"khata/internal/logger"
	"khata/internal/repository/postgres"
	"khata/internal/service"
)

var version = "1.0.0"

// app holds the collaborators shared by every subcommand. It is built in
// the root command's PersistentPreRunE.
type app struct {
	cfg     *config.Config
	log     *zap.Logger
	db      *sqlx.DB
	tenants service.TenantService
	parties service.PartyService
	docs    service.DocumentService
	bank    service.BankService
	ledger  service.LedgerService
	tenant  *domain.Tenant
}

var cli = &app{}

var rootCmd = &cobra.Command{
	Use:   "khatactl",
	Short: "Operator commands for Khata books",
	Long: `khatactl runs maintenance and bulk operations against a Khata database
outside the HTTP API: statement imports, status refreshes, invoice numbers,
party ledgers and party imports.

Every command acts on one tenant, selected by --tenant (the tenant slug).
Configuration is read the same way as the server: .env, config.yaml and
KHATA_* environment variables.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: cli.setup,
	PersistentPostRun: func(_ *cobra.Command, _ []string) { cli.close() },
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("tenant", "", "Tenant slug (required)")
	_ = rootCmd.MarkPersistentFlagRequired("tenant")
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	a.cfg = cfg
	a.log = logger.New(&logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: "stderr"}).
		With(zap.String("command", cmd.Name()))

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	a.db = db

	tenantRepo := postgres.NewTenantRepo(db)
	partyRepo := postgres.NewPartyRepo(db)
	docRepo := postgres.NewDocumentRepo(db)
	paymentRepo := postgres.NewPaymentRepo(db)
	bankRepo := postgres.NewBankTransactionRepo(db)
	txm := postgres.NewTxManager(db)
	sender := noop.New(a.log)

	a.tenants = service.NewTenantService(tenantRepo, txm, cfg.Invoice)
	a.parties = service.NewPartyService(partyRepo)
	a.docs = service.NewDocumentService(tenantRepo, partyRepo, docRepo, paymentRepo, nil, txm, a.log)
	a.bank = service.NewBankService(bankRepo, docRepo, paymentRepo, partyRepo, tenantRepo, txm, sender, a.log)
	a.ledger = service.NewLedgerService(partyRepo, docRepo, paymentRepo)

	slug, _ := cmd.Flags().GetString("tenant")
	tenant, err := tenantRepo.GetBySlug(cmd.Context(), strings.ToLower(strings.TrimSpace(slug)))
	if err != nil {
		return fmt.Errorf("tenant %q: %w", slug, err)
	}
	a.tenant = tenant
	return nil
}

func (a *app) close() {
	if a.db != nil {
		_ = a.db.Close()
	}
	if a.log != nil {
		_ = a.log.Sync()
	}
}

func (a *app) context(cmd *cobra.Command) context.Context {
	return logger.WithContext(cmd.Context(), a.log.With(zap.String("tenant_id", a.tenant.ID.String())))
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
