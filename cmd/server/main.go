package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"khata/internal/config"
	"khata/internal/email/noop"
	"khata/internal/email/ses"
	"khata/internal/handler"
	"khata/internal/logger"
	"khata/internal/port"
	"khata/internal/ratelimit"
	"khata/internal/repository/postgres"
	"khata/internal/router"
	"khata/internal/service"
	s3storage "khata/internal/storage/s3"
)

//	@title			Khata API
//	@version		1.0
//	@description	GST invoicing, payments and bank reconciliation for small businesses.

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	zlog := logger.New(&logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: cfg.Log.Output})
	defer func() { _ = zlog.Sync() }()

	if cfg.Server.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	tenantRepo := postgres.NewTenantRepo(db)
	userRepo := postgres.NewUserRepo(db)
	partyRepo := postgres.NewPartyRepo(db)
	itemRepo := postgres.NewItemRepo(db)
	docRepo := postgres.NewDocumentRepo(db)
	paymentRepo := postgres.NewPaymentRepo(db)
	bankRepo := postgres.NewBankTransactionRepo(db)
	attachmentRepo := postgres.NewAttachmentRepo(db)
	dashboardRepo := postgres.NewDashboardRepo(db)
	txm := postgres.NewTxManager(db)

	// Initialize storage and email
	s3Client, err := s3storage.New(ctx, &cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}
	sender, err := newEmailSender(ctx, cfg, zlog)
	if err != nil {
		return err
	}

	authLimiter, apiLimiter, closeLimiters, err := newLimiters(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeLimiters()

	// Initialize services
	authSvc := service.NewAuthService(userRepo, tenantRepo, cfg.JWT)
	tenantSvc := service.NewTenantService(tenantRepo, txm, cfg.Invoice)
	userSvc := service.NewUserService(userRepo)
	registrationSvc := service.NewRegistrationService(tenantSvc, userRepo, authSvc, txm)
	partySvc := service.NewPartyService(partyRepo)
	itemSvc := service.NewItemService(itemRepo)
	attachmentSvc := service.NewAttachmentService(attachmentRepo, s3Client, &cfg.S3, zlog)
	docSvc := service.NewDocumentService(tenantRepo, partyRepo, docRepo, paymentRepo, attachmentSvc, txm, zlog)
	paymentSvc := service.NewPaymentService(docRepo, paymentRepo, partyRepo, bankRepo, tenantRepo, txm, sender, zlog)
	bankSvc := service.NewBankService(bankRepo, docRepo, paymentRepo, partyRepo, tenantRepo, txm, sender, zlog)
	ledgerSvc := service.NewLedgerService(partyRepo, docRepo, paymentRepo)
	reportSvc := service.NewReportService(partyRepo, docRepo, paymentRepo)
	dashboardSvc := service.NewDashboardService(dashboardRepo)

	// Initialize handlers
	h := router.Handlers{
		Auth:       handler.NewAuthHandler(authSvc, registrationSvc),
		Health:     handler.NewHealthHandler(db),
		Tenant:     handler.NewTenantHandler(tenantSvc),
		User:       handler.NewUserHandler(userSvc),
		Party:      handler.NewPartyHandler(partySvc, ledgerSvc),
		Item:       handler.NewItemHandler(itemSvc),
		Document:   handler.NewDocumentHandler(docSvc),
		Payment:    handler.NewPaymentHandler(paymentSvc),
		Bank:       handler.NewBankHandler(bankSvc),
		Report:     handler.NewReportHandler(reportSvc),
		Dashboard:  handler.NewDashboardHandler(dashboardSvc),
		Attachment: handler.NewAttachmentHandler(attachmentSvc),
	}

	r := router.Setup(authSvc, h, router.Options{
		Logger:         zlog,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AuthLimiter:    authLimiter,
		APILimiter:     apiLimiter,
	})

	if cfg.Sweeper.Enabled {
		sweeper := service.NewStatusSweeper(tenantSvc, docSvc, cfg.Sweeper.Interval, zlog.Named("sweeper"))
		go sweeper.Start(ctx)
	}

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		zlog.Info("server starting", zap.String("addr", cfg.Server.Port), zap.String("environment", cfg.Server.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	zlog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

func newEmailSender(ctx context.Context, cfg *config.Config, zlog *zap.Logger) (port.EmailSender, error) {
	if cfg.Email.Provider == "ses" {
		sender, err := ses.New(ctx, &cfg.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SES sender: %w", err)
		}
		return sender, nil
	}
	return noop.New(zlog.Named("email")), nil
}

// newLimiters builds the auth and API limiters on the configured backend.
// The returned func releases backend resources.
func newLimiters(ctx context.Context, cfg *config.Config) (auth, api port.RateLimiter, closeFn func(), err error) {
	rl := cfg.RateLimit
	if rl.Backend == "redis" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		auth = ratelimit.NewRedis(client, "khata:rl:", rl.AuthLimit, rl.AuthWindow)
		api = ratelimit.NewRedis(client, "khata:rl:", rl.APILimit, rl.APIWindow)
		return auth, api, func() { _ = client.Close() }, nil
	}

	authMem := ratelimit.NewMemory(rl.AuthLimit, rl.AuthWindow)
	apiMem := ratelimit.NewMemory(rl.APILimit, rl.APIWindow)
	go authMem.Run(ctx, rl.AuthWindow)
	go apiMem.Run(ctx, time.Minute)
	return authMem, apiMem, func() {}, nil
}
