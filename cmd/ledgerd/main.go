package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/ruteo/lending/internal/application/usecase"
	"github.com/ruteo/lending/internal/domain/service"
	"github.com/ruteo/lending/internal/infrastructure/config"
	"github.com/ruteo/lending/internal/infrastructure/kafka"
	pgRepo "github.com/ruteo/lending/internal/infrastructure/postgres"
	"github.com/ruteo/lending/internal/infrastructure/redis"
	grpcPresentation "github.com/ruteo/lending/internal/presentation/grpc"
	"github.com/ruteo/lending/internal/presentation/rest"
	"github.com/ruteo/lending/pkg/auth"
	pkgkafka "github.com/ruteo/lending/pkg/kafka"
	"github.com/ruteo/lending/pkg/money"
	"github.com/ruteo/lending/pkg/observability"
	pkgpostgres "github.com/ruteo/lending/pkg/postgres"
	"github.com/ruteo/lending/pkg/tlsutil"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Load configuration.
	cfg := config.Load()
	cfg.Validate()

	// Initialize structured logger via shared observability package.
	logger := observability.InitLogger(observability.LogConfig{
		Level:  getEnv("LOG_LEVEL", "info"),
		Format: getEnv("LOG_FORMAT", "json"),
	})
	slog.SetDefault(logger)

	logger.Info("starting lending",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
	)

	// Initialize tracing.
	shutdown, err := observability.InitTracer(ctx, observability.TracingConfig{
		ServiceName: cfg.ServiceName,
		Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		Insecure:    true,
	})
	if err != nil {
		logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
	} else {
		defer func() { _ = shutdown(ctx) }() //nolint:errcheck // best-effort tracer shutdown
	}

	// Initialize metrics.
	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: cfg.ServiceName,
	})
	if err != nil {
		logger.Error("failed to initialize metrics", "error", err)
		os.Exit(1)
	}
	defer func() { _ = meterProvider.Shutdown(ctx) }() //nolint:errcheck // best-effort meter shutdown

	// Database connection.
	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	defer dbCancel()

	dbCfg := pkgpostgres.Config{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Name,
		SSLMode:  cfg.DB.SSLMode,
	}
	pool, err := pkgpostgres.NewPool(dbCtx, dbCfg)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("connected to database")

	// Run database migrations.
	if migErr := pkgpostgres.RunMigrations(dbCfg.DSN(), "file://internal/infrastructure/postgres/migrations"); migErr != nil {
		logger.Warn("migration warning", "error", migErr)
	}

	// Redis connection for payment idempotency.
	redisClient := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	logger.Info("connected to redis")

	// Wire infrastructure adapters.
	loanRepo := pgRepo.NewLoanRepo(pool)
	paymentRepo := pgRepo.NewPaymentRepo(pool)
	kafkaProducer := pkgkafka.NewProducer(pkgkafka.Config{
		Brokers: cfg.Kafka.Brokers,
	})
	defer kafkaProducer.Close()
	publisher := kafka.NewEventPublisher(kafkaProducer, cfg.Kafka.Topic, logger)
	idempotencyStore := redis.NewIdempotencyStore(redisClient)
	engine := service.NewLedgerEngine()

	// Wire use cases.
	originateUC := usecase.NewOriginateLoanUseCase(engine, loanRepo, publisher)
	renewUC := usecase.NewRenewLoanUseCase(engine, loanRepo, publisher)
	paymentUC := usecase.NewRecordPaymentUseCase(engine, loanRepo, paymentRepo, publisher, idempotencyStore)
	badDebtUC := usecase.NewMarkBadDebtUseCase(loanRepo, publisher)
	getLoanUC := usecase.NewGetLoanUseCase(loanRepo)
	listPaymentsUC := usecase.NewListLoanPaymentsUseCase(paymentRepo)

	// Ledger currency. Every amount crossing the API is denominated in it.
	currency, err := money.NewCurrency(cfg.Currency)
	if err != nil {
		logger.Error("invalid ledger currency", "currency", cfg.Currency, "error", err)
		os.Exit(1)
	}

	// JWT service (validation-only; tokens are issued by the gateway).
	jwtSvc, err := auth.NewJWTService(auth.JWTConfig{
		Secret: cfg.JWTSecret,
		Issuer: "ruteo-gateway",
	})
	if err != nil {
		logger.Error("failed to initialize JWT service", "error", err)
		os.Exit(1)
	}

	// TLS material. When enabled without cert files, generate a dev CA and
	// server cert under ./certs.
	certFile, keyFile := "", ""
	if cfg.TLS.Enabled {
		certFile, keyFile = cfg.TLS.CertFile, cfg.TLS.KeyFile
		if certFile == "" || keyFile == "" {
			if genErr := tlsutil.GenerateSelfSignedCert([]string{"localhost", "127.0.0.1"}, "certs"); genErr != nil {
				logger.Error("failed to generate dev TLS certificates", "error", genErr)
				os.Exit(1)
			}
			certFile, keyFile = "certs/server.pem", "certs/server-key.pem"
			logger.Warn("using generated self-signed TLS certificates", "dir", "certs")
		}
	}

	// gRPC server.
	handler := grpcPresentation.NewLoanLedgerHandler(
		originateUC, renewUC, paymentUC, badDebtUC, getLoanUC, listPaymentsUC, currency,
	)
	grpcServer := grpcPresentation.NewServer(handler, logger, jwtSvc, certFile, keyFile)

	// HTTP server (health checks and metrics).
	mux := http.NewServeMux()
	healthHandler := rest.NewHealthHandler(logger, map[string]rest.ReadinessCheck{
		"postgres": func(ctx context.Context) error {
			return pkgpostgres.HealthCheck(ctx, pool)
		},
		"redis": func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		},
	})
	healthHandler.RegisterRoutes(mux)
	mux.Handle("GET /metrics", metricsHandler)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start servers.
	errCh := make(chan error, 2)

	go func() {
		if err := grpcServer.Serve(cfg.GRPCAddr()); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "port", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Wait for shutdown signal.
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	// Graceful shutdown.
	grpcServer.GracefulStop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("lending stopped")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
