package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jengacredit/loanbook/internal/application/usecase"
	"github.com/jengacredit/loanbook/internal/domain/service"
	"github.com/jengacredit/loanbook/internal/infrastructure/config"
	"github.com/jengacredit/loanbook/internal/infrastructure/messaging"
	pgRepo "github.com/jengacredit/loanbook/internal/infrastructure/persistence/postgres"
	grpcPresentation "github.com/jengacredit/loanbook/internal/presentation/grpc"
	"github.com/jengacredit/loanbook/internal/presentation/rest"
	"github.com/jengacredit/loanbook/pkg/auth"
	"github.com/jengacredit/loanbook/pkg/kafka"
	"github.com/jengacredit/loanbook/pkg/observability"
	"github.com/jengacredit/loanbook/pkg/postgres"
)

func main() {
	cfg := config.Load()
	logger := observability.InitLogger(cfg.Log)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger.Info("starting loanbook service",
		"grpc_port", cfg.GRPCPort,
		"http_port", cfg.HTTPPort,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Observability ------------------------------------------------------
	if cfg.Tracing.Endpoint != "" {
		shutdownTracer, err := observability.InitTracer(ctx, cfg.Tracing)
		if err != nil {
			logger.Error("failed to initialize tracing", "error", err)
			os.Exit(1)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdownTracer(shutdownCtx); err != nil {
				logger.Error("tracer shutdown error", "error", err)
			}
		}()
	}

	_, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{ServiceName: cfg.ServiceName})
	if err != nil {
		logger.Error("failed to initialize metrics", "error", err)
		os.Exit(1)
	}

	// --- Database -----------------------------------------------------------
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("connected to database")

	if err := postgres.RunMigrations(cfg.DB.DSN(), cfg.MigrationsPath); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// --- Messaging ----------------------------------------------------------
	producer := kafka.NewProducer(cfg.Kafka)
	publisher := messaging.NewKafkaEventPublisher(producer, cfg.EventTopic, logger)
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Error("event publisher close error", "error", err)
		}
	}()

	// --- Repositories and domain services -----------------------------------
	customerRepo := pgRepo.NewCustomerRepo(pool)
	loanRepo := pgRepo.NewLoanRepo(pool)
	repaymentRepo := pgRepo.NewRepaymentRepo(pool)
	sequenceRepo := pgRepo.NewSequenceRepo(pool)
	paymentStore := pgRepo.NewPaymentStore(pool)
	policy := service.NewInterestPolicy()
	detector := service.NewOverdueDetector()

	// --- Use cases ----------------------------------------------------------
	registerCustomerUC := usecase.NewRegisterCustomerUseCase(customerRepo, sequenceRepo, publisher)
	reviewCustomerUC := usecase.NewReviewCustomerUseCase(customerRepo, publisher)
	getCustomerUC := usecase.NewGetCustomerUseCase(customerRepo)
	submitLoanUC := usecase.NewSubmitLoanApplicationUseCase(customerRepo, loanRepo, sequenceRepo, publisher, policy)
	reviewLoanUC := usecase.NewReviewLoanUseCase(loanRepo, publisher)
	disburseLoanUC := usecase.NewDisburseLoanUseCase(loanRepo, customerRepo, publisher)
	recordRepaymentUC := usecase.NewRecordRepaymentUseCase(loanRepo, paymentStore, sequenceRepo, publisher)
	getLoanUC := usecase.NewGetLoanUseCase(loanRepo)
	listLoansUC := usecase.NewListCustomerLoansUseCase(loanRepo)
	listRepaymentsUC := usecase.NewListLoanRepaymentsUseCase(repaymentRepo)
	sweepUC := usecase.NewSweepOverdueLoansUseCase(loanRepo, publisher, detector, logger)
	reportUC := usecase.NewPortfolioReportUseCase(loanRepo)

	// --- Auth ---------------------------------------------------------------
	jwtService, err := auth.NewJWTService(cfg.JWT)
	if err != nil {
		logger.Error("failed to initialize JWT service", "error", err)
		os.Exit(1)
	}

	// --- gRPC server --------------------------------------------------------
	handler := grpcPresentation.NewLoanHandler(
		registerCustomerUC,
		reviewCustomerUC,
		getCustomerUC,
		submitLoanUC,
		reviewLoanUC,
		disburseLoanUC,
		recordRepaymentUC,
		getLoanUC,
		listLoansUC,
		listRepaymentsUC,
		sweepUC,
		reportUC,
		logger,
	)
	grpcServer, err := grpcPresentation.NewServer(handler, logger, jwtService)
	if err != nil {
		logger.Error("failed to build gRPC server", "error", err)
		os.Exit(1)
	}

	go func() {
		if err := grpcServer.Serve(cfg.GRPCAddr()); err != nil {
			logger.Error("gRPC server error", "error", err)
			stop()
		}
	}()

	// --- HTTP server (health and metrics) -----------------------------------
	mux := http.NewServeMux()
	rest.NewHealthHandler(pool, logger).RegisterRoutes(mux)
	mux.Handle("GET /metrics", metricsHandler)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "addr", cfg.HTTPAddr())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			stop()
		}
	}()

	// --- Overdue sweep ------------------------------------------------------
	if cfg.SweepInterval > 0 {
		go runOverdueSweep(ctx, sweepUC, cfg.SweepInterval, logger)
	}

	<-ctx.Done()
	logger.Info("shutting down")

	grpcServer.GracefulStop()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("loanbook service stopped")
}

// runOverdueSweep flags overdue loans on a fixed interval.
func runOverdueSweep(ctx context.Context, uc *usecase.SweepOverdueLoansUseCase, interval time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			result, err := uc.Execute(ctx)
			if err != nil {
				logger.Error("overdue sweep failed", "error", err)
				continue
			}
			if result.Flagged > 0 {
				logger.Info("overdue sweep completed",
					"examined", result.Examined,
					"flagged", result.Flagged,
				)
			}
		}
	}
}
