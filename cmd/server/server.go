package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"

	"github.com/KirkDiggler/rpg-forge/internal/auth"
	"github.com/KirkDiggler/rpg-forge/internal/config"
	"github.com/KirkDiggler/rpg-forge/internal/errors"
	"github.com/KirkDiggler/rpg-forge/internal/handlers/api/v1alpha1"
	"github.com/KirkDiggler/rpg-forge/internal/telemetry"
)

var (
	httpPort int
	grpcPort int
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the HTTP API and gRPC health servers",
	Long:  `Start the RPG Forge JSON API with creature, item and dice routes, plus a gRPC health endpoint.`,
	RunE:  runServer,
}

func init() {
	serverCmd.Flags().IntVar(&httpPort, "http-port", 0, "HTTP API port (overrides RPG_FORGE_HTTP_PORT)")
	serverCmd.Flags().IntVar(&grpcPort, "grpc-port", 0, "gRPC health port (overrides RPG_FORGE_GRPC_PORT)")
}

func runServer(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if httpPort != 0 {
		cfg.HTTPPort = httpPort
	}
	if grpcPort != 0 {
		cfg.GRPCPort = grpcPort
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := telemetry.NewLogger(cfg.Level())
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.SetupTracing(ctx, cfg.OTelEndpoint)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Warn("tracing shutdown failed", zap.Error(err))
		}
	}()

	a, err := buildApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	verifier, err := auth.NewVerifier(&auth.Config{Secret: cfg.JWTSecret})
	if err != nil {
		return err
	}

	handler, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{
		CreatureService: a.creatures,
		ItemService:     a.items,
		DiceService:     a.dice,
		Verifier:        verifier,
		Logger:          logger,
	})
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           handler.Routes(),
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.WriteTimeout,
	}

	grpcServer, healthServer := newGRPCServer(logger)
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.GRPCPort))
	if err != nil {
		return errors.Wrap(err, "failed to listen for grpc")
	}

	errChan := make(chan error, 2)
	go func() {
		logger.Info("http server starting", zap.Int("port", cfg.HTTPPort))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- errors.Wrap(err, "http server failed")
		}
	}()
	go func() {
		logger.Info("grpc health server starting", zap.Int("port", cfg.GRPCPort))
		if err := grpcServer.Serve(lis); err != nil {
			errChan <- errors.Wrap(err, "grpc server failed")
		}
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		logger.Info("received shutdown signal, gracefully stopping")
	case serveErr = <-errChan:
		logger.Error("server failed, shutting down", zap.Error(serveErr))
	}

	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_NOT_SERVING)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown did not complete", zap.Error(err))
	}

	stopped := make(chan struct{})
	go func() {
		grpcServer.GracefulStop()
		close(stopped)
	}()

	select {
	case <-shutdownCtx.Done():
		logger.Warn("graceful shutdown timeout exceeded, forcing stop")
		grpcServer.Stop()
	case <-stopped:
		logger.Info("servers stopped gracefully")
	}

	return serveErr
}

func newGRPCServer(logger *zap.Logger) (*grpc.Server, *health.Server) {
	logFunc := zapLogFunc(logger)
	recoverOpt := grpc_recovery.WithRecoveryHandler(func(p any) error {
		logger.Error("grpc handler panicked", zap.Any("panic", p))
		return errors.ToGRPCError(errors.Internal("internal error"))
	})
	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(logFunc),
			grpc_recovery.UnaryServerInterceptor(recoverOpt),
		),
		grpc.ChainStreamInterceptor(
			grpc_logging.StreamServerInterceptor(logFunc),
			grpc_recovery.StreamServerInterceptor(recoverOpt),
		),
	)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)

	reflection.Register(srv)
	return srv, healthServer
}

// zapLogFunc adapts zap to the grpc logging interceptor
func zapLogFunc(logger *zap.Logger) grpc_logging.LoggerFunc {
	return func(_ context.Context, level grpc_logging.Level, msg string, fields ...any) {
		zapFields := make([]zap.Field, 0, len(fields)/2)
		for i := 0; i+1 < len(fields); i += 2 {
			key, ok := fields[i].(string)
			if !ok {
				continue
			}
			zapFields = append(zapFields, zap.Any(key, fields[i+1]))
		}

		switch level {
		case grpc_logging.LevelDebug:
			logger.Debug(msg, zapFields...)
		case grpc_logging.LevelWarn:
			logger.Warn(msg, zapFields...)
		case grpc_logging.LevelError:
			logger.Error(msg, zapFields...)
		default:
			logger.Info(msg, zapFields...)
		}
	}
}
