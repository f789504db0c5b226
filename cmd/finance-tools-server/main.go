package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iwvelando/finance-tools/internal/calculator"
	"github.com/iwvelando/finance-tools/internal/logging"
	"github.com/iwvelando/finance-tools/internal/server"
	"github.com/iwvelando/finance-tools/internal/usage"
	"github.com/iwvelando/finance-tools/pkg/constants"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

const shutdownTimeout = 10 * time.Second

func main() {
	configLocation := flag.String("config", constants.DefaultServerConfigFile, "path to server configuration file")
	address := flag.String("address", "", "listen address override")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	showVersion := flag.Bool("version", false, "print the version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version)
		return
	}

	cfg, err := server.LoadConfig(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load server configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}
	if *address != "" {
		cfg.Address = *address
	}

	logger, err := logging.New(cfg.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	if err := serve(logger, cfg); err != nil {
		logger.Fatal("server stopped with error",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}

func serve(logger *zap.Logger, cfg *server.Config) error {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Usage.ReportTimeout())
	recorder, err := usage.Open(ctx, cfg.Usage, logger)
	cancel()
	if err != nil {
		return fmt.Errorf("failed to open usage sink: %w", err)
	}

	svc := calculator.NewService(logger, recorder, cfg.Usage.ReportTimeout())

	var limiter *server.RateLimiter
	if cfg.RateLimit.Requests > 0 {
		limiter = server.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window)
		defer limiter.Stop()
	}

	srv := &http.Server{
		Addr: cfg.Address,
		Handler: server.NewHandler(logger, svc, recorder, server.Options{
			Version:     version,
			MaxBodySize: cfg.BodySizeBytes(),
			Limiter:     limiter,
		}),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server listening",
			zap.String("op", "main.serve"),
			zap.String("address", cfg.Address),
			zap.Strings("usageBackends", cfg.Usage.Backends()),
			zap.String("version", version),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	var runErr error
	select {
	case err, ok := <-serverErr:
		if ok {
			runErr = fmt.Errorf("listen on %s: %w", cfg.Address, err)
		}
	case sig := <-stop:
		logger.Info("shutting down",
			zap.String("op", "main.serve"),
			zap.String("signal", sig.String()),
		)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			runErr = fmt.Errorf("graceful shutdown: %w", err)
		}
	}

	svc.Wait()
	if closer, ok := recorder.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			logger.Warn("failed to close usage sink",
				zap.String("op", "main.serve"),
				zap.Error(err),
			)
		}
	}
	return runErr
}
