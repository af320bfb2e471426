package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-solver/internal/config"
	"github.com/rocketscienceinc/tictactoe-solver/internal/repository"
	"github.com/rocketscienceinc/tictactoe-solver/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-solver/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-solver/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-solver/transport/rest"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	engine, err := tictactoe.NewEngine(
		tictactoe.WithDepthLimit(conf.Engine.DepthLimit),
		tictactoe.WithDiagnostics(conf.Engine.Diagnostics),
		tictactoe.WithLogger(logger.With("component", "engine")),
	)
	if err != nil {
		return fmt.Errorf("could not create engine: %w", err)
	}

	// reports only exist when the engine records its decision tree
	var reportRepo repository.ReportRepository
	if conf.Engine.Diagnostics {
		redisAddrString := conf.Redis.GetRedisAddr()
		if redisAddrString == "" {
			return ErrAddrNotFound
		}

		redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
		if err != nil {
			return fmt.Errorf("could not connect to redis storage: %w", err)
		}

		defer func() {
			if err := redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}()

		reportRepo = repository.NewReportRepository(redisStorage.Connection, conf.ReportTTL)
	}

	analyzer := usecase.NewAnalyzer(logger, engine, reportRepo)
	handlers := rest.NewHandlers(logger, analyzer)

	log.Info("Starting HTTP server",
		"port", conf.HTTPPort,
		"depth_limit", conf.Engine.DepthLimit,
		"diagnostics", conf.Engine.Diagnostics,
	)

	if err = rest.Start(ctx, conf.HTTPPort, handlers.Routes()); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	log.Info("Application context canceled, shutting down")

	return nil
}
