package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/feral-file/band-ledger/internal/adapter"
	"github.com/feral-file/band-ledger/internal/api/middleware"
	"github.com/feral-file/band-ledger/internal/api/server"
	"github.com/feral-file/band-ledger/internal/api/shared/executor"
	"github.com/feral-file/band-ledger/internal/config"
	"github.com/feral-file/band-ledger/internal/domain"
	"github.com/feral-file/band-ledger/internal/factory"
	"github.com/feral-file/band-ledger/internal/journal"
	"github.com/feral-file/band-ledger/internal/logger"
	"github.com/feral-file/band-ledger/internal/media/rasterizer"
	"github.com/feral-file/band-ledger/internal/notifier"
	"github.com/feral-file/band-ledger/internal/providers/jetstream"
	"github.com/feral-file/band-ledger/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "band-ledger-api",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting band ledger API")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
	}

	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.Fatal("Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)

	// Initialize adapters
	clock := adapter.NewClock()
	jsonAdapter := adapter.NewJSON()
	b64 := adapter.NewBase64()

	dataStore := store.NewPGStore(db, jsonAdapter, b64)

	// Event notifications are optional
	var eventNotifier notifier.Notifier
	if cfg.NATS.URL != "" {
		publisher, err := jetstream.NewPublisher(ctx, jetstream.Config{
			URL:            cfg.NATS.URL,
			StreamName:     cfg.NATS.StreamName,
			SubjectPrefix:  cfg.NATS.SubjectPrefix,
			MaxReconnects:  cfg.NATS.MaxReconnects,
			ReconnectWait:  cfg.NATS.ReconnectWait,
			ConnectionName: cfg.NATS.ConnectionName,
			MaxAge:         cfg.NATS.MaxAge,
		}, adapter.NewNatsJetStream(), jsonAdapter)
		if err != nil {
			logger.Fatal("Failed to connect to NATS", zap.Error(err), zap.String("url", cfg.NATS.URL))
		}

		eventNotifier = notifier.New(notifier.Config{
			PoolSize:       cfg.Worker.WorkerPoolSize,
			QueueSize:      cfg.Worker.WorkerQueueSize,
			MaxElapsedTime: cfg.Worker.MaxRetryTime,
		}, publisher)
		defer eventNotifier.Close()

		logger.InfoCtx(ctx, "Publishing ledger events",
			zap.String("stream", cfg.NATS.StreamName),
			zap.String("subject_prefix", cfg.NATS.SubjectPrefix),
		)
	} else {
		logger.WarnCtx(ctx, "NATS URL not configured, ledger events will not be published")
	}

	// Rebuild the ledger from the journal
	factoryAddress, err := domain.ParseAccount(cfg.Factory.Address)
	if err != nil {
		logger.Fatal("Invalid factory address", zap.Error(err))
	}

	bandFactory, err := factory.New(factory.Config{Address: factoryAddress}, journal.NewStoreJournal(dataStore, clock, eventNotifier), b64)
	if err != nil {
		logger.Fatal("Failed to create band factory", zap.Error(err))
	}

	restored, err := bandFactory.Restore(ctx, dataStore, cfg.Ledger.ReplayBatchSize)
	if err != nil {
		logger.Fatal("Failed to restore ledger state", zap.Error(err))
	}
	if err := bandFactory.Verify(ctx, dataStore, restored); err != nil {
		logger.Fatal("Ledger state does not match its projection", zap.Error(err))
	}

	artworkRasterizer := rasterizer.NewRasterizer(adapter.NewResvgClient(), adapter.NewImageEncoder(), &rasterizer.Config{
		Width: cfg.Rasterizer.Width,
	})

	serverConfig := server.Config{
		Debug:        cfg.Debug,
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		CORSOrigins:  cfg.Server.CORSOrigins,
		Auth: middleware.AuthConfig{
			JWTPublicKey: cfg.Auth.JWTPublicKey,
		},
	}

	srv := server.New(serverConfig, executor.NewExecutor(bandFactory, dataStore, artworkRasterizer, b64))

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
		cancel()
	}

	// Create shutdown context with timeout (don't use canceled ctx)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error(err, zap.String("component", "server"))
	}

	logger.Info("API server stopped")
}
