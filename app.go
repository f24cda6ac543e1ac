package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"droppables/core"
	"droppables/db"
	"droppables/i18n"
	"droppables/logging"
	"droppables/settings"
	"droppables/shutdown"
)

// app holds the services shared by the commands.
type app struct {
	config   *core.Config
	logger   *logging.Logger
	database *db.Database
	repo     *db.Repository
	settings *settings.Settings
	local    *i18n.Localizer
	out      io.Writer
	cleanup  *shutdown.Registry
}

// openApp loads the environment and opens the database.
func openApp(envFile string, out io.Writer) (*app, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	cfg, err := core.LoadConfig()
	if err != nil {
		return nil, err
	}

	level := logging.ParseLogLevelString(cfg.LogLevel, zapcore.InfoLevel)
	if cfg.DevMode {
		level = zapcore.DebugLevel
	}
	logger, err := logging.NewLoggerWithLevel(level, cfg.DevMode, cfg.LogFile, logging.DefaultFileWriterConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return nil, err
	}

	repo := db.NewRepository(database, nil)
	writer := db.NewAsyncWriter(repo.WriteDropRecord)
	writer.OnError(func(err error) {
		logger.Warn("Failed to write drop history", zap.Error(err))
	})
	writer.Start()
	repo = db.NewRepository(database, writer)

	localizer, err := i18n.Default(cfg.Locale)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("load message catalogs: %w", err)
	}

	logger.Debug("Configuration loaded",
		zap.String("db_path", cfg.DBPath),
		zap.String("upload_dir", cfg.UploadDir),
		zap.String("locale", localizer.Locale()),
		zap.String("user", cfg.UserID),
		zap.String("role", cfg.UserRole),
		zap.String("scene", cfg.SceneID),
		zap.Float64("grid_size", cfg.GridSize),
	)

	cleanup := shutdown.NewRegistry()
	cleanup.Register("history-writer", shutdown.PriorityWorkers, func(context.Context) error {
		if !writer.StopWithTimeout(5 * time.Second) {
			return fmt.Errorf("%d drop records not written", writer.Pending())
		}
		return nil
	})
	cleanup.Register("database", shutdown.PriorityStorage, func(context.Context) error {
		return database.Close()
	})
	cleanup.Register("logger", shutdown.PriorityLogging, func(context.Context) error {
		// stderr cannot be synced on every platform
		_ = logger.Sync()
		return nil
	})

	return &app{
		config:   cfg,
		logger:   logger,
		database: database,
		repo:     repo,
		settings: settings.New(settings.NewSQLiteStore(repo, cfg.UserID), logger.Named("settings")),
		local:    localizer,
		out:      out,
		cleanup:  cleanup,
	}, nil
}

// close drains pending history writes and releases the database.
func (a *app) close() {
	for _, err := range a.cleanup.Shutdown(context.Background()) {
		fmt.Fprintln(os.Stderr, "shutdown:", err)
	}
}

// worldFile returns the configured world file when it exists.
func (a *app) worldFile() (string, bool) {
	if a.config.WorldFile == "" {
		return "", false
	}
	if _, err := os.Stat(a.config.WorldFile); err != nil {
		return "", false
	}
	return filepath.Clean(a.config.WorldFile), true
}

func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
