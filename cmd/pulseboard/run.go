package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/driftlab/pulseboard/internal/config"
	"github.com/driftlab/pulseboard/internal/dashboard"
	"github.com/driftlab/pulseboard/internal/layout"
	"github.com/driftlab/pulseboard/internal/registry"
	"github.com/driftlab/pulseboard/internal/sqlite"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const settingsDebounce = 500 * time.Millisecond

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the dashboard core until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDashboard()
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runDashboard() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	logger := newLogger(cfg.Log.Level)

	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	layoutSvc := layout.NewService(sqlite.NewLayoutRepository(db), logger)
	reg := registry.New(logger)

	core := dashboard.New(reg, layoutSvc, logger, dashboard.Options{
		MaxRowWidth: cfg.Workspace.MaxRowWidth,
		GridSize:    cfg.Workspace.GridSize,
		Padding:     cfg.Workspace.Padding,
	})

	if cfg.Settings.Path != "" {
		if err := applySettingsFile(core, cfg.Settings.Path, logger); err != nil {
			return err
		}
	}

	ctx := context.Background()
	if err := core.Initialize(ctx); err != nil {
		return fmt.Errorf("initialize: %w", err)
	}

	var watcher *config.Watcher
	if cfg.Settings.Path != "" {
		watcher, err = config.WatchFile(cfg.Settings.Path, settingsDebounce, func() {
			if err := applySettingsFile(core, cfg.Settings.Path, logger); err != nil {
				logger.Warn("settings reload failed", "error", err)
			}
		})
		if err != nil {
			logger.Warn("settings watch unavailable", "path", cfg.Settings.Path, "error", err)
		} else {
			defer watcher.Close()
		}
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	return core.Destroy(ctx)
}

// applySettingsFile reads a SettingsPatch from YAML and merges it into the
// core's settings.
func applySettingsFile(core *dashboard.Core, path string, logger *slog.Logger) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read settings file: %w", err)
	}
	var patch dashboard.SettingsPatch
	if err := yaml.Unmarshal(data, &patch); err != nil {
		return fmt.Errorf("parse settings file: %w", err)
	}
	core.UpdateSettings(patch)
	logger.Info("settings applied", "path", path)
	return nil
}

func openDB(cfg config.Config) (*sqlite.DB, error) {
	if err := ensureDBDir(cfg.DB.Path); err != nil {
		return nil, fmt.Errorf("prepare database path: %w", err)
	}
	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.RunMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return db, nil
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func newLogger(level string) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(level),
	}))
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
