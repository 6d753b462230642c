package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/specialistvlad/simarray/internal/ctxlog"
	"github.com/spf13/afero"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	fsys   afero.Fs
	config *Config
}

// NewApp is the constructor for the main application. Folder paths are
// printed to outW; logs go to logW.
func NewApp(outW, logW io.Writer, cfg *Config, fsys afero.Fs) *App {
	logger := newLogger(cfg.Verbose, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	return &App{
		outW:   outW,
		logger: logger,
		fsys:   fsys,
		config: cfg,
	}
}

// Run executes the mode selected by the configuration. Dispatch-only and
// compress-only may be combined, in which case files are dispatched first.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.config.DispatchOnly || a.config.CompressOnly {
		if a.config.DispatchOnly {
			if err := a.DispatchExisting(ctx); err != nil {
				return err
			}
		}
		if a.config.CompressOnly {
			if err := a.CompressExisting(ctx); err != nil {
				return err
			}
		}
		a.logger.Info("All done.")
		return nil
	}

	plan, err := a.Generate(ctx)
	if err != nil {
		return err
	}
	if a.config.Compress && !a.config.DryRun {
		if err := a.CompressPlan(ctx, plan); err != nil {
			return err
		}
	}

	a.logger.Info("All done.")
	return nil
}
