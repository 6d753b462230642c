package app

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/specialistvlad/simarray/internal/archive"
	"github.com/specialistvlad/simarray/internal/ctxlog"
	"github.com/specialistvlad/simarray/internal/dispatch"
	"github.com/specialistvlad/simarray/internal/fsutil"
	"github.com/specialistvlad/simarray/internal/sweep"
)

// CompressPlan archives the folders a generation run just created: one
// tarball per batch directory, or the whole target in a single tarball when
// batching is off.
func (a *App) CompressPlan(ctx context.Context, plan *sweep.Plan) error {
	logger := ctxlog.FromContext(ctx)
	logger.Info("Compressing folders...")

	if plan.Batches == 0 {
		dst := a.globalTarball()
		stats, err := archive.TarGz(ctx, a.fsys, dst, a.config.Target)
		if err != nil {
			return err
		}
		logger.Info("Compressed all simulations.", "tarball", dst, "files", stats.Files, "bytes", stats.Bytes)
		return nil
	}

	for _, dir := range plan.BatchDirs(a.config.Target) {
		if err := a.compressBatch(ctx, dir); err != nil {
			return err
		}
	}
	return nil
}

// CompressExisting archives folders already present under the target. With
// CompressAll every simulation folder goes into one tarball; otherwise each
// batch folder gets its own.
func (a *App) CompressExisting(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	cfg := a.config

	if cfg.CompressAll {
		dirs, err := fsutil.FindDirs(a.fsys, cfg.Target, 1, fsutil.PrefixPattern(cfg.SimPrefix))
		if err != nil {
			return err
		}
		if len(dirs) == 0 {
			logger.Warn("No simulation folders found.", "target", cfg.Target, "sim_prefix", cfg.SimPrefix)
			return nil
		}
		dst := a.globalTarball()
		stats, err := archive.TarGz(ctx, a.fsys, dst, dirs...)
		if err != nil {
			return err
		}
		logger.Info("Compressed all simulations.", "tarball", dst, "folders", len(dirs), "files", stats.Files, "bytes", stats.Bytes)
		return nil
	}

	batches, err := fsutil.FindDirs(a.fsys, cfg.Target, 1, fsutil.PrefixPattern(cfg.BatchPrefix))
	if err != nil {
		return err
	}
	if len(batches) == 0 {
		logger.Warn("No batch folders found.", "target", cfg.Target, "batch_prefix", cfg.BatchPrefix)
		return nil
	}
	for _, dir := range batches {
		if err := a.compressBatch(ctx, dir); err != nil {
			return err
		}
	}
	return nil
}

// DispatchExisting copies the dispatch files into simulation folders that
// already exist under the target, and one level into batch folders when
// DispatchRecursive is set.
func (a *App) DispatchExisting(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	cfg := a.config

	if len(cfg.Dispatch) == 0 {
		return fmt.Errorf("%w: no files specified for dispatch, use the --dispatch argument to specify files", sweep.ErrConfiguration)
	}
	dispatcher, err := dispatch.New(a.fsys, cfg.Dispatch)
	if err != nil {
		return err
	}

	depth := 1
	patterns := []string{fsutil.PrefixPattern(cfg.SimPrefix)}
	if cfg.DispatchRecursive {
		depth = 2
		patterns = append(patterns, fsutil.PrefixPattern(cfg.BatchPrefix)+"/"+fsutil.PrefixPattern(cfg.SimPrefix))
	}
	folders, err := fsutil.FindDirs(a.fsys, cfg.Target, depth, patterns...)
	if err != nil {
		return err
	}
	if len(folders) == 0 {
		logger.Warn("No simulation folders found.", "target", cfg.Target, "sim_prefix", cfg.SimPrefix)
		return nil
	}

	for _, dir := range folders {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := dispatcher.Into(ctx, dir); err != nil {
			return err
		}
		if cfg.Verbose >= 1 {
			fmt.Fprintln(a.outW, dir)
		}
	}
	logger.Info("Files dispatched.", "folders", len(folders), "files", len(cfg.Dispatch))
	return nil
}

func (a *App) compressBatch(ctx context.Context, dir string) error {
	dst := archive.Name(dir)
	stats, err := archive.TarGz(ctx, a.fsys, dst, dir)
	if err != nil {
		return err
	}
	ctxlog.FromContext(ctx).Info("Compressed batch folder.", "folder", dir, "tarball", dst, "files", stats.Files, "bytes", stats.Bytes)
	return nil
}

func (a *App) globalTarball() string {
	return filepath.Join(a.config.Target, a.config.TarballName+".tar.gz")
}
