package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/simarray/internal/ctxlog"
	"github.com/specialistvlad/simarray/internal/dispatch"
	"github.com/specialistvlad/simarray/internal/fsutil"
	"github.com/specialistvlad/simarray/internal/sweep"
	"github.com/specialistvlad/simarray/internal/template"
	"github.com/spf13/afero"
)

// inputPaths lists the value files in parameter order: explicit files first,
// then the regular files of the input folder sorted by name.
func (a *App) inputPaths() ([]string, error) {
	paths := append([]string(nil), a.config.Files...)
	if a.config.Folder != "" {
		files, err := fsutil.ListFiles(a.fsys, a.config.Folder)
		if err != nil {
			return nil, err
		}
		paths = append(paths, files...)
	}
	return paths, nil
}

// loadValues reads the value files and appends the inline parameters.
func (a *App) loadValues(ctx context.Context) ([]sweep.ValueFile, error) {
	logger := ctxlog.FromContext(ctx)

	paths, err := a.inputPaths()
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 && len(a.config.Parameters) == 0 {
		return nil, fmt.Errorf("%w: no files provided, use filenames or the --folder option", sweep.ErrConfiguration)
	}

	var files []sweep.ValueFile
	if len(paths) > 0 {
		if files, err = sweep.ReadValueFiles(a.fsys, paths); err != nil {
			return nil, err
		}
	}
	for _, p := range a.config.Parameters {
		files = append(files, sweep.ValueFile{Name: p.Name, Values: p.Values})
	}
	logger.Debug("Parameter values loaded.", "parameters", len(files))
	return files, nil
}

// Generate creates every simulation folder with its parameter file and
// dispatch files, and returns the plan it followed. Nothing is written in
// dry-run mode except the optional names file.
func (a *App) Generate(ctx context.Context) (*sweep.Plan, error) {
	logger := ctxlog.FromContext(ctx)
	cfg := a.config

	files, err := a.loadValues(ctx)
	if err != nil {
		return nil, err
	}
	plan, err := sweep.NewPlan(files, cfg.namer(), cfg.batcher())
	if err != nil {
		return nil, err
	}
	logger.Debug("Folder plan built.", "folders", len(plan.Folders), "batches", plan.Batches)

	var tmpl *template.Template
	if cfg.Template != "" {
		if tmpl, err = template.Load(a.fsys, cfg.Template); err != nil {
			return nil, err
		}
	}
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = f.Name
	}
	expander, err := template.NewExpander(tmpl, cfg.ParamSeparator, names)
	if err != nil {
		return nil, err
	}
	dispatcher, err := dispatch.New(a.fsys, cfg.Dispatch)
	if err != nil {
		return nil, err
	}

	if cfg.NamesFile != "" {
		if err := a.writeNames(plan); err != nil {
			return nil, err
		}
	}

	paramFile := cfg.ParamFileName()
	for _, f := range plan.Folders {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		target := plan.Path(cfg.Target, f)

		if cfg.DryRun {
			fmt.Fprintln(a.outW, target)
			continue
		}

		if err := fsutil.EnsureDir(a.fsys, target); err != nil {
			return nil, err
		}
		logger.Debug("Created folder.", "path", target, "batch", f.Batch)

		lines, err := expander.Expand(f.Params)
		if err != nil {
			return nil, err
		}
		if err := template.WriteFile(a.fsys, filepath.Join(target, paramFile), lines); err != nil {
			return nil, err
		}
		if err := dispatcher.Into(ctx, target); err != nil {
			return nil, err
		}

		if cfg.Verbose >= 1 {
			fmt.Fprintln(a.outW, target)
		}
	}

	if cfg.DryRun {
		logger.Info("Dry run, no folders created.", "total_folders", len(plan.Folders), "total_batches", plan.Batches)
		return plan, nil
	}
	if plan.Batches > 0 {
		logger.Info("Folders created.", "total_folders", len(plan.Folders), "total_batches", plan.Batches)
	} else {
		logger.Info("Folders created.", "total_folders", len(plan.Folders))
	}
	return plan, nil
}

// writeNames records every planned folder name, one per line.
func (a *App) writeNames(plan *sweep.Plan) error {
	var b strings.Builder
	for _, f := range plan.Folders {
		b.WriteString(f.Name)
		b.WriteByte('\n')
	}
	if err := afero.WriteFile(a.fsys, a.config.NamesFile, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("failed to write names file %s: %w", a.config.NamesFile, err)
	}
	return nil
}
