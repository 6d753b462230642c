package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/simarray/internal/app"
	"github.com/specialistvlad/simarray/internal/config"
	"github.com/specialistvlad/simarray/internal/hcl"
	"github.com/specialistvlad/simarray/internal/yamlcfg"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
)

// Name is printed by --version.
const Name = "SimArray"

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Unwrap returns the underlying error, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}

func usageError(err error) *ExitError {
	return &ExitError{Code: 2, Message: err.Error(), Err: err}
}

// flags holds the registered flag set and the pointers it fills.
type flags struct {
	set *pflag.FlagSet

	configPath        *string
	folder            *string
	separator         *string
	target            *string
	by                *int
	batchPrefix       *string
	simPrefix         *string
	replicates        *int
	replicatePrefix   *string
	template          *string
	outputParamFile   *string
	paramSeparator    *string
	dispatch          *[]string
	compress          *bool
	tarballName       *string
	verbose           *int
	dispatchOnly      *bool
	dispatchRecursive *bool
	compressOnly      *bool
	compressAll       *bool
	namesFile         *string
	dryRun            *bool
	logFormat         *string
	version           *bool
}

func newFlags(output io.Writer) *flags {
	def := app.DefaultConfig()
	set := pflag.NewFlagSet("simarray", pflag.ContinueOnError)
	set.SetOutput(output)
	set.SortFlags = false

	f := &flags{set: set}
	f.configPath = set.String("config", "", "Sweep configuration file (.hcl, .yaml or .yml) supplying option defaults and inline parameters.")
	f.folder = set.String("folder", "", "Folder containing parameter value files. Its regular files are used in name order, which sets the parameter order in folder names.")
	f.separator = set.String("separator", def.Separator, "Separator used in folder names.")
	f.target = set.String("target", def.Target, "Directory in which the simulation folders are created.")
	f.by = set.Int("by", def.By, "Number of simulation folders per batch folder. 0 disables batching.")
	f.batchPrefix = set.String("batch-prefix", def.BatchPrefix, "Prefix of batch folder names.")
	f.simPrefix = set.String("sim-prefix", def.SimPrefix, "Prefix of simulation folder names.")
	f.replicates = set.Int("replicates", def.Replicates, "Number of replicate folders per parameter combination.")
	f.replicatePrefix = set.String("replicate-prefix", def.ReplicatePrefix, "Prefix of the replicate number in folder names.")
	f.template = set.String("template", "", "Template parameter file whose declaration lines are filled in.")
	f.outputParamFile = set.String("output-param-file", "", "Name of the parameter file written into every folder. Defaults to the template's name or "+app.DefaultParamFileName+".")
	f.paramSeparator = set.String("param-separator", def.ParamSeparator, "Separator between a parameter name and its value in parameter files.")
	f.dispatch = set.StringSlice("dispatch", nil, "Files copied into every simulation folder. Every argument after --dispatch up to the next option is a dispatch file; commas and repeating the flag also work.")
	f.compress = set.Bool("compress", false, "Compress the generated folders into .tar.gz archives.")
	f.tarballName = set.String("tarball-name", def.TarballName, "Name of the archive holding all simulations, without extension.")
	f.verbose = set.Int("verbose", def.Verbose, "Verbosity: 0 warnings only, 1 progress and folder paths, 2 per-folder detail.")
	f.dispatchOnly = set.Bool("dispatch-only", false, "Only copy the dispatch files into existing simulation folders.")
	f.dispatchRecursive = set.Bool("dispatch-recursive", false, "With --dispatch-only, also look for simulation folders inside batch folders.")
	f.compressOnly = set.Bool("compress-only", false, "Only compress existing batch folders.")
	f.compressAll = set.Bool("compress-all", false, "With --compress-only, compress all simulation folders into one archive.")
	f.namesFile = set.String("names-file", "", "Write every generated folder name, one per line, to this file.")
	f.dryRun = set.Bool("dry-run", false, "Print the folders that would be created without writing them.")
	f.logFormat = set.String("log-format", def.LogFormat, "Log output format. Options: 'text' or 'json'.")
	f.version = set.Bool("version", false, "Print the program name and exit.")

	set.Usage = func() {
		fmt.Fprint(output, `
SimArray - Generate folder trees for simulation parameter sweeps.

Usage:
  simarray [options] [VALUE_FILE...]

Arguments:
  VALUE_FILE
    A file listing one value per line. The file's base name, without
    extension, is the parameter name. All files must have the same number
    of lines. Value files must come before --dispatch, which takes every
    argument up to the next option.

Options:
`)
		set.PrintDefaults()
	}
	return f
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
// Option values come from the defaults, then the --config file, then the
// flags that were set explicitly.
func Parse(args []string, output io.Writer, fsys afero.Fs) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	f := newFlags(output)

	if err := f.set.Parse(expandDispatch(args)); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, usageError(err)
	}
	slog.Debug("Arguments parsed successfully.")

	if *f.version {
		fmt.Fprintln(output, Name)
		return nil, true, nil
	}
	if len(args) == 0 {
		slog.Debug("No arguments provided, printing usage and exiting.")
		f.set.Usage()
		return nil, true, nil
	}

	cfg := app.DefaultConfig()
	if *f.configPath != "" {
		model, err := loadModel(fsys, *f.configPath)
		if err != nil {
			return nil, false, usageError(err)
		}
		app.ApplyModel(&cfg, model)
		slog.Debug("Sweep configuration file applied.", "path", *f.configPath)
	}
	f.apply(&cfg)

	if f.set.NArg() > 0 {
		cfg.Files = append([]string(nil), f.set.Args()...)
	}

	validated, err := app.NewConfig(cfg)
	if err != nil {
		return nil, false, usageError(err)
	}

	slog.Debug("CLI parser finished successfully.", "config", validated)
	return validated, false, nil
}

// apply copies the explicitly set flags onto cfg.
func (f *flags) apply(cfg *app.Config) {
	f.set.Visit(func(fl *pflag.Flag) {
		switch fl.Name {
		case "folder":
			cfg.Folder = *f.folder
		case "separator":
			cfg.Separator = *f.separator
		case "target":
			cfg.Target = *f.target
		case "by":
			cfg.By = *f.by
		case "batch-prefix":
			cfg.BatchPrefix = *f.batchPrefix
		case "sim-prefix":
			cfg.SimPrefix = *f.simPrefix
		case "replicates":
			cfg.Replicates = *f.replicates
		case "replicate-prefix":
			cfg.ReplicatePrefix = *f.replicatePrefix
		case "template":
			cfg.Template = *f.template
		case "output-param-file":
			cfg.OutputParamFile = *f.outputParamFile
		case "param-separator":
			cfg.ParamSeparator = *f.paramSeparator
		case "dispatch":
			cfg.Dispatch = append([]string(nil), (*f.dispatch)...)
		case "compress":
			cfg.Compress = *f.compress
		case "tarball-name":
			cfg.TarballName = *f.tarballName
		case "verbose":
			cfg.Verbose = *f.verbose
		case "dispatch-only":
			cfg.DispatchOnly = *f.dispatchOnly
		case "dispatch-recursive":
			cfg.DispatchRecursive = *f.dispatchRecursive
		case "compress-only":
			cfg.CompressOnly = *f.compressOnly
		case "compress-all":
			cfg.CompressAll = *f.compressAll
		case "names-file":
			cfg.NamesFile = *f.namesFile
		case "dry-run":
			cfg.DryRun = *f.dryRun
		case "log-format":
			cfg.LogFormat = *f.logFormat
		}
	})
}

// expandDispatch rewrites "--dispatch a b c" into one --dispatch per file, so
// every argument after the flag up to the next option is dispatched.
func expandDispatch(args []string) []string {
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			out = append(out, args[i:]...)
			break
		}
		if arg != "--dispatch" {
			out = append(out, arg)
			continue
		}
		j := i + 1
		for ; j < len(args) && !strings.HasPrefix(args[j], "-"); j++ {
			out = append(out, "--dispatch", args[j])
		}
		if j == i+1 {
			// No plain argument follows; pflag takes or rejects the next one.
			out = append(out, arg)
		}
		i = j - 1
	}
	return out
}

// loaderFor picks the configuration loader from the file extension.
func loaderFor(path string) (config.Loader, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl":
		return hcl.NewLoader(), nil
	case ".yaml", ".yml":
		return yamlcfg.NewLoader(), nil
	default:
		return nil, fmt.Errorf("unsupported configuration file %s: use .hcl, .yaml or .yml", path)
	}
}

func loadModel(fsys afero.Fs, path string) (*config.Model, error) {
	loader, err := loaderFor(path)
	if err != nil {
		return nil, err
	}
	model, err := loader.Load(context.Background(), fsys, path)
	if err != nil {
		return nil, err
	}
	model.ResolvePaths(filepath.Dir(path))
	return model, nil
}
