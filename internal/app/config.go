package app

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/simarray/internal/config"
	"github.com/specialistvlad/simarray/internal/sweep"
)

// DefaultParamFileName names generated parameter files when there is no
// template and no explicit override.
const DefaultParamFileName = "parameters.txt"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Files  []string // value files, in parameter order
	Folder string   // directory whose regular files are appended to Files

	Separator       string
	Target          string
	By              int // 0 disables batching
	BatchPrefix     string
	SimPrefix       string
	Replicates      int
	ReplicatePrefix string

	Template        string
	OutputParamFile string
	ParamSeparator  string

	Dispatch          []string
	DispatchOnly      bool
	DispatchRecursive bool

	Compress     bool
	CompressOnly bool
	CompressAll  bool
	TarballName  string

	NamesFile string
	DryRun    bool

	Verbose   int
	LogFormat string

	// Parameters declared inline in a sweep config file. They follow the
	// value files in parameter order.
	Parameters []*config.Parameter
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		Separator:       "_",
		Target:          ".",
		BatchPrefix:     "batch_",
		SimPrefix:       "sim",
		Replicates:      1,
		ReplicatePrefix: "r",
		ParamSeparator:  " ",
		TarballName:     "all_simulations",
		Verbose:         1,
		LogFormat:       "text",
	}
}

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.Verbose < 0 || cfg.Verbose > 2 {
		return nil, fmt.Errorf("%w: verbose must be 0, 1 or 2, got %d", sweep.ErrConfiguration, cfg.Verbose)
	}
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("%w: invalid log-format %q: must be 'text' or 'json'", sweep.ErrConfiguration, cfg.LogFormat)
	}
	if cfg.Target == "" {
		return nil, fmt.Errorf("%w: target must not be empty", sweep.ErrConfiguration)
	}
	if cfg.ParamSeparator == "" {
		return nil, fmt.Errorf("%w: param-separator must not be empty", sweep.ErrConfiguration)
	}
	if err := cfg.namer().Validate(); err != nil {
		return nil, err
	}
	if err := cfg.batcher().Validate(); err != nil {
		return nil, err
	}
	if cfg.DispatchOnly && len(cfg.Dispatch) == 0 {
		return nil, fmt.Errorf("%w: no files specified for dispatch, use the --dispatch argument to specify files", sweep.ErrConfiguration)
	}
	return &cfg, nil
}

// ParamFileName is the name of the parameter file written into every folder:
// the explicit override, else the template's base name, else parameters.txt.
func (c *Config) ParamFileName() string {
	switch {
	case c.OutputParamFile != "":
		return c.OutputParamFile
	case c.Template != "":
		return filepath.Base(c.Template)
	default:
		return DefaultParamFileName
	}
}

func (c *Config) namer() sweep.FolderNamer {
	return sweep.FolderNamer{
		Separator:       c.Separator,
		ParamSeparator:  c.ParamSeparator,
		SimPrefix:       c.SimPrefix,
		ReplicatePrefix: c.ReplicatePrefix,
		Replicates:      c.Replicates,
	}
}

func (c *Config) batcher() sweep.BatchAssigner {
	return sweep.BatchAssigner{By: c.By, Prefix: c.BatchPrefix}
}

// ApplyModel overlays the values set in a sweep config file onto cfg.
func ApplyModel(cfg *Config, m *config.Model) {
	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setInt := func(dst *int, src *int) {
		if src != nil {
			*dst = *src
		}
	}

	if len(m.Files) > 0 {
		cfg.Files = append([]string(nil), m.Files...)
	}
	if len(m.Dispatch) > 0 {
		cfg.Dispatch = append([]string(nil), m.Dispatch...)
	}
	setString(&cfg.Folder, m.Folder)
	setString(&cfg.Separator, m.Separator)
	setString(&cfg.Target, m.Target)
	setInt(&cfg.By, m.By)
	setString(&cfg.BatchPrefix, m.BatchPrefix)
	setString(&cfg.SimPrefix, m.SimPrefix)
	setInt(&cfg.Replicates, m.Replicates)
	setString(&cfg.ReplicatePrefix, m.ReplicatePrefix)
	setString(&cfg.Template, m.Template)
	setString(&cfg.OutputParamFile, m.OutputParamFile)
	setString(&cfg.ParamSeparator, m.ParamSeparator)
	if m.Compress != nil {
		cfg.Compress = *m.Compress
	}
	setString(&cfg.TarballName, m.TarballName)
	setInt(&cfg.Verbose, m.Verbose)
	cfg.Parameters = append(cfg.Parameters, m.Parameters...)
}
