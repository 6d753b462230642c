// Package yamlcfg provides the YAML implementation of the config.Loader
// interface.
package yamlcfg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/specialistvlad/simarray/internal/config"
	"github.com/specialistvlad/simarray/internal/ctxlog"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Loader is the YAML-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new YAML configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

type fileRoot struct {
	Files           []string        `yaml:"files"`
	Folder          *string         `yaml:"folder"`
	Separator       *string         `yaml:"separator"`
	Target          *string         `yaml:"target"`
	By              *int            `yaml:"by"`
	BatchPrefix     *string         `yaml:"batch_prefix"`
	SimPrefix       *string         `yaml:"sim_prefix"`
	Replicates      *int            `yaml:"replicates"`
	ReplicatePrefix *string         `yaml:"replicate_prefix"`
	Template        *string         `yaml:"template"`
	OutputParamFile *string         `yaml:"output_param_file"`
	ParamSeparator  *string         `yaml:"param_separator"`
	Dispatch        []string        `yaml:"dispatch"`
	Compress        *bool           `yaml:"compress"`
	TarballName     *string         `yaml:"tarball_name"`
	Verbose         *int            `yaml:"verbose"`
	Parameters      []*parameterDef `yaml:"parameters"`
}

// Scalars of any YAML type decode into the string values as written.
type parameterDef struct {
	Name   string   `yaml:"name"`
	Values []string `yaml:"values"`
}

// Load parses the YAML sweep file at path. Unknown keys are rejected.
func (l *Loader) Load(ctx context.Context, fsys afero.Fs, path string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("YAML loader started.", "path", path)

	src, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read YAML file %s: %w", path, err)
	}

	var root fileRoot
	dec := yaml.NewDecoder(bytes.NewReader(src))
	dec.KnownFields(true)
	if err := dec.Decode(&root); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode YAML file %s: %w", path, err)
	}

	model := &config.Model{
		Files:           root.Files,
		Folder:          root.Folder,
		Separator:       root.Separator,
		Target:          root.Target,
		By:              root.By,
		BatchPrefix:     root.BatchPrefix,
		SimPrefix:       root.SimPrefix,
		Replicates:      root.Replicates,
		ReplicatePrefix: root.ReplicatePrefix,
		Template:        root.Template,
		OutputParamFile: root.OutputParamFile,
		ParamSeparator:  root.ParamSeparator,
		Dispatch:        root.Dispatch,
		Compress:        root.Compress,
		TarballName:     root.TarballName,
		Verbose:         root.Verbose,
	}
	for _, p := range root.Parameters {
		model.Parameters = append(model.Parameters, &config.Parameter{Name: p.Name, Values: p.Values})
	}
	if err := model.Validate(); err != nil {
		return nil, fmt.Errorf("invalid YAML file %s: %w", path, err)
	}

	logger.Debug("YAML loading complete.", "path", path, "parameters", len(model.Parameters))
	return model, nil
}
