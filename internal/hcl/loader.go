package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/simarray/internal/config"
	"github.com/specialistvlad/simarray/internal/ctxlog"
	"github.com/spf13/afero"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// fileRoot mirrors the top level of a sweep file.
type fileRoot struct {
	Files           []string        `hcl:"files,optional"`
	Folder          *string         `hcl:"folder,optional"`
	Separator       *string         `hcl:"separator,optional"`
	Target          *string         `hcl:"target,optional"`
	By              *int            `hcl:"by,optional"`
	BatchPrefix     *string         `hcl:"batch_prefix,optional"`
	SimPrefix       *string         `hcl:"sim_prefix,optional"`
	Replicates      *int            `hcl:"replicates,optional"`
	ReplicatePrefix *string         `hcl:"replicate_prefix,optional"`
	Template        *string         `hcl:"template,optional"`
	OutputParamFile *string         `hcl:"output_param_file,optional"`
	ParamSeparator  *string         `hcl:"param_separator,optional"`
	Dispatch        []string        `hcl:"dispatch,optional"`
	Compress        *bool           `hcl:"compress,optional"`
	TarballName     *string         `hcl:"tarball_name,optional"`
	Verbose         *int            `hcl:"verbose,optional"`
	Parameters      []*parameterDef `hcl:"parameter,block"`
}

// parameterDef is a `parameter "<name>" { values = [...] }` block.
type parameterDef struct {
	Name   string         `hcl:"name,label"`
	Values hcl.Expression `hcl:"values"`
}

// Load parses and decodes the sweep file at path.
func (l *Loader) Load(ctx context.Context, fsys afero.Fs, path string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path", path)

	src, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read HCL file %s: %w", path, err)
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}

	var root fileRoot
	diags = gohcl.DecodeBody(file.Body, nil, &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
	}

	model, err := l.translate(&root)
	if err != nil {
		return nil, fmt.Errorf("invalid HCL file %s: %w", path, err)
	}
	if err := model.Validate(); err != nil {
		return nil, fmt.Errorf("invalid HCL file %s: %w", path, err)
	}

	logger.Debug("HCL loading complete.", "path", path, "parameters", len(model.Parameters))
	return model, nil
}
