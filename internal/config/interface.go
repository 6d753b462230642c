package config

import (
	"context"

	"github.com/spf13/afero"
)

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Load reads the configuration file at path and translates it into the
	// format-agnostic model. Relative paths inside the file are returned as
	// written; callers resolve them with Model.ResolvePaths.
	Load(ctx context.Context, fsys afero.Fs, path string) (*Model, error)
}
