package config

import (
	"fmt"
	"path/filepath"
)

// Model is the unified representation of a sweep configuration file. Nil
// pointers and empty slices mean "not set in the file".
type Model struct {
	Files           []string
	Folder          *string
	Separator       *string
	Target          *string
	By              *int
	BatchPrefix     *string
	SimPrefix       *string
	Replicates      *int
	ReplicatePrefix *string
	Template        *string
	OutputParamFile *string
	ParamSeparator  *string
	Dispatch        []string
	Compress        *bool
	TarballName     *string
	Verbose         *int

	Parameters []*Parameter
}

// Parameter is a parameter whose values are listed in the configuration file
// instead of a value file.
type Parameter struct {
	Name   string
	Values []string
}

// Validate checks the parts of the model that do not depend on the format.
func (m *Model) Validate() error {
	seen := make(map[string]bool, len(m.Parameters))
	for _, p := range m.Parameters {
		if p.Name == "" {
			return fmt.Errorf("parameter with an empty name")
		}
		if seen[p.Name] {
			return fmt.Errorf("parameter %q is declared more than once", p.Name)
		}
		seen[p.Name] = true
	}
	return nil
}

// ResolvePaths makes every relative file path in the model relative to dir,
// the directory holding the configuration file.
func (m *Model) ResolvePaths(dir string) {
	resolve := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(dir, p)
	}
	resolvePtr := func(p *string) {
		if p != nil {
			*p = resolve(*p)
		}
	}

	for i, f := range m.Files {
		m.Files[i] = resolve(f)
	}
	for i, f := range m.Dispatch {
		m.Dispatch[i] = resolve(f)
	}
	resolvePtr(m.Folder)
	resolvePtr(m.Target)
	resolvePtr(m.Template)
}
