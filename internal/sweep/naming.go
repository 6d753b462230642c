package sweep

import (
	"fmt"
	"strconv"
	"strings"
)

// FolderNamer assembles simulation folder names from a row of parameters.
type FolderNamer struct {
	Separator       string // between every name component
	ParamSeparator  string // name/value separator of parameter files; replaced inside values
	SimPrefix       string
	ReplicatePrefix string
	Replicates      int
}

// Validate reports option values that cannot produce folder names.
func (n FolderNamer) Validate() error {
	if n.Replicates < 1 {
		return fmt.Errorf("%w: replicates must be at least 1, got %d", ErrConfiguration, n.Replicates)
	}
	return nil
}

// Base returns the replicate-independent part of the folder name:
// prefix, then name/value pairs, all joined by the separator.
func (n FolderNamer) Base(set ParameterSet) string {
	parts := make([]string, 0, 1+2*len(set))
	parts = append(parts, n.SimPrefix)
	for _, p := range set {
		parts = append(parts, p.Name, n.value(p.Value))
	}
	return strings.Join(parts, n.Separator)
}

// Names returns one folder name per replicate, 1-based.
func (n FolderNamer) Names(set ParameterSet) []string {
	base := n.Base(set)
	names := make([]string, n.Replicates)
	for r := 1; r <= n.Replicates; r++ {
		names[r-1] = base + n.Separator + n.ReplicatePrefix + strconv.Itoa(r)
	}
	return names
}

func (n FolderNamer) value(v string) string {
	if n.ParamSeparator == "" {
		return v
	}
	return strings.ReplaceAll(v, n.ParamSeparator, n.Separator)
}
