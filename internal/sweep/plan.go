package sweep

import (
	"fmt"
	"path/filepath"
)

// Folder is one simulation folder of a run.
type Folder struct {
	Index  int // 0-based creation order
	Row    int // 0-based line index in the value files
	Name   string
	Batch  int // 1-based, 0 when batching is off
	Params ParameterSet
}

// Plan is the ordered set of folders a run creates.
type Plan struct {
	Folders []Folder
	Batches int
	batcher BatchAssigner
}

// NewPlan zips the value files and expands every row into its replicate
// folders. Parameter names must be unique and so must the resulting folder
// names.
func NewPlan(files []ValueFile, namer FolderNamer, batcher BatchAssigner) (*Plan, error) {
	if err := namer.Validate(); err != nil {
		return nil, err
	}
	if err := batcher.Validate(); err != nil {
		return nil, err
	}
	if err := CheckAligned(files); err != nil {
		return nil, err
	}

	seenParams := make(map[string]string, len(files))
	for _, f := range files {
		if prev, ok := seenParams[f.Name]; ok {
			return nil, fmt.Errorf("%w: parameter %q is provided by both %s and %s", ErrConsistency, f.Name, describe(prev), describe(f.Path))
		}
		seenParams[f.Name] = f.Path
	}

	plan := &Plan{batcher: batcher}
	seenNames := make(map[string]int)
	for row, set := range Rows(files) {
		for _, name := range namer.Names(set) {
			if prevRow, ok := seenNames[name]; ok {
				return nil, fmt.Errorf("%w: rows %d and %d both produce folder %q", ErrConsistency, prevRow+1, row+1, name)
			}
			seenNames[name] = row

			i := len(plan.Folders)
			plan.Folders = append(plan.Folders, Folder{
				Index:  i,
				Row:    row,
				Name:   name,
				Batch:  batcher.Batch(i),
				Params: set,
			})
		}
	}
	plan.Batches = batcher.Count(len(plan.Folders))
	return plan, nil
}

// Path returns where folder f lives under target.
func (p *Plan) Path(target string, f Folder) string {
	if f.Batch == 0 {
		return filepath.Join(target, f.Name)
	}
	return filepath.Join(target, p.batcher.Dir(f.Batch), f.Name)
}

// BatchDirs returns the batch directories under target, in batch order.
func (p *Plan) BatchDirs(target string) []string {
	dirs := make([]string, p.Batches)
	for n := 1; n <= p.Batches; n++ {
		dirs[n-1] = filepath.Join(target, p.batcher.Dir(n))
	}
	return dirs
}

func describe(path string) string {
	if path == "" {
		return "the sweep config"
	}
	return path
}
