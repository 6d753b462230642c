// Package dispatch copies auxiliary files into simulation folders.
package dispatch

import (
	"context"
	"fmt"

	"github.com/specialistvlad/simarray/internal/ctxlog"
	"github.com/specialistvlad/simarray/internal/fsutil"
	"github.com/specialistvlad/simarray/internal/sweep"
	"github.com/spf13/afero"
)

// Dispatcher copies a fixed list of files into folders.
type Dispatcher struct {
	fsys  afero.Fs
	files []string
}

// New checks that every file exists and is a regular file.
func New(fsys afero.Fs, files []string) (*Dispatcher, error) {
	for _, f := range files {
		if !fsutil.IsRegularFile(fsys, f) {
			return nil, fmt.Errorf("%w: file '%s' specified in --dispatch does not exist or is not a file", sweep.ErrConsistency, f)
		}
	}
	return &Dispatcher{fsys: fsys, files: files}, nil
}

// Into copies every file into dir, overwriting same-named files.
func (d *Dispatcher) Into(ctx context.Context, dir string) error {
	logger := ctxlog.FromContext(ctx)
	for _, f := range d.files {
		dst, err := fsutil.CopyFile(d.fsys, f, dir)
		if err != nil {
			return err
		}
		logger.Debug("Dispatched file.", "file", f, "to", dst)
	}
	return nil
}
