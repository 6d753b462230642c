// Package archive writes gzip-compressed tarballs of simulation folders.
package archive

import (
	"archive/tar"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/klauspost/compress/gzip"
	"github.com/specialistvlad/simarray/internal/ctxlog"
	"github.com/spf13/afero"
)

// Stats summarizes what went into an archive.
type Stats struct {
	Dirs  int
	Files int
	Links int
	Bytes int64
}

// TarGz writes dst as a gzip-compressed tar containing every root. Each root
// is stored under its own base name and walked recursively. dst is never
// added to itself, even when it lies inside a root.
func TarGz(ctx context.Context, fsys afero.Fs, dst string, roots ...string) (stats Stats, err error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Writing archive.", "archive", dst, "roots", len(roots))

	out, err := fsys.Create(dst)
	if err != nil {
		return stats, fmt.Errorf("failed to create archive %s: %w", dst, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close archive %s: %w", dst, cerr)
		}
	}()

	gw := gzip.NewWriter(out)
	tw := tar.NewWriter(gw)

	skip := absPath(dst)
	for _, root := range roots {
		if err := addTree(fsys, tw, root, skip, &stats); err != nil {
			return stats, fmt.Errorf("failed to archive %s into %s: %w", root, dst, err)
		}
	}

	if err := tw.Close(); err != nil {
		return stats, fmt.Errorf("failed to finish tar stream %s: %w", dst, err)
	}
	if err := gw.Close(); err != nil {
		return stats, fmt.Errorf("failed to finish gzip stream %s: %w", dst, err)
	}

	logger.Debug("Archive written.", "archive", dst, "dirs", stats.Dirs, "files", stats.Files, "bytes", stats.Bytes)
	return stats, nil
}

// Name returns the archive path for a directory: the directory path with a
// .tar.gz suffix, placed next to it.
func Name(dir string) string {
	return filepath.Clean(dir) + ".tar.gz"
}

func addTree(fsys afero.Fs, tw *tar.Writer, root, skip string, stats *Stats) error {
	base := filepath.Base(absPath(root))
	return afero.Walk(fsys, root, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if absPath(p) == skip {
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		name := path.Join(base, filepath.ToSlash(rel))

		var link string
		if info.Mode()&os.ModeSymlink != 0 {
			reader, ok := fsys.(afero.LinkReader)
			if !ok {
				return fmt.Errorf("cannot read symlink %s on this filesystem", p)
			}
			if link, err = reader.ReadlinkIfPossible(p); err != nil {
				return err
			}
		}

		hdr, err := tar.FileInfoHeader(info, link)
		if err != nil {
			return err
		}
		hdr.Name = name
		if info.IsDir() {
			hdr.Name += "/"
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return err
		}

		switch {
		case info.IsDir():
			stats.Dirs++
			return nil
		case link != "":
			stats.Links++
			return nil
		case !info.Mode().IsRegular():
			return nil
		}

		n, err := copyFile(fsys, tw, p)
		stats.Files++
		stats.Bytes += n
		return err
	})
}

func copyFile(fsys afero.Fs, w io.Writer, p string) (int64, error) {
	f, err := fsys.Open(p)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return io.Copy(w, f)
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}

// Entry is one member of an archive.
type Entry struct {
	Name  string
	IsDir bool
	Body  string
}

// List reads back the members of a gzip-compressed tar, in archive order.
// Bodies are only loaded for regular files.
func List(fsys afero.Fs, src string) ([]Entry, error) {
	f, err := fsys.Open(src)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	gr, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("failed to open gzip stream %s: %w", src, err)
	}
	defer gr.Close()

	var entries []Entry
	tr := tar.NewReader(gr)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return entries, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read tar stream %s: %w", src, err)
		}
		e := Entry{Name: hdr.Name, IsDir: hdr.Typeflag == tar.TypeDir}
		if hdr.Typeflag == tar.TypeReg {
			body, err := io.ReadAll(tr)
			if err != nil {
				return nil, err
			}
			e.Body = string(body)
		}
		entries = append(entries, e)
	}
}
