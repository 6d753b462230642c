// Package fsutil provides file system utility functions on top of afero, so
// the generator can run against the real disk or an in-memory tree.
package fsutil

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
)

// ListFiles returns the regular files directly inside dir, sorted by name.
func ListFiles(fsys afero.Fs, dir string) ([]string, error) {
	infos, err := afero.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	var files []string
	for _, info := range infos {
		if info.Mode().IsRegular() {
			files = append(files, filepath.Join(dir, info.Name()))
		}
	}
	return files, nil
}

// IsRegularFile reports whether p exists and is a regular file.
func IsRegularFile(fsys afero.Fs, p string) bool {
	info, err := fsys.Stat(p)
	return err == nil && info.Mode().IsRegular()
}

// EnsureDir creates dir and any missing parents. Existing directories are
// left alone.
func EnsureDir(fsys afero.Fs, dir string) error {
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// CopyFile copies src into dir under its base name, replacing any file of the
// same name. Permission bits are carried over. It returns the new path. When
// src already is that file, nothing is written.
func CopyFile(fsys afero.Fs, src, dir string) (string, error) {
	dst := filepath.Join(dir, filepath.Base(src))
	if SameFile(fsys, src, dst) {
		return dst, nil
	}

	in, err := fsys.Open(src)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to stat %s: %w", src, err)
	}

	out, err := fsys.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return "", fmt.Errorf("failed to copy %s to %s: %w", src, dst, err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", dst, err)
	}
	if err := fsys.Chmod(dst, info.Mode().Perm()); err != nil {
		return "", fmt.Errorf("failed to set mode on %s: %w", dst, err)
	}
	return dst, nil
}

// SameFile reports whether a and b name the same file, either by path or,
// on the OS filesystem, by identity.
func SameFile(fsys afero.Fs, a, b string) bool {
	if absPath(a) == absPath(b) {
		return true
	}
	ai, err := fsys.Stat(a)
	if err != nil {
		return false
	}
	bi, err := fsys.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ai, bi)
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}

// FindDirs returns the directories under root whose slash-separated path
// relative to root matches any of the doublestar patterns. Only the first
// depth levels are searched. Results are sorted and joined onto root.
func FindDirs(fsys afero.Fs, root string, depth int, patterns ...string) ([]string, error) {
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid folder pattern %q", pattern)
		}
	}

	var found []string
	var visit func(rel string, level int) error
	visit = func(rel string, level int) error {
		infos, err := afero.ReadDir(fsys, filepath.Join(root, filepath.FromSlash(rel)))
		if err != nil {
			return err
		}
		for _, info := range infos {
			if !info.IsDir() {
				continue
			}
			child := path.Join(rel, info.Name())
			if matchAny(patterns, child) {
				found = append(found, filepath.Join(root, filepath.FromSlash(child)))
			}
			if level < depth {
				if err := visit(child, level+1); err != nil {
					return err
				}
			}
		}
		return nil
	}

	if err := visit("", 1); err != nil {
		return nil, fmt.Errorf("failed to search %s: %w", root, err)
	}
	sort.Strings(found)
	return found, nil
}

func matchAny(patterns []string, name string) bool {
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, name); ok {
			return true
		}
	}
	return false
}

// PrefixPattern returns a pattern matching any name that starts with prefix.
func PrefixPattern(prefix string) string {
	return QuoteMeta(prefix) + "*"
}

// QuoteMeta escapes the doublestar metacharacters in s.
func QuoteMeta(s string) string {
	var b strings.Builder
	for _, r := range s {
		if strings.ContainsRune(`\*?[]{}`, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
