package sweep

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/spf13/afero"
)

// ValueFile holds the candidate values of one parameter, in file-line order.
type ValueFile struct {
	Name   string
	Path   string // empty for values declared inline in a sweep config
	Values []string
}

// ParameterName derives a parameter name from a value file path: the base name
// with its extension removed. Dot-files keep their full name.
func ParameterName(path string) string {
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	if name == "" {
		return base
	}
	return name
}

// SplitLines splits text into lines without their terminators. A trailing
// newline ends the last line rather than starting an empty one.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// ReadValueFile loads a single value file, trimming the whitespace around
// every line.
func ReadValueFile(fsys afero.Fs, path string) (ValueFile, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return ValueFile{}, fmt.Errorf("failed to read value file %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		return ValueFile{}, fmt.Errorf("%w: value file %s is not valid UTF-8 text", ErrConsistency, path)
	}

	lines := SplitLines(string(data))
	values := make([]string, len(lines))
	for i, line := range lines {
		values[i] = strings.TrimSpace(line)
	}
	return ValueFile{Name: ParameterName(path), Path: path, Values: values}, nil
}

// ReadValueFiles loads every path in order and fails unless all of them have
// the same number of lines.
func ReadValueFiles(fsys afero.Fs, paths []string) ([]ValueFile, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: no files provided, use filenames or the --folder option", ErrConfiguration)
	}

	files := make([]ValueFile, 0, len(paths))
	for _, path := range paths {
		vf, err := ReadValueFile(fsys, path)
		if err != nil {
			return nil, err
		}
		files = append(files, vf)
	}

	if err := CheckAligned(files); err != nil {
		return nil, err
	}
	return files, nil
}

// CheckAligned verifies that all value files share one line count.
func CheckAligned(files []ValueFile) error {
	counts := make(map[int][]string)
	for _, f := range files {
		counts[len(f.Values)] = append(counts[len(f.Values)], f.Name)
	}
	if len(counts) <= 1 {
		return nil
	}

	lengths := make([]int, 0, len(counts))
	for n := range counts {
		lengths = append(lengths, n)
	}
	sort.Ints(lengths)
	parts := make([]string, len(lengths))
	for i, n := range lengths {
		parts[i] = fmt.Sprintf("%d lines: %s", n, strings.Join(counts[n], ", "))
	}
	return fmt.Errorf("%w: files do not have the same number of lines (%s)", ErrConsistency, strings.Join(parts, "; "))
}
