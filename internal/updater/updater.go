// Package updater rewrites the value of one parameter in an existing
// parameter file.
package updater

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/specialistvlad/simarray/internal/sweep"
	"github.com/spf13/afero"
)

// Options tune how parameter lines are recognised.
type Options struct {
	// Regex treats the name as a regular expression anchored at the start of
	// the line instead of a literal prefix.
	Regex bool
}

// Matcher decides whether a line declares the parameter being updated.
type Matcher func(line string) bool

// NewMatcher builds the line matcher for name.
func NewMatcher(name string, opts Options) (Matcher, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: parameter name must not be empty", sweep.ErrConfiguration)
	}
	if !opts.Regex {
		return func(line string) bool { return strings.HasPrefix(line, name) }, nil
	}
	re, err := regexp.Compile(`^(?:` + name + `)`)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid parameter pattern %q: %v", sweep.ErrConfiguration, name, err)
	}
	return re.MatchString, nil
}

// Rewrite returns text with every matching line's value replaced. Everything
// from the first space of a matching line onward becomes " "+value; matching
// lines without a space are kept. Line terminators are preserved. The second
// result counts rewritten lines.
func Rewrite(text string, match Matcher, value string) (string, int) {
	var b strings.Builder
	b.Grow(len(text))

	changed := 0
	for _, line := range strings.SplitAfter(text, "\n") {
		if line == "" {
			continue
		}
		content, term := splitTerminator(line)
		if match(content) {
			if i := strings.IndexByte(content, ' '); i >= 0 {
				content = content[:i] + " " + value
				changed++
			}
		}
		b.WriteString(content)
		b.WriteString(term)
	}
	return b.String(), changed
}

func splitTerminator(line string) (string, string) {
	switch {
	case strings.HasSuffix(line, "\r\n"):
		return line[:len(line)-2], "\r\n"
	case strings.HasSuffix(line, "\n"):
		return line[:len(line)-1], "\n"
	default:
		return line, ""
	}
}

// Update rewrites the parameter file at path in place and returns how many
// lines changed. The file keeps its permissions.
func Update(fsys afero.Fs, path, name, value string, opts Options) (int, error) {
	match, err := NewMatcher(name, opts)
	if err != nil {
		return 0, err
	}

	info, err := fsys.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("failed to stat parameter file %s: %w", path, err)
	}
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return 0, fmt.Errorf("failed to read parameter file %s: %w", path, err)
	}

	out, changed := Rewrite(string(data), match, value)
	if err := afero.WriteFile(fsys, path, []byte(out), info.Mode().Perm()); err != nil {
		return 0, fmt.Errorf("failed to write parameter file %s: %w", path, err)
	}
	return changed, nil
}
