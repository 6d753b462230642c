package template

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/specialistvlad/simarray/internal/sweep"
	"github.com/spf13/afero"
)

// Template is a parameter-file template as an ordered list of lines without
// terminators.
type Template struct {
	Path  string
	Lines []string
}

// Parse splits template text into lines.
func Parse(path, text string) *Template {
	return &Template{Path: path, Lines: sweep.SplitLines(text)}
}

// Load reads and parses the template at path.
func Load(fsys afero.Fs, path string) (*Template, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template %s: %w", path, err)
	}
	return Parse(path, string(data)), nil
}

// DuplicateParameterError reports a parameter declared on more than one
// template line.
type DuplicateParameterError struct {
	Name  string
	First int // 1-based line numbers
	Again int
}

func (e *DuplicateParameterError) Error() string {
	return fmt.Sprintf("duplicate parameter name '%s' found in the template file (lines %d and %d)", e.Name, e.First, e.Again)
}

// Unwrap classifies the error as a consistency error.
func (e *DuplicateParameterError) Unwrap() error {
	return sweep.ErrConsistency
}

// Expander renders parameter files for a fixed list of parameter names. The
// template is scanned once, when the Expander is built.
type Expander struct {
	tmpl  *Template
	sep   string
	names []string
	decl  []string // per template line: declared parameter, or ""
	cr    string   // "\r" when the template uses CRLF line endings
}

// NewExpander validates the template against names. A nil template selects
// the fallback that writes one declaration per parameter and nothing else.
func NewExpander(tmpl *Template, sep string, names []string) (*Expander, error) {
	if sep == "" {
		return nil, fmt.Errorf("%w: parameter separator must not be empty", sweep.ErrConfiguration)
	}
	e := &Expander{tmpl: tmpl, sep: sep, names: names}
	if tmpl == nil {
		return e, nil
	}

	if n := len(tmpl.Lines); n > 0 && strings.HasSuffix(tmpl.Lines[n-1], "\r") {
		e.cr = "\r"
	}
	e.decl = make([]string, len(tmpl.Lines))
	seen := make(map[string]int, len(names))
	for i, line := range tmpl.Lines {
		name := e.declaredName(line)
		if name == "" {
			continue
		}
		if first, ok := seen[name]; ok {
			return nil, &DuplicateParameterError{Name: name, First: first + 1, Again: i + 1}
		}
		seen[name] = i
		e.decl[i] = name
	}
	return e, nil
}

// declaredName returns the parameter a line declares. When one name is a
// prefix of another, the longest match wins.
func (e *Expander) declaredName(line string) string {
	trimmed := strings.TrimSpace(line)
	best := ""
	for _, name := range e.names {
		if len(name) > len(best) && strings.HasPrefix(trimmed, name+e.sep) {
			best = name
		}
	}
	return best
}

// Expand returns the parameter-file lines for one row.
func (e *Expander) Expand(set sweep.ParameterSet) ([]string, error) {
	values := make(map[string]string, len(set))
	for _, p := range set {
		values[p.Name] = p.Value
	}
	for _, name := range e.names {
		if _, ok := values[name]; !ok {
			return nil, fmt.Errorf("%w: no value for parameter %q", sweep.ErrConsistency, name)
		}
	}

	if e.tmpl == nil {
		out := make([]string, len(e.names))
		for i, name := range e.names {
			out[i] = name + e.sep + values[name]
		}
		return out, nil
	}

	out := make([]string, 0, len(e.tmpl.Lines)+len(e.names))
	found := make(map[string]bool, len(e.names))
	for i, line := range e.tmpl.Lines {
		name := e.decl[i]
		if name == "" {
			out = append(out, line)
			continue
		}
		cr := ""
		if strings.HasSuffix(line, "\r") {
			cr = "\r"
		}
		out = append(out, name+e.sep+values[name]+cr)
		found[name] = true
	}
	for _, name := range e.names {
		if !found[name] {
			out = append(out, name+e.sep+values[name]+e.cr)
		}
	}
	return out, nil
}

// Render joins lines into file content, newline-terminating every line.
func Render(lines []string) []byte {
	var buf bytes.Buffer
	for _, line := range lines {
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// WriteFile renders lines into path, replacing any existing file.
func WriteFile(fsys afero.Fs, path string, lines []string) error {
	if err := afero.WriteFile(fsys, path, Render(lines), 0644); err != nil {
		return fmt.Errorf("failed to write parameter file %s: %w", path, err)
	}
	return nil
}
