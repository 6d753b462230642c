// Package template rewrites parameter files for one simulation folder.
//
// A template is an ordered list of raw lines. A line whose trimmed text starts
// with "<name><separator>" for a known parameter is that parameter's
// declaration and gets its value replaced; every other line passes through
// untouched. Parameters the template never declares are appended at the end in
// parameter order. Declaring the same parameter twice is an error.
package template
