// Package hcl provides the HCL implementation of the config.Loader
// interface. It parses sweep files with hclparse, decodes them with gohcl,
// and converts inline parameter values to strings through go-cty.
package hcl
