// Package config defines the format-agnostic model of a sweep configuration
// file, along with the Loader interface that format-specific packages
// implement.
//
// A sweep configuration supplies defaults for every command-line option and
// may declare parameter value lists inline. Concrete implementations, such as
// for HCL and YAML, are provided in separate packages.
package config
