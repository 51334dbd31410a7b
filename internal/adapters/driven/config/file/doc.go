// Package file loads gitsync configuration from a YAML or TOML file.
//
// The format is chosen by file extension. Values not present in the file
// keep their defaults from domain.DefaultConfig, environment variables in
// path settings are expanded, and credentials may be supplied through the
// environment instead of the file.
package file
