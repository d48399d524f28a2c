// Package configs manages the vellum user configuration: backend endpoints,
// the per-file upload ceiling, and the local client identity. The config is
// a TOML file under the user config directory, with environment variable
// overrides for the endpoints.
package configs
