// Package types defines the view-state data model, the ViewService
// collaborator interface, and standard errors for the tableview library.
package types

import "errors"

// Config holds backend selection and parameters for constructing a
// ViewService.
type Config struct {
	Backend    string `json:"backend" yaml:"backend"`
	BaseURL    string `json:"base_url" yaml:"base_url"`
	ViewsPath  string `json:"views_path" yaml:"views_path"`
	StatesPath string `json:"states_path" yaml:"states_path"`
	DataDir    string `json:"data_dir" yaml:"data_dir"`
}

// Supported backend names.
const (
	BackendHTTP   = "http"
	BackendSQLite = "sqlite"
)

// Default endpoint paths for the HTTP backend.
const (
	DefaultViewsPath  = "table-views"
	DefaultStatesPath = "table-states"
)

// Config validation errors.
var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
	ErrBaseURLEmpty   = errors.New("base_url is required for the http backend")
)

// Backend lifecycle errors. The SQLite backend attaches to a data
// directory before serving requests and detaches to release it.
var (
	ErrDetached        = errors.New("backend is detached")
	ErrAlreadyAttached = errors.New("backend is already attached")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendHTTP:   true,
	BackendSQLite: true,
}

// Validate checks that the Config is well-formed. It returns a sentinel
// error from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	if c.Backend == BackendHTTP && c.BaseURL == "" {
		return ErrBaseURLEmpty
	}
	return nil
}

// ViewsEndpoint returns the configured views path, or the default.
func (c Config) ViewsEndpoint() string {
	if c.ViewsPath != "" {
		return c.ViewsPath
	}
	return DefaultViewsPath
}

// StatesEndpoint returns the configured live-states path, or the default.
func (c Config) StatesEndpoint() string {
	if c.StatesPath != "" {
		return c.StatesPath
	}
	return DefaultStatesPath
}
