// Shared helpers for tablectl commands.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mesh-intelligence/tableview/internal/httpviews"
	"github.com/mesh-intelligence/tableview/pkg/sqlite"
	"github.com/mesh-intelligence/tableview/pkg/types"
)

// newService builds the ViewService selected by the loaded config. The
// returned cleanup releases backend resources; callers must defer it.
func newService() (types.ViewService, func() error, error) {
	switch loadedConfig.backend {
	case types.BackendHTTP:
		cfg := types.Config{
			Backend:    types.BackendHTTP,
			BaseURL:    loadedConfig.baseURL,
			ViewsPath:  loadedConfig.viewsPath,
			StatesPath: loadedConfig.statesPath,
		}
		if err := cfg.Validate(); err != nil {
			return nil, nil, err
		}
		return httpviews.NewClient(cfg), func() error { return nil }, nil

	case types.BackendSQLite, "":
		dataDir, err := resolveDataDir()
		if err != nil {
			return nil, nil, fmt.Errorf("resolve data dir: %w", err)
		}
		backend := sqlite.NewBackend()
		cfg := types.Config{Backend: types.BackendSQLite, DataDir: dataDir}
		if err := backend.Attach(cfg); err != nil {
			return nil, nil, fmt.Errorf("attach backend: %w", err)
		}
		return backend, backend.Detach, nil

	default:
		return nil, nil, types.ErrBackendUnknown
	}
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

// readStateFile parses a TableViewState from a JSON file, merging the
// payload onto the canonical zero state.
func readStateFile(path string) (types.TableViewState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.TableViewState{}, fmt.Errorf("read state file: %w", err)
	}
	var state types.TableViewState
	if err := json.Unmarshal(data, &state); err != nil {
		return types.TableViewState{}, fmt.Errorf("parse state file: %w", err)
	}
	return types.WithDefaults(state), nil
}
