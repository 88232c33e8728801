// Shared helpers for sero CLI commands.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/RamonOpazo/sero-sub005/internal/paths"
	"github.com/RamonOpazo/sero-sub005/pkg/sqlite"
	"github.com/RamonOpazo/sero-sub005/pkg/types"
)

// attachStore resolves the data directory, creates a SQLite store, and
// attaches it. The caller must defer store.Detach(). Returns the attached
// store and the resolved data directory.
func attachStore() (*sqlite.Store, string, error) {
	dataDir, err := paths.ResolveDataDir(flagDataDir, configDataDir)
	if err != nil {
		return nil, "", fmt.Errorf("resolve data dir: %w", err)
	}

	store := sqlite.NewStore()
	cfg := types.Config{
		Backend: types.BackendSQLite,
		DataDir: dataDir,
	}
	if err := store.Attach(cfg); err != nil {
		return nil, "", fmt.Errorf("attach store: %w", err)
	}

	return store, dataDir, nil
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
