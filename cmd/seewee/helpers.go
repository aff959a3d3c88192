// Shared helpers for seewee CLI commands.
package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/seewee/seewee/internal/schema"
	"github.com/seewee/seewee/internal/sqlite"
	"github.com/seewee/seewee/pkg/types"
)

// attachStore resolves the data directory, creates the SQLite store, and
// attaches it. The caller must defer store.Detach().
func attachStore() (*sqlite.Store, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	cfg := types.Config{
		Backend: types.BackendSQLite,
		DataDir: dataDir,
	}

	store := sqlite.NewStore()
	if err := store.Attach(cfg); err != nil {
		return nil, fmt.Errorf("attach store: %w", err)
	}

	return store, nil
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

// parseFieldArgs turns repeated key=value pairs into typed field values
// using the schema registry. List fields take comma-separated values.
func parseFieldArgs(category types.Category, pairs []string) (map[string]types.FieldValue, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	fields := make(map[string]types.FieldValue, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("field %q: expected name=value", pair)
		}
		name = strings.TrimSpace(name)

		spec, known := schema.Lookup(category, name)
		if !known {
			// Unknown fields are stored as short text; the registry only
			// governs declared fields.
			fields[name] = types.Text(value)
			continue
		}
		switch spec.Kind {
		case types.KindTextList:
			var items []string
			for _, it := range strings.Split(value, ",") {
				if it = strings.TrimSpace(it); it != "" {
					items = append(items, it)
				}
			}
			fields[name] = types.TextList(items...)
		case types.KindDate:
			fields[name] = types.Date(value)
		case types.KindLongText:
			fields[name] = types.LongText(value)
		default:
			fields[name] = types.Text(value)
		}
	}
	return fields, nil
}

// shortID truncates a UUID to its first 8 characters for table output.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
