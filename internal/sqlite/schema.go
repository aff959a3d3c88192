package sqlite

import (
	"database/sql"
	"fmt"
)

// schemaVersion is bumped when the DDL below changes shape.
const schemaVersion = 1

// Schema DDL. Section order and intra-section entry order are stored in
// explicit position columns: ordered iteration is part of the layout
// contract, so an unordered encoding is not an option.
const schemaDDL = `
CREATE TABLE IF NOT EXISTS schema_meta (
    version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS entries (
    entry_id TEXT PRIMARY KEY,
    category TEXT NOT NULL,
    fields_json TEXT NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_entries_category ON entries(category);

CREATE TABLE IF NOT EXISTS entry_tags (
    entry_id TEXT NOT NULL REFERENCES entries(entry_id),
    tag TEXT NOT NULL,
    PRIMARY KEY (entry_id, tag)
);

CREATE TABLE IF NOT EXISTS variants (
    variant_id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    rules_json TEXT NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS variant_sections (
    variant_id TEXT NOT NULL REFERENCES variants(variant_id),
    section TEXT NOT NULL,
    position INTEGER NOT NULL,
    PRIMARY KEY (variant_id, section)
);

CREATE TABLE IF NOT EXISTS variant_items (
    variant_id TEXT NOT NULL REFERENCES variants(variant_id),
    section TEXT NOT NULL,
    position INTEGER NOT NULL,
    entry_id TEXT NOT NULL,
    PRIMARY KEY (variant_id, section, position)
);
CREATE INDEX IF NOT EXISTS idx_variant_items_variant ON variant_items(variant_id);

CREATE TABLE IF NOT EXISTS profile (
    profile_id INTEGER PRIMARY KEY,
    data_json TEXT NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);
`

// ensureSchema creates the tables on first open and checks the stored
// schema version on subsequent opens.
func ensureSchema(db *sql.DB) error {
	if _, err := db.Exec(schemaDDL); err != nil {
		return err
	}

	var version int
	err := db.QueryRow("SELECT version FROM schema_meta").Scan(&version)
	switch {
	case err == sql.ErrNoRows:
		_, err = db.Exec("INSERT INTO schema_meta (version) VALUES (?)", schemaVersion)
		return err
	case err != nil:
		return err
	case version != schemaVersion:
		return fmt.Errorf("schema version %d, want %d", version, schemaVersion)
	}
	return nil
}
