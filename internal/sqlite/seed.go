// This file implements first-run seeding on store attach.
package sqlite

import (
	"database/sql"
	"fmt"
	"time"
)

// defaultVariantName is the variant seeded on first startup so export
// works before the user has created any variant of their own.
const defaultVariantName = "default"

// defaultSectionOrder is the section order seeded with the default
// variant.
var defaultSectionOrder = []string{
	"experience",
	"education",
	"projects",
	"skills",
	"certifications",
}

// seedDefaultVariant creates the default variant if the variants table
// is empty (first run). Seeding is idempotent: it only runs when no
// variants exist.
func seedDefaultVariant(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM variants").Scan(&count); err != nil {
		return fmt.Errorf("counting variants: %w", err)
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC().Format(time.RFC3339)

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning seed transaction: %w", err)
	}
	defer tx.Rollback()

	variantID := newID()
	_, err = tx.Exec(
		"INSERT INTO variants (variant_id, name, rules_json, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
		variantID, defaultVariantName, "{}", now, now,
	)
	if err != nil {
		return fmt.Errorf("seeding default variant: %w", err)
	}

	for i, section := range defaultSectionOrder {
		_, err = tx.Exec(
			"INSERT INTO variant_sections (variant_id, section, position) VALUES (?, ?, ?)",
			variantID, section, i,
		)
		if err != nil {
			return fmt.Errorf("seeding section %s: %w", section, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing seed transaction: %w", err)
	}
	return nil
}
