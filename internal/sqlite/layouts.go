package sqlite

import (
	"fmt"
	"time"

	"github.com/seewee/seewee/pkg/types"
)

// LoadLayout returns the stored layout for a variant. A variant that has
// never been laid out yields a layout seeded from its declared section
// order with empty entry lists. Returns types.ErrNotFound for an unknown
// variant.
func (s *Store) LoadLayout(variantID string) (*types.Layout, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}

	variant, err := s.GetVariant(variantID)
	if err != nil {
		return nil, err
	}

	layout := types.NewLayout(variantID, variant.SectionIDs)

	rows, err := db.Query(
		"SELECT section, entry_id FROM variant_items WHERE variant_id = ? ORDER BY section, position",
		variantID,
	)
	if err != nil {
		return nil, fmt.Errorf("loading layout items: %w", err)
	}
	defer rows.Close()

	bySection := make(map[string][]string)
	for rows.Next() {
		var section, entryID string
		if err := rows.Scan(&section, &entryID); err != nil {
			return nil, err
		}
		bySection[section] = append(bySection[section], entryID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Items for a section no longer declared on the variant are dropped
	// here; SaveLayout rewrites sections and items together so in
	// practice the map is always fully consumed.
	for i := range layout.Sections {
		if ids, ok := bySection[layout.Sections[i].SectionID]; ok {
			layout.Sections[i].EntryIDs = ids
		}
	}

	return layout, nil
}

// SaveLayout replaces the stored layout for a variant with the given
// snapshot: section order and entry placement are both rewritten in one
// transaction, so overlapping saves serialize to
// last-writer-wins with no partial interleaving. The variant's declared
// section order is kept in step with the layout's section order.
func (s *Store) SaveLayout(layout *types.Layout) error {
	db, err := s.conn()
	if err != nil {
		return err
	}
	if layout == nil || layout.VariantID == "" {
		return types.ErrInvalidID
	}
	if _, err := s.GetVariant(layout.VariantID); err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM variant_items WHERE variant_id = ?", layout.VariantID); err != nil {
		return fmt.Errorf("clearing layout items: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM variant_sections WHERE variant_id = ?", layout.VariantID); err != nil {
		return fmt.Errorf("clearing layout sections: %w", err)
	}

	for si, section := range layout.Sections {
		if _, err := tx.Exec(
			"INSERT INTO variant_sections (variant_id, section, position) VALUES (?, ?, ?)",
			layout.VariantID, section.SectionID, si,
		); err != nil {
			return fmt.Errorf("inserting layout section: %w", err)
		}
		for pi, entryID := range section.EntryIDs {
			if _, err := tx.Exec(
				"INSERT INTO variant_items (variant_id, section, position, entry_id) VALUES (?, ?, ?, ?)",
				layout.VariantID, section.SectionID, pi, entryID,
			); err != nil {
				return fmt.Errorf("inserting layout item: %w", err)
			}
		}
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if _, err := tx.Exec(
		"UPDATE variants SET updated_at = ? WHERE variant_id = ?", now, layout.VariantID,
	); err != nil {
		return fmt.Errorf("touching variant: %w", err)
	}

	return tx.Commit()
}

// ClearLayout removes all entry placements for a variant, reverting
// export to the auto-grouping fallback. The declared section order is
// kept.
func (s *Store) ClearLayout(variantID string) error {
	db, err := s.conn()
	if err != nil {
		return err
	}
	if _, err := s.GetVariant(variantID); err != nil {
		return err
	}
	_, err = db.Exec("DELETE FROM variant_items WHERE variant_id = ?", variantID)
	return err
}
