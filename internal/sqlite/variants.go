// This file implements the variant store: named selections with their
// rules bag and declared section order.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/seewee/seewee/pkg/types"
)

// CreateVariant stores a new variant with a generated UUID v7 and the
// declared section order.
func (s *Store) CreateVariant(name string, rules types.Rules, sectionIDs []string) (*types.Variant, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, types.ErrInvalidName
	}
	if rules == nil {
		rules = types.Rules{}
	}

	now := time.Now().UTC()
	v := &types.Variant{
		VariantID:  newID(),
		Name:       name,
		Rules:      rules,
		SectionIDs: append([]string(nil), sectionIDs...),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	rulesJSON, err := json.Marshal(rules)
	if err != nil {
		return nil, fmt.Errorf("encoding variant rules: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"INSERT INTO variants (variant_id, name, rules_json, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
		v.VariantID, v.Name, string(rulesJSON), now.Format(time.RFC3339), now.Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting variant: %w", err)
	}
	for i, section := range v.SectionIDs {
		if _, err := tx.Exec(
			"INSERT INTO variant_sections (variant_id, section, position) VALUES (?, ?, ?)",
			v.VariantID, section, i,
		); err != nil {
			return nil, fmt.Errorf("inserting variant section: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing variant: %w", err)
	}
	return v, nil
}

// GetVariant retrieves a variant by ID with its declared section order.
// Returns types.ErrNotFound when no variant exists with that ID.
func (s *Store) GetVariant(id string) (*types.Variant, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}
	if id == "" {
		return nil, types.ErrInvalidID
	}

	var (
		v                    types.Variant
		rulesJSON            string
		createdAt, updatedAt string
	)
	err = db.QueryRow(
		"SELECT variant_id, name, rules_json, created_at, updated_at FROM variants WHERE variant_id = ?", id,
	).Scan(&v.VariantID, &v.Name, &rulesJSON, &createdAt, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting variant %s: %w", id, err)
	}

	if err := json.Unmarshal([]byte(rulesJSON), &v.Rules); err != nil {
		return nil, fmt.Errorf("decoding variant rules: %w", err)
	}
	if v.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if v.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}

	if v.SectionIDs, err = s.sectionOrder(db, id); err != nil {
		return nil, fmt.Errorf("loading sections for variant %s: %w", id, err)
	}
	return &v, nil
}

// ListVariants returns all variants, most recently updated first.
func (s *Store) ListVariants() ([]*types.Variant, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}

	rows, err := db.Query("SELECT variant_id FROM variants ORDER BY updated_at DESC, variant_id")
	if err != nil {
		return nil, fmt.Errorf("listing variants: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]*types.Variant, 0, len(ids))
	for _, id := range ids {
		v, err := s.GetVariant(id)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// UpdateVariantName renames a variant. Returns types.ErrNotFound for an
// unknown variant and types.ErrInvalidName for an empty name.
func (s *Store) UpdateVariantName(id, name string) error {
	db, err := s.conn()
	if err != nil {
		return err
	}
	if name == "" {
		return types.ErrInvalidName
	}

	res, err := db.Exec(
		"UPDATE variants SET name = ?, updated_at = ? WHERE variant_id = ?",
		name, time.Now().UTC().Format(time.RFC3339), id,
	)
	if err != nil {
		return fmt.Errorf("renaming variant: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return types.ErrNotFound
	}
	return nil
}

// UpdateVariantRules replaces the variant's rules bag verbatim.
func (s *Store) UpdateVariantRules(id string, rules types.Rules) error {
	db, err := s.conn()
	if err != nil {
		return err
	}
	if rules == nil {
		rules = types.Rules{}
	}
	rulesJSON, err := json.Marshal(rules)
	if err != nil {
		return fmt.Errorf("encoding variant rules: %w", err)
	}

	res, err := db.Exec(
		"UPDATE variants SET rules_json = ?, updated_at = ? WHERE variant_id = ?",
		string(rulesJSON), time.Now().UTC().Format(time.RFC3339), id,
	)
	if err != nil {
		return fmt.Errorf("updating variant rules: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return types.ErrNotFound
	}
	return nil
}

// DeleteVariant removes a variant together with its layout rows.
func (s *Store) DeleteVariant(id string) error {
	db, err := s.conn()
	if err != nil {
		return err
	}
	if id == "" {
		return types.ErrInvalidID
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM variant_items WHERE variant_id = ?", id); err != nil {
		return fmt.Errorf("deleting variant items: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM variant_sections WHERE variant_id = ?", id); err != nil {
		return fmt.Errorf("deleting variant sections: %w", err)
	}
	res, err := tx.Exec("DELETE FROM variants WHERE variant_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting variant: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return types.ErrNotFound
	}
	return tx.Commit()
}

// sectionOrder reads the declared section sequence for a variant.
func (s *Store) sectionOrder(db *sql.DB, variantID string) ([]string, error) {
	rows, err := db.Query(
		"SELECT section FROM variant_sections WHERE variant_id = ? ORDER BY position", variantID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var section string
		if err := rows.Scan(&section); err != nil {
			return nil, err
		}
		out = append(out, section)
	}
	return out, rows.Err()
}
