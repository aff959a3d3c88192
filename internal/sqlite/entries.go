// This file implements the entry store: canonical career-history records
// hydrated between SQLite rows and *types.Entry values.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/seewee/seewee/internal/schema"
	"github.com/seewee/seewee/pkg/types"
)

// CreateEntry stores a new entry with a generated UUID v7. Unknown
// categories are rejected with types.ErrUnknownCategory.
func (s *Store) CreateEntry(category types.Category, fields map[string]types.FieldValue, tags []string) (*types.Entry, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}
	if !category.Valid() {
		return nil, types.ErrUnknownCategory
	}
	if fields == nil {
		fields = make(map[string]types.FieldValue)
	}

	now := time.Now().UTC()
	e := &types.Entry{
		EntryID:   newID(),
		Category:  category,
		Fields:    fields,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, t := range dedupTags(tags) {
		e.Tags = append(e.Tags, t)
	}

	fieldsJSON, err := json.Marshal(e.Fields)
	if err != nil {
		return nil, fmt.Errorf("encoding entry fields: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"INSERT INTO entries (entry_id, category, fields_json, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
		e.EntryID, string(e.Category), string(fieldsJSON), now.Format(time.RFC3339), now.Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting entry: %w", err)
	}
	for _, t := range e.Tags {
		if _, err := tx.Exec("INSERT INTO entry_tags (entry_id, tag) VALUES (?, ?)", e.EntryID, t); err != nil {
			return nil, fmt.Errorf("inserting entry tag: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing entry: %w", err)
	}
	return e, nil
}

// GetEntry retrieves an entry by ID. Returns types.ErrNotFound when no
// entry exists with that ID.
func (s *Store) GetEntry(id string) (*types.Entry, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}
	if id == "" {
		return nil, types.ErrInvalidID
	}

	row := db.QueryRow(
		"SELECT entry_id, category, fields_json, created_at, updated_at FROM entries WHERE entry_id = ?", id,
	)
	e, err := hydrateEntry(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting entry %s: %w", id, err)
	}
	if err := s.hydrateTags(db, e); err != nil {
		return nil, fmt.Errorf("hydrating tags for entry %s: %w", id, err)
	}
	return e, nil
}

// ListEntries returns entries, optionally filtered to one category, most
// recently updated first (ties broken by ID for stable iteration).
func (s *Store) ListEntries(category types.Category) ([]*types.Entry, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}
	if category != "" && !category.Valid() {
		return nil, types.ErrUnknownCategory
	}

	query := "SELECT entry_id, category, fields_json, created_at, updated_at FROM entries"
	args := []any{}
	if category != "" {
		query += " WHERE category = ?"
		args = append(args, string(category))
	}
	query += " ORDER BY updated_at DESC, entry_id"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}
	defer rows.Close()

	var out []*types.Entry
	for rows.Next() {
		e, err := hydrateEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("hydrating entry: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, e := range out {
		if err := s.hydrateTags(db, e); err != nil {
			return nil, fmt.Errorf("hydrating tags for entry %s: %w", e.EntryID, err)
		}
	}
	return out, nil
}

// UpdateEntry replaces the fields and/or tags of an existing entry. A nil
// fields or tags argument leaves that part unchanged.
func (s *Store) UpdateEntry(id string, fields map[string]types.FieldValue, tags []string) (*types.Entry, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}

	if _, err := s.GetEntry(id); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if fields != nil {
		fieldsJSON, err := json.Marshal(fields)
		if err != nil {
			return nil, fmt.Errorf("encoding entry fields: %w", err)
		}
		if _, err := tx.Exec(
			"UPDATE entries SET fields_json = ?, updated_at = ? WHERE entry_id = ?",
			string(fieldsJSON), now.Format(time.RFC3339), id,
		); err != nil {
			return nil, fmt.Errorf("updating entry: %w", err)
		}
	} else {
		if _, err := tx.Exec(
			"UPDATE entries SET updated_at = ? WHERE entry_id = ?", now.Format(time.RFC3339), id,
		); err != nil {
			return nil, fmt.Errorf("updating entry: %w", err)
		}
	}

	if tags != nil {
		if _, err := tx.Exec("DELETE FROM entry_tags WHERE entry_id = ?", id); err != nil {
			return nil, fmt.Errorf("clearing entry tags: %w", err)
		}
		for _, t := range dedupTags(tags) {
			if _, err := tx.Exec("INSERT INTO entry_tags (entry_id, tag) VALUES (?, ?)", id, t); err != nil {
				return nil, fmt.Errorf("inserting entry tag: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing entry update: %w", err)
	}
	return s.GetEntry(id)
}

// DeleteEntry removes an entry and its tags. Layout references to the
// entry are left in place on purpose: export resolves them lazily and the
// next layout edit rewrites the placement, matching the editing surface's
// behavior.
func (s *Store) DeleteEntry(id string) error {
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

	if _, err := tx.Exec("DELETE FROM entry_tags WHERE entry_id = ?", id); err != nil {
		return fmt.Errorf("deleting entry tags: %w", err)
	}
	res, err := tx.Exec("DELETE FROM entries WHERE entry_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting entry: %w", err)
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

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// hydrateEntry scans one entries row into a *types.Entry, decoding the
// fields document and restoring declared value kinds.
func hydrateEntry(row scanner) (*types.Entry, error) {
	var (
		e                    types.Entry
		category             string
		fieldsJSON           string
		createdAt, updatedAt string
	)
	if err := row.Scan(&e.EntryID, &category, &fieldsJSON, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	e.Category = types.Category(category)

	if err := json.Unmarshal([]byte(fieldsJSON), &e.Fields); err != nil {
		return nil, fmt.Errorf("decoding entry fields: %w", err)
	}
	schema.Retag(e.Category, e.Fields)

	var err error
	if e.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if e.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &e, nil
}

// hydrateTags loads the tag set for an entry in sorted order.
func (s *Store) hydrateTags(db *sql.DB, e *types.Entry) error {
	rows, err := db.Query("SELECT tag FROM entry_tags WHERE entry_id = ? ORDER BY tag", e.EntryID)
	if err != nil {
		return err
	}
	defer rows.Close()

	e.Tags = nil
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return err
		}
		e.Tags = append(e.Tags, tag)
	}
	return rows.Err()
}

// dedupTags returns the tags sorted with duplicates and blanks removed.
func dedupTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	var out []string
	for _, t := range tags {
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
