package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/seewee/seewee/pkg/types"
)

// The profile is a singleton; every read and write targets this row.
const profileRowID = 1

// GetProfile returns the stored profile, creating an empty one on first
// access so callers never see a missing row.
func (s *Store) GetProfile() (*types.Profile, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}

	row := db.QueryRow(
		"SELECT data_json, created_at, updated_at FROM profile WHERE profile_id = ?", profileRowID,
	)

	var dataJSON, createdAt, updatedAt string
	err = row.Scan(&dataJSON, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		profile := &types.Profile{}
		if err := s.PutProfile(profile); err != nil {
			return nil, err
		}
		return s.GetProfile()
	}
	if err != nil {
		return nil, fmt.Errorf("loading profile: %w", err)
	}

	var profile types.Profile
	if err := json.Unmarshal([]byte(dataJSON), &profile); err != nil {
		return nil, fmt.Errorf("decoding profile: %w", err)
	}
	if profile.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing profile created_at: %w", err)
	}
	if profile.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return nil, fmt.Errorf("parsing profile updated_at: %w", err)
	}
	return &profile, nil
}

// PutProfile replaces the stored profile wholesale. Timestamps are
// managed by the store; the caller's values are ignored.
func (s *Store) PutProfile(profile *types.Profile) error {
	db, err := s.conn()
	if err != nil {
		return err
	}
	if profile == nil {
		return types.ErrInvalidID
	}

	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encoding profile: %w", err)
	}
	now := time.Now().UTC().Format(time.RFC3339)

	_, err = db.Exec(
		`INSERT INTO profile (profile_id, data_json, created_at, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (profile_id) DO UPDATE SET data_json = excluded.data_json, updated_at = excluded.updated_at`,
		profileRowID, string(data), now, now,
	)
	if err != nil {
		return fmt.Errorf("storing profile: %w", err)
	}
	return nil
}
