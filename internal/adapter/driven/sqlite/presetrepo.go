package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ericfisherdev/statuspanel/internal/domain/model"
	"github.com/ericfisherdev/statuspanel/internal/domain/port/driven"
)

// PresetsKey is the preferences row holding the serialized preset list.
const PresetsKey = "StatusPresets"

// Compile-time interface satisfaction check.
var _ driven.PresetStore = (*PresetRepo)(nil)

// PresetRepo is the SQLite implementation of the PresetStore port interface. The
// whole list is stored as one JSON value in the preferences key-value table.
type PresetRepo struct {
	db *DB
}

// NewPresetRepo creates a new PresetRepo backed by the given DB.
func NewPresetRepo(db *DB) *PresetRepo {
	return &PresetRepo{db: db}
}

// Load returns the stored presets. An absent row yields the default presets and a
// nil error; a row that fails to decode or validate yields the default presets and
// a *model.StoreError.
func (r *PresetRepo) Load(ctx context.Context) ([]model.StatusPreset, error) {
	raw, err := getPreference(ctx, r.db, PresetsKey)
	if err != nil {
		return model.DefaultPresets(), &model.StoreError{Op: "load presets", Err: err}
	}
	if raw == "" {
		return model.DefaultPresets(), nil
	}

	var presets []model.StatusPreset
	if err := json.Unmarshal([]byte(raw), &presets); err != nil {
		return model.DefaultPresets(), &model.StoreError{Op: "decode presets", Err: err}
	}
	if err := validatePresets(presets); err != nil {
		return model.DefaultPresets(), &model.StoreError{Op: "decode presets", Err: err}
	}

	return presets, nil
}

// validatePresets rejects a decoded list that is null or holds an element
// without an ID or with invalid fields.
func validatePresets(presets []model.StatusPreset) error {
	if presets == nil {
		return errors.New("stored presets are null")
	}
	for i, p := range presets {
		if p.ID == "" {
			return fmt.Errorf("preset %d has no id", i)
		}
		if err := p.Validate(); err != nil {
			return fmt.Errorf("preset %q: %w", p.ID, err)
		}
	}
	return nil
}

// Save replaces the stored preset list.
func (r *PresetRepo) Save(ctx context.Context, presets []model.StatusPreset) error {
	if presets == nil {
		presets = []model.StatusPreset{}
	}

	data, err := json.Marshal(presets)
	if err != nil {
		return fmt.Errorf("encode presets: %w", err)
	}

	if err := setPreference(ctx, r.db, PresetsKey, string(data)); err != nil {
		return fmt.Errorf("save presets: %w", err)
	}
	return nil
}

// getPreference returns the raw value stored under key, or "" when absent.
func getPreference(ctx context.Context, db *DB, key string) (string, error) {
	const query = `SELECT value FROM preferences WHERE key = ?`

	var value string
	err := db.Reader.QueryRowContext(ctx, query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get preference %q: %w", key, err)
	}
	return value, nil
}

// setPreference inserts or replaces the value stored under key.
func setPreference(ctx context.Context, db *DB, key, value string) error {
	const query = `
		INSERT INTO preferences (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`

	if _, err := db.Writer.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("set preference %q: %w", key, err)
	}
	return nil
}
