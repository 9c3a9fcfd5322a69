package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/jmoiron/sqlx"

	"chatdash/internal/models"
)

const settingsKey = "settings"

// SettingsRepository round-trips the settings blob.
type SettingsRepository interface {
	Get(ctx context.Context) (models.Settings, error)
	Put(ctx context.Context, s models.Settings) error
}

// SettingsRepo stores the blob as JSON in the kv table.
type SettingsRepo struct {
	db *sqlx.DB
}

// NewSettingsRepo constructs SettingsRepo.
func NewSettingsRepo(db *sqlx.DB) *SettingsRepo {
	return &SettingsRepo{db: db}
}

// Get returns the stored settings, or the defaults before the first save.
func (r *SettingsRepo) Get(ctx context.Context) (models.Settings, error) {
	var raw string
	err := r.db.GetContext(ctx, &raw, `SELECT value FROM kv WHERE key = ?`, settingsKey)
	if errors.Is(err, sql.ErrNoRows) {
		return models.DefaultSettings(), nil
	}
	if err != nil {
		return models.Settings{}, err
	}

	var s models.Settings
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return models.Settings{}, err
	}
	return s, nil
}

// Put overwrites the stored settings wholesale.
func (r *SettingsRepo) Put(ctx context.Context, s models.Settings) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		settingsKey, string(raw))
	return err
}
