package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"chatdash/internal/models"
)

var ErrChannelNotFound = errors.New("channel not found")

// ChannelRepository defines interactions with stored channels.
type ChannelRepository interface {
	List(ctx context.Context, activeOnly bool) ([]models.Channel, error)
	SetActive(ctx context.Context, id int64, active bool) error
	SetPinned(ctx context.Context, id int64, pinned bool) error
}

// ChannelRepo is a sqlx-backed repository.
type ChannelRepo struct {
	db *sqlx.DB
}

// NewChannelRepo constructs ChannelRepo.
func NewChannelRepo(db *sqlx.DB) *ChannelRepo {
	return &ChannelRepo{db: db}
}

// List returns channels ordered by name, optionally active ones only.
func (r *ChannelRepo) List(ctx context.Context, activeOnly bool) ([]models.Channel, error) {
	query := `SELECT id, name, type, last_message_at, active, pinned FROM channels`
	if activeOnly {
		query += ` WHERE active = 1`
	}
	query += ` ORDER BY name`

	channels := []models.Channel{}
	if err := r.db.SelectContext(ctx, &channels, query); err != nil {
		return nil, err
	}
	return channels, nil
}

// SetActive toggles a channel's active flag.
func (r *ChannelRepo) SetActive(ctx context.Context, id int64, active bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE channels SET active = ? WHERE id = ?`, active, id)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

// SetPinned toggles a channel's pinned flag.
func (r *ChannelRepo) SetPinned(ctx context.Context, id int64, pinned bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE channels SET pinned = ? WHERE id = ?`, pinned, id)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

func checkAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrChannelNotFound
	}
	return nil
}
