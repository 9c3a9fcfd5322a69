package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"chatdash/internal/models"
)

var ErrRequirementNotFound = errors.New("requirement not found")

// RequirementRepository defines interactions with stored requirements.
type RequirementRepository interface {
	List(ctx context.Context) ([]models.Requirement, error)
	Create(ctx context.Context, content string) (models.Requirement, error)
	Update(ctx context.Context, id int64, status *string, pinned *bool) error
	Delete(ctx context.Context, id int64) error
}

// RequirementRepo is a sqlx-backed repository.
type RequirementRepo struct {
	db *sqlx.DB
}

// NewRequirementRepo constructs RequirementRepo.
func NewRequirementRepo(db *sqlx.DB) *RequirementRepo {
	return &RequirementRepo{db: db}
}

// List returns non-closed requirements, newest first.
func (r *RequirementRepo) List(ctx context.Context) ([]models.Requirement, error) {
	reqs := []models.Requirement{}
	err := r.db.SelectContext(ctx, &reqs,
		`SELECT id, title, content, source, status, pinned, created_at
		 FROM requirements WHERE status != 'closed' ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	return reqs, nil
}

// Create stores a manual requirement.
func (r *RequirementRepo) Create(ctx context.Context, content string) (models.Requirement, error) {
	req := models.Requirement{
		Content:   content,
		Status:    models.StatusPending,
		RawSource: "manual",
		CreatedAt: time.Now().Format(time.RFC3339),
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO requirements (title, content, source, status, pinned, created_at)
		 VALUES ('', ?, 'manual', ?, 0, ?)`,
		req.Content, req.Status, req.CreatedAt)
	if err != nil {
		return models.Requirement{}, err
	}
	req.ID, err = res.LastInsertId()
	if err != nil {
		return models.Requirement{}, err
	}
	return req, nil
}

// Update applies a partial status/pinned mutation; nil fields are left
// untouched.
func (r *RequirementRepo) Update(ctx context.Context, id int64, status *string, pinned *bool) error {
	sets := ""
	args := []any{}

	if status != nil {
		sets += "status = ?"
		args = append(args, *status)
	}
	if pinned != nil {
		if sets != "" {
			sets += ", "
		}
		sets += "pinned = ?"
		args = append(args, *pinned)
	}
	if sets == "" {
		return nil
	}
	args = append(args, id)

	res, err := r.db.ExecContext(ctx, `UPDATE requirements SET `+sets+` WHERE id = ?`, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrRequirementNotFound
	}
	return nil
}

// Delete removes a requirement.
func (r *RequirementRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM requirements WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrRequirementNotFound
	}
	return nil
}
