package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"chatdash/internal/models"
)

var ErrMessageNotFound = errors.New("message not found")

// MessageRepository defines interactions with stored messages.
type MessageRepository interface {
	Page(ctx context.Context, channelID int64, query string, limit int) ([]models.Message, error)
	CountsByChannel(ctx context.Context) (map[int64]int64, error)
	LatestByChannel(ctx context.Context) (map[int64]models.MessagePreview, error)
	CreateOutgoing(ctx context.Context, channelID int64, content string) (models.Message, error)
	Delete(ctx context.Context, id int64) error
	DeleteByChannel(ctx context.Context, channelID int64) error
}

// MessageRepo is a sqlx-backed repository.
type MessageRepo struct {
	db *sqlx.DB
}

// NewMessageRepo constructs MessageRepo.
func NewMessageRepo(db *sqlx.DB) *MessageRepo {
	return &MessageRepo{db: db}
}

// Page returns the newest-first message page for a channel, optionally
// filtered by a content substring.
func (r *MessageRepo) Page(ctx context.Context, channelID int64, query string, limit int) ([]models.Message, error) {
	q := `SELECT m.id, m.channel_id, m.sender_id, m.sender_name, m.content,
	             m.has_image, m.media_type, m.is_outgoing, m.created_at,
	             COALESCE(c.name, '') AS channel_name
	      FROM messages m LEFT JOIN channels c ON m.channel_id = c.id
	      WHERE m.channel_id = ?`
	args := []any{channelID}

	if query != "" {
		q += ` AND m.content LIKE ?`
		args = append(args, "%"+query+"%")
	}
	q += ` ORDER BY m.created_at DESC, m.id DESC LIMIT ?`
	args = append(args, limit)

	msgs := []models.Message{}
	if err := r.db.SelectContext(ctx, &msgs, q, args...); err != nil {
		return nil, err
	}
	return msgs, nil
}

// CountsByChannel returns the total stored message count per channel.
func (r *MessageRepo) CountsByChannel(ctx context.Context) (map[int64]int64, error) {
	rows := []struct {
		ChannelID int64 `db:"channel_id"`
		Total     int64 `db:"total"`
	}{}
	err := r.db.SelectContext(ctx, &rows,
		`SELECT channel_id, COUNT(*) AS total FROM messages GROUP BY channel_id`)
	if err != nil {
		return nil, err
	}

	counts := make(map[int64]int64, len(rows))
	for _, row := range rows {
		counts[row.ChannelID] = row.Total
	}
	return counts, nil
}

// LatestByChannel returns the most recent message preview per channel.
func (r *MessageRepo) LatestByChannel(ctx context.Context) (map[int64]models.MessagePreview, error) {
	rows := []struct {
		ChannelID  int64  `db:"channel_id"`
		SenderName string `db:"sender_name"`
		Content    string `db:"content"`
		CreatedAt  string `db:"created_at"`
	}{}
	err := r.db.SelectContext(ctx, &rows,
		`SELECT m.channel_id, m.sender_name, m.content, m.created_at
		 FROM messages m
		 INNER JOIN (SELECT channel_id, MAX(created_at) AS t
		             FROM messages GROUP BY channel_id) l
		 ON m.channel_id = l.channel_id AND m.created_at = l.t`)
	if err != nil {
		return nil, err
	}

	previews := make(map[int64]models.MessagePreview, len(rows))
	for _, row := range rows {
		previews[row.ChannelID] = models.MessagePreview{
			SenderName: row.SenderName,
			Content:    row.Content,
			CreatedAt:  row.CreatedAt,
		}
	}
	return previews, nil
}

// CreateOutgoing stores a locally sent message so it shows up on the next
// poll, which is close enough to the real backend's send queue for
// development purposes.
func (r *MessageRepo) CreateOutgoing(ctx context.Context, channelID int64, content string) (models.Message, error) {
	msg := models.Message{
		ChannelID:  channelID,
		SenderName: "Me",
		Content:    content,
		IsOutgoing: true,
		CreatedAt:  time.Now().Format(time.RFC3339),
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO messages (channel_id, sender_id, sender_name, content, is_outgoing, created_at)
		 VALUES (?, ?, ?, ?, 1, ?)`,
		msg.ChannelID, msg.SenderID, msg.SenderName, msg.Content, msg.CreatedAt)
	if err != nil {
		return models.Message{}, err
	}
	msg.ID, err = res.LastInsertId()
	if err != nil {
		return models.Message{}, err
	}
	return msg, nil
}

// Delete removes one message.
func (r *MessageRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM messages WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrMessageNotFound
	}
	return nil
}

// DeleteByChannel removes every stored message of a channel.
func (r *MessageRepo) DeleteByChannel(ctx context.Context, channelID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM messages WHERE channel_id = ?`, channelID)
	return err
}
