package repository

import (
	"context"
	"strconv"

	"sparkmatch/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type MessageRepository struct {
	db *pgxpool.Pool
}

func NewMessageRepository(db *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(ctx context.Context, m *domain.Message) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO messages (match_id, sender_id, body)
		 VALUES ($1, $2, $3)
		 RETURNING id, sent_at`,
		m.MatchID, m.SenderID, m.Body,
	).Scan(&m.ID, &m.SentAt)
}

// ListByMatch returns the newest messages first. A beforeID of zero starts
// from the latest message; otherwise only older messages are returned, which
// gives cheap keyset pagination.
func (r *MessageRepository) ListByMatch(ctx context.Context, matchID int64, beforeID int64, limit int) ([]domain.Message, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	query := `SELECT id, match_id, sender_id, body, sent_at, read_at
		  FROM messages WHERE match_id = $1`
	args := []any{matchID}
	if beforeID > 0 {
		query += ` AND id < $2`
		args = append(args, beforeID)
	}
	query += ` ORDER BY id DESC LIMIT ` + strconv.Itoa(limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []domain.Message
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.ID, &m.MatchID, &m.SenderID, &m.Body, &m.SentAt, &m.ReadAt); err != nil {
			return nil, err
		}
		res = append(res, m)
	}
	return res, rows.Err()
}

// MarkRead stamps every unread message sent to readerID within the match.
func (r *MessageRepository) MarkRead(ctx context.Context, matchID, readerID int64) error {
	_, err := r.db.Exec(ctx,
		`UPDATE messages SET read_at = now()
		 WHERE match_id = $1 AND sender_id != $2 AND read_at IS NULL`,
		matchID, readerID)
	return err
}

// UnreadCount returns how many messages await the reader across all matches.
func (r *MessageRepository) UnreadCount(ctx context.Context, readerID int64) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM messages msg
		JOIN matches m ON m.id = msg.match_id
		WHERE (m.user_a_id = $1 OR m.user_b_id = $1)
		  AND msg.sender_id != $1 AND msg.read_at IS NULL`, readerID).Scan(&n)
	return n, err
}
