package domain

import "time"

type Message struct {
	ID       int64      `db:"id" json:"id"`
	MatchID  int64      `db:"match_id" json:"match_id"`
	SenderID int64      `db:"sender_id" json:"sender_id"`
	Body     string     `db:"body" json:"body"`
	SentAt   time.Time  `db:"sent_at" json:"sent_at"`
	ReadAt   *time.Time `db:"read_at" json:"read_at,omitempty"`
}
