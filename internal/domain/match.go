package domain

import "time"

// SwipeDirection - right is a like, left is a pass.
type SwipeDirection string

const (
	SwipeRight SwipeDirection = "right"
	SwipeLeft  SwipeDirection = "left"
)

type Swipe struct {
	ID        int64          `db:"id" json:"id"`
	SwiperID  int64          `db:"swiper_id" json:"swiper_id"`
	TargetID  int64          `db:"target_id" json:"target_id"`
	Direction SwipeDirection `db:"direction" json:"direction"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
}

// Match records two users who swiped right on each other. UserAID is always
// the smaller id so the pair is unique regardless of who liked last.
type Match struct {
	ID        int64     `db:"id" json:"id"`
	UserAID   int64     `db:"user_a_id" json:"user_a_id"`
	UserBID   int64     `db:"user_b_id" json:"user_b_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// PeerOf returns the other user of the pair, or 0 when userID is not part of
// the match.
func (m *Match) PeerOf(userID int64) int64 {
	switch userID {
	case m.UserAID:
		return m.UserBID
	case m.UserBID:
		return m.UserAID
	default:
		return 0
	}
}
