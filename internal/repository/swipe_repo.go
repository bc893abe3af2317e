package repository

import (
	"context"
	"errors"

	"sparkmatch/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrAlreadySwiped = errors.New("already swiped on this user")

type SwipeRepository struct {
	db *pgxpool.Pool
}

func NewSwipeRepository(db *pgxpool.Pool) *SwipeRepository {
	return &SwipeRepository{db: db}
}

func (r *SwipeRepository) Create(ctx context.Context, s *domain.Swipe) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO swipes (swiper_id, target_id, direction)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		s.SwiperID, s.TargetID, s.Direction,
	).Scan(&s.ID, &s.CreatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrAlreadySwiped
	}
	return err
}

// HasLiked reports whether swiper already swiped right on target.
func (r *SwipeRepository) HasLiked(ctx context.Context, swiperID, targetID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM swipes
			WHERE swiper_id = $1 AND target_id = $2 AND direction = 'right'
		 )`, swiperID, targetID).Scan(&exists)
	return exists, err
}

// CreateMatch stores a mutual-like pair, normalized so the smaller id is
// always user_a. Returns the existing match when the pair is already stored.
func (r *SwipeRepository) CreateMatch(ctx context.Context, userA, userB int64) (*domain.Match, error) {
	if userA > userB {
		userA, userB = userB, userA
	}

	m := &domain.Match{UserAID: userA, UserBID: userB}
	err := r.db.QueryRow(ctx,
		`INSERT INTO matches (user_a_id, user_b_id)
		 VALUES ($1, $2)
		 ON CONFLICT (user_a_id, user_b_id) DO UPDATE SET user_a_id = EXCLUDED.user_a_id
		 RETURNING id, created_at`,
		userA, userB,
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *SwipeRepository) GetMatch(ctx context.Context, matchID int64) (*domain.Match, error) {
	var m domain.Match
	err := r.db.QueryRow(ctx,
		`SELECT id, user_a_id, user_b_id, created_at FROM matches WHERE id = $1`,
		matchID,
	).Scan(&m.ID, &m.UserAID, &m.UserBID, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// MatchEntry pairs a match with the peer's profile for listing.
type MatchEntry struct {
	Match domain.Match `json:"match"`
	Peer  domain.User  `json:"peer"`
}

func (r *SwipeRepository) ListMatches(ctx context.Context, userID int64) ([]MatchEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT m.id, m.user_a_id, m.user_b_id, m.created_at,
		       u.id, u.email, u.password_hash, u.display_name, u.birthdate, u.gender,
		       COALESCE(u.bio, ''), COALESCE(u.interests, '{}'), COALESCE(u.photo_urls, '{}'), u.created_at
		FROM matches m
		JOIN users u ON u.id = CASE WHEN m.user_a_id = $1 THEN m.user_b_id ELSE m.user_a_id END
		WHERE m.user_a_id = $1 OR m.user_b_id = $1
		ORDER BY m.created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []MatchEntry
	for rows.Next() {
		var e MatchEntry
		if err := rows.Scan(
			&e.Match.ID, &e.Match.UserAID, &e.Match.UserBID, &e.Match.CreatedAt,
			&e.Peer.ID, &e.Peer.Email, &e.Peer.PasswordHash, &e.Peer.DisplayName,
			&e.Peer.Birthdate, &e.Peer.Gender, &e.Peer.Bio, &e.Peer.Interests,
			&e.Peer.PhotoURLs, &e.Peer.CreatedAt,
		); err != nil {
			return nil, err
		}
		e.Peer.PasswordHash = ""
		res = append(res, e)
	}
	return res, rows.Err()
}
