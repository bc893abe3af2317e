package repository

import (
	"context"
	"errors"

	"sparkmatch/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrEmailTaken = errors.New("email already registered")
)

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, email, password_hash, display_name, birthdate, gender,
	COALESCE(bio, ''), COALESCE(interests, '{}'), COALESCE(photo_urls, '{}'), created_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.DisplayName,
		&u.Birthdate,
		&u.Gender,
		&u.Bio,
		&u.Interests,
		&u.PhotoURLs,
		&u.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO users (email, password_hash, display_name, birthdate, gender, bio, interests, photo_urls)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at`,
		u.Email,
		u.PasswordHash,
		u.DisplayName,
		u.Birthdate,
		u.Gender,
		u.Bio,
		u.Interests,
		u.PhotoURLs,
	).Scan(&u.ID, &u.CreatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrEmailTaken
	}
	return err
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email))
}

// UpdateProfile overwrites the editable profile fields.
func (r *UserRepository) UpdateProfile(ctx context.Context, u *domain.User) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE users
		 SET display_name = $1, bio = $2, gender = $3, interests = $4, photo_urls = $5
		 WHERE id = $6`,
		u.DisplayName, u.Bio, u.Gender, u.Interests, u.PhotoURLs, u.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Candidates returns users the given user has not swiped on yet, newest
// first. This backs the discovery deck.
func (r *UserRepository) Candidates(ctx context.Context, userID int64, limit int) ([]domain.User, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+userColumns+`
		FROM users u
		WHERE u.id != $1
		  AND NOT EXISTS (
			SELECT 1 FROM swipes s WHERE s.swiper_id = $1 AND s.target_id = u.id
		  )
		ORDER BY u.created_at DESC
		LIMIT $2`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, *u)
	}
	return res, rows.Err()
}
