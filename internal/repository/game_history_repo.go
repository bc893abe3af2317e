package repository

import (
	"context"

	"sparkmatch/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type GameHistoryRepository struct {
	db *pgxpool.Pool
}

func NewGameHistoryRepository(db *pgxpool.Pool) *GameHistoryRepository {
	return &GameHistoryRepository{db: db}
}

func (r *GameHistoryRepository) Create(ctx context.Context, gh *domain.GameHistory) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO game_history
		 (user_id, game_type, opponent_kind, result, player_score, opponent_score, rounds, details)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at`,
		gh.UserID,
		gh.GameType,
		gh.OpponentKind,
		gh.Result,
		gh.PlayerScore,
		gh.OpponentScore,
		gh.Rounds,
		gh.Details,
	).Scan(&gh.ID, &gh.CreatedAt)
}

func (r *GameHistoryRepository) GetByUser(ctx context.Context, userID int64, limit int) ([]domain.GameHistory, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, game_type, opponent_kind, result,
		        player_score, opponent_score, rounds, details, created_at
		 FROM game_history
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []domain.GameHistory
	for rows.Next() {
		var gh domain.GameHistory
		if err := rows.Scan(
			&gh.ID, &gh.UserID, &gh.GameType, &gh.OpponentKind, &gh.Result,
			&gh.PlayerScore, &gh.OpponentScore, &gh.Rounds, &gh.Details, &gh.CreatedAt,
		); err != nil {
			return nil, err
		}
		res = append(res, gh)
	}
	return res, rows.Err()
}

func (r *GameHistoryRepository) GetUserStats(ctx context.Context, userID int64) (*domain.GameStats, error) {
	var s domain.GameStats
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE result = 'win'),
		       COUNT(*) FILTER (WHERE result = 'lose'),
		       COUNT(*) FILTER (WHERE result = 'draw')
		FROM game_history
		WHERE user_id = $1`, userID).Scan(&s.Played, &s.Wins, &s.Losses, &s.Draws)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
