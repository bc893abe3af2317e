package domain

import "time"

// GameResult - outcome from the local user's point of view.
type GameResult string

const (
	GameResultWin  GameResult = "win"
	GameResultLose GameResult = "lose"
	GameResultDraw GameResult = "draw"
)

// GameHistory - one completed mini-game match. The opponent is the simulated
// counterpart today; OpponentKind leaves room for real peers later.
type GameHistory struct {
	ID            int64          `db:"id" json:"id"`
	UserID        int64          `db:"user_id" json:"user_id"`
	GameType      string         `db:"game_type" json:"game_type"`
	OpponentKind  string         `db:"opponent_kind" json:"opponent_kind"`
	Result        GameResult     `db:"result" json:"result"`
	PlayerScore   int            `db:"player_score" json:"player_score"`
	OpponentScore int            `db:"opponent_score" json:"opponent_score"`
	Rounds        int            `db:"rounds" json:"rounds"`
	Details       map[string]any `db:"details" json:"details,omitempty"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
}

const OpponentKindSimulated = "simulated"

// GameStats aggregates a user's history.
type GameStats struct {
	Played int64 `json:"played"`
	Wins   int64 `json:"wins"`
	Losses int64 `json:"losses"`
	Draws  int64 `json:"draws"`
}
