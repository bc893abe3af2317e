package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"sparkmatch/internal/domain"
	"sparkmatch/internal/logger"
	"sparkmatch/internal/minigame"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ErrNoActiveGame     = errors.New("no active game")
	ErrActiveGameExists = errors.New("you already have an active game")
	ErrWrongGame        = errors.New("action does not apply to this game")
)

var (
	gamesStarted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "minigame_sessions_started_total",
			Help: "Mini-game sessions started, by game type",
		},
		[]string{"game"},
	)
	gamesCompleted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "minigame_sessions_completed_total",
			Help: "Mini-game sessions played to completion, by game type and winner",
		},
		[]string{"game", "winner"},
	)
)

func init() {
	prometheus.MustRegister(gamesStarted, gamesCompleted)
}

// HistoryRecorder is the slice of storage the session service needs.
// *repository.GameHistoryRepository satisfies it.
type HistoryRecorder interface {
	Create(ctx context.Context, gh *domain.GameHistory) error
}

// GameSession is one user's active mini-game: either a turn-engine match or
// a UNO game, never both.
type GameSession struct {
	ID        string
	UserID    int64
	Game      minigame.GameType
	CreatedAt time.Time

	match *minigame.Match
	uno   *minigame.UnoGame

	mu         sync.Mutex
	recorded   bool
	lastActive time.Time
}

func (s *GameSession) touch() {
	s.mu.Lock()
	s.lastActive = time.Now()
	s.mu.Unlock()
}

func (s *GameSession) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastActive)
}

func (s *GameSession) active() bool {
	if s.uno != nil {
		return s.uno.IsActive()
	}
	return !s.match.Completed()
}

// GameSessionService keeps the active mini-game per user in memory, exactly
// like a screen keeps its match state: created on start, discarded on quit,
// recorded to history on completion. Abandoned sessions are reaped, not
// persisted.
type GameSessionService struct {
	mu      sync.RWMutex
	active  map[int64]*GameSession
	history HistoryRecorder
}

func NewGameSessionService(history HistoryRecorder) *GameSessionService {
	s := &GameSessionService{
		active:  make(map[int64]*GameSession),
		history: history,
	}
	go s.reapAbandoned()
	return s
}

// Start creates a session for the given game type. A non-nil resume snapshot
// restores a previously persisted match instead of starting fresh.
func (s *GameSessionService) Start(userID int64, gt minigame.GameType, resume *minigame.Snapshot) (*GameSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.active[userID]; ok && existing.active() {
		return nil, ErrActiveGameExists
	}

	now := time.Now()
	sess := &GameSession{
		ID:         uuid.New().String()[:8],
		UserID:     userID,
		Game:       gt,
		CreatedAt:  now,
		lastActive: now,
	}

	if gt == minigame.GameUno {
		sess.uno = minigame.NewUnoGame(sess.ID, userID, nil)
	} else {
		cfg, err := minigame.NewConfig(gt)
		if err != nil {
			return nil, err
		}

		cb := minigame.Callbacks{
			OnComplete: func(winner minigame.Party) {
				s.onComplete(sess, winner)
			},
		}

		var m *minigame.Match
		if resume != nil {
			m, err = minigame.Resume(cfg, *resume, cb)
		} else {
			m, err = minigame.New(cfg, cb)
		}
		if err != nil {
			return nil, err
		}
		sess.match = m
	}

	s.active[userID] = sess
	gamesStarted.WithLabelValues(string(gt)).Inc()
	return sess, nil
}

func (s *GameSessionService) get(userID int64) (*GameSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.active[userID]
	if !ok {
		return nil, ErrNoActiveGame
	}
	sess.touch()
	return sess, nil
}

func (s *GameSessionService) prompt(userID int64) (*GameSession, error) {
	sess, err := s.get(userID)
	if err != nil {
		return nil, err
	}
	if sess.match == nil {
		return nil, ErrWrongGame
	}
	return sess, nil
}

// Begin moves the active match into the answering phase.
func (s *GameSessionService) Begin(userID int64) (minigame.Snapshot, error) {
	sess, err := s.prompt(userID)
	if err != nil {
		return minigame.Snapshot{}, err
	}
	if err := sess.match.BeginAnswering(); err != nil {
		return minigame.Snapshot{}, err
	}
	return sess.match.Snapshot(), nil
}

// Submit records the player's answer for the current round.
func (s *GameSessionService) Submit(userID int64, a minigame.Answer) (minigame.Snapshot, error) {
	sess, err := s.prompt(userID)
	if err != nil {
		return minigame.Snapshot{}, err
	}
	if err := sess.match.Submit(a); err != nil {
		return minigame.Snapshot{}, err
	}
	return sess.match.Snapshot(), nil
}

// Skip forfeits the player's current turn.
func (s *GameSessionService) Skip(userID int64) (minigame.Snapshot, error) {
	sess, err := s.prompt(userID)
	if err != nil {
		return minigame.Snapshot{}, err
	}
	if err := sess.match.Skip(); err != nil {
		return minigame.Snapshot{}, err
	}
	return sess.match.Snapshot(), nil
}

// Next advances a revealed round to the next prompt.
func (s *GameSessionService) Next(userID int64) (minigame.Snapshot, error) {
	sess, err := s.prompt(userID)
	if err != nil {
		return minigame.Snapshot{}, err
	}
	if err := sess.match.NextRound(); err != nil {
		return minigame.Snapshot{}, err
	}
	return sess.match.Snapshot(), nil
}

// State returns the current state of whichever game the user is playing.
func (s *GameSessionService) State(userID int64) (any, error) {
	sess, err := s.get(userID)
	if err != nil {
		return nil, err
	}
	if sess.uno != nil {
		return sess.uno.State(), nil
	}
	return sess.match.Snapshot(), nil
}

// Quit abandons the session. An unfinished match is simply discarded; only
// completed matches make it into history.
func (s *GameSessionService) Quit(userID int64) error {
	s.mu.Lock()
	sess, ok := s.active[userID]
	if ok {
		delete(s.active, userID)
	}
	s.mu.Unlock()

	if !ok {
		return ErrNoActiveGame
	}
	if sess.match != nil {
		sess.match.Stop()
	}
	return nil
}

// UnoPlay plays the card at the given hand index.
func (s *GameSessionService) UnoPlay(userID int64, index int) (map[string]any, error) {
	return s.unoMove(userID, func(g *minigame.UnoGame) error { return g.Play(index) })
}

// UnoDraw draws a card and passes the turn.
func (s *GameSessionService) UnoDraw(userID int64) (map[string]any, error) {
	return s.unoMove(userID, func(g *minigame.UnoGame) error { return g.Draw() })
}

func (s *GameSessionService) unoMove(userID int64, move func(*minigame.UnoGame) error) (map[string]any, error) {
	sess, err := s.get(userID)
	if err != nil {
		return nil, err
	}
	if sess.uno == nil {
		return nil, ErrWrongGame
	}

	if err := move(sess.uno); err != nil {
		return nil, err
	}

	if !sess.uno.IsActive() {
		s.onComplete(sess, sess.uno.Winner)
	}
	return sess.uno.State(), nil
}

// onComplete records the finished match and bumps metrics. Runs at most once
// per session; storage errors are logged, not surfaced, since the match
// outcome already reached the player.
func (s *GameSessionService) onComplete(sess *GameSession, winner minigame.Party) {
	sess.mu.Lock()
	if sess.recorded {
		sess.mu.Unlock()
		return
	}
	sess.recorded = true
	sess.mu.Unlock()

	gamesCompleted.WithLabelValues(string(sess.Game), string(winner)).Inc()

	result := domain.GameResultLose
	if winner == minigame.PartyPlayer {
		result = domain.GameResultWin
	}

	gh := &domain.GameHistory{
		UserID:       sess.UserID,
		GameType:     string(sess.Game),
		OpponentKind: domain.OpponentKindSimulated,
		Result:       result,
	}
	if sess.match != nil {
		snap := sess.match.Snapshot()
		gh.PlayerScore = snap.PlayerScore
		gh.OpponentScore = snap.OpponentScore
		gh.Rounds = snap.Round
	}

	if s.history == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.history.Create(ctx, gh); err != nil {
			logger.Error("failed to record game history",
				"user_id", sess.UserID, "game", sess.Game, "error", err)
		}
	}()
}

// reapAbandoned drops sessions untouched for over an hour. Every action on a
// session refreshes its activity stamp, so long matches stay alive as long as
// the player keeps playing.
func (s *GameSessionService) reapAbandoned() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		s.reapIdle(time.Hour)
	}
}

func (s *GameSessionService) reapIdle(maxIdle time.Duration) {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for userID, sess := range s.active {
		if sess.idleSince(now) > maxIdle {
			if sess.match != nil {
				sess.match.Stop()
			}
			delete(s.active, userID)
		}
	}
}

// ActiveCount reports how many sessions are live, for health reporting.
func (s *GameSessionService) ActiveCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.active)
}
