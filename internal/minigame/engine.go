package minigame

import (
	"errors"
	"math/rand"
	"sync"
	"time"
)

var (
	ErrStopped    = errors.New("match stopped")
	ErrWrongPhase = errors.New("action not valid in current phase")
)

const (
	defaultOpponentDelayMin = 1500 * time.Millisecond
	defaultOpponentDelayMax = 3 * time.Second
	defaultTickInterval     = time.Second
)

// Config describes one mini-game: its content bank, pacing and rules. The
// five prompt games differ only in what they put here.
type Config struct {
	Game      GameType
	Bank      []ContentItem
	MaxRounds int

	// AnswerTimeout of zero means the game is untimed.
	AnswerTimeout time.Duration

	// StartingLives above zero switches the match to lives mode: scores
	// start here and the match ends early when either party hits zero.
	StartingLives int

	OpponentDelayMin time.Duration
	OpponentDelayMax time.Duration

	Scoring  ScoringRule
	Opponent OpponentStrategy

	// TieBreak names the party declared winner on equal totals.
	// Defaults to PartyPlayer.
	TieBreak Party

	// TickInterval is the countdown granularity. Defaults to one second;
	// tests shrink it to keep timed scenarios fast.
	TickInterval time.Duration

	// Rand drives content selection, opponent delays and opponent answers.
	// Defaults to a time-seeded source.
	Rand *rand.Rand
}

// Callbacks are the host-facing contract. OnComplete fires exactly once per
// match; OnUpdate fires on every state change.
type Callbacks struct {
	OnComplete func(winner Party)
	OnUpdate   func(Snapshot)
}

// Match is one play-through of a mini-game against the simulated opponent.
// All state is guarded by mu; timer and opponent callbacks re-check the
// sequence counter under the lock so a stale callback can never mutate state.
type Match struct {
	mu  sync.Mutex
	cfg Config
	cb  Callbacks
	rng *rand.Rand

	phase          Phase
	round          int
	active         Party
	used           map[string]bool
	current        ContentItem
	playerAnswer   Answer
	opponentAnswer Answer
	playerScore    int
	opponentScore  int
	timeRemaining  int
	winner         Party

	// seq is bumped on every transition that invalidates pending timers.
	seq           int
	stopped       bool
	completeFired bool
	opponentTimer *time.Timer
	quit          chan struct{}
}

// New creates a match in the prompting phase with the first content item
// already selected.
func New(cfg Config, cb Callbacks) (*Match, error) {
	if err := normalize(&cfg); err != nil {
		return nil, err
	}

	m := &Match{
		cfg:    cfg,
		cb:     cb,
		rng:    cfg.Rand,
		phase:  PhasePrompting,
		round:  1,
		active: PartyPlayer,
		used:   make(map[string]bool),
		quit:   make(chan struct{}),
	}
	if cfg.StartingLives > 0 {
		m.playerScore = cfg.StartingLives
		m.opponentScore = cfg.StartingLives
	}
	m.current = pickContent(cfg.Bank, m.used, m.rng)
	return m, nil
}

func normalize(cfg *Config) error {
	if len(cfg.Bank) == 0 {
		return errors.New("content bank is empty")
	}
	if cfg.MaxRounds <= 0 {
		return errors.New("max rounds must be positive")
	}
	if cfg.Scoring == nil {
		return errors.New("scoring rule required")
	}
	if cfg.Opponent == nil {
		return errors.New("opponent strategy required")
	}
	if cfg.OpponentDelayMin <= 0 {
		cfg.OpponentDelayMin = defaultOpponentDelayMin
	}
	if cfg.OpponentDelayMax <= 0 {
		cfg.OpponentDelayMax = defaultOpponentDelayMax
	}
	if cfg.OpponentDelayMax < cfg.OpponentDelayMin {
		cfg.OpponentDelayMax = cfg.OpponentDelayMin
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = defaultTickInterval
	}
	if cfg.TieBreak == "" {
		cfg.TieBreak = PartyPlayer
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return nil
}

// BeginAnswering moves the match from prompting to answering and arms the
// countdown for timed games.
func (m *Match) BeginAnswering() error {
	m.mu.Lock()
	if m.stopped {
		m.mu.Unlock()
		return ErrStopped
	}
	if m.phase != PhasePrompting {
		m.mu.Unlock()
		return ErrWrongPhase
	}

	m.phase = PhaseAnswering
	m.seq++
	if m.cfg.AnswerTimeout > 0 {
		m.timeRemaining = int(m.cfg.AnswerTimeout / m.cfg.TickInterval)
		go m.runCountdown(m.seq)
	}

	snap := m.snapshotLocked()
	m.mu.Unlock()
	m.notify(snap)
	return nil
}

// Submit records the player's answer. Submitting straight from the prompting
// phase is allowed for games that skip the explicit "start answering" step.
// A submission that loses the race against timer expiry returns ErrWrongPhase
// and changes nothing.
func (m *Match) Submit(a Answer) error {
	m.mu.Lock()
	if m.stopped {
		m.mu.Unlock()
		return ErrStopped
	}
	if m.phase != PhaseAnswering && m.phase != PhasePrompting {
		m.mu.Unlock()
		return ErrWrongPhase
	}

	a.Set = true
	m.seq++ // deactivate any running countdown before recording
	m.recordPlayerLocked(a)

	snap := m.snapshotLocked()
	m.mu.Unlock()
	m.notify(snap)
	return nil
}

// Skip forfeits the player's turn; it records the same placeholder answer as
// timer expiry.
func (m *Match) Skip() error {
	return m.Submit(ForfeitAnswer())
}

// recordPlayerLocked stores the answer, enters awaiting_opponent and
// schedules the simulated opponent. Caller holds mu and has already bumped
// seq.
func (m *Match) recordPlayerLocked(a Answer) {
	m.playerAnswer = a
	m.phase = PhaseAwaitingOpponent
	m.timeRemaining = 0

	delay := m.cfg.OpponentDelayMin
	if spread := m.cfg.OpponentDelayMax - m.cfg.OpponentDelayMin; spread > 0 {
		delay += time.Duration(m.rng.Int63n(int64(spread)))
	}

	seq := m.seq
	m.opponentTimer = time.AfterFunc(delay, func() {
		m.opponentArrive(seq)
	})
}

// runCountdown decrements the remaining time once per tick while the match
// stays in the answering phase of the same turn. On zero it takes the same
// forfeit path as an explicit skip.
func (m *Match) runCountdown(seq int) {
	ticker := time.NewTicker(m.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.quit:
			return
		case <-ticker.C:
			if !m.tick(seq) {
				return
			}
		}
	}
}

func (m *Match) tick(seq int) bool {
	m.mu.Lock()
	if m.stopped || seq != m.seq || m.phase != PhaseAnswering {
		m.mu.Unlock()
		return false
	}

	m.timeRemaining--
	if m.timeRemaining > 0 {
		snap := m.snapshotLocked()
		m.mu.Unlock()
		m.notify(snap)
		return true
	}

	// Expired. Bump seq first so a manual submit arriving behind this tick
	// sees the phase change and records nothing.
	m.seq++
	m.recordPlayerLocked(ForfeitAnswer())

	snap := m.snapshotLocked()
	m.mu.Unlock()
	m.notify(snap)
	return false
}

// opponentArrive is the delayed opponent-simulator callback. Stale arrivals
// (stopped match, superseded turn) are discarded without touching state.
func (m *Match) opponentArrive(seq int) {
	m.mu.Lock()
	if m.stopped || seq != m.seq || m.phase != PhaseAwaitingOpponent {
		m.mu.Unlock()
		return
	}

	m.opponentAnswer = m.cfg.Opponent.Respond(m.current, m.rng)
	m.phase = PhaseRevealing
	m.seq++

	pd, od := m.cfg.Scoring.Score(m.current, m.playerAnswer, m.opponentAnswer)
	m.playerScore += pd
	m.opponentScore += od

	done := m.round >= m.cfg.MaxRounds
	if m.cfg.StartingLives > 0 && (m.playerScore <= 0 || m.opponentScore <= 0) {
		done = true
	}

	var winner Party
	fireComplete := false
	if done {
		m.phase = PhaseCompleted
		m.winner = m.winnerLocked()
		winner = m.winner
		if !m.completeFired {
			m.completeFired = true
			fireComplete = true
		}
	}

	snap := m.snapshotLocked()
	m.mu.Unlock()

	m.notify(snap)
	if fireComplete && m.cb.OnComplete != nil {
		m.cb.OnComplete(winner)
	}
}

// NextRound advances from revealing to the next round's prompting phase:
// answers cleared, party alternated, fresh content selected.
func (m *Match) NextRound() error {
	m.mu.Lock()
	if m.stopped {
		m.mu.Unlock()
		return ErrStopped
	}
	if m.phase != PhaseRevealing {
		m.mu.Unlock()
		return ErrWrongPhase
	}

	m.round++
	m.active = m.active.Other()
	m.playerAnswer = Answer{}
	m.opponentAnswer = Answer{}
	m.current = pickContent(m.cfg.Bank, m.used, m.rng)
	m.phase = PhasePrompting
	m.seq++

	snap := m.snapshotLocked()
	m.mu.Unlock()
	m.notify(snap)
	return nil
}

func (m *Match) winnerLocked() Party {
	switch {
	case m.playerScore > m.opponentScore:
		return PartyPlayer
	case m.opponentScore > m.playerScore:
		return PartyOpponent
	default:
		return m.cfg.TieBreak
	}
}

// Stop tears the match down. Pending timer and opponent callbacks are
// discarded; none of them will mutate state or fire host callbacks after
// Stop returns.
func (m *Match) Stop() {
	m.mu.Lock()
	if m.stopped {
		m.mu.Unlock()
		return
	}
	m.stopped = true
	m.seq++
	if m.opponentTimer != nil {
		m.opponentTimer.Stop()
	}
	close(m.quit)
	m.mu.Unlock()
}

// Completed reports whether the match reached its terminal phase.
func (m *Match) Completed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.phase == PhaseCompleted
}

// Winner is only meaningful once Completed reports true.
func (m *Match) Winner() Party {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.winner
}

func (m *Match) notify(snap Snapshot) {
	if m.cb.OnUpdate != nil {
		m.cb.OnUpdate(snap)
	}
}
