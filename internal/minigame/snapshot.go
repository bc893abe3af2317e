package minigame

import "errors"

// Snapshot is the externally visible match state. Hosts that want to persist
// progress across navigation store the latest snapshot and rebuild the match
// with Resume; the engine itself never needs it.
type Snapshot struct {
	Game           GameType     `json:"game"`
	Phase          Phase        `json:"phase"`
	Round          int          `json:"round"`
	MaxRounds      int          `json:"max_rounds"`
	ActiveParty    Party        `json:"active_party"`
	Current        *ContentItem `json:"current,omitempty"`
	UsedContentIDs []string     `json:"used_content_ids,omitempty"`
	PlayerAnswer   *Answer      `json:"player_answer,omitempty"`
	OpponentAnswer *Answer      `json:"opponent_answer,omitempty"`
	PlayerScore    int          `json:"player_score"`
	OpponentScore  int          `json:"opponent_score"`
	TimeRemaining  int          `json:"time_remaining,omitempty"`
	Winner         Party        `json:"winner,omitempty"`
}

// Snapshot returns a copy of the current state.
func (m *Match) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

func (m *Match) snapshotLocked() Snapshot {
	snap := Snapshot{
		Game:          m.cfg.Game,
		Phase:         m.phase,
		Round:         m.round,
		MaxRounds:     m.cfg.MaxRounds,
		ActiveParty:   m.active,
		PlayerScore:   m.playerScore,
		OpponentScore: m.opponentScore,
		TimeRemaining: m.timeRemaining,
		Winner:        m.winner,
	}

	current := m.current
	snap.Current = &current

	for id := range m.used {
		snap.UsedContentIDs = append(snap.UsedContentIDs, id)
	}
	if m.playerAnswer.Set {
		a := m.playerAnswer
		snap.PlayerAnswer = &a
	}
	// The opponent's answer is only visible once the round is revealed.
	if m.opponentAnswer.Set && (m.phase == PhaseRevealing || m.phase == PhaseCompleted) {
		a := m.opponentAnswer
		snap.OpponentAnswer = &a
	}
	return snap
}

// Resume rebuilds a match from a previously captured snapshot. A match
// resumed mid-countdown continues with the remaining time; one resumed while
// awaiting the opponent gets a fresh simulator delay.
func Resume(cfg Config, snap Snapshot, cb Callbacks) (*Match, error) {
	if err := normalize(&cfg); err != nil {
		return nil, err
	}
	if snap.Round < 1 || snap.Round > cfg.MaxRounds {
		return nil, errors.New("snapshot round out of range")
	}

	m := &Match{
		cfg:           cfg,
		cb:            cb,
		rng:           cfg.Rand,
		phase:         snap.Phase,
		round:         snap.Round,
		active:        snap.ActiveParty,
		used:          make(map[string]bool),
		playerScore:   snap.PlayerScore,
		opponentScore: snap.OpponentScore,
		timeRemaining: snap.TimeRemaining,
		winner:        snap.Winner,
		quit:          make(chan struct{}),
	}
	if m.active == "" {
		m.active = PartyPlayer
	}
	for _, id := range snap.UsedContentIDs {
		m.used[id] = true
	}
	if snap.Current != nil {
		m.current = *snap.Current
	} else {
		m.current = pickContent(cfg.Bank, m.used, m.rng)
	}
	if snap.PlayerAnswer != nil {
		m.playerAnswer = *snap.PlayerAnswer
	}
	if snap.OpponentAnswer != nil {
		m.opponentAnswer = *snap.OpponentAnswer
	}

	switch snap.Phase {
	case PhaseAnswering:
		if cfg.AnswerTimeout > 0 {
			if m.timeRemaining <= 0 {
				m.timeRemaining = int(cfg.AnswerTimeout / cfg.TickInterval)
			}
			m.seq++
			go m.runCountdown(m.seq)
		}
	case PhaseAwaitingOpponent:
		if !m.playerAnswer.Set {
			m.playerAnswer = ForfeitAnswer()
		}
		m.seq++
		m.recordPlayerLocked(m.playerAnswer)
	case PhaseCompleted:
		m.completeFired = true
	case PhasePrompting, PhaseRevealing:
		// idle until the host acts
	default:
		return nil, errors.New("snapshot phase unknown")
	}

	return m, nil
}
