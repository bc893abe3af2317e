package minigame

import (
	"math/rand"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fastConfig keeps timed scenarios in the millisecond range.
func fastConfig() Config {
	return Config{
		Game:             GameRapidFire,
		Bank:             testBank(12),
		MaxRounds:        3,
		OpponentDelayMin: time.Millisecond,
		OpponentDelayMax: 2 * time.Millisecond,
		Scoring:          EngagementRule{LengthCap: 40},
		Opponent:         CannedText{Responses: []string{"sounds good"}},
		Rand:             rand.New(rand.NewSource(7)),
	}
}

func waitPhase(t *testing.T, m *Match, want Phase) Snapshot {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		snap := m.Snapshot()
		if snap.Phase == want {
			return snap
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timed out waiting for phase %s (at %s)", want, m.Snapshot().Phase)
	return Snapshot{}
}

// zeroRule forces ties.
type zeroRule struct{}

func (zeroRule) Score(ContentItem, Answer, Answer) (int, int) { return 0, 0 }

func TestMatch_NewStartsPrompting(t *testing.T) {
	m, err := New(fastConfig(), Callbacks{})
	require.NoError(t, err)

	snap := m.Snapshot()
	assert.Equal(t, PhasePrompting, snap.Phase)
	assert.Equal(t, 1, snap.Round)
	assert.Equal(t, PartyPlayer, snap.ActiveParty)
	require.NotNil(t, snap.Current)
	assert.NotEmpty(t, snap.Current.ID)
}

func TestMatch_ConfigValidation(t *testing.T) {
	cfg := fastConfig()
	cfg.Bank = nil
	_, err := New(cfg, Callbacks{})
	assert.Error(t, err)

	cfg = fastConfig()
	cfg.MaxRounds = 0
	_, err = New(cfg, Callbacks{})
	assert.Error(t, err)

	cfg = fastConfig()
	cfg.Scoring = nil
	_, err = New(cfg, Callbacks{})
	assert.Error(t, err)

	cfg = fastConfig()
	cfg.Opponent = nil
	_, err = New(cfg, Callbacks{})
	assert.Error(t, err)
}

func TestMatch_FullFlow(t *testing.T) {
	var completions atomic.Int32
	var winner Party
	var mu sync.Mutex

	m, err := New(fastConfig(), Callbacks{
		OnComplete: func(w Party) {
			completions.Add(1)
			mu.Lock()
			winner = w
			mu.Unlock()
		},
	})
	require.NoError(t, err)

	seenContent := make(map[string]bool)
	for round := 1; round <= 3; round++ {
		snap := m.Snapshot()
		assert.Equal(t, PhasePrompting, snap.Phase)
		assert.Equal(t, round, snap.Round)
		assert.False(t, seenContent[snap.Current.ID], "content repeated within match")
		seenContent[snap.Current.ID] = true

		require.NoError(t, m.BeginAnswering())
		require.NoError(t, m.Submit(TextAnswer("my answer")))

		if round < 3 {
			snap = waitPhase(t, m, PhaseRevealing)
			require.NotNil(t, snap.OpponentAnswer, "opponent answer revealed")
			require.NoError(t, m.NextRound())
		} else {
			snap = waitPhase(t, m, PhaseCompleted)
			require.NotNil(t, snap.OpponentAnswer)
		}
	}

	require.True(t, m.Completed())
	assert.Equal(t, int32(1), completions.Load())

	mu.Lock()
	assert.Equal(t, m.Winner(), winner)
	mu.Unlock()

	final := m.Snapshot()
	assert.Positive(t, final.PlayerScore)
	assert.Positive(t, final.OpponentScore)
}

func TestMatch_TurnAlternation(t *testing.T) {
	m, err := New(fastConfig(), Callbacks{})
	require.NoError(t, err)

	var parties []Party
	for round := 1; round <= 3; round++ {
		parties = append(parties, m.Snapshot().ActiveParty)
		require.NoError(t, m.Submit(TextAnswer("x")))
		if round < 3 {
			waitPhase(t, m, PhaseRevealing)
			require.NoError(t, m.NextRound())
		}
	}

	assert.Equal(t, []Party{PartyPlayer, PartyOpponent, PartyPlayer}, parties)
}

func TestMatch_SubmitAllowedFromPrompting(t *testing.T) {
	m, err := New(fastConfig(), Callbacks{})
	require.NoError(t, err)

	require.NoError(t, m.Submit(TextAnswer("straight in")))
	assert.Equal(t, PhaseAwaitingOpponent, m.Snapshot().Phase)
}

func TestMatch_WrongPhaseErrors(t *testing.T) {
	m, err := New(fastConfig(), Callbacks{})
	require.NoError(t, err)

	assert.ErrorIs(t, m.NextRound(), ErrWrongPhase)

	require.NoError(t, m.BeginAnswering())
	assert.ErrorIs(t, m.BeginAnswering(), ErrWrongPhase)

	require.NoError(t, m.Submit(TextAnswer("x")))
	assert.ErrorIs(t, m.Submit(TextAnswer("again")), ErrWrongPhase)
	assert.ErrorIs(t, m.BeginAnswering(), ErrWrongPhase)
}

func TestMatch_OpponentAnswerHiddenUntilReveal(t *testing.T) {
	cfg := fastConfig()
	cfg.OpponentDelayMin = 100 * time.Millisecond
	cfg.OpponentDelayMax = 150 * time.Millisecond
	m, err := New(cfg, Callbacks{})
	require.NoError(t, err)

	require.NoError(t, m.Submit(TextAnswer("x")))

	snap := m.Snapshot()
	require.Equal(t, PhaseAwaitingOpponent, snap.Phase)
	assert.Nil(t, snap.OpponentAnswer, "opponent answer leaked before reveal")
	require.NotNil(t, snap.PlayerAnswer)

	snap = waitPhase(t, m, PhaseRevealing)
	assert.NotNil(t, snap.OpponentAnswer)
}

func TestMatch_TimerExpiryForfeits(t *testing.T) {
	cfg := fastConfig()
	cfg.AnswerTimeout = 30 * time.Millisecond
	cfg.TickInterval = 10 * time.Millisecond
	m, err := New(cfg, Callbacks{})
	require.NoError(t, err)

	require.NoError(t, m.BeginAnswering())
	snap := waitPhase(t, m, PhaseAwaitingOpponent)

	require.NotNil(t, snap.PlayerAnswer)
	assert.True(t, snap.PlayerAnswer.Forfeit, "expiry records a forfeit")

	// the losing side of the race changes nothing
	err = m.Submit(TextAnswer("too late"))
	assert.ErrorIs(t, err, ErrWrongPhase)

	snap = waitPhase(t, m, PhaseRevealing)
	require.NotNil(t, snap.PlayerAnswer)
	assert.True(t, snap.PlayerAnswer.Forfeit, "late submit must not overwrite the forfeit")
	assert.Zero(t, snap.PlayerScore)
}

func TestMatch_SubmitStopsCountdown(t *testing.T) {
	cfg := fastConfig()
	cfg.AnswerTimeout = 50 * time.Millisecond
	cfg.TickInterval = 10 * time.Millisecond
	m, err := New(cfg, Callbacks{})
	require.NoError(t, err)

	require.NoError(t, m.BeginAnswering())
	require.NoError(t, m.Submit(TextAnswer("quick")))

	snap := waitPhase(t, m, PhaseRevealing)
	assert.False(t, snap.PlayerAnswer.Forfeit, "timely submit must not be forfeited by a stale tick")
	assert.Positive(t, snap.PlayerScore)
}

func TestMatch_SkipForfeits(t *testing.T) {
	m, err := New(fastConfig(), Callbacks{})
	require.NoError(t, err)

	require.NoError(t, m.Skip())
	snap := waitPhase(t, m, PhaseRevealing)
	assert.True(t, snap.PlayerAnswer.Forfeit)
	assert.Zero(t, snap.PlayerScore)
	assert.Positive(t, snap.OpponentScore, "opponent still scores the round")
}

func TestMatch_StopDiscardsPendingCallbacks(t *testing.T) {
	var updates atomic.Int32
	var completions atomic.Int32

	cfg := fastConfig()
	cfg.MaxRounds = 1
	cfg.OpponentDelayMin = 20 * time.Millisecond
	cfg.OpponentDelayMax = 30 * time.Millisecond
	m, err := New(cfg, Callbacks{
		OnUpdate:   func(Snapshot) { updates.Add(1) },
		OnComplete: func(Party) { completions.Add(1) },
	})
	require.NoError(t, err)

	require.NoError(t, m.Submit(TextAnswer("x")))
	m.Stop()
	seen := updates.Load()

	// give the pending opponent timer a chance to fire if it was going to
	time.Sleep(60 * time.Millisecond)

	assert.Equal(t, seen, updates.Load(), "update fired after Stop")
	assert.Zero(t, completions.Load(), "completion fired after Stop")
	assert.ErrorIs(t, m.Submit(TextAnswer("y")), ErrStopped)
	assert.ErrorIs(t, m.BeginAnswering(), ErrStopped)
	assert.ErrorIs(t, m.NextRound(), ErrStopped)
}

func TestMatch_StopIsIdempotent(t *testing.T) {
	m, err := New(fastConfig(), Callbacks{})
	require.NoError(t, err)
	m.Stop()
	m.Stop()
}

func TestMatch_TieBreak(t *testing.T) {
	cfg := fastConfig()
	cfg.MaxRounds = 1
	cfg.Scoring = zeroRule{}
	m, err := New(cfg, Callbacks{})
	require.NoError(t, err)

	require.NoError(t, m.Submit(TextAnswer("x")))
	waitPhase(t, m, PhaseCompleted)
	assert.Equal(t, PartyPlayer, m.Winner(), "ties default to the player")

	cfg = fastConfig()
	cfg.MaxRounds = 1
	cfg.Scoring = zeroRule{}
	cfg.TieBreak = PartyOpponent
	cfg.Rand = rand.New(rand.NewSource(8))
	m, err = New(cfg, Callbacks{})
	require.NoError(t, err)

	require.NoError(t, m.Submit(TextAnswer("x")))
	waitPhase(t, m, PhaseCompleted)
	assert.Equal(t, PartyOpponent, m.Winner())
}

func TestMatch_LivesModeEndsEarly(t *testing.T) {
	cfg := fastConfig()
	cfg.Game = GameNeverHaveIEver
	cfg.MaxRounds = 10
	cfg.StartingLives = 1
	cfg.Scoring = LivesRule{}
	cfg.Opponent = RandomConfess{TrueChance: 1} // always confesses

	var completions atomic.Int32
	m, err := New(cfg, Callbacks{OnComplete: func(Party) { completions.Add(1) }})
	require.NoError(t, err)

	snap := m.Snapshot()
	assert.Equal(t, 1, snap.PlayerScore, "lives mode starts scores at StartingLives")
	assert.Equal(t, 1, snap.OpponentScore)

	require.NoError(t, m.Submit(ConfessAnswer(false)))
	snap = waitPhase(t, m, PhaseCompleted)

	assert.Equal(t, 1, snap.Round, "match ended before MaxRounds")
	assert.Zero(t, snap.OpponentScore)
	assert.Equal(t, PartyPlayer, m.Winner())
	assert.Equal(t, int32(1), completions.Load())
}

func TestMatch_OnCompleteExactlyOnce(t *testing.T) {
	var completions atomic.Int32

	cfg := fastConfig()
	cfg.MaxRounds = 1
	m, err := New(cfg, Callbacks{OnComplete: func(Party) { completions.Add(1) }})
	require.NoError(t, err)

	require.NoError(t, m.Submit(TextAnswer("x")))
	waitPhase(t, m, PhaseCompleted)

	// terminal state rejects further actions and never re-fires
	assert.ErrorIs(t, m.Submit(TextAnswer("y")), ErrWrongPhase)
	assert.ErrorIs(t, m.NextRound(), ErrWrongPhase)
	assert.Equal(t, int32(1), completions.Load())
}
