package minigame

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResume_KeepsProgress(t *testing.T) {
	m, err := New(fastConfig(), Callbacks{})
	require.NoError(t, err)

	require.NoError(t, m.Submit(TextAnswer("first round answer")))
	waitPhase(t, m, PhaseRevealing)
	require.NoError(t, m.NextRound())

	snap := m.Snapshot()
	m.Stop()

	resumed, err := Resume(fastConfig(), snap, Callbacks{})
	require.NoError(t, err)

	got := resumed.Snapshot()
	assert.Equal(t, snap.Round, got.Round)
	assert.Equal(t, snap.PlayerScore, got.PlayerScore)
	assert.Equal(t, snap.OpponentScore, got.OpponentScore)
	assert.Equal(t, snap.ActiveParty, got.ActiveParty)
	assert.Equal(t, snap.Current.ID, got.Current.ID)
	assert.ElementsMatch(t, snap.UsedContentIDs, got.UsedContentIDs)

	// and the match is playable to completion (resumed at round 2 of 3)
	require.NoError(t, resumed.Submit(TextAnswer("more")))
	waitPhase(t, resumed, PhaseRevealing)
	require.NoError(t, resumed.NextRound())
	require.NoError(t, resumed.Submit(TextAnswer("last")))
	waitPhase(t, resumed, PhaseCompleted)
	assert.True(t, resumed.Completed())
}

func TestResume_AwaitingOpponentReschedulesSimulator(t *testing.T) {
	cfg := fastConfig()
	snap := Snapshot{
		Game:        cfg.Game,
		Phase:       PhaseAwaitingOpponent,
		Round:       1,
		ActiveParty: PartyPlayer,
		Current:     &cfg.Bank[0],
	}

	m, err := Resume(cfg, snap, Callbacks{})
	require.NoError(t, err)

	got := waitPhase(t, m, PhaseRevealing)
	require.NotNil(t, got.PlayerAnswer)
	assert.True(t, got.PlayerAnswer.Forfeit, "missing player answer resumes as forfeit")
	assert.NotNil(t, got.OpponentAnswer)
}

func TestResume_AnsweringRestartsCountdown(t *testing.T) {
	cfg := fastConfig()
	cfg.AnswerTimeout = 30 * time.Millisecond
	cfg.TickInterval = 10 * time.Millisecond

	snap := Snapshot{
		Game:        cfg.Game,
		Phase:       PhaseAnswering,
		Round:       1,
		ActiveParty: PartyPlayer,
		Current:     &cfg.Bank[0],
	}

	m, err := Resume(cfg, snap, Callbacks{})
	require.NoError(t, err)

	// left alone, the countdown expires and forfeits. The intermediate
	// awaiting_opponent phase can pass before a poll sees it, so wait for
	// the reveal and check the forfeit there.
	got := waitPhase(t, m, PhaseRevealing)
	require.NotNil(t, got.PlayerAnswer)
	assert.True(t, got.PlayerAnswer.Forfeit)
}

func TestResume_CompletedNeverRefires(t *testing.T) {
	var completions atomic.Int32

	cfg := fastConfig()
	snap := Snapshot{
		Game:        cfg.Game,
		Phase:       PhaseCompleted,
		Round:       3,
		ActiveParty: PartyPlayer,
		PlayerScore: 10,
		Winner:      PartyPlayer,
	}

	m, err := Resume(cfg, snap, Callbacks{OnComplete: func(Party) { completions.Add(1) }})
	require.NoError(t, err)

	assert.True(t, m.Completed())
	assert.Equal(t, PartyPlayer, m.Winner())
	assert.Zero(t, completions.Load())
}

func TestResume_RejectsBadSnapshots(t *testing.T) {
	cfg := fastConfig()

	_, err := Resume(cfg, Snapshot{Phase: PhasePrompting, Round: 0}, Callbacks{})
	assert.Error(t, err)

	_, err = Resume(cfg, Snapshot{Phase: PhasePrompting, Round: cfg.MaxRounds + 1}, Callbacks{})
	assert.Error(t, err)

	_, err = Resume(cfg, Snapshot{Phase: Phase("bogus"), Round: 1}, Callbacks{})
	assert.Error(t, err)
}
