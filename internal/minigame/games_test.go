package minigame

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_AllPromptGames(t *testing.T) {
	for _, gt := range PromptGameTypes() {
		cfg, err := NewConfig(gt)
		require.NoError(t, err, gt)

		assert.Equal(t, gt, cfg.Game)
		assert.NotEmpty(t, cfg.Bank, gt)
		assert.Positive(t, cfg.MaxRounds, gt)
		assert.NotNil(t, cfg.Scoring, gt)
		assert.NotNil(t, cfg.Opponent, gt)

		// each config must actually construct a match
		cfg.Rand = rand.New(rand.NewSource(1))
		m, err := New(cfg, Callbacks{})
		require.NoError(t, err, gt)
		m.Stop()
	}
}

func TestNewConfig_UnknownGame(t *testing.T) {
	_, err := NewConfig(GameType("chess"))
	assert.Error(t, err)

	// UNO is not a prompt game
	_, err = NewConfig(GameUno)
	assert.Error(t, err)
}

func TestNewConfig_GameShapes(t *testing.T) {
	cfg, err := NewConfig(GameNeverHaveIEver)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.StartingLives)
	assert.Zero(t, cfg.AnswerTimeout, "never have i ever is untimed")

	cfg, err = NewConfig(GameRapidFire)
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, cfg.AnswerTimeout)
	assert.Zero(t, cfg.StartingLives)

	cfg, err = NewConfig(GameWouldYouRather)
	require.NoError(t, err)
	_, isCompat := cfg.Scoring.(CompatibilityRule)
	assert.True(t, isCompat)

	cfg, err = NewConfig(GameEmojiStory)
	require.NoError(t, err)
	rule, isEngagement := cfg.Scoring.(EngagementRule)
	require.True(t, isEngagement)
	assert.Positive(t, rule.EmojiBonus)
}

// Plays a whole never-have-i-ever match against an always-confessing opponent
// and checks the lives bookkeeping end to end.
func TestNeverHaveIEver_FullMatch(t *testing.T) {
	cfg, err := NewConfig(GameNeverHaveIEver)
	require.NoError(t, err)
	cfg.OpponentDelayMin = time.Millisecond
	cfg.OpponentDelayMax = 2 * time.Millisecond
	cfg.Opponent = RandomConfess{TrueChance: 1}
	cfg.Rand = rand.New(rand.NewSource(11))

	m, err := New(cfg, Callbacks{})
	require.NoError(t, err)

	// the player never confesses, so the opponent burns a life every round
	// and runs out after five rounds
	for round := 1; round <= cfg.StartingLives; round++ {
		require.NoError(t, m.Submit(ConfessAnswer(false)))
		if round < cfg.StartingLives {
			snap := waitPhase(t, m, PhaseRevealing)
			assert.Equal(t, cfg.StartingLives, snap.PlayerScore)
			assert.Equal(t, cfg.StartingLives-round, snap.OpponentScore)
			require.NoError(t, m.NextRound())
		}
	}

	snap := waitPhase(t, m, PhaseCompleted)
	assert.Zero(t, snap.OpponentScore)
	assert.Equal(t, PartyPlayer, m.Winner())
}

// Plays would-you-rather to completion; compatibility scoring moves both
// totals by the same delta each round.
func TestWouldYouRather_ScoresMoveInLockstep(t *testing.T) {
	cfg, err := NewConfig(GameWouldYouRather)
	require.NoError(t, err)
	cfg.OpponentDelayMin = time.Millisecond
	cfg.OpponentDelayMax = 2 * time.Millisecond
	cfg.AnswerTimeout = 0 // keep the test untimed
	cfg.Rand = rand.New(rand.NewSource(12))

	m, err := New(cfg, Callbacks{})
	require.NoError(t, err)

	for round := 1; round <= cfg.MaxRounds; round++ {
		require.NoError(t, m.Submit(ChoiceAnswer("a")))
		if round < cfg.MaxRounds {
			snap := waitPhase(t, m, PhaseRevealing)
			assert.Equal(t, snap.PlayerScore, snap.OpponentScore)
			require.NoError(t, m.NextRound())
		}
	}

	snap := waitPhase(t, m, PhaseCompleted)
	assert.Equal(t, snap.PlayerScore, snap.OpponentScore)
	assert.Equal(t, PartyPlayer, m.Winner(), "equal totals fall to the tie-break")
}

func TestOpponentStrategies(t *testing.T) {
	rng := rand.New(rand.NewSource(13))

	a := RandomConfess{TrueChance: 1}.Respond(ContentItem{}, rng)
	assert.True(t, a.Set)
	assert.True(t, a.Confess)

	// zero TrueChance falls back to the 50/50 default, so only Set is stable
	a = RandomConfess{}.Respond(ContentItem{}, rng)
	assert.True(t, a.Set)

	a = RandomChoice{}.Respond(ContentItem{}, rng)
	assert.True(t, a.Set)
	assert.Contains(t, []string{"a", "b"}, a.Choice)

	a = CannedText{Responses: []string{"only line"}}.Respond(ContentItem{}, rng)
	assert.True(t, a.Set)
	assert.Equal(t, "only line", a.Text)
}
