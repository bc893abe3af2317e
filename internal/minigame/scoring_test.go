package minigame

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompatibilityRule(t *testing.T) {
	rule := CompatibilityRule{MatchBonus: 10, DifferBonus: 2}

	pd, od := rule.Score(ContentItem{}, ChoiceAnswer("a"), ChoiceAnswer("a"))
	assert.Equal(t, 10, pd)
	assert.Equal(t, 10, od)

	pd, od = rule.Score(ContentItem{}, ChoiceAnswer("a"), ChoiceAnswer("b"))
	assert.Equal(t, 2, pd)
	assert.Equal(t, 2, od)

	// a forfeit on either side voids the round for both
	pd, od = rule.Score(ContentItem{}, ForfeitAnswer(), ChoiceAnswer("b"))
	assert.Zero(t, pd)
	assert.Zero(t, od)
}

func TestEngagementRule_LengthCap(t *testing.T) {
	rule := EngagementRule{LengthCap: 5}

	pd, _ := rule.Score(ContentItem{}, TextAnswer("ab"), ForfeitAnswer())
	assert.Equal(t, 2, pd)

	pd, _ = rule.Score(ContentItem{}, TextAnswer("abcdefghij"), ForfeitAnswer())
	assert.Equal(t, 5, pd, "length capped")
}

func TestEngagementRule_CountsRunesNotBytes(t *testing.T) {
	rule := EngagementRule{LengthCap: 100}
	pd, _ := rule.Score(ContentItem{}, TextAnswer("héllo"), ForfeitAnswer())
	assert.Equal(t, 5, pd)
}

func TestEngagementRule_KeywordBonus(t *testing.T) {
	rule := EngagementRule{LengthCap: 100, Keywords: []string{"secret", "honestly"}, KeywordBonus: 10}

	pd, _ := rule.Score(ContentItem{}, TextAnswer("Honestly it was a secret"), ForfeitAnswer())
	// 24 runes + two keyword hits
	assert.Equal(t, 44, pd)
}

func TestEngagementRule_EmojiBonus(t *testing.T) {
	rule := EngagementRule{LengthCap: 100, EmojiBonus: 3}

	pd, _ := rule.Score(ContentItem{}, TextAnswer("🎉🎉"), ForfeitAnswer())
	// 2 runes + 2 emoji bonuses
	assert.Equal(t, 8, pd)
}

func TestEngagementRule_ForfeitScoresZero(t *testing.T) {
	rule := EngagementRule{LengthCap: 100}
	pd, od := rule.Score(ContentItem{}, ForfeitAnswer(), TextAnswer("fine"))
	assert.Zero(t, pd)
	assert.Equal(t, 4, od)
}

func TestLivesRule(t *testing.T) {
	rule := LivesRule{}

	pd, od := rule.Score(ContentItem{}, ConfessAnswer(true), ConfessAnswer(false))
	assert.Equal(t, -1, pd, "confession costs the confessor a life")
	assert.Zero(t, od)

	pd, od = rule.Score(ContentItem{}, ConfessAnswer(false), ConfessAnswer(true))
	assert.Zero(t, pd)
	assert.Equal(t, -1, od)

	// forfeit counts as "no"
	pd, od = rule.Score(ContentItem{}, ForfeitAnswer(), ConfessAnswer(true))
	assert.Zero(t, pd)
	assert.Equal(t, -1, od)
}
