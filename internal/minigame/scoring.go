package minigame

import (
	"strings"
	"unicode/utf8"
)

// ScoringRule applies a game's scoring once both answers for a round are
// recorded. Deltas are added to each party's total; lives-based games hand
// out negative deltas against a positive starting total. The same rule
// instance always scores both parties in a round.
type ScoringRule interface {
	Score(item ContentItem, player, opponent Answer) (playerDelta, opponentDelta int)
}

// CompatibilityRule rewards both parties equally: MatchBonus when their
// choices agree, DifferBonus when they do not. Not zero-sum; this measures
// compatibility, not competition.
type CompatibilityRule struct {
	MatchBonus  int
	DifferBonus int
}

func (r CompatibilityRule) Score(_ ContentItem, player, opponent Answer) (int, int) {
	if player.Forfeit || opponent.Forfeit {
		return 0, 0
	}
	if player.Choice == opponent.Choice {
		return r.MatchBonus, r.MatchBonus
	}
	return r.DifferBonus, r.DifferBonus
}

// EngagementRule scores free-text answers: one point per rune up to
// LengthCap, plus KeywordBonus for each keyword present and EmojiBonus for
// each emoji rune. A forfeit scores zero.
type EngagementRule struct {
	LengthCap    int
	Keywords     []string
	KeywordBonus int
	EmojiBonus   int
}

func (r EngagementRule) Score(_ ContentItem, player, opponent Answer) (int, int) {
	return r.scoreOne(player), r.scoreOne(opponent)
}

func (r EngagementRule) scoreOne(a Answer) int {
	if a.Forfeit || !a.Set {
		return 0
	}

	score := utf8.RuneCountInString(a.Text)
	if score > r.LengthCap {
		score = r.LengthCap
	}

	lower := strings.ToLower(a.Text)
	for _, kw := range r.Keywords {
		if strings.Contains(lower, kw) {
			score += r.KeywordBonus
		}
	}

	if r.EmojiBonus > 0 {
		for _, ch := range a.Text {
			if isEmoji(ch) {
				score += r.EmojiBonus
			}
		}
	}

	return score
}

// isEmoji covers the common emoji blocks; enough for scoring, not a full
// Unicode classification.
func isEmoji(r rune) bool {
	switch {
	case r >= 0x1F300 && r <= 0x1FAFF:
		return true
	case r >= 0x2600 && r <= 0x27BF:
		return true
	case r == 0x2764: // heart
		return true
	}
	return false
}

// LivesRule implements binary-confession scoring: a "yes, I have" costs the
// confessing party exactly one of its own lives, a "no" costs nothing. A
// forfeit counts as "no".
type LivesRule struct{}

func (LivesRule) Score(_ ContentItem, player, opponent Answer) (int, int) {
	pd, od := 0, 0
	if player.Set && !player.Forfeit && player.Confess {
		pd = -1
	}
	if opponent.Set && !opponent.Forfeit && opponent.Confess {
		od = -1
	}
	return pd, od
}
