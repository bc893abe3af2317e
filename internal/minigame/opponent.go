package minigame

import "math/rand"

// OpponentStrategy produces the simulated counterpart's answer for a round.
// The turn engine only sees this interface, so a real second player or an AI
// backend can be substituted later without touching the engine.
type OpponentStrategy interface {
	Respond(item ContentItem, rng *rand.Rand) Answer
}

// RandomConfess answers "yes, I have" with probability TrueChance.
type RandomConfess struct {
	TrueChance float64
}

func (s RandomConfess) Respond(_ ContentItem, rng *rand.Rand) Answer {
	chance := s.TrueChance
	if chance <= 0 {
		chance = 0.5
	}
	return ConfessAnswer(rng.Float64() < chance)
}

// RandomChoice picks option A or B uniformly.
type RandomChoice struct{}

func (RandomChoice) Respond(_ ContentItem, rng *rand.Rand) Answer {
	if rng.Intn(2) == 0 {
		return ChoiceAnswer("a")
	}
	return ChoiceAnswer("b")
}

// CannedText picks one of a fixed list of responses appropriate to the game.
type CannedText struct {
	Responses []string
}

func (s CannedText) Respond(_ ContentItem, rng *rand.Rand) Answer {
	if len(s.Responses) == 0 {
		return ForfeitAnswer()
	}
	return TextAnswer(s.Responses[rng.Intn(len(s.Responses))])
}
