package minigame

// Party identifies one of the two participants in a match: the local user or
// the simulated counterpart.
type Party string

const (
	PartyPlayer   Party = "player"
	PartyOpponent Party = "opponent"
)

// Other returns the opposing party.
func (p Party) Other() Party {
	if p == PartyPlayer {
		return PartyOpponent
	}
	return PartyPlayer
}

// Phase is the turn engine's position within a round. Transitions are
// one-directional: prompting -> answering -> awaiting_opponent -> revealing,
// then either back to prompting for the next round or to completed.
type Phase string

const (
	PhasePrompting        Phase = "prompting"
	PhaseAnswering        Phase = "answering"
	PhaseAwaitingOpponent Phase = "awaiting_opponent"
	PhaseRevealing        Phase = "revealing"
	PhaseCompleted        Phase = "completed"
)

// Answer is one party's response for a round. Which field carries the value
// depends on the game: free text, an A/B choice, or a boolean confession.
// A missing response is normalized to a forfeit answer, never an error.
type Answer struct {
	Text    string `json:"text,omitempty"`
	Choice  string `json:"choice,omitempty"`
	Confess bool   `json:"confess,omitempty"`
	Forfeit bool   `json:"forfeit,omitempty"`

	// Set reports whether this answer has been recorded at all. The scorer
	// runs only once both parties' answers are set.
	Set bool `json:"set,omitempty"`
}

// ForfeitAnswer is the placeholder recorded when a party fails to respond
// before the deadline or skips explicitly.
func ForfeitAnswer() Answer {
	return Answer{Forfeit: true, Set: true}
}

// TextAnswer wraps free text as a recorded answer.
func TextAnswer(text string) Answer {
	return Answer{Text: text, Set: true}
}

// ChoiceAnswer wraps an "A" or "B" pick as a recorded answer.
func ChoiceAnswer(choice string) Answer {
	return Answer{Choice: choice, Set: true}
}

// ConfessAnswer wraps a boolean confession as a recorded answer.
func ConfessAnswer(confess bool) Answer {
	return Answer{Confess: confess, Set: true}
}
