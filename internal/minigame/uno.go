package minigame

import (
	"errors"
	"math/rand"
	"sync"
	"time"
)

// UnoCard is a color/value pair. The two-player variant drops wilds and
// treats reverse as skip, so the deck is four colors by twelve values.
type UnoCard struct {
	Color string `json:"color"`
	Value string `json:"value"`
}

const (
	UnoStatusActive   = "active"
	UnoStatusFinished = "finished"

	// Safety cap so a degenerate deck cycle cannot run forever.
	unoMaxTurns = 200
)

var unoColors = []string{"red", "yellow", "green", "blue"}
var unoValues = []string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9", "skip", "draw2"}

var (
	ErrUnoNotActive   = errors.New("uno game is not active")
	ErrUnoNotYourTurn = errors.New("not your turn")
	ErrUnoBadCard     = errors.New("card does not match discard")
	ErrUnoBadIndex    = errors.New("invalid card index")
)

// UnoGame is a single-user UNO session against a scripted opponent. Unlike
// the prompt games it keeps per-card state, so it runs its own machine
// instead of the shared turn engine. The opponent moves synchronously right
// after the player's action; the pondering delay is cosmetic and left to the
// client.
type UnoGame struct {
	ID         string     `json:"id"`
	UserID     int64      `json:"user_id"`
	Status     string     `json:"status"`
	Winner     Party      `json:"winner,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`

	mu           sync.RWMutex
	rng          *rand.Rand
	deck         []UnoCard
	discard      []UnoCard
	playerHand   []UnoCard
	opponentHand []UnoCard
	turn         Party
	turns        int
}

// NewUnoGame deals a fresh game: seven cards each, one card flipped to start
// the discard pile. The player always leads.
func NewUnoGame(id string, userID int64, rng *rand.Rand) *UnoGame {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	g := &UnoGame{
		ID:        id,
		UserID:    userID,
		Status:    UnoStatusActive,
		CreatedAt: time.Now(),
		rng:       rng,
		turn:      PartyPlayer,
	}

	for _, c := range unoColors {
		for _, v := range unoValues {
			g.deck = append(g.deck, UnoCard{Color: c, Value: v})
		}
	}
	rng.Shuffle(len(g.deck), func(i, j int) {
		g.deck[i], g.deck[j] = g.deck[j], g.deck[i]
	})

	// copy the hands out so appends never clobber the shared backing array
	g.playerHand = append([]UnoCard(nil), g.deck[:7]...)
	g.opponentHand = append([]UnoCard(nil), g.deck[7:14]...)
	g.discard = []UnoCard{g.deck[14]}
	g.deck = append([]UnoCard(nil), g.deck[15:]...)

	return g
}

func (g *UnoGame) top() UnoCard {
	return g.discard[len(g.discard)-1]
}

func playable(card, top UnoCard) bool {
	return card.Color == top.Color || card.Value == top.Value
}

// draw moves one card from the deck to a hand, reshuffling the discard pile
// (minus its top card) back into the deck when it runs dry.
func (g *UnoGame) draw(hand *[]UnoCard) {
	if len(g.deck) == 0 {
		if len(g.discard) <= 1 {
			return
		}
		top := g.top()
		g.deck = append(g.deck, g.discard[:len(g.discard)-1]...)
		g.discard = []UnoCard{top}
		g.rng.Shuffle(len(g.deck), func(i, j int) {
			g.deck[i], g.deck[j] = g.deck[j], g.deck[i]
		})
	}
	if len(g.deck) == 0 {
		return
	}
	*hand = append(*hand, g.deck[0])
	g.deck = g.deck[1:]
}

// Play discards the player's card at the given hand index, applies its
// effect, and lets the opponent respond unless it was skipped.
func (g *UnoGame) Play(index int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.Status != UnoStatusActive {
		return ErrUnoNotActive
	}
	if g.turn != PartyPlayer {
		return ErrUnoNotYourTurn
	}
	if index < 0 || index >= len(g.playerHand) {
		return ErrUnoBadIndex
	}

	card := g.playerHand[index]
	if !playable(card, g.top()) {
		return ErrUnoBadCard
	}

	g.playerHand = append(g.playerHand[:index], g.playerHand[index+1:]...)
	g.discard = append(g.discard, card)
	g.advanceLocked(PartyPlayer, card)
	return nil
}

// Draw takes one card from the deck. If the drawn card is playable it stays
// in hand anyway; the turn passes to the opponent.
func (g *UnoGame) Draw() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.Status != UnoStatusActive {
		return ErrUnoNotActive
	}
	if g.turn != PartyPlayer {
		return ErrUnoNotYourTurn
	}

	g.draw(&g.playerHand)
	g.advanceLocked(PartyPlayer, UnoCard{})
	return nil
}

// advanceLocked applies a played card's effect, checks for a winner, and
// runs the opponent's turns until control returns to the player or the game
// ends.
func (g *UnoGame) advanceLocked(mover Party, played UnoCard) {
	g.turns++

	moverHand := &g.playerHand
	otherHand := &g.opponentHand
	if mover == PartyOpponent {
		moverHand, otherHand = otherHand, moverHand
	}

	if len(*moverHand) == 0 {
		g.finishLocked(mover)
		return
	}
	if g.turns >= unoMaxTurns {
		g.finishLocked(g.aheadLocked())
		return
	}

	skipOther := false
	switch played.Value {
	case "skip":
		skipOther = true
	case "draw2":
		g.draw(otherHand)
		g.draw(otherHand)
		skipOther = true
	}

	if skipOther {
		g.turn = mover
	} else {
		g.turn = mover.Other()
	}

	if g.turn == PartyOpponent {
		g.opponentMoveLocked()
	}
}

// opponentMoveLocked plays the opponent's first matching card, or draws.
func (g *UnoGame) opponentMoveLocked() {
	top := g.top()
	for i, card := range g.opponentHand {
		if playable(card, top) {
			g.opponentHand = append(g.opponentHand[:i], g.opponentHand[i+1:]...)
			g.discard = append(g.discard, card)
			g.advanceLocked(PartyOpponent, card)
			return
		}
	}
	g.draw(&g.opponentHand)
	g.advanceLocked(PartyOpponent, UnoCard{})
}

func (g *UnoGame) aheadLocked() Party {
	if len(g.opponentHand) < len(g.playerHand) {
		return PartyOpponent
	}
	return PartyPlayer
}

func (g *UnoGame) finishLocked(winner Party) {
	g.Status = UnoStatusFinished
	g.Winner = winner
	now := time.Now()
	g.FinishedAt = &now
}

// IsActive reports whether the game is still running.
func (g *UnoGame) IsActive() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.Status == UnoStatusActive
}

// State returns the client-safe view: the opponent's hand is exposed only as
// a count while the game is active.
func (g *UnoGame) State() map[string]any {
	g.mu.RLock()
	defer g.mu.RUnlock()

	state := map[string]any{
		"id":             g.ID,
		"status":         g.Status,
		"turn":           g.turn,
		"discard_top":    g.top(),
		"player_hand":    g.playerHand,
		"opponent_cards": len(g.opponentHand),
		"deck_remaining": len(g.deck),
	}
	if g.Status == UnoStatusFinished {
		state["winner"] = g.Winner
		state["opponent_hand"] = g.opponentHand
	}
	return state
}
