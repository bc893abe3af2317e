package minigame

import "math/rand"

// Category tags a content item with its flavor inside a game.
type Category string

const (
	CategoryTruth     Category = "truth"
	CategoryDare      Category = "dare"
	CategoryStatement Category = "statement"
	CategoryDilemma   Category = "dilemma"
	CategoryQuestion  Category = "question"
	CategoryEmoji     Category = "emoji"
)

// ContentItem is one prompt from a game's bank. Banks are static and shared
// by every match of the same game.
type ContentItem struct {
	ID       string   `json:"id"`
	Prompt   string   `json:"prompt"`
	Category Category `json:"category"`

	// OptionA/OptionB are set only for two-choice games.
	OptionA string `json:"option_a,omitempty"`
	OptionB string `json:"option_b,omitempty"`
}

// pickContent returns a uniform-random item whose id is not in used and marks
// it as used. When every item has been shown the used set is cleared first,
// so a match can always continue no matter how MaxRounds compares to the
// bank size.
func pickContent(bank []ContentItem, used map[string]bool, rng *rand.Rand) ContentItem {
	avail := make([]ContentItem, 0, len(bank))
	for _, it := range bank {
		if !used[it.ID] {
			avail = append(avail, it)
		}
	}

	if len(avail) == 0 {
		for id := range used {
			delete(used, id)
		}
		avail = append(avail, bank...)
	}

	item := avail[rng.Intn(len(avail))]
	used[item.ID] = true
	return item
}
