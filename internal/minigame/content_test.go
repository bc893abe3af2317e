package minigame

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBank(n int) []ContentItem {
	bank := make([]ContentItem, n)
	for i := range bank {
		bank[i] = ContentItem{ID: string(rune('a' + i)), Prompt: "prompt", Category: CategoryQuestion}
	}
	return bank
}

func TestPickContent_NoRepeatsUntilExhausted(t *testing.T) {
	bank := testBank(8)
	used := make(map[string]bool)
	rng := rand.New(rand.NewSource(1))

	seen := make(map[string]bool)
	for i := 0; i < len(bank); i++ {
		item := pickContent(bank, used, rng)
		require.False(t, seen[item.ID], "item %q repeated before bank exhausted", item.ID)
		seen[item.ID] = true
	}
	assert.Len(t, seen, len(bank))
}

func TestPickContent_ResetsWhenExhausted(t *testing.T) {
	bank := testBank(3)
	used := make(map[string]bool)
	rng := rand.New(rand.NewSource(2))

	for i := 0; i < len(bank); i++ {
		pickContent(bank, used, rng)
	}
	require.Len(t, used, len(bank))

	// next pick must still succeed, against a cleared used set
	item := pickContent(bank, used, rng)
	assert.NotEmpty(t, item.ID)
	assert.Len(t, used, 1)
}

func TestPickContent_SkipsUsedItems(t *testing.T) {
	bank := testBank(3)
	used := map[string]bool{"a": true, "b": true}
	rng := rand.New(rand.NewSource(3))

	item := pickContent(bank, used, rng)
	assert.Equal(t, "c", item.ID)
}

func TestGameBanks_UniqueIDs(t *testing.T) {
	for _, gt := range PromptGameTypes() {
		cfg, err := NewConfig(gt)
		require.NoError(t, err, gt)
		require.NotEmpty(t, cfg.Bank, gt)

		ids := make(map[string]bool)
		for _, item := range cfg.Bank {
			assert.NotEmpty(t, item.ID, "%s has an item without id", gt)
			assert.False(t, ids[item.ID], "%s repeats id %q", gt, item.ID)
			ids[item.ID] = true
		}
	}
}
