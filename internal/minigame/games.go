package minigame

import (
	"fmt"
	"time"
)

// GameType names one of the mini-games playable inside a match chat.
type GameType string

const (
	GameTruthOrDare    GameType = "truth_or_dare"
	GameNeverHaveIEver GameType = "never_have_i_ever"
	GameWouldYouRather GameType = "would_you_rather"
	GameRapidFire      GameType = "rapid_fire"
	GameEmojiStory     GameType = "emoji_story"
	GameUno            GameType = "uno"
)

// PromptGameTypes lists the games driven by the shared turn engine. UNO has
// its own state machine and is not in this list.
func PromptGameTypes() []GameType {
	return []GameType{
		GameTruthOrDare,
		GameNeverHaveIEver,
		GameWouldYouRather,
		GameRapidFire,
		GameEmojiStory,
	}
}

// NewConfig builds the engine configuration for a game type. Each game
// supplies only its bank, pacing and rule choices; everything else is the
// shared engine.
func NewConfig(gt GameType) (Config, error) {
	switch gt {
	case GameTruthOrDare:
		return Config{
			Game:          gt,
			Bank:          truthOrDareBank,
			MaxRounds:     5,
			AnswerTimeout: 60 * time.Second,
			Scoring: EngagementRule{
				LengthCap:    120,
				Keywords:     []string{"honestly", "secret", "never told"},
				KeywordBonus: 10,
			},
			Opponent: CannedText{Responses: truthOrDareResponses},
		}, nil

	case GameNeverHaveIEver:
		return Config{
			Game:          gt,
			Bank:          neverHaveIEverBank,
			MaxRounds:     10,
			StartingLives: 5,
			Scoring:       LivesRule{},
			Opponent:      RandomConfess{TrueChance: 0.5},
		}, nil

	case GameWouldYouRather:
		return Config{
			Game:          gt,
			Bank:          wouldYouRatherBank,
			MaxRounds:     7,
			AnswerTimeout: 15 * time.Second,
			Scoring:       CompatibilityRule{MatchBonus: 10, DifferBonus: 2},
			Opponent:      RandomChoice{},
		}, nil

	case GameRapidFire:
		return Config{
			Game:          gt,
			Bank:          rapidFireBank,
			MaxRounds:     10,
			AnswerTimeout: 10 * time.Second,
			Scoring:       EngagementRule{LengthCap: 40},
			Opponent:      CannedText{Responses: rapidFireResponses},
		}, nil

	case GameEmojiStory:
		return Config{
			Game:          gt,
			Bank:          emojiStoryBank,
			MaxRounds:     3,
			AnswerTimeout: 120 * time.Second,
			Scoring: EngagementRule{
				LengthCap:  80,
				EmojiBonus: 3,
			},
			Opponent: CannedText{Responses: emojiStoryResponses},
		}, nil

	default:
		return Config{}, fmt.Errorf("unknown game type: %s", gt)
	}
}

var truthOrDareBank = []ContentItem{
	{ID: "tod-1", Category: CategoryTruth, Prompt: "What's the most embarrassing thing on your camera roll?"},
	{ID: "tod-2", Category: CategoryTruth, Prompt: "What's a dealbreaker you've never admitted to anyone?"},
	{ID: "tod-3", Category: CategoryTruth, Prompt: "Have you ever ghosted someone you actually liked?"},
	{ID: "tod-4", Category: CategoryTruth, Prompt: "What's the worst date you've ever been on?"},
	{ID: "tod-5", Category: CategoryTruth, Prompt: "What song do you secretly love but would never admit to?"},
	{ID: "tod-6", Category: CategoryTruth, Prompt: "What's one thing people get wrong about you on first impression?"},
	{ID: "tod-7", Category: CategoryDare, Prompt: "Send the last photo you took, no context allowed."},
	{ID: "tod-8", Category: CategoryDare, Prompt: "Describe your morning routine in exactly five words."},
	{ID: "tod-9", Category: CategoryDare, Prompt: "Write your dating profile bio as a movie trailer voiceover."},
	{ID: "tod-10", Category: CategoryDare, Prompt: "Reply to the next message using only questions."},
	{ID: "tod-11", Category: CategoryDare, Prompt: "Give your most controversial food opinion and defend it."},
	{ID: "tod-12", Category: CategoryDare, Prompt: "Rank pizza, tacos and sushi. No ties allowed."},
}

var truthOrDareResponses = []string{
	"Okay honestly? My search history. No further questions.",
	"I once showed up to a first date a full day early.",
	"My guilty pleasure playlist would end my reputation instantly.",
	"I'd rather do three dares than answer that truthfully.",
	"Fine: pineapple belongs on pizza and I will die on this hill.",
	"I've never told anyone this, but I cried at a car commercial.",
}

var neverHaveIEverBank = []ContentItem{
	{ID: "nhie-1", Category: CategoryStatement, Prompt: "Never have I ever stalked a date's profile before meeting them."},
	{ID: "nhie-2", Category: CategoryStatement, Prompt: "Never have I ever pretended to like a hobby to impress someone."},
	{ID: "nhie-3", Category: CategoryStatement, Prompt: "Never have I ever texted an ex at 2am."},
	{ID: "nhie-4", Category: CategoryStatement, Prompt: "Never have I ever lied about my height or age online."},
	{ID: "nhie-5", Category: CategoryStatement, Prompt: "Never have I ever left a date early with a fake excuse."},
	{ID: "nhie-6", Category: CategoryStatement, Prompt: "Never have I ever accidentally liked a years-old photo while snooping."},
	{ID: "nhie-7", Category: CategoryStatement, Prompt: "Never have I ever dated two people in the same week."},
	{ID: "nhie-8", Category: CategoryStatement, Prompt: "Never have I ever cried during a romantic comedy."},
	{ID: "nhie-9", Category: CategoryStatement, Prompt: "Never have I ever re-read an old conversation just to feel something."},
	{ID: "nhie-10", Category: CategoryStatement, Prompt: "Never have I ever forgotten a date's name mid-conversation."},
	{ID: "nhie-11", Category: CategoryStatement, Prompt: "Never have I ever matched with a coworker on purpose."},
	{ID: "nhie-12", Category: CategoryStatement, Prompt: "Never have I ever practiced a conversation before a date."},
}

var wouldYouRatherBank = []ContentItem{
	{ID: "wyr-1", Category: CategoryDilemma, Prompt: "For a first date, would you rather...", OptionA: "A fancy dinner", OptionB: "A spontaneous road trip"},
	{ID: "wyr-2", Category: CategoryDilemma, Prompt: "Would you rather your partner be...", OptionA: "Hilarious but always late", OptionB: "Punctual but serious"},
	{ID: "wyr-3", Category: CategoryDilemma, Prompt: "Would you rather...", OptionA: "Know everything about each other instantly", OptionB: "Uncover it slowly over years"},
	{ID: "wyr-4", Category: CategoryDilemma, Prompt: "On vacation, would you rather...", OptionA: "Beach and no plans", OptionB: "City and a packed itinerary"},
	{ID: "wyr-5", Category: CategoryDilemma, Prompt: "Would you rather...", OptionA: "Stay in with takeout and a movie", OptionB: "Go out dancing until 3am"},
	{ID: "wyr-6", Category: CategoryDilemma, Prompt: "Would you rather your partner...", OptionA: "Read your entire chat history", OptionB: "Listen to your voice memos"},
	{ID: "wyr-7", Category: CategoryDilemma, Prompt: "Would you rather...", OptionA: "One great love", OptionB: "Many great adventures"},
	{ID: "wyr-8", Category: CategoryDilemma, Prompt: "Would you rather...", OptionA: "Cook together every night", OptionB: "Try a new restaurant every week"},
	{ID: "wyr-9", Category: CategoryDilemma, Prompt: "Would you rather...", OptionA: "A partner who texts back instantly", OptionB: "A partner who writes long letters"},
	{ID: "wyr-10", Category: CategoryDilemma, Prompt: "Would you rather...", OptionA: "Meet the parents on date two", OptionB: "Keep it secret for a year"},
}

var rapidFireBank = []ContentItem{
	{ID: "rf-1", Category: CategoryQuestion, Prompt: "Coffee or tea?"},
	{ID: "rf-2", Category: CategoryQuestion, Prompt: "Morning person or night owl?"},
	{ID: "rf-3", Category: CategoryQuestion, Prompt: "Dream destination, go."},
	{ID: "rf-4", Category: CategoryQuestion, Prompt: "Last show you binged?"},
	{ID: "rf-5", Category: CategoryQuestion, Prompt: "Cats or dogs?"},
	{ID: "rf-6", Category: CategoryQuestion, Prompt: "Your go-to karaoke song?"},
	{ID: "rf-7", Category: CategoryQuestion, Prompt: "Best meal you can cook?"},
	{ID: "rf-8", Category: CategoryQuestion, Prompt: "Window seat or aisle?"},
	{ID: "rf-9", Category: CategoryQuestion, Prompt: "One word your friends use for you?"},
	{ID: "rf-10", Category: CategoryQuestion, Prompt: "Pineapple on pizza, yes or no?"},
	{ID: "rf-11", Category: CategoryQuestion, Prompt: "Beach day or mountain hike?"},
	{ID: "rf-12", Category: CategoryQuestion, Prompt: "Text first or wait it out?"},
}

var rapidFireResponses = []string{
	"Coffee, obviously.",
	"Night owl, no contest.",
	"Tokyo!",
	"Dogs. Big ones.",
	"Aisle, I like an exit strategy.",
	"Chaotic, apparently.",
	"Yes to pineapple. Fight me.",
	"Mountains every time.",
}

var emojiStoryBank = []ContentItem{
	{ID: "es-1", Category: CategoryEmoji, Prompt: "Tell the story of your week using mostly emoji."},
	{ID: "es-2", Category: CategoryEmoji, Prompt: "Describe your perfect weekend in emoji, then translate it."},
	{ID: "es-3", Category: CategoryEmoji, Prompt: "Summarize your last vacation as an emoji saga."},
	{ID: "es-4", Category: CategoryEmoji, Prompt: "Your life as a movie: title and emoji poster."},
	{ID: "es-5", Category: CategoryEmoji, Prompt: "Describe your ideal first date using only emoji and three words."},
	{ID: "es-6", Category: CategoryEmoji, Prompt: "Retell your most chaotic cooking attempt in emoji."},
}

var emojiStoryResponses = []string{
	"🏃☕💻💻💻🍜😴 repeat x5, then 🎉🍕📺",
	"🌅🥐📚🚶🌳🍷🌙 slow mornings, long walks, good wine",
	"✈️🏝️🤿🐠🌮🌮🌮😎 best week of my life",
	"🎬 'Mild Panic': 😅📆🔥☕🙃",
	"🌧️🏠🍳🔥🚒🍕 ...we ordered pizza in the end",
}
