package prompts

import (
	"fmt"
	"strings"

	"github.com/lexiquest/lexiquest/pkg/game"
)

// BaseSystemPrompt frames every request. The reading level and tone
// rules are the load-bearing part; models drift toward adult prose
// without them.
const BaseSystemPrompt = `You are a friendly storyteller for children aged 8-14, creating a %s in an accessible reading-adventure style.

IMPORTANT RULES:
- Keep story text under 80 words
- Use simple, age-appropriate language suitable for young readers
- Include 1-2 vocabulary words from this list when natural: %s
- Make the story exciting but never scary or violent
- Use short paragraphs of 2-4 lines
- Be encouraging and positive

THEMES: %s`

// ExplorationFormatPrompt asks for a four-choice segment where every
// choice is a valid path.
const ExplorationFormatPrompt = `Reply in EXACTLY this format, one field per line:
STORY: [the next story beat, under 80 words]
CHOICE1: [first thing the player could do]
CHOICE2: [second thing the player could do]
CHOICE3: [third thing the player could do]
CHOICE4: [fourth thing the player could do]

Optionally add a vocabulary challenge, all three lines or none:
CHALLENGE_TYPE: [spelling, word_completion, or word_matching]
CHALLENGE_WORD: [the target word]
CHALLENGE_PROMPT: [a short, fun exercise about the word]`

// EvaluatedFormatPrompt asks for a three-choice segment with exactly
// one correct answer to a reading question.
const EvaluatedFormatPrompt = `Reply in EXACTLY this format, one field per line:
STORY: [the next story beat, under 80 words]
QUESTION: [a reading or vocabulary question about the story]
CHOICE_A: [first possible answer]
CHOICE_B: [second possible answer]
CHOICE_C: [third possible answer]
CORRECT: [A, B, or C]
HINT: [an encouraging hint shown after a wrong answer]`

// FinalRoundPrompt is appended when the next segment closes the game.
const FinalRoundPrompt = `This is the final round. Bring the adventure to a warm, satisfying ending that celebrates what the player discovered.`

const difficultyEasy = `Use mostly short, familiar words. Introduce at most one new vocabulary word.`
const difficultyIntermediate = `Mix familiar words with a couple of the vocabulary words. Keep sentences short.`
const difficultyHard = `Use richer vocabulary from the list and slightly longer sentences, while keeping the story clear.`

type genreSetting struct {
	name   string
	themes []string
}

var genreSettings = map[game.Genre]genreSetting{
	game.GenreForest: {
		name:   "magical forest adventure",
		themes: []string{"talking animals", "enchanted trees", "hidden groves", "gentle magic"},
	},
	game.GenreSpace: {
		name:   "space exploration adventure",
		themes: []string{"friendly aliens", "wondrous planets", "helpful robots", "the joy of discovery"},
	},
	game.GenreDungeon: {
		name:   "friendly castle quest",
		themes: []string{"kind knights", "clever riddles", "glowing treasure rooms", "secret passages"},
	},
	game.GenreMystery: {
		name:   "curious mansion mystery",
		themes: []string{"gentle puzzles", "helpful clues", "quirky characters", "surprising discoveries"},
	},
}

// SystemPrompt assembles the full system prompt for a segment request.
func SystemPrompt(genre game.Genre, mode game.Mode, difficulty int, vocabWords []string) string {
	setting, ok := genreSettings[genre]
	if !ok {
		setting = genreSettings[game.GenreForest]
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, BaseSystemPrompt, setting.name, strings.Join(vocabWords, ", "), strings.Join(setting.themes, ", "))
	sb.WriteString("\n\n")
	switch difficulty {
	case 1:
		sb.WriteString(difficultyEasy)
	case 2:
		sb.WriteString(difficultyIntermediate)
	default:
		sb.WriteString(difficultyHard)
	}
	sb.WriteString("\n\n")
	if mode == game.ModeEvaluated {
		sb.WriteString(EvaluatedFormatPrompt)
	} else {
		sb.WriteString(ExplorationFormatPrompt)
	}
	return sb.String()
}
