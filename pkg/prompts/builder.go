package prompts

import (
	"fmt"

	"github.com/lexiquest/lexiquest/pkg/chat"
	"github.com/lexiquest/lexiquest/pkg/game"
	"github.com/lexiquest/lexiquest/pkg/vocabulary"
)

// Context window defaults. Sessions can run long, but the model only
// ever sees the most recent slice of the story; older rounds add cost
// without improving the next segment.
const (
	DefaultChoiceWindow  = 3
	DefaultSegmentWindow = 2
	vocabSampleSize      = 8
)

// Builder constructs chat messages for segment generation using a
// fluent interface. It owns the context windowing so callers can hand
// it full history slices.
type Builder struct {
	genre         game.Genre
	mode          game.Mode
	round         int
	limit         int
	segments      []string
	choices       []string
	choiceWindow  int
	segmentWindow int
}

// New creates a prompt builder with default window sizes.
func New() *Builder {
	return &Builder{
		mode:          game.ModeEvaluated,
		choiceWindow:  DefaultChoiceWindow,
		segmentWindow: DefaultSegmentWindow,
	}
}

// WithGenre sets the story genre.
func (b *Builder) WithGenre(genre game.Genre) *Builder {
	b.genre = genre
	return b
}

// WithMode sets the session mode, which selects the reply format.
func (b *Builder) WithMode(mode game.Mode) *Builder {
	b.mode = mode
	return b
}

// WithRound sets the current round and the session's round limit.
func (b *Builder) WithRound(round, limit int) *Builder {
	b.round = round
	b.limit = limit
	return b
}

// WithStoryContext sets the prior segment texts and player choices.
// Full slices are fine; Build windows them.
func (b *Builder) WithStoryContext(segments, choices []string) *Builder {
	b.segments = segments
	b.choices = choices
	return b
}

// WithWindows overrides the context window sizes.
func (b *Builder) WithWindows(segmentWindow, choiceWindow int) *Builder {
	b.segmentWindow = segmentWindow
	b.choiceWindow = choiceWindow
	return b
}

// Build constructs the message array for LLM consumption.
func (b *Builder) Build() ([]chat.Message, error) {
	if b.genre == "" {
		return nil, fmt.Errorf("genre is required")
	}
	if !b.mode.IsValid() {
		return nil, fmt.Errorf("invalid mode %q", b.mode)
	}
	if b.round < 1 {
		return nil, fmt.Errorf("round must be positive, got %d", b.round)
	}

	difficulty := game.DifficultyForRound(b.round)
	messages := []chat.Message{{
		Role:    chat.RoleSystem,
		Content: SystemPrompt(b.genre, b.mode, difficulty, vocabulary.Sample(difficulty, vocabSampleSize)),
	}}

	// Interleave windowed story beats and choices so the model sees
	// the conversation shape it expects.
	segments := tail(b.segments, b.segmentWindow)
	choices := tail(b.choices, b.choiceWindow)
	for i, seg := range segments {
		messages = append(messages, chat.Message{Role: chat.RoleAssistant, Content: seg})
		// Pair each old segment with the choice that followed it.
		if offset := len(choices) - len(segments) + i; offset >= 0 {
			messages = append(messages, chat.Message{Role: chat.RoleUser, Content: "I chose: " + choices[offset]})
		}
	}

	instruction := fmt.Sprintf("Continue the story for round %d of %d.", b.round, b.limit)
	if b.round == 1 {
		instruction = "Begin the adventure with an inviting opening scene."
	}
	if b.limit > 0 && b.round >= b.limit {
		instruction += "\n\n" + FinalRoundPrompt
	}
	messages = append(messages, chat.Message{Role: chat.RoleUser, Content: instruction})

	return messages, nil
}

func tail(items []string, n int) []string {
	if n <= 0 || len(items) <= n {
		return items
	}
	return items[len(items)-n:]
}
