// Package generator produces story segments. It is the one place
// that talks to the LLM, and it never returns an error: any provider
// failure, timeout, parse failure, or safety rejection is absorbed
// by serving pre-authored fallback content instead.
package generator

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lexiquest/lexiquest/internal/services"
	"github.com/lexiquest/lexiquest/pkg/fallback"
	"github.com/lexiquest/lexiquest/pkg/game"
	"github.com/lexiquest/lexiquest/pkg/parser"
	"github.com/lexiquest/lexiquest/pkg/prompts"
	"github.com/lexiquest/lexiquest/pkg/textfilter"
	"github.com/lexiquest/lexiquest/pkg/vocabulary"
)

const DefaultTimeout = 30 * time.Second

var choiceIDs = []string{"A", "B", "C", "D"}

// Request carries everything needed to generate the next segment.
// Segments and Choices may be full history; the prompt builder
// windows them.
type Request struct {
	Genre    game.Genre
	Mode     game.Mode
	Round    int
	Limit    int
	Segments []string
	Choices  []string
}

// Generator turns requests into story segments, falling back to the
// library when live generation cannot produce a usable one.
type Generator struct {
	llm     services.LLMService
	lib     *fallback.Library
	parser  *parser.Parser
	filter  *textfilter.Filter
	timeout time.Duration
	logger  *slog.Logger
}

func New(llm services.LLMService, lib *fallback.Library, filter *textfilter.Filter, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{
		llm:     llm,
		lib:     lib,
		parser:  parser.New(logger),
		filter:  filter,
		timeout: DefaultTimeout,
		logger:  logger,
	}
}

// WithTimeout overrides the per-request generation deadline.
func (g *Generator) WithTimeout(d time.Duration) *Generator {
	g.timeout = d
	return g
}

// NextSegment returns the next story segment. The result is always
// valid for the requested mode; callers never see a generation
// failure.
func (g *Generator) NextSegment(ctx context.Context, req Request) game.StorySegment {
	seg, err := g.generate(ctx, req)
	if err != nil {
		g.logger.Warn("segment generation failed, serving fallback",
			"error", err,
			"genre", req.Genre,
			"round", req.Round)
		return g.lib.Segment(req.Genre, req.Mode, req.Round-1)
	}
	return seg
}

func (g *Generator) generate(ctx context.Context, req Request) (game.StorySegment, error) {
	messages, err := prompts.New().
		WithGenre(req.Genre).
		WithMode(req.Mode).
		WithRound(req.Round, req.Limit).
		WithStoryContext(req.Segments, req.Choices).
		Build()
	if err != nil {
		return game.StorySegment{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.llm.Chat(ctx, messages)
	if err != nil {
		return game.StorySegment{}, err
	}

	parsed, err := g.parser.Parse(resp.Message, req.Mode.ChoiceCount())
	if err != nil {
		return game.StorySegment{}, err
	}

	return g.buildSegment(parsed, req)
}

// buildSegment converts a parse result into a stored segment,
// applying the safety filter to everything player-facing.
func (g *Generator) buildSegment(parsed *parser.Segment, req Request) (game.StorySegment, error) {
	if safe, reason := g.filter.IsSafe(parsed.Story); !safe {
		return game.StorySegment{}, &unsafeError{reason: reason}
	}

	seg := game.StorySegment{
		ID:         uuid.NewString(),
		Text:       g.filter.Soften(parsed.Story),
		Question:   parsed.Question,
		Hint:       parsed.Hint,
		Difficulty: game.DifficultyForRound(req.Round),
	}
	seg.VocabularyWords = vocabulary.Extract(seg.Text)

	correct := parsed.CorrectIndex
	if req.Mode == game.ModeEvaluated && correct < 0 {
		// Evaluated segments need exactly one right answer.
		correct = 0
	}
	for i, text := range parsed.Choices {
		seg.Choices = append(seg.Choices, game.Choice{
			ID:        choiceIDs[i],
			Text:      g.filter.Soften(text),
			IsCorrect: correct < 0 || i == correct,
		})
	}

	if parsed.Challenge != nil {
		seg.WordChallenge = &game.WordChallenge{
			Type:   parsed.Challenge.Type,
			Word:   parsed.Challenge.Word,
			Prompt: parsed.Challenge.Prompt,
			Answer: parsed.Challenge.Word,
			Hint:   g.lib.Hint(parsed.Challenge.Type),
		}
	}

	return seg, nil
}

// FreeTextResponse returns encouraging feedback for free-text input
// along with any vocabulary words it contains.
func (g *Generator) FreeTextResponse(userText string, turn, limit int) (string, []string) {
	return g.lib.Response(userText, turn, limit)
}

// Hint returns a hint for a challenge type.
func (g *Generator) Hint(challengeType string) string {
	return g.lib.Hint(challengeType)
}

type unsafeError struct {
	reason string
}

func (e *unsafeError) Error() string {
	return "generated content rejected: " + e.reason
}
