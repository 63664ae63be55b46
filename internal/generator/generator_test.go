package generator

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"testing"

	"github.com/lexiquest/lexiquest/internal/services"
	"github.com/lexiquest/lexiquest/pkg/fallback"
	"github.com/lexiquest/lexiquest/pkg/game"
	"github.com/lexiquest/lexiquest/pkg/textfilter"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestGenerator(llm services.LLMService) *Generator {
	return New(llm, fallback.New(1), textfilter.New(), testLogger())
}

const goodEvaluatedReply = `STORY: The owl points its wing at three glowing doors.
QUESTION: Which word means very old?
CHOICE_A: ancient
CHOICE_B: shiny
CHOICE_C: loud
CORRECT: A
HINT: Think of castles built long, long ago.`

func TestNextSegmentFromLLM(t *testing.T) {
	mock := services.NewMockLLM()
	mock.SetChatReply(goodEvaluatedReply)

	seg := newTestGenerator(mock).NextSegment(context.Background(), Request{
		Genre: game.GenreForest,
		Mode:  game.ModeEvaluated,
		Round: 2,
		Limit: 8,
	})

	if seg.ID == "" {
		t.Error("segment should get an id")
	}
	if len(seg.Choices) != 3 {
		t.Fatalf("expected 3 choices, got %d", len(seg.Choices))
	}
	if !seg.Choices[0].IsCorrect || seg.Choices[1].IsCorrect || seg.Choices[2].IsCorrect {
		t.Error("only choice A should be correct")
	}
	found := false
	for _, w := range seg.VocabularyWords {
		if w == "ancient" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected 'ancient' in vocabulary words, got %v", seg.VocabularyWords)
	}
}

func TestNextSegmentAlwaysErroringProvider(t *testing.T) {
	mock := services.NewMockLLM()
	mock.SetChatError(fmt.Errorf("provider unavailable"))

	gen := newTestGenerator(mock)
	for round := 1; round <= 10; round++ {
		seg := gen.NextSegment(context.Background(), Request{
			Genre: game.GenreSpace,
			Mode:  game.ModeEvaluated,
			Round: round,
			Limit: 10,
		})
		if seg.Text == "" {
			t.Fatalf("round %d: fallback segment has no text", round)
		}
		if len(seg.Choices) != 3 {
			t.Fatalf("round %d: fallback segment has %d choices, want 3", round, len(seg.Choices))
		}
		correct := 0
		for _, c := range seg.Choices {
			if c.IsCorrect {
				correct++
			}
		}
		if correct != 1 {
			t.Fatalf("round %d: fallback segment has %d correct choices, want 1", round, correct)
		}
	}
}

func TestNextSegmentUnparseableReply(t *testing.T) {
	mock := services.NewMockLLM()
	mock.SetChatReply("Once upon a time there was a story with no choices at all.")

	seg := newTestGenerator(mock).NextSegment(context.Background(), Request{
		Genre: game.GenreDungeon,
		Mode:  game.ModeFreeExploration,
		Round: 3,
		Limit: 8,
	})

	if len(seg.Choices) != 4 {
		t.Errorf("fallback exploration segment has %d choices, want 4", len(seg.Choices))
	}
}

func TestNextSegmentUnsafeReplyFallsBack(t *testing.T) {
	mock := services.NewMockLLM()
	mock.SetChatReply(`STORY: The terrifying ghost attacks with a weapon.
CHOICE1: Run
CHOICE2: Hide
CHOICE3: Shout
CHOICE4: Cry`)

	seg := newTestGenerator(mock).NextSegment(context.Background(), Request{
		Genre: game.GenreMystery,
		Mode:  game.ModeFreeExploration,
		Round: 1,
		Limit: 8,
	})

	if safe, reason := textfilter.New().IsSafe(seg.Text); !safe {
		t.Errorf("served segment should be safe, got %q (%s)", seg.Text, reason)
	}
}

func TestNextSegmentSoftensMildWords(t *testing.T) {
	mock := services.NewMockLLM()
	mock.SetChatReply(`STORY: The wizard calls the maze a stupid trick and laughs kindly.
CHOICE1: Laugh along
CHOICE2: Study the maze
CHOICE3: Ask the wizard why
CHOICE4: Walk around it`)

	seg := newTestGenerator(mock).NextSegment(context.Background(), Request{
		Genre: game.GenreForest,
		Mode:  game.ModeFreeExploration,
		Round: 2,
		Limit: 8,
	})

	if got := seg.Text; got != "The wizard calls the maze a silly trick and laughs kindly." {
		t.Errorf("mild words should be softened, got %q", got)
	}
}

func TestNextSegmentEvaluatedWithoutCorrectDefaultsToFirst(t *testing.T) {
	mock := services.NewMockLLM()
	mock.SetChatReply(`STORY: A riddle appears on the wall.
QUESTION: Pick the word for a puzzle.
CHOICE_A: riddle
CHOICE_B: river
CHOICE_C: ladder`)

	seg := newTestGenerator(mock).NextSegment(context.Background(), Request{
		Genre: game.GenreDungeon,
		Mode:  game.ModeEvaluated,
		Round: 4,
		Limit: 8,
	})

	correct := 0
	for i, c := range seg.Choices {
		if c.IsCorrect {
			correct++
			if i != 0 {
				t.Errorf("choice %d marked correct, want first", i)
			}
		}
	}
	if correct != 1 {
		t.Errorf("expected exactly one correct choice, got %d", correct)
	}
}

func TestNextSegmentChallengeGetsHintAndAnswer(t *testing.T) {
	mock := services.NewMockLLM()
	mock.SetChatReply(`STORY: A crystal glows beside the path.
CHOICE1: Pick it up
CHOICE2: Leave it
CHOICE3: Study it
CHOICE4: Ask about it
CHALLENGE_TYPE: spelling
CHALLENGE_WORD: crystal
CHALLENGE_PROMPT: Spell the word for the sparkling stone.`)

	seg := newTestGenerator(mock).NextSegment(context.Background(), Request{
		Genre: game.GenreForest,
		Mode:  game.ModeFreeExploration,
		Round: 2,
		Limit: 8,
	})

	if seg.WordChallenge == nil {
		t.Fatal("expected a word challenge")
	}
	if seg.WordChallenge.Answer != "crystal" {
		t.Errorf("challenge answer = %q, want crystal", seg.WordChallenge.Answer)
	}
	if seg.WordChallenge.Hint == "" {
		t.Error("challenge should carry a hint")
	}
}
