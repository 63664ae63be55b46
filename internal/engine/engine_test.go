package engine

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/lexiquest/lexiquest/internal/generator"
	"github.com/lexiquest/lexiquest/internal/session"
	"github.com/lexiquest/lexiquest/internal/services"
	"github.com/lexiquest/lexiquest/pkg/fallback"
	"github.com/lexiquest/lexiquest/pkg/game"
	"github.com/lexiquest/lexiquest/pkg/textfilter"
)

const evaluatedReply = `STORY: The friendly owl asks you a question about the ancient map.
QUESTION: Which word means very old?
CHOICE_A: shiny
CHOICE_B: ancient
CHOICE_C: loud
CORRECT: B
HINT: Castles from long ago are described this way.`

const explorationReply = `STORY: The silver path splits beneath the crystal trees.
CHOICE1: Follow the left path
CHOICE2: Follow the right path
CHOICE3: Climb a tree to look around
CHOICE4: Rest by the stream
CHALLENGE_TYPE: spelling
CHALLENGE_WORD: crystal
CHALLENGE_PROMPT: Spell the word for the sparkling stone.`

type fixture struct {
	engine *Engine
	store  *session.Store
	mock   *services.MockLLM
	clock  *fakeClock
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newFixture(t *testing.T, reply string) *fixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	clock := &fakeClock{now: time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)}
	store := session.NewStore(session.Config{}, clock.Now)
	mock := services.NewMockLLM()
	if reply != "" {
		mock.SetChatReply(reply)
	}
	filter := textfilter.New()
	gen := generator.New(mock, fallback.New(1), filter, logger)
	return &fixture{
		engine: New(store, gen, filter, clock.Now, logger),
		store:  store,
		mock:   mock,
		clock:  clock,
	}
}

func checkInvariant(t *testing.T, gs *game.GameState) {
	t.Helper()
	diff := len(gs.StorySegments) - len(gs.History)
	if diff != 0 && diff != 1 {
		t.Fatalf("invariant broken: %d segments, %d history entries", len(gs.StorySegments), len(gs.History))
	}
}

func TestAdvancementPolicy(t *testing.T) {
	tests := []struct {
		name    string
		mode    game.Mode
		correct bool
		round   int
		limit   int
		want    outcome
	}{
		{"evaluated wrong answer holds", game.ModeEvaluated, false, 3, 8, outcomeHold},
		{"evaluated correct advances", game.ModeEvaluated, true, 3, 8, outcomeAdvance},
		{"evaluated correct at ceiling completes", game.ModeEvaluated, true, 8, 8, outcomeComplete},
		{"evaluated wrong at ceiling still holds", game.ModeEvaluated, false, 8, 8, outcomeHold},
		{"free exploration advances", game.ModeFreeExploration, true, 3, 8, outcomeAdvance},
		{"free exploration at ceiling completes", game.ModeFreeExploration, true, 8, 8, outcomeComplete},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := advancement(tt.mode, tt.correct, tt.round, tt.limit); got != tt.want {
				t.Errorf("advancement() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStartSession(t *testing.T) {
	f := newFixture(t, evaluatedReply)

	gs, err := f.engine.StartSession(context.Background(), game.GenreForest, game.ModeEvaluated, 8)
	if err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}
	if gs.Turn != 1 || gs.CurrentRound != 1 {
		t.Errorf("new session turn/round = %d/%d, want 1/1", gs.Turn, gs.CurrentRound)
	}
	if len(gs.StorySegments) != 1 {
		t.Fatalf("new session has %d segments, want 1", len(gs.StorySegments))
	}
	if len(gs.StorySegments[0].Choices) != 3 {
		t.Errorf("evaluated segment has %d choices, want 3", len(gs.StorySegments[0].Choices))
	}
	checkInvariant(t, gs)

	stored, err := f.engine.GetState(gs.SessionID)
	if err != nil {
		t.Fatalf("GetState failed: %v", err)
	}
	if stored.SessionID != gs.SessionID {
		t.Error("stored session does not match")
	}
}

func TestApplyChoiceCorrectAdvances(t *testing.T) {
	f := newFixture(t, evaluatedReply)
	gs, _ := f.engine.StartSession(context.Background(), game.GenreForest, game.ModeEvaluated, 8)
	seg := gs.CurrentSegment()

	res, err := f.engine.ApplyChoice(context.Background(), gs.SessionID, seg.ID, "B", gs.Turn)
	if err != nil {
		t.Fatalf("ApplyChoice failed: %v", err)
	}
	if !res.Correct || !res.Advanced || res.Completed {
		t.Errorf("unexpected result: correct=%v advanced=%v completed=%v", res.Correct, res.Advanced, res.Completed)
	}
	if res.State.Turn != 2 {
		t.Errorf("turn = %d, want 2", res.State.Turn)
	}
	if len(res.State.StorySegments) != 2 || len(res.State.History) != 1 {
		t.Errorf("segments/history = %d/%d, want 2/1", len(res.State.StorySegments), len(res.State.History))
	}
	if res.Reward == nil || res.Reward.Kind != "star" {
		t.Errorf("correct choice should earn a star, got %+v", res.Reward)
	}
	checkInvariant(t, res.State)
}

func TestApplyChoiceIncorrectHolds(t *testing.T) {
	f := newFixture(t, evaluatedReply)
	gs, _ := f.engine.StartSession(context.Background(), game.GenreForest, game.ModeEvaluated, 8)
	seg := gs.CurrentSegment()

	res, err := f.engine.ApplyChoice(context.Background(), gs.SessionID, seg.ID, "A", gs.Turn)
	if err != nil {
		t.Fatalf("ApplyChoice failed: %v", err)
	}
	if res.Correct || res.Advanced {
		t.Error("wrong answer must not advance")
	}
	if res.Hint == "" {
		t.Error("held turn should return the segment hint")
	}
	if res.State.Turn != 1 {
		t.Errorf("held turn consumed the turn counter: %d", res.State.Turn)
	}
	if len(res.State.History) != 0 {
		t.Errorf("held turn appended history: %d entries", len(res.State.History))
	}
	if res.State.Progress.IncorrectChoices != 1 {
		t.Errorf("incorrect count = %d, want 1", res.State.Progress.IncorrectChoices)
	}
	checkInvariant(t, res.State)
}

func TestApplyChoicePreconditions(t *testing.T) {
	f := newFixture(t, evaluatedReply)
	gs, _ := f.engine.StartSession(context.Background(), game.GenreForest, game.ModeEvaluated, 8)
	seg := gs.CurrentSegment()

	if _, err := f.engine.ApplyChoice(context.Background(), uuid.New(), seg.ID, "A", 1); !errors.Is(err, game.ErrNotFound) {
		t.Errorf("unknown session error = %v, want ErrNotFound", err)
	}
	if _, err := f.engine.ApplyChoice(context.Background(), gs.SessionID, seg.ID, "A", 5); !errors.Is(err, game.ErrConflict) {
		t.Errorf("stale token error = %v, want ErrConflict", err)
	}
	if _, err := f.engine.ApplyChoice(context.Background(), gs.SessionID, "wrong-segment", "A", gs.Turn); !errors.Is(err, game.ErrNotFound) {
		t.Errorf("unknown segment error = %v, want ErrNotFound", err)
	}
	if _, err := f.engine.ApplyChoice(context.Background(), gs.SessionID, seg.ID, "Z", gs.Turn); !errors.Is(err, game.ErrInvalidInput) {
		t.Errorf("unknown choice error = %v, want ErrInvalidInput", err)
	}

	res, err := f.engine.ApplyChoice(context.Background(), gs.SessionID, seg.ID, "B", gs.Turn)
	if err != nil {
		t.Fatalf("ApplyChoice failed: %v", err)
	}
	if !res.Advanced {
		t.Fatal("correct answer should advance")
	}
	if _, err := f.engine.ApplyChoice(context.Background(), gs.SessionID, seg.ID, "B", res.State.Turn); !errors.Is(err, game.ErrInvalidInput) {
		t.Errorf("answered segment error = %v, want ErrInvalidInput", err)
	}
}

func TestApplyChoiceAfterGameOver(t *testing.T) {
	f := newFixture(t, evaluatedReply)
	gs, _ := f.engine.StartSession(context.Background(), game.GenreForest, game.ModeEvaluated, 8)
	if _, err := f.engine.EndSession(gs.SessionID); err != nil {
		t.Fatalf("EndSession failed: %v", err)
	}

	before, _ := f.engine.GetState(gs.SessionID)
	seg := before.CurrentSegment()

	_, err := f.engine.ApplyChoice(context.Background(), gs.SessionID, seg.ID, "B", before.Turn)
	if !errors.Is(err, game.ErrInvalidState) {
		t.Fatalf("error = %v, want ErrInvalidState", err)
	}

	after, _ := f.engine.GetState(gs.SessionID)
	if after.Turn != before.Turn || len(after.History) != len(before.History) {
		t.Error("rejected operation must leave state unchanged")
	}
}

func TestFreeExplorationAlwaysAdvances(t *testing.T) {
	f := newFixture(t, explorationReply)
	gs, _ := f.engine.StartSession(context.Background(), game.GenreSpace, game.ModeFreeExploration, 5)

	for round := 1; round < 5; round++ {
		state, _ := f.engine.GetState(gs.SessionID)
		seg := state.CurrentSegment()
		res, err := f.engine.ApplyChoice(context.Background(), gs.SessionID, seg.ID, seg.Choices[round%4].ID, state.Turn)
		if err != nil {
			t.Fatalf("round %d: ApplyChoice failed: %v", round, err)
		}
		if !res.Advanced && !res.Completed {
			t.Fatalf("round %d: free exploration should always move forward", round)
		}
		if res.Advanced && (res.Reward == nil || res.Reward.Kind != "badge") {
			t.Errorf("round %d: reward = %+v, want the explorer badge", round, res.Reward)
		}
		checkInvariant(t, res.State)
	}

	final, _ := f.engine.GetState(gs.SessionID)
	seg := final.CurrentSegment()
	res, err := f.engine.ApplyChoice(context.Background(), gs.SessionID, seg.ID, seg.Choices[0].ID, final.Turn)
	if err != nil {
		t.Fatalf("final round failed: %v", err)
	}
	if !res.Completed || !res.State.GameOver {
		t.Error("reaching the round ceiling should complete the game")
	}
}

func TestSevenRoundCompletion(t *testing.T) {
	f := newFixture(t, evaluatedReply)
	gs, err := f.engine.StartSession(context.Background(), game.GenreForest, game.ModeEvaluated, 7)
	if err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}

	var last *Result
	for round := 1; round <= 7; round++ {
		state, err := f.engine.GetState(gs.SessionID)
		if err != nil {
			t.Fatalf("round %d: GetState failed: %v", round, err)
		}
		seg := state.CurrentSegment()

		var correctID string
		for _, c := range seg.Choices {
			if c.IsCorrect {
				correctID = c.ID
				break
			}
		}
		last, err = f.engine.ApplyChoice(context.Background(), gs.SessionID, seg.ID, correctID, state.Turn)
		if err != nil {
			t.Fatalf("round %d: ApplyChoice failed: %v", round, err)
		}
		checkInvariant(t, last.State)
	}

	if !last.Completed {
		t.Fatal("seventh correct choice should complete the game")
	}
	if !last.State.GameOver {
		t.Error("completed game should be over")
	}
	if last.Reward == nil || last.Reward.Kind != "achievement" {
		t.Errorf("completion should award the achievement, got %+v", last.Reward)
	}
	if len(last.State.History) != 7 {
		t.Errorf("history length = %d, want 7", len(last.State.History))
	}

	stats := f.engine.Stats()
	if stats.Completed != 1 {
		t.Errorf("completed games = %d, want 1", stats.Completed)
	}
}

func TestApplyFreeText(t *testing.T) {
	f := newFixture(t, explorationReply)
	gs, _ := f.engine.StartSession(context.Background(), game.GenreForest, game.ModeFreeExploration, 8)
	state, _ := f.engine.GetState(gs.SessionID)
	seg := state.CurrentSegment()

	res, err := f.engine.ApplyFreeText(context.Background(), gs.SessionID, seg.Choices[1].Text, state.Turn)
	if err != nil {
		t.Fatalf("exact text match failed: %v", err)
	}
	if !res.Advanced {
		t.Error("matched free text should advance")
	}
	if res.Feedback == "" {
		t.Error("free text should return feedback")
	}
}

func TestApplyFreeTextNumericPrefix(t *testing.T) {
	f := newFixture(t, explorationReply)
	gs, _ := f.engine.StartSession(context.Background(), game.GenreForest, game.ModeFreeExploration, 8)
	state, _ := f.engine.GetState(gs.SessionID)

	res, err := f.engine.ApplyFreeText(context.Background(), gs.SessionID, "2.", state.Turn)
	if err != nil {
		t.Fatalf("numeric prefix failed: %v", err)
	}
	expected := state.CurrentSegment().Choices[1].ID
	if res.State.History[0].ChoiceID != expected {
		t.Errorf("numeric prefix picked choice %s, want %s", res.State.History[0].ChoiceID, expected)
	}
}

func TestApplyFreeTextRejectsAmbiguousInput(t *testing.T) {
	f := newFixture(t, explorationReply)
	gs, _ := f.engine.StartSession(context.Background(), game.GenreForest, game.ModeFreeExploration, 8)
	state, _ := f.engine.GetState(gs.SessionID)

	tests := []struct {
		name  string
		input string
	}{
		{"no match", "dance with the trees all night"},
		{"partial match", "follow the"},
		{"out of range number", "9."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.engine.ApplyFreeText(context.Background(), gs.SessionID, tt.input, state.Turn)
			if !errors.Is(err, game.ErrInvalidInput) {
				t.Errorf("error = %v, want ErrInvalidInput", err)
			}
		})
	}

	after, _ := f.engine.GetState(gs.SessionID)
	if after.Turn != state.Turn {
		t.Error("rejected input must not consume a turn")
	}
}

func TestApplyFreeTextRejectsUnsafeInput(t *testing.T) {
	f := newFixture(t, explorationReply)
	gs, _ := f.engine.StartSession(context.Background(), game.GenreForest, game.ModeFreeExploration, 8)
	state, _ := f.engine.GetState(gs.SessionID)

	_, err := f.engine.ApplyFreeText(context.Background(), gs.SessionID, "attack the owl with a weapon", state.Turn)
	if !errors.Is(err, game.ErrInvalidInput) {
		t.Errorf("unsafe input error = %v, want ErrInvalidInput", err)
	}
}

func TestApplyChallenge(t *testing.T) {
	f := newFixture(t, explorationReply)
	gs, _ := f.engine.StartSession(context.Background(), game.GenreForest, game.ModeFreeExploration, 8)
	state, _ := f.engine.GetState(gs.SessionID)
	seg := state.CurrentSegment()
	if seg.WordChallenge == nil {
		t.Fatal("fixture segment should carry a challenge")
	}

	res, err := f.engine.ApplyChallenge(gs.SessionID, seg.ID, "  CRYSTAL ")
	if err != nil {
		t.Fatalf("ApplyChallenge failed: %v", err)
	}
	if !res.Correct {
		t.Error("case-insensitive answer should be accepted")
	}
	if res.Reward == nil || res.Reward.Kind != "coin" {
		t.Errorf("challenge should award a coin, got %+v", res.Reward)
	}
	if res.State.Turn != state.Turn {
		t.Error("challenges must not advance the story")
	}
	if res.State.Progress.ChallengesCompleted != 1 {
		t.Errorf("challenges completed = %d, want 1", res.State.Progress.ChallengesCompleted)
	}

	wrong, err := f.engine.ApplyChallenge(gs.SessionID, seg.ID, "diamond")
	if err != nil {
		t.Fatalf("ApplyChallenge failed: %v", err)
	}
	if wrong.Correct {
		t.Error("wrong answer should not be accepted")
	}
	if wrong.Hint == "" {
		t.Error("wrong answer should return a hint")
	}
}

func TestBacktrack(t *testing.T) {
	f := newFixture(t, evaluatedReply)
	gs, _ := f.engine.StartSession(context.Background(), game.GenreForest, game.ModeEvaluated, 8)

	// Play three correct turns to reach turn 4.
	for i := 0; i < 3; i++ {
		state, _ := f.engine.GetState(gs.SessionID)
		seg := state.CurrentSegment()
		if _, err := f.engine.ApplyChoice(context.Background(), gs.SessionID, seg.ID, "B", state.Turn); err != nil {
			t.Fatalf("turn %d failed: %v", i+1, err)
		}
	}

	before, _ := f.engine.GetState(gs.SessionID)
	if before.Turn != 4 {
		t.Fatalf("setup: turn = %d, want 4", before.Turn)
	}
	points := before.Progress.TotalPoints()

	state, err := f.engine.Backtrack(gs.SessionID, 2)
	if err != nil {
		t.Fatalf("Backtrack failed: %v", err)
	}
	if state.Turn != 2 {
		t.Errorf("turn after backtrack = %d, want 2", state.Turn)
	}
	if len(state.StorySegments) != 2 || len(state.History) != 2 {
		t.Errorf("segments/history = %d/%d, want 2/2", len(state.StorySegments), len(state.History))
	}
	if last := state.History[len(state.History)-1]; last.Turn != 2 {
		t.Errorf("last retained history turn = %d, want 2", last.Turn)
	}
	if state.BacktrackCount != 1 {
		t.Errorf("backtrack count = %d, want 1", state.BacktrackCount)
	}
	if state.Progress.TotalPoints() != points {
		t.Error("backtrack must preserve earned rewards")
	}
	checkInvariant(t, state)
}

func TestBacktrackReplayKeepsHistoryOrdered(t *testing.T) {
	f := newFixture(t, evaluatedReply)
	gs, _ := f.engine.StartSession(context.Background(), game.GenreForest, game.ModeEvaluated, 8)

	for i := 0; i < 3; i++ {
		state, _ := f.engine.GetState(gs.SessionID)
		seg := state.CurrentSegment()
		if _, err := f.engine.ApplyChoice(context.Background(), gs.SessionID, seg.ID, "B", state.Turn); err != nil {
			t.Fatalf("turn %d failed: %v", i+1, err)
		}
	}
	if _, err := f.engine.Backtrack(gs.SessionID, 2); err != nil {
		t.Fatalf("Backtrack failed: %v", err)
	}

	// Re-answering the rewound turn must replace its record, not
	// append a duplicate turn number.
	state, _ := f.engine.GetState(gs.SessionID)
	seg := state.CurrentSegment()
	res, err := f.engine.ApplyChoice(context.Background(), gs.SessionID, seg.ID, "B", state.Turn)
	if err != nil {
		t.Fatalf("replayed turn failed: %v", err)
	}
	if res.State.Turn != 3 {
		t.Errorf("turn after replay = %d, want 3", res.State.Turn)
	}
	if len(res.State.History) != 2 {
		t.Errorf("history length after replay = %d, want 2", len(res.State.History))
	}
	for i := 1; i < len(res.State.History); i++ {
		if res.State.History[i].Turn <= res.State.History[i-1].Turn {
			t.Fatalf("history turns out of order: %d then %d", res.State.History[i-1].Turn, res.State.History[i].Turn)
		}
	}
	checkInvariant(t, res.State)
}

func TestBacktrackLimits(t *testing.T) {
	f := newFixture(t, evaluatedReply)
	gs, _ := f.engine.StartSession(context.Background(), game.GenreForest, game.ModeEvaluated, 8)

	for i := 0; i < 4; i++ {
		state, _ := f.engine.GetState(gs.SessionID)
		seg := state.CurrentSegment()
		if _, err := f.engine.ApplyChoice(context.Background(), gs.SessionID, seg.ID, "B", state.Turn); err != nil {
			t.Fatalf("turn %d failed: %v", i+1, err)
		}
	}

	if _, err := f.engine.Backtrack(gs.SessionID, 0); !errors.Is(err, game.ErrInvalidInput) {
		t.Errorf("target 0 error = %v, want ErrInvalidInput", err)
	}
	if _, err := f.engine.Backtrack(gs.SessionID, 99); !errors.Is(err, game.ErrInvalidInput) {
		t.Errorf("future target error = %v, want ErrInvalidInput", err)
	}

	if _, err := f.engine.Backtrack(gs.SessionID, 4); err != nil {
		t.Fatalf("first backtrack failed: %v", err)
	}
	if _, err := f.engine.Backtrack(gs.SessionID, 3); err != nil {
		t.Fatalf("second backtrack failed: %v", err)
	}
	if _, err := f.engine.Backtrack(gs.SessionID, 2); !errors.Is(err, game.ErrInvalidInput) {
		t.Errorf("third backtrack error = %v, want ErrInvalidInput", err)
	}
}

func TestBacktrackReopensFinishedGame(t *testing.T) {
	f := newFixture(t, evaluatedReply)
	gs, _ := f.engine.StartSession(context.Background(), game.GenreForest, game.ModeEvaluated, 5)

	for round := 1; round <= 5; round++ {
		state, _ := f.engine.GetState(gs.SessionID)
		seg := state.CurrentSegment()
		if _, err := f.engine.ApplyChoice(context.Background(), gs.SessionID, seg.ID, "B", state.Turn); err != nil {
			t.Fatalf("round %d failed: %v", round, err)
		}
	}

	done, _ := f.engine.GetState(gs.SessionID)
	if !done.GameOver {
		t.Fatal("setup: game should be over")
	}

	state, err := f.engine.Backtrack(gs.SessionID, 3)
	if err != nil {
		t.Fatalf("Backtrack failed: %v", err)
	}
	if state.GameOver {
		t.Error("backtrack should reopen the game")
	}
	checkInvariant(t, state)
}

func TestGenerationFailureDoesNotCorruptState(t *testing.T) {
	f := newFixture(t, evaluatedReply)
	gs, _ := f.engine.StartSession(context.Background(), game.GenreForest, game.ModeEvaluated, 8)

	// Provider dies mid-session: the next advance serves fallback
	// content and the session stays consistent.
	f.mock.SetChatError(errors.New("provider unavailable"))

	state, _ := f.engine.GetState(gs.SessionID)
	seg := state.CurrentSegment()
	res, err := f.engine.ApplyChoice(context.Background(), gs.SessionID, seg.ID, "B", state.Turn)
	if err != nil {
		t.Fatalf("ApplyChoice with dead provider failed: %v", err)
	}
	if !res.Advanced {
		t.Error("turn should still advance on fallback content")
	}
	checkInvariant(t, res.State)
	next := res.State.CurrentSegment()
	if next == nil || len(next.Choices) != 3 {
		t.Error("fallback segment should be fully formed")
	}
}
