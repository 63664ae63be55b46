// Package engine drives the turn lifecycle of a session: applying
// choices, resolving correctness, advancing or holding the story,
// backtracking, and completing games. All state transitions happen
// on a clone and are written back whole, so a failed operation never
// leaves a session half-updated.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lexiquest/lexiquest/internal/generator"
	"github.com/lexiquest/lexiquest/internal/session"
	"github.com/lexiquest/lexiquest/pkg/game"
	"github.com/lexiquest/lexiquest/pkg/textfilter"
)

const DefaultMaxBacktrack = 2

// Engine coordinates the session store and the content generator.
type Engine struct {
	store        *session.Store
	gen          *generator.Generator
	filter       *textfilter.Filter
	maxBacktrack int
	now          session.Clock
	logger       *slog.Logger
}

func New(store *session.Store, gen *generator.Generator, filter *textfilter.Filter, now session.Clock, logger *slog.Logger) *Engine {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		store:        store,
		gen:          gen,
		filter:       filter,
		maxBacktrack: DefaultMaxBacktrack,
		now:          now,
		logger:       logger,
	}
}

// WithMaxBacktrack overrides the per-session backtrack allowance.
func (e *Engine) WithMaxBacktrack(n int) *Engine {
	e.maxBacktrack = n
	return e
}

// Result is the outcome of a consumed or held turn.
type Result struct {
	State     *game.GameState `json:"state"`
	Correct   bool            `json:"correct"`
	Advanced  bool            `json:"advanced"`
	Completed bool            `json:"completed"`
	Hint      string          `json:"hint,omitempty"`
	Feedback  string          `json:"feedback,omitempty"`
	Reward    *game.Reward    `json:"reward,omitempty"`
}

// outcome is the advancement decision for one applied choice.
type outcome int

const (
	outcomeHold outcome = iota
	outcomeAdvance
	outcomeComplete
)

// advancement is a pure function of the inputs so the policy can be
// tested without a store or generator. Evaluated sessions hold on a
// wrong answer; free exploration always moves forward; either mode
// completes when a consumed turn lands on the round ceiling.
func advancement(mode game.Mode, correct bool, round, limit int) outcome {
	if mode == game.ModeEvaluated && !correct {
		return outcomeHold
	}
	if round >= limit {
		return outcomeComplete
	}
	return outcomeAdvance
}

// StartSession creates a session and generates its opening segment.
func (e *Engine) StartSession(ctx context.Context, genre game.Genre, mode game.Mode, sessionLimit int) (*game.GameState, error) {
	gs := game.NewGameState(genre, mode, sessionLimit, e.now())

	seg := e.gen.NextSegment(ctx, generator.Request{
		Genre: genre,
		Mode:  mode,
		Round: 1,
		Limit: gs.SessionLimit,
	})
	gs.StorySegments = append(gs.StorySegments, seg)
	gs.Progress.RecordWords(seg.VocabularyWords)

	if err := e.store.Create(gs); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	e.logger.Info("session started",
		"session_id", gs.SessionID,
		"genre", genre,
		"mode", mode,
		"session_limit", gs.SessionLimit)
	return gs, nil
}

// GetState returns a snapshot of the session.
func (e *Engine) GetState(id uuid.UUID) (*game.GameState, error) {
	return e.store.Get(id)
}

// ApplyChoice resolves a picked choice against the stored segment and
// advances, holds, or completes the session.
//
// turnToken is the turn number the caller believes the session is on.
// A mismatch means the caller raced another writer and gets
// ErrConflict instead of a silently misapplied choice.
func (e *Engine) ApplyChoice(ctx context.Context, sessionID uuid.UUID, segmentID, choiceID string, turnToken int) (*Result, error) {
	gs, err := e.store.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if gs.GameOver {
		return nil, fmt.Errorf("%w: game is over", game.ErrInvalidState)
	}
	if turnToken != gs.Turn {
		return nil, fmt.Errorf("%w: turn %d is stale, session is on turn %d", game.ErrConflict, turnToken, gs.Turn)
	}

	seg := gs.Segment(segmentID)
	if seg == nil {
		return nil, fmt.Errorf("%w: unknown segment %s", game.ErrNotFound, segmentID)
	}
	if cur := gs.CurrentSegment(); cur == nil || cur.ID != segmentID {
		return nil, fmt.Errorf("%w: segment %s is not the current segment", game.ErrInvalidInput, segmentID)
	}
	choice := seg.Choice(choiceID)
	if choice == nil {
		return nil, fmt.Errorf("%w: unknown choice %s", game.ErrInvalidInput, choiceID)
	}

	return e.applyResolved(ctx, gs, seg, choice, "")
}

// ApplyFreeText resolves typed input against the current segment's
// choices, then applies the matched choice. Input that matches no
// choice, or more than one, is rejected rather than guessed at.
func (e *Engine) ApplyFreeText(ctx context.Context, sessionID uuid.UUID, input string, turnToken int) (*Result, error) {
	gs, err := e.store.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if gs.GameOver {
		return nil, fmt.Errorf("%w: game is over", game.ErrInvalidState)
	}
	if turnToken != gs.Turn {
		return nil, fmt.Errorf("%w: turn %d is stale, session is on turn %d", game.ErrConflict, turnToken, gs.Turn)
	}

	seg := gs.CurrentSegment()
	if seg == nil {
		return nil, fmt.Errorf("%w: session has no current segment", game.ErrInvalidState)
	}

	clean := e.filter.Sanitize(input)
	choice, numeric, err := resolveNumeric(seg, clean)
	if err != nil {
		return nil, err
	}
	if !numeric {
		// Prose input goes through the safety gate before matching.
		if safe, reason := e.filter.IsSafe(clean); !safe {
			return nil, fmt.Errorf("%w: %s", game.ErrInvalidInput, reason)
		}
		if choice = seg.MatchChoiceText(clean); choice == nil {
			return nil, fmt.Errorf("%w: input does not match any choice", game.ErrInvalidInput)
		}
	}

	// Canned encouragement plus any vocabulary the reply introduces.
	feedback, words := e.gen.FreeTextResponse(clean, gs.CurrentRound, gs.SessionLimit)
	gs.Progress.RecordWords(words)

	res, err := e.applyResolved(ctx, gs, seg, choice, clean)
	if err != nil {
		return nil, err
	}
	if res.Feedback == "" {
		res.Feedback = feedback
	}
	return res, nil
}

// resolveNumeric maps a bare 1-based number like "2" or "2." onto a
// choice. The second return reports whether the input was numeric at
// all; non-numeric input falls through to text matching.
func resolveNumeric(seg *game.StorySegment, input string) (*game.Choice, bool, error) {
	trimmed := strings.TrimSpace(input)
	if len(trimmed) == 0 || trimmed[0] < '1' || trimmed[0] > '9' {
		return nil, false, nil
	}
	if rest := strings.TrimLeft(trimmed[1:], ".) "); rest != "" {
		return nil, false, nil
	}
	n := int(trimmed[0] - '1')
	if n >= len(seg.Choices) {
		return nil, true, fmt.Errorf("%w: choice number %d is out of range", game.ErrInvalidInput, n+1)
	}
	return &seg.Choices[n], true, nil
}

// applyResolved carries out the advancement policy for a resolved
// choice. All mutation happens on gs, which is already a snapshot.
func (e *Engine) applyResolved(ctx context.Context, gs *game.GameState, seg *game.StorySegment, choice *game.Choice, userInput string) (*Result, error) {
	res := &Result{Correct: choice.IsCorrect}

	switch advancement(gs.Mode, choice.IsCorrect, gs.CurrentRound, gs.SessionLimit) {
	case outcomeHold:
		// Wrong answer in evaluated mode: the turn is not consumed.
		// Only the progress counters move.
		gs.Progress.IncorrectChoices++
		res.Hint = seg.Hint
		res.Feedback = "Not quite! Try again."

	case outcomeAdvance:
		// Evaluated advancement earns the star for answering right;
		// free exploration marks story progress with the badge.
		reward := game.RewardCorrectChoice()
		if gs.Mode == game.ModeFreeExploration {
			reward = game.RewardSegmentComplete()
		}
		e.consumeTurn(gs, seg, choice, userInput, &reward)

		next := e.gen.NextSegment(ctx, generator.Request{
			Genre:    gs.Genre,
			Mode:     gs.Mode,
			Round:    gs.CurrentRound,
			Limit:    gs.SessionLimit,
			Segments: segmentTexts(gs),
			Choices:  choiceTexts(gs),
		})
		gs.StorySegments = append(gs.StorySegments, next)
		gs.Progress.RecordWords(next.VocabularyWords)
		gs.Progress.Difficulty = game.DifficultyForRound(gs.CurrentRound)
		res.Advanced = true
		res.Reward = &reward

	case outcomeComplete:
		reward := game.RewardSessionComplete()
		e.consumeTurn(gs, seg, choice, userInput, &reward)
		gs.GameOver = true
		res.Completed = true
		res.Reward = &reward
		res.Feedback = "Congratulations, you finished the adventure!"
	}

	if err := e.store.Update(gs); err != nil {
		return nil, err
	}
	res.State = gs
	return res, nil
}

// consumeTurn records the history entry and moves the counters. The
// reward is logged on both the turn and the progress record.
// Re-answering a rewound turn replaces its record in place so turn
// numbers in the history stay strictly increasing.
func (e *Engine) consumeTurn(gs *game.GameState, seg *game.StorySegment, choice *game.Choice, userInput string, reward *game.Reward) {
	entry := game.Turn{
		Turn:       gs.Turn,
		SegmentID:  seg.ID,
		ChoiceID:   choice.ID,
		UserInput:  userInput,
		WasCorrect: choice.IsCorrect,
		Reward:     reward,
		Timestamp:  e.now(),
	}
	if n := len(gs.History); n > 0 && gs.History[n-1].Turn == gs.Turn {
		gs.History[n-1] = entry
	} else {
		gs.History = append(gs.History, entry)
	}
	if choice.IsCorrect {
		gs.Progress.CorrectChoices++
	}
	if reward != nil {
		gs.Progress.AddReward(*reward)
	}
	gs.Turn++
	gs.CurrentRound++
}

// ApplyChallenge checks a word challenge answer on the current
// segment. Challenges never advance the story; a correct answer
// earns a coin reward.
func (e *Engine) ApplyChallenge(sessionID uuid.UUID, segmentID, answer string) (*Result, error) {
	gs, err := e.store.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if gs.GameOver {
		return nil, fmt.Errorf("%w: game is over", game.ErrInvalidState)
	}

	seg := gs.Segment(segmentID)
	if seg == nil {
		return nil, fmt.Errorf("%w: unknown segment %s", game.ErrNotFound, segmentID)
	}
	if cur := gs.CurrentSegment(); cur == nil || cur.ID != segmentID {
		return nil, fmt.Errorf("%w: segment %s is not the current segment", game.ErrInvalidInput, segmentID)
	}
	if seg.WordChallenge == nil {
		return nil, fmt.Errorf("%w: segment has no word challenge", game.ErrInvalidInput)
	}

	want := seg.WordChallenge.Answer
	if want == "" {
		want = seg.WordChallenge.Word
	}
	correct := strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(want))

	res := &Result{Correct: correct}
	if correct {
		reward := game.RewardChallengeComplete()
		gs.Progress.ChallengesCompleted++
		gs.Progress.AddReward(reward)
		gs.Progress.RecordWords([]string{seg.WordChallenge.Word})
		res.Reward = &reward
		res.Feedback = "Great job! You completed the word challenge."
	} else {
		res.Hint = e.gen.Hint(seg.WordChallenge.Type)
		res.Feedback = "Almost! Give it another try."
	}

	if err := e.store.Update(gs); err != nil {
		return nil, err
	}
	res.State = gs
	return res, nil
}

// Backtrack rewinds the session to targetTurn. The player re-answers
// that turn's segment; progress and rewards are kept.
func (e *Engine) Backtrack(sessionID uuid.UUID, targetTurn int) (*game.GameState, error) {
	gs, err := e.store.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if gs.BacktrackCount >= e.maxBacktrack {
		return nil, fmt.Errorf("%w: backtrack limit of %d reached", game.ErrInvalidInput, e.maxBacktrack)
	}
	if targetTurn < 1 || targetTurn >= gs.Turn {
		return nil, fmt.Errorf("%w: target turn %d must be between 1 and %d", game.ErrInvalidInput, targetTurn, gs.Turn-1)
	}

	gs.TruncateTo(targetTurn)
	if err := e.store.Update(gs); err != nil {
		return nil, err
	}
	e.logger.Info("session backtracked",
		"session_id", gs.SessionID,
		"target_turn", targetTurn,
		"backtrack_count", gs.BacktrackCount)
	return gs, nil
}

// EndSession finishes the session early. The state stays readable.
func (e *Engine) EndSession(sessionID uuid.UUID) (*game.GameState, error) {
	if err := e.store.End(sessionID); err != nil {
		return nil, err
	}
	return e.store.Get(sessionID)
}

// Stats reports store-level statistics.
func (e *Engine) Stats() session.Stats {
	return e.store.Stats()
}

func segmentTexts(gs *game.GameState) []string {
	texts := make([]string, 0, len(gs.StorySegments))
	for _, s := range gs.StorySegments {
		texts = append(texts, s.Text)
	}
	return texts
}

func choiceTexts(gs *game.GameState) []string {
	texts := make([]string, 0, len(gs.History))
	for _, t := range gs.History {
		seg := gs.Segment(t.SegmentID)
		if seg == nil {
			continue
		}
		if c := seg.Choice(t.ChoiceID); c != nil {
			texts = append(texts, c.Text)
		}
	}
	return texts
}
