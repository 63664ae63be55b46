package game

import (
	"time"

	"github.com/google/uuid"
)

const (
	// Session limits are rounds of story, not wall-clock time.
	DefaultSessionLimit = 8
	MinSessionLimit     = 5
	MaxSessionLimit     = 10
)

// GameState is the complete state of one play session. It is stored
// whole and replaced whole; callers mutate a clone and write it back
// so a failed operation never leaves a half-updated session behind.
//
// Two invariants hold at every stored state:
//   - len(StorySegments) == len(History) or len(History)+1
//   - GameOver only moves false to true, except through Backtrack
type GameState struct {
	SessionID      uuid.UUID      `json:"session_id"`
	Mode           Mode           `json:"mode"`
	Genre          Genre          `json:"genre"`
	Turn           int            `json:"turn"`
	CurrentRound   int            `json:"current_round"`
	SessionLimit   int            `json:"session_limit"`
	StorySegments  []StorySegment `json:"story_segments"`
	History        []Turn         `json:"history"`
	Progress       Progress       `json:"progress"`
	GameOver       bool           `json:"game_over"`
	BacktrackCount int            `json:"backtrack_count"`
	CreatedAt      time.Time      `json:"created_at"`
	LastActive     time.Time      `json:"last_active"`
}

// NewGameState creates a fresh session. The first story segment is
// appended by the engine before the state is stored.
func NewGameState(genre Genre, mode Mode, sessionLimit int, now time.Time) *GameState {
	if sessionLimit < MinSessionLimit || sessionLimit > MaxSessionLimit {
		sessionLimit = DefaultSessionLimit
	}
	return &GameState{
		SessionID:    uuid.New(),
		Mode:         mode,
		Genre:        genre,
		Turn:         1,
		CurrentRound: 1,
		SessionLimit: sessionLimit,
		Progress:     Progress{Difficulty: DifficultyForRound(1)},
		CreatedAt:    now,
		LastActive:   now,
	}
}

// CurrentSegment returns the segment awaiting the player's choice,
// or nil when the session has no segments yet.
func (gs *GameState) CurrentSegment() *StorySegment {
	if len(gs.StorySegments) == 0 {
		return nil
	}
	return &gs.StorySegments[len(gs.StorySegments)-1]
}

// Segment returns the segment with the given id, or nil.
func (gs *GameState) Segment(id string) *StorySegment {
	for i := range gs.StorySegments {
		if gs.StorySegments[i].ID == id {
			return &gs.StorySegments[i]
		}
	}
	return nil
}

// AtRoundCeiling reports whether the session has reached its round
// limit and the next consumed turn should complete the game.
func (gs *GameState) AtRoundCeiling() bool {
	return gs.CurrentRound >= gs.SessionLimit
}

// TruncateTo rewinds the story to targetTurn. History keeps every
// record up to and including targetTurn, so after rewinding to turn
// t the history holds t entries; segments are cut to match and the
// player re-answers the segment at the target turn. Progress is
// deliberately untouched.
func (gs *GameState) TruncateTo(targetTurn int) {
	if targetTurn < 1 || targetTurn >= gs.Turn {
		return
	}
	cut := len(gs.History)
	for i := range gs.History {
		if gs.History[i].Turn > targetTurn {
			cut = i
			break
		}
	}
	gs.History = gs.History[:cut]
	if len(gs.StorySegments) > targetTurn {
		gs.StorySegments = gs.StorySegments[:targetTurn]
	}
	gs.Turn = targetTurn
	gs.CurrentRound = targetTurn
	gs.GameOver = false
	gs.BacktrackCount++
}

// Clone returns a deep copy of the state. Engines mutate the clone
// and store it back in one step.
func (gs *GameState) Clone() *GameState {
	cp := *gs
	cp.StorySegments = make([]StorySegment, len(gs.StorySegments))
	copy(cp.StorySegments, gs.StorySegments)
	for i := range cp.StorySegments {
		seg := &cp.StorySegments[i]
		choices := make([]Choice, len(seg.Choices))
		copy(choices, seg.Choices)
		seg.Choices = choices
		if seg.WordChallenge != nil {
			wc := *seg.WordChallenge
			seg.WordChallenge = &wc
		}
		seg.VocabularyWords = append([]string(nil), seg.VocabularyWords...)
	}
	cp.History = make([]Turn, len(gs.History))
	copy(cp.History, gs.History)
	for i := range cp.History {
		if cp.History[i].Reward != nil {
			r := *cp.History[i].Reward
			cp.History[i].Reward = &r
		}
	}
	cp.Progress.WordsEncountered = append([]string(nil), gs.Progress.WordsEncountered...)
	cp.Progress.Rewards = append([]Reward(nil), gs.Progress.Rewards...)
	return &cp
}
