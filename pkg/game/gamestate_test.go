package game

import (
	"testing"
	"time"
)

// playedState builds a session that has consumed turns 1..turn-1 and
// is waiting on the segment for turn.
func playedState(turn int) *GameState {
	gs := NewGameState(GenreForest, ModeEvaluated, 8, time.Now())
	for t := 1; t <= turn; t++ {
		gs.StorySegments = append(gs.StorySegments, StorySegment{ID: segID(t)})
		if t < turn {
			gs.History = append(gs.History, Turn{Turn: t, SegmentID: segID(t), WasCorrect: true})
		}
	}
	gs.Turn = turn
	gs.CurrentRound = turn
	return gs
}

func segID(turn int) string {
	return string(rune('a'+turn-1)) + "-segment"
}

func TestTruncateTo(t *testing.T) {
	gs := playedState(4)

	gs.TruncateTo(2)

	if gs.Turn != 2 || gs.CurrentRound != 2 {
		t.Errorf("turn/round = %d/%d, want 2/2", gs.Turn, gs.CurrentRound)
	}
	if len(gs.History) != 2 {
		t.Fatalf("history length = %d, want 2", len(gs.History))
	}
	if last := gs.History[len(gs.History)-1]; last.Turn != 2 {
		t.Errorf("last retained history turn = %d, want 2", last.Turn)
	}
	if len(gs.StorySegments) != 2 {
		t.Errorf("segments length = %d, want 2", len(gs.StorySegments))
	}
	if gs.CurrentSegment().ID != segID(2) {
		t.Errorf("current segment = %s, want %s", gs.CurrentSegment().ID, segID(2))
	}
	if gs.BacktrackCount != 1 {
		t.Errorf("backtrack count = %d, want 1", gs.BacktrackCount)
	}
}

func TestTruncateToClearsGameOver(t *testing.T) {
	gs := playedState(4)
	gs.GameOver = true

	gs.TruncateTo(3)

	if gs.GameOver {
		t.Error("rewinding should reopen the game")
	}
	if len(gs.History) != 3 {
		t.Errorf("history length = %d, want 3", len(gs.History))
	}
}

func TestTruncateToRejectsBadTargets(t *testing.T) {
	for _, target := range []int{0, -1, 4, 5} {
		gs := playedState(4)
		gs.TruncateTo(target)
		if gs.Turn != 4 || len(gs.History) != 3 || gs.BacktrackCount != 0 {
			t.Errorf("target %d: state changed: turn=%d history=%d backtracks=%d",
				target, gs.Turn, len(gs.History), gs.BacktrackCount)
		}
	}
}

func TestTruncateToPreservesProgress(t *testing.T) {
	gs := playedState(4)
	gs.Progress.AddReward(RewardCorrectChoice())
	gs.Progress.AddReward(RewardChallengeComplete())
	points := gs.Progress.TotalPoints()

	gs.TruncateTo(2)

	if gs.Progress.TotalPoints() != points {
		t.Errorf("points after rewind = %d, want %d", gs.Progress.TotalPoints(), points)
	}
}
