package game

import "time"

// Turn records one consumed turn. The history is append-only; turns
// are only removed by backtracking, which truncates from the tail.
type Turn struct {
	Turn       int       `json:"turn"`
	SegmentID  string    `json:"segment_id"`
	ChoiceID   string    `json:"choice_id,omitempty"`
	UserInput  string    `json:"user_input,omitempty"`
	WasCorrect bool      `json:"was_correct"`
	Reward     *Reward   `json:"reward,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// Reward is a single earned reward. Rewards accumulate in an
// append-only log on Progress and are never revoked, including
// across backtracks.
type Reward struct {
	Kind   string `json:"kind"` // star, coin, badge, achievement
	Name   string `json:"name"`
	Icon   string `json:"icon"`
	Points int    `json:"points"`
}

// Reward catalog. Points and names are part of the client contract.
func RewardCorrectChoice() Reward {
	return Reward{Kind: "star", Name: "Story Star", Icon: "⭐", Points: 10}
}

func RewardChallengeComplete() Reward {
	return Reward{Kind: "coin", Name: "Word Coin", Icon: "🪙", Points: 25}
}

func RewardSegmentComplete() Reward {
	return Reward{Kind: "badge", Name: "Explorer Badge", Icon: "🏅", Points: 50}
}

func RewardSessionComplete() Reward {
	return Reward{Kind: "achievement", Name: "Reading Champion", Icon: "👑", Points: 100}
}
