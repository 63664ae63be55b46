package game

// Progress tracks the player's learning record for a session. It is
// preserved across backtracks so earned rewards and counts survive
// story rewinds.
type Progress struct {
	CorrectChoices      int      `json:"correct_choices"`
	IncorrectChoices    int      `json:"incorrect_choices"`
	ChallengesCompleted int      `json:"challenges_completed"`
	WordsEncountered    []string `json:"words_encountered,omitempty"`
	Difficulty          int      `json:"difficulty"`
	Rewards             []Reward `json:"rewards,omitempty"`
}

// AddReward appends r to the reward log.
func (p *Progress) AddReward(r Reward) {
	p.Rewards = append(p.Rewards, r)
}

// TotalPoints sums all earned reward points.
func (p *Progress) TotalPoints() int {
	total := 0
	for _, r := range p.Rewards {
		total += r.Points
	}
	return total
}

// RecordWords adds any newly encountered vocabulary words, keeping
// the list free of duplicates.
func (p *Progress) RecordWords(words []string) {
	for _, w := range words {
		seen := false
		for _, have := range p.WordsEncountered {
			if have == w {
				seen = true
				break
			}
		}
		if !seen {
			p.WordsEncountered = append(p.WordsEncountered, w)
		}
	}
}

// DifficultyForRound maps a round number onto a difficulty tier.
// Early rounds stay easy so young readers settle in before the
// vocabulary ramps up.
func DifficultyForRound(round int) int {
	switch {
	case round <= 2:
		return 1
	case round <= 5:
		return 2
	default:
		return 3
	}
}
