package game

import "strings"

// Choice is one selectable answer on a story segment. IsCorrect is
// fixed at generation time and never re-derived afterward.
type Choice struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

// WordChallenge is an optional vocabulary exercise attached to a
// segment. All fields are required when present; a partially formed
// challenge is dropped at parse time.
type WordChallenge struct {
	Type   string `json:"type"` // spelling, definition, rhyme
	Word   string `json:"word"`
	Prompt string `json:"prompt"`
	Answer string `json:"answer,omitempty"`
	Hint   string `json:"hint,omitempty"`
}

// StorySegment is one beat of the story with its choices. Segments are
// immutable once appended to a session.
type StorySegment struct {
	ID              string         `json:"id"`
	Text            string         `json:"text"`
	Question        string         `json:"question,omitempty"`
	Choices         []Choice       `json:"choices"`
	Hint            string         `json:"hint,omitempty"`
	WordChallenge   *WordChallenge `json:"word_challenge,omitempty"`
	VocabularyWords []string       `json:"vocabulary_words,omitempty"`
	Difficulty      int            `json:"difficulty,omitempty"`
}

// Choice returns the choice with the given id, or nil.
func (s *StorySegment) Choice(id string) *Choice {
	for i := range s.Choices {
		if s.Choices[i].ID == id {
			return &s.Choices[i]
		}
	}
	return nil
}

// MatchChoiceText returns the choice whose text equals input after
// case and whitespace normalization, or nil when no choice matches.
func (s *StorySegment) MatchChoiceText(input string) *Choice {
	want := strings.ToLower(strings.TrimSpace(input))
	for i := range s.Choices {
		if strings.ToLower(strings.TrimSpace(s.Choices[i].Text)) == want {
			return &s.Choices[i]
		}
	}
	return nil
}

// CorrectChoice returns the first correct choice, or nil. In
// free-exploration segments every choice is correct.
func (s *StorySegment) CorrectChoice() *Choice {
	for i := range s.Choices {
		if s.Choices[i].IsCorrect {
			return &s.Choices[i]
		}
	}
	return nil
}
