// Package parser converts semi-structured LLM story output into
// typed segments. Models are prompted to reply with line-oriented
// key prefixes (STORY:, CHOICE1:, CORRECT:, ...) but real replies
// drift, so parsing is tolerant where drift is recoverable and
// fails hard where it is not.
package parser

import (
	"fmt"
	"log/slog"
	"strings"
)

// Segment is the tagged result of a successful parse. CorrectIndex
// is -1 when the reply carried no CORRECT field, which marks a
// free-exploration segment where every choice is valid.
type Segment struct {
	Story        string
	Question     string
	Choices      []string
	CorrectIndex int
	Hint         string
	Challenge    *Challenge
}

// Challenge holds the three fields a word challenge requires. A
// reply carrying only some of them yields no challenge at all.
type Challenge struct {
	Type   string
	Word   string
	Prompt string
}

// Parser parses raw model output. It carries a logger so recoverable
// drift (like an unparseable CORRECT value) can be reported without
// failing the segment.
type Parser struct {
	log *slog.Logger
}

func New(log *slog.Logger) *Parser {
	if log == nil {
		log = slog.Default()
	}
	return &Parser{log: log}
}

const maxChoices = 4

// choiceKeys maps every accepted choice prefix to its index. Models
// are prompted with CHOICE1..CHOICE4 for exploration segments and
// CHOICE_A..CHOICE_C for evaluated ones; both spellings are accepted
// for either.
var choiceKeys = map[string]int{
	"CHOICE1:": 0, "CHOICE2:": 1, "CHOICE3:": 2, "CHOICE4:": 3,
	"CHOICE_A:": 0, "CHOICE_B:": 1, "CHOICE_C:": 2,
}

// Parse extracts a Segment from raw model output. The reply must
// contain exactly expectedChoices choices or parsing fails and the
// caller falls back to pre-authored content. Unrecognized lines
// before the first key are treated as story text, because models
// often lead with a bare paragraph before remembering the format.
func (p *Parser) Parse(raw string, expectedChoices int) (*Segment, error) {
	seg := &Segment{CorrectIndex: -1}
	choices := make(map[int]string)
	var story []string
	var challenge Challenge
	sawKey := false

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, "STORY:"):
			sawKey = true
			story = append(story, strings.TrimSpace(strings.TrimPrefix(line, "STORY:")))
		case strings.HasPrefix(line, "QUESTION:"):
			sawKey = true
			seg.Question = strings.TrimSpace(strings.TrimPrefix(line, "QUESTION:"))
		case strings.HasPrefix(line, "CORRECT:"):
			sawKey = true
			seg.CorrectIndex = p.parseCorrect(strings.TrimSpace(strings.TrimPrefix(line, "CORRECT:")))
		case strings.HasPrefix(line, "HINT:"):
			sawKey = true
			seg.Hint = strings.TrimSpace(strings.TrimPrefix(line, "HINT:"))
		case strings.HasPrefix(line, "CHALLENGE_TYPE:"):
			sawKey = true
			challenge.Type = strings.TrimSpace(strings.TrimPrefix(line, "CHALLENGE_TYPE:"))
		case strings.HasPrefix(line, "CHALLENGE_WORD:"):
			sawKey = true
			challenge.Word = strings.TrimSpace(strings.TrimPrefix(line, "CHALLENGE_WORD:"))
		case strings.HasPrefix(line, "CHALLENGE_PROMPT:"):
			sawKey = true
			challenge.Prompt = strings.TrimSpace(strings.TrimPrefix(line, "CHALLENGE_PROMPT:"))
		default:
			if idx, ok := matchChoice(line); ok {
				sawKey = true
				choices[idx] = choiceText(line)
				continue
			}
			if !sawKey {
				// Implicit story text ahead of the first key.
				story = append(story, line)
			}
			// Stray lines after the first key are dropped.
		}
	}

	seg.Story = strings.Join(story, " ")
	if seg.Story == "" {
		return nil, fmt.Errorf("response contained no story text")
	}

	for i := 0; i < maxChoices; i++ {
		if text, ok := choices[i]; ok {
			seg.Choices = append(seg.Choices, text)
		}
	}
	if len(seg.Choices) != expectedChoices {
		return nil, fmt.Errorf("response contained %d choices, expected %d", len(seg.Choices), expectedChoices)
	}
	if seg.CorrectIndex >= expectedChoices {
		p.log.Warn("correct answer out of range, defaulting to first choice",
			"index", seg.CorrectIndex, "choices", expectedChoices)
		seg.CorrectIndex = 0
	}

	// A challenge is all-or-nothing. Partial fields are dropped so a
	// half-formed challenge never reaches a player.
	if challenge.Type != "" && challenge.Word != "" && challenge.Prompt != "" {
		seg.Challenge = &challenge
	}

	return seg, nil
}

func matchChoice(line string) (int, bool) {
	for key, idx := range choiceKeys {
		if strings.HasPrefix(line, key) {
			return idx, true
		}
	}
	return 0, false
}

func choiceText(line string) string {
	for key := range choiceKeys {
		if strings.HasPrefix(line, key) {
			return strings.TrimSpace(strings.TrimPrefix(line, key))
		}
	}
	return line
}

// parseCorrect maps a CORRECT value onto a choice index. Accepted
// forms are a letter (A, B, C), a 1-based number, or a trailing
// period variant of either. Anything else defaults to the first
// choice with a warning, never a failed segment.
func (p *Parser) parseCorrect(value string) int {
	v := strings.ToUpper(strings.TrimSuffix(strings.TrimSpace(value), "."))
	switch v {
	case "A", "1":
		return 0
	case "B", "2":
		return 1
	case "C", "3":
		return 2
	case "D", "4":
		return 3
	}
	p.log.Warn("unparseable correct answer, defaulting to first choice", "value", value)
	return 0
}
