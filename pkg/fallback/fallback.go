// Package fallback holds pre-authored story content served whenever
// live generation fails. The library is the safety net behind the
// generator: every genre always has segments to hand out, so a dead
// or misbehaving model never stops a game.
package fallback

import (
	"math/rand"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/lexiquest/lexiquest/pkg/game"
	"github.com/lexiquest/lexiquest/pkg/vocabulary"
)

// entry is one pre-authored story beat. Choices always number four;
// evaluated mode serves the first three with correctIndex marking
// the right answer.
type entry struct {
	story        string
	question     string
	choices      [4]string
	correctIndex int
	hint         string
	challenge    *game.WordChallenge
}

// Library serves pre-authored segments and canned responses. The RNG
// is injected so tests can seed it for deterministic picks.
type Library struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func New(seed int64) *Library {
	return &Library{rng: rand.New(rand.NewSource(seed))}
}

// Segment returns the pre-authored segment for genre at index,
// wrapping modulo the genre's library size so any index is valid.
func (l *Library) Segment(genre game.Genre, mode game.Mode, index int) game.StorySegment {
	entries, ok := segments[genre]
	if !ok {
		entries = segments[game.GenreForest]
	}
	e := entries[((index%len(entries))+len(entries))%len(entries)]

	seg := game.StorySegment{
		ID:         uuid.NewString(),
		Text:       e.story,
		Hint:       e.hint,
		Difficulty: 1,
	}
	if e.challenge != nil {
		wc := *e.challenge
		seg.WordChallenge = &wc
	}
	seg.VocabularyWords = vocabulary.Extract(e.story)

	count := mode.ChoiceCount()
	ids := []string{"A", "B", "C", "D"}
	for i := 0; i < count; i++ {
		correct := true
		if mode == game.ModeEvaluated {
			correct = i == e.correctIndex
		}
		seg.Choices = append(seg.Choices, game.Choice{
			ID:        ids[i],
			Text:      e.choices[i],
			IsCorrect: correct,
		})
	}
	if mode == game.ModeEvaluated {
		seg.Question = e.question
	}
	return seg
}

// Response returns a canned reply to free-text input, picked from
// the keyword bucket the input falls into, plus any vocabulary words
// the reply contains. Near the round ceiling the reply warns the
// adventure is ending; at the ceiling it is a closing message.
func (l *Library) Response(userText string, turn, limit int) (string, []string) {
	if turn >= limit {
		return l.pick(endings), nil
	}

	reply := l.pick(responses[categorize(userText)])
	if turn == limit-1 {
		reply += " Your amazing adventure is coming to an end soon!"
	}
	return reply, vocabulary.Extract(reply)
}

// Hint returns an encouraging hint for a challenge type.
func (l *Library) Hint(challengeType string) string {
	if h, ok := hints[challengeType]; ok {
		return h
	}
	return "You're doing great! Take your time and try your best!"
}

func (l *Library) pick(options []string) string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return options[l.rng.Intn(len(options))]
}

type category string

const (
	catLook    category = "look_examine"
	catMove    category = "move_go"
	catTalk    category = "talk_speak"
	catUse     category = "use_take"
	catGeneral category = "general"
)

var categoryKeywords = []struct {
	cat   category
	words []string
}{
	{catLook, []string{"look", "examine", "see", "observe", "watch"}},
	{catMove, []string{"go", "move", "walk", "travel", "north", "south", "east", "west", "forward", "back"}},
	{catTalk, []string{"talk", "speak", "ask", "say", "tell"}},
	{catUse, []string{"use", "take", "grab", "pick", "touch", "hold"}},
}

func categorize(input string) category {
	lower := strings.ToLower(input)
	for _, ck := range categoryKeywords {
		for _, w := range ck.words {
			if strings.Contains(lower, w) {
				return ck.cat
			}
		}
	}
	return catGeneral
}
