package parser

import (
	"log/slog"
	"os"
	"strings"
	"testing"
)

func testParser() *Parser {
	return New(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})))
}

func TestParseExplorationSegment(t *testing.T) {
	raw := `STORY: You step into the glowing forest. The trees whisper an ancient welcome.
CHOICE1: Follow the sparkling stream
CHOICE2: Climb the tallest oak
CHOICE3: Talk to the friendly owl
CHOICE4: Examine the carved stone
CHALLENGE_TYPE: spelling
CHALLENGE_WORD: ancient
CHALLENGE_PROMPT: Can you spell the word that means very, very old?`

	seg, err := testParser().Parse(raw, 4)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(seg.Choices) != 4 {
		t.Errorf("expected 4 choices, got %d", len(seg.Choices))
	}
	if seg.Choices[0] != "Follow the sparkling stream" {
		t.Errorf("unexpected first choice: %q", seg.Choices[0])
	}
	if seg.CorrectIndex != -1 {
		t.Errorf("exploration segment should have no correct index, got %d", seg.CorrectIndex)
	}
	if seg.Challenge == nil {
		t.Fatal("expected a challenge")
	}
	if seg.Challenge.Word != "ancient" {
		t.Errorf("unexpected challenge word: %q", seg.Challenge.Word)
	}
}

func TestParseEvaluatedSegment(t *testing.T) {
	raw := `STORY: The owl holds up a picture of a treasure chest.
QUESTION: Which word means a hidden store of valuable things?
CHOICE_A: whisper
CHOICE_B: treasure
CHOICE_C: lantern
CORRECT: B
HINT: Pirates bury it on islands.`

	seg, err := testParser().Parse(raw, 3)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(seg.Choices) != 3 {
		t.Errorf("expected 3 choices, got %d", len(seg.Choices))
	}
	if seg.CorrectIndex != 1 {
		t.Errorf("expected correct index 1, got %d", seg.CorrectIndex)
	}
	if seg.Question == "" {
		t.Error("expected a question")
	}
	if seg.Hint != "Pirates bury it on islands." {
		t.Errorf("unexpected hint: %q", seg.Hint)
	}
}

func TestParseChoiceCount(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected int
		wantErr  bool
	}{
		{
			name:     "too few choices",
			raw:      "STORY: A path splits.\nCHOICE1: Left\nCHOICE2: Right",
			expected: 4,
			wantErr:  true,
		},
		{
			name:     "exact count",
			raw:      "STORY: A path splits.\nCHOICE1: Left\nCHOICE2: Right\nCHOICE3: Straight",
			expected: 3,
			wantErr:  false,
		},
		{
			name:     "too many choices",
			raw:      "STORY: A door.\nCHOICE_A: Open\nCHOICE_B: Knock\nCHOICE_C: Wait\nCHOICE4: Leave",
			expected: 3,
			wantErr:  true,
		},
		{
			name:     "no story text",
			raw:      "CHOICE1: Left\nCHOICE2: Right\nCHOICE3: Up\nCHOICE4: Down",
			expected: 4,
			wantErr:  true,
		},
	}

	p := testParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Parse(tt.raw, tt.expected)
			if (err != nil) != tt.wantErr {
				t.Errorf("Parse() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseCorrectVariants(t *testing.T) {
	tests := []struct {
		name    string
		correct string
		want    int
	}{
		{"letter", "B", 1},
		{"lowercase letter", "c", 2},
		{"letter with period", "A.", 0},
		{"one-based number", "3", 2},
		{"unparseable defaults to first", "the treasure one", 0},
	}

	p := testParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := "STORY: A riddle.\nQUESTION: Pick one.\nCHOICE_A: a\nCHOICE_B: b\nCHOICE_C: c\nCORRECT: " + tt.correct
			seg, err := p.Parse(raw, 3)
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if seg.CorrectIndex != tt.want {
				t.Errorf("CorrectIndex = %d, want %d", seg.CorrectIndex, tt.want)
			}
		})
	}
}

func TestParseImplicitStory(t *testing.T) {
	raw := `The dragon sneezed and the whole cave shook.
Dust fell from the ceiling in little clouds.
CHOICE1: Say bless you
CHOICE2: Hide behind a rock
CHOICE3: Offer a handkerchief
CHOICE4: Run outside`

	seg, err := testParser().Parse(raw, 4)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !strings.Contains(seg.Story, "dragon sneezed") {
		t.Errorf("leading lines should become story text, got %q", seg.Story)
	}
	if !strings.Contains(seg.Story, "Dust fell") {
		t.Errorf("all leading lines should join into story, got %q", seg.Story)
	}
}

func TestParsePartialChallengeDropped(t *testing.T) {
	raw := `STORY: The wizard smiles.
CHOICE1: Wave back
CHOICE2: Bow politely
CHOICE3: Ask a question
CHOICE4: Walk on
CHALLENGE_WORD: courage`

	seg, err := testParser().Parse(raw, 4)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if seg.Challenge != nil {
		t.Error("partial challenge should be dropped")
	}
}
