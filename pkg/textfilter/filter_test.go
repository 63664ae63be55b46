package textfilter

import "testing"

func TestIsSafe(t *testing.T) {
	tests := []struct {
		name string
		text string
		safe bool
	}{
		{"friendly input", "I want to explore the crystal cave", true},
		{"empty", "", false},
		{"too short", "hi", false},
		{"blocked violence word", "I attack the dragon", false},
		{"blocked word inside sentence", "the ghost appears in the hall", false},
		{"word boundary respected", "show me your skill with riddles", true},
		{"shouting", "GIVE ME THE TREASURE RIGHT NOW", false},
		{"mixed case allowed", "Follow the Owl to the Stream", true},
	}

	f := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			safe, reason := f.IsSafe(tt.text)
			if safe != tt.safe {
				t.Errorf("IsSafe(%q) = %v (%s), want %v", tt.text, safe, reason, tt.safe)
			}
		})
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"collapses whitespace", "look   at\tthe\n\nowl", "look at the owl"},
		{"strips markup", "open <script>the{door}[now]\\", "open scriptthedoornow"},
		{"trims edges", "  go north  ", "go north"},
	}

	f := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.Sanitize(tt.input); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeCapsLength(t *testing.T) {
	long := make([]byte, 500)
	for i := range long {
		long[i] = 'a'
	}
	if got := New().Sanitize(string(long)); len(got) != 200 {
		t.Errorf("sanitized length = %d, want 200", len(got))
	}
}

func TestSoften(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"lowercase", "that was a stupid idea", "that was a silly idea"},
		{"title case preserved", "Stupid puzzles everywhere", "Silly puzzles everywhere"},
		{"all caps preserved", "I HATE mazes", "I DISLIKE mazes"},
		{"untouched text", "the friendly owl waves", "the friendly owl waves"},
	}

	f := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.Soften(tt.text); got != tt.want {
				t.Errorf("Soften(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}
