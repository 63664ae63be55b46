package vocabulary

import "testing"

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "finds indexed words",
			text: "The ancient treasure sparkled with mysterious light.",
			want: []string{"ancient", "treasure", "mysterious"},
		},
		{
			name: "case insensitive",
			text: "COURAGE and Wisdom guide you.",
			want: []string{"courage", "wisdom"},
		},
		{
			name: "no duplicates",
			text: "Treasure! More treasure! So much treasure!",
			want: []string{"treasure"},
		},
		{
			name: "no partial matches",
			text: "The adventurer discovered treasures.",
			want: nil,
		},
		{
			name: "empty text",
			text: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("Extract() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Extract()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestLookup(t *testing.T) {
	w, ok := Lookup("Perseverance")
	if !ok {
		t.Fatal("expected perseverance in the index")
	}
	if w.Difficulty != 3 {
		t.Errorf("perseverance difficulty = %d, want 3", w.Difficulty)
	}

	if _, ok := Lookup("xylophone"); ok {
		t.Error("xylophone should not be in the index")
	}
}

func TestSample(t *testing.T) {
	words := Sample(1, 5)
	if len(words) != 5 {
		t.Fatalf("Sample(1, 5) returned %d words", len(words))
	}
	seen := make(map[string]bool)
	for _, w := range words {
		if seen[w] {
			t.Errorf("duplicate word %q in sample", w)
		}
		seen[w] = true
		if _, ok := Lookup(w); !ok {
			t.Errorf("sampled word %q not in index", w)
		}
	}
}
