// Package vocabulary is the built-in word index for the reading
// game. Generated story text is scanned against it so the player's
// progress can record which target words they have encountered.
package vocabulary

import "strings"

// Word is one entry in the vocabulary index.
type Word struct {
	Word       string   `json:"word"`
	Definition string   `json:"definition"`
	Difficulty int      `json:"difficulty"` // 1 easy, 2 medium, 3 hard
	Category   string   `json:"category"`
	Example    string   `json:"example"`
	Synonyms   []string `json:"synonyms,omitempty"`
}

var index = map[string]Word{
	"adventure": {
		Word:       "adventure",
		Definition: "An exciting or dangerous experience or journey",
		Difficulty: 1,
		Category:   "general",
		Example:    "Going on an adventure through the forest was thrilling!",
		Synonyms:   []string{"journey", "expedition", "quest"},
	},
	"mysterious": {
		Word:       "mysterious",
		Definition: "Strange, unknown, or difficult to understand",
		Difficulty: 2,
		Category:   "descriptive",
		Example:    "The mysterious door had no handle or keyhole.",
		Synonyms:   []string{"puzzling", "unknown", "secretive"},
	},
	"courage": {
		Word:       "courage",
		Definition: "The ability to do something brave or difficult",
		Difficulty: 2,
		Category:   "emotion",
		Example:    "It took courage to enter the dark cave.",
		Synonyms:   []string{"bravery", "boldness", "valor"},
	},
	"ancient": {
		Word:       "ancient",
		Definition: "Very old, from long ago in history",
		Difficulty: 1,
		Category:   "time",
		Example:    "The ancient castle was built hundreds of years ago.",
		Synonyms:   []string{"old", "historic", "aged"},
	},
	"discover": {
		Word:       "discover",
		Definition: "To find something for the first time",
		Difficulty: 1,
		Category:   "action",
		Example:    "We might discover treasure in the hidden room.",
		Synonyms:   []string{"find", "uncover", "reveal"},
	},
	"enchanted": {
		Word:       "enchanted",
		Definition: "Having magical powers or under a magic spell",
		Difficulty: 2,
		Category:   "magic",
		Example:    "The enchanted sword glowed with blue light.",
		Synonyms:   []string{"magical", "bewitched", "spellbound"},
	},
	"riddle": {
		Word:       "riddle",
		Definition: "A puzzle or question that needs clever thinking to solve",
		Difficulty: 2,
		Category:   "puzzle",
		Example:    "The sphinx asked a difficult riddle.",
		Synonyms:   []string{"puzzle", "mystery", "brain teaser"},
	},
	"treasure": {
		Word:       "treasure",
		Definition: "Valuable things like gold, jewels, or precious objects",
		Difficulty: 1,
		Category:   "objects",
		Example:    "The pirates buried their treasure on the island.",
		Synonyms:   []string{"riches", "valuables", "wealth"},
	},
	"wisdom": {
		Word:       "wisdom",
		Definition: "Knowledge and good judgment gained from experience",
		Difficulty: 3,
		Category:   "abstract",
		Example:    "The old wizard shared his wisdom with young adventurers.",
		Synonyms:   []string{"knowledge", "insight", "understanding"},
	},
	"labyrinth": {
		Word:       "labyrinth",
		Definition: "A complicated network of paths; a maze",
		Difficulty: 3,
		Category:   "places",
		Example:    "Getting lost in the labyrinth was scary but exciting.",
		Synonyms:   []string{"maze", "network", "puzzle"},
	},
	"crystal": {
		Word:       "crystal",
		Definition: "A clear, transparent mineral that sparkles",
		Difficulty: 1,
		Category:   "objects",
		Example:    "The crystal cave sparkled like diamonds.",
		Synonyms:   []string{"gem", "jewel", "stone"},
	},
	"guardian": {
		Word:       "guardian",
		Definition: "Someone who protects and watches over something",
		Difficulty: 2,
		Category:   "characters",
		Example:    "The guardian of the temple asked three questions.",
		Synonyms:   []string{"protector", "keeper", "defender"},
	},
	"portal": {
		Word:       "portal",
		Definition: "A magical doorway or entrance to another place",
		Difficulty: 2,
		Category:   "magic",
		Example:    "The glowing portal led to a different world.",
		Synonyms:   []string{"gateway", "doorway", "entrance"},
	},
	"illuminate": {
		Word:       "illuminate",
		Definition: "To light up or make bright with light",
		Difficulty: 3,
		Category:   "action",
		Example:    "The torch will illuminate the dark passage.",
		Synonyms:   []string{"brighten", "light up", "glow"},
	},
	"expedition": {
		Word:       "expedition",
		Definition: "A journey organized for a specific purpose",
		Difficulty: 3,
		Category:   "general",
		Example:    "The expedition to find the lost city began at dawn.",
		Synonyms:   []string{"journey", "adventure", "quest"},
	},
	"magnificent": {
		Word:       "magnificent",
		Definition: "Very beautiful, impressive, or wonderful",
		Difficulty: 2,
		Category:   "descriptive",
		Example:    "The magnificent palace had golden towers.",
		Synonyms:   []string{"splendid", "wonderful", "amazing"},
	},
	"perseverance": {
		Word:       "perseverance",
		Definition: "Continuing to try hard even when things are difficult",
		Difficulty: 3,
		Category:   "abstract",
		Example:    "With perseverance, she solved the difficult puzzle.",
		Synonyms:   []string{"determination", "persistence", "dedication"},
	},
	"sanctuary": {
		Word:       "sanctuary",
		Definition: "A safe place where someone or something is protected",
		Difficulty: 2,
		Category:   "places",
		Example:    "The forest sanctuary protected all the animals.",
		Synonyms:   []string{"refuge", "shelter", "haven"},
	},
	"transform": {
		Word:       "transform",
		Definition: "To change completely in appearance or form",
		Difficulty: 2,
		Category:   "action",
		Example:    "The magic spell will transform the pumpkin into a carriage.",
		Synonyms:   []string{"change", "convert", "alter"},
	},
	"chronicle": {
		Word:       "chronicle",
		Definition: "A record or story of events in the order they happened",
		Difficulty: 3,
		Category:   "general",
		Example:    "The ancient chronicle told of brave heroes.",
		Synonyms:   []string{"record", "history", "story"},
	},
}

// Lookup returns the index entry for word, matched case-insensitively.
func Lookup(word string) (Word, bool) {
	w, ok := index[strings.ToLower(word)]
	return w, ok
}

// Extract returns the indexed vocabulary words appearing in text, in
// order of first appearance, without duplicates.
func Extract(text string) []string {
	var found []string
	seen := make(map[string]bool)
	for _, token := range strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	}) {
		if _, ok := index[token]; ok && !seen[token] {
			seen[token] = true
			found = append(found, token)
		}
	}
	return found
}

// ByDifficulty returns the words at the given difficulty tier.
func ByDifficulty(difficulty int) []Word {
	var words []Word
	for _, w := range index {
		if w.Difficulty == difficulty {
			words = append(words, w)
		}
	}
	return words
}

// Sample returns up to n words for inclusion in a prompt, preferring
// the given difficulty tier and topping up from the full index.
func Sample(difficulty, n int) []string {
	var words []string
	for _, w := range ByDifficulty(difficulty) {
		if len(words) >= n {
			return words
		}
		words = append(words, w.Word)
	}
	for word := range index {
		if len(words) >= n {
			break
		}
		dup := false
		for _, have := range words {
			if have == word {
				dup = true
				break
			}
		}
		if !dup {
			words = append(words, word)
		}
	}
	return words
}
