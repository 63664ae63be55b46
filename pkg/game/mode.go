package game

import "fmt"

// Mode selects how a session advances from turn to turn.
type Mode string

const (
	// ModeEvaluated presents three answer choices with exactly one
	// correct answer. The story only advances on a correct choice.
	ModeEvaluated Mode = "evaluated"

	// ModeFreeExploration presents four choices with no wrong answers.
	// Every consumed turn advances the story.
	ModeFreeExploration Mode = "free_exploration"
)

// ChoiceCount returns the number of choices a segment must carry in
// this mode.
func (m Mode) ChoiceCount() int {
	if m == ModeEvaluated {
		return 3
	}
	return 4
}

// IsValid reports whether m is a known mode.
func (m Mode) IsValid() bool {
	return m == ModeEvaluated || m == ModeFreeExploration
}

// ParseMode converts a wire string to a Mode. An empty string
// defaults to evaluated mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeEvaluated, ModeFreeExploration:
		return Mode(s), nil
	case "":
		return ModeEvaluated, nil
	default:
		return "", fmt.Errorf("%w: unknown mode %q", ErrInvalidInput, s)
	}
}

// Genre identifies one of the supported story settings.
type Genre string

const (
	GenreForest  Genre = "forest"
	GenreSpace   Genre = "space"
	GenreDungeon Genre = "dungeon"
	GenreMystery Genre = "mystery"
)

// Genres lists all supported genres in a stable order.
var Genres = []Genre{GenreForest, GenreSpace, GenreDungeon, GenreMystery}

// ParseGenre converts a wire string to a Genre.
func ParseGenre(s string) (Genre, error) {
	for _, g := range Genres {
		if Genre(s) == g {
			return g, nil
		}
	}
	return "", fmt.Errorf("%w: unknown genre %q", ErrInvalidInput, s)
}
