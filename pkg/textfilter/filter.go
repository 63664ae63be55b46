// Package textfilter keeps both player input and generated story
// text appropriate for young readers. Input is sanitized and
// screened before it reaches a model; model output is screened and
// softened before it reaches a player.
package textfilter

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	minInputLength = 5
	maxInputLength = 1000
	maxSanitized   = 200

	// Above this share of capital letters the input reads as shouting.
	capsThreshold = 0.7
)

// Words that have no place in a children's story. Matched on word
// boundaries so "skill" never trips the "kill" rule.
var blockedPatterns = []string{
	`\b(kill|death|die|dead)\b`,
	`\b(weapon|gun|knife|fight)\b`,
	`\b(scary|horror|frightening|terrifying)\b`,
	`\b(violence|violent|attack|battle)\b`,
	`\b(evil|demon|ghost)\b`,
}

// softReplacements swaps mildly rough words for gentler ones in
// generated text rather than rejecting the whole segment.
var softReplacements = map[string]string{
	"stupid": "silly",
	"dumb":   "silly",
	"hate":   "dislike",
	"ugly":   "unusual",
	"creepy": "curious",
}

// Filter screens text for child safety. Construct once and share; the
// compiled patterns are read-only after New.
type Filter struct {
	blocked []*regexp.Regexp
	soften  map[string]*regexp.Regexp
}

func New() *Filter {
	f := &Filter{
		soften: make(map[string]*regexp.Regexp),
	}
	for _, p := range blockedPatterns {
		f.blocked = append(f.blocked, regexp.MustCompile(`(?i)`+p))
	}
	for word := range softReplacements {
		f.soften[word] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(word) + `\b`)
	}
	return f
}

// IsSafe reports whether text is appropriate for young readers. The
// returned reason is suitable for logging, not for display.
func (f *Filter) IsSafe(text string) (bool, string) {
	if strings.TrimSpace(text) == "" {
		return false, "empty content"
	}
	if len(text) < minInputLength {
		return false, "content too short"
	}
	if len(text) > maxInputLength {
		return false, "content too long"
	}
	for _, re := range f.blocked {
		if m := re.FindString(text); m != "" {
			return false, fmt.Sprintf("blocked word %q", strings.ToLower(m))
		}
	}
	if isShouting(text) {
		return false, "excessive capitalization"
	}
	return true, ""
}

// Sanitize normalizes player input: collapses whitespace, strips
// markup characters, and caps the length.
func (f *Filter) Sanitize(input string) string {
	s := strings.Join(strings.Fields(input), " ")
	s = strings.Map(func(r rune) rune {
		switch r {
		case '<', '>', '{', '}', '[', ']', '\\':
			return -1
		}
		return r
	}, s)
	if len(s) > maxSanitized {
		s = s[:maxSanitized]
	}
	return s
}

// Soften replaces mildly rough words in generated text with gentler
// alternatives, preserving the case of the original word.
func (f *Filter) Soften(text string) string {
	result := text
	for word, re := range f.soften {
		replacement := softReplacements[word]
		result = re.ReplaceAllStringFunc(result, func(match string) string {
			return preserveCase(match, replacement)
		})
	}
	return result
}

// isShouting reports whether text is mostly capital letters.
func isShouting(text string) bool {
	if len(text) < 10 {
		return false
	}
	upper, letters := 0, 0
	for _, r := range text {
		if unicode.IsLetter(r) {
			letters++
			if unicode.IsUpper(r) {
				upper++
			}
		}
	}
	if letters == 0 {
		return false
	}
	return float64(upper)/float64(letters) > capsThreshold
}

// preserveCase applies the case pattern of the original word to the
// replacement.
func preserveCase(original, replacement string) string {
	if len(original) == 0 {
		return replacement
	}

	if strings.ToUpper(original) == original {
		return strings.ToUpper(replacement)
	}
	if strings.ToLower(original) == original {
		return strings.ToLower(replacement)
	}

	titleCaser := cases.Title(language.English)
	if titleCaser.String(strings.ToLower(original)) == original {
		return titleCaser.String(replacement)
	}

	// Mixed case, map character by character.
	originalRunes := []rune(original)
	result := make([]rune, 0, len(replacement))
	for i, r := range replacement {
		if i < len(originalRunes) && unicode.IsUpper(originalRunes[i]) {
			result = append(result, unicode.ToUpper(r))
		} else {
			result = append(result, unicode.ToLower(r))
		}
	}
	return string(result)
}
