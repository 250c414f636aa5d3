package textproc

import (
	"strings"
	"unicode"
)

// strippedTitleRunes are removed from titles before any other cleaning.
const strippedTitleRunes = "0123456789#_=+*{}[];:<>/\\|~`\"'.,!?()-"

// NormalizeTitle turns raw model output into a clean marketplace title:
// digits and symbol noise removed, whitespace collapsed, duplicate words
// dropped (first occurrence wins, case-insensitive), first letter
// capitalized. Callers truncate to their own length limit afterwards.
func NormalizeTitle(raw string) string {
	stripped := strings.Map(func(r rune) rune {
		if strings.ContainsRune(strippedTitleRunes, r) {
			return -1
		}
		return r
	}, raw)

	words := strings.Fields(strings.ToLower(stripped))
	if len(words) == 0 {
		return ""
	}

	seen := make(map[string]struct{}, len(words))
	unique := words[:0]
	for _, word := range words {
		if _, ok := seen[word]; ok {
			continue
		}
		seen[word] = struct{}{}
		unique = append(unique, word)
	}

	return capitalizeFirst(strings.Join(unique, " "))
}

// capitalizeFirst uppercases only the leading rune, leaving the rest as is.
func capitalizeFirst(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// TruncateRunes returns at most limit runes of s. A non-positive limit
// returns s unchanged.
func TruncateRunes(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
