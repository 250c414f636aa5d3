package textproc

import "strings"

// CleanKeywords normalizes a raw keyword blob into a ", "-joined list.
// extra is appended to raw before cleaning when non-blank. Tokens are
// lowercased, split on commas, semicolons, or newlines, reduced to their
// first word, and optionally deduplicated preserving first occurrence.
func CleanKeywords(raw string, dedupe bool, extra string) string {
	return strings.Join(cleanKeywordList(raw, dedupe, extra), ", ")
}

// cleanKeywordList is CleanKeywords returning the token slice.
func cleanKeywordList(raw string, dedupe bool, extra string) []string {
	combined := raw
	if strings.TrimSpace(extra) != "" {
		combined = combined + "," + extra
	}

	fields := strings.FieldsFunc(strings.ToLower(combined), func(r rune) bool {
		return r == ',' || r == ';' || r == '\n'
	})

	tokens := make([]string, 0, len(fields))
	seen := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		words := strings.Fields(field)
		if len(words) == 0 {
			continue
		}
		token := words[0]
		if dedupe {
			if _, ok := seen[token]; ok {
				continue
			}
			seen[token] = struct{}{}
		}
		tokens = append(tokens, token)
	}

	return tokens
}

// BuildKeywords produces the final keyword list for one item: generated
// keywords merged with the bulk text, bulk tokens moved to the front,
// padded with filler vocabulary up to targetCount, and capped there.
func BuildKeywords(baseKeywords, bulkText string, dedupe bool, targetCount int) string {
	if targetCount <= 0 {
		return ""
	}

	combined := cleanKeywordList(baseKeywords, dedupe, bulkText)
	bulk := cleanKeywordList(bulkText, true, "")

	if len(bulk) > 0 {
		inBulk := make(map[string]struct{}, len(bulk))
		for _, token := range bulk {
			inBulk[token] = struct{}{}
		}

		reordered := make([]string, 0, len(combined)+len(bulk))
		reordered = append(reordered, bulk...)
		for _, token := range combined {
			if _, ok := inBulk[token]; !ok {
				reordered = append(reordered, token)
			}
		}
		combined = reordered
	}

	if len(combined) < targetCount {
		present := make(map[string]struct{}, len(combined))
		for _, token := range combined {
			present[token] = struct{}{}
		}
		for _, filler := range fillerVocabulary {
			if len(combined) >= targetCount {
				break
			}
			if _, ok := present[filler]; ok {
				continue
			}
			present[filler] = struct{}{}
			combined = append(combined, filler)
		}
	}

	if len(combined) > targetCount {
		combined = combined[:targetCount]
	}

	return strings.Join(combined, ", ")
}
