package textproc

import (
	"strings"
	"testing"
)

// TestCleanKeywordsReducesAndDeduplicates checks the documented example.
func TestCleanKeywordsReducesAndDeduplicates(t *testing.T) {
	got := CleanKeywords("Red Car, red car, blue Sky", true, "")
	if got != "red, blue" {
		t.Fatalf("CleanKeywords() = %q, want %q", got, "red, blue")
	}
}

// TestCleanKeywordsWithoutDedupeKeepsDuplicates checks the dedupe flag off.
func TestCleanKeywordsWithoutDedupeKeepsDuplicates(t *testing.T) {
	got := CleanKeywords("Red Car, red car, blue Sky", false, "")
	if got != "red, red, blue" {
		t.Fatalf("CleanKeywords() = %q, want %q", got, "red, red, blue")
	}
}

// TestCleanKeywordsSplitsOnAllSeparators checks comma/semicolon/newline splits.
func TestCleanKeywordsSplitsOnAllSeparators(t *testing.T) {
	got := CleanKeywords("alpha;beta\ngamma, delta", true, "")
	if got != "alpha, beta, gamma, delta" {
		t.Fatalf("CleanKeywords() = %q", got)
	}
}

// TestCleanKeywordsAppendsExtra checks the extra blob is merged before cleaning.
func TestCleanKeywordsAppendsExtra(t *testing.T) {
	got := CleanKeywords("one, two", true, "Three, one")
	if got != "one, two, three" {
		t.Fatalf("CleanKeywords() = %q, want %q", got, "one, two, three")
	}

	got = CleanKeywords("", true, "solo")
	if got != "solo" {
		t.Fatalf("CleanKeywords with empty raw = %q, want solo", got)
	}
}

// TestCleanKeywordsDropsEmptyTokens checks blank segments are discarded.
func TestCleanKeywordsDropsEmptyTokens(t *testing.T) {
	got := CleanKeywords(",, a ,;,  , b,", true, "")
	if got != "a, b" {
		t.Fatalf("CleanKeywords() = %q, want %q", got, "a, b")
	}
	if got := CleanKeywords("", true, ""); got != "" {
		t.Fatalf("CleanKeywords of empty input = %q, want empty", got)
	}
}

// TestCleanKeywordsIdempotent re-runs cleaning on its own output.
func TestCleanKeywordsIdempotent(t *testing.T) {
	for _, dedupe := range []bool{true, false} {
		first := CleanKeywords("Red Car; BLUE sky\nsun set, red", dedupe, "extra words")
		second := CleanKeywords(first, dedupe, "")
		if first != second {
			t.Fatalf("dedupe=%v: CleanKeywords not idempotent: %q -> %q", dedupe, first, second)
		}
	}
}

// TestBuildKeywordsPadsWithFiller checks filler tops up short lists.
func TestBuildKeywordsPadsWithFiller(t *testing.T) {
	got := BuildKeywords("cat, dog", "", true, 10)
	tokens := strings.Split(got, ", ")
	if len(tokens) != 10 {
		t.Fatalf("token count = %d, want 10 (%q)", len(tokens), got)
	}
	if tokens[0] != "cat" || tokens[1] != "dog" {
		t.Fatalf("real content must lead: %q", got)
	}

	seen := map[string]struct{}{}
	for _, token := range tokens {
		if _, ok := seen[token]; ok {
			t.Fatalf("duplicate token %q in %q", token, got)
		}
		seen[token] = struct{}{}
	}
}

// TestBuildKeywordsNeverExceedsTarget checks the hard cap.
func TestBuildKeywordsNeverExceedsTarget(t *testing.T) {
	base := "a1, b2, c3, d4, e5, f6, g7, h8"
	got := BuildKeywords(base, "", true, 5)
	tokens := strings.Split(got, ", ")
	if len(tokens) != 5 {
		t.Fatalf("token count = %d, want 5 (%q)", len(tokens), got)
	}
	if strings.Join(tokens, ", ") != "a1, b2, c3, d4, e5" {
		t.Fatalf("truncation changed order: %q", got)
	}
}

// TestBuildKeywordsBulkTokensLead checks bulk text forms the list prefix.
func TestBuildKeywordsBulkTokensLead(t *testing.T) {
	got := BuildKeywords("cat, dog, bird", "Dog, fish, dog", true, 6)
	tokens := strings.Split(got, ", ")
	if tokens[0] != "dog" || tokens[1] != "fish" {
		t.Fatalf("bulk tokens must lead in their own order: %q", got)
	}

	rest := tokens[2:]
	wantRest := []string{"cat", "bird"}
	for i, want := range wantRest {
		if rest[i] != want {
			t.Fatalf("combined remainder[%d] = %q, want %q (%q)", i, rest[i], want, got)
		}
	}
	if len(tokens) != 6 {
		t.Fatalf("token count = %d, want 6 (%q)", len(tokens), got)
	}
}

// TestBuildKeywordsFillerOnlyWhenContentExhausted checks padding priority.
func TestBuildKeywordsFillerOnlyWhenContentExhausted(t *testing.T) {
	got := BuildKeywords("sunrise, ocean, wave", "beach", true, 5)
	tokens := strings.Split(got, ", ")
	if len(tokens) != 5 {
		t.Fatalf("token count = %d, want 5 (%q)", len(tokens), got)
	}
	want := []string{"beach", "sunrise", "ocean", "wave"}
	for i, token := range want {
		if tokens[i] != token {
			t.Fatalf("tokens[%d] = %q, want %q (%q)", i, tokens[i], token, got)
		}
	}
	// The final slot is filler and must not duplicate existing content.
	for _, token := range want {
		if tokens[4] == token {
			t.Fatalf("filler duplicated real token %q (%q)", token, got)
		}
	}
}

// TestBuildKeywordsEmptyInputsAreAllFiller checks generation from nothing.
func TestBuildKeywordsEmptyInputsAreAllFiller(t *testing.T) {
	got := BuildKeywords("", "", true, 8)
	tokens := strings.Split(got, ", ")
	if len(tokens) != 8 {
		t.Fatalf("token count = %d, want 8 (%q)", len(tokens), got)
	}
	for i, token := range fillerVocabulary[:8] {
		if tokens[i] != token {
			t.Fatalf("tokens[%d] = %q, want filler %q", i, tokens[i], token)
		}
	}
}

// TestBuildKeywordsZeroTarget returns empty output for a non-positive target.
func TestBuildKeywordsZeroTarget(t *testing.T) {
	if got := BuildKeywords("cat", "", true, 0); got != "" {
		t.Fatalf("BuildKeywords with target 0 = %q, want empty", got)
	}
}
