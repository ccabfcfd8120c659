package orchestrator

import (
	"regexp"
	"strings"
)

// closingPhrases is the fixed lexicon that moves a session into the
// resolution-pending prompt. Matching is case-insensitive substring.
var closingPhrases = []string{
	"thank you",
	"thanks",
	"bye",
	"goodbye",
	"done",
	"ok",
	"okay",
	"cheers",
}

// IsClosingPhrase reports whether the message contains any closing phrase.
func IsClosingPhrase(text string) bool {
	lowered := strings.ToLower(text)
	for _, phrase := range closingPhrases {
		if strings.Contains(lowered, phrase) {
			return true
		}
	}
	return false
}

var (
	horizontalSpaces = regexp.MustCompile(`[ \t]+`)
	excessNewlines   = regexp.MustCompile(`\n{3,}`)
)

// CleanAnswer normalizes a collaborator answer for the delivery channel:
// trims, collapses whitespace runs, guarantees terminal punctuation and caps
// the length. The truncation marker matches what the channel users already
// know from earlier bot versions.
func CleanAnswer(answer string, maxChars int) string {
	cleaned := strings.TrimSpace(answer)
	cleaned = horizontalSpaces.ReplaceAllString(cleaned, " ")
	cleaned = excessNewlines.ReplaceAllString(cleaned, "\n\n")

	if cleaned == "" {
		return cleaned
	}

	if !strings.ContainsAny(cleaned[len(cleaned)-1:], ".!?") {
		cleaned += "."
	}

	if maxChars > 0 {
		runes := []rune(cleaned)
		if len(runes) > maxChars {
			cleaned = string(runes[:maxChars]) + "\n\n...(truncated)"
		}
	}

	return cleaned
}
