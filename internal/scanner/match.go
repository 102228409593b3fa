package scanner

import "strings"

// cvIndicators are phrases that distinguish a CV from an arbitrary document.
var cvIndicators = []string{
	"profile", "about me", "contact", "skills", "experience",
	"work experience", "education", "qualification", "resume",
	"curriculum vitae",
}

// LooksLikeCV reports whether text contains at least two CV indicator
// phrases (case-insensitive). Applied only on the single-scan path; batch
// and rescan skip the gate.
func LooksLikeCV(text string) bool {
	lower := strings.ToLower(text)
	count := 0
	for _, phrase := range cvIndicators {
		if strings.Contains(lower, phrase) {
			count++
		}
	}
	return count >= 2
}

// MatchKeywords returns the keywords contained in text, case-insensitively,
// preserving each keyword's original casing. The result has no duplicates
// and keeps first-seen order so output is reproducible.
func MatchKeywords(text string, keywords []string) []string {
	lower := strings.ToLower(text)

	matched := []string{}
	seen := make(map[string]struct{}, len(keywords))
	for _, kw := range keywords {
		if _, dup := seen[kw]; dup {
			continue
		}
		if strings.Contains(lower, strings.ToLower(kw)) {
			seen[kw] = struct{}{}
			matched = append(matched, kw)
		}
	}
	return matched
}
