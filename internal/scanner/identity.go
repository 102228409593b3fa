// Package scanner holds the CV scanning pipeline: identity extraction,
// keyword matching, and the scan/rescan/batch orchestration on top of the
// keyword cache and the document store.
package scanner

import (
	"regexp"
	"strings"
)

// UnknownName is stored when no name could be recovered from the document.
const UnknownName = "Unknown"

// Email normalization and matching. PDF text runs often break addresses
// apart ("john @ example . com") or spell out separators ("john at example
// dot com"); normalization folds those back together before matching.
var (
	wsAroundAt  = regexp.MustCompile(`\s*@\s*`)
	wsAroundDot = regexp.MustCompile(`\s*\.\s*`)
	atWord      = regexp.MustCompile(`(?i)\bat\b`)
	dotWord     = regexp.MustCompile(`(?i)\bdot\b`)
	multiSpace  = regexp.MustCompile(`\s{2,}`)

	emailStrict  = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[A-Za-z]{2,}`)
	emailLenient = regexp.MustCompile(`(?i)([A-Za-z0-9._%+-]+)\s*@\s*([A-Za-z0-9.-]+)\s*\.?\s*([A-Za-z]{2,})`)
)

// ExtractEmail returns the first email address found in text, lowercased,
// or "" when none is found. Absence is a normal outcome, not an error.
func ExtractEmail(rawText string) string {
	if rawText == "" {
		return ""
	}

	t := wsAroundAt.ReplaceAllString(rawText, "@")
	t = wsAroundDot.ReplaceAllString(t, ".")
	t = atWord.ReplaceAllString(t, "@")
	t = dotWord.ReplaceAllString(t, ".")
	t = strings.TrimSpace(multiSpace.ReplaceAllString(t, " "))

	if m := emailStrict.FindString(t); m != "" {
		return strings.ToLower(m)
	}

	// Lenient pass: recover addresses that still carry whitespace around a
	// missing @ or dot and reassemble local@domain.tld.
	if m := emailLenient.FindStringSubmatch(t); m != nil {
		return strings.ToLower(m[1] + "@" + m[2] + "." + m[3])
	}

	return ""
}

// Name extraction line patterns, tried in priority order.
var (
	jobTitleRe = regexp.MustCompile(`(?i)\b(developer|engineer|manager|designer|analyst|consultant|specialist|architect|administrator|coordinator|director|lead|intern|support|technician|officer|assistant|associate|executive|president|scrum|devops|qa|tester|admin)\b`)
	headerRe   = regexp.MustCompile(`(?i)^(education|contact|skills|experience|work|profile|reference|languages|summary|objective|certifications?|awards?|projects?|publications?|interests?|hobbies)$`)

	allCapsToken  = regexp.MustCompile(`^[A-Z]{2,}$`)
	spacedLetters = regexp.MustCompile(`^[A-Z](\s+[A-Z.?])+$`)
	firstMidLast  = regexp.MustCompile(`^([A-Z][a-z]+)\s+([A-Z]\.)\s+([A-Z][a-z]+)$`)
	capsMidCaps   = regexp.MustCompile(`^([A-Z]{2,})\s+([A-Z]\.)\s+([A-Z]{2,})$`)
	firstLast     = regexp.MustCompile(`^([A-Z][a-z]+)\s+([A-Z][a-z]+)$`)
	capsPair      = regexp.MustCompile(`^([A-Z]{2,})\s+([A-Z]{2,})$`)
	threeNames    = regexp.MustCompile(`^([A-Z][a-z]+)\s+([A-Z][a-z]+)\s+([A-Z][a-z]+)$`)

	digitsRe    = regexp.MustCompile(`\d+`)
	separatorRe = regexp.MustCompile(`[._-]+`)
)

// lineHeuristics are the single-line name patterns, evaluated in order until
// one succeeds. Each is independent and pure.
var lineHeuristics = []func(string) (string, bool){
	nameFromSpacedLetters,
	nameFromFirstMidLast,
	nameFromCapsMidCaps,
	nameFromFirstLast,
	nameFromCapsPair,
	nameFromThreeNames,
}

// ExtractIdentity returns the best-effort name and email for a document's
// text. The email is "" when absent; the name falls back to a derivation
// from the email's local part and finally to UnknownName.
func ExtractIdentity(rawText string) (name, email string) {
	email = ExtractEmail(rawText)

	name = extractNameFromText(rawText)
	if name == "" {
		name = nameFromEmail(email)
	}
	if name == "" {
		name = UnknownName
	}
	return name, email
}

func extractNameFromText(text string) string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line != "" {
			lines = append(lines, line)
		}
	}

	// All-caps name banners: two consecutive single-token lines, e.g. a
	// surname line followed by a given-name line.
	for i := 0; i+1 < len(lines); i++ {
		if isExcludedLine(lines[i]) || isExcludedLine(lines[i+1]) {
			continue
		}
		if allCapsToken.MatchString(lines[i]) && allCapsToken.MatchString(lines[i+1]) {
			return titleCase(lines[i] + " " + lines[i+1])
		}
	}

	for _, line := range lines {
		if isExcludedLine(line) {
			continue
		}
		for _, heuristic := range lineHeuristics {
			if name, ok := heuristic(line); ok {
				return name
			}
		}
	}

	return ""
}

func isExcludedLine(line string) bool {
	return headerRe.MatchString(line) || jobTitleRe.MatchString(line)
}

// nameFromSpacedLetters reconstructs a letter-spaced name such as
// "J O H N . D O E", where a lone dot marks the preceding letter as a
// middle initial.
func nameFromSpacedLetters(line string) (string, bool) {
	if !spacedLetters.MatchString(line) {
		return "", false
	}

	parts := strings.Fields(line)
	dotIdx := -1
	for i, p := range parts {
		if p == "." {
			dotIdx = i
			break
		}
	}

	if dotIdx > 0 {
		first := strings.Join(parts[:dotIdx-1], "")
		middle := parts[dotIdx-1] + "."
		last := strings.Join(parts[dotIdx+1:], "")
		return titleCase(first) + " " + middle + " " + titleCase(last), true
	}
	return titleCase(strings.Join(parts, "")), true
}

func nameFromFirstMidLast(line string) (string, bool) {
	if m := firstMidLast.FindStringSubmatch(line); m != nil {
		return m[1] + " " + m[2] + " " + m[3], true
	}
	return "", false
}

func nameFromCapsMidCaps(line string) (string, bool) {
	if m := capsMidCaps.FindStringSubmatch(line); m != nil {
		return titleCase(m[1]) + " " + m[2] + " " + titleCase(m[3]), true
	}
	return "", false
}

func nameFromFirstLast(line string) (string, bool) {
	if m := firstLast.FindStringSubmatch(line); m != nil {
		return m[1] + " " + m[2], true
	}
	return "", false
}

func nameFromCapsPair(line string) (string, bool) {
	if m := capsPair.FindStringSubmatch(line); m != nil {
		return titleCase(m[1] + " " + m[2]), true
	}
	return "", false
}

// nameFromThreeNames abbreviates the middle name to an initial.
func nameFromThreeNames(line string) (string, bool) {
	if m := threeNames.FindStringSubmatch(line); m != nil {
		return m[1] + " " + m[2][:1] + ". " + m[3], true
	}
	return "", false
}

// nameFromEmail derives a display name from an email's local part by
// stripping digits and turning separator runs into spaces.
func nameFromEmail(email string) string {
	if email == "" {
		return ""
	}
	local, _, _ := strings.Cut(email, "@")
	clean := digitsRe.ReplaceAllString(local, "")
	clean = strings.TrimSpace(separatorRe.ReplaceAllString(clean, " "))
	return titleCase(clean)
}

// titleCase lowercases the string, then capitalizes the first letter of each
// whitespace-separated word.
func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
