package validation

import (
	"regexp"
	"strings"
)

// emailPattern is the basic shape check used for rescan/login inputs:
// something@something.something with no whitespace.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateEmail checks if an email address has a plausible shape.
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// NormalizeEmail lowercases an email so store lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateKeywordName checks a keyword name and returns a reason when invalid.
func ValidateKeywordName(name string) (bool, string) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return false, "keyword name is required and must be a non-empty string"
	}
	if len(trimmed) > 100 {
		return false, "keyword name must be at most 100 characters"
	}
	return true, ""
}

// Pagination defaults and limits.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// ClampPage returns a valid page number (>= 1).
func ClampPage(page int) int {
	if page < DefaultPage {
		return DefaultPage
	}
	return page
}

// ClampLimit returns a valid page size in [1, MaxLimit], defaulting when
// out of range.
func ClampLimit(limit int) int {
	if limit < 1 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// NormalizeSort maps user-supplied sort parameters onto the whitelisted
// column and direction. sortBy "name" maps to the name column; anything else
// falls back to created_at. Direction defaults to descending.
func NormalizeSort(sortBy, sortOrder string) (field, order string) {
	field = "created_at"
	if strings.EqualFold(sortBy, "name") {
		field = "name"
	}
	order = "desc"
	if strings.EqualFold(sortOrder, "asc") {
		order = "asc"
	}
	return field, order
}
