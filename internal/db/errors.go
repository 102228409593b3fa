package db

import "errors"

// Domain-level database error sentinels.
var (
	// Keyword errors
	ErrKeywordNotFound = errors.New("keyword not found")

	// Scan errors
	ErrScanNotFound = errors.New("scanned CV not found")

	// User errors
	ErrUserNotFound = errors.New("user not found")
)
