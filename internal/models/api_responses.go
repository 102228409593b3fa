package models

import "time"

// ScanResponse is the result of a single scan or rescan.
type ScanResponse struct {
	Email           string    `json:"email"`
	ExtractedName   string    `json:"extractedName"`
	MatchedKeywords []string  `json:"matchedKeywords"`
	ScannedAt       time.Time `json:"scannedAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// BatchScanResult is one successfully processed archive entry.
type BatchScanResult struct {
	File            string    `json:"file"`
	Email           string    `json:"email"`
	ExtractedName   string    `json:"extractedName"`
	MatchedKeywords []string  `json:"matchedKeywords"`
	ScannedAt       time.Time `json:"scannedAt"`
}

// BatchScanError is one archive entry that could not be processed.
type BatchScanError struct {
	File  string `json:"file"`
	Error string `json:"error"`
}

// BatchScanResponse summarizes a batch scan over a zip archive.
type BatchScanResponse struct {
	Processed int               `json:"processed"`
	Failed    int               `json:"failed"`
	Results   []BatchScanResult `json:"results"`
	Errors    []BatchScanError  `json:"errors"`
}

// KeywordListResponse is a paginated keyword listing.
type KeywordListResponse struct {
	Page  int       `json:"page"`
	Limit int       `json:"limit"`
	Items []Keyword `json:"items"`
}

// CVListResponse lists all stored scans.
type CVListResponse struct {
	Items []ScannedCV `json:"items"`
}

// ScanOutcome is a per-outcome scan counter row, exported as a metric.
type ScanOutcome struct {
	Outcome    string
	Count      int64
	LastSeenAt time.Time
}
