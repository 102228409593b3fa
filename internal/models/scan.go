package models

import "time"

// ScannedCV is a stored scan result, keyed by the lowercased email address
// extracted from the document.
type ScannedCV struct {
	Email           string    `json:"email"`
	ExtractedName   string    `json:"extractedName"`
	MatchedKeywords []string  `json:"matchedKeywords"`
	FullText        string    `json:"fullText"`
	ScannedAt       time.Time `json:"scannedAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
