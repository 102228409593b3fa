package scanner

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Santoryu-0niGiri/CV-Scanner/internal/cache"
	"github.com/Santoryu-0niGiri/CV-Scanner/internal/db"
	"github.com/Santoryu-0niGiri/CV-Scanner/internal/extract"
	"github.com/Santoryu-0niGiri/CV-Scanner/internal/models"
	"github.com/Santoryu-0niGiri/CV-Scanner/internal/validation"
)

// Client-caused failure sentinels, mapped to 400 responses by the handlers.
var (
	ErrNoEmail      = errors.New("no email address found in CV")
	ErrNotCV        = errors.New("the uploaded file does not appear to be a CV")
	ErrInvalidEmail = errors.New("valid email address is required")
	ErrEmptyArchive = errors.New("no PDF files found in archive")
)

// batchNoEmailMsg is the per-entry error recorded when a batch document has
// no extractable email.
const batchNoEmailMsg = "No email found"

// Scanner orchestrates text extraction, identity extraction, keyword
// matching, and persistence for single and batch scans.
type Scanner struct {
	db    *db.DB
	cache *cache.Cache

	// extractText is swapped out in tests.
	extractText func(name string, data []byte) (string, error)
}

// New creates a Scanner backed by the database and the shared keyword cache.
func New(database *db.DB, kwCache *cache.Cache) *Scanner {
	return &Scanner{
		db:          database,
		cache:       kwCache,
		extractText: extract.Text,
	}
}

// ActiveKeywords returns the current active keyword names, from the cache
// when fresh, otherwise from the store (repopulating the cache).
func (s *Scanner) ActiveKeywords(ctx context.Context) ([]string, error) {
	if cached, ok := s.cache.Get(cache.ActiveKeywords); ok {
		return cached, nil
	}

	names, err := s.db.GetActiveKeywordNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load active keywords: %w", err)
	}
	s.cache.Set(cache.ActiveKeywords, names)
	return names, nil
}

// InvalidateKeywords drops the cached keyword list. Called whenever a
// keyword record is mutated.
func (s *Scanner) InvalidateKeywords() {
	s.cache.Clear(cache.ActiveKeywords)
}

// Scan processes a single uploaded document: extract text, gate on the CV
// indicator heuristic, extract identity, match keywords, and upsert the scan
// record keyed by lowercased email.
func (s *Scanner) Scan(ctx context.Context, filename string, data []byte) (*models.ScanResponse, error) {
	text, err := s.extractText(filename, data)
	if err != nil {
		return nil, fmt.Errorf("text extraction failed: %w", err)
	}

	name, email := ExtractIdentity(text)

	if !LooksLikeCV(text) {
		return nil, ErrNotCV
	}
	if email == "" {
		return nil, ErrNoEmail
	}

	keywords, err := s.ActiveKeywords(ctx)
	if err != nil {
		return nil, err
	}
	matched := MatchKeywords(text, keywords)

	cv := &models.ScannedCV{
		Email:           strings.ToLower(email),
		ExtractedName:   name,
		MatchedKeywords: matched,
		FullText:        text,
	}
	if err := s.db.UpsertScan(ctx, cv); err != nil {
		return nil, err
	}

	return &models.ScanResponse{
		Email:           cv.Email,
		ExtractedName:   cv.ExtractedName,
		MatchedKeywords: cv.MatchedKeywords,
		ScannedAt:       cv.ScannedAt,
		UpdatedAt:       cv.UpdatedAt,
	}, nil
}

// Rescan re-runs keyword matching against a stored document's text. This is
// how newly added or newly activated keywords apply retroactively to CVs
// scanned earlier. scannedAt and extractedName are untouched.
func (s *Scanner) Rescan(ctx context.Context, email string) (*models.ScanResponse, error) {
	email = strings.TrimSpace(email)
	if email == "" || !validation.ValidateEmail(email) {
		return nil, ErrInvalidEmail
	}
	email = strings.ToLower(email)

	cv, err := s.db.GetScanByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	keywords, err := s.ActiveKeywords(ctx)
	if err != nil {
		return nil, err
	}
	matched := MatchKeywords(cv.FullText, keywords)

	updated, err := s.db.UpdateScanMatches(ctx, email, matched)
	if err != nil {
		return nil, err
	}

	return &models.ScanResponse{
		Email:           updated.Email,
		ExtractedName:   updated.ExtractedName,
		MatchedKeywords: updated.MatchedKeywords,
		ScannedAt:       updated.ScannedAt,
		UpdatedAt:       updated.UpdatedAt,
	}, nil
}

// BatchScan processes every .pdf entry of a zip archive, isolating per-entry
// failures into the response's error list instead of aborting the batch.
// The CV indicator gate is not applied on this path.
func (s *Scanner) BatchScan(ctx context.Context, archive []byte) (*models.BatchScanResponse, error) {
	entries, err := extract.PDFEntries(archive)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrEmptyArchive
	}

	keywords, err := s.ActiveKeywords(ctx)
	if err != nil {
		return nil, err
	}

	resp := &models.BatchScanResponse{
		Results: []models.BatchScanResult{},
		Errors:  []models.BatchScanError{},
	}

	for _, entry := range entries {
		if entry.Err != nil {
			resp.Errors = append(resp.Errors, models.BatchScanError{
				File:  entry.Name,
				Error: entry.Err.Error(),
			})
			continue
		}

		result, err := s.scanEntry(ctx, entry, keywords)
		if err != nil {
			resp.Errors = append(resp.Errors, models.BatchScanError{
				File:  entry.Name,
				Error: err.Error(),
			})
			continue
		}
		resp.Results = append(resp.Results, *result)
	}

	resp.Processed = len(resp.Results)
	resp.Failed = len(resp.Errors)
	return resp, nil
}

func (s *Scanner) scanEntry(ctx context.Context, entry extract.Entry, keywords []string) (*models.BatchScanResult, error) {
	text, err := s.extractText(entry.Name, entry.Data)
	if err != nil {
		return nil, err
	}

	name, email := ExtractIdentity(text)
	if email == "" {
		return nil, errors.New(batchNoEmailMsg)
	}

	matched := MatchKeywords(text, keywords)

	cv := &models.ScannedCV{
		Email:           strings.ToLower(email),
		ExtractedName:   name,
		MatchedKeywords: matched,
		FullText:        text,
	}
	if err := s.db.UpsertScan(ctx, cv); err != nil {
		return nil, err
	}

	return &models.BatchScanResult{
		File:            entry.Name,
		Email:           cv.Email,
		ExtractedName:   cv.ExtractedName,
		MatchedKeywords: cv.MatchedKeywords,
		ScannedAt:       cv.ScannedAt,
	}, nil
}
