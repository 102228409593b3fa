package scanner

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/Santoryu-0niGiri/CV-Scanner/internal/cache"
	"github.com/Santoryu-0niGiri/CV-Scanner/internal/db"
	"github.com/Santoryu-0niGiri/CV-Scanner/internal/testutil"
)

// newTestScanner returns a Scanner whose text extractor just returns the
// document bytes as text, so tests can feed plain text as "PDFs".
func newTestScanner(database *db.DB) *Scanner {
	s := New(database, cache.New(time.Minute))
	s.extractText = func(name string, data []byte) (string, error) {
		return string(data), nil
	}
	return s
}

const cvText = "Skills\nGo, SQL\nEducation\nSome University\nalice@example.com\n"

func TestScanRejectsNonCV(t *testing.T) {
	s := newTestScanner(nil)

	_, err := s.Scan(context.Background(), "doc.pdf", []byte("contact: bob@example.com"))
	if !errors.Is(err, ErrNotCV) {
		t.Errorf("Scan() error = %v, want ErrNotCV", err)
	}
}

func TestScanRequiresEmail(t *testing.T) {
	s := newTestScanner(nil)

	_, err := s.Scan(context.Background(), "doc.pdf", []byte("Skills\nEducation\nno address here\n"))
	if !errors.Is(err, ErrNoEmail) {
		t.Errorf("Scan() error = %v, want ErrNoEmail", err)
	}
}

func TestScanExtractionFailure(t *testing.T) {
	s := New(nil, cache.New(time.Minute))
	s.extractText = func(name string, data []byte) (string, error) {
		return "", errors.New("boom")
	}

	if _, err := s.Scan(context.Background(), "doc.pdf", nil); err == nil {
		t.Error("Scan() with failing extractor returned nil error")
	}
}

func TestRescanInvalidEmail(t *testing.T) {
	s := newTestScanner(nil)

	for _, email := range []string{"", "   ", "not-an-email", "a b@c.com"} {
		if _, err := s.Rescan(context.Background(), email); !errors.Is(err, ErrInvalidEmail) {
			t.Errorf("Rescan(%q) error = %v, want ErrInvalidEmail", email, err)
		}
	}
}

func TestBatchScanCorruptArchive(t *testing.T) {
	s := newTestScanner(nil)

	if _, err := s.BatchScan(context.Background(), []byte("not a zip")); err == nil {
		t.Error("BatchScan() on corrupt archive returned nil error")
	}
}

func TestBatchScanEmptyArchive(t *testing.T) {
	s := newTestScanner(nil)

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	fw, _ := w.Create("readme.txt")
	fw.Write([]byte("no pdfs in here"))
	w.Close()

	_, err := s.BatchScan(context.Background(), buf.Bytes())
	if !errors.Is(err, ErrEmptyArchive) {
		t.Errorf("BatchScan() error = %v, want ErrEmptyArchive", err)
	}
}

func TestBatchScanReportsUnreadableEntries(t *testing.T) {
	s := newTestScanner(nil)
	s.cache.Set(cache.ActiveKeywords, []string{})

	// A stored entry whose declared checksum does not match its contents
	// fails when read, like a truncated upload.
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	raw, err := w.CreateRaw(&zip.FileHeader{
		Name:               "mangled.pdf",
		Method:             zip.Store,
		CRC32:              0xdeadbeef,
		CompressedSize64:   4,
		UncompressedSize64: 4,
	})
	if err != nil {
		t.Fatalf("zip create raw: %v", err)
	}
	if _, err := raw.Write([]byte("junk")); err != nil {
		t.Fatalf("zip write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}

	resp, err := s.BatchScan(context.Background(), buf.Bytes())
	if err != nil {
		t.Fatalf("BatchScan() error = %v, want per-entry isolation", err)
	}

	if resp.Processed != 0 || resp.Failed != 1 {
		t.Errorf("BatchScan() processed=%d failed=%d, want 0 and 1", resp.Processed, resp.Failed)
	}
	if len(resp.Errors) != 1 || resp.Errors[0].File != "mangled.pdf" {
		t.Fatalf("BatchScan() errors = %+v, want one entry for mangled.pdf", resp.Errors)
	}
	if resp.Errors[0].Error == "" {
		t.Error("unreadable entry error message is empty")
	}
}

func TestScanUpsertByEmail(t *testing.T) {
	database, cleanup := testutil.TestDB(t)
	defer cleanup()

	ctx := context.Background()
	s := newTestScanner(database)
	testutil.CreateTestKeyword(t, database, "Go", true)

	first, err := s.Scan(ctx, "cv1.pdf", []byte(cvText))
	if err != nil {
		t.Fatalf("Scan() first error = %v", err)
	}
	if first.Email != "alice@example.com" {
		t.Errorf("Scan() email = %q", first.Email)
	}
	if !reflect.DeepEqual(first.MatchedKeywords, []string{"Go"}) {
		t.Errorf("Scan() matched = %v, want [Go]", first.MatchedKeywords)
	}

	// Second document with the same email overwrites the record but keeps
	// the original scannedAt.
	secondText := "Profile\nExperience\nnew content alice@example.com\n"
	second, err := s.Scan(ctx, "cv2.pdf", []byte(secondText))
	if err != nil {
		t.Fatalf("Scan() second error = %v", err)
	}

	if !second.ScannedAt.Equal(first.ScannedAt) {
		t.Errorf("Scan() overwrite changed scannedAt: %v -> %v", first.ScannedAt, second.ScannedAt)
	}
	if !second.UpdatedAt.After(first.UpdatedAt) {
		t.Errorf("Scan() overwrite did not advance updatedAt: %v -> %v", first.UpdatedAt, second.UpdatedAt)
	}

	stored, err := database.GetScanByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("GetScanByEmail() error = %v", err)
	}
	if stored.FullText != secondText {
		t.Errorf("stored fullText = %q, want second document's text", stored.FullText)
	}
}

func TestRescanAppliesNewKeywords(t *testing.T) {
	database, cleanup := testutil.TestDB(t)
	defer cleanup()

	ctx := context.Background()
	s := newTestScanner(database)
	testutil.CreateTestKeyword(t, database, "Go", true)

	first, err := s.Scan(ctx, "cv.pdf", []byte(cvText))
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if !reflect.DeepEqual(first.MatchedKeywords, []string{"Go"}) {
		t.Fatalf("Scan() matched = %v, want [Go]", first.MatchedKeywords)
	}

	// A keyword added after the scan applies retroactively on rescan.
	testutil.CreateTestKeyword(t, database, "SQL", true)
	s.InvalidateKeywords()

	rescanned, err := s.Rescan(ctx, "Alice@Example.com")
	if err != nil {
		t.Fatalf("Rescan() error = %v", err)
	}

	if !reflect.DeepEqual(rescanned.MatchedKeywords, []string{"Go", "SQL"}) {
		t.Errorf("Rescan() matched = %v, want [Go SQL]", rescanned.MatchedKeywords)
	}
	if !rescanned.ScannedAt.Equal(first.ScannedAt) {
		t.Errorf("Rescan() changed scannedAt: %v -> %v", first.ScannedAt, rescanned.ScannedAt)
	}
	if !rescanned.UpdatedAt.After(first.UpdatedAt) {
		t.Errorf("Rescan() did not advance updatedAt")
	}
	if rescanned.ExtractedName != first.ExtractedName {
		t.Errorf("Rescan() changed extractedName: %q -> %q", first.ExtractedName, rescanned.ExtractedName)
	}
}

func TestRescanNotFound(t *testing.T) {
	database, cleanup := testutil.TestDB(t)
	defer cleanup()

	s := newTestScanner(database)

	_, err := s.Rescan(context.Background(), "ghost@example.com")
	if !errors.Is(err, db.ErrScanNotFound) {
		t.Errorf("Rescan() error = %v, want ErrScanNotFound", err)
	}
}

func TestBatchScanIsolatesFailures(t *testing.T) {
	database, cleanup := testutil.TestDB(t)
	defer cleanup()

	ctx := context.Background()
	s := newTestScanner(database)
	testutil.CreateTestKeyword(t, database, "Go", true)

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range map[string]string{
		"alice.pdf":   "skills in go\nalice@example.com\n",
		"bob.pdf":     "sql only\nbob@example.com\n",
		"no-mail.pdf": "nothing to see here\n",
		"notes.txt":   "not a pdf\n",
	} {
		fw, err := w.Create(name)
		if err != nil {
			t.Fatalf("zip create: %v", err)
		}
		fw.Write([]byte(content))
	}
	w.Close()

	resp, err := s.BatchScan(ctx, buf.Bytes())
	if err != nil {
		t.Fatalf("BatchScan() error = %v", err)
	}

	if resp.Processed != 2 {
		t.Errorf("BatchScan() processed = %d, want 2", resp.Processed)
	}
	if resp.Failed != 1 {
		t.Errorf("BatchScan() failed = %d, want 1", resp.Failed)
	}
	if len(resp.Errors) != 1 || resp.Errors[0].File != "no-mail.pdf" || resp.Errors[0].Error != "No email found" {
		t.Errorf("BatchScan() errors = %+v", resp.Errors)
	}

	// Both successful entries were persisted; the batch path has no CV gate.
	if _, err := database.GetScanByEmail(ctx, "alice@example.com"); err != nil {
		t.Errorf("alice was not persisted: %v", err)
	}
	if _, err := database.GetScanByEmail(ctx, "bob@example.com"); err != nil {
		t.Errorf("bob was not persisted: %v", err)
	}
}

func TestActiveKeywordsCaching(t *testing.T) {
	database, cleanup := testutil.TestDB(t)
	defer cleanup()

	ctx := context.Background()
	s := newTestScanner(database)
	testutil.CreateTestKeyword(t, database, "Go", true)
	testutil.CreateTestKeyword(t, database, "COBOL", false)

	names, err := s.ActiveKeywords(ctx)
	if err != nil {
		t.Fatalf("ActiveKeywords() error = %v", err)
	}
	if !reflect.DeepEqual(names, []string{"Go"}) {
		t.Fatalf("ActiveKeywords() = %v, want [Go]", names)
	}

	// A direct store change is invisible until the cache is invalidated.
	testutil.CreateTestKeyword(t, database, "Rust", true)

	cached, err := s.ActiveKeywords(ctx)
	if err != nil {
		t.Fatalf("ActiveKeywords() cached error = %v", err)
	}
	if !reflect.DeepEqual(cached, []string{"Go"}) {
		t.Errorf("ActiveKeywords() = %v, want cached [Go]", cached)
	}

	s.InvalidateKeywords()

	fresh, err := s.ActiveKeywords(ctx)
	if err != nil {
		t.Fatalf("ActiveKeywords() refreshed error = %v", err)
	}
	if !reflect.DeepEqual(fresh, []string{"Go", "Rust"}) {
		t.Errorf("ActiveKeywords() after invalidate = %v, want [Go Rust]", fresh)
	}
}
