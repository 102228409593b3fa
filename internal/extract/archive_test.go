package extract

import (
	"archive/zip"
	"bytes"
	"testing"
)

func buildZip(t *testing.T, files map[string][]byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range files {
		fw, err := w.Create(name)
		if err != nil {
			t.Fatalf("zip create %s: %v", name, err)
		}
		if _, err := fw.Write(content); err != nil {
			t.Fatalf("zip write %s: %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	return buf.Bytes()
}

func TestPDFEntries(t *testing.T) {
	data := buildZip(t, map[string][]byte{
		"alice.pdf":       []byte("alice"),
		"BOB.PDF":         []byte("bob"),
		"notes.txt":       []byte("ignore"),
		"nested/carol.pdf": []byte("carol"),
	})

	entries, err := PDFEntries(data)
	if err != nil {
		t.Fatalf("PDFEntries() error = %v", err)
	}

	if len(entries) != 3 {
		t.Fatalf("PDFEntries() returned %d entries, want 3", len(entries))
	}

	byName := make(map[string][]byte)
	for _, e := range entries {
		byName[e.Name] = e.Data
	}
	if string(byName["alice.pdf"]) != "alice" {
		t.Errorf("alice.pdf content = %q", byName["alice.pdf"])
	}
	if _, ok := byName["BOB.PDF"]; !ok {
		t.Error("uppercase .PDF entry was not included")
	}
	if _, ok := byName["notes.txt"]; ok {
		t.Error("non-pdf entry was included")
	}
}

func TestPDFEntriesSkipsDirectories(t *testing.T) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	if _, err := w.Create("cvs.pdf/"); err != nil {
		t.Fatalf("zip create dir: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}

	entries, err := PDFEntries(buf.Bytes())
	if err != nil {
		t.Fatalf("PDFEntries() error = %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("PDFEntries() returned %d entries for directory-only zip, want 0", len(entries))
	}
}

func TestPDFEntriesEmptyArchive(t *testing.T) {
	data := buildZip(t, map[string][]byte{"readme.md": []byte("hi")})

	entries, err := PDFEntries(data)
	if err != nil {
		t.Fatalf("PDFEntries() error = %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("PDFEntries() = %d entries, want 0", len(entries))
	}
}

func buildZipWithBadEntry(t *testing.T, goodName string, goodContent []byte, badName string) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	fw, err := w.Create(goodName)
	if err != nil {
		t.Fatalf("zip create %s: %v", goodName, err)
	}
	if _, err := fw.Write(goodContent); err != nil {
		t.Fatalf("zip write %s: %v", goodName, err)
	}

	// A stored entry whose declared checksum does not match its contents
	// fails mid-read, like a truncated or bit-rotted upload.
	raw, err := w.CreateRaw(&zip.FileHeader{
		Name:               badName,
		Method:             zip.Store,
		CRC32:              0xdeadbeef,
		CompressedSize64:   4,
		UncompressedSize64: 4,
	})
	if err != nil {
		t.Fatalf("zip create raw %s: %v", badName, err)
	}
	if _, err := raw.Write([]byte("junk")); err != nil {
		t.Fatalf("zip write %s: %v", badName, err)
	}

	if err := w.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	return buf.Bytes()
}

func TestPDFEntriesReportsUnreadableEntry(t *testing.T) {
	data := buildZipWithBadEntry(t, "good.pdf", []byte("fine"), "bad.pdf")

	entries, err := PDFEntries(data)
	if err != nil {
		t.Fatalf("PDFEntries() error = %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("PDFEntries() returned %d entries, want 2", len(entries))
	}

	byName := make(map[string]Entry)
	for _, e := range entries {
		byName[e.Name] = e
	}

	good := byName["good.pdf"]
	if good.Err != nil {
		t.Errorf("good.pdf unexpectedly failed: %v", good.Err)
	}
	if string(good.Data) != "fine" {
		t.Errorf("good.pdf content = %q", good.Data)
	}

	bad := byName["bad.pdf"]
	if bad.Err == nil {
		t.Error("bad.pdf read failure was not reported")
	}
	if bad.Data != nil {
		t.Errorf("bad.pdf should carry no data, got %q", bad.Data)
	}
}

func TestPDFEntriesCorruptArchive(t *testing.T) {
	if _, err := PDFEntries([]byte("this is not a zip")); err == nil {
		t.Error("PDFEntries() on garbage input returned nil error")
	}
}

func TestTextUnsupportedType(t *testing.T) {
	if _, err := Text("resume.odt", []byte("x")); err == nil {
		t.Error("Text() on unsupported extension returned nil error")
	}
}
