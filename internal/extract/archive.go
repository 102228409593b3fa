package extract

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"strings"
)

// Entry is one qualifying document inside an uploaded archive. Err is set
// when the entry's contents could not be read, in which case Data is nil.
type Entry struct {
	Name string
	Data []byte
	Err  error
}

// PDFEntries lists the non-directory .pdf entries (case-insensitive) of a zip
// archive and reads their contents. An entry that cannot be read still counts
// as a qualifying entry; its read failure is carried on Entry.Err so callers
// can report it per entry.
func PDFEntries(data []byte) ([]Entry, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open zip archive: %w", err)
	}

	var entries []Entry
	for _, f := range reader.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(f.Name), ".pdf") {
			continue
		}

		entries = append(entries, readEntry(f))
	}

	return entries, nil
}

func readEntry(f *zip.File) Entry {
	rc, err := f.Open()
	if err != nil {
		return Entry{Name: f.Name, Err: fmt.Errorf("failed to open archive entry: %w", err)}
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return Entry{Name: f.Name, Err: fmt.Errorf("failed to read archive entry: %w", err)}
	}

	return Entry{Name: f.Name, Data: content}
}
