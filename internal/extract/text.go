// Package extract pulls plain text out of uploaded CV documents and lists
// document entries inside zip archives.
package extract

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

const (
	// maxAttempts bounds retries on transient PDF decode failures.
	maxAttempts  = 5
	retryBackoff = 100 * time.Millisecond
)

// Text extracts plain text from a document, choosing the parser by file
// extension. PDF parsing is retried up to maxAttempts times with a fixed
// short backoff before the failure is allowed to propagate.
func Text(name string, data []byte) (string, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return pdfTextWithRetry(data)
	case ".docx":
		return docxText(data)
	default:
		return "", fmt.Errorf("unsupported file type: %s", name)
	}
}

func pdfTextWithRetry(data []byte) (string, error) {
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			time.Sleep(retryBackoff)
		}
		text, err := pdfText(data)
		if err == nil {
			return text, nil
		}
		lastErr = err
	}
	return "", lastErr
}

// pdfText reads every page's plain text. The pdf library panics on some
// malformed documents, so the panic is converted into an error here.
func pdfText(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf parse panic: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}

	var builder strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, _ := page.GetPlainText(nil)
		builder.WriteString(pageText)
		builder.WriteString("\n")
	}
	return builder.String(), nil
}

func docxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	return doc.Editable().GetContent(), nil
}
