package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/Santoryu-0niGiri/CV-Scanner/internal/config"
	"github.com/Santoryu-0niGiri/CV-Scanner/internal/db"
	"github.com/Santoryu-0niGiri/CV-Scanner/internal/metrics"
	"github.com/Santoryu-0niGiri/CV-Scanner/internal/models"
	"github.com/Santoryu-0niGiri/CV-Scanner/internal/scanner"
)

// ScanHandler handles CV scanning operations via JSON API.
type ScanHandler struct {
	db      *db.DB
	scanner *scanner.Scanner
	cfg     *config.Config
}

// NewScanHandler creates a new scan handler.
func NewScanHandler(database *db.DB, sc *scanner.Scanner, cfg *config.Config) *ScanHandler {
	return &ScanHandler{db: database, scanner: sc, cfg: cfg}
}

// Scan extracts identity and keyword matches from a single uploaded CV.
func (h *ScanHandler) Scan(c fiber.Ctx) error {
	data, name, err := h.readUpload(c, ".pdf", ".docx")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}

	result, err := h.scanner.Scan(c.Context(), name, data)
	if err != nil {
		switch {
		case errors.Is(err, scanner.ErrNoEmail):
			metrics.RecordScanOutcome(metrics.OutcomeNoEmail)
		case errors.Is(err, scanner.ErrNotCV):
			metrics.RecordScanOutcome(metrics.OutcomeNotCV)
		}
		return respondError(c, err)
	}

	metrics.RecordScanOutcome(metrics.OutcomeScanned)
	return jsonSuccess(c, result)
}

// BatchScan processes every PDF inside an uploaded zip archive.
func (h *ScanHandler) BatchScan(c fiber.Ctx) error {
	data, _, err := h.readUpload(c, ".zip")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}

	result, err := h.scanner.BatchScan(c.Context(), data)
	if err != nil {
		metrics.RecordScanOutcome(metrics.OutcomeBatchError)
		return respondError(c, err)
	}

	metrics.RecordScanOutcome(metrics.OutcomeBatch)
	return jsonSuccess(c, result)
}

// Rescan re-applies the current keyword set to a stored CV's text.
func (h *ScanHandler) Rescan(c fiber.Ctx) error {
	var body struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.scanner.Rescan(c.Context(), body.Email)
	if err != nil {
		return respondError(c, err)
	}

	metrics.RecordScanOutcome(metrics.OutcomeRescanned)
	return jsonSuccess(c, result)
}

// List returns all scanned CVs, most recent first.
func (h *ScanHandler) List(c fiber.Ctx) error {
	scans, err := h.db.ListScans(c.Context())
	if err != nil {
		return respondError(c, err)
	}

	return jsonSuccess(c, models.CVListResponse{Items: scans})
}

// Get returns a single scanned CV by email.
func (h *ScanHandler) Get(c fiber.Ctx) error {
	email := strings.ToLower(strings.TrimSpace(c.Params("email")))
	if email == "" {
		return jsonError(c, fiber.StatusBadRequest, "email is required")
	}

	cv, err := h.db.GetScanByEmail(c.Context(), email)
	if err != nil {
		return respondError(c, err)
	}

	return jsonSuccess(c, cv)
}

// Delete removes a scanned CV by email.
func (h *ScanHandler) Delete(c fiber.Ctx) error {
	email := strings.ToLower(strings.TrimSpace(c.Params("email")))
	if email == "" {
		return jsonError(c, fiber.StatusBadRequest, "email is required")
	}

	if err := h.db.DeleteScan(c.Context(), email); err != nil {
		return respondError(c, err)
	}

	return jsonSuccess(c, fiber.Map{"deleted": true})
}

// readUpload fetches the "file" form field, enforcing the size limit and
// the allowed extensions.
func (h *ScanHandler) readUpload(c fiber.Ctx, allowedExts ...string) ([]byte, string, error) {
	header, err := c.FormFile("file")
	if err != nil {
		return nil, "", errors.New("file is required")
	}

	if header.Size > int64(h.cfg.MaxUploadBytes) {
		return nil, "", fmt.Errorf("file exceeds the %d byte upload limit", h.cfg.MaxUploadBytes)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	allowed := false
	for _, e := range allowedExts {
		if ext == e {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, "", fmt.Errorf("unsupported file type %q, expected %s", ext, strings.Join(allowedExts, " or "))
	}

	data, err := readFileHeader(header)
	if err != nil {
		return nil, "", errors.New("failed to read uploaded file")
	}

	return data, header.Filename, nil
}

func readFileHeader(header *multipart.FileHeader) ([]byte, error) {
	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
