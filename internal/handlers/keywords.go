package handlers

import (
	"encoding/json"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/Santoryu-0niGiri/CV-Scanner/internal/db"
	"github.com/Santoryu-0niGiri/CV-Scanner/internal/models"
	"github.com/Santoryu-0niGiri/CV-Scanner/internal/scanner"
	"github.com/Santoryu-0niGiri/CV-Scanner/internal/validation"
)

// KeywordHandler handles keyword CRUD operations via JSON API.
type KeywordHandler struct {
	db      *db.DB
	scanner *scanner.Scanner
}

// NewKeywordHandler creates a new keyword handler.
func NewKeywordHandler(database *db.DB, sc *scanner.Scanner) *KeywordHandler {
	return &KeywordHandler{db: database, scanner: sc}
}

// Create adds a new keyword and invalidates the active keyword cache.
func (h *KeywordHandler) Create(c fiber.Ctx) error {
	var body struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if ok, msg := validation.ValidateKeywordName(body.Name); !ok {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}

	keyword := &models.Keyword{Name: body.Name}
	if err := h.db.CreateKeyword(c.Context(), keyword); err != nil {
		return respondError(c, err)
	}

	h.scanner.InvalidateKeywords()
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "ok",
		"data":   keyword,
	})
}

// List returns keywords with optional active filter, sorting, and pagination.
func (h *KeywordHandler) List(c fiber.Ctx) error {
	var isActive *bool
	if raw := c.Query("isActive", ""); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return jsonError(c, fiber.StatusBadRequest, "isActive must be true or false")
		}
		isActive = &v
	}

	sortBy, sortOrder := validation.NormalizeSort(c.Query("sortBy", ""), c.Query("sortOrder", ""))

	page, _ := strconv.Atoi(c.Query("page", ""))
	page = validation.ClampPage(page)
	limit, _ := strconv.Atoi(c.Query("limit", ""))
	limit = validation.ClampLimit(limit)

	keywords, err := h.db.ListKeywords(c.Context(), db.KeywordListOptions{
		IsActive:  isActive,
		SortBy:    sortBy,
		SortOrder: sortOrder,
		Limit:     limit,
		Offset:    (page - 1) * limit,
	})
	if err != nil {
		return respondError(c, err)
	}

	return jsonSuccess(c, models.KeywordListResponse{
		Page:  page,
		Limit: limit,
		Items: keywords,
	})
}

// Get returns a single keyword by ID.
func (h *KeywordHandler) Get(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid keyword id")
	}

	keyword, err := h.db.GetKeywordByID(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}

	return jsonSuccess(c, keyword)
}

// Update renames a keyword.
func (h *KeywordHandler) Update(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid keyword id")
	}

	var body struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if ok, msg := validation.ValidateKeywordName(body.Name); !ok {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}

	keyword, err := h.db.UpdateKeywordName(c.Context(), id, body.Name)
	if err != nil {
		return respondError(c, err)
	}

	h.scanner.InvalidateKeywords()
	return jsonSuccess(c, keyword)
}

// UpdateStatus toggles a keyword's active flag.
func (h *KeywordHandler) UpdateStatus(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid keyword id")
	}

	var body struct {
		IsActive *bool `json:"isActive"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil || body.IsActive == nil {
		return jsonError(c, fiber.StatusBadRequest, "isActive is required")
	}

	keyword, err := h.db.SetKeywordStatus(c.Context(), id, *body.IsActive)
	if err != nil {
		return respondError(c, err)
	}

	h.scanner.InvalidateKeywords()
	return jsonSuccess(c, keyword)
}

// Delete removes a keyword.
func (h *KeywordHandler) Delete(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid keyword id")
	}

	if err := h.db.DeleteKeyword(c.Context(), id); err != nil {
		return respondError(c, err)
	}

	h.scanner.InvalidateKeywords()
	return jsonSuccess(c, fiber.Map{"deleted": true})
}
