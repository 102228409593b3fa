package handlers

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Santoryu-0niGiri/CV-Scanner/internal/db"
	"github.com/Santoryu-0niGiri/CV-Scanner/internal/models"
	"github.com/Santoryu-0niGiri/CV-Scanner/internal/validation"
)

// DashboardHandler renders the HTML dashboard pages.
type DashboardHandler struct {
	db *db.DB
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(database *db.DB) *DashboardHandler {
	return &DashboardHandler{db: database}
}

// Index renders the main dashboard with recent scans and active keywords.
func (h *DashboardHandler) Index(c fiber.Ctx) error {
	user, _ := c.Locals("user").(*models.User)

	scans, err := h.db.ListScans(c.Context())
	if err != nil {
		return err
	}

	keywords, err := h.db.ListKeywords(c.Context(), db.KeywordListOptions{
		SortBy:    "created_at",
		SortOrder: "desc",
		Limit:     validation.MaxLimit,
	})
	if err != nil {
		return err
	}

	return c.Render("index", fiber.Map{
		"Title":    "CV Scanner",
		"User":     user,
		"Scans":    scans,
		"Keywords": keywords,
	})
}

// Login renders the login page.
func (h *DashboardHandler) Login(c fiber.Ctx) error {
	return c.Render("login", fiber.Map{
		"Title": "Sign in",
	})
}
