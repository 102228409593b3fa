package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Santoryu-0niGiri/CV-Scanner/internal/db"
	"github.com/Santoryu-0niGiri/CV-Scanner/internal/scanner"
)

// jsonSuccess returns a 200 response with data wrapped in the standard envelope.
func jsonSuccess(c fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"data":   data,
	})
}

// jsonError returns an error response with the given HTTP status code.
func jsonError(c fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"status": "error",
		"error":  message,
	})
}

// respondError maps domain errors onto HTTP responses. Client-caused
// failures keep their message; store failures surface as 503 so callers can
// retry; anything else is reported generically.
func respondError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, scanner.ErrNoEmail),
		errors.Is(err, scanner.ErrNotCV),
		errors.Is(err, scanner.ErrInvalidEmail),
		errors.Is(err, scanner.ErrEmptyArchive):
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, db.ErrScanNotFound),
		errors.Is(err, db.ErrKeywordNotFound),
		errors.Is(err, db.ErrUserNotFound):
		return jsonError(c, fiber.StatusNotFound, err.Error())
	case isDatabaseError(err):
		return jsonError(c, fiber.StatusServiceUnavailable, "database service unavailable")
	default:
		return jsonError(c, fiber.StatusInternalServerError, "internal server error")
	}
}

// isDatabaseError reports whether err originated in the Postgres layer.
func isDatabaseError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return true
	}
	var connErr *pgconn.ConnectError
	return errors.As(err, &connErr)
}
