package server

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Santoryu-0niGiri/CV-Scanner/internal/db"
	"github.com/Santoryu-0niGiri/CV-Scanner/internal/handlers"
	"github.com/Santoryu-0niGiri/CV-Scanner/internal/middleware"
	"github.com/Santoryu-0niGiri/CV-Scanner/internal/scanner"
)

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(ctx context.Context, database *db.DB, sc *scanner.Scanner) error {
	authMiddleware := middleware.NewAuthMiddleware(s.Store, database)

	keywordHandler := handlers.NewKeywordHandler(database, sc)
	scanHandler := handlers.NewScanHandler(database, sc, s.Cfg)
	probeHandler := handlers.NewProbeHandler(database)
	dashboardHandler := handlers.NewDashboardHandler(database)

	// Probes and metrics are always unauthenticated
	s.App.Get("/livez", probeHandler.Liveness)
	s.App.Get("/healthz", probeHandler.Readiness)
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Auth routes. Without an OIDC issuer the service runs open, which is
	// only intended for local development.
	requireAuth := func(c fiber.Ctx) error { return c.Next() }
	if s.Cfg.OIDCIssuer != "" {
		authHandler, err := handlers.NewAuthHandler(ctx, s.Cfg, database)
		if err != nil {
			return err
		}

		s.App.Get("/auth/login", authHandler.Login)
		s.App.Get("/auth/callback", authHandler.Callback)
		s.App.Get("/auth/logout", authHandler.Logout)

		requireAuth = authMiddleware.RequireAuth
	} else {
		log.Println("OIDC_ISSUER not set, running without authentication")
	}

	// Dashboard
	s.App.Get("/", requireAuth, dashboardHandler.Index)
	s.App.Get("/login", dashboardHandler.Login)

	// JSON API
	api := s.App.Group("/api/v1", requireAuth)

	api.Post("/keywords", keywordHandler.Create)
	api.Get("/keywords", keywordHandler.List)
	api.Get("/keywords/:id", keywordHandler.Get)
	api.Put("/keywords/:id", keywordHandler.Update)
	api.Patch("/keywords/:id/status", keywordHandler.UpdateStatus)
	api.Delete("/keywords/:id", keywordHandler.Delete)

	api.Post("/scan", scanHandler.Scan)
	api.Post("/batch/scan", scanHandler.BatchScan)
	api.Post("/rescan", scanHandler.Rescan)
	api.Get("/scanned-cvs", scanHandler.List)
	api.Get("/scanned-cvs/:email", scanHandler.Get)
	api.Delete("/scanned-cvs/:email", scanHandler.Delete)

	return nil
}
