// Package server exposes navmesh builds and selection sessions over HTTP.
package server

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/log"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/ptcrealitylab/vuforia-spatial-toolbox-userinterface-sub004/config"
	"github.com/ptcrealitylab/vuforia-spatial-toolbox-userinterface-sub004/store"
)

// ============================================================
// Server
// ============================================================

// Server serves navmesh builds and selection sessions over HTTP.
type Server struct {
	app      *fiber.App
	cfg      *config.Config
	repo     *store.Repository
	sessions *sessionRegistry
}

// New wires middleware and routes onto a fresh fiber app.
func New(cfg *config.Config, repo *store.Repository) *Server {
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    cfg.Server.BodyLimit,
		AppName:      "navgrid",
	})
	s := &Server{
		app:      app,
		cfg:      cfg,
		repo:     repo,
		sessions: newSessionRegistry(),
	}

	app.Use(recover.New())
	app.Use(Logger())
	app.Use(CORS())

	s.routes()
	return s
}

func (s *Server) routes() {
	// ============================================================
	// Health Check Routes
	// ============================================================

	s.app.Get("/health/live", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	})
	s.app.Get("/health/ready", s.readiness)

	// ============================================================
	// Navmesh Routes
	// ============================================================

	s.app.Post("/navmeshes", s.buildNavMesh)
	s.app.Get("/navmeshes", s.listNavMeshes)
	s.app.Get("/navmeshes/:id", s.getNavMesh)
	s.app.Delete("/navmeshes/:id", s.deleteNavMesh)
	s.app.Post("/navmeshes/:id/sessions", s.createSession)

	// ============================================================
	// Session Routes
	// ============================================================

	s.app.Get("/sessions/:id", s.getSession)
	s.app.Delete("/sessions/:id", s.deleteSession)
	s.app.Post("/sessions/:id/points", s.setPoint)
	s.app.Delete("/sessions/:id/points", s.resetPoints)
	s.app.Put("/sessions/:id/steepness", s.setSteepness)
	s.app.Put("/sessions/:id/lock", s.setLock)
	s.app.Post("/sessions/:id/path", s.solve)
	s.app.Get("/sessions/:id/path", s.lastPath)
}

// App returns the underlying fiber app.
func (s *Server) App() *fiber.App { return s.app }

// Listen serves on the configured port until the app shuts down.
func (s *Server) Listen() error {
	addr := fmt.Sprintf(":%s", s.cfg.Server.Port)
	log.Infof("Starting navgrid on %s", addr)
	return s.app.Listen(addr)
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) readiness(c fiber.Ctx) error {
	if err := s.repo.Ping(c.Context()); err != nil {
		log.Warnf("readiness: %v", err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
	}
	return c.JSON(fiber.Map{"status": "ready"})
}
