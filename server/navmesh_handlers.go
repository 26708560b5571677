package server

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/log"

	"github.com/ptcrealitylab/vuforia-spatial-toolbox-userinterface-sub004/mesh"
	"github.com/ptcrealitylab/vuforia-spatial-toolbox-userinterface-sub004/navmesh"
	"github.com/ptcrealitylab/vuforia-spatial-toolbox-userinterface-sub004/store"
)

// ============================================================
// Navmesh Handlers
// ============================================================

type navMeshResponse struct {
	store.Record
	NavMesh navmesh.Export `json:"navmesh"`
}

// buildNavMesh rasterizes the OBJ request body and stores the result.
// Query: resolution (cells/m, optional), name (optional).
func (s *Server) buildNavMesh(c fiber.Ctx) error {
	if len(c.Body()) == 0 {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "empty body"})
	}

	opts := s.cfg.NavmeshOptions()
	if raw := c.Query("resolution"); raw != "" {
		r, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid resolution"})
		}
		opts = append(opts, navmesh.WithResolution(r))
	}

	m, err := mesh.LoadOBJ(bytes.NewReader(c.Body()))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	nm, err := navmesh.Build(m, opts...)
	switch {
	case errors.Is(err, navmesh.ErrOptionViolation):
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case err != nil:
		log.Warnf("build navmesh: %v", err)
		return c.Status(http.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}

	rec, err := s.repo.Save(c.Context(), c.Query("name", "untitled"), nm)
	if err != nil {
		log.Errorf("save navmesh: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to save navmesh"})
	}
	log.Infof("navmesh %s built: %d×%d cells, %d walkable", rec.ID, rec.XLen, rec.ZLen, rec.Walkable)
	return c.Status(http.StatusCreated).JSON(navMeshResponse{Record: *rec, NavMesh: nm.Export()})
}

func (s *Server) listNavMeshes(c fiber.Ctx) error {
	recs, err := s.repo.List(c.Context())
	if err != nil {
		log.Errorf("list navmeshes: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list navmeshes"})
	}
	return c.JSON(recs)
}

func (s *Server) getNavMesh(c fiber.Ctx) error {
	rec, err := s.repo.Get(c.Context(), c.Params("id"))
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(navMeshResponse{Record: *rec, NavMesh: rec.NavMesh.Export()})
}

func (s *Server) deleteNavMesh(c fiber.Ctx) error {
	id := c.Params("id")
	if err := s.repo.Delete(c.Context(), id); err != nil {
		return storeError(c, err)
	}
	if n := s.sessions.dropNavMesh(id); n > 0 {
		log.Infof("navmesh %s deleted with %d session(s)", id, n)
	}
	return c.SendStatus(http.StatusNoContent)
}

func storeError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound), errors.Is(err, store.ErrInvalidID):
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "navmesh not found"})
	default:
		log.Errorf("store: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "storage failure"})
	}
}
