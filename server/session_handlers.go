package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gofiber/fiber/v3"

	"github.com/ptcrealitylab/vuforia-spatial-toolbox-userinterface-sub004/pathfind"
	"github.com/ptcrealitylab/vuforia-spatial-toolbox-userinterface-sub004/selection"
)

// ============================================================
// Session Handlers
// ============================================================

type createSessionRequest struct {
	// GroundPlane is the column-major ground-plane pose; identity if omitted.
	GroundPlane *[16]float64             `json:"groundPlane"`
	Steepness   *pathfind.SteepnessRange `json:"steepness"`
}

type sessionResponse struct {
	ID        string          `json:"id"`
	NavMeshID string          `json:"navmeshId"`
	State     selection.State `json:"state"`
}

type pointResponse struct {
	Cell  pathfind.Cell   `json:"cell"`
	State selection.State `json:"state"`
}

type lockRequest struct {
	Locked bool `json:"locked"`
}

func (s *Server) createSession(c fiber.Ctx) error {
	var req createSessionRequest
	if len(c.Body()) > 0 {
		if err := json.Unmarshal(c.Body(), &req); err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
		}
	}

	rec, err := s.repo.Get(c.Context(), c.Params("id"))
	if err != nil {
		return storeError(c, err)
	}

	steep := s.cfg.Steepness
	if req.Steepness != nil {
		steep = *req.Steepness
	}
	opts := []selection.Option{selection.WithSteepnessRange(steep.Min, steep.Max)}
	if req.GroundPlane != nil {
		opts = append(opts, selection.WithGroundPlane(mgl64.Mat4(*req.GroundPlane)))
	}

	e, err := s.sessions.add(rec.ID, func(n selection.Notifier) (*selection.Session, error) {
		return selection.NewSession(rec.NavMesh, append(opts, selection.WithNotifier(n))...)
	})
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(http.StatusCreated).JSON(e.response())
}

func (e *sessionEntry) response() sessionResponse {
	return sessionResponse{ID: e.id, NavMeshID: e.navmeshID, State: e.session.State()}
}

// withSession resolves :id or answers 404.
func (s *Server) withSession(c fiber.Ctx, fn func(*sessionEntry) error) error {
	e, ok := s.sessions.get(c.Params("id"))
	if !ok {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "session not found"})
	}
	return fn(e)
}

func (s *Server) getSession(c fiber.Ctx) error {
	return s.withSession(c, func(e *sessionEntry) error {
		return c.JSON(e.response())
	})
}

func (s *Server) deleteSession(c fiber.Ctx) error {
	if !s.sessions.remove(c.Params("id")) {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "session not found"})
	}
	return c.SendStatus(http.StatusNoContent)
}

func (s *Server) setPoint(c fiber.Ctx) error {
	return s.withSession(c, func(e *sessionEntry) error {
		var ev selection.PointEvent
		if err := json.Unmarshal(c.Body(), &ev); err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
		}
		if ev.Type != selection.PointStart && ev.Type != selection.PointEnd {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": `type must be "start" or "end"`})
		}
		cell, err := e.session.SetPoint(ev)
		if err != nil {
			return c.Status(http.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(pointResponse{Cell: cell, State: e.session.State()})
	})
}

func (s *Server) resetPoints(c fiber.Ctx) error {
	return s.withSession(c, func(e *sessionEntry) error {
		e.session.Reset()
		return c.JSON(e.response())
	})
}

func (s *Server) setSteepness(c fiber.Ctx) error {
	return s.withSession(c, func(e *sessionEntry) error {
		var r pathfind.SteepnessRange
		if err := json.Unmarshal(c.Body(), &r); err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
		}
		if err := e.session.SetSteepnessRange(r.Min, r.Max); err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(e.response())
	})
}

func (s *Server) setLock(c fiber.Ctx) error {
	return s.withSession(c, func(e *sessionEntry) error {
		var req lockRequest
		if err := json.Unmarshal(c.Body(), &req); err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
		}
		e.session.Lock(req.Locked)
		return c.JSON(e.response())
	})
}

func (s *Server) solve(c fiber.Ctx) error {
	return s.withSession(c, func(e *sessionEntry) error {
		n, err := e.session.Solve()
		switch {
		case errors.Is(err, selection.ErrMissingPoint):
			return c.Status(http.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, pathfind.ErrNoPath):
			return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		case err != nil:
			return c.Status(http.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(n)
	})
}

func (s *Server) lastPath(c fiber.Ctx) error {
	return s.withSession(c, func(e *sessionEntry) error {
		n := e.lastPath()
		if n == nil {
			return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "no path solved yet"})
		}
		return c.JSON(n)
	})
}
