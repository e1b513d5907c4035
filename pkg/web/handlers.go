package web

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/evelab/facewatch/pkg/analysis"
	"github.com/evelab/facewatch/pkg/camera"
)

// SessionInfo describes the session for the dashboard header.
type SessionInfo struct {
	ID            string  `json:"id"`
	State         string  `json:"state"`
	Frames        uint64  `json:"frames"`
	WindowSize    int     `json:"window_size"`
	MinConfidence float64 `json:"min_confidence"`
}

// handleState returns the latest smoothed display state
func (s *Server) handleState(c *fiber.Ctx) error {
	return c.JSON(s.session.Last())
}

// handleSession returns session metadata
func (s *Server) handleSession(c *fiber.Ctx) error {
	cfg := s.session.Config()
	return c.JSON(SessionInfo{
		ID:            s.session.ID,
		State:         s.session.State().String(),
		Frames:        s.session.Frames(),
		WindowSize:    cfg.WindowSize,
		MinConfidence: cfg.MinConfidence,
	})
}

// handleSessionStart activates the session
func (s *Server) handleSessionStart(c *fiber.Ctx) error {
	if err := s.session.Start(); err != nil {
		if err == analysis.ErrAlreadyActive {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"state": s.session.State().String()})
}

// handleSessionStop deactivates the session
func (s *Server) handleSessionStop(c *fiber.Ctx) error {
	if err := s.session.Stop(); err != nil {
		if err == analysis.ErrNotActive {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"state": s.session.State().String()})
}

// handleGetCamera returns the current camera configuration
func (s *Server) handleGetCamera(c *fiber.Ctx) error {
	return c.JSON(s.cameras.GetConfig())
}

// handleSetCamera replaces the camera configuration
func (s *Server) handleSetCamera(c *fiber.Ctx) error {
	var cfg camera.Config
	if err := c.BodyParser(&cfg); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := s.cameras.SetConfig(cfg); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(s.cameras.GetConfig())
}

// handleStateWS streams display states to a dashboard client
func (s *Server) handleStateWS(c *websocket.Conn) {
	// Send the latest state so the panel renders immediately
	c.WriteJSON(s.session.Last())

	s.stateHub.Serve(c) // Blocks until the connection closes
}

// handleCameraWS streams JPEG frames to a dashboard client
func (s *Server) handleCameraWS(c *websocket.Conn) {
	s.cameraHub.Serve(c)
}
