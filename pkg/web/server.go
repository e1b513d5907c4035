// Package web provides the real-time facewatch dashboard: live camera
// view with detection overlay data and a side panel of smoothed
// attributes.
package web

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/evelab/facewatch/internal/log"
	"github.com/evelab/facewatch/pkg/analysis"
	"github.com/evelab/facewatch/pkg/camera"
	"github.com/evelab/facewatch/pkg/hub"
)

// Server is the dashboard server. It reads the session and camera manager
// it is given; all mutation goes through their own APIs.
type Server struct {
	app  *fiber.App
	port string

	session *analysis.Session
	cameras *camera.Manager

	// Hubs for websocket broadcast (thread-safe!)
	stateHub  *hub.Hub
	cameraHub *hub.Hub
}

// NewServer creates the dashboard server for one session.
func NewServer(port string, session *analysis.Session, cameras *camera.Manager) *Server {
	s := &Server{
		port:      port,
		session:   session,
		cameras:   cameras,
		stateHub:  hub.New("state"),
		cameraHub: hub.New("camera"),
	}

	app := fiber.New(fiber.Config{
		AppName:               "FaceWatch Dashboard",
		DisableStartupMessage: true,
	})

	// CORS for local development
	app.Use(cors.New())

	// Static files
	app.Static("/", "./web")

	// API routes
	api := app.Group("/api")
	api.Get("/state", s.handleState)
	api.Get("/session", s.handleSession)
	api.Post("/session/start", s.handleSessionStart)
	api.Post("/session/stop", s.handleSessionStop)
	api.Get("/camera", s.handleGetCamera)
	api.Post("/camera", s.handleSetCamera)

	// WebSocket upgrade middleware
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	// WebSocket routes
	app.Get("/ws/state", websocket.New(s.handleStateWS))
	app.Get("/ws/camera", websocket.New(s.handleCameraWS))

	s.app = app
	return s
}

// Start starts the web server
func (s *Server) Start() error {
	log.Info("dashboard listening", "addr", "http://localhost:"+s.port)

	go s.stateHub.Run()
	go s.cameraHub.Run()

	return s.app.Listen(":" + s.port)
}

// StartAsync starts the web server in a goroutine
func (s *Server) StartAsync() {
	go func() {
		if err := s.Start(); err != nil {
			log.Error("web server error", "error", err)
		}
	}()
}

// PublishState broadcasts a display state to all dashboard clients.
func (s *Server) PublishState(state analysis.State) {
	s.stateHub.BroadcastJSON(state)
}

// PublishFrame broadcasts a camera frame to all dashboard clients.
func (s *Server) PublishFrame(jpegData []byte) {
	s.cameraHub.BroadcastBinary(jpegData)
}

// Shutdown gracefully stops the web server
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
