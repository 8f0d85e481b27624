// Package web serves a browser preview of the annotation loop: a live MJPEG
// style feed over websocket, session status, recent logs, Prometheus
// metrics and a key endpoint that drives the loop like a keyboard.
package web

import (
	"fmt"
	"image"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
	"github.com/teslashibe/go-facecam/pkg/annotate"
	"github.com/teslashibe/go-facecam/pkg/hub"
	"github.com/teslashibe/go-facecam/pkg/metrics"
	"github.com/teslashibe/go-facecam/pkg/vision"
)

// Config configures the preview server.
type Config struct {
	Addr        string `yaml:"addr" json:"addr"`                 // Listen address, e.g. ":8080"; empty disables the preview
	JPEGQuality int    `yaml:"jpeg_quality" json:"jpeg_quality"` // 1-100
	KeyBuffer   int    `yaml:"key_buffer" json:"key_buffer"`     // Pending key presses before POSTs are refused
	LogBuffer   int    `yaml:"log_buffer" json:"log_buffer"`     // Entries kept for /api/logs
}

// DefaultConfig returns the default server settings. The preview is off
// until Addr is set.
func DefaultConfig() Config {
	return Config{
		JPEGQuality: 80,
		KeyBuffer:   8,
		LogBuffer:   200,
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return fmt.Errorf("jpeg_quality must be in [1, 100], got %d", c.JPEGQuality)
	}
	if c.KeyBuffer < 1 {
		return fmt.Errorf("key_buffer must be positive, got %d", c.KeyBuffer)
	}
	if c.LogBuffer < 0 {
		return fmt.Errorf("log_buffer must not be negative, got %d", c.LogBuffer)
	}
	return nil
}

// Box is a face rectangle in full-frame pixels.
type Box struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// Status is the session state shown by the dashboard.
type Status struct {
	SessionID       string            `json:"session_id"`
	Properties      vision.Properties `json:"properties"`
	Frame           uint64            `json:"frame"`
	Faces           []Box             `json:"faces"`
	Grayscale       bool              `json:"grayscale"`
	DetectLatencyMs float64           `json:"detect_latency_ms"`
	Clients         int               `json:"clients"`
	Metrics         *metrics.Snapshot `json:"metrics,omitempty"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// LogEntry is a log line mirrored to the dashboard.
type LogEntry struct {
	Time    string `json:"time"`
	Level   string `json:"level"`
	Message string `json:"message"`
}

// Server is the preview server.
type Server struct {
	cfg      Config
	app      *fiber.App
	logger   *slog.Logger
	renderer vision.Renderer
	metrics  *metrics.Metrics

	status   Status
	statusMu sync.RWMutex

	logs   []LogEntry
	logsMu sync.RWMutex

	statusHub *hub.Hub
	cameraHub *hub.Hub
	logHub    *hub.Hub

	keys chan vision.Key

	startOnce sync.Once
}

// NewServer builds the server. renderer encodes frames for the camera feed
// and m may be nil.
func NewServer(cfg Config, sessionID string, renderer vision.Renderer, m *metrics.Metrics, logger *slog.Logger) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("web config: %w", err)
	}
	if renderer == nil {
		return nil, fmt.Errorf("web: renderer required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		cfg:       cfg,
		logger:    logger,
		renderer:  renderer,
		metrics:   m,
		status:    Status{SessionID: sessionID},
		logs:      make([]LogEntry, 0, cfg.LogBuffer),
		statusHub: hub.New("status", logger),
		cameraHub: hub.New("camera", logger),
		logHub:    hub.New("logs", logger),
		keys:      make(chan vision.Key, cfg.KeyBuffer),
	}

	app := fiber.New(fiber.Config{
		AppName:               "facecam preview",
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(cors.New())

	app.Get("/", s.handleIndex)

	api := app.Group("/api")
	api.Get("/status", s.handleStatus)
	api.Get("/logs", s.handleGetLogs)
	api.Post("/keys/:key", s.handlePostKey)

	if m != nil {
		app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))
	}

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/camera", websocket.New(s.handleCameraWS))
	app.Get("/ws/status", websocket.New(s.handleStatusWS))
	app.Get("/ws/logs", websocket.New(s.handleLogsWS))

	s.app = app
	return s, nil
}

// App exposes the fiber application, mainly for app.Test.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) startHubs() {
	s.startOnce.Do(func() {
		go s.statusHub.Run()
		go s.cameraHub.Run()
		go s.logHub.Run()
	})
}

// Serve runs the server on ln until Shutdown.
func (s *Server) Serve(ln net.Listener) error {
	s.startHubs()
	s.logger.Info("web preview listening", "url", "http://"+ln.Addr().String())
	return s.app.Listener(ln)
}

// StartAsync listens on cfg.Addr and serves in the background. It returns
// once the listener is bound.
func (s *Server) StartAsync() (net.Addr, error) {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", s.cfg.Addr, err)
	}
	go func() {
		if err := s.Serve(ln); err != nil {
			s.logger.Warn("web server stopped", "err", err)
		}
	}()
	return ln.Addr(), nil
}

// Shutdown stops the hubs and the HTTP server.
func (s *Server) Shutdown() error {
	s.statusHub.Stop()
	s.cameraHub.Stop()
	s.logHub.Stop()
	return s.app.ShutdownWithTimeout(5 * time.Second)
}

// Publish records the latest frame stats and pushes them to status clients.
func (s *Server) Publish(st annotate.Stats) {
	s.statusMu.Lock()
	s.status.Properties = st.Properties
	s.status.Frame = st.Frame
	s.status.Faces = boxes(st.Faces)
	s.status.Grayscale = st.Grayscale
	s.status.DetectLatencyMs = float64(st.DetectLatency.Microseconds()) / 1000
	s.status.UpdatedAt = time.Now()
	s.statusMu.Unlock()

	s.statusHub.BroadcastJSON(s.Status())
}

// Status returns a copy of the current status.
func (s *Server) Status() Status {
	s.statusMu.RLock()
	st := s.status
	st.Faces = append([]Box(nil), s.status.Faces...)
	s.statusMu.RUnlock()

	st.Clients = s.cameraHub.ClientCount()
	if s.metrics != nil {
		snap := s.metrics.Snapshot()
		st.Metrics = &snap
	}
	return st
}

// AddLog appends a log entry and pushes it to log clients.
func (s *Server) AddLog(level, message string) {
	entry := LogEntry{
		Time:    time.Now().Format("15:04:05"),
		Level:   level,
		Message: message,
	}

	s.logsMu.Lock()
	if s.cfg.LogBuffer > 0 {
		if len(s.logs) >= s.cfg.LogBuffer {
			s.logs = s.logs[1:]
		}
		s.logs = append(s.logs, entry)
	}
	s.logsMu.Unlock()

	s.logHub.BroadcastJSON(entry)
}

// PushKey queues a key press for the loop. It reports false when the queue
// is full.
func (s *Server) PushKey(k vision.Key) bool {
	select {
	case s.keys <- k:
		return true
	default:
		return false
	}
}

func boxes(rects []image.Rectangle) []Box {
	out := make([]Box, 0, len(rects))
	for _, r := range rects {
		out = append(out, Box{X: r.Min.X, Y: r.Min.Y, W: r.Dx(), H: r.Dy()})
	}
	return out
}
