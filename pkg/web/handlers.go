package web

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/teslashibe/go-facecam/pkg/hub"
	"github.com/teslashibe/go-facecam/pkg/vision"
)

func (s *Server) handleIndex(c *fiber.Ctx) error {
	c.Type("html", "utf-8")
	return c.SendString(indexHTML)
}

func (s *Server) handleStatus(c *fiber.Ctx) error {
	return c.JSON(s.Status())
}

func (s *Server) handleGetLogs(c *fiber.Ctx) error {
	s.logsMu.RLock()
	defer s.logsMu.RUnlock()
	return c.JSON(s.logs)
}

// handlePostKey feeds a key press to the loop, as if typed in the window.
func (s *Server) handlePostKey(c *fiber.Ctx) error {
	name := c.Params("key")
	k, err := vision.ParseKey(name)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if !s.PushKey(k) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "key queue full",
		})
	}
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"key": k.String(),
	})
}

func (s *Server) handleCameraWS(c *websocket.Conn) {
	hub.NewClient(s.cameraHub, c).Run()
}

// handleStatusWS sends the current status, then streams updates. Text
// frames from the client are treated as key names.
func (s *Server) handleStatusWS(c *websocket.Conn) {
	var greeting []hub.Message
	if data, err := json.Marshal(s.Status()); err == nil {
		greeting = append(greeting, hub.NewJSONMessage(data))
	}

	client := hub.NewClient(s.statusHub, c, greeting...)
	client.OnMessage = func(data []byte) {
		k, err := vision.ParseKey(string(data))
		if err != nil {
			s.logger.Debug("ignoring key from websocket", "err", err)
			return
		}
		if !s.PushKey(k) {
			s.logger.Warn("key queue full, dropping key", "key", k.String())
		}
	}
	client.Run()
}

// handleLogsWS replays the buffered logs, then streams new entries.
func (s *Server) handleLogsWS(c *websocket.Conn) {
	s.logsMu.RLock()
	greeting := make([]hub.Message, 0, len(s.logs))
	for _, entry := range s.logs {
		if data, err := json.Marshal(entry); err == nil {
			greeting = append(greeting, hub.NewJSONMessage(data))
		}
	}
	s.logsMu.RUnlock()

	hub.NewClient(s.logHub, c, greeting...).Run()
}
