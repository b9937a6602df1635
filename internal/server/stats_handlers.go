// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetStats handles GET /api/stats
func (s *Server) GetStats(c *fiber.Ctx) error {
	snapshot, err := s.statsService.Snapshot(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(snapshot)
}
