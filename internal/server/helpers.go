// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"errors"
	"strings"
	"unicode"

	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper.  Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// parseUUID extracts a route parameter by name as a UUID string.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
// The error message is derived from the parameter name (e.g. "id" -> "Invalid ID",
// "authorId" -> "Invalid author ID").
func (s *Server) parseUUID(c *fiber.Ctx, param string) (string, error) {
	raw := c.Params(param)
	if _, err := uuid.Parse(raw); err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+humanizeParam(param)))
		return "", errResponseWritten
	}
	return raw, nil
}

// humanizeParam converts a route param name into a human-readable label.
// Examples: "id" -> "ID", "authorId" -> "author ID".
func humanizeParam(param string) string {
	if param == "id" {
		return "ID"
	}
	// Split on camelCase boundary before the trailing "Id" suffix.
	if strings.HasSuffix(param, "Id") {
		prefix := param[:len(param)-2]
		words := splitCamel(prefix)
		return strings.ToLower(strings.Join(words, " ")) + " ID"
	}
	return param
}

// splitCamel splits a camelCase string into words.
func splitCamel(s string) []string {
	var words []string
	start := 0
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			words = append(words, s[start:i])
			start = i
		}
	}
	words = append(words, s[start:])
	return words
}

// currentUserID returns the authenticated user's ID from request locals.
// Routes behind AuthRequired always have it set.
func currentUserID(c *fiber.Ctx) string {
	if id, ok := c.Locals("userID").(string); ok {
		return id
	}
	return ""
}

// requireActiveAuthor enforces the content mutation gate: the requester
// must exist, be email-verified and have ACTIVE standing. On failure it
// writes the response and returns errResponseWritten.
func (s *Server) requireActiveAuthor(c *fiber.Ctx) (*models.User, error) {
	user, err := s.userRepo.GetByID(c.UserContext(), currentUserID(c))
	if err != nil {
		_ = models.RespondWithError(c, models.HTTPStatus(err), err)
		return nil, errResponseWritten
	}
	if !user.CanMutateContent() {
		_ = models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("Account must be verified and active"))
		return nil, errResponseWritten
	}
	return user, nil
}

// respondError maps a service error onto the standard error envelope.
func respondError(c *fiber.Ctx, err error) error {
	return models.RespondWithError(c, models.HTTPStatus(err), err)
}

func newInvalidBodyError() error {
	return models.NewValidationError("Invalid request body")
}
