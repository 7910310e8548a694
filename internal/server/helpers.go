package server

import (
	"errors"
	"strings"

	"nocturne/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// slugParam assembles the engagement slug ("category/name") from the route.
// On failure it writes a 400 JSON response and returns errResponseWritten;
// callers should check: if err != nil { return nil }.
func (s *Server) slugParam(c *fiber.Ctx) (string, error) {
	category := strings.TrimSpace(c.Params("category"))
	name := strings.TrimSpace(c.Params("slug"))
	if category == "" || name == "" {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid post slug"))
		return "", errResponseWritten
	}
	return category + "/" + name, nil
}

// originAddress is the best-effort caller address used for view dedup: the
// first hop of X-Forwarded-For when present, otherwise the socket peer.
func originAddress(c *fiber.Ctx) string {
	if fwd := c.Get("X-Forwarded-For"); fwd != "" {
		first := strings.TrimSpace(strings.Split(fwd, ",")[0])
		if first != "" {
			return first
		}
	}
	if ip := c.IP(); ip != "" {
		return ip
	}
	return "unknown"
}

// appErrorStatus maps an application error onto its HTTP status.
func appErrorStatus(err error) int {
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		return fiber.StatusInternalServerError
	}
	switch appErr.Code {
	case models.CodeUnauthorized:
		return fiber.StatusUnauthorized
	case models.CodeBudgetExceeded:
		return fiber.StatusConflict
	case models.CodeNotFound:
		return fiber.StatusNotFound
	case models.CodeValidation:
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}
