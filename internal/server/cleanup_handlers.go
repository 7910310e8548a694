package server

import (
	"crypto/subtle"
	"log/slog"
	"time"

	"nocturne/internal/middleware"
	"nocturne/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CleanupViews deletes view-dedup records older than the rolling window and
// reports how many rows were removed. Invoked out-of-band by a scheduler;
// protected by the shared cron key.
func (s *Server) CleanupViews(c *fiber.Ctx) error {
	key := c.Query("key")
	if s.config == nil || s.config.CronSecret == "" ||
		subtle.ConstantTimeCompare([]byte(key), []byte(s.config.CronSecret)) != 1 {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid cleanup key"))
	}

	cutoff := time.Now().Add(-models.ViewDedupWindow)
	deleted, err := s.statRepo.DeleteExpiredViews(c.UserContext(), cutoff)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	middleware.Logger.InfoContext(c.UserContext(), "expired view records purged",
		slog.Int64("deleted", deleted),
	)

	return c.JSON(fiber.Map{
		"success":       true,
		"deleted_count": deleted,
	})
}
