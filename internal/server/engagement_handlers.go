package server

import (
	"nocturne/internal/models"
	"nocturne/internal/service"

	"github.com/gofiber/fiber/v2"
)

// RecordView counts a page view (public, fire-and-forget).
// Always answers 204: view counting must never break page rendering.
func (s *Server) RecordView(c *fiber.Ctx) error {
	slug, err := s.slugParam(c)
	if err != nil {
		return nil
	}

	s.viewService.RecordView(c.UserContext(), slug, originAddress(c))

	return c.SendStatus(fiber.StatusNoContent)
}

// GetStats returns views, likes and the viewer's like state (public).
func (s *Server) GetStats(c *fiber.Ctx) error {
	slug, err := s.slugParam(c)
	if err != nil {
		return nil
	}

	stats, statsErr := s.statsService.GetStats(c.UserContext(), slug, s.optionalUserID(c))
	if statsErr != nil {
		return models.RespondWithError(c, appErrorStatus(statsErr), statsErr)
	}

	return c.JSON(stats)
}

// ToggleLike flips the authenticated user's like for a post (protected).
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	slug, err := s.slugParam(c)
	if err != nil {
		return nil
	}
	userID := c.Locals("userID").(uint)

	liked, toggleErr := s.likeService.ToggleLike(c.UserContext(), userID, slug)
	if toggleErr != nil {
		return models.RespondWithError(c, appErrorStatus(toggleErr), toggleErr)
	}

	return c.JSON(fiber.Map{"liked": liked})
}

// PostComment creates a comment or a reply (protected).
func (s *Server) PostComment(c *fiber.Ctx) error {
	slug, err := s.slugParam(c)
	if err != nil {
		return nil
	}
	userID := c.Locals("userID").(uint)

	var req struct {
		Content  string `json:"content"`
		ParentID *uint  `json:"parent_id"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, postErr := s.commentService.PostComment(c.UserContext(), service.PostCommentInput{
		UserID:   userID,
		Slug:     slug,
		Content:  req.Content,
		ParentID: req.ParentID,
	})
	if postErr != nil {
		return models.RespondWithError(c, appErrorStatus(postErr), postErr)
	}
	if comment == nil {
		// Blank content is silently dropped.
		return c.SendStatus(fiber.StatusNoContent)
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}

// GetComments returns all comments for a post, oldest first (public).
func (s *Server) GetComments(c *fiber.Ctx) error {
	slug, err := s.slugParam(c)
	if err != nil {
		return nil
	}

	comments, listErr := s.commentService.ListComments(c.UserContext(), slug)
	if listErr != nil {
		return models.RespondWithError(c, appErrorStatus(listErr), listErr)
	}

	return c.JSON(comments)
}

// VoteTag casts a tag vote for the authenticated user (protected).
func (s *Server) VoteTag(c *fiber.Ctx) error {
	slug, err := s.slugParam(c)
	if err != nil {
		return nil
	}
	userID := c.Locals("userID").(uint)

	var req struct {
		Name string `json:"name"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if voteErr := s.tagService.VoteTag(c.UserContext(), userID, slug, req.Name); voteErr != nil {
		return models.RespondWithError(c, appErrorStatus(voteErr), voteErr)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// GetTags lists a post's tags by vote count (public).
func (s *Server) GetTags(c *fiber.Ctx) error {
	slug, err := s.slugParam(c)
	if err != nil {
		return nil
	}

	listings, listErr := s.tagService.ListTags(c.UserContext(), slug, s.optionalUserID(c))
	if listErr != nil {
		return models.RespondWithError(c, appErrorStatus(listErr), listErr)
	}

	return c.JSON(listings)
}
