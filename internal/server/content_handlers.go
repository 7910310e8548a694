package server

import (
	"errors"

	"nocturne/internal/cache"
	"nocturne/internal/content"
	"nocturne/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ListPosts returns front matter for every post in a category (public).
func (s *Server) ListPosts(c *fiber.Ctx) error {
	category := c.Query("category")
	if category == "" {
		categories, err := s.contentStore.Categories()
		if err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		}
		return c.JSON(fiber.Map{"categories": categories})
	}

	posts, err := s.contentStore.List(category)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(posts)
}

// GetPost returns one document with its raw markdown body (public).
// Document bodies are immutable between deploys, so anonymous fetches are
// served from the page cache invalidated by engagement writes.
func (s *Server) GetPost(c *fiber.Ctx) error {
	slug, err := s.slugParam(c)
	if err != nil {
		return nil
	}
	category := c.Params("category")
	name := c.Params("slug")

	var post content.Post
	fetchErr := cache.Aside(c.UserContext(), cache.PageKey(slug), &post, cache.PageTTL, func() error {
		fetched, err := s.contentStore.Get(category, name)
		if err != nil {
			return err
		}
		post = *fetched
		return nil
	})
	if fetchErr != nil {
		if errors.Is(fetchErr, content.ErrNotFound) {
			return models.RespondWithError(c, fiber.StatusNotFound,
				models.NewNotFoundError("Post", slug))
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(fetchErr))
	}

	return c.JSON(post)
}
