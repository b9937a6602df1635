// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"inkwell/internal/observability"
	"inkwell/internal/query"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel/attribute"
)

// GetPosts handles GET /api/posts
func (s *Server) GetPosts(c *fiber.Ctx) error {
	ctx := c.UserContext()

	raw := query.RawPostFilter{
		Search:     c.Query("search"),
		Tags:       c.Query("tags"),
		IsFeatured: c.Query("isFeatured"),
		Status:     c.Query("status"),
		AuthorID:   c.Query("authorId"),
	}
	opts := query.Options{
		Page:      c.Query("page"),
		Limit:     c.Query("limit"),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
	}

	list, err := s.postService.List(ctx, raw, opts)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(list)
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseUUID(c, "id")
	if err != nil {
		return nil
	}

	observability.AddTraceAttributesToContext(c.UserContext(), attribute.String("post.id", id))

	detail, err := s.postService.GetByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(detail)
}

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	author, err := s.requireActiveAuthor(c)
	if err != nil {
		return nil
	}

	var req struct {
		Title      string   `json:"title"`
		Content    string   `json:"content"`
		Thumbnail  string   `json:"thumbnail"`
		Tags       []string `json:"tags"`
		Status     string   `json:"status"`
		IsFeatured bool     `json:"isFeatured"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, newInvalidBodyError())
	}

	post, err := s.postService.Create(c.UserContext(), service.CreatePostInput{
		AuthorID:   author.ID,
		Title:      req.Title,
		Content:    req.Content,
		Thumbnail:  req.Thumbnail,
		Tags:       req.Tags,
		Status:     req.Status,
		IsFeatured: req.IsFeatured,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// UpdatePost handles PATCH /api/posts/:id
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	author, err := s.requireActiveAuthor(c)
	if err != nil {
		return nil
	}

	id, err := s.parseUUID(c, "id")
	if err != nil {
		return nil
	}

	var patch map[string]interface{}
	if err := c.BodyParser(&patch); err != nil {
		return respondError(c, newInvalidBodyError())
	}

	post, err := s.postService.Update(c.UserContext(), service.UpdatePostInput{
		PostID:      id,
		RequesterID: author.ID,
		Patch:       patch,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	if _, err := s.requireActiveAuthor(c); err != nil {
		return nil
	}

	id, err := s.parseUUID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Post deleted"})
}
