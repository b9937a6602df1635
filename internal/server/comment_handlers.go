// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"inkwell/internal/query"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateComment handles POST /api/posts/:id/comments
func (s *Server) CreateComment(c *fiber.Ctx) error {
	author, err := s.requireActiveAuthor(c)
	if err != nil {
		return nil
	}

	postID, err := s.parseUUID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content  string  `json:"content"`
		ParentID *string `json:"parentId"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, newInvalidBodyError())
	}

	comment, err := s.commentService.Create(c.UserContext(), service.CreateCommentInput{
		AuthorID: author.ID,
		PostID:   postID,
		ParentID: req.ParentID,
		Content:  req.Content,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}

// GetComment handles GET /api/comments/:id
func (s *Server) GetComment(c *fiber.Ctx) error {
	id, err := s.parseUUID(c, "id")
	if err != nil {
		return nil
	}

	comment, err := s.commentService.GetByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(comment)
}

// GetCommentsByAuthor handles GET /api/comments/author/:authorId
func (s *Server) GetCommentsByAuthor(c *fiber.Ctx) error {
	authorID, err := s.parseUUID(c, "authorId")
	if err != nil {
		return nil
	}

	opts := query.Options{
		Page:  c.Query("page"),
		Limit: c.Query("limit"),
	}

	page, err := s.commentService.ListByAuthor(c.UserContext(), authorID, opts)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(page)
}

// UpdateComment handles PATCH /api/comments/:id
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	author, err := s.requireActiveAuthor(c)
	if err != nil {
		return nil
	}

	id, err := s.parseUUID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, newInvalidBodyError())
	}

	comment, err := s.commentService.Update(c.UserContext(), service.UpdateCommentInput{
		RequesterID: author.ID,
		CommentID:   id,
		Content:     req.Content,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(comment)
}

// DeleteComment handles DELETE /api/comments/:id
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	author, err := s.requireActiveAuthor(c)
	if err != nil {
		return nil
	}

	id, err := s.parseUUID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.commentService.Delete(c.UserContext(), service.DeleteCommentInput{
		RequesterID: author.ID,
		CommentID:   id,
	}); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Comment deleted"})
}

// ModerateComment handles PATCH /api/comments/:id/moderate
func (s *Server) ModerateComment(c *fiber.Ctx) error {
	id, err := s.parseUUID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, newInvalidBodyError())
	}

	comment, err := s.commentService.Moderate(c.UserContext(), service.ModerateCommentInput{
		CommentID: id,
		Status:    req.Status,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(comment)
}
