package service

import (
	"context"
	"errors"
	"fmt"

	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/query"
	"inkwell/internal/repository"

	"gorm.io/gorm"
)

const maxCommentLen = 10000

type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	isAdmin     func(ctx context.Context, userID string) (bool, error)
}

type CreateCommentInput struct {
	AuthorID string
	PostID   string
	ParentID *string
	Content  string
}

type UpdateCommentInput struct {
	RequesterID string
	CommentID   string
	Content     string
}

type DeleteCommentInput struct {
	RequesterID string
	CommentID   string
}

type ModerateCommentInput struct {
	CommentID string
	Status    string
}

// CommentPage is a paginated slice of one author's comments.
type CommentPage struct {
	Items      []models.Comment `json:"items"`
	Pagination Pagination       `json:"pagination"`
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	isAdmin func(ctx context.Context, userID string) (bool, error),
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		isAdmin:     isAdmin,
	}
}

// Create validates the target post and, for replies, the parent
// comment before persisting. New comments always start PENDING.
func (s *CommentService) Create(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 10000 characters)")
	}

	if _, err := s.postRepo.GetByID(ctx, in.PostID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", in.PostID)
		}
		return nil, err
	}

	if in.ParentID != nil {
		parent, err := s.commentRepo.GetByID(ctx, *in.ParentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, models.NewNotFoundError("Comment", *in.ParentID)
			}
			return nil, err
		}
		if parent.PostID != in.PostID {
			return nil, models.NewValidationError("Parent comment belongs to a different post")
		}
	}

	comment := &models.Comment{
		Content:  in.Content,
		AuthorID: in.AuthorID,
		PostID:   in.PostID,
		ParentID: in.ParentID,
		Status:   models.CommentPending,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	return s.commentRepo.GetByID(ctx, comment.ID)
}

func (s *CommentService) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment", id)
		}
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) ListByAuthor(ctx context.Context, authorID string, opts query.Options) (*CommentPage, error) {
	desc := query.Normalize(opts)
	items, total, err := s.commentRepo.ListByAuthor(ctx, authorID, desc.Limit, desc.Skip)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.Comment{}
	}
	return &CommentPage{
		Items: items,
		Pagination: Pagination{
			Page:       desc.Page,
			Limit:      desc.Limit,
			Total:      total,
			TotalPages: totalPages(total, desc.Limit),
		},
	}, nil
}

func (s *CommentService) Update(ctx context.Context, in UpdateCommentInput) (*models.Comment, error) {
	comment, err := s.GetByID(ctx, in.CommentID)
	if err != nil {
		return nil, err
	}

	if comment.AuthorID != in.RequesterID {
		return nil, models.NewForbiddenError("You can only update your own comments")
	}
	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 10000 characters)")
	}

	comment.Content = in.Content
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, comment.ID)
}

func (s *CommentService) Delete(ctx context.Context, in DeleteCommentInput) error {
	comment, err := s.GetByID(ctx, in.CommentID)
	if err != nil {
		return err
	}

	if comment.AuthorID != in.RequesterID {
		if s.isAdmin == nil {
			return models.NewForbiddenError("You can only delete your own comments")
		}
		admin, err := s.isAdmin(ctx, in.RequesterID)
		if err != nil {
			return err
		}
		if !admin {
			return models.NewForbiddenError("You can only delete your own comments")
		}
	}

	return s.commentRepo.Delete(ctx, in.CommentID)
}

// Moderate applies a moderation decision. Any state may transition to
// either other state; repeating the current state conflicts.
func (s *CommentService) Moderate(ctx context.Context, in ModerateCommentInput) (*models.Comment, error) {
	status := models.CommentStatus(in.Status)
	if !status.Valid() {
		return nil, models.NewValidationError("Status must be PENDING, APPROVED or REJECT")
	}

	comment, err := s.GetByID(ctx, in.CommentID)
	if err != nil {
		return nil, err
	}

	if comment.Status == status {
		return nil, models.NewConflictError(fmt.Sprintf("Comment is already %s", status))
	}

	if err := s.commentRepo.UpdateStatus(ctx, in.CommentID, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment", in.CommentID)
		}
		return nil, err
	}

	middleware.CommentModerations.WithLabelValues(string(status)).Inc()
	return s.commentRepo.GetByID(ctx, in.CommentID)
}

func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	pages := total / int64(limit)
	if total%int64(limit) != 0 {
		pages++
	}
	return int(pages)
}
