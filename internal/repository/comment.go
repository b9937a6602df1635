package repository

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/observability"

	"gorm.io/gorm"
)

// CommentRepository defines interface for comment operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id string) (*models.Comment, error)
	ListApprovedByPost(ctx context.Context, postID string) ([]models.Comment, error)
	ListByAuthor(ctx context.Context, authorID string, limit, offset int) ([]models.Comment, int64, error)
	Update(ctx context.Context, comment *models.Comment) error
	UpdateStatus(ctx context.Context, id string, status models.CommentStatus) error
	Delete(ctx context.Context, id string) error
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	defer observability.NewDatabaseMetrics(r.db).TrackQuery("create", "comments")()
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	defer observability.NewDatabaseMetrics(r.db).TrackQuery("get", "comments")()
	var comment models.Comment
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Post", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "title", "views")
		}).
		First(&comment, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListApprovedByPost returns every approved comment on the post in
// ascending creation order. The tree builder reorders them afterwards.
func (r *commentRepository) ListApprovedByPost(ctx context.Context, postID string) ([]models.Comment, error) {
	defer observability.NewDatabaseMetrics(r.db).TrackQuery("list", "comments")()
	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("post_id = ? AND status = ?", postID, models.CommentApproved).
		Order("created_at asc").
		Find(&comments).Error
	return comments, err
}

func (r *commentRepository) ListByAuthor(ctx context.Context, authorID string, limit, offset int) ([]models.Comment, int64, error) {
	defer observability.NewDatabaseMetrics(r.db).TrackQuery("list", "comments")()
	var total int64
	base := r.db.WithContext(ctx).Model(&models.Comment{}).Where("author_id = ?", authorID)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var comments []models.Comment
	err := base.
		Preload("Post", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "title", "views")
		}).
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&comments).Error
	return comments, total, err
}

func (r *commentRepository) Update(ctx context.Context, comment *models.Comment) error {
	defer observability.NewDatabaseMetrics(r.db).TrackQuery("update", "comments")()
	return r.db.WithContext(ctx).Save(comment).Error
}

func (r *commentRepository) UpdateStatus(ctx context.Context, id string, status models.CommentStatus) error {
	defer observability.NewDatabaseMetrics(r.db).TrackQuery("update", "comments")()
	result := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *commentRepository) Delete(ctx context.Context, id string) error {
	defer observability.NewDatabaseMetrics(r.db).TrackQuery("delete", "comments")()
	result := r.db.WithContext(ctx).Delete(&models.Comment{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
