// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"

	"inkwell/internal/cache"
	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/query"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id string) (*models.Post, error)
	List(ctx context.Context, filter query.PostFilter, limit, offset int, order string) ([]models.Post, error)
	Count(ctx context.Context, filter query.PostFilter) (int64, error)
	UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error
	IncrementViews(ctx context.Context, id string) error
	CountCommentsByStatus(ctx context.Context, postID string, status models.CommentStatus) (int64, error)
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	defer observability.NewDatabaseMetrics(r.db).TrackQuery("create", "posts")()
	err := r.db.WithContext(ctx).Create(post).Error
	if err == nil {
		cache.InvalidatePostLists(ctx)
	}
	return err
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	defer observability.NewDatabaseMetrics(r.db).TrackQuery("get", "posts")()
	ctx, span := observability.TraceRepositoryMethod(ctx, "GetByID", "posts")
	defer span.End()
	var post models.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		First(&post, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// applyFilter translates the parsed filter into WHERE clauses. All
// conditions are AND-composed; the search term matches the title or
// content case-insensitively, or any tag exactly.
func applyFilter(db *gorm.DB, filter query.PostFilter) *gorm.DB {
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		db = db.Where("title ILIKE ? OR content ILIKE ? OR ? = ANY(tags)", like, like, filter.Search)
	}
	if len(filter.Tags) > 0 {
		// Posts must carry every requested tag.
		db = db.Where("tags @> ?", pq.StringArray(filter.Tags))
	}
	if filter.IsFeatured != nil {
		db = db.Where("is_featured = ?", *filter.IsFeatured)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.AuthorID != "" {
		db = db.Where("author_id = ?", filter.AuthorID)
	}
	return db
}

func (r *postRepository) List(ctx context.Context, filter query.PostFilter, limit, offset int, order string) ([]models.Post, error) {
	defer observability.NewDatabaseMetrics(r.db).TrackQuery("list", "posts")()
	ctx, span := observability.TraceRepositoryMethod(ctx, "List", "posts")
	defer span.End()
	var posts []models.Post
	err := applyFilter(r.db.WithContext(ctx).Model(&models.Post{}), filter).
		Preload("Author").
		Order(order).
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) Count(ctx context.Context, filter query.PostFilter) (int64, error) {
	defer observability.NewDatabaseMetrics(r.db).TrackQuery("count", "posts")()
	var total int64
	err := applyFilter(r.db.WithContext(ctx).Model(&models.Post{}), filter).
		Count(&total).Error
	return total, err
}

func (r *postRepository) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	defer observability.NewDatabaseMetrics(r.db).TrackQuery("update", "posts")()
	err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", id).
		Updates(fields).Error
	if err == nil {
		cache.InvalidatePost(ctx, id)
		cache.InvalidatePostLists(ctx)
	}
	return err
}

func (r *postRepository) Delete(ctx context.Context, id string) error {
	defer observability.NewDatabaseMetrics(r.db).TrackQuery("delete", "posts")()
	result := r.db.WithContext(ctx).Delete(&models.Post{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	cache.InvalidatePost(ctx, id)
	cache.InvalidatePostLists(ctx)
	return nil
}

func (r *postRepository) IncrementViews(ctx context.Context, id string) error {
	defer observability.NewDatabaseMetrics(r.db).TrackQuery("update", "posts")()
	err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
	if err == nil {
		cache.InvalidatePost(ctx, id)
	}
	return err
}

func (r *postRepository) CountCommentsByStatus(ctx context.Context, postID string, status models.CommentStatus) (int64, error) {
	defer observability.NewDatabaseMetrics(r.db).TrackQuery("count", "comments")()
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("post_id = ? AND status = ?", postID, status).
		Count(&count).Error
	return count, err
}
