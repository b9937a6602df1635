package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"inkwell/internal/cache"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/query"
	"inkwell/internal/repository"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// sortColumns is the allow-list of sortable fields. Anything outside it
// falls back to newest-first ordering.
var sortColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"title":     "title",
	"views":     "views",
}

const defaultOrder = "created_at DESC"

type PostService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
}

type CreatePostInput struct {
	AuthorID   string
	Title      string
	Content    string
	Thumbnail  string
	Tags       []string
	Status     string
	IsFeatured bool
}

type UpdatePostInput struct {
	PostID      string
	RequesterID string
	Patch       map[string]interface{}
}

// Pagination echoes the resolved page geometry back to the caller.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// PostList is the result of a filtered listing query.
type PostList struct {
	Items       []models.Post `json:"items"`
	Pagination  Pagination    `json:"pagination"`
	SearchQuery string        `json:"searchQuery"`
	Tags        []string      `json:"tags"`
}

// PostDetail merges a post with its approved comment forest and the
// flat partition counts over the same approved set.
type PostDetail struct {
	models.Post
	Comments          []*models.CommentNode `json:"comments"`
	TotalComments     int                   `json:"totalComments"`
	TotalRootComments int                   `json:"totalRootComments"`
	TotalReplies      int                   `json:"totalReplies"`
}

func NewPostService(postRepo repository.PostRepository, commentRepo repository.CommentRepository) *PostService {
	return &PostService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
	}
}

// resolveOrder builds the ORDER BY clause from raw sort inputs. The
// fallback applies both for fields outside the allow-list and when no
// sort order was requested at all.
func resolveOrder(desc query.Descriptor, rawSortOrder string) string {
	column, ok := sortColumns[desc.SortBy]
	if !ok || rawSortOrder == "" {
		return defaultOrder
	}
	return fmt.Sprintf("%s %s", column, desc.SortOrder)
}

func (s *PostService) List(ctx context.Context, raw query.RawPostFilter, opts query.Options) (*PostList, error) {
	filter := query.ParsePostFilter(raw)
	desc := query.Normalize(opts)
	order := resolveOrder(desc, opts.SortOrder)

	// Only the unfiltered newest-first pages are cached; filtered
	// combinations are too low-traffic to be worth the churn.
	cacheable := filter.Empty() && order == defaultOrder
	cacheKey := cache.PostListKey(fmt.Sprintf("p%d:l%d", desc.Page, desc.Limit))
	if cacheable {
		var cached PostList
		if cache.GetJSON(ctx, cacheKey, &cached) {
			return &cached, nil
		}
	}

	total, err := s.postRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	items, err := s.postRepo.List(ctx, filter, desc.Limit, desc.Skip, order)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.Post{}
	}

	tags := filter.Tags
	if tags == nil {
		tags = []string{}
	}
	result := &PostList{
		Items: items,
		Pagination: Pagination{
			Page:       desc.Page,
			Limit:      desc.Limit,
			Total:      total,
			TotalPages: int(math.Ceil(float64(total) / float64(desc.Limit))),
		},
		SearchQuery: filter.Search,
		Tags:        tags,
	}

	if cacheable {
		cache.SetJSON(ctx, cacheKey, result, cache.PostListTTL)
	}
	return result, nil
}

func (s *PostService) GetByID(ctx context.Context, id string) (*PostDetail, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, err
	}

	// View counting is best effort; a failed increment never blocks the read.
	if err := s.postRepo.IncrementViews(ctx, id); err != nil {
		middleware.Logger.WarnContext(ctx, "Failed to increment post views",
			slog.String("postID", id),
			slog.String("error", err.Error()),
		)
	} else {
		post.Views++
		middleware.PostViews.Inc()
	}

	approved, err := s.commentRepo.ListApprovedByPost(ctx, id)
	if err != nil {
		return nil, err
	}

	roots := 0
	for i := range approved {
		if approved[i].ParentID == nil {
			roots++
		}
	}

	return &PostDetail{
		Post:              *post,
		Comments:          BuildCommentTree(approved),
		TotalComments:     len(approved),
		TotalRootComments: roots,
		TotalReplies:      len(approved) - roots,
	}, nil
}

func (s *PostService) Create(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if in.Title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}

	status := models.PostDraft
	if in.Status != "" {
		candidate := models.PostStatus(in.Status)
		if !candidate.Valid() {
			return nil, models.NewValidationError("Invalid post status")
		}
		status = candidate
	}

	post := &models.Post{
		Title:      in.Title,
		Content:    in.Content,
		Thumbnail:  in.Thumbnail,
		Tags:       pq.StringArray(in.Tags),
		Status:     status,
		IsFeatured: in.IsFeatured,
		AuthorID:   in.AuthorID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID)
}

// updatableColumns maps accepted patch keys to their columns. The id
// and author id are deliberately absent: they can never be patched.
var updatableColumns = map[string]string{
	"title":      "title",
	"content":    "content",
	"thumbnail":  "thumbnail",
	"tags":       "tags",
	"status":     "status",
	"isFeatured": "is_featured",
}

func (s *PostService) Update(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", in.PostID)
		}
		return nil, err
	}

	if !canEdit(post, in.RequesterID) {
		return nil, models.NewForbiddenError("You can only update your own posts")
	}

	fields := make(map[string]interface{}, len(in.Patch))
	for key, value := range in.Patch {
		column, ok := updatableColumns[key]
		if !ok {
			continue
		}
		switch column {
		case "status":
			raw, _ := value.(string)
			if !models.PostStatus(raw).Valid() {
				return nil, models.NewValidationError("Invalid post status")
			}
		case "tags":
			// JSON decoding yields []interface{}; the driver needs a
			// typed array.
			value = toStringArray(value)
		}
		fields[column] = value
	}

	if len(fields) > 0 {
		if err := s.postRepo.UpdateFields(ctx, in.PostID, fields); err != nil {
			return nil, err
		}
	}
	return s.postRepo.GetByID(ctx, in.PostID)
}

// canEdit gates post mutation to the original author.
func canEdit(post *models.Post, requesterID string) bool {
	return post.AuthorID == requesterID
}

func toStringArray(value interface{}) pq.StringArray {
	switch v := value.(type) {
	case []string:
		return pq.StringArray(v)
	case pq.StringArray:
		return v
	case []interface{}:
		out := make(pq.StringArray, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return pq.StringArray{}
	}
}

func (s *PostService) Delete(ctx context.Context, id string) error {
	if err := s.postRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Post", id)
		}
		return err
	}
	return nil
}
