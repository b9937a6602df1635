package service

import (
	"context"
	"testing"

	"inkwell/internal/models"
	"inkwell/internal/query"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn                func(context.Context, *models.Post) error
	getByIDFn               func(context.Context, string) (*models.Post, error)
	listFn                  func(context.Context, query.PostFilter, int, int, string) ([]models.Post, error)
	countFn                 func(context.Context, query.PostFilter) (int64, error)
	updateFieldsFn          func(context.Context, string, map[string]interface{}) error
	deleteFn                func(context.Context, string) error
	incrementViewsFn        func(context.Context, string) error
	countCommentsByStatusFn func(context.Context, string, models.CommentStatus) (int64, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id string) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) List(ctx context.Context, filter query.PostFilter, limit, offset int, order string) ([]models.Post, error) {
	return s.listFn(ctx, filter, limit, offset, order)
}
func (s *postRepoStub) Count(ctx context.Context, filter query.PostFilter) (int64, error) {
	return s.countFn(ctx, filter)
}
func (s *postRepoStub) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	return s.updateFieldsFn(ctx, id, fields)
}
func (s *postRepoStub) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) IncrementViews(ctx context.Context, id string) error {
	return s.incrementViewsFn(ctx, id)
}
func (s *postRepoStub) CountCommentsByStatus(ctx context.Context, postID string, status models.CommentStatus) (int64, error) {
	return s.countCommentsByStatusFn(ctx, postID, status)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:  func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn: func(_ context.Context, id string) (*models.Post, error) { return &models.Post{ID: id}, nil },
		listFn: func(_ context.Context, _ query.PostFilter, _, _ int, _ string) ([]models.Post, error) {
			return nil, nil
		},
		countFn:          func(_ context.Context, _ query.PostFilter) (int64, error) { return 0, nil },
		updateFieldsFn:   func(_ context.Context, _ string, _ map[string]interface{}) error { return nil },
		deleteFn:         func(_ context.Context, _ string) error { return nil },
		incrementViewsFn: func(_ context.Context, _ string) error { return nil },
		countCommentsByStatusFn: func(_ context.Context, _ string, _ models.CommentStatus) (int64, error) {
			return 0, nil
		},
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn             func(context.Context, *models.Comment) error
	getByIDFn            func(context.Context, string) (*models.Comment, error)
	listApprovedByPostFn func(context.Context, string) ([]models.Comment, error)
	listByAuthorFn       func(context.Context, string, int, int) ([]models.Comment, int64, error)
	updateFn             func(context.Context, *models.Comment) error
	updateStatusFn       func(context.Context, string, models.CommentStatus) error
	deleteFn             func(context.Context, string) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListApprovedByPost(ctx context.Context, postID string) ([]models.Comment, error) {
	return s.listApprovedByPostFn(ctx, postID)
}
func (s *commentRepoStub) ListByAuthor(ctx context.Context, authorID string, limit, offset int) ([]models.Comment, int64, error) {
	return s.listByAuthorFn(ctx, authorID, limit, offset)
}
func (s *commentRepoStub) Update(ctx context.Context, comment *models.Comment) error {
	return s.updateFn(ctx, comment)
}
func (s *commentRepoStub) UpdateStatus(ctx context.Context, id string, status models.CommentStatus) error {
	return s.updateStatusFn(ctx, id, status)
}
func (s *commentRepoStub) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn: func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn: func(_ context.Context, id string) (*models.Comment, error) {
			return &models.Comment{ID: id}, nil
		},
		listApprovedByPostFn: func(_ context.Context, _ string) ([]models.Comment, error) { return nil, nil },
		listByAuthorFn: func(_ context.Context, _ string, _, _ int) ([]models.Comment, int64, error) {
			return nil, 0, nil
		},
		updateFn:       func(_ context.Context, _ *models.Comment) error { return nil },
		updateStatusFn: func(_ context.Context, _ string, _ models.CommentStatus) error { return nil },
		deleteFn:       func(_ context.Context, _ string) error { return nil },
	}
}

// statsRepoStub is a stub for repository.StatsRepository.
type statsRepoStub struct {
	snapshotFn func(context.Context) (*models.StatsSnapshot, error)
}

func (s *statsRepoStub) Snapshot(ctx context.Context) (*models.StatsSnapshot, error) {
	return s.snapshotFn(ctx)
}

func assertAppError(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.Code)
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertAppError(t, err, models.CodeValidation)
}

func assertNotFoundError(t *testing.T, err error) {
	t.Helper()
	assertAppError(t, err, models.CodeNotFound)
}

var errRecordNotFound = gorm.ErrRecordNotFound
