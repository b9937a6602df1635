package repository

import (
	"context"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createTestComment(t *testing.T, db *gorm.DB, post *models.Post, author *models.User, mutate func(*models.Comment)) *models.Comment {
	t.Helper()
	comment := &models.Comment{
		Content:  "Nice post!",
		AuthorID: author.ID,
		PostID:   post.ID,
		Status:   models.CommentPending,
	}
	if mutate != nil {
		mutate(comment)
	}
	require.NoError(t, db.Create(comment).Error)
	t.Cleanup(func() { db.Delete(&models.Comment{}, "id = ?", comment.ID) })
	return comment
}

func TestCommentRepository_GetByID(t *testing.T) {
	db := requireDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db)
	post := createTestPost(t, db, author, nil)
	comment := createTestComment(t, db, post, author, nil)

	got, err := repo.GetByID(ctx, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, comment.Content, got.Content)
	require.NotNil(t, got.Post, "post summary should be preloaded")
	assert.Equal(t, post.Title, got.Post.Title)
}

func TestCommentRepository_ListApprovedByPost(t *testing.T) {
	db := requireDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db)
	post := createTestPost(t, db, author, nil)

	first := createTestComment(t, db, post, author, func(c *models.Comment) {
		c.Status = models.CommentApproved
		c.Content = "first"
	})
	second := createTestComment(t, db, post, author, func(c *models.Comment) {
		c.Status = models.CommentApproved
		c.Content = "second"
	})
	createTestComment(t, db, post, author, func(c *models.Comment) {
		c.Status = models.CommentPending
	})
	createTestComment(t, db, post, author, func(c *models.Comment) {
		c.Status = models.CommentRejected
	})

	comments, err := repo.ListApprovedByPost(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2, "only approved comments are listed")
	assert.Equal(t, first.ID, comments[0].ID, "ascending creation order")
	assert.Equal(t, second.ID, comments[1].ID)
}

func TestCommentRepository_ListByAuthor(t *testing.T) {
	db := requireDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db)
	other := createTestUser(t, db)
	post := createTestPost(t, db, author, nil)

	for i := 0; i < 3; i++ {
		createTestComment(t, db, post, author, nil)
	}
	createTestComment(t, db, post, other, nil)

	comments, total, err := repo.ListByAuthor(ctx, author.ID, 2, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, comments, 2)
	require.NotNil(t, comments[0].Post)
	assert.Equal(t, post.Title, comments[0].Post.Title)
}

func TestCommentRepository_UpdateStatus(t *testing.T) {
	db := requireDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db)
	post := createTestPost(t, db, author, nil)
	comment := createTestComment(t, db, post, author, nil)

	require.NoError(t, repo.UpdateStatus(ctx, comment.ID, models.CommentApproved))

	got, err := repo.GetByID(ctx, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CommentApproved, got.Status)

	err = repo.UpdateStatus(ctx, "00000000-0000-0000-0000-000000000000", models.CommentApproved)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCommentRepository_Delete(t *testing.T) {
	db := requireDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db)
	post := createTestPost(t, db, author, nil)
	comment := createTestComment(t, db, post, author, nil)

	require.NoError(t, repo.Delete(ctx, comment.ID))
	assert.ErrorIs(t, repo.Delete(ctx, comment.ID), gorm.ErrRecordNotFound)
}

func TestStatsRepository_Snapshot(t *testing.T) {
	db := requireDB(t)
	repo := NewStatsRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db)
	post := createTestPost(t, db, author, func(p *models.Post) {
		p.Views = 5
	})
	createTestComment(t, db, post, author, func(c *models.Comment) {
		c.Status = models.CommentApproved
	})

	snap, err := repo.Snapshot(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, snap.TotalPosts, int64(1))
	assert.GreaterOrEqual(t, snap.TotalComments, int64(1))
	assert.GreaterOrEqual(t, snap.ApprovedComments, int64(1))
	assert.GreaterOrEqual(t, snap.TotalViews, int64(5))
	assert.GreaterOrEqual(t, snap.RegularUsers, int64(1))
}
