package service

import (
	"testing"
	"time"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeComment(id string, parentID *string, createdAt time.Time) models.Comment {
	return models.Comment{
		ID:        id,
		Content:   "c-" + id,
		ParentID:  parentID,
		Status:    models.CommentApproved,
		CreatedAt: createdAt,
	}
}

func strPtr(s string) *string { return &s }

func TestBuildCommentTree(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("threads replies under roots", func(t *testing.T) {
		comments := []models.Comment{
			makeComment("r1", nil, base),
			makeComment("c1", strPtr("r1"), base.Add(2*time.Minute)),
			makeComment("c2", strPtr("r1"), base.Add(1*time.Minute)),
			makeComment("r2", nil, base.Add(3*time.Minute)),
		}

		roots := BuildCommentTree(comments)
		require.Len(t, roots, 2)

		// Roots newest first.
		assert.Equal(t, "r2", roots[0].ID)
		assert.Equal(t, "r1", roots[1].ID)

		// Replies oldest first with direct-child counts.
		r1 := roots[1]
		assert.Equal(t, 2, r1.ReplyCount)
		require.Len(t, r1.Replies, 2)
		assert.Equal(t, "c2", r1.Replies[0].ID)
		assert.Equal(t, "c1", r1.Replies[1].ID)

		assert.Equal(t, 0, roots[0].ReplyCount)
	})

	t.Run("nested replies count direct children only", func(t *testing.T) {
		comments := []models.Comment{
			makeComment("r1", nil, base),
			makeComment("c1", strPtr("r1"), base.Add(time.Minute)),
			makeComment("c2", strPtr("c1"), base.Add(2*time.Minute)),
		}

		roots := BuildCommentTree(comments)
		require.Len(t, roots, 1)
		assert.Equal(t, 1, roots[0].ReplyCount, "grandchildren do not count")
		require.Len(t, roots[0].Replies, 1)
		assert.Equal(t, 1, roots[0].Replies[0].ReplyCount)
	})

	t.Run("orphaned reply becomes a root", func(t *testing.T) {
		comments := []models.Comment{
			makeComment("r1", nil, base),
			makeComment("orphan", strPtr("missing"), base.Add(time.Minute)),
		}

		roots := BuildCommentTree(comments)
		require.Len(t, roots, 2)
		assert.Equal(t, "orphan", roots[0].ID, "orphan is newer so it sorts first")
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, BuildCommentTree(nil))
	})

	t.Run("replies slice is never nil", func(t *testing.T) {
		roots := BuildCommentTree([]models.Comment{makeComment("r1", nil, base)})
		require.Len(t, roots, 1)
		assert.NotNil(t, roots[0].Replies)
	})
}
