package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CommentStatus is the moderation state of a comment.
type CommentStatus string

// Comment moderation statuses. PENDING is the initial state; any state may
// transition to either other state.
const (
	CommentPending  CommentStatus = "PENDING"
	CommentApproved CommentStatus = "APPROVED"
	CommentRejected CommentStatus = "REJECT"
)

// Valid reports whether the status is one of the known values.
func (s CommentStatus) Valid() bool {
	switch s {
	case CommentPending, CommentApproved, CommentRejected:
		return true
	}
	return false
}

// Comment represents a reader comment on a post. A non-nil ParentID marks
// the comment as a reply to another comment.
type Comment struct {
	ID        string        `gorm:"primaryKey;type:uuid" json:"id"`
	Content   string        `gorm:"not null" json:"content"`
	AuthorID  string        `gorm:"type:uuid;not null;index" json:"authorId"`
	PostID    string        `gorm:"type:uuid;not null;index" json:"postId"`
	ParentID  *string       `gorm:"type:uuid;index" json:"parentId,omitempty"`
	Status    CommentStatus `gorm:"type:varchar(16);not null;default:PENDING;index" json:"status"`
	Author    *User         `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Post      *Post         `gorm:"foreignKey:PostID" json:"post,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// BeforeCreate assigns a UUID primary key when none was provided.
func (c *Comment) BeforeCreate(*gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// IsReply reports whether the comment references a parent comment.
func (c *Comment) IsReply() bool {
	return c.ParentID != nil && *c.ParentID != ""
}

// CommentNode is a comment with its direct replies attached. It is derived
// at read time and never persisted.
type CommentNode struct {
	Comment
	Replies []*CommentNode `json:"replies"`
	// ReplyCount counts direct children only, not all descendants.
	ReplyCount int `json:"replyCount"`
}
