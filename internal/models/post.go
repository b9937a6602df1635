package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// PostStatus is the publication state of a post.
type PostStatus string

// Post publication statuses.
const (
	PostDraft     PostStatus = "DRAFT"
	PostPublished PostStatus = "PUBLISHED"
	PostArchived  PostStatus = "ARCHIVED"
)

// Valid reports whether the status is one of the known values.
func (s PostStatus) Valid() bool {
	switch s {
	case PostDraft, PostPublished, PostArchived:
		return true
	}
	return false
}

// Post represents a blog post authored by a user.
type Post struct {
	ID         string         `gorm:"primaryKey;type:uuid" json:"id"`
	Title      string         `gorm:"not null" json:"title"`
	Content    string         `gorm:"not null" json:"content"`
	Thumbnail  string         `json:"thumbnail,omitempty"`
	IsFeatured bool           `gorm:"not null;default:false" json:"isFeatured"`
	Status     PostStatus     `gorm:"type:varchar(16);not null;default:DRAFT;index" json:"status"`
	Tags       pq.StringArray `gorm:"type:text[]" json:"tags"`
	// Views only ever increases, and only through single-post retrieval.
	Views     int64     `gorm:"not null;default:0" json:"views"`
	AuthorID  string    `gorm:"type:uuid;not null;index" json:"authorId"`
	Author    *User     `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate assigns a UUID primary key when none was provided.
func (p *Post) BeforeCreate(*gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// PostSummary is the post projection embedded in comment responses.
type PostSummary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Views int64  `json:"views"`
}

// Summary returns the reduced projection of the post.
func (p *Post) Summary() PostSummary {
	return PostSummary{ID: p.ID, Title: p.Title, Views: p.Views}
}
