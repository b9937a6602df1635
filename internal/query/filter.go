package query

import (
	"strings"

	"inkwell/internal/models"
)

// RawPostFilter carries the sparse, string-typed filter payload from the
// transport layer.
type RawPostFilter struct {
	Search     string
	Tags       string
	IsFeatured string
	Status     string
	AuthorID   string
}

// PostFilter is the predicate description consumed by the storage layer.
// Each field is independently optional; set fields combine with AND.
type PostFilter struct {
	// Search matches case-insensitively as a substring of title or
	// content, or as an exact tag.
	Search string
	// Tags must ALL be present on a matching post.
	Tags []string
	// IsFeatured filters only when non-nil; absence means "no filter".
	IsFeatured *bool
	// Status is either a valid PostStatus or empty (filter disabled).
	Status models.PostStatus
	// AuthorID matches exactly.
	AuthorID string
}

// ParsePostFilter builds a PostFilter from raw inputs. Unrecognized status
// values silently disable the status filter rather than failing the
// request, and only the literals "true"/"false" coerce to the featured
// filter. An empty payload yields a filter that matches every post.
func ParsePostFilter(raw RawPostFilter) PostFilter {
	f := PostFilter{
		Search:   strings.TrimSpace(raw.Search),
		AuthorID: strings.TrimSpace(raw.AuthorID),
	}

	if raw.Tags != "" {
		for _, tag := range strings.Split(raw.Tags, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				f.Tags = append(f.Tags, tag)
			}
		}
	}

	switch raw.IsFeatured {
	case "true":
		t := true
		f.IsFeatured = &t
	case "false":
		fv := false
		f.IsFeatured = &fv
	}

	if status := models.PostStatus(raw.Status); status.Valid() {
		f.Status = status
	}

	return f
}

// Empty reports whether the filter matches every post.
func (f PostFilter) Empty() bool {
	return f.Search == "" && len(f.Tags) == 0 && f.IsFeatured == nil &&
		f.Status == "" && f.AuthorID == ""
}
