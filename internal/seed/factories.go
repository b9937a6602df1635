// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"inkwell/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var tagPool = []string{
	"go", "web", "databases", "testing", "performance", "design",
	"devops", "security", "tooling", "concurrency", "observability",
	"postgres", "redis", "http", "career",
}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	rand *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{db: db, rand: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// BuildUser constructs a sample user without persisting it.
func (f *Factory) BuildUser(overrides ...func(*models.User)) *models.User {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("Passw0rd!Seed"+gofakeit.LetterN(4)), bcrypt.MinCost)
	user := &models.User{
		Name:          gofakeit.Name(),
		Email:         strings.ToLower(gofakeit.Email()),
		Password:      string(hashed),
		Role:          models.RoleUser,
		Status:        models.UserActive,
		EmailVerified: true,
	}
	for _, override := range overrides {
		override(user)
	}
	return user
}

// CreateUser constructs and persists a sample user.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := f.BuildUser(overrides...)
	if err := f.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("seed user: %w", err)
	}
	return user, nil
}

// BuildPost constructs a sample post without persisting it. Creation times
// are spread over the last 90 days so listings look lived-in.
func (f *Factory) BuildPost(author *models.User, overrides ...func(*models.Post)) *models.Post {
	post := &models.Post{
		Title:    gofakeit.Sentence(5),
		Content:  gofakeit.Paragraph(2, 4, 8, "\n\n"),
		AuthorID: author.ID,
		Status:   randomPostStatus(f.rand),
		Tags:     pq.StringArray(f.randomTags()),
		Views:    int64(f.rand.Intn(500)),
	}
	if f.rand.Intn(10) == 0 {
		post.IsFeatured = true
	}
	if f.rand.Intn(3) == 0 {
		post.Thumbnail = fmt.Sprintf("https://picsum.photos/seed/%s/1200/630", gofakeit.UUID())
	}

	daysBack := f.rand.Intn(90)
	hoursBack := f.rand.Intn(24)
	post.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)

	for _, override := range overrides {
		override(post)
	}
	return post
}

// CreatePost constructs and persists a sample post.
func (f *Factory) CreatePost(author *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	post := f.BuildPost(author, overrides...)
	if err := f.db.Create(post).Error; err != nil {
		return nil, fmt.Errorf("seed post: %w", err)
	}
	return post, nil
}

// BuildComment constructs a sample comment without persisting it. Roughly
// two thirds of generated comments come out approved so seeded post pages
// show a populated discussion.
func (f *Factory) BuildComment(author *models.User, post *models.Post, parent *models.Comment, overrides ...func(*models.Comment)) *models.Comment {
	comment := &models.Comment{
		Content:  gofakeit.Sentence(f.rand.Intn(12) + 4),
		AuthorID: author.ID,
		PostID:   post.ID,
		Status:   randomCommentStatus(f.rand),
	}
	if parent != nil {
		comment.ParentID = &parent.ID
	}
	base := post.CreatedAt
	if parent != nil {
		base = parent.CreatedAt
	}
	comment.CreatedAt = base.Add(time.Duration(f.rand.Intn(72)+1) * time.Hour)

	for _, override := range overrides {
		override(comment)
	}
	return comment
}

// CreateComment constructs and persists a sample comment.
func (f *Factory) CreateComment(author *models.User, post *models.Post, parent *models.Comment, overrides ...func(*models.Comment)) (*models.Comment, error) {
	comment := f.BuildComment(author, post, parent, overrides...)
	if err := f.db.Create(comment).Error; err != nil {
		return nil, fmt.Errorf("seed comment: %w", err)
	}
	return comment, nil
}

func (f *Factory) randomTags() []string {
	n := f.rand.Intn(4) + 1
	picked := make([]string, 0, n)
	seen := map[string]bool{}
	for len(picked) < n {
		tag := tagPool[f.rand.Intn(len(tagPool))]
		if !seen[tag] {
			seen[tag] = true
			picked = append(picked, tag)
		}
	}
	return picked
}

func randomPostStatus(r *rand.Rand) models.PostStatus {
	switch r.Intn(10) {
	case 0, 1:
		return models.PostDraft
	case 2:
		return models.PostArchived
	default:
		return models.PostPublished
	}
}

func randomCommentStatus(r *rand.Rand) models.CommentStatus {
	switch r.Intn(10) {
	case 0, 1:
		return models.CommentPending
	case 2:
		return models.CommentRejected
	default:
		return models.CommentApproved
	}
}
