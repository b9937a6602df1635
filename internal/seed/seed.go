package seed

import (
	"fmt"
	"log"

	"inkwell/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// DefaultOptions is the preset used by `cmd/seed` and the dev bootstrap.
var DefaultOptions = Options{
	NumUsers: 12,
	NumPosts: 40,
}

// Run seeds the database with the default preset.
func Run(db *gorm.DB) error {
	return Seed(db, DefaultOptions)
}

// Seed populates the database with demo users, posts and threaded
// comments in mixed moderation states.
func Seed(db *gorm.DB, opts Options) error {
	if opts.NumUsers <= 0 {
		opts.NumUsers = DefaultOptions.NumUsers
	}
	if opts.NumPosts <= 0 {
		opts.NumPosts = DefaultOptions.NumPosts
	}

	if opts.ShouldClean {
		if err := Clean(db); err != nil {
			return err
		}
	}

	f := NewFactory(db)

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := f.CreateUser(func(u *models.User) {
			// a couple of unverified stragglers exercise the mutation gate
			if i%6 == 5 {
				u.EmailVerified = false
			}
		})
		if err != nil {
			return err
		}
		users = append(users, user)
	}

	posts := make([]*models.Post, 0, opts.NumPosts)
	for i := 0; i < opts.NumPosts; i++ {
		author := users[f.rand.Intn(len(users))]
		post, err := f.CreatePost(author)
		if err != nil {
			return err
		}
		posts = append(posts, post)
	}

	commentCount := 0
	for _, post := range posts {
		if post.Status != models.PostPublished {
			continue
		}
		roots := f.rand.Intn(5)
		for i := 0; i < roots; i++ {
			author := users[f.rand.Intn(len(users))]
			root, err := f.CreateComment(author, post, nil)
			if err != nil {
				return err
			}
			commentCount++

			replies := f.rand.Intn(3)
			for j := 0; j < replies; j++ {
				replier := users[f.rand.Intn(len(users))]
				if _, err := f.CreateComment(replier, post, root); err != nil {
					return err
				}
				commentCount++
			}
		}
	}

	log.Printf("seeded %d users, %d posts, %d comments", len(users), len(posts), commentCount)
	return nil
}

// Clean removes all seedable content. Comments go first because of the
// post and parent foreign keys.
func Clean(db *gorm.DB) error {
	for _, model := range []interface{}{&models.Comment{}, &models.Post{}, &models.User{}} {
		if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return fmt.Errorf("clean %T: %w", model, err)
		}
	}
	return nil
}
