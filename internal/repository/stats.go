package repository

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/observability"

	"gorm.io/gorm"
)

// StatsRepository aggregates content counters for the admin dashboard.
type StatsRepository interface {
	Snapshot(ctx context.Context) (*models.StatsSnapshot, error)
}

type statsRepository struct {
	db *gorm.DB
}

// NewStatsRepository returns a new StatsRepository implementation.
func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepository{db: db}
}

// Snapshot gathers every counter inside one transaction so the numbers
// describe a single point in time.
func (r *statsRepository) Snapshot(ctx context.Context) (*models.StatsSnapshot, error) {
	defer observability.NewDatabaseMetrics(r.db).TrackQuery("snapshot", "stats")()

	var snap models.StatsSnapshot
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		type countQuery struct {
			dest  *int64
			model interface{}
			cond  []interface{}
		}
		counts := []countQuery{
			{&snap.TotalPosts, &models.Post{}, nil},
			{&snap.PublishedPosts, &models.Post{}, []interface{}{"status = ?", models.PostPublished}},
			{&snap.DraftPosts, &models.Post{}, []interface{}{"status = ?", models.PostDraft}},
			{&snap.ArchivedPosts, &models.Post{}, []interface{}{"status = ?", models.PostArchived}},
			{&snap.TotalComments, &models.Comment{}, nil},
			{&snap.ApprovedComments, &models.Comment{}, []interface{}{"status = ?", models.CommentApproved}},
			{&snap.RejectedComments, &models.Comment{}, []interface{}{"status = ?", models.CommentRejected}},
			{&snap.AdminUsers, &models.User{}, []interface{}{"role = ?", models.RoleAdmin}},
			{&snap.RegularUsers, &models.User{}, []interface{}{"role = ?", models.RoleUser}},
		}
		for _, q := range counts {
			db := tx.Model(q.model)
			if q.cond != nil {
				db = db.Where(q.cond[0], q.cond[1:]...)
			}
			if err := db.Count(q.dest).Error; err != nil {
				return err
			}
		}

		return tx.Model(&models.Post{}).
			Select("COALESCE(SUM(views), 0)").
			Scan(&snap.TotalViews).Error
	})
	if err != nil {
		return nil, err
	}
	return &snap, nil
}
