package models

// StatsSnapshot is a point-in-time tuple of cross-entity counters. The
// counts are read inside a single transaction but carry no stronger
// cross-counter consistency guarantee.
type StatsSnapshot struct {
	TotalPosts       int64 `json:"totalPosts"`
	PublishedPosts   int64 `json:"publishedPosts"`
	DraftPosts       int64 `json:"draftPosts"`
	ArchivedPosts    int64 `json:"archivedPosts"`
	TotalComments    int64 `json:"totalComments"`
	ApprovedComments int64 `json:"approvedComments"`
	RejectedComments int64 `json:"rejectedComments"`
	TotalViews       int64 `json:"totalViews"`
	AdminUsers       int64 `json:"adminUsers"`
	RegularUsers     int64 `json:"regularUsers"`
}
