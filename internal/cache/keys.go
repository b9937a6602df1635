package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix     = "user:%s"
	PostKeyPrefix     = "post:%s"
	PostListKeyPrefix = "posts:list:%s"
	StatsKey          = "stats:snapshot"
)

const (
	UserTTL     = 5 * time.Minute
	PostTTL     = 10 * time.Minute
	PostListTTL = 1 * time.Minute
	StatsTTL    = 2 * time.Minute
)

func UserKey(userID string) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func PostKey(postID string) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

// PostListKey identifies a cached page of the post listing. The variant
// encodes the page and limit so distinct pages invalidate together under
// the shared prefix.
func PostListKey(variant string) string {
	return fmt.Sprintf(PostListKeyPrefix, variant)
}

func Invalidate(ctx context.Context, keys ...string) {
	if client == nil {
		return
	}
	for _, key := range keys {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID string) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidatePost(ctx context.Context, postID string) {
	Invalidate(ctx, PostKey(postID))
}

// InvalidatePostLists drops every cached listing page. Write paths call
// this after any post mutation so stale pages never outlive a change by
// more than one round trip.
func InvalidatePostLists(ctx context.Context) {
	if client == nil {
		return
	}
	iter := client.Scan(ctx, 0, "posts:list:*", 100).Iterator()
	for iter.Next(ctx) {
		client.Del(ctx, iter.Val())
	}
}

func InvalidateStats(ctx context.Context) {
	Invalidate(ctx, StatsKey)
}
