package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	FeedKeyName       = "feed:front"
	ImageKeyPrefix    = "image:%d"
	CommentsKeyPrefix = "image:%d:comments"
	UserImagesPrefix  = "user:%d:images"
)

const (
	FeedTTL       = 30 * time.Second
	ImageTTL      = 2 * time.Minute
	CommentsTTL   = 1 * time.Minute
	UserImagesTTL = 1 * time.Minute
)

// FeedKey is the cache key for the first page of the global feed. Later
// pages change too quickly relative to their hit rate to be worth caching.
func FeedKey() string {
	return FeedKeyName
}

func ImageKey(imageID uint) string {
	return fmt.Sprintf(ImageKeyPrefix, imageID)
}

func CommentsKey(imageID uint) string {
	return fmt.Sprintf(CommentsKeyPrefix, imageID)
}

func UserImagesKey(userID uint) string {
	return fmt.Sprintf(UserImagesPrefix, userID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidateFeed drops the cached front page of the global feed.
func InvalidateFeed(ctx context.Context) {
	Invalidate(ctx, FeedKey())
}

// InvalidateImage drops every cache entry derived from the image: the
// hydrated view, its comment list, and the feed page that embeds it.
func InvalidateImage(ctx context.Context, imageID uint) {
	Invalidate(ctx, ImageKey(imageID))
	Invalidate(ctx, CommentsKey(imageID))
	InvalidateFeed(ctx)
}

// InvalidateUserImages drops one user's cached image list.
func InvalidateUserImages(ctx context.Context, userID uint) {
	Invalidate(ctx, UserImagesKey(userID))
}
