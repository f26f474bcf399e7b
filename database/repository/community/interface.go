package community

import (
	"context"
	"time"

	"croppulse/models"
)

// CommunityRepository persists forum categories, posts and replies.
// Lookups return (nil, nil) when nothing matches.
type CommunityRepository interface {
	ListCategories(ctx context.Context) ([]*models.ForumCategory, error)
	CreateCategory(ctx context.Context, c *models.ForumCategory) error

	CreatePost(ctx context.Context, p *models.ForumPost) error
	GetPost(ctx context.Context, id string) (*models.ForumPost, error)
	ListPosts(ctx context.Context, categoryID string, limit, offset int) ([]*models.ForumPost, int, error)
	// TrendingPosts orders approved posts from the window by engagement.
	TrendingPosts(ctx context.Context, since time.Time, limit int) ([]*models.ForumPost, error)
	IncrementViews(ctx context.Context, id string) error
	LikePost(ctx context.Context, id string) error
	FlagPost(ctx context.Context, id string) error
	SetPostPinned(ctx context.Context, id string, pinned bool) error
	SetPostLocked(ctx context.Context, id string, locked bool) error

	CreateReply(ctx context.Context, rep *models.ForumReply) error
	ListReplies(ctx context.Context, postID string, limit, offset int) ([]*models.ForumReply, int, error)
	LikeReply(ctx context.Context, id string) error

	Stats(ctx context.Context, since time.Time) (*models.CommunityStats, error)
}
