// Package community backs the farmer discussion forum.
package community

import (
	"context"
	"errors"
	"time"

	communityRepo "croppulse/database/repository/community"
	"croppulse/models"

	"github.com/jonboulle/clockwork"
)

var (
	// ErrPostNotFound signals that no post matches the identifier.
	ErrPostNotFound = errors.New("post not found")
	// ErrPostLocked signals a reply against a locked post.
	ErrPostLocked = errors.New("post is locked")
)

// CommunityService manages forum categories, posts and replies.
type CommunityService interface {
	ListCategories(ctx context.Context) ([]*models.ForumCategory, error)
	CreateCategory(ctx context.Context, c *models.ForumCategory) error

	CreatePost(ctx context.Context, p *models.ForumPost) (*models.ForumPost, error)
	GetPost(ctx context.Context, id string) (*models.ForumPost, error)
	ListPosts(ctx context.Context, categoryID string, limit, offset int) ([]*models.ForumPost, int, error)
	TrendingPosts(ctx context.Context, limit int) ([]*models.ForumPost, error)
	LikePost(ctx context.Context, id string) error
	FlagPost(ctx context.Context, id string) error
	PinPost(ctx context.Context, id string, pinned bool) error
	LockPost(ctx context.Context, id string, locked bool) error

	CreateReply(ctx context.Context, rep *models.ForumReply) (*models.ForumReply, error)
	ListReplies(ctx context.Context, postID string, limit, offset int) ([]*models.ForumReply, int, error)
	LikeReply(ctx context.Context, id string) error

	Stats(ctx context.Context, days int) (*models.CommunityStats, error)
}

// DefaultCommunityService is the production implementation.
type DefaultCommunityService struct {
	Repo  communityRepo.CommunityRepository
	Clock clockwork.Clock
}

func (s *DefaultCommunityService) now() time.Time {
	if s.Clock != nil {
		return s.Clock.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *DefaultCommunityService) ListCategories(ctx context.Context) ([]*models.ForumCategory, error) {
	return s.Repo.ListCategories(ctx)
}

func (s *DefaultCommunityService) CreateCategory(ctx context.Context, c *models.ForumCategory) error {
	c.IsActive = true
	return s.Repo.CreateCategory(ctx, c)
}

// CreatePost stores a post. Posts go live immediately; moderation flips
// is_approved off after the fact when needed.
func (s *DefaultCommunityService) CreatePost(ctx context.Context, p *models.ForumPost) (*models.ForumPost, error) {
	p.IsApproved = true
	if err := s.Repo.CreatePost(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetPost returns a post and counts the view.
func (s *DefaultCommunityService) GetPost(ctx context.Context, id string) (*models.ForumPost, error) {
	p, err := s.Repo.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPostNotFound
	}
	if err := s.Repo.IncrementViews(ctx, id); err == nil {
		p.ViewsCount++
	}
	return p, nil
}

func (s *DefaultCommunityService) ListPosts(ctx context.Context, categoryID string, limit, offset int) ([]*models.ForumPost, int, error) {
	return s.Repo.ListPosts(ctx, categoryID, limit, offset)
}

// TrendingPosts ranks the last week's posts by engagement.
func (s *DefaultCommunityService) TrendingPosts(ctx context.Context, limit int) ([]*models.ForumPost, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.Repo.TrendingPosts(ctx, s.now().AddDate(0, 0, -7), limit)
}

func (s *DefaultCommunityService) LikePost(ctx context.Context, id string) error {
	if _, err := s.requirePost(ctx, id); err != nil {
		return err
	}
	return s.Repo.LikePost(ctx, id)
}

func (s *DefaultCommunityService) FlagPost(ctx context.Context, id string) error {
	if _, err := s.requirePost(ctx, id); err != nil {
		return err
	}
	return s.Repo.FlagPost(ctx, id)
}

func (s *DefaultCommunityService) PinPost(ctx context.Context, id string, pinned bool) error {
	if _, err := s.requirePost(ctx, id); err != nil {
		return err
	}
	return s.Repo.SetPostPinned(ctx, id, pinned)
}

func (s *DefaultCommunityService) LockPost(ctx context.Context, id string, locked bool) error {
	if _, err := s.requirePost(ctx, id); err != nil {
		return err
	}
	return s.Repo.SetPostLocked(ctx, id, locked)
}

func (s *DefaultCommunityService) requirePost(ctx context.Context, id string) (*models.ForumPost, error) {
	p, err := s.Repo.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPostNotFound
	}
	return p, nil
}

func (s *DefaultCommunityService) CreateReply(ctx context.Context, rep *models.ForumReply) (*models.ForumReply, error) {
	p, err := s.requirePost(ctx, rep.PostID)
	if err != nil {
		return nil, err
	}
	if p.IsLocked {
		return nil, ErrPostLocked
	}
	rep.IsApproved = true
	if err := s.Repo.CreateReply(ctx, rep); err != nil {
		return nil, err
	}
	return rep, nil
}

func (s *DefaultCommunityService) ListReplies(ctx context.Context, postID string, limit, offset int) ([]*models.ForumReply, int, error) {
	if _, err := s.requirePost(ctx, postID); err != nil {
		return nil, 0, err
	}
	return s.Repo.ListReplies(ctx, postID, limit, offset)
}

func (s *DefaultCommunityService) LikeReply(ctx context.Context, id string) error {
	return s.Repo.LikeReply(ctx, id)
}

func (s *DefaultCommunityService) Stats(ctx context.Context, days int) (*models.CommunityStats, error) {
	if days <= 0 {
		days = 30
	}
	stats, err := s.Repo.Stats(ctx, s.now().AddDate(0, 0, -days))
	if err != nil {
		return nil, err
	}
	stats.PeriodDays = days
	return stats, nil
}
