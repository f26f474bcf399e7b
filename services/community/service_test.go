package community

import (
	"context"
	"testing"
	"time"

	"croppulse/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCommunityRepo struct {
	posts   map[string]*models.ForumPost
	replies []*models.ForumReply
	views   map[string]int
}

func newFakeCommunityRepo() *fakeCommunityRepo {
	return &fakeCommunityRepo{posts: map[string]*models.ForumPost{}, views: map[string]int{}}
}

func (f *fakeCommunityRepo) ListCategories(context.Context) ([]*models.ForumCategory, error) {
	return nil, nil
}
func (f *fakeCommunityRepo) CreateCategory(context.Context, *models.ForumCategory) error {
	return nil
}

func (f *fakeCommunityRepo) CreatePost(_ context.Context, p *models.ForumPost) error {
	if p.ID == "" {
		p.ID = "post-1"
	}
	f.posts[p.ID] = p
	return nil
}

func (f *fakeCommunityRepo) GetPost(_ context.Context, id string) (*models.ForumPost, error) {
	return f.posts[id], nil
}

func (f *fakeCommunityRepo) ListPosts(context.Context, string, int, int) ([]*models.ForumPost, int, error) {
	return nil, 0, nil
}
func (f *fakeCommunityRepo) TrendingPosts(context.Context, time.Time, int) ([]*models.ForumPost, error) {
	return nil, nil
}

func (f *fakeCommunityRepo) IncrementViews(_ context.Context, id string) error {
	f.views[id]++
	return nil
}

func (f *fakeCommunityRepo) LikePost(context.Context, string) error            { return nil }
func (f *fakeCommunityRepo) FlagPost(context.Context, string) error            { return nil }
func (f *fakeCommunityRepo) SetPostPinned(context.Context, string, bool) error { return nil }

func (f *fakeCommunityRepo) SetPostLocked(_ context.Context, id string, locked bool) error {
	f.posts[id].IsLocked = locked
	return nil
}

func (f *fakeCommunityRepo) CreateReply(_ context.Context, rep *models.ForumReply) error {
	rep.ID = "reply-1"
	f.replies = append(f.replies, rep)
	return nil
}

func (f *fakeCommunityRepo) ListReplies(context.Context, string, int, int) ([]*models.ForumReply, int, error) {
	return nil, 0, nil
}
func (f *fakeCommunityRepo) LikeReply(context.Context, string) error { return nil }

func (f *fakeCommunityRepo) Stats(context.Context, time.Time) (*models.CommunityStats, error) {
	return &models.CommunityStats{TotalPosts: 4, TotalReplies: 9, ActiveUsers: 3}, nil
}

func TestCreatePostGoesLiveImmediately(t *testing.T) {
	repo := newFakeCommunityRepo()
	svc := &DefaultCommunityService{Repo: repo}

	p, err := svc.CreatePost(context.Background(), &models.ForumPost{
		AuthorID: "farmer-1",
		Title:    "Best maize variety for Nakuru?",
		Content:  "Which variety handles the short rains best?",
	})
	require.NoError(t, err)
	assert.True(t, p.IsApproved)
}

func TestGetPostCountsView(t *testing.T) {
	repo := newFakeCommunityRepo()
	repo.posts["post-1"] = &models.ForumPost{ID: "post-1", ViewsCount: 4}
	svc := &DefaultCommunityService{Repo: repo}

	p, err := svc.GetPost(context.Background(), "post-1")
	require.NoError(t, err)
	assert.Equal(t, 5, p.ViewsCount)
	assert.Equal(t, 1, repo.views["post-1"])
}

func TestGetPostUnknown(t *testing.T) {
	svc := &DefaultCommunityService{Repo: newFakeCommunityRepo()}
	_, err := svc.GetPost(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestCreateReplyOnLockedPost(t *testing.T) {
	repo := newFakeCommunityRepo()
	repo.posts["post-1"] = &models.ForumPost{ID: "post-1", IsLocked: true}
	svc := &DefaultCommunityService{Repo: repo}

	_, err := svc.CreateReply(context.Background(), &models.ForumReply{
		PostID:   "post-1",
		AuthorID: "farmer-2",
		Content:  "try DH04",
	})
	assert.ErrorIs(t, err, ErrPostLocked)
	assert.Empty(t, repo.replies)
}

func TestCreateReplySucceeds(t *testing.T) {
	repo := newFakeCommunityRepo()
	repo.posts["post-1"] = &models.ForumPost{ID: "post-1"}
	svc := &DefaultCommunityService{Repo: repo}

	rep, err := svc.CreateReply(context.Background(), &models.ForumReply{
		PostID:   "post-1",
		AuthorID: "farmer-2",
		Content:  "try DH04",
	})
	require.NoError(t, err)
	assert.True(t, rep.IsApproved)
	assert.Len(t, repo.replies, 1)
}

func TestStatsDefaultsWindow(t *testing.T) {
	svc := &DefaultCommunityService{Repo: newFakeCommunityRepo()}
	stats, err := svc.Stats(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 30, stats.PeriodDays)
	assert.Equal(t, 4, stats.TotalPosts)
}
