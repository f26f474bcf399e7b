package models

import "time"

// ForumCategory groups forum posts.
type ForumCategory struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon,omitempty"`
	Order       int       `json:"order"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// ForumPost is a community discussion post.
type ForumPost struct {
	ID         string   `json:"id"`
	CategoryID string   `json:"category_id"`
	AuthorID   string   `json:"author_id"`
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	Tags       []string `json:"tags"`

	ViewsCount   int `json:"views_count"`
	LikesCount   int `json:"likes_count"`
	RepliesCount int `json:"replies_count"`

	IsPinned   bool `json:"is_pinned"`
	IsLocked   bool `json:"is_locked"`
	IsApproved bool `json:"is_approved"`
	IsFlagged  bool `json:"is_flagged"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ForumReply is a reply to a forum post, optionally nested under a parent
// reply.
type ForumReply struct {
	ID         string    `json:"id"`
	PostID     string    `json:"post_id"`
	AuthorID   string    `json:"author_id"`
	Content    string    `json:"content"`
	ParentID   string    `json:"parent_id,omitempty"`
	LikesCount int       `json:"likes_count"`
	IsApproved bool      `json:"is_approved"`
	IsFlagged  bool      `json:"is_flagged"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CommunityStats summarizes forum engagement over a window.
type CommunityStats struct {
	PeriodDays   int `json:"period_days"`
	TotalPosts   int `json:"total_posts"`
	TotalReplies int `json:"total_replies"`
	ActiveUsers  int `json:"active_users"`
}
