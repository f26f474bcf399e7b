package community

import (
	"context"
	"errors"
	"fmt"
	"time"

	"croppulse/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepo implements CommunityRepository on Postgres.
type PostgresRepo struct {
	db *pgxpool.Pool
}

// NewPostgresRepo creates a community repository backed by the pool.
func NewPostgresRepo(db *pgxpool.Pool) *PostgresRepo {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) ListCategories(ctx context.Context) ([]*models.ForumCategory, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, description, icon, display_order, is_active, created_at
		FROM forum_categories WHERE is_active ORDER BY display_order, name`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var out []*models.ForumCategory
	for rows.Next() {
		var c models.ForumCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Icon, &c.Order, &c.IsActive, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) CreateCategory(ctx context.Context, c *models.ForumCategory) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	c.CreatedAt = time.Now().UTC()
	_, err := r.db.Exec(ctx, `
		INSERT INTO forum_categories (id, name, description, icon, display_order, is_active, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		c.ID, c.Name, c.Description, c.Icon, c.Order, c.IsActive, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

const postColumns = `
	id, category_id, author_id, title, content, tags,
	views_count, likes_count, replies_count,
	is_pinned, is_locked, is_approved, is_flagged,
	created_at, updated_at`

func scanPost(row pgx.Row) (*models.ForumPost, error) {
	var p models.ForumPost
	err := row.Scan(
		&p.ID, &p.CategoryID, &p.AuthorID, &p.Title, &p.Content, &p.Tags,
		&p.ViewsCount, &p.LikesCount, &p.RepliesCount,
		&p.IsPinned, &p.IsLocked, &p.IsApproved, &p.IsFlagged,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan post: %w", err)
	}
	return &p, nil
}

func (r *PostgresRepo) CreatePost(ctx context.Context, p *models.ForumPost) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	_, err := r.db.Exec(ctx, `
		INSERT INTO forum_posts (
			id, category_id, author_id, title, content, tags,
			views_count, likes_count, replies_count,
			is_pinned, is_locked, is_approved, is_flagged,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,0,0,0,FALSE,FALSE,$7,FALSE,$8,$8)`,
		p.ID, p.CategoryID, p.AuthorID, p.Title, p.Content, p.Tags, p.IsApproved, now)
	if err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

func (r *PostgresRepo) GetPost(ctx context.Context, id string) (*models.ForumPost, error) {
	query := `SELECT` + postColumns + ` FROM forum_posts WHERE id = $1`
	return scanPost(r.db.QueryRow(ctx, query, id))
}

func (r *PostgresRepo) ListPosts(ctx context.Context, categoryID string, limit, offset int) ([]*models.ForumPost, int, error) {
	where := `WHERE is_approved`
	args := []any{}
	if categoryID != "" {
		args = append(args, categoryID)
		where += fmt.Sprintf(` AND category_id = $%d`, len(args))
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM forum_posts `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count posts: %w", err)
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT`+postColumns+`
		FROM forum_posts %s ORDER BY is_pinned DESC, created_at DESC LIMIT $%d OFFSET $%d`,
		where, len(args)-1, len(args))
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var out []*models.ForumPost
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *PostgresRepo) TrendingPosts(ctx context.Context, since time.Time, limit int) ([]*models.ForumPost, error) {
	query := `SELECT` + postColumns + `
		FROM forum_posts
		WHERE is_approved AND created_at >= $1
		ORDER BY (views_count + likes_count * 3 + replies_count * 5) DESC
		LIMIT $2`
	rows, err := r.db.Query(ctx, query, since, limit)
	if err != nil {
		return nil, fmt.Errorf("list trending posts: %w", err)
	}
	defer rows.Close()

	var out []*models.ForumPost
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) IncrementViews(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE forum_posts SET views_count = views_count + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("increment views: %w", err)
	}
	return nil
}

func (r *PostgresRepo) LikePost(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE forum_posts SET likes_count = likes_count + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("like post: %w", err)
	}
	return nil
}

func (r *PostgresRepo) FlagPost(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE forum_posts SET is_flagged = TRUE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("flag post: %w", err)
	}
	return nil
}

func (r *PostgresRepo) SetPostPinned(ctx context.Context, id string, pinned bool) error {
	_, err := r.db.Exec(ctx,
		`UPDATE forum_posts SET is_pinned = $2, updated_at = NOW() WHERE id = $1`, id, pinned)
	if err != nil {
		return fmt.Errorf("pin post: %w", err)
	}
	return nil
}

func (r *PostgresRepo) SetPostLocked(ctx context.Context, id string, locked bool) error {
	_, err := r.db.Exec(ctx,
		`UPDATE forum_posts SET is_locked = $2, updated_at = NOW() WHERE id = $1`, id, locked)
	if err != nil {
		return fmt.Errorf("lock post: %w", err)
	}
	return nil
}

func (r *PostgresRepo) CreateReply(ctx context.Context, rep *models.ForumReply) error {
	if rep.ID == "" {
		rep.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	rep.CreatedAt = now
	rep.UpdatedAt = now

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin reply tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var parentID any
	if rep.ParentID != "" {
		parentID = rep.ParentID
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO forum_replies (
			id, post_id, author_id, content, parent_id,
			likes_count, is_approved, is_flagged, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,0,$6,FALSE,$7,$7)`,
		rep.ID, rep.PostID, rep.AuthorID, rep.Content, parentID, rep.IsApproved, now)
	if err != nil {
		return fmt.Errorf("insert reply: %w", err)
	}
	_, err = tx.Exec(ctx,
		`UPDATE forum_posts SET replies_count = replies_count + 1, updated_at = NOW() WHERE id = $1`,
		rep.PostID)
	if err != nil {
		return fmt.Errorf("bump replies count: %w", err)
	}
	return tx.Commit(ctx)
}

func (r *PostgresRepo) ListReplies(ctx context.Context, postID string, limit, offset int) ([]*models.ForumReply, int, error) {
	var total int
	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM forum_replies WHERE post_id = $1 AND is_approved`,
		postID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count replies: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, post_id, author_id, content, COALESCE(parent_id::text, ''),
			likes_count, is_approved, is_flagged, created_at, updated_at
		FROM forum_replies
		WHERE post_id = $1 AND is_approved
		ORDER BY created_at
		LIMIT $2 OFFSET $3`, postID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list replies: %w", err)
	}
	defer rows.Close()

	var out []*models.ForumReply
	for rows.Next() {
		var rep models.ForumReply
		if err := rows.Scan(&rep.ID, &rep.PostID, &rep.AuthorID, &rep.Content, &rep.ParentID,
			&rep.LikesCount, &rep.IsApproved, &rep.IsFlagged, &rep.CreatedAt, &rep.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan reply: %w", err)
		}
		out = append(out, &rep)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *PostgresRepo) LikeReply(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE forum_replies SET likes_count = likes_count + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("like reply: %w", err)
	}
	return nil
}

func (r *PostgresRepo) Stats(ctx context.Context, since time.Time) (*models.CommunityStats, error) {
	var s models.CommunityStats
	err := r.db.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM forum_posts WHERE created_at >= $1),
			(SELECT COUNT(*) FROM forum_replies WHERE created_at >= $1),
			(SELECT COUNT(DISTINCT author_id) FROM (
				SELECT author_id FROM forum_posts WHERE created_at >= $1
				UNION
				SELECT author_id FROM forum_replies WHERE created_at >= $1
			) authors)`, since).
		Scan(&s.TotalPosts, &s.TotalReplies, &s.ActiveUsers)
	if err != nil {
		return nil, fmt.Errorf("community stats: %w", err)
	}
	return &s, nil
}
