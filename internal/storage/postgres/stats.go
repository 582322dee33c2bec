package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"example.com/engagement-analytics/internal/domain"
)

// PostSummary is the per-post engagement rollup for a trailing window.
type PostSummary struct {
	PostID         int64     `json:"post_id"`
	Title          string    `json:"title"`
	AuthorName     string    `json:"author_name"`
	Category       string    `json:"category"`
	PublishDate    time.Time `json:"-"`
	Views          int64     `json:"views"`
	Likes          int64     `json:"likes"`
	Comments       int64     `json:"comments"`
	Shares         int64     `json:"shares"`
	Total          int64     `json:"total_engagements"`
	EngagementRate float64   `json:"engagement_rate"`
}

// AuthorSummary is the per-author rollup with trailing trend averages.
type AuthorSummary struct {
	AuthorID      int64   `json:"author_id"`
	AuthorName    string  `json:"author_name"`
	Category      string  `json:"category"`
	TotalPosts    int64   `json:"total_posts"`
	TotalEngaged  int64   `json:"total_engagements"`
	AvgEngagement float64 `json:"avg_engagement_per_post"`
	Trend7d       float64 `json:"trend_7d"`
	Trend30d      float64 `json:"trend_30d"`
}

// CategoryRank is one row of a category ranking.
type CategoryRank struct {
	Category      string  `json:"category"`
	TotalEngaged  int64   `json:"total_engagements"`
	TotalPosts    int64   `json:"total_posts"`
	AvgEngagement float64 `json:"avg_engagement_per_post"`
	TopAuthor     string  `json:"top_author"`
	Rank          int64   `json:"rank"`
}

// PostSummary aggregates engagement counts by type for one post over the
// trailing periodDays window. The engagement rate is
// 100 * (likes+comments+shares) / views, zero when views is zero.
// A nonexistent post yields domain.ErrPostNotFound.
func (db *DB) PostSummary(ctx context.Context, postID int64, periodDays int) (PostSummary, error) {
	const q = `
SELECT
  p.post_id,
  p.title,
  a.name AS author_name,
  p.category,
  p.publish_timestamp,
  COUNT(CASE WHEN e.type = 'view' THEN 1 END)::bigint AS views,
  COUNT(CASE WHEN e.type = 'like' THEN 1 END)::bigint AS likes,
  COUNT(CASE WHEN e.type = 'comment' THEN 1 END)::bigint AS comments,
  COUNT(CASE WHEN e.type = 'share' THEN 1 END)::bigint AS shares,
  COUNT(e.engagement_id)::bigint AS total_engagements,
  CASE
    WHEN COUNT(CASE WHEN e.type = 'view' THEN 1 END) > 0
    THEN ROUND(100.0 * COUNT(CASE WHEN e.type IN ('like','comment','share') THEN 1 END)
         / COUNT(CASE WHEN e.type = 'view' THEN 1 END), 2)
    ELSE 0
  END::float8 AS engagement_rate
FROM posts p
JOIN authors a ON p.author_id = a.author_id
LEFT JOIN engagements e ON p.post_id = e.post_id
  AND e.engaged_timestamp >= CURRENT_DATE - make_interval(days => $2)
WHERE p.post_id = $1
GROUP BY p.post_id, p.title, a.name, p.category, p.publish_timestamp`

	var s PostSummary
	err := db.Pool.QueryRow(ctx, q, postID, periodDays).Scan(
		&s.PostID, &s.Title, &s.AuthorName, &s.Category, &s.PublishDate,
		&s.Views, &s.Likes, &s.Comments, &s.Shares, &s.Total, &s.EngagementRate,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return PostSummary{}, domain.ErrPostNotFound
	}
	if err != nil {
		return PostSummary{}, fmt.Errorf("post summary: %w", err)
	}
	return s, nil
}

// AuthorSummary rolls up an author's posts and engagements, with 7- and
// 30-day trailing trend averages over post publish dates.
// A nonexistent author yields domain.ErrAuthorNotFound.
func (db *DB) AuthorSummary(ctx context.Context, authorID int64) (AuthorSummary, error) {
	const q = `
WITH author_engagement AS (
  SELECT
    a.author_id,
    a.name AS author_name,
    a.author_category,
    COUNT(DISTINCT p.post_id) AS total_posts,
    SUM(es.total_engagements) AS total_engagements,
    ROUND(AVG(es.total_engagements), 2) AS avg_engagement_per_post
  FROM authors a
  JOIN posts p ON a.author_id = p.author_id
  JOIN engagement_stats es ON p.post_id = es.post_id
  WHERE a.author_id = $1
  GROUP BY a.author_id, a.name, a.author_category
),
trend_7d AS (
  SELECT AVG(es.total_engagements) AS avg_7d
  FROM posts p
  JOIN engagement_stats es ON p.post_id = es.post_id
  WHERE p.author_id = $1
    AND p.publish_timestamp >= CURRENT_DATE - INTERVAL '7 days'
),
trend_30d AS (
  SELECT AVG(es.total_engagements) AS avg_30d
  FROM posts p
  JOIN engagement_stats es ON p.post_id = es.post_id
  WHERE p.author_id = $1
    AND p.publish_timestamp >= CURRENT_DATE - INTERVAL '30 days'
)
SELECT
  ae.author_id,
  ae.author_name,
  ae.author_category,
  ae.total_posts::bigint,
  ae.total_engagements::bigint,
  ae.avg_engagement_per_post::float8,
  COALESCE(t7.avg_7d, 0)::float8 AS trend_7d,
  COALESCE(t30.avg_30d, 0)::float8 AS trend_30d
FROM author_engagement ae
CROSS JOIN trend_7d t7
CROSS JOIN trend_30d t30`

	var s AuthorSummary
	err := db.Pool.QueryRow(ctx, q, authorID).Scan(
		&s.AuthorID, &s.AuthorName, &s.Category,
		&s.TotalPosts, &s.TotalEngaged, &s.AvgEngagement, &s.Trend7d, &s.Trend30d,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return AuthorSummary{}, domain.ErrAuthorNotFound
	}
	if err != nil {
		return AuthorSummary{}, fmt.Errorf("author summary: %w", err)
	}
	return s, nil
}

// TopCategories ranks categories by total engagement or post count. Each row
// carries the category's top author by engagement, "Unknown" when no author
// data is resolvable. Ties break on category name for a stable order.
func (db *DB) TopCategories(ctx context.Context, metric domain.RankMetric, limit int) ([]CategoryRank, error) {
	orderBy := "total_engagements DESC"
	if metric == domain.MetricPosts {
		orderBy = "total_posts DESC"
	}

	q := fmt.Sprintf(`
WITH category_stats AS (
  SELECT
    p.category,
    COUNT(DISTINCT p.post_id) AS total_posts,
    SUM(es.total_engagements) AS total_engagements,
    ROUND(AVG(es.total_engagements), 2) AS avg_engagement_per_post,
    (
      SELECT a.name
      FROM authors a
      JOIN posts p2 ON a.author_id = p2.author_id
      JOIN engagement_stats es2 ON p2.post_id = es2.post_id
      WHERE p2.category = p.category
      GROUP BY a.author_id, a.name
      ORDER BY SUM(es2.total_engagements) DESC, a.name ASC
      LIMIT 1
    ) AS top_author
  FROM posts p
  JOIN engagement_stats es ON p.post_id = es.post_id
  GROUP BY p.category
)
SELECT
  category,
  total_engagements::bigint,
  total_posts::bigint,
  avg_engagement_per_post::float8,
  top_author,
  ROW_NUMBER() OVER (ORDER BY %s, category ASC)::bigint AS rank
FROM category_stats
ORDER BY %s, category ASC
LIMIT $1`, orderBy, orderBy)

	rows, err := db.Pool.Query(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("top categories: %w", err)
	}
	defer rows.Close()

	var out []CategoryRank
	for rows.Next() {
		var r CategoryRank
		var topAuthor *string
		if err := rows.Scan(&r.Category, &r.TotalEngaged, &r.TotalPosts, &r.AvgEngagement, &topAuthor, &r.Rank); err != nil {
			return nil, fmt.Errorf("scan category rank: %w", err)
		}
		r.TopAuthor = "Unknown"
		if topAuthor != nil && *topAuthor != "" {
			r.TopAuthor = *topAuthor
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
