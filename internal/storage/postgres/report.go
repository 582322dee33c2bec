package postgres

import (
	"context"
	"fmt"
	"time"
)

// Report queries back the terminal summary; they read the persisted dataset
// and the engagement_stats rollup only.

type DatasetTotals struct {
	Authors       int64
	Posts         int64
	Users         int64
	Engagements   int64
	AvgEngagement float64
	FirstPublish  time.Time
	LastPublish   time.Time
}

type CategoryPerformance struct {
	Category        string
	TotalPosts      int64
	TotalEngagement int64
	AvgEngagement   float64
	AvgViews        float64
	EngagementRate  float64
}

type HourlyActivity struct {
	Hour  int
	Count int64
}

func (db *DB) DatasetTotals(ctx context.Context) (DatasetTotals, error) {
	const q = `
SELECT
  (SELECT COUNT(*) FROM authors)::bigint,
  (SELECT COUNT(*) FROM posts)::bigint,
  (SELECT COUNT(*) FROM users)::bigint,
  (SELECT COUNT(*) FROM engagements)::bigint,
  COALESCE((SELECT ROUND(AVG(total_engagements), 2) FROM engagement_stats), 0)::float8,
  (SELECT MIN(publish_timestamp) FROM posts),
  (SELECT MAX(publish_timestamp) FROM posts)`

	var t DatasetTotals
	err := db.Pool.QueryRow(ctx, q).Scan(
		&t.Authors, &t.Posts, &t.Users, &t.Engagements,
		&t.AvgEngagement, &t.FirstPublish, &t.LastPublish,
	)
	if err != nil {
		return DatasetTotals{}, fmt.Errorf("dataset totals: %w", err)
	}
	return t, nil
}

func (db *DB) CategoryPerformance(ctx context.Context) ([]CategoryPerformance, error) {
	const q = `
SELECT
  category,
  COUNT(DISTINCT post_id)::bigint AS total_posts,
  SUM(total_engagements)::bigint AS total_engagement,
  ROUND(AVG(total_engagements), 2)::float8 AS avg_engagement,
  ROUND(AVG(view_count), 2)::float8 AS avg_views,
  CASE
    WHEN SUM(view_count) > 0
    THEN ROUND(100.0 * SUM(like_count + comment_count + share_count) / SUM(view_count), 2)
    ELSE 0
  END::float8 AS engagement_rate_pct
FROM engagement_stats
GROUP BY category
ORDER BY total_engagement DESC`

	rows, err := db.Pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("category performance: %w", err)
	}
	defer rows.Close()

	var out []CategoryPerformance
	for rows.Next() {
		var c CategoryPerformance
		if err := rows.Scan(&c.Category, &c.TotalPosts, &c.TotalEngagement, &c.AvgEngagement, &c.AvgViews, &c.EngagementRate); err != nil {
			return nil, fmt.Errorf("scan category performance: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// EngagementByHour counts all engagements per hour of day, busiest first.
func (db *DB) EngagementByHour(ctx context.Context) ([]HourlyActivity, error) {
	const q = `
SELECT
  EXTRACT(HOUR FROM engaged_timestamp)::int AS hour,
  COUNT(*)::bigint AS engagement_count
FROM engagements
GROUP BY hour
ORDER BY engagement_count DESC, hour ASC`

	rows, err := db.Pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("engagement by hour: %w", err)
	}
	defer rows.Close()

	var out []HourlyActivity
	for rows.Next() {
		var h HourlyActivity
		if err := rows.Scan(&h.Hour, &h.Count); err != nil {
			return nil, fmt.Errorf("scan hourly activity: %w", err)
		}
		out = append(out, h)
	}
	return out, rows.Err()
}
