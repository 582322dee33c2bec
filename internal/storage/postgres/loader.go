package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"example.com/engagement-analytics/internal/domain"
	"example.com/engagement-analytics/internal/gen"
)

// Loader writes a generated dataset in strict dependency order: authors and
// posts before engagements (which reference post identity), then users and
// post metadata, then the aggregate refresh signal. Each batch is a single
// multi-row INSERT, committed atomically; the first failing batch aborts the
// load with no retry.
type Loader struct {
	db        *DB
	batchSize int
	log       zerolog.Logger
}

func NewLoader(db *DB, batchSize int, log zerolog.Logger) *Loader {
	if batchSize < 1 {
		batchSize = 1
	}
	return &Loader{db: db, batchSize: batchSize, log: log}
}

// LoadDataset persists all five record streams and refreshes the aggregates.
func (l *Loader) LoadDataset(ctx context.Context, ds *gen.Dataset) error {
	if err := l.insertAuthors(ctx, ds.Authors); err != nil {
		return fmt.Errorf("load authors: %w", err)
	}
	l.log.Info().Int("rows", len(ds.Authors)).Msg("authors loaded")

	if err := l.insertPosts(ctx, ds.Posts); err != nil {
		return fmt.Errorf("load posts: %w", err)
	}
	l.log.Info().Int("rows", len(ds.Posts)).Msg("posts loaded")

	if err := l.insertEngagements(ctx, ds.Engagements); err != nil {
		return fmt.Errorf("load engagements: %w", err)
	}
	l.log.Info().Int("rows", len(ds.Engagements)).Msg("engagements loaded")

	if err := l.insertUsers(ctx, ds.Users); err != nil {
		return fmt.Errorf("load users: %w", err)
	}
	l.log.Info().Int("rows", len(ds.Users)).Msg("users loaded")

	if err := l.insertPostMetadata(ctx, ds.Metadata); err != nil {
		return fmt.Errorf("load post metadata: %w", err)
	}
	l.log.Info().Int("rows", len(ds.Metadata)).Msg("post metadata loaded")

	if err := l.RefreshStats(ctx); err != nil {
		return fmt.Errorf("refresh aggregates: %w", err)
	}
	l.log.Info().Msg("engagement_stats refreshed")
	return nil
}

// RefreshStats recomputes the derived per-post rollups. Issued once, after
// all writes complete.
func (l *Loader) RefreshStats(ctx context.Context) error {
	_, err := l.db.Pool.Exec(ctx, "REFRESH MATERIALIZED VIEW engagement_stats")
	return err
}

func (l *Loader) insertAuthors(ctx context.Context, authors []domain.Author) error {
	rows := make([][]any, 0, len(authors))
	for _, a := range authors {
		rows = append(rows, []any{a.Name, a.JoinedDate, a.Category})
	}
	return l.insertBatched(ctx, "authors", []string{"name", "joined_date", "author_category"}, rows)
}

func (l *Loader) insertPosts(ctx context.Context, posts []domain.Post) error {
	rows := make([][]any, 0, len(posts))
	for _, p := range posts {
		rows = append(rows, []any{p.AuthorID, p.Category, p.PublishedAt, p.Title, p.ContentLength, p.HasMedia})
	}
	cols := []string{"author_id", "category", "publish_timestamp", "title", "content_length", "has_media"}
	return l.insertBatched(ctx, "posts", cols, rows)
}

func (l *Loader) insertEngagements(ctx context.Context, events []domain.Engagement) error {
	rows := make([][]any, 0, len(events))
	for _, e := range events {
		rows = append(rows, []any{e.PostID, string(e.Type), e.UserID, e.OccurredAt})
	}
	cols := []string{"post_id", "type", "user_id", "engaged_timestamp"}
	return l.insertBatched(ctx, "engagements", cols, rows)
}

func (l *Loader) insertUsers(ctx context.Context, users []domain.User) error {
	rows := make([][]any, 0, len(users))
	for _, u := range users {
		rows = append(rows, []any{u.SignupDate, u.Country, u.Segment})
	}
	return l.insertBatched(ctx, "users", []string{"signup_date", "country", "user_segment"}, rows)
}

func (l *Loader) insertPostMetadata(ctx context.Context, meta []domain.PostMetadata) error {
	rows := make([][]any, 0, len(meta))
	for _, m := range meta {
		rows = append(rows, []any{m.PostID, m.Tags, m.IsPromoted, m.Language})
	}
	cols := []string{"post_id", "tags", "is_promoted", "language"}
	return l.insertBatched(ctx, "post_metadata", cols, rows)
}

// insertBatched splits rows into batches and runs one multi-row INSERT per
// batch. Aborts on the first failed batch; earlier batches stay committed.
func (l *Loader) insertBatched(ctx context.Context, table string, cols []string, rows [][]any) error {
	for start := 0; start < len(rows); start += l.batchSize {
		end := start + l.batchSize
		if end > len(rows) {
			end = len(rows)
		}
		if err := l.execInsert(ctx, table, cols, rows[start:end]); err != nil {
			return fmt.Errorf("batch %d-%d: %w", start, end, err)
		}
	}
	return nil
}

func (l *Loader) execInsert(ctx context.Context, table string, cols []string, rows [][]any) error {
	if len(rows) == 0 {
		return nil
	}
	args := make([]any, 0, len(rows)*len(cols))
	for _, row := range rows {
		args = append(args, row...)
	}
	_, err := l.db.Pool.Exec(ctx, buildInsertSQL(table, cols, len(rows)), args...)
	return err
}

// buildInsertSQL renders a multi-row INSERT with positional placeholders.
func buildInsertSQL(table string, cols []string, rowCount int) string {
	placeholders := make([]string, 0, rowCount)
	argi := 1
	for i := 0; i < rowCount; i++ {
		ph := make([]string, 0, len(cols))
		for range cols {
			ph = append(ph, fmt.Sprintf("$%d", argi))
			argi++
		}
		placeholders = append(placeholders, "("+strings.Join(ph, ",")+")")
	}
	return "INSERT INTO " + table + " (" + strings.Join(cols, ",") + ") VALUES " +
		strings.Join(placeholders, ",")
}
