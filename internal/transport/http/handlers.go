package transporthttp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"example.com/engagement-analytics/internal/config"
	"example.com/engagement-analytics/internal/domain"
	spg "example.com/engagement-analytics/internal/storage/postgres"
)

// StatsReader is the aggregation surface the API serves. *postgres.DB
// satisfies it; tests substitute a fake.
type StatsReader interface {
	PostSummary(ctx context.Context, postID int64, periodDays int) (spg.PostSummary, error)
	AuthorSummary(ctx context.Context, authorID int64) (spg.AuthorSummary, error)
	TopCategories(ctx context.Context, metric domain.RankMetric, limit int) ([]spg.CategoryRank, error)
}

type ServerDeps struct {
	Cfg   config.Config
	Stats StatsReader
	Ready func(ctx context.Context) error
	Now   func() time.Time
	Log   zerolog.Logger
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// --- Health ---

func (d *ServerDeps) HandleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func (d *ServerDeps) HandleReadyz(w http.ResponseWriter, r *http.Request) {
	if err := d.Ready(r.Context()); err != nil {
		WriteProblem(w, http.StatusServiceUnavailable, "not ready", "database not reachable", nil)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ready"}`))
}

// --- Post engagement summary ---

type postSummaryResp struct {
	PostID         int64   `json:"post_id"`
	Title          string  `json:"title"`
	AuthorName     string  `json:"author_name"`
	Category       string  `json:"category"`
	PublishDate    string  `json:"publish_date"`
	Views          int64   `json:"views"`
	Likes          int64   `json:"likes"`
	Comments       int64   `json:"comments"`
	Shares         int64   `json:"shares"`
	Total          int64   `json:"total_engagements"`
	EngagementRate float64 `json:"engagement_rate"`
}

func (d *ServerDeps) HandlePostEngagement(w http.ResponseWriter, r *http.Request) {
	postID, err := strconv.ParseInt(r.PathValue("post_id"), 10, 64)
	if err != nil || postID < 1 {
		WriteProblem(w, http.StatusBadRequest, "invalid parameters", "post_id must be a positive integer", nil)
		return
	}

	period := r.URL.Query().Get("period")
	if period == "" {
		period = "7d"
	}
	days, err := domain.PeriodDays(period)
	if err != nil {
		WriteProblem(w, http.StatusBadRequest, "invalid parameters", err.Error(), nil)
		return
	}

	s, err := d.Stats.PostSummary(r.Context(), postID, days)
	if errors.Is(err, domain.ErrPostNotFound) {
		WriteProblem(w, http.StatusNotFound, "not found", "post "+strconv.FormatInt(postID, 10)+" not found", nil)
		return
	}
	if err != nil {
		d.Log.Error().Err(err).Int64("post_id", postID).Msg("post summary query failed")
		WriteProblem(w, http.StatusInternalServerError, "query error", err.Error(), nil)
		return
	}

	writeJSON(w, postSummaryResp{
		PostID:         s.PostID,
		Title:          s.Title,
		AuthorName:     s.AuthorName,
		Category:       s.Category,
		PublishDate:    s.PublishDate.Format("2006-01-02"),
		Views:          s.Views,
		Likes:          s.Likes,
		Comments:       s.Comments,
		Shares:         s.Shares,
		Total:          s.Total,
		EngagementRate: s.EngagementRate,
	})
}

// --- Author trends ---

func (d *ServerDeps) HandleAuthorTrends(w http.ResponseWriter, r *http.Request) {
	authorID, err := strconv.ParseInt(r.PathValue("author_id"), 10, 64)
	if err != nil || authorID < 1 {
		WriteProblem(w, http.StatusBadRequest, "invalid parameters", "author_id must be a positive integer", nil)
		return
	}

	s, err := d.Stats.AuthorSummary(r.Context(), authorID)
	if errors.Is(err, domain.ErrAuthorNotFound) {
		WriteProblem(w, http.StatusNotFound, "not found", "author "+strconv.FormatInt(authorID, 10)+" not found", nil)
		return
	}
	if err != nil {
		d.Log.Error().Err(err).Int64("author_id", authorID).Msg("author summary query failed")
		WriteProblem(w, http.StatusInternalServerError, "query error", err.Error(), nil)
		return
	}
	writeJSON(w, s)
}

// --- Category ranking ---

func (d *ServerDeps) HandleTopCategories(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	metricStr := q.Get("metric")
	if metricStr == "" {
		metricStr = string(domain.MetricEngagement)
	}
	metric, err := domain.ParseRankMetric(metricStr)
	if err != nil {
		WriteProblem(w, http.StatusBadRequest, "invalid parameters", err.Error(), nil)
		return
	}

	limit := 10
	if s := q.Get("limit"); s != "" {
		limit, err = strconv.Atoi(s)
		if err != nil {
			WriteProblem(w, http.StatusBadRequest, "invalid parameters", "limit must be an integer", nil)
			return
		}
	}
	if err := domain.ValidateRankingLimit(limit); err != nil {
		WriteProblem(w, http.StatusBadRequest, "invalid parameters", err.Error(), nil)
		return
	}

	rows, err := d.Stats.TopCategories(r.Context(), metric, limit)
	if err != nil {
		d.Log.Error().Err(err).Str("metric", string(metric)).Msg("category ranking query failed")
		WriteProblem(w, http.StatusInternalServerError, "query error", err.Error(), nil)
		return
	}
	if rows == nil {
		rows = []spg.CategoryRank{}
	}
	writeJSON(w, rows)
}

// --- Router ---

func (d *ServerDeps) Router() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", d.HandleHealthz)
	mux.HandleFunc("GET /readyz", d.HandleReadyz)

	auth := APIKeyAuth(d.Cfg.APIKeySet())
	limit := RateLimitPerMinute(d.Cfg.RateLimitPerMin, d.Now)
	guard := func(h http.HandlerFunc) http.Handler {
		return auth(limit(h))
	}

	mux.Handle("GET /engagement/{post_id}", guard(d.HandlePostEngagement))
	mux.Handle("GET /author/{author_id}/trends", guard(d.HandleAuthorTrends))
	mux.Handle("GET /categories/top", guard(d.HandleTopCategories))

	return mux
}
