package domain

import "time"

// EngagementType enumerates the funnel stages, in decreasing depth.
type EngagementType string

const (
	TypeView    EngagementType = "view"
	TypeLike    EngagementType = "like"
	TypeComment EngagementType = "comment"
	TypeShare   EngagementType = "share"
)

// EngagementTypes lists all valid types in funnel order.
var EngagementTypes = []EngagementType{TypeView, TypeLike, TypeComment, TypeShare}

// Fixed enumerations shared by the generator and the persisted schema.
var (
	Categories   = []string{"Tech", "Lifestyle", "Business", "Health", "Finance", "Entertainment"}
	Countries    = []string{"US", "UK", "CA", "AU", "DE", "FR", "IN", "BR"}
	UserSegments = []string{"free", "trial", "subscriber", "enterprise"}
)

// Author is immutable once created. ID is assigned by persistence on insert;
// in-memory references are positional (1-based row order).
type Author struct {
	ID         int64     `json:"author_id,omitempty"`
	Name       string    `json:"name"`
	JoinedDate time.Time `json:"joined_date"`
	Category   string    `json:"category"`
}

// Post is created once by the entity factory and never mutated.
type Post struct {
	ID            int64     `json:"post_id,omitempty"`
	AuthorID      int64     `json:"author_id"`
	Category      string    `json:"category"`
	PublishedAt   time.Time `json:"publish_timestamp"`
	Title         string    `json:"title"`
	ContentLength int       `json:"content_length"`
	HasMedia      bool      `json:"has_media"`
}

// User is independent of posts; referenced only as the actor on an engagement.
type User struct {
	ID         int64     `json:"user_id,omitempty"`
	SignupDate time.Time `json:"signup_date"`
	Country    string    `json:"country"`
	Segment    string    `json:"user_segment"`
}

// Engagement is a single timestamped funnel event. Many per post.
type Engagement struct {
	PostID     int64          `json:"post_id"`
	Type       EngagementType `json:"type"`
	UserID     int64          `json:"user_id"`
	OccurredAt time.Time      `json:"engaged_timestamp"`
}

// PostMetadata carries ancillary post attributes loaded as the last stream.
type PostMetadata struct {
	PostID     int64    `json:"post_id"`
	Tags       []string `json:"tags"`
	IsPromoted bool     `json:"is_promoted"`
	Language   string   `json:"language"`
}
