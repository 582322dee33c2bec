package gen

import "time"

// Config is the full generation parameter surface. Zero values are not
// usable; construct via config.Parse (env layer) or DefaultConfig in tests.
type Config struct {
	Seed    int64
	Workers int

	Authors int
	Posts   int
	Users   int

	// MaxEngagements caps the total event count via uniform downsampling.
	// Zero or negative disables the cap.
	MaxEngagements int

	BaseViewsMin int
	BaseViewsMax int

	ViewToLikeRatio     float64
	LikeToCommentRatio  float64
	CommentToShareRatio float64

	ViralityProb      float64
	ViralityMinFactor int
	ViralityMaxFactor int

	MediaProb    float64
	PromotedProb float64

	AuthorJoinStart time.Time
	AuthorJoinDays  int
	PostStart       time.Time
	PostEnd         time.Time
	UserSignupStart time.Time
	UserSignupDays  int
}

// DefaultConfig mirrors the production defaults at a given seed.
func DefaultConfig(seed int64) Config {
	return Config{
		Seed:    seed,
		Workers: 4,

		Authors: 50,
		Posts:   10000,
		Users:   5000,

		MaxEngagements: 50000,

		BaseViewsMin: 50,
		BaseViewsMax: 500,

		ViewToLikeRatio:     0.15,
		LikeToCommentRatio:  0.10,
		CommentToShareRatio: 0.05,

		ViralityProb:      0.05,
		ViralityMinFactor: 5,
		ViralityMaxFactor: 20,

		MediaProb:    0.60,
		PromotedProb: 0.05,

		AuthorJoinStart: time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC),
		AuthorJoinDays:  2500,
		PostStart:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		PostEnd:         time.Date(2025, 11, 18, 0, 0, 0, 0, time.UTC),
		UserSignupStart: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		UserSignupDays:  1800,
	}
}
