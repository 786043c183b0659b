package models

import "time"

// Rating bounds accepted by the rate endpoints, inclusive.
const (
	RatingMin = 1
	RatingMax = 10
)

// UserRating is one user's rating/watched state for a single title. The
// (user, title) pair is unique; rows are created on first rate or watched
// call and updated in place afterwards, never deleted.
//
// Rating is nil when the user has only marked the title watched without
// scoring it. WatchedDate is set iff Watched is true.
type UserRating struct {
	UserID      string     `json:"user_id"`
	TitleID     int64      `json:"title_id"`
	Rating      *int       `json:"rating"`
	Watched     bool       `json:"watched"`
	WatchedDate *time.Time `json:"watched_date"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// FriendRatedMovie is a movie ranked by the mean rating of other users.
type FriendRatedMovie struct {
	Movie
	AverageRating float64 `json:"average_rating"`
	RatingCount   int     `json:"rating_count"`
}

// WatchedItem is a title another user marked watched, tagged for the
// mixed movie/series recently-watched list.
type WatchedItem struct {
	MediaItem
	WatchedDate time.Time `json:"watched_date"`
}
