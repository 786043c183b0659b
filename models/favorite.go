package models

import "time"

// Favorite is a user's saved title. The (user, content type, content id)
// triple is unique; adding an existing favorite returns the stored row
// instead of failing.
type Favorite struct {
	ID          int64     `json:"id"`
	UserID      string    `json:"user_id"`
	ContentType string    `json:"content_type"`
	ContentID   int64     `json:"content_id"`
	AddedAt     time.Time `json:"added_at"`
}

// FavoriteItem is a favorite resolved against its title record for listing.
type FavoriteItem struct {
	MediaItem
	AddedAt time.Time `json:"added_at"`
}
