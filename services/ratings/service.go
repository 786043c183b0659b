// Package ratings implements the rate / mark-watched / rating-lookup
// operations shared by movies and series.
package ratings

import (
	"context"
	"time"

	"reelbase/models"
	"reelbase/store"
)

// Store is the slice of the query layer the ratings service needs.
type Store interface {
	Rating(ctx context.Context, mediaType, userID string, titleID int64) (*models.UserRating, error)
	UpsertRating(ctx context.Context, mediaType, userID string, titleID int64, rating int) (*models.UserRating, error)
	UpsertWatched(ctx context.Context, mediaType, userID string, titleID int64, watched bool, watchedDate *time.Time) (*models.UserRating, error)
}

var _ Store = (*store.Store)(nil)

// Service exposes the rating operations.
type Service struct {
	store Store
	now   func() time.Time
}

// NewService returns a ratings service over the given store.
func NewService(s Store) *Service {
	return &Service{store: s, now: time.Now}
}

// Get returns the user's rating row for a title, or nil when the user has
// never rated or watched it. Absence is a valid state, not an error.
func (s *Service) Get(ctx context.Context, mediaType, userID string, titleID int64) (*models.UserRating, error) {
	if userID == "" {
		return nil, models.Invalid("userId is required")
	}
	rating, err := s.store.Rating(ctx, mediaType, userID, titleID)
	if err != nil {
		return nil, models.Upstream(err)
	}
	return rating, nil
}

// Rate upserts the user's score for a title. Only the rating and
// updated_at columns change; watched state is preserved.
func (s *Service) Rate(ctx context.Context, mediaType, userID string, titleID int64, rating int) (*models.UserRating, error) {
	if userID == "" {
		return nil, models.Invalid("userId is required")
	}
	if rating < models.RatingMin || rating > models.RatingMax {
		return nil, models.Invalid("rating must be between %d and %d", models.RatingMin, models.RatingMax)
	}
	row, err := s.store.UpsertRating(ctx, mediaType, userID, titleID, rating)
	if err != nil {
		return nil, models.Upstream(err)
	}
	return row, nil
}

// SetWatched upserts the user's watched flag for a title. The watched date
// moves in lock-step with the flag: set to now when watched, cleared when
// not. Any existing rating is preserved.
func (s *Service) SetWatched(ctx context.Context, mediaType, userID string, titleID int64, watched bool) (*models.UserRating, error) {
	if userID == "" {
		return nil, models.Invalid("userId is required")
	}
	var watchedDate *time.Time
	if watched {
		now := s.now().UTC()
		watchedDate = &now
	}
	row, err := s.store.UpsertWatched(ctx, mediaType, userID, titleID, watched, watchedDate)
	if err != nil {
		return nil, models.Upstream(err)
	}
	return row, nil
}
