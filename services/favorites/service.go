// Package favorites implements the user favorites operations: idempotent
// add and remove plus the resolved favorites listing.
package favorites

import (
	"context"
	"sort"

	"github.com/sourcegraph/conc/pool"

	"reelbase/models"
	"reelbase/store"
)

// Store is the slice of the query layer the favorites service needs.
type Store interface {
	InsertFavorite(ctx context.Context, userID, contentType string, contentID int64) (*models.Favorite, bool, error)
	DeleteFavorite(ctx context.Context, userID, contentType string, contentID int64) error
	FavoritesByUser(ctx context.Context, userID string) ([]models.Favorite, error)
	MoviesByIDs(ctx context.Context, ids []int64, limit, offset int) ([]models.Movie, error)
	SeriesByIDs(ctx context.Context, ids []int64) ([]models.Series, error)
}

var _ Store = (*store.Store)(nil)

// Service exposes the favorites operations.
type Service struct {
	store Store
}

// NewService returns a favorites service over the given store.
func NewService(s Store) *Service {
	return &Service{store: s}
}

func validContentType(contentType string) bool {
	return contentType == models.MediaTypeMovie || contentType == models.MediaTypeSeries
}

// Add saves a favorite. Adding the same title twice returns the existing
// row with created=false instead of an error.
func (s *Service) Add(ctx context.Context, userID, contentType string, contentID int64) (*models.Favorite, bool, error) {
	if userID == "" {
		return nil, false, models.Invalid("userId is required")
	}
	if !validContentType(contentType) {
		return nil, false, models.Invalid("contentType must be movie or series")
	}
	if contentID < 1 {
		return nil, false, models.Invalid("contentId must be a positive integer id")
	}

	fav, created, err := s.store.InsertFavorite(ctx, userID, contentType, contentID)
	if err != nil {
		return nil, false, models.Upstream(err)
	}
	return fav, created, nil
}

// Remove deletes a favorite. Removing a favorite that does not exist still
// succeeds.
func (s *Service) Remove(ctx context.Context, userID, contentType string, contentID int64) error {
	if userID == "" {
		return models.Invalid("userId is required")
	}
	if !validContentType(contentType) {
		return models.Invalid("contentType must be movie or series")
	}
	if err := s.store.DeleteFavorite(ctx, userID, contentType, contentID); err != nil {
		return models.Upstream(err)
	}
	return nil
}

// List returns a page of the user's favorites resolved against their title
// records, newest first. The movie and series lookups are independent and
// run concurrently. Favorites whose title no longer resolves are dropped.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]models.FavoriteItem, error) {
	if userID == "" {
		return nil, models.Invalid("userId is required")
	}

	favs, err := s.store.FavoritesByUser(ctx, userID)
	if err != nil {
		return nil, models.Upstream(err)
	}
	if len(favs) == 0 {
		return []models.FavoriteItem{}, nil
	}

	var movieIDs, seriesIDs []int64
	for _, f := range favs {
		switch f.ContentType {
		case models.MediaTypeMovie:
			movieIDs = append(movieIDs, f.ContentID)
		case models.MediaTypeSeries:
			seriesIDs = append(seriesIDs, f.ContentID)
		}
	}

	var (
		movies   map[int64]models.Movie
		seriesBy map[int64]models.Series
	)
	p := pool.New().WithContext(ctx).WithCancelOnError()
	if len(movieIDs) > 0 {
		p.Go(func(ctx context.Context) error {
			rows, err := s.store.MoviesByIDs(ctx, movieIDs, 0, 0)
			if err != nil {
				return err
			}
			movies = make(map[int64]models.Movie, len(rows))
			for _, m := range rows {
				movies[m.ID] = m
			}
			return nil
		})
	}
	if len(seriesIDs) > 0 {
		p.Go(func(ctx context.Context) error {
			rows, err := s.store.SeriesByIDs(ctx, seriesIDs)
			if err != nil {
				return err
			}
			seriesBy = make(map[int64]models.Series, len(rows))
			for _, sr := range rows {
				seriesBy[sr.ID] = sr
			}
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, models.Upstream(err)
	}

	items := make([]models.FavoriteItem, 0, len(favs))
	for _, f := range favs {
		switch f.ContentType {
		case models.MediaTypeMovie:
			if m, ok := movies[f.ContentID]; ok {
				items = append(items, models.FavoriteItem{MediaItem: models.MovieItem(m), AddedAt: f.AddedAt})
			}
		case models.MediaTypeSeries:
			if sr, ok := seriesBy[f.ContentID]; ok {
				items = append(items, models.FavoriteItem{MediaItem: models.SeriesItem(sr), AddedAt: f.AddedAt})
			}
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].AddedAt.After(items[j].AddedAt)
	})

	if offset >= len(items) {
		return []models.FavoriteItem{}, nil
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end], nil
}
