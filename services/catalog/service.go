// Package catalog composes the read-side browse operations: popular
// listings, detail lookups, provider/genre filtered discovery, and search.
package catalog

import (
	"context"
	"errors"
	"sort"

	"reelbase/models"
	"reelbase/store"
)

// Store is the slice of the query layer the catalog service needs.
type Store interface {
	Providers(ctx context.Context) ([]models.StreamingProvider, error)
	PopularMovies(ctx context.Context, limit, offset int) ([]models.Movie, error)
	PopularSeries(ctx context.Context, limit, offset int) ([]models.Series, error)
	MovieByID(ctx context.Context, id int64) (*models.Movie, error)
	SeriesByID(ctx context.Context, id int64) (*models.Series, error)
	MoviesByIDs(ctx context.Context, ids []int64, limit, offset int) ([]models.Movie, error)
	MovieIDsByProviders(ctx context.Context, providerIDs []int64, linkType string) ([]int64, error)
	MovieIDsByGenre(ctx context.Context, genreID int64) ([]int64, error)
	MovieProviders(ctx context.Context, movieID int64) ([]models.MovieProvider, error)
	Genres(ctx context.Context) ([]models.Genre, error)
	SearchMovies(ctx context.Context, q string, max int) ([]models.Movie, error)
	SearchSeries(ctx context.Context, q string, max int) ([]models.Series, error)
}

var _ Store = (*store.Store)(nil)

// Service exposes the catalog browse operations.
type Service struct {
	store Store
}

// NewService returns a catalog service over the given store.
func NewService(s Store) *Service {
	return &Service{store: s}
}

// Providers lists all streaming providers in display order.
func (s *Service) Providers(ctx context.Context) ([]models.StreamingProvider, error) {
	providers, err := s.store.Providers(ctx)
	if err != nil {
		return nil, models.Upstream(err)
	}
	return providers, nil
}

// PopularMovies returns a page of movies by popularity descending.
func (s *Service) PopularMovies(ctx context.Context, limit, offset int) ([]models.Movie, error) {
	movies, err := s.store.PopularMovies(ctx, limit, offset)
	if err != nil {
		return nil, models.Upstream(err)
	}
	return movies, nil
}

// PopularSeries returns a page of series by popularity descending.
func (s *Service) PopularSeries(ctx context.Context, limit, offset int) ([]models.Series, error) {
	list, err := s.store.PopularSeries(ctx, limit, offset)
	if err != nil {
		return nil, models.Upstream(err)
	}
	return list, nil
}

// Genres lists all genres.
func (s *Service) Genres(ctx context.Context) ([]models.Genre, error) {
	genres, err := s.store.Genres(ctx)
	if err != nil {
		return nil, models.Upstream(err)
	}
	return genres, nil
}

// MoviesByProvider returns up to limit movies available on one provider
// for the given link type, most popular first.
func (s *Service) MoviesByProvider(ctx context.Context, providerID int64, linkType string, limit int) ([]models.Movie, error) {
	if linkType != models.LinkTypeFlatrate && linkType != models.LinkTypeRent && linkType != models.LinkTypeBuy {
		return nil, models.Invalid("type must be one of flatrate, rent, buy")
	}

	ids, err := s.store.MovieIDsByProviders(ctx, []int64{providerID}, linkType)
	if err != nil {
		return nil, models.Upstream(err)
	}
	return s.moviePage(ctx, ids, limit, 0)
}

// DiscoverByProviders returns a page of movies with an active link to any
// of the given providers, most popular first.
func (s *Service) DiscoverByProviders(ctx context.Context, providerIDs []int64, limit, offset int) ([]models.Movie, error) {
	ids, err := s.store.MovieIDsByProviders(ctx, providerIDs, "")
	if err != nil {
		return nil, models.Upstream(err)
	}
	return s.moviePage(ctx, ids, limit, offset)
}

// MoviesByGenre returns a page of movies linked to the genre, most popular
// first.
func (s *Service) MoviesByGenre(ctx context.Context, genreID int64, limit, offset int) ([]models.Movie, error) {
	ids, err := s.store.MovieIDsByGenre(ctx, genreID)
	if err != nil {
		return nil, models.Upstream(err)
	}
	return s.moviePage(ctx, ids, limit, offset)
}

// moviePage is the second leg of a movie fan-out: the collected key set is
// deduplicated and, unless empty, resolved against the movies table with
// ordering and pagination applied by the store.
func (s *Service) moviePage(ctx context.Context, ids []int64, limit, offset int) ([]models.Movie, error) {
	movies, err := fanOut(ctx, ids, func(ctx context.Context, keys []int64) ([]models.Movie, error) {
		return s.store.MoviesByIDs(ctx, keys, limit, offset)
	})
	if err != nil {
		return nil, models.Upstream(err)
	}
	return movies, nil
}

// MovieDetail returns one movie with its streaming providers grouped by
// link type.
func (s *Service) MovieDetail(ctx context.Context, id int64) (*models.MovieDetail, error) {
	movie, err := s.store.MovieByID(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return nil, models.NotFoundError("movie %d not found", id)
	}
	if err != nil {
		return nil, models.Upstream(err)
	}

	links, err := s.store.MovieProviders(ctx, id)
	if err != nil {
		return nil, models.Upstream(err)
	}

	return &models.MovieDetail{
		Movie:              *movie,
		StreamingProviders: GroupProviders(links),
	}, nil
}

// SeriesDetail returns one series.
func (s *Service) SeriesDetail(ctx context.Context, id int64) (*models.Series, error) {
	sr, err := s.store.SeriesByID(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return nil, models.NotFoundError("series %d not found", id)
	}
	if err != nil {
		return nil, models.Upstream(err)
	}
	return sr, nil
}

// Search matches movies and series by case-insensitive substring on title
// or original title, merges both result sets under a media_type tag, and
// re-sorts the concatenation by popularity before slicing the page. The
// two per-table queries each fetch the full window so the page cannot
// under-fill when one table dominates.
func (s *Service) Search(ctx context.Context, q string, limit, offset int) ([]models.MediaItem, error) {
	window := offset + limit

	movies, err := s.store.SearchMovies(ctx, q, window)
	if err != nil {
		return nil, models.Upstream(err)
	}
	series, err := s.store.SearchSeries(ctx, q, window)
	if err != nil {
		return nil, models.Upstream(err)
	}

	items := make([]models.MediaItem, 0, len(movies)+len(series))
	for _, m := range movies {
		items = append(items, models.MovieItem(m))
	}
	for _, sr := range series {
		items = append(items, models.SeriesItem(sr))
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Popularity != items[j].Popularity {
			return items[i].Popularity > items[j].Popularity
		}
		return items[i].ID < items[j].ID
	})

	return slicePage(items, limit, offset), nil
}

// slicePage applies an in-memory [offset, offset+limit) window to an
// already sorted list.
func slicePage[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
