// Package friends composes the social read operations: movies ranked by
// other users' average rating and the mixed movie/series recently-watched
// feed.
package friends

import (
	"context"
	"math"
	"sort"

	"github.com/sourcegraph/conc/pool"

	"reelbase/models"
	"reelbase/store"
)

// Store is the slice of the query layer the friends service needs.
type Store interface {
	RatingsByOthers(ctx context.Context, userID string) ([]models.UserRating, error)
	WatchedByOthers(ctx context.Context, mediaType, userID string, max int) ([]models.UserRating, error)
	MoviesByIDs(ctx context.Context, ids []int64, limit, offset int) ([]models.Movie, error)
	SeriesByIDs(ctx context.Context, ids []int64) ([]models.Series, error)
	MovieIDsByProviders(ctx context.Context, providerIDs []int64, linkType string) ([]int64, error)
}

var _ Store = (*store.Store)(nil)

// Service exposes the friends read operations.
type Service struct {
	store Store
}

// NewService returns a friends service over the given store.
func NewService(s Store) *Service {
	return &Service{store: s}
}

type candidate struct {
	movieID int64
	mean    float64
	count   int
}

// TopRated ranks movies by the arithmetic mean rating across all users
// except the requester. Candidates are truncated to limit*2 before the
// optional provider narrowing: the narrowing shrinks the set, and a
// single-pass limit could under-fill the page. Ties on the mean break by
// movie id ascending so pages are deterministic.
func (s *Service) TopRated(ctx context.Context, userID string, limit int, providerIDs []int64) ([]models.FriendRatedMovie, error) {
	if userID == "" {
		return nil, models.Invalid("userId is required")
	}

	rows, err := s.store.RatingsByOthers(ctx, userID)
	if err != nil {
		return nil, models.Upstream(err)
	}

	sums := map[int64]int{}
	counts := map[int64]int{}
	for _, r := range rows {
		if r.Rating == nil {
			continue
		}
		sums[r.TitleID] += *r.Rating
		counts[r.TitleID]++
	}
	if len(counts) == 0 {
		return []models.FriendRatedMovie{}, nil
	}

	candidates := make([]candidate, 0, len(counts))
	for id, count := range counts {
		candidates = append(candidates, candidate{
			movieID: id,
			mean:    float64(sums[id]) / float64(count),
			count:   count,
		})
	}
	sortCandidates(candidates)

	// Oversampled window, pre-narrowing.
	if len(candidates) > limit*2 {
		candidates = candidates[:limit*2]
	}

	if len(providerIDs) > 0 {
		allowed, err := s.store.MovieIDsByProviders(ctx, providerIDs, "")
		if err != nil {
			return nil, models.Upstream(err)
		}
		allowedSet := make(map[int64]struct{}, len(allowed))
		for _, id := range allowed {
			allowedSet[id] = struct{}{}
		}
		narrowed := candidates[:0]
		for _, c := range candidates {
			if _, ok := allowedSet[c.movieID]; ok {
				narrowed = append(narrowed, c)
			}
		}
		candidates = narrowed
	}

	sortCandidates(candidates)
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	if len(candidates) == 0 {
		return []models.FriendRatedMovie{}, nil
	}

	ids := make([]int64, len(candidates))
	for i, c := range candidates {
		ids[i] = c.movieID
	}
	movies, err := s.store.MoviesByIDs(ctx, ids, 0, 0)
	if err != nil {
		return nil, models.Upstream(err)
	}
	byID := make(map[int64]models.Movie, len(movies))
	for _, m := range movies {
		byID[m.ID] = m
	}

	ranked := make([]models.FriendRatedMovie, 0, len(candidates))
	for _, c := range candidates {
		movie, ok := byID[c.movieID]
		if !ok {
			continue
		}
		ranked = append(ranked, models.FriendRatedMovie{
			Movie:         movie,
			AverageRating: math.Round(c.mean*10) / 10,
			RatingCount:   c.count,
		})
	}
	return ranked, nil
}

func sortCandidates(candidates []candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].mean != candidates[j].mean {
			return candidates[i].mean > candidates[j].mean
		}
		return candidates[i].movieID < candidates[j].movieID
	})
}

// RecentlyWatched returns the latest titles other users marked watched.
// Movie and series rating rows are fetched independently and their detail
// lookups run concurrently; the two tagged streams are concatenated and the
// result fully re-sorted by watched date, since neither stream is globally
// ordered relative to the other. A title watched by several users appears
// once, at its most recent watch.
func (s *Service) RecentlyWatched(ctx context.Context, userID string, limit int) ([]models.WatchedItem, error) {
	if userID == "" {
		return nil, models.Invalid("userId is required")
	}

	var movieRows, seriesRows []models.UserRating
	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		var err error
		movieRows, err = s.store.WatchedByOthers(ctx, models.MediaTypeMovie, userID, limit)
		return err
	})
	p.Go(func(ctx context.Context) error {
		var err error
		seriesRows, err = s.store.WatchedByOthers(ctx, models.MediaTypeSeries, userID, limit)
		return err
	})
	if err := p.Wait(); err != nil {
		return nil, models.Upstream(err)
	}

	movieIDs := ratingTitleIDs(movieRows)
	seriesIDs := ratingTitleIDs(seriesRows)

	var (
		movies   map[int64]models.Movie
		seriesBy map[int64]models.Series
	)
	p = pool.New().WithContext(ctx).WithCancelOnError()
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

	items := make([]models.WatchedItem, 0, len(movieRows)+len(seriesRows))
	for _, r := range movieRows {
		if r.WatchedDate == nil {
			continue
		}
		if m, ok := movies[r.TitleID]; ok {
			items = append(items, models.WatchedItem{MediaItem: models.MovieItem(m), WatchedDate: *r.WatchedDate})
		}
	}
	for _, r := range seriesRows {
		if r.WatchedDate == nil {
			continue
		}
		if sr, ok := seriesBy[r.TitleID]; ok {
			items = append(items, models.WatchedItem{MediaItem: models.SeriesItem(sr), WatchedDate: *r.WatchedDate})
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].WatchedDate.After(items[j].WatchedDate)
	})

	deduped := items[:0]
	seen := map[string]map[int64]struct{}{}
	for _, item := range items {
		if seen[item.MediaType] == nil {
			seen[item.MediaType] = map[int64]struct{}{}
		}
		if _, dup := seen[item.MediaType][item.ID]; dup {
			continue
		}
		seen[item.MediaType][item.ID] = struct{}{}
		deduped = append(deduped, item)
	}

	if len(deduped) > limit {
		deduped = deduped[:limit]
	}
	return deduped, nil
}

func ratingTitleIDs(rows []models.UserRating) []int64 {
	seen := make(map[int64]struct{}, len(rows))
	ids := make([]int64, 0, len(rows))
	for _, r := range rows {
		if _, ok := seen[r.TitleID]; ok {
			continue
		}
		seen[r.TitleID] = struct{}{}
		ids = append(ids, r.TitleID)
	}
	return ids
}
