package catalog_test

import (
	"context"
	"testing"
	"time"

	"reelbase/models"
	"reelbase/services/catalog"
)

type fakeStore struct {
	providers    []models.StreamingProvider
	movies       map[int64]models.Movie
	series       map[int64]models.Series
	providerIDs  []int64
	genreIDs     []int64
	movieLinks   []models.MovieProvider
	genres       []models.Genre
	searchMovies []models.Movie
	searchSeries []models.Series

	moviesByIDsCalls int
	lastIDs          []int64
	lastLimit        int
	lastOffset       int
}

func (f *fakeStore) Providers(ctx context.Context) ([]models.StreamingProvider, error) {
	return f.providers, nil
}

func (f *fakeStore) PopularMovies(ctx context.Context, limit, offset int) ([]models.Movie, error) {
	return f.searchMovies, nil
}

func (f *fakeStore) PopularSeries(ctx context.Context, limit, offset int) ([]models.Series, error) {
	return f.searchSeries, nil
}

func (f *fakeStore) MovieByID(ctx context.Context, id int64) (*models.Movie, error) {
	if m, ok := f.movies[id]; ok {
		return &m, nil
	}
	return nil, models.ErrNotFound
}

func (f *fakeStore) SeriesByID(ctx context.Context, id int64) (*models.Series, error) {
	if s, ok := f.series[id]; ok {
		return &s, nil
	}
	return nil, models.ErrNotFound
}

func (f *fakeStore) MoviesByIDs(ctx context.Context, ids []int64, limit, offset int) ([]models.Movie, error) {
	f.moviesByIDsCalls++
	f.lastIDs = ids
	f.lastLimit = limit
	f.lastOffset = offset
	movies := []models.Movie{}
	for _, id := range ids {
		if m, ok := f.movies[id]; ok {
			movies = append(movies, m)
		}
	}
	return movies, nil
}

func (f *fakeStore) MovieIDsByProviders(ctx context.Context, providerIDs []int64, linkType string) ([]int64, error) {
	return f.providerIDs, nil
}

func (f *fakeStore) MovieIDsByGenre(ctx context.Context, genreID int64) ([]int64, error) {
	return f.genreIDs, nil
}

func (f *fakeStore) MovieProviders(ctx context.Context, movieID int64) ([]models.MovieProvider, error) {
	return f.movieLinks, nil
}

func (f *fakeStore) Genres(ctx context.Context) ([]models.Genre, error) {
	return f.genres, nil
}

func (f *fakeStore) SearchMovies(ctx context.Context, q string, max int) ([]models.Movie, error) {
	return f.searchMovies, nil
}

func (f *fakeStore) SearchSeries(ctx context.Context, q string, max int) ([]models.Series, error) {
	return f.searchSeries, nil
}

func TestDiscoverEmptyKeySetSkipsSecondQuery(t *testing.T) {
	fake := &fakeStore{providerIDs: []int64{}}
	svc := catalog.NewService(fake)

	movies, err := svc.DiscoverByProviders(context.Background(), []int64{1, 2}, 20, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if movies == nil || len(movies) != 0 {
		t.Fatalf("expected empty non-nil result, got %#v", movies)
	}
	if fake.moviesByIDsCalls != 0 {
		t.Fatalf("expected no second store call, got %d", fake.moviesByIDsCalls)
	}
}

func TestDiscoverDeduplicatesKeySet(t *testing.T) {
	fake := &fakeStore{
		providerIDs: []int64{7, 7, 3, 7, 3},
		movies: map[int64]models.Movie{
			3: {ID: 3, Title: "Three"},
			7: {ID: 7, Title: "Seven"},
		},
	}
	svc := catalog.NewService(fake)

	if _, err := svc.DiscoverByProviders(context.Background(), []int64{1}, 10, 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fake.moviesByIDsCalls != 1 {
		t.Fatalf("expected one second-leg call, got %d", fake.moviesByIDsCalls)
	}
	if len(fake.lastIDs) != 2 || fake.lastIDs[0] != 7 || fake.lastIDs[1] != 3 {
		t.Fatalf("expected deduplicated ids [7 3], got %v", fake.lastIDs)
	}
	if fake.lastLimit != 10 || fake.lastOffset != 5 {
		t.Fatalf("expected pagination to reach the store, got limit=%d offset=%d", fake.lastLimit, fake.lastOffset)
	}
}

func TestMoviesByProviderRejectsUnknownLinkType(t *testing.T) {
	svc := catalog.NewService(&fakeStore{})

	_, err := svc.MoviesByProvider(context.Background(), 1, "free", 10)
	app, ok := models.AsAppError(err)
	if !ok || app.Kind != models.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestMovieDetailNotFound(t *testing.T) {
	svc := catalog.NewService(&fakeStore{movies: map[int64]models.Movie{}})

	_, err := svc.MovieDetail(context.Background(), 99)
	app, ok := models.AsAppError(err)
	if !ok || app.Kind != models.KindNotFound {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestGroupProviders(t *testing.T) {
	links := []models.MovieProvider{
		{Type: "flatrate", Provider: models.StreamingProvider{ID: 1, Name: "B", DisplayPriority: 2}},
		{Type: "flatrate", Provider: models.StreamingProvider{ID: 2, Name: "A", DisplayPriority: 1}},
		{Type: "rent", Provider: models.StreamingProvider{ID: 3, Name: "C", DisplayPriority: 5}},
	}

	grouped := catalog.GroupProviders(links)

	if len(grouped.Flatrate) != 2 || grouped.Flatrate[0].DisplayPriority != 1 || grouped.Flatrate[1].DisplayPriority != 2 {
		t.Fatalf("unexpected flatrate bucket: %#v", grouped.Flatrate)
	}
	if len(grouped.Rent) != 1 || grouped.Rent[0].DisplayPriority != 5 {
		t.Fatalf("unexpected rent bucket: %#v", grouped.Rent)
	}
	if grouped.Buy == nil || len(grouped.Buy) != 0 {
		t.Fatalf("expected empty non-nil buy bucket, got %#v", grouped.Buy)
	}
}

func TestGroupProvidersCollapsesDuplicates(t *testing.T) {
	links := []models.MovieProvider{
		{Type: "rent", Provider: models.StreamingProvider{ID: 4, DisplayPriority: 1}},
		{Type: "rent", Provider: models.StreamingProvider{ID: 4, DisplayPriority: 1}},
	}

	grouped := catalog.GroupProviders(links)
	if len(grouped.Rent) != 1 {
		t.Fatalf("expected duplicate provider collapsed, got %#v", grouped.Rent)
	}
}

func TestSearchMergesAndResorts(t *testing.T) {
	date := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	fake := &fakeStore{
		searchMovies: []models.Movie{
			{ID: 1, Title: "Mid Movie", Popularity: 50, ReleaseDate: &date},
			{ID: 2, Title: "Low Movie", Popularity: 10},
		},
		searchSeries: []models.Series{
			{ID: 9, Title: "Top Series", Popularity: 90},
		},
	}
	svc := catalog.NewService(fake)

	items, err := svc.Search(context.Background(), "mo", 2, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected page of 2, got %d", len(items))
	}
	if items[0].MediaType != models.MediaTypeSeries || items[0].ID != 9 {
		t.Fatalf("expected series first, got %#v", items[0])
	}
	if items[1].MediaType != models.MediaTypeMovie || items[1].ID != 1 {
		t.Fatalf("expected mid movie second, got %#v", items[1])
	}
}

func TestSearchOffsetBeyondResults(t *testing.T) {
	fake := &fakeStore{searchMovies: []models.Movie{{ID: 1, Popularity: 1}}}
	svc := catalog.NewService(fake)

	items, err := svc.Search(context.Background(), "mo", 10, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Fatalf("expected empty non-nil page, got %#v", items)
	}
}
