package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"reelbase/handlers"
	"reelbase/models"
)

type fakeCatalog struct {
	movies     []models.Movie
	detail     *models.MovieDetail
	detailErr  error
	searchHits []models.MediaItem
}

func (f *fakeCatalog) Providers(ctx context.Context) ([]models.StreamingProvider, error) {
	return []models.StreamingProvider{}, nil
}

func (f *fakeCatalog) PopularMovies(ctx context.Context, limit, offset int) ([]models.Movie, error) {
	return f.movies, nil
}

func (f *fakeCatalog) PopularSeries(ctx context.Context, limit, offset int) ([]models.Series, error) {
	return []models.Series{}, nil
}

func (f *fakeCatalog) MoviesByProvider(ctx context.Context, providerID int64, linkType string, limit int) ([]models.Movie, error) {
	return f.movies, nil
}

func (f *fakeCatalog) DiscoverByProviders(ctx context.Context, providerIDs []int64, limit, offset int) ([]models.Movie, error) {
	return f.movies, nil
}

func (f *fakeCatalog) MoviesByGenre(ctx context.Context, genreID int64, limit, offset int) ([]models.Movie, error) {
	return f.movies, nil
}

func (f *fakeCatalog) Genres(ctx context.Context) ([]models.Genre, error) {
	return []models.Genre{}, nil
}

func (f *fakeCatalog) MovieDetail(ctx context.Context, id int64) (*models.MovieDetail, error) {
	return f.detail, f.detailErr
}

func (f *fakeCatalog) SeriesDetail(ctx context.Context, id int64) (*models.Series, error) {
	return nil, models.NotFoundError("series %d not found", id)
}

func (f *fakeCatalog) Search(ctx context.Context, q string, limit, offset int) ([]models.MediaItem, error) {
	return f.searchHits, nil
}

type fakeRatings struct {
	row *models.UserRating
}

func (f *fakeRatings) Get(ctx context.Context, mediaType, userID string, titleID int64) (*models.UserRating, error) {
	if userID == "" {
		return nil, models.Invalid("userId is required")
	}
	return f.row, nil
}

func (f *fakeRatings) Rate(ctx context.Context, mediaType, userID string, titleID int64, rating int) (*models.UserRating, error) {
	if rating < models.RatingMin || rating > models.RatingMax {
		return nil, models.Invalid("rating must be between 1 and 10")
	}
	return &models.UserRating{UserID: userID, TitleID: titleID, Rating: &rating}, nil
}

func (f *fakeRatings) SetWatched(ctx context.Context, mediaType, userID string, titleID int64, watched bool) (*models.UserRating, error) {
	row := &models.UserRating{UserID: userID, TitleID: titleID, Watched: watched}
	if watched {
		now := time.Now()
		row.WatchedDate = &now
	}
	return row, nil
}

type fakeFavorites struct{}

func (fakeFavorites) Add(ctx context.Context, userID, contentType string, contentID int64) (*models.Favorite, bool, error) {
	return &models.Favorite{ID: 1, UserID: userID, ContentType: contentType, ContentID: contentID}, false, nil
}

func (fakeFavorites) Remove(ctx context.Context, userID, contentType string, contentID int64) error {
	return nil
}

func (fakeFavorites) List(ctx context.Context, userID string, limit, offset int) ([]models.FavoriteItem, error) {
	return []models.FavoriteItem{}, nil
}

type fakeFriends struct{}

func (fakeFriends) TopRated(ctx context.Context, userID string, limit int, providerIDs []int64) ([]models.FriendRatedMovie, error) {
	return []models.FriendRatedMovie{}, nil
}

func (fakeFriends) RecentlyWatched(ctx context.Context, userID string, limit int) ([]models.WatchedItem, error) {
	return []models.WatchedItem{}, nil
}

func newRouter(catalog *fakeCatalog, ratings *fakeRatings) *mux.Router {
	r := mux.NewRouter()
	handlers.Register(r,
		handlers.NewCatalogHandler(catalog),
		handlers.NewRatingsHandler(ratings),
		handlers.NewFavoritesHandler(fakeFavorites{}),
		handlers.NewFriendsHandler(fakeFriends{}),
	)
	return r
}

func doRequest(t *testing.T, router *mux.Router, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(buf)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var payload map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return rec, payload
}

func TestPopularMoviesEnvelope(t *testing.T) {
	router := newRouter(&fakeCatalog{movies: []models.Movie{{ID: 1}, {ID: 2}}}, &fakeRatings{})

	rec, payload := doRequest(t, router, http.MethodGet, "/api/movies/popular?limit=5", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if payload["success"] != true {
		t.Fatalf("expected success envelope, got %v", payload)
	}
	pagination, ok := payload["pagination"].(map[string]any)
	if !ok {
		t.Fatalf("missing pagination: %v", payload)
	}
	if pagination["limit"] != float64(5) || pagination["count"] != float64(2) {
		t.Fatalf("unexpected pagination: %v", pagination)
	}
}

func TestMalformedLimitFailsFast(t *testing.T) {
	router := newRouter(&fakeCatalog{}, &fakeRatings{})

	rec, payload := doRequest(t, router, http.MethodGet, "/api/movies/popular?limit=abc", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed limit, got %d", rec.Code)
	}
	msg, _ := payload["error"].(string)
	if payload["success"] != false || msg == "" {
		t.Fatalf("expected error envelope, got %v", payload)
	}
}

func TestDiscoverRequiresProviders(t *testing.T) {
	router := newRouter(&fakeCatalog{}, &fakeRatings{})

	rec, payload := doRequest(t, router, http.MethodGet, "/api/movies/discover", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if payload["error"] != "providers is required" {
		t.Fatalf("unexpected error message: %v", payload["error"])
	}
}

func TestSearchQueryTooShort(t *testing.T) {
	router := newRouter(&fakeCatalog{}, &fakeRatings{})

	rec, _ := doRequest(t, router, http.MethodGet, "/api/search?q=a", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for one-character query, got %d", rec.Code)
	}

	rec, _ = doRequest(t, router, http.MethodGet, "/api/search?q=ab", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for two-character query, got %d", rec.Code)
	}
}

func TestMovieDetailNotFound(t *testing.T) {
	router := newRouter(&fakeCatalog{detailErr: models.NotFoundError("movie 9 not found")}, &fakeRatings{})

	rec, payload := doRequest(t, router, http.MethodGet, "/api/movies/9", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if payload["success"] != false {
		t.Fatalf("expected error envelope, got %v", payload)
	}
}

func TestUserRatingAbsentIsNullData(t *testing.T) {
	router := newRouter(&fakeCatalog{}, &fakeRatings{row: nil})

	rec, payload := doRequest(t, router, http.MethodGet, "/api/movies/3/user-rating?userId=u1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if payload["success"] != true {
		t.Fatalf("expected success, got %v", payload)
	}
	data, present := payload["data"]
	if !present || data != nil {
		t.Fatalf("expected explicit null data, got %v (present=%v)", data, present)
	}
}

func TestUserRatingRequiresUserID(t *testing.T) {
	router := newRouter(&fakeCatalog{}, &fakeRatings{})

	rec, _ := doRequest(t, router, http.MethodGet, "/api/movies/3/user-rating", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without userId, got %d", rec.Code)
	}
}

func TestRateValidation(t *testing.T) {
	router := newRouter(&fakeCatalog{}, &fakeRatings{})

	for rating, wantStatus := range map[int]int{
		0:  http.StatusBadRequest,
		11: http.StatusBadRequest,
		1:  http.StatusOK,
		10: http.StatusOK,
	} {
		rec, _ := doRequest(t, router, http.MethodPost, "/api/movies/3/rate",
			map[string]any{"userId": "u1", "rating": rating})
		if rec.Code != wantStatus {
			t.Fatalf("rating %d: expected %d, got %d", rating, wantStatus, rec.Code)
		}
	}
}

func TestRateMissingRating(t *testing.T) {
	router := newRouter(&fakeCatalog{}, &fakeRatings{})

	rec, _ := doRequest(t, router, http.MethodPost, "/api/movies/3/rate",
		map[string]any{"userId": "u1"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without rating, got %d", rec.Code)
	}
}

func TestWatchedLockStepInResponse(t *testing.T) {
	router := newRouter(&fakeCatalog{}, &fakeRatings{})

	_, payload := doRequest(t, router, http.MethodPost, "/api/series/4/watched",
		map[string]any{"userId": "u1", "watched": true})
	data := payload["data"].(map[string]any)
	if data["watched"] != true || data["watched_date"] == nil {
		t.Fatalf("watched=true must carry watched_date: %v", data)
	}

	_, payload = doRequest(t, router, http.MethodPost, "/api/series/4/watched",
		map[string]any{"userId": "u1", "watched": false})
	data = payload["data"].(map[string]any)
	if data["watched"] != false || data["watched_date"] != nil {
		t.Fatalf("watched=false must clear watched_date: %v", data)
	}
}

func TestDuplicateFavoriteReportsMessage(t *testing.T) {
	router := newRouter(&fakeCatalog{}, &fakeRatings{})

	rec, payload := doRequest(t, router, http.MethodPost, "/api/users/u1/favorites",
		map[string]any{"contentType": "movie", "contentId": 7})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected duplicate add to succeed, got %d", rec.Code)
	}
	if payload["message"] != "already in favorites" {
		t.Fatalf("expected informational message, got %v", payload)
	}
}

func TestRemoveFavoriteAlwaysSucceeds(t *testing.T) {
	router := newRouter(&fakeCatalog{}, &fakeRatings{})

	rec, payload := doRequest(t, router, http.MethodDelete, "/api/users/u1/favorites/movie/7", nil)
	if rec.Code != http.StatusOK || payload["success"] != true {
		t.Fatalf("expected idempotent delete, got %d %v", rec.Code, payload)
	}
}

func TestCatchAllRoute(t *testing.T) {
	router := newRouter(&fakeCatalog{}, &fakeRatings{})

	rec, payload := doRequest(t, router, http.MethodGet, "/api/nope", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if payload["success"] != false || payload["path"] != "/api/nope" {
		t.Fatalf("unexpected catch-all envelope: %v", payload)
	}
}

func TestHealth(t *testing.T) {
	router := newRouter(&fakeCatalog{}, &fakeRatings{})

	rec, payload := doRequest(t, router, http.MethodGet, "/api/health", nil)
	if rec.Code != http.StatusOK || payload["success"] != true {
		t.Fatalf("unexpected health response: %d %v", rec.Code, payload)
	}
}
