package favorites_test

import (
	"context"
	"testing"
	"time"

	"reelbase/models"
	"reelbase/services/favorites"
)

type fakeStore struct {
	favorites []models.Favorite
	movies    map[int64]models.Movie
	series    map[int64]models.Series
	nextID    int64
}

func (f *fakeStore) InsertFavorite(ctx context.Context, userID, contentType string, contentID int64) (*models.Favorite, bool, error) {
	for i := range f.favorites {
		existing := &f.favorites[i]
		if existing.UserID == userID && existing.ContentType == contentType && existing.ContentID == contentID {
			copied := *existing
			return &copied, false, nil
		}
	}
	f.nextID++
	fav := models.Favorite{
		ID:          f.nextID,
		UserID:      userID,
		ContentType: contentType,
		ContentID:   contentID,
		AddedAt:     time.Now(),
	}
	f.favorites = append(f.favorites, fav)
	return &fav, true, nil
}

func (f *fakeStore) DeleteFavorite(ctx context.Context, userID, contentType string, contentID int64) error {
	kept := f.favorites[:0]
	for _, fav := range f.favorites {
		if fav.UserID == userID && fav.ContentType == contentType && fav.ContentID == contentID {
			continue
		}
		kept = append(kept, fav)
	}
	f.favorites = kept
	return nil
}

func (f *fakeStore) FavoritesByUser(ctx context.Context, userID string) ([]models.Favorite, error) {
	out := []models.Favorite{}
	for _, fav := range f.favorites {
		if fav.UserID == userID {
			out = append(out, fav)
		}
	}
	return out, nil
}

func (f *fakeStore) MoviesByIDs(ctx context.Context, ids []int64, limit, offset int) ([]models.Movie, error) {
	out := []models.Movie{}
	for _, id := range ids {
		if m, ok := f.movies[id]; ok {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeStore) SeriesByIDs(ctx context.Context, ids []int64) ([]models.Series, error) {
	out := []models.Series{}
	for _, id := range ids {
		if s, ok := f.series[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func TestAddIsIdempotent(t *testing.T) {
	store := &fakeStore{}
	svc := favorites.NewService(store)
	ctx := context.Background()

	first, created, err := svc.Add(ctx, "u1", models.MediaTypeMovie, 10)
	if err != nil || !created {
		t.Fatalf("first add: created=%v err=%v", created, err)
	}

	second, created, err := svc.Add(ctx, "u1", models.MediaTypeMovie, 10)
	if err != nil {
		t.Fatalf("second add returned error: %v", err)
	}
	if created {
		t.Fatalf("second add must not create a new row")
	}
	if second.ID != first.ID {
		t.Fatalf("expected existing row back, got %d vs %d", second.ID, first.ID)
	}
	if len(store.favorites) != 1 {
		t.Fatalf("expected exactly one stored favorite, got %d", len(store.favorites))
	}
}

func TestAddRejectsUnknownContentType(t *testing.T) {
	svc := favorites.NewService(&fakeStore{})

	_, _, err := svc.Add(context.Background(), "u1", "album", 1)
	app, ok := models.AsAppError(err)
	if !ok || app.Kind != models.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRemoveMissingFavoriteSucceeds(t *testing.T) {
	svc := favorites.NewService(&fakeStore{})

	if err := svc.Remove(context.Background(), "u1", models.MediaTypeSeries, 99); err != nil {
		t.Fatalf("expected idempotent remove, got %v", err)
	}
}

func TestListResolvesSortsAndDropsDangling(t *testing.T) {
	now := time.Now()
	store := &fakeStore{
		favorites: []models.Favorite{
			{ID: 1, UserID: "u1", ContentType: models.MediaTypeMovie, ContentID: 10, AddedAt: now.Add(-2 * time.Hour)},
			{ID: 2, UserID: "u1", ContentType: models.MediaTypeSeries, ContentID: 20, AddedAt: now.Add(-1 * time.Hour)},
			{ID: 3, UserID: "u1", ContentType: models.MediaTypeMovie, ContentID: 99, AddedAt: now}, // dangling
		},
		movies: map[int64]models.Movie{10: {ID: 10, Title: "Movie Ten"}},
		series: map[int64]models.Series{20: {ID: 20, Title: "Series Twenty"}},
	}
	svc := favorites.NewService(store)

	items, err := svc.List(context.Background(), "u1", 20, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected dangling favorite dropped, got %d items", len(items))
	}
	if items[0].MediaType != models.MediaTypeSeries || items[0].ID != 20 {
		t.Fatalf("expected newest favorite first, got %#v", items[0])
	}
	if items[1].MediaType != models.MediaTypeMovie || items[1].ID != 10 {
		t.Fatalf("unexpected second item: %#v", items[1])
	}
}

func TestListPagination(t *testing.T) {
	now := time.Now()
	store := &fakeStore{
		movies: map[int64]models.Movie{},
	}
	for i := int64(1); i <= 5; i++ {
		store.movies[i] = models.Movie{ID: i}
		store.favorites = append(store.favorites, models.Favorite{
			ID: i, UserID: "u1", ContentType: models.MediaTypeMovie, ContentID: i,
			AddedAt: now.Add(-time.Duration(i) * time.Minute),
		})
	}
	svc := favorites.NewService(store)

	items, err := svc.List(context.Background(), "u1", 2, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 || items[0].ID != 3 || items[1].ID != 4 {
		t.Fatalf("unexpected page: %#v", items)
	}

	items, err = svc.List(context.Background(), "u1", 2, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Fatalf("expected empty non-nil page, got %#v", items)
	}
}
