package handlers

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"reelbase/models"
	catalogsvc "reelbase/services/catalog"
	"reelbase/utils/params"
)

type catalogService interface {
	Providers(ctx context.Context) ([]models.StreamingProvider, error)
	PopularMovies(ctx context.Context, limit, offset int) ([]models.Movie, error)
	PopularSeries(ctx context.Context, limit, offset int) ([]models.Series, error)
	MoviesByProvider(ctx context.Context, providerID int64, linkType string, limit int) ([]models.Movie, error)
	DiscoverByProviders(ctx context.Context, providerIDs []int64, limit, offset int) ([]models.Movie, error)
	MoviesByGenre(ctx context.Context, genreID int64, limit, offset int) ([]models.Movie, error)
	Genres(ctx context.Context) ([]models.Genre, error)
	MovieDetail(ctx context.Context, id int64) (*models.MovieDetail, error)
	SeriesDetail(ctx context.Context, id int64) (*models.Series, error)
	Search(ctx context.Context, q string, limit, offset int) ([]models.MediaItem, error)
}

var _ catalogService = (*catalogsvc.Service)(nil)

// CatalogHandler serves the browse endpoints: providers, popular listings,
// detail pages, genre/provider discovery and search.
type CatalogHandler struct {
	Service catalogService
}

func NewCatalogHandler(s catalogService) *CatalogHandler {
	return &CatalogHandler{Service: s}
}

// Providers lists all streaming providers in display order.
func (h *CatalogHandler) Providers(w http.ResponseWriter, r *http.Request) {
	providers, err := h.Service.Providers(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, providers)
}

// ProviderMovies lists movies available on one provider for a link type.
func (h *CatalogHandler) ProviderMovies(w http.ResponseWriter, r *http.Request) {
	providerID, err := params.ID(mux.Vars(r)["id"], "provider id")
	if err != nil {
		respondError(w, err)
		return
	}
	limit, err := params.Limit(r.URL.Query(), 50)
	if err != nil {
		respondError(w, err)
		return
	}
	linkType := r.URL.Query().Get("type")
	if linkType == "" {
		linkType = models.LinkTypeFlatrate
	}

	movies, err := h.Service.MoviesByProvider(r.Context(), providerID, linkType, limit)
	if err != nil {
		respondError(w, err)
		return
	}
	respondList(w, movies, limit, 0)
}

// PopularMovies lists movies by popularity descending.
func (h *CatalogHandler) PopularMovies(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := pageParams(r, 20)
	if err != nil {
		respondError(w, err)
		return
	}
	movies, err := h.Service.PopularMovies(r.Context(), limit, offset)
	if err != nil {
		respondError(w, err)
		return
	}
	respondList(w, movies, limit, offset)
}

// PopularSeries lists series by popularity descending.
func (h *CatalogHandler) PopularSeries(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := pageParams(r, 20)
	if err != nil {
		respondError(w, err)
		return
	}
	list, err := h.Service.PopularSeries(r.Context(), limit, offset)
	if err != nil {
		respondError(w, err)
		return
	}
	respondList(w, list, limit, offset)
}

// Discover lists movies available on any of the requested providers.
// The providers parameter is mandatory.
func (h *CatalogHandler) Discover(w http.ResponseWriter, r *http.Request) {
	providerIDs, err := params.IDList(r.URL.Query(), "providers")
	if err != nil {
		respondError(w, err)
		return
	}
	limit, offset, err := pageParams(r, 20)
	if err != nil {
		respondError(w, err)
		return
	}

	movies, err := h.Service.DiscoverByProviders(r.Context(), providerIDs, limit, offset)
	if err != nil {
		respondError(w, err)
		return
	}
	respondList(w, movies, limit, offset)
}

// MovieDetail returns one movie with grouped streaming providers.
func (h *CatalogHandler) MovieDetail(w http.ResponseWriter, r *http.Request) {
	id, err := params.ID(mux.Vars(r)["id"], "movie id")
	if err != nil {
		respondError(w, err)
		return
	}
	detail, err := h.Service.MovieDetail(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, detail)
}

// SeriesDetail returns one series.
func (h *CatalogHandler) SeriesDetail(w http.ResponseWriter, r *http.Request) {
	id, err := params.ID(mux.Vars(r)["id"], "series id")
	if err != nil {
		respondError(w, err)
		return
	}
	detail, err := h.Service.SeriesDetail(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, detail)
}

// Genres lists all genres.
func (h *CatalogHandler) Genres(w http.ResponseWriter, r *http.Request) {
	genres, err := h.Service.Genres(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, genres)
}

// GenreMovies lists movies linked to one genre.
func (h *CatalogHandler) GenreMovies(w http.ResponseWriter, r *http.Request) {
	genreID, err := params.ID(mux.Vars(r)["id"], "genre id")
	if err != nil {
		respondError(w, err)
		return
	}
	limit, offset, err := pageParams(r, 20)
	if err != nil {
		respondError(w, err)
		return
	}

	movies, err := h.Service.MoviesByGenre(r.Context(), genreID, limit, offset)
	if err != nil {
		respondError(w, err)
		return
	}
	respondList(w, movies, limit, offset)
}

// Search matches movies and series by title substring.
func (h *CatalogHandler) Search(w http.ResponseWriter, r *http.Request) {
	q, err := params.SearchQuery(r.URL.Query())
	if err != nil {
		respondError(w, err)
		return
	}
	limit, offset, err := pageParams(r, 20)
	if err != nil {
		respondError(w, err)
		return
	}

	items, err := h.Service.Search(r.Context(), q, limit, offset)
	if err != nil {
		respondError(w, err)
		return
	}
	respondList(w, items, limit, offset)
}

func pageParams(r *http.Request, defaultLimit int) (int, int, error) {
	query := r.URL.Query()
	limit, err := params.Limit(query, defaultLimit)
	if err != nil {
		return 0, 0, err
	}
	offset, err := params.Offset(query)
	if err != nil {
		return 0, 0, err
	}
	return limit, offset, nil
}
