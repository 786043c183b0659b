package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"reelbase/models"
)

// Register wires every API route onto the router and installs the JSON
// catch-all for unmatched paths.
func Register(r *mux.Router, catalog *CatalogHandler, ratings *RatingsHandler, favorites *FavoritesHandler, friends *FriendsHandler) {
	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		respondData(w, nil)
	}).Methods(http.MethodGet)

	// Catalog
	api.HandleFunc("/streaming-providers", catalog.Providers).Methods(http.MethodGet)
	api.HandleFunc("/streaming-providers/{id}/movies", catalog.ProviderMovies).Methods(http.MethodGet)
	api.HandleFunc("/movies/popular", catalog.PopularMovies).Methods(http.MethodGet)
	api.HandleFunc("/movies/discover", catalog.Discover).Methods(http.MethodGet)
	api.HandleFunc("/movies/{id:[0-9]+}", catalog.MovieDetail).Methods(http.MethodGet)
	api.HandleFunc("/series/popular", catalog.PopularSeries).Methods(http.MethodGet)
	api.HandleFunc("/series/{id:[0-9]+}", catalog.SeriesDetail).Methods(http.MethodGet)
	api.HandleFunc("/genres", catalog.Genres).Methods(http.MethodGet)
	api.HandleFunc("/genres/{id}/movies", catalog.GenreMovies).Methods(http.MethodGet)
	api.HandleFunc("/search", catalog.Search).Methods(http.MethodGet)

	// Ratings, movie and series routes share handlers.
	api.HandleFunc("/movies/{id:[0-9]+}/user-rating", ratings.UserRating(models.MediaTypeMovie)).Methods(http.MethodGet)
	api.HandleFunc("/movies/{id:[0-9]+}/rate", ratings.Rate(models.MediaTypeMovie)).Methods(http.MethodPost)
	api.HandleFunc("/movies/{id:[0-9]+}/watched", ratings.Watched(models.MediaTypeMovie)).Methods(http.MethodPost)
	api.HandleFunc("/series/{id:[0-9]+}/user-rating", ratings.UserRating(models.MediaTypeSeries)).Methods(http.MethodGet)
	api.HandleFunc("/series/{id:[0-9]+}/rate", ratings.Rate(models.MediaTypeSeries)).Methods(http.MethodPost)
	api.HandleFunc("/series/{id:[0-9]+}/watched", ratings.Watched(models.MediaTypeSeries)).Methods(http.MethodPost)

	// Favorites
	api.HandleFunc("/users/{userId}/favorites", favorites.List).Methods(http.MethodGet)
	api.HandleFunc("/users/{userId}/favorites", favorites.Add).Methods(http.MethodPost)
	api.HandleFunc("/users/{userId}/favorites/{contentType}/{contentId}", favorites.Remove).Methods(http.MethodDelete)

	// Friends
	api.HandleFunc("/users/{userId}/friends/top-rated", friends.TopRated).Methods(http.MethodGet)
	api.HandleFunc("/users/{userId}/friends/recently-watched", friends.RecentlyWatched).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(notFoundRoute)
}
