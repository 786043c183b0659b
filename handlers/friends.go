package handlers

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"reelbase/models"
	friendsvc "reelbase/services/friends"
	"reelbase/utils/params"
)

type friendsService interface {
	TopRated(ctx context.Context, userID string, limit int, providerIDs []int64) ([]models.FriendRatedMovie, error)
	RecentlyWatched(ctx context.Context, userID string, limit int) ([]models.WatchedItem, error)
}

var _ friendsService = (*friendsvc.Service)(nil)

// FriendsHandler serves the social read endpoints.
type FriendsHandler struct {
	Service friendsService
}

func NewFriendsHandler(s friendsService) *FriendsHandler {
	return &FriendsHandler{Service: s}
}

// TopRated ranks movies by other users' average rating, optionally
// narrowed to a set of streaming providers.
func (h *FriendsHandler) TopRated(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	query := r.URL.Query()

	limit, err := params.Limit(query, 10)
	if err != nil {
		respondError(w, err)
		return
	}
	providerIDs, err := params.OptionalIDList(query, "providers")
	if err != nil {
		respondError(w, err)
		return
	}

	ranked, err := h.Service.TopRated(r.Context(), userID, limit, providerIDs)
	if err != nil {
		respondError(w, err)
		return
	}
	respondList(w, ranked, limit, 0)
}

// RecentlyWatched returns the latest titles other users marked watched.
func (h *FriendsHandler) RecentlyWatched(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	limit, err := params.Limit(r.URL.Query(), 20)
	if err != nil {
		respondError(w, err)
		return
	}

	items, err := h.Service.RecentlyWatched(r.Context(), userID, limit)
	if err != nil {
		respondError(w, err)
		return
	}
	respondList(w, items, limit, 0)
}
