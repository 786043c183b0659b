package handlers

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"reelbase/models"
	favoritesvc "reelbase/services/favorites"
	"reelbase/utils/params"
)

type favoritesService interface {
	Add(ctx context.Context, userID, contentType string, contentID int64) (*models.Favorite, bool, error)
	Remove(ctx context.Context, userID, contentType string, contentID int64) error
	List(ctx context.Context, userID string, limit, offset int) ([]models.FavoriteItem, error)
}

var _ favoritesService = (*favoritesvc.Service)(nil)

// FavoritesHandler serves the favorites endpoints.
type FavoritesHandler struct {
	Service favoritesService
}

func NewFavoritesHandler(s favoritesService) *FavoritesHandler {
	return &FavoritesHandler{Service: s}
}

// List returns the user's favorites resolved against their title records.
func (h *FavoritesHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	limit, offset, err := pageParams(r, 20)
	if err != nil {
		respondError(w, err)
		return
	}

	items, err := h.Service.List(r.Context(), userID, limit, offset)
	if err != nil {
		respondError(w, err)
		return
	}
	respondList(w, items, limit, offset)
}

// Add saves a favorite; adding a title twice reports the existing row.
func (h *FavoritesHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	var body struct {
		ContentType string `json:"contentType"`
		ContentID   int64  `json:"contentId"`
	}
	if err := decodeBody(r, &body); err != nil {
		respondError(w, err)
		return
	}

	fav, created, err := h.Service.Add(r.Context(), userID, body.ContentType, body.ContentID)
	if err != nil {
		respondError(w, err)
		return
	}
	if !created {
		respondMessage(w, fav, "already in favorites")
		return
	}
	respondData(w, fav)
}

// Remove deletes a favorite; removing an absent one still succeeds.
func (h *FavoritesHandler) Remove(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	contentID, err := params.ID(vars["contentId"], "content id")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.Service.Remove(r.Context(), vars["userId"], vars["contentType"], contentID); err != nil {
		respondError(w, err)
		return
	}
	respondData(w, nil)
}
