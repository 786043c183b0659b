package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"reelbase/models"
	ratingsvc "reelbase/services/ratings"
	"reelbase/utils/params"
)

type ratingsService interface {
	Get(ctx context.Context, mediaType, userID string, titleID int64) (*models.UserRating, error)
	Rate(ctx context.Context, mediaType, userID string, titleID int64, rating int) (*models.UserRating, error)
	SetWatched(ctx context.Context, mediaType, userID string, titleID int64, watched bool) (*models.UserRating, error)
}

var _ ratingsService = (*ratingsvc.Service)(nil)

// RatingsHandler serves the rate / mark-watched / rating-lookup endpoints.
// The same handler backs the movie and series routes; the media type is
// fixed at registration time.
type RatingsHandler struct {
	Service ratingsService
}

func NewRatingsHandler(s ratingsService) *RatingsHandler {
	return &RatingsHandler{Service: s}
}

// UserRating reports one user's rating row for a title. A user who never
// rated or watched the title gets data:null, which is a valid state.
func (h *RatingsHandler) UserRating(mediaType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		titleID, err := params.ID(mux.Vars(r)["id"], "title id")
		if err != nil {
			respondError(w, err)
			return
		}
		userID := r.URL.Query().Get("userId")

		rating, err := h.Service.Get(r.Context(), mediaType, userID, titleID)
		if err != nil {
			respondError(w, err)
			return
		}
		if rating == nil {
			respondData(w, nil)
			return
		}
		respondData(w, rating)
	}
}

// Rate stores a user's score for a title.
func (h *RatingsHandler) Rate(mediaType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		titleID, err := params.ID(mux.Vars(r)["id"], "title id")
		if err != nil {
			respondError(w, err)
			return
		}

		var body struct {
			UserID string `json:"userId"`
			Rating *int   `json:"rating"`
		}
		if err := decodeBody(r, &body); err != nil {
			respondError(w, err)
			return
		}
		if body.Rating == nil {
			respondError(w, models.Invalid("rating is required"))
			return
		}

		row, err := h.Service.Rate(r.Context(), mediaType, body.UserID, titleID, *body.Rating)
		if err != nil {
			respondError(w, err)
			return
		}
		respondData(w, row)
	}
}

// Watched toggles a user's watched flag for a title.
func (h *RatingsHandler) Watched(mediaType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		titleID, err := params.ID(mux.Vars(r)["id"], "title id")
		if err != nil {
			respondError(w, err)
			return
		}

		var body struct {
			UserID  string `json:"userId"`
			Watched *bool  `json:"watched"`
		}
		if err := decodeBody(r, &body); err != nil {
			respondError(w, err)
			return
		}
		if body.Watched == nil {
			respondError(w, models.Invalid("watched is required"))
			return
		}

		row, err := h.Service.SetWatched(r.Context(), mediaType, body.UserID, titleID, *body.Watched)
		if err != nil {
			respondError(w, err)
			return
		}
		respondData(w, row)
	}
}

func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return models.Invalid("invalid request body: %v", err)
	}
	return nil
}
