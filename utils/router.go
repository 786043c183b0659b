package utils

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// CORS middleware to allow cross-origin requests
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Set CORS headers
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		// Handle preflight requests
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// NewRouter constructs the base mux router with the common middleware
// chain: CORS, request ids, per-request deadline, access logging.
func NewRouter(requestTimeout time.Duration) *mux.Router {
	r := mux.NewRouter()

	r.Use(corsMiddleware)
	r.Use(RequestIDMiddleware)
	r.Use(TimeoutMiddleware(requestTimeout))
	r.Use(LoggingMiddleware)

	return r
}
