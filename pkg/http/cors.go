package http

import (
	"net/http"
	"slices"

	"github.com/gorilla/mux"
)

// WithCORSHandler lets browsers send the session cookie from allowedOrigins, other origins get the allowed methods only
func WithCORSHandler(allowedOrigins ...string) ServerOption {
	return func(router *mux.Router) {
		router.Use(mux.CORSMethodMiddleware(router))
		if len(allowedOrigins) == 0 {
			return
		}

		router.Use(func(handler http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Add("Vary", "Origin")
				origin := r.Header.Get("Origin")
				if origin != "" && slices.Contains(allowedOrigins, origin) {
					w.Header().Set("Access-Control-Allow-Origin", origin)
					w.Header().Set("Access-Control-Allow-Credentials", "true")
					w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
				}

				handler.ServeHTTP(w, r)
			})
		})
	}
}
