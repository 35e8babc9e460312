package http

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/klwxsrx/deskbooking/pkg/observability"
)

type RequestIDExtractor func(*http.Request) string

// WithObservability takes the request id from the first extractor that returns a non-empty value
func WithObservability(
	observer observability.Observer,
	requestIDHeader string,
	extractors ...RequestIDExtractor,
) ServerOption {
	return WithMW(func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, extractor := range extractors {
				if id := extractor(r); id != "" {
					r = r.WithContext(observer.WithRequestID(r.Context(), id))
					w.Header().Set(requestIDHeader, id)
					break
				}
			}

			handler.ServeHTTP(w, r)
		})
	})
}

// WithPrincipalObservability must follow WithAuth, it puts the authenticated principal into the request context
func WithPrincipalObservability(observer observability.Observer) ServerOption {
	return WithMW(func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			meta := getHandlerMetadata(r.Context())
			if meta.Auth == nil || meta.Auth.Principal() == nil {
				handler.ServeHTTP(w, r)
				return
			}

			principal := *meta.Auth.Principal()
			observed := observability.Principal{Type: string(principal.Type())}
			if id := principal.ID(); id != nil {
				observed.ID = *id
			}

			handler.ServeHTTP(w, r.WithContext(observer.WithPrincipal(r.Context(), observed)))
		})
	})
}

func RequestIDHeaderExtractor(header string) RequestIDExtractor {
	return func(r *http.Request) string {
		return r.Header.Get(header)
	}
}

func RequestIDRandomUUIDExtractor() RequestIDExtractor {
	return func(*http.Request) string {
		return uuid.New().String()
	}
}
