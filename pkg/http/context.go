package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/klwxsrx/deskbooking/pkg/auth"
)

type contextKey int

const handlerMetaContextKey contextKey = iota

type Panic struct {
	Message    string
	Stacktrace []byte
}

type handlerMetadata struct {
	Code         int
	Panic        *Panic
	Error        error
	Auth         auth.Authentication[auth.Principal]
	errorMappers []errorMapper
}

type errorMapper func(error) (httpCode int, ok bool)

func withHandlerMetadata(router *mux.Router) *mux.Router {
	router.Use(func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), handlerMetaContextKey, &handlerMetadata{})
			handler.ServeHTTP(w, r.WithContext(ctx))
		})
	})
	return router
}

func getHandlerMetadata(ctx context.Context) *handlerMetadata {
	meta, ok := ctx.Value(handlerMetaContextKey).(*handlerMetadata)
	if ok {
		return meta
	}
	return &handlerMetadata{}
}

func (m *handlerMetadata) errorStatusCode(err error) int {
	if errors.Is(err, ErrParsingError) {
		return http.StatusBadRequest
	}

	for i := len(m.errorMappers) - 1; i >= 0; i-- {
		if code, ok := m.errorMappers[i](err); ok {
			return code
		}
	}

	return http.StatusInternalServerError
}

// WithErrorMapping maps handler errors matched by errors.Is to status codes, unmatched errors result in 500
func WithErrorMapping(statusCodes map[int][]error) ServerOption {
	mapper := func(err error) (int, bool) {
		for statusCode, errs := range statusCodes {
			for _, expected := range errs {
				if errors.Is(err, expected) {
					return statusCode, true
				}
			}
		}
		return 0, false
	}

	return WithMW(func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			meta := getHandlerMetadata(r.Context())
			meta.errorMappers = append(meta.errorMappers, mapper)
			handler.ServeHTTP(w, r)
		})
	})
}
