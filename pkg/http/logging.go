package http

import (
	"net/http"
	"slices"

	"github.com/klwxsrx/deskbooking/pkg/log"
)

const requestLogEntry = "request"

func WithLogging(logger log.Logger, infoLevel, errorLevel log.Level, excludedPaths ...string) ServerOption {
	excludedPaths = append(excludedPaths, HealthPath)

	return WithMW(func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			handler.ServeHTTP(w, r)
			if slices.Contains(excludedPaths, r.URL.Path) {
				return
			}

			meta := getHandlerMetadata(r.Context())
			fields := requestLogFields(r)
			fields["code"] = meta.Code
			fields["route"] = currentRouteName(r)
			entry := logger.With(wrapFieldsWithRequestLogEntry(fields))
			if meta.Auth != nil && meta.Auth.Principal() != nil {
				principal := *meta.Auth.Principal()
				authFields := log.Fields{"type": principal.Type()}
				if id := principal.ID(); id != nil {
					authFields["id"] = *id
				}
				entry = entry.WithField("auth", authFields)
			}

			switch {
			case meta.Panic != nil:
				entry.WithField("panic", log.Fields{
					"message": meta.Panic.Message,
					"stack":   string(meta.Panic.Stacktrace),
				}).Error(r.Context(), "request handled with panic")
			case meta.Code >= http.StatusInternalServerError:
				entry.WithError(meta.Error).Log(r.Context(), errorLevel, "request handled with internal error")
			case meta.Error != nil:
				entry.WithError(meta.Error).Log(r.Context(), infoLevel, "request handled with error")
			default:
				entry.Log(r.Context(), infoLevel, "request handled")
			}
		})
	})
}

func requestLogFields(r *http.Request) log.Fields {
	return log.Fields{
		"method": r.Method,
		"host":   r.URL.Host,
		"path":   r.URL.Path,
	}
}

func wrapFieldsWithRequestLogEntry(fields log.Fields) log.Fields {
	return log.Fields{requestLogEntry: fields}
}
