package observability

import (
	"context"

	"github.com/klwxsrx/deskbooking/pkg/log"
)

type (
	LogField string

	contextKey int
)

const (
	LogFieldRequestID LogField = "requestID"
	LogFieldPrincipal LogField = "principal"
)

const (
	requestIDContextKey contextKey = iota
	principalContextKey
)

type (
	Observer interface {
		RequestID(context.Context) (string, bool)
		WithRequestID(context.Context, string) context.Context
		Principal(context.Context) (Principal, bool)
		WithPrincipal(context.Context, Principal) context.Context
	}

	// Principal identifies who the current request or message is processed for
	Principal struct {
		Type string
		ID   string
	}

	ObserverOption func(*observer)
)

type observer struct {
	logger        log.Logger
	loggingFields map[LogField]struct{}
}

func New(opts ...ObserverOption) Observer {
	o := observer{}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

func (o observer) RequestID(ctx context.Context) (string, bool) {
	requestID, ok := ctx.Value(requestIDContextKey).(string)
	if !ok || len(requestID) == 0 {
		return "", false
	}

	return requestID, true
}

func (o observer) WithRequestID(ctx context.Context, id string) context.Context {
	ctx = context.WithValue(ctx, requestIDContextKey, id)
	return o.withLogField(ctx, LogFieldRequestID, id)
}

func (o observer) Principal(ctx context.Context) (Principal, bool) {
	principal, ok := ctx.Value(principalContextKey).(Principal)
	if !ok || principal.Type == "" {
		return Principal{}, false
	}

	return principal, true
}

func (o observer) WithPrincipal(ctx context.Context, principal Principal) context.Context {
	ctx = context.WithValue(ctx, principalContextKey, principal)

	fields := log.Fields{"type": principal.Type}
	if principal.ID != "" {
		fields["id"] = principal.ID
	}
	return o.withLogField(ctx, LogFieldPrincipal, fields)
}

func (o observer) withLogField(ctx context.Context, field LogField, value any) context.Context {
	if _, ok := o.loggingFields[field]; !ok {
		return ctx
	}

	return o.logger.WithContext(ctx, log.Fields{
		string(field): value,
	})
}

func WithFieldsLogging(logger log.Logger, fields ...LogField) ObserverOption {
	return func(o *observer) {
		o.logger = logger

		o.loggingFields = make(map[LogField]struct{}, len(fields))
		for _, field := range fields {
			o.loggingFields[field] = struct{}{}
		}
	}
}
