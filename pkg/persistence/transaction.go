package persistence

import "context"

type Transaction interface {
	// WithinContext joins the transaction stored in ctx or starts a new one, lockNames are held until it completes
	WithinContext(ctx context.Context, fn func(ctx context.Context) error, lockNames ...string) error
}

func WithinTransactionWithResult[T any](
	ctx context.Context,
	transaction Transaction,
	fn func(ctx context.Context) (T, error),
	lockNames ...string,
) (T, error) {
	var result T
	err := transaction.WithinContext(ctx, func(ctx context.Context) error {
		var err error
		result, err = fn(ctx)
		return err
	}, lockNames...)

	return result, err
}
