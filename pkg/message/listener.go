package message

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"

	"github.com/klwxsrx/deskbooking/pkg/log"
	"github.com/klwxsrx/deskbooking/pkg/metric"
	"github.com/klwxsrx/deskbooking/pkg/worker"
)

const defaultWorkersCount = 1

type (
	ListenerImpl struct {
		// MaxProcessedMessages is the max number of simultaneously processed messages
		MaxProcessedMessages int
		Middlewares          []HandlerMiddleware
		// HandlerRetry is called per message, the message is nacked once the returned backoff stops
		HandlerRetry       func() backoff.BackOff
		OnAcknowledgeError []func(_ context.Context, _ *Message, handlerResult error, ackErr error)

		consumer Consumer
		handler  Handler
	}

	ListenerOption    func(*ListenerImpl)
	HandlerMiddleware func(Handler) Handler
)

func NewListener(
	consumer Consumer,
	handler Handler,
	opts ...ListenerOption,
) worker.ErrorJob {
	impl := &ListenerImpl{
		MaxProcessedMessages: defaultWorkersCount,
		HandlerRetry: func() backoff.BackOff {
			return backoff.WithMaxRetries(backoff.NewExponentialBackOff(
				backoff.WithInitialInterval(100*time.Millisecond),
				backoff.WithMultiplier(2),
				backoff.WithMaxInterval(5*time.Second),
			), 3)
		},
		consumer: consumer,
	}
	for _, opt := range opts {
		opt(impl)
	}

	impl.handler = impl.wrapWithPanicHandler(handler)
	for i := len(impl.Middlewares) - 1; i >= 0; i-- {
		impl.handler = impl.Middlewares[i](impl.handler)
	}

	return impl.consumerWorker
}

func (l *ListenerImpl) consumerWorker(ctx context.Context) error {
	pool := worker.NewPool(l.MaxProcessedMessages)
	err := func() error {
		defer pool.Wait()

		for {
			select {
			case msg, ok := <-l.consumer.Messages():
				if !ok {
					return errors.New("consumer closed messages channel")
				}

				err := pool.Do(ctx, func(ctx context.Context) {
					l.processMessage(ctx, msg)
				})
				if err != nil {
					return nil
				}
			case <-ctx.Done():
				return nil
			}
		}
	}()

	closeErr := l.consumer.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("message listener %s/%s: %w", l.consumer.Subscriber(), l.consumer.Topic(), err)
	}

	return nil
}

func (l *ListenerImpl) processMessage(ctx context.Context, msg *ConsumerMessage) {
	msgCtx := withHandlerMetadata(ctx, &msg.Message)
	handlerErr := backoff.Retry(
		func() error { return l.handler(msgCtx, &msg.Message) },
		backoff.WithContext(l.HandlerRetry(), ctx),
	)
	if ctx.Err() != nil {
		return
	}

	var ackErr error
	if handlerErr != nil {
		ackErr = l.consumer.Nack(msg)
	} else {
		ackErr = l.consumer.Ack(msg)
	}
	if ackErr != nil {
		for _, fn := range l.OnAcknowledgeError {
			fn(msgCtx, &msg.Message, handlerErr, ackErr)
		}
	}
}

func (l *ListenerImpl) wrapWithPanicHandler(handler Handler) Handler {
	return func(ctx context.Context, msg *Message) (err error) {
		defer func() {
			panicMsg := recover()
			if panicMsg == nil {
				return
			}

			GetHandlerMetadata(ctx).Panic = &PanicErr{
				Message:    fmt.Sprintf("%v", panicMsg),
				Stacktrace: debug.Stack(),
			}
			err = backoff.Permanent(fmt.Errorf("message handled with panic: %v", panicMsg))
		}()

		return handler(ctx, msg)
	}
}

func WithHandlerLogging(logger log.Logger, infoLevel, errorLevel log.Level) ListenerOption {
	mw := func(handler Handler) Handler {
		return func(ctx context.Context, msg *Message) error {
			ctx = logger.WithContext(ctx, log.Fields{
				"consumerMessage": log.Fields{
					"correlation": uuid.New(),
					"topic":       msg.Topic,
					"messageID":   msg.ID,
				},
			})

			err := handler(ctx, msg)
			meta := GetHandlerMetadata(ctx)
			switch {
			case meta.Panic != nil:
				logger.WithField("panic", log.Fields{
					"message": meta.Panic.Message,
					"stack":   string(meta.Panic.Stacktrace),
				}).Error(ctx, "message handled with panic")
			case err != nil:
				logger.WithError(err).Log(ctx, errorLevel, "message handled with error")
			default:
				logger.Log(ctx, infoLevel, "message handled")
			}

			return err
		}
	}

	return func(l *ListenerImpl) {
		l.Middlewares = append(l.Middlewares, mw)
		l.OnAcknowledgeError = append(l.OnAcknowledgeError, func(ctx context.Context, msg *Message, handlerResult, err error) {
			var handlerResultStr *string
			if handlerResult != nil {
				v := handlerResult.Error()
				handlerResultStr = &v
			}

			logger.
				With(log.Fields{
					"messageID":    msg.ID,
					"topic":        msg.Topic,
					"handleResult": handlerResultStr,
				}).
				WithError(err).
				Log(ctx, errorLevel, "failed to acknowledge handled message")
		})
	}
}

func WithHandlerMetrics(metrics metric.Metrics) ListenerOption {
	mw := func(handler Handler) Handler {
		return func(ctx context.Context, msg *Message) error {
			started := time.Now()

			err := handler(ctx, msg)
			if GetHandlerMetadata(ctx).Panic != nil {
				metrics.WithLabel("topic", string(msg.Topic)).Increment("msg_handle_panics_total")
			}

			metrics.With(metric.Labels{
				"topic":   string(msg.Topic),
				"success": strconv.FormatBool(err == nil),
			}).Duration("msg_handle_duration_seconds", time.Since(started))
			return err
		}
	}

	return func(l *ListenerImpl) {
		l.Middlewares = append(l.Middlewares, mw)
	}
}

func WithHandlerMultipleWorkers(workersCount int) ListenerOption {
	if workersCount <= worker.MaxWorkersCountNumCPU {
		workersCount = runtime.NumCPU()
	}
	if workersCount == 0 {
		workersCount = 1
	}

	return func(l *ListenerImpl) {
		l.MaxProcessedMessages = workersCount
	}
}

func WithHandlerRetry(retry func() backoff.BackOff) ListenerOption {
	return func(l *ListenerImpl) {
		l.HandlerRetry = retry
	}
}
