package cmd

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/klwxsrx/deskbooking/pkg/log"
)

// HandleAppPanic must be deferred directly. On panic it logs the stack, runs cleanups and exits with code 1
func HandleAppPanic(ctx context.Context, logger log.Logger, cleanups ...func(context.Context)) {
	msg := recover()
	if msg == nil {
		return
	}

	logPanic(ctx, logger, msg, debug.Stack())
	for _, cleanup := range cleanups {
		cleanup(ctx)
	}
	os.Exit(1)
}

func logPanic(ctx context.Context, logger log.Logger, msg any, stack []byte) {
	logger.WithField("panic", log.Fields{
		"message": fmt.Sprintf("%v", msg),
		"stack":   string(stack),
	}).Error(ctx, "app failed with panic")
}
