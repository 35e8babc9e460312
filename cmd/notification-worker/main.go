package main

import (
	"context"

	"github.com/klwxsrx/deskbooking/internal/notification"
	"github.com/klwxsrx/deskbooking/internal/pkg/cmd"
	pkgcmd "github.com/klwxsrx/deskbooking/pkg/cmd"
)

func main() {
	ctx := context.Background()
	infra := cmd.NewInfrastructureContainer(ctx)
	defer infra.Close(ctx)
	defer pkgcmd.HandleAppPanic(ctx, infra.Logger.MustLoad(), infra.Close)

	container := notification.NewDependencyContainer(
		infra.HTTPClientFactory,
		infra.Logger,
	)

	jobs := container.MustInitMessageListeners(infra.MessageConsumers, infra.MessageListener)

	// metrics and health are served by the same http server as in services
	httpServer := infra.HTTPServer.MustLoad()

	pkgcmd.MustRun(ctx, infra.Logger.MustLoad(),
		append(jobs, pkgcmd.TermSignalAwaiter, httpServer.Listener)...,
	)
}
