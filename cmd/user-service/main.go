package main

import (
	"context"

	"github.com/klwxsrx/deskbooking/internal/pkg/cmd"
	"github.com/klwxsrx/deskbooking/internal/user"
	pkgcmd "github.com/klwxsrx/deskbooking/pkg/cmd"
)

func main() {
	ctx := context.Background()
	infra := cmd.NewInfrastructureContainer(ctx)
	defer infra.Close(ctx)
	defer pkgcmd.HandleAppPanic(ctx, infra.Logger.MustLoad(), infra.Close)

	container := user.NewDependencyContainer(
		infra.DB,
		infra.DBMigrations,
		infra.Redis,
		infra.MessageProducer,
		infra.Metrics,
		infra.Observer,
		infra.Logger,
	)

	httpServer := infra.HTTPServer.MustLoad()
	container.MustRegisterHTTPHandlers(httpServer)

	pkgcmd.MustRun(ctx, infra.Logger.MustLoad(),
		pkgcmd.TermSignalAwaiter,
		httpServer.Listener,
	)
}
