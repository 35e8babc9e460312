package infra

import (
	"github.com/klwxsrx/deskbooking/data/sql/user"
	"github.com/klwxsrx/deskbooking/internal/pkg/cmd"
	"github.com/klwxsrx/deskbooking/internal/user/app/session"
	"github.com/klwxsrx/deskbooking/internal/user/domain"
	"github.com/klwxsrx/deskbooking/internal/user/infra/sql"
	"github.com/klwxsrx/deskbooking/pkg/lazy"
	pkgsql "github.com/klwxsrx/deskbooking/pkg/sql"
)

type SQLContainer struct {
	UserRepo        lazy.Loader[domain.UserRepository]
	ValidityTracker lazy.Loader[session.ValidityTracker]
}

func NewSQLContainer(
	db lazy.Loader[pkgsql.Database],
	dbMigrations lazy.Loader[cmd.SQLMigrations],
) lazy.Loader[SQLContainer] {
	return lazy.New(func() (SQLContainer, error) {
		dbMigrations.MustLoad().MustRegister(user.Migrations)

		client := transactionalClientProvider(db)
		return SQLContainer{
			UserRepo:        userRepoProvider(client),
			ValidityTracker: validityTrackerProvider(client),
		}, nil
	})
}

func transactionalClientProvider(db lazy.Loader[pkgsql.Database]) lazy.Loader[pkgsql.Client] {
	return lazy.New(func() (pkgsql.Client, error) {
		return pkgsql.NewTransactionalClient(db.MustLoad()), nil
	})
}

func userRepoProvider(client lazy.Loader[pkgsql.Client]) lazy.Loader[domain.UserRepository] {
	return lazy.New(func() (domain.UserRepository, error) {
		return sql.NewUserRepository(client.MustLoad()), nil
	})
}

func validityTrackerProvider(client lazy.Loader[pkgsql.Client]) lazy.Loader[session.ValidityTracker] {
	return lazy.New(func() (session.ValidityTracker, error) {
		return sql.NewValidityTracker(client.MustLoad()), nil
	})
}
