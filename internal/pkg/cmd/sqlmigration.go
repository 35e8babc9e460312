package cmd

import (
	"context"
	"fmt"

	"github.com/klwxsrx/deskbooking/pkg/log"
	"github.com/klwxsrx/deskbooking/pkg/sql"
)

type (
	SQLMigrations interface {
		MustRegister(sources ...sql.MigrationSource)
	}

	sqlMigrations struct {
		ctx      context.Context
		migrator sql.Migrator
		enabled  bool
		logger   log.Logger
	}
)

// NewSQLMigrations applies registered sources right away, disabled migrations are left to a dedicated release step
func NewSQLMigrations(
	ctx context.Context,
	migrator sql.Migrator,
	enabled bool,
	logger log.Logger,
) SQLMigrations {
	return &sqlMigrations{
		ctx:      ctx,
		migrator: migrator,
		enabled:  enabled,
		logger:   logger,
	}
}

func (s *sqlMigrations) MustRegister(sources ...sql.MigrationSource) {
	if len(sources) == 0 {
		return
	}
	if !s.enabled {
		s.logger.WithField("sources", len(sources)).Info(s.ctx, "sql migrations are disabled, skipped")
		return
	}

	err := s.migrator.Execute(s.ctx, sources...)
	if err != nil {
		panic(fmt.Errorf("execute migrations: %w", err))
	}
}
