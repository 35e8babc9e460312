package sql

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/klwxsrx/deskbooking/pkg/log"
	"github.com/klwxsrx/deskbooking/pkg/persistence"
)

const (
	migrationLock    = "perform_migration_lock"
	migrationFileExt = ".sql"
	querySeparator   = ";\n"

	migrationTableDDL = `
		create table if not exists migration (
			id text primary key,
			applied_at timestamptz not null default now()
		)
	`
)

var errEmptyMigration = errors.New("empty migration")

// MigrationSource is a directory of *.sql files applied in lexical order, each file is applied once
type MigrationSource fs.FS

func FSMigrations(files fs.FS) MigrationSource {
	return files
}

type Migrator interface {
	Execute(ctx context.Context, sources ...MigrationSource) error
}

type migrator struct {
	transaction persistence.Transaction
	client      Client
	logger      log.Logger
}

func NewMigrator(db TxClient, logger log.Logger) Migrator {
	return &migrator{
		transaction: NewTransaction(db, "migration"),
		client:      NewTransactionalClient(db),
		logger:      logger,
	}
}

func (m *migrator) Execute(ctx context.Context, sources ...MigrationSource) error {
	err := m.transaction.WithinContext(ctx, func(ctx context.Context) error {
		_, err := m.client.ExecContext(ctx, migrationTableDDL)
		return err
	}, migrationLock)
	if err != nil {
		return fmt.Errorf("create migration table: %w", err)
	}

	for _, source := range sources {
		fileNames, err := getMigrationFileNames(source)
		if err != nil {
			return fmt.Errorf("get migration file names: %w", err)
		}

		for _, fileName := range fileNames {
			err = m.transaction.WithinContext(ctx, func(ctx context.Context) error {
				return m.performMigration(ctx, source, fileName)
			}, migrationLock)
			if err != nil {
				return fmt.Errorf("migration %s failed: %w", fileName, err)
			}
		}
	}

	return nil
}

func (m *migrator) performMigration(ctx context.Context, source MigrationSource, migrationID string) error {
	query, args, err := sq.
		Select("count(*)").
		From("migration").
		Where(sq.Eq{"id": migrationID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	var applied int
	err = m.client.GetContext(ctx, &applied, query, args...)
	if err != nil {
		return fmt.Errorf("check migration: %w", err)
	}
	if applied > 0 {
		return nil
	}

	content, err := fs.ReadFile(source, migrationID)
	if err != nil {
		return fmt.Errorf("read migration: %w", err)
	}

	queries := splitToQueries(string(content))
	if len(queries) == 0 {
		return errEmptyMigration
	}
	for _, q := range queries {
		_, err = m.client.ExecContext(ctx, q)
		if err != nil {
			return err
		}
	}

	query, args, err = sq.Insert("migration").Columns("id").Values(migrationID).ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	_, err = m.client.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("store migration: %w", err)
	}

	m.logger.WithField("migrationID", migrationID).Info(ctx, "migration executed successfully")
	return nil
}

func getMigrationFileNames(source MigrationSource) ([]string, error) {
	entries, err := fs.ReadDir(source, ".")
	if err != nil {
		return nil, err
	}

	result := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != migrationFileExt {
			continue
		}
		result = append(result, entry.Name())
	}

	slices.Sort(result)
	return result, nil
}

func splitToQueries(sql string) []string {
	parts := strings.Split(sql, querySeparator)
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		result = append(result, part)
	}

	return result
}
