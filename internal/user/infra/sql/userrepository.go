package sql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/klwxsrx/deskbooking/internal/user/domain"
	pkgsql "github.com/klwxsrx/deskbooking/pkg/sql"
)

const userTableName = "\"user\""

type userRepository struct {
	db pkgsql.Client
}

func NewUserRepository(db pkgsql.Client) domain.UserRepository {
	return userRepository{db: db}
}

func (r userRepository) NextID() domain.UserID {
	return domain.UserID{UUID: uuid.New()}
}

func (r userRepository) Store(ctx context.Context, user *domain.User) error {
	query, args, err := sq.
		Insert(userTableName).
		Columns("id", "email", "password_hash", "email_verified_at", "token_valid_after", "deleted_at").
		Values(user.ID.UUID, user.Email, user.PasswordHash, user.EmailVerifiedAt, user.TokenValidAfter, user.DeletedAt).
		Suffix(`on conflict (id) do update set
			email = excluded.email,
			password_hash = excluded.password_hash,
			email_verified_at = excluded.email_verified_at,
			token_valid_after = excluded.token_valid_after,
			deleted_at = excluded.deleted_at,
			updated_at = now()
		`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	_, err = r.db.ExecContext(ctx, query, args...)
	return err
}

func (r userRepository) Find(ctx context.Context, spec domain.FindUserSpecification) ([]domain.User, error) {
	query, args, err := r.buildFindQuery(spec).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []sqlxUser
	err = r.db.SelectContext(ctx, &rows, query, args...)
	if err != nil {
		return nil, err
	}

	return toDomainUsers(rows), nil
}

func (r userRepository) FindOne(ctx context.Context, spec domain.FindUserSpecification) (*domain.User, error) {
	query, args, err := r.buildFindQuery(spec).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var row sqlxUser
	err = r.db.GetContext(ctx, &row, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	return toDomainUser(&row), nil
}

func (r userRepository) buildFindQuery(spec domain.FindUserSpecification) sq.SelectBuilder {
	qb := sq.
		Select("id", "email", "password_hash", "email_verified_at", "token_valid_after", "deleted_at").
		From(userTableName)
	if len(spec.IDs) > 0 {
		ids := make([]uuid.UUID, 0, len(spec.IDs))
		for _, id := range spec.IDs {
			ids = append(ids, id.UUID)
		}
		qb = qb.Where(sq.Eq{"id": ids})
	}
	if len(spec.Emails) > 0 {
		qb = qb.Where(sq.Eq{"email": spec.Emails})
	}

	return qb
}

type sqlxUser struct {
	ID              uuid.UUID  `db:"id"`
	Email           string     `db:"email"`
	PasswordHash    string     `db:"password_hash"`
	EmailVerifiedAt *time.Time `db:"email_verified_at"`
	TokenValidAfter *time.Time `db:"token_valid_after"`
	DeletedAt       *time.Time `db:"deleted_at"`
}
