package sql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/klwxsrx/deskbooking/internal/user/app/session"
	"github.com/klwxsrx/deskbooking/internal/user/domain"
	pkgsql "github.com/klwxsrx/deskbooking/pkg/sql"
)

type validityTracker struct {
	db pkgsql.Client
}

func NewValidityTracker(db pkgsql.Client) session.ValidityTracker {
	return validityTracker{db: db}
}

func (t validityTracker) GetTokenValidAfter(ctx context.Context, userID domain.UserID) (*time.Time, error) {
	query, args, err := sq.
		Select("token_valid_after").
		From(userTableName).
		Where(sq.Eq{"id": userID.UUID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var validAfter *time.Time
	err = t.db.GetContext(ctx, &validAfter, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, session.ErrUnknownUser
	}
	if err != nil {
		return nil, err
	}
	if validAfter != nil {
		utc := validAfter.UTC()
		validAfter = &utc
	}

	return validAfter, nil
}
