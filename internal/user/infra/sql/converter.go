package sql

import "github.com/klwxsrx/deskbooking/internal/user/domain"

func toDomainUser(row *sqlxUser) *domain.User {
	return &domain.User{
		ID:              domain.UserID{UUID: row.ID},
		Email:           row.Email,
		PasswordHash:    row.PasswordHash,
		EmailVerifiedAt: row.EmailVerifiedAt,
		TokenValidAfter: row.TokenValidAfter,
		DeletedAt:       row.DeletedAt,
	}
}

func toDomainUsers(rows []sqlxUser) []domain.User {
	result := make([]domain.User, 0, len(rows))
	for i := range rows {
		result = append(result, *toDomainUser(&rows[i]))
	}

	return result
}
