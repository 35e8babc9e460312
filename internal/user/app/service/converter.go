package service

import "github.com/klwxsrx/deskbooking/internal/user/domain"

func toUserData(user *domain.User) *UserData {
	if user == nil {
		return nil
	}

	return &UserData{
		ID:              user.ID,
		Email:           user.Email,
		EmailVerifiedAt: user.EmailVerifiedAt,
		DeletedAt:       user.DeletedAt,
	}
}
