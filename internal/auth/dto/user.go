package dto

import (
	"github.com/SupermaxiMarket/pme-freelance-assistant/internal/auth/domain"
)

// UserOutput is the public projection of a user. The password hash is never
// part of any response.
type UserOutput struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	BusinessType string `json:"businessType"`
	IsPremium    bool   `json:"isPremium"`
}

func NewUserOutput(user *domain.User) UserOutput {
	return UserOutput{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		BusinessType: user.BusinessType,
		IsPremium:    user.IsPremium,
	}
}

type UpdateProfileInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
