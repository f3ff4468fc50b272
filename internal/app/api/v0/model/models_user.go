package model

import (
	"time"

	"github.com/baglio/shop-portal/internal/domain"
)

// User is the portal representation of a backend user record.
type User struct {
	Id        string `json:"Id"`
	Email     string `json:"Email"`
	Firstname string `json:"Firstname"`
	Lastname  string `json:"Lastname"`
	Phone     string `json:"Phone"`
	Role      string `json:"Role"`
	MfaActive bool   `json:"MfaActive"`
	CreatedAt string `json:"CreatedAt"`
}

// ProfileUpdateRequest carries the editable profile fields.
type ProfileUpdateRequest struct {
	Firstname string `json:"Firstname" validate:"required,max=100"`
	Lastname  string `json:"Lastname" validate:"required,max=100"`
	Phone     string `json:"Phone" validate:"omitempty,max=40"`
}

// ChangePasswordRequest updates the account password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"CurrentPassword" validate:"required"`
	NewPassword     string `json:"NewPassword" validate:"required,min=8"`
}

func NewUser(src *domain.User) User {
	return User{
		Id:        string(src.Id),
		Email:     src.Email,
		Firstname: src.Firstname,
		Lastname:  src.Lastname,
		Phone:     src.Phone,
		Role:      string(src.Role),
		MfaActive: src.MfaActive,
		CreatedAt: src.CreatedAt.Format(time.RFC3339),
	}
}

func NewUsers(src []domain.User) []User {
	users := make([]User, len(src))
	for i := range src {
		users[i] = NewUser(&src[i])
	}
	return users
}
