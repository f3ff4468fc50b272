package domain

import "time"

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

type UserIdentifier string

type UserRole string

// User is a read-through copy of the backend user record. The backend owns
// and validates the entity, the portal only renders it.
type User struct {
	Id        UserIdentifier `json:"id"`
	Email     string         `json:"email"`
	Firstname string         `json:"firstname"`
	Lastname  string         `json:"lastname"`
	Phone     string         `json:"phone"`
	Role      UserRole       `json:"role"`
	MfaActive bool           `json:"mfaActive"`
	CreatedAt time.Time      `json:"createdAt"`
}

// IsAdmin returns true if the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// DisplayName returns the full name of the user, falling back to the email address.
func (u *User) DisplayName() string {
	switch {
	case u.Firstname == "" && u.Lastname == "":
		return u.Email
	case u.Firstname == "":
		return u.Lastname
	case u.Lastname == "":
		return u.Firstname
	default:
		return u.Firstname + " " + u.Lastname
	}
}
