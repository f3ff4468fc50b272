package model

// LoginRequest carries the credentials of a password login.
type LoginRequest struct {
	Email    string `json:"Email" validate:"required,email"`
	Password string `json:"Password" validate:"required"`
}

// MfaCodeRequest carries a one-time code for MFA verification, activation
// or deactivation.
type MfaCodeRequest struct {
	Code string `json:"Code" validate:"required,numeric,len=6"`
}

// SignupRequest carries the registration data of a new shopper.
type SignupRequest struct {
	Email     string `json:"Email" validate:"required,email"`
	Firstname string `json:"Firstname" validate:"required"`
	Lastname  string `json:"Lastname" validate:"required"`
	Phone     string `json:"Phone" validate:"omitempty,e164"`
	Password  string `json:"Password" validate:"required,min=8"`
}

// PasswordResetRequest asks for a reset mail.
type PasswordResetRequest struct {
	Email string `json:"Email" validate:"required,email"`
}

// PasswordResetConfirmRequest exchanges a reset token for a new password.
type PasswordResetConfirmRequest struct {
	Token    string `json:"Token" validate:"required"`
	Password string `json:"Password" validate:"required,min=8"`
}

// LoginResponse tells the client whether the login is complete or an MFA
// code has to follow.
type LoginResponse struct {
	MfaRequired bool         `json:"MfaRequired"`
	Session     *SessionInfo `json:"Session,omitempty"`
}

// SessionInfo describes the state of the portal session.
type SessionInfo struct {
	LoggedIn       bool    `json:"LoggedIn"`
	IsAdmin        bool    `json:"IsAdmin"`
	UserIdentifier *string `json:"UserIdentifier,omitempty"`
	UserFirstname  *string `json:"UserFirstname,omitempty"`
	UserLastname   *string `json:"UserLastname,omitempty"`
	UserEmail      *string `json:"UserEmail,omitempty"`
}

// MfaSetupResponse carries the data for authenticator enrollment. The
// provisioning URI is also available as a QR code from the mfa/setup/qr
// endpoint.
type MfaSetupResponse struct {
	Secret          string `json:"Secret"`
	ProvisioningUri string `json:"ProvisioningUri"`
}
