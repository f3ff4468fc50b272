package backend

import (
	"context"
	"errors"
	"fmt"

	"github.com/baglio/shop-portal/internal/domain"
)

// LoginResult is the backend answer to a credential login. If the account
// has MFA enabled, the session is only half-open and a code verification
// must follow before protected endpoints accept the session.
type LoginResult struct {
	MfaRequired bool        `json:"mfaRequired"`
	User        domain.User `json:"user"`
}

// Login opens a backend session with email and password. The session cookie
// lands in the client's cookie jar. This endpoint is exempt from token
// decoration, it happens before a token context exists.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	payload := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{email, password}

	var result LoginResult
	if err := c.Post(ctx, "/api/creds/login", payload, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// VerifyMfa completes a login that required a second factor.
func (c *Client) VerifyMfa(ctx context.Context, code string) (*domain.User, error) {
	payload := struct {
		Code string `json:"code"`
	}{code}

	var user domain.User
	if err := c.Post(ctx, "/api/creds/mfa/verify", payload, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

// Signup registers a new shopper account. Exempt from token decoration.
func (c *Client) Signup(ctx context.Context, user domain.User, password string) (*domain.User, error) {
	payload := struct {
		Email     string `json:"email"`
		Firstname string `json:"firstname"`
		Lastname  string `json:"lastname"`
		Phone     string `json:"phone"`
		Password  string `json:"password"`
	}{user.Email, user.Firstname, user.Lastname, user.Phone, password}

	var created domain.User
	if err := c.Post(ctx, "/api/creds/signup", payload, &created); err != nil {
		return nil, err
	}

	return &created, nil
}

// Logout terminates the backend session and invalidates the local token
// cache; the cached token is bound to the session that just ended.
func (c *Client) Logout(ctx context.Context) error {
	err := c.Post(ctx, "/api/creds/logout", nil, nil)
	c.tokens.Clear()
	if err != nil && !errors.Is(err, ErrUnauthenticated) {
		return fmt.Errorf("logout failed: %w", err)
	}
	return nil
}

// Me returns the identity behind the current backend session. A 401 or a
// response without an id means the session is not authenticated.
func (c *Client) Me(ctx context.Context) (*domain.User, error) {
	var user domain.User
	if err := c.Get(ctx, c.cfg.IdentityPath, &user); err != nil {
		return nil, err
	}

	if user.Id == "" {
		return nil, ErrUnauthenticated
	}

	return &user, nil
}

// RequestPasswordReset asks the backend to mail a reset link to the given
// address. The backend intentionally does not reveal whether the address
// exists.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) error {
	payload := struct {
		Email string `json:"email"`
	}{email}

	return c.Post(ctx, "/api/creds/password-reset", payload, nil)
}

// ConfirmPasswordReset exchanges a reset token for a new password.
func (c *Client) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	payload := struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}{token, newPassword}

	return c.Post(ctx, "/api/creds/password-reset/confirm", payload, nil)
}

// MfaSetup holds what the shopper needs to enroll an authenticator app. The
// backend generates the secret, the portal only renders the provisioning
// URI as a QR code.
type MfaSetup struct {
	Secret          string `json:"secret"`
	ProvisioningUri string `json:"provisioningUri"`
}

// StartMfaSetup begins MFA enrollment for the logged-in user.
func (c *Client) StartMfaSetup(ctx context.Context) (*MfaSetup, error) {
	var setup MfaSetup
	if err := c.Post(ctx, "/api/creds/mfa/setup", nil, &setup); err != nil {
		return nil, err
	}

	return &setup, nil
}

// ActivateMfa confirms MFA enrollment with a first code from the
// authenticator app.
func (c *Client) ActivateMfa(ctx context.Context, code string) error {
	payload := struct {
		Code string `json:"code"`
	}{code}

	return c.Post(ctx, "/api/creds/mfa/activate", payload, nil)
}

// DeactivateMfa turns MFA off for the logged-in user.
func (c *Client) DeactivateMfa(ctx context.Context, code string) error {
	payload := struct {
		Code string `json:"code"`
	}{code}

	return c.Post(ctx, "/api/creds/mfa/deactivate", payload, nil)
}
