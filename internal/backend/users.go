package backend

import (
	"context"
	"net/url"
	"strconv"

	"github.com/baglio/shop-portal/internal/domain"
)

// ListUsers returns all registered shoppers, admin only.
func (c *Client) ListUsers(ctx context.Context, page, pageSize int) ([]domain.User, error) {
	query := url.Values{}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if pageSize > 0 {
		query.Set("pageSize", strconv.Itoa(pageSize))
	}

	var users []domain.User
	if err := c.Get(ctx, joinQuery("/api/users", query), &users); err != nil {
		return nil, err
	}

	return users, nil
}

// UpdateProfile changes the profile fields of the logged-in user.
func (c *Client) UpdateProfile(ctx context.Context, user domain.User) (*domain.User, error) {
	payload := struct {
		Firstname string `json:"firstname"`
		Lastname  string `json:"lastname"`
		Phone     string `json:"phone"`
	}{user.Firstname, user.Lastname, user.Phone}

	var updated domain.User
	if err := c.Put(ctx, "/api/profile", payload, &updated); err != nil {
		return nil, err
	}

	return &updated, nil
}

// ChangePassword replaces the password of the logged-in user.
func (c *Client) ChangePassword(ctx context.Context, current, updated string) error {
	payload := struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}{current, updated}

	return c.Put(ctx, "/api/profile/password", payload, nil)
}

// GetStats returns the admin dashboard aggregates.
func (c *Client) GetStats(ctx context.Context) (*domain.StatsSummary, error) {
	var stats domain.StatsSummary
	if err := c.Get(ctx, "/api/admin/stats", &stats); err != nil {
		return nil, err
	}

	return &stats, nil
}
