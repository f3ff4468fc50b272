package backend

import (
	"context"
	"net/url"
	"strconv"

	"github.com/baglio/shop-portal/internal/domain"
)

// SubmitContact sends a customer enquiry to the backend.
func (c *Client) SubmitContact(ctx context.Context, msg domain.ContactMessage) (*domain.ContactMessage, error) {
	var created domain.ContactMessage
	if err := c.Post(ctx, "/api/contacts", msg, &created); err != nil {
		return nil, err
	}

	return &created, nil
}

// ListContacts returns all enquiries for triage, admin only.
func (c *Client) ListContacts(ctx context.Context, status domain.ContactStatus) ([]domain.ContactMessage, error) {
	query := url.Values{}
	if status != "" {
		query.Set("status", string(status))
	}

	var contacts []domain.ContactMessage
	if err := c.Get(ctx, joinQuery("/api/contacts", query), &contacts); err != nil {
		return nil, err
	}

	return contacts, nil
}

// UpdateContactStatus marks an enquiry as resolved or spam, admin only.
func (c *Client) UpdateContactStatus(ctx context.Context, id domain.ContactIdentifier, status domain.ContactStatus) (*domain.ContactMessage, error) {
	payload := struct {
		Status domain.ContactStatus `json:"status"`
	}{status}

	var updated domain.ContactMessage
	if err := c.Put(ctx, "/api/contacts/"+url.PathEscape(string(id))+"/status", payload, &updated); err != nil {
		return nil, err
	}

	return &updated, nil
}

// ListActivityLogs returns backend audit entries, admin only.
func (c *Client) ListActivityLogs(ctx context.Context, page, pageSize int) ([]domain.ActivityLog, error) {
	query := url.Values{}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if pageSize > 0 {
		query.Set("pageSize", strconv.Itoa(pageSize))
	}

	var logs []domain.ActivityLog
	if err := c.Get(ctx, joinQuery("/api/activity-logs", query), &logs); err != nil {
		return nil, err
	}

	return logs, nil
}
