package domain

import "time"

type ContactIdentifier string

type ContactStatus string

const (
	ContactStatusOpen     ContactStatus = "open"
	ContactStatusResolved ContactStatus = "resolved"
	ContactStatusSpam     ContactStatus = "spam"
)

// ContactMessage is a customer enquiry, triaged in the admin console.
type ContactMessage struct {
	Id        ContactIdentifier `json:"id"`
	Name      string            `json:"name"`
	Email     string            `json:"email"`
	Subject   string            `json:"subject"`
	Message   string            `json:"message"`
	Status    ContactStatus     `json:"status"`
	CreatedAt time.Time         `json:"createdAt"`
}

// ActivityLog is a backend-recorded audit entry, listed read-only in the
// admin console.
type ActivityLog struct {
	Id        string         `json:"id"`
	UserId    UserIdentifier `json:"userId"`
	Action    string         `json:"action"`
	Details   string         `json:"details"`
	Timestamp time.Time      `json:"timestamp"`
}
