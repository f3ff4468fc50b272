package model

import (
	"time"

	"github.com/baglio/shop-portal/internal/domain"
)

// ContactRequest is a customer enquiry submitted through the contact form.
type ContactRequest struct {
	Name    string `json:"Name" validate:"required"`
	Email   string `json:"Email" validate:"required,email"`
	Subject string `json:"Subject" validate:"required,max=200"`
	Message string `json:"Message" validate:"required,max=5000"`
}

// ContactMessage is an enquiry as listed in the admin console.
type ContactMessage struct {
	Id        string `json:"Id"`
	Name      string `json:"Name"`
	Email     string `json:"Email"`
	Subject   string `json:"Subject"`
	Message   string `json:"Message"`
	Status    string `json:"Status"`
	CreatedAt string `json:"CreatedAt"`
}

// UpdateContactStatusRequest changes the triage state of an enquiry.
type UpdateContactStatusRequest struct {
	Status string `json:"Status" validate:"required,oneof=open resolved spam"`
}

// ActivityLog is a backend audit entry.
type ActivityLog struct {
	Id        string `json:"Id"`
	UserId    string `json:"UserId"`
	Action    string `json:"Action"`
	Details   string `json:"Details"`
	Timestamp string `json:"Timestamp"`
}

func NewContactMessage(src domain.ContactMessage) ContactMessage {
	return ContactMessage{
		Id:        string(src.Id),
		Name:      src.Name,
		Email:     src.Email,
		Subject:   src.Subject,
		Message:   src.Message,
		Status:    string(src.Status),
		CreatedAt: src.CreatedAt.Format(time.RFC3339),
	}
}

func NewContactMessages(src []domain.ContactMessage) []ContactMessage {
	messages := make([]ContactMessage, len(src))
	for i := range src {
		messages[i] = NewContactMessage(src[i])
	}
	return messages
}

func NewActivityLogs(src []domain.ActivityLog) []ActivityLog {
	logs := make([]ActivityLog, len(src))
	for i, entry := range src {
		logs[i] = ActivityLog{
			Id:        entry.Id,
			UserId:    string(entry.UserId),
			Action:    entry.Action,
			Details:   entry.Details,
			Timestamp: entry.Timestamp.Format(time.RFC3339),
		}
	}
	return logs
}
