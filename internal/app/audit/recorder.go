// Package audit mirrors notable shopper actions into the portal log. The
// durable activity log lives in the commerce backend; this recorder only
// gives operators a local trace without another backend round trip.
package audit

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	evbus "github.com/vardius/message-bus"

	"github.com/baglio/shop-portal/internal/app"
	"github.com/baglio/shop-portal/internal/domain"
)

type Recorder struct {
	bus evbus.MessageBus

	eventCount atomic.Uint64
}

func NewRecorder(bus evbus.MessageBus) (*Recorder, error) {
	r := &Recorder{
		bus: bus,
	}

	if err := r.connectToMessageBus(); err != nil {
		return nil, fmt.Errorf("failed to setup message bus: %w", err)
	}

	return r, nil
}

// StartBackgroundJobs launches the hourly event-count summary log line.
func (r *Recorder) StartBackgroundJobs(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-time.After(1 * time.Hour):
			}

			slog.Debug("shopper activity summary", "events", r.eventCount.Swap(0))
		}
	}()
}

func (r *Recorder) connectToMessageBus() error {
	subscriptions := map[string]any{
		app.TopicAuthLogin:        r.authLoginEvent,
		app.TopicAuthLogout:       r.authLogoutEvent,
		app.TopicAuthSignup:       r.authSignupEvent,
		app.TopicCartUpdated:      r.cartUpdatedEvent,
		app.TopicOrderPlaced:      r.orderPlacedEvent,
		app.TopicContactSubmitted: r.contactSubmittedEvent,
	}

	for topic, handler := range subscriptions {
		if err := r.bus.Subscribe(topic, handler); err != nil {
			return fmt.Errorf("failed to subscribe to %s: %w", topic, err)
		}
	}

	return nil
}

func (r *Recorder) authLoginEvent(userId domain.UserIdentifier) {
	r.eventCount.Add(1)
	slog.Info("user logged in", "user", userId)
}

func (r *Recorder) authLogoutEvent(userId domain.UserIdentifier) {
	r.eventCount.Add(1)
	slog.Info("user logged out", "user", userId)
}

func (r *Recorder) authSignupEvent(userId domain.UserIdentifier) {
	r.eventCount.Add(1)
	slog.Info("new user signed up", "user", userId)
}

func (r *Recorder) cartUpdatedEvent(userId domain.UserIdentifier, count int) {
	r.eventCount.Add(1)
	slog.Debug("cart updated", "user", userId, "items", count)
}

func (r *Recorder) orderPlacedEvent(userId domain.UserIdentifier, orderId domain.OrderIdentifier) {
	r.eventCount.Add(1)
	slog.Info("order placed", "user", userId, "order", orderId)
}

func (r *Recorder) contactSubmittedEvent(email string) {
	r.eventCount.Add(1)
	slog.Info("contact message submitted", "email", email)
}
