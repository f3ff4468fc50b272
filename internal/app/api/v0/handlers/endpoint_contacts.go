package handlers

import (
	"net/http"

	"github.com/go-pkgz/routegroup"

	"github.com/baglio/shop-portal/internal/app"
	"github.com/baglio/shop-portal/internal/app/api/core/request"
	"github.com/baglio/shop-portal/internal/app/api/core/respond"
	"github.com/baglio/shop-portal/internal/app/api/v0/model"
	"github.com/baglio/shop-portal/internal/domain"
)

type ContactEndpoint struct {
	clients       ClientResolver
	authenticator Authenticator
	validate      Validator
	bus           EventPublisher
}

func NewContactEndpoint(
	clients ClientResolver,
	authenticator Authenticator,
	validator Validator,
	bus EventPublisher,
) ContactEndpoint {
	return ContactEndpoint{
		clients:       clients,
		authenticator: authenticator,
		validate:      validator,
		bus:           bus,
	}
}

func (e ContactEndpoint) GetName() string {
	return "ContactEndpoint"
}

func (e ContactEndpoint) RegisterRoutes(g *routegroup.Bundle) {
	apiGroup := g.Mount("/contact")

	apiGroup.HandleFunc("POST /messages", e.handleMessagePost())

	apiGroup.With(e.authenticator.LoggedIn(ScopeAdmin)).HandleFunc("GET /messages", e.handleMessagesGet())
	apiGroup.With(e.authenticator.LoggedIn(ScopeAdmin)).HandleFunc("PUT /messages/{id}/status",
		e.handleMessageStatusPut())
}

// handleMessagePost returns a portal Handler function.
//
// @ID contact_handleMessagePost
// @Tags Contact
// @Summary Submit a contact form enquiry.
// @Produce json
// @Success 200 {object} model.ContactMessage
// @Failure 400 {object} model.Error
// @Router /contact/messages [post]
func (e ContactEndpoint) handleMessagePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var contactData model.ContactRequest
		if err := request.BodyJson(r, &contactData); err != nil {
			respond.JSON(w, http.StatusBadRequest, model.Error{Code: http.StatusBadRequest, Message: err.Error()})
			return
		}
		if err := e.validate.Struct(contactData); err != nil {
			respond.JSON(w, http.StatusBadRequest, model.Error{Code: http.StatusBadRequest, Message: err.Error()})
			return
		}

		client, err := e.clients.Client(r.Context())
		if err != nil {
			respondBackendError(w, err)
			return
		}

		message, err := client.SubmitContact(r.Context(), domain.ContactMessage{
			Name:    contactData.Name,
			Email:   contactData.Email,
			Subject: contactData.Subject,
			Message: contactData.Message,
		})
		if err != nil {
			respondBackendError(w, err)
			return
		}

		e.bus.Publish(app.TopicContactSubmitted, message.Email)

		respond.JSON(w, http.StatusOK, model.NewContactMessage(*message))
	}
}

// handleMessagesGet returns a portal Handler function.
//
// @ID contact_handleMessagesGet
// @Tags Contact
// @Summary Get contact enquiries, optionally filtered by triage state.
// @Param status query string false "Triage state filter (open, resolved, spam)"
// @Produce json
// @Success 200 {object} []model.ContactMessage
// @Failure 403 {object} model.Error
// @Router /contact/messages [get]
func (e ContactEndpoint) handleMessagesGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		client, err := e.clients.Client(r.Context())
		if err != nil {
			respondBackendError(w, err)
			return
		}

		status := domain.ContactStatus(request.Query(r, "status"))
		messages, err := client.ListContacts(r.Context(), status)
		if err != nil {
			respondBackendError(w, err)
			return
		}

		respond.JSON(w, http.StatusOK, model.NewContactMessages(messages))
	}
}

// handleMessageStatusPut returns a portal Handler function.
//
// @ID contact_handleMessageStatusPut
// @Tags Contact
// @Summary Move an enquiry to another triage state.
// @Param id path string true "Message identifier"
// @Produce json
// @Success 200 {object} model.ContactMessage
// @Failure 400 {object} model.Error
// @Router /contact/messages/{id}/status [put]
func (e ContactEndpoint) handleMessageStatusPut() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := request.Path(r, "id")
		if id == "" {
			respond.JSON(w, http.StatusBadRequest,
				model.Error{Code: http.StatusBadRequest, Message: "missing message id"})
			return
		}

		var statusData model.UpdateContactStatusRequest
		if err := request.BodyJson(r, &statusData); err != nil {
			respond.JSON(w, http.StatusBadRequest, model.Error{Code: http.StatusBadRequest, Message: err.Error()})
			return
		}
		if err := e.validate.Struct(statusData); err != nil {
			respond.JSON(w, http.StatusBadRequest, model.Error{Code: http.StatusBadRequest, Message: err.Error()})
			return
		}

		client, err := e.clients.Client(r.Context())
		if err != nil {
			respondBackendError(w, err)
			return
		}

		message, err := client.UpdateContactStatus(r.Context(), domain.ContactIdentifier(id),
			domain.ContactStatus(statusData.Status))
		if err != nil {
			respondBackendError(w, err)
			return
		}

		respond.JSON(w, http.StatusOK, model.NewContactMessage(*message))
	}
}
