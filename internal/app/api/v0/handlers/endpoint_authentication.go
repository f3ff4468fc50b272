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

type AuthEndpoint struct {
	clients       ClientResolver
	authenticator Authenticator
	session       Session
	validate      Validator
	bus           EventPublisher
}

func NewAuthEndpoint(
	clients ClientResolver,
	authenticator Authenticator,
	session Session,
	validator Validator,
	bus EventPublisher,
) AuthEndpoint {
	return AuthEndpoint{
		clients:       clients,
		authenticator: authenticator,
		session:       session,
		validate:      validator,
		bus:           bus,
	}
}

func (e AuthEndpoint) GetName() string {
	return "AuthEndpoint"
}

func (e AuthEndpoint) RegisterRoutes(g *routegroup.Bundle) {
	apiGroup := g.Mount("/auth")

	apiGroup.HandleFunc("GET /session", e.handleSessionInfoGet())

	apiGroup.HandleFunc("POST /login", e.handleLoginPost())
	apiGroup.HandleFunc("POST /login/mfa", e.handleMfaVerifyPost())
	apiGroup.HandleFunc("POST /signup", e.handleSignupPost())
	apiGroup.HandleFunc("POST /password-reset", e.handlePasswordResetPost())
	apiGroup.HandleFunc("POST /password-reset/confirm", e.handlePasswordResetConfirmPost())
	apiGroup.With(e.authenticator.LoggedIn()).HandleFunc("POST /logout", e.handleLogoutPost())
}

// handleSessionInfoGet returns a portal Handler function.
//
// @ID auth_handleSessionInfoGet
// @Tags Authentication
// @Summary Get information about the currently logged-in user.
// @Produce json
// @Success 200 {object} model.SessionInfo
// @Router /auth/session [get]
func (e AuthEndpoint) handleSessionInfoGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		currentSession := e.session.GetData(r.Context())

		respond.JSON(w, http.StatusOK, newSessionInfo(currentSession))
	}
}

// handleLoginPost returns a portal Handler function.
//
// @ID auth_handleLoginPost
// @Tags Authentication
// @Summary Log in with email and password.
// @Produce json
// @Success 200 {object} model.LoginResponse
// @Failure 401 {object} model.Error
// @Router /auth/login [post]
func (e AuthEndpoint) handleLoginPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		currentSession := e.session.GetData(r.Context())
		if currentSession.LoggedIn {
			respond.JSON(w, http.StatusOK, model.LoginResponse{
				Session: sessionInfoPtr(currentSession),
			})
			return
		}

		var loginData model.LoginRequest
		if err := request.BodyJson(r, &loginData); err != nil {
			respond.JSON(w, http.StatusBadRequest, model.Error{Code: http.StatusBadRequest, Message: err.Error()})
			return
		}
		if err := e.validate.Struct(loginData); err != nil {
			respond.JSON(w, http.StatusBadRequest, model.Error{Code: http.StatusBadRequest, Message: err.Error()})
			return
		}

		// Rotate before the backend client is resolved, so the backend
		// session lands in the jar of the post-login session token.
		e.session.RotateId(r.Context())

		client, err := e.clients.Client(r.Context())
		if err != nil {
			respondBackendError(w, err)
			return
		}

		result, err := client.Login(r.Context(), loginData.Email, loginData.Password)
		if err != nil {
			respond.JSON(w, http.StatusUnauthorized,
				model.Error{Code: http.StatusUnauthorized, Message: "login failed"})
			return
		}

		if result.MfaRequired {
			currentSession.MfaPendingUser = loginData.Email
			e.session.SetData(r.Context(), currentSession)

			respond.JSON(w, http.StatusOK, model.LoginResponse{MfaRequired: true})
			return
		}

		newSession := e.setAuthenticatedUser(r, &result.User)
		e.bus.Publish(app.TopicAuthLogin, result.User.Id)

		respond.JSON(w, http.StatusOK, model.LoginResponse{Session: sessionInfoPtr(newSession)})
	}
}

// handleMfaVerifyPost returns a portal Handler function.
//
// @ID auth_handleMfaVerifyPost
// @Tags Authentication
// @Summary Complete a pending login with a one-time code.
// @Produce json
// @Success 200 {object} model.LoginResponse
// @Failure 401 {object} model.Error
// @Router /auth/login/mfa [post]
func (e AuthEndpoint) handleMfaVerifyPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		currentSession := e.session.GetData(r.Context())
		if currentSession.MfaPendingUser == "" {
			respond.JSON(w, http.StatusBadRequest,
				model.Error{Code: http.StatusBadRequest, Message: "no pending login"})
			return
		}

		var codeData model.MfaCodeRequest
		if err := request.BodyJson(r, &codeData); err != nil {
			respond.JSON(w, http.StatusBadRequest, model.Error{Code: http.StatusBadRequest, Message: err.Error()})
			return
		}
		if err := e.validate.Struct(codeData); err != nil {
			respond.JSON(w, http.StatusBadRequest, model.Error{Code: http.StatusBadRequest, Message: err.Error()})
			return
		}

		// No token rotation here, the half-open backend session lives in
		// the client that was resolved during the password step.
		client, err := e.clients.Client(r.Context())
		if err != nil {
			respondBackendError(w, err)
			return
		}

		user, err := client.VerifyMfa(r.Context(), codeData.Code)
		if err != nil {
			respond.JSON(w, http.StatusUnauthorized,
				model.Error{Code: http.StatusUnauthorized, Message: "mfa verification failed"})
			return
		}

		newSession := e.setAuthenticatedUser(r, user)
		e.bus.Publish(app.TopicAuthLogin, user.Id)

		respond.JSON(w, http.StatusOK, model.LoginResponse{Session: sessionInfoPtr(newSession)})
	}
}

// handleSignupPost returns a portal Handler function.
//
// @ID auth_handleSignupPost
// @Tags Authentication
// @Summary Register a new shopper account.
// @Produce json
// @Success 200 {object} model.LoginResponse
// @Failure 400 {object} model.Error
// @Router /auth/signup [post]
func (e AuthEndpoint) handleSignupPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		currentSession := e.session.GetData(r.Context())
		if currentSession.LoggedIn {
			respond.JSON(w, http.StatusBadRequest,
				model.Error{Code: http.StatusBadRequest, Message: "already logged in"})
			return
		}

		var signupData model.SignupRequest
		if err := request.BodyJson(r, &signupData); err != nil {
			respond.JSON(w, http.StatusBadRequest, model.Error{Code: http.StatusBadRequest, Message: err.Error()})
			return
		}
		if err := e.validate.Struct(signupData); err != nil {
			respond.JSON(w, http.StatusBadRequest, model.Error{Code: http.StatusBadRequest, Message: err.Error()})
			return
		}

		// Same token rotation as on login, the signup response logs the
		// shopper in.
		e.session.RotateId(r.Context())

		client, err := e.clients.Client(r.Context())
		if err != nil {
			respondBackendError(w, err)
			return
		}

		user, err := client.Signup(r.Context(), domain.User{
			Email:     signupData.Email,
			Firstname: signupData.Firstname,
			Lastname:  signupData.Lastname,
			Phone:     signupData.Phone,
		}, signupData.Password)
		if err != nil {
			respondBackendError(w, err)
			return
		}

		newSession := e.setAuthenticatedUser(r, user)
		e.bus.Publish(app.TopicAuthSignup, user.Id)

		respond.JSON(w, http.StatusOK, model.LoginResponse{Session: sessionInfoPtr(newSession)})
	}
}

// handleLogoutPost returns a portal Handler function.
//
// @ID auth_handleLogoutPost
// @Tags Authentication
// @Summary Log out of the current portal session.
// @Produce json
// @Success 200 {object} model.Error
// @Router /auth/logout [post]
func (e AuthEndpoint) handleLogoutPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		currentSession := e.session.GetData(r.Context())

		if client, err := e.clients.Client(r.Context()); err == nil {
			if err := client.Logout(r.Context()); err != nil {
				respondBackendError(w, err)
				return
			}
		}

		e.session.DestroyData(r.Context())
		e.clients.Drop(r.Context())
		e.bus.Publish(app.TopicAuthLogout, domain.UserIdentifier(currentSession.UserIdentifier))

		respond.JSON(w, http.StatusOK, model.Error{Code: http.StatusOK, Message: "logout ok"})
	}
}

// handlePasswordResetPost returns a portal Handler function.
//
// @ID auth_handlePasswordResetPost
// @Tags Authentication
// @Summary Request a password reset mail.
// @Produce json
// @Success 200 {object} model.Error
// @Router /auth/password-reset [post]
func (e AuthEndpoint) handlePasswordResetPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var resetData model.PasswordResetRequest
		if err := request.BodyJson(r, &resetData); err != nil {
			respond.JSON(w, http.StatusBadRequest, model.Error{Code: http.StatusBadRequest, Message: err.Error()})
			return
		}
		if err := e.validate.Struct(resetData); err != nil {
			respond.JSON(w, http.StatusBadRequest, model.Error{Code: http.StatusBadRequest, Message: err.Error()})
			return
		}

		client, err := e.clients.Client(r.Context())
		if err != nil {
			respondBackendError(w, err)
			return
		}

		// The response is the same whether the account exists or not.
		_ = client.RequestPasswordReset(r.Context(), resetData.Email)

		respond.JSON(w, http.StatusOK, model.Error{Code: http.StatusOK, Message: "reset mail requested"})
	}
}

// handlePasswordResetConfirmPost returns a portal Handler function.
//
// @ID auth_handlePasswordResetConfirmPost
// @Tags Authentication
// @Summary Set a new password with a reset token.
// @Produce json
// @Success 200 {object} model.Error
// @Failure 400 {object} model.Error
// @Router /auth/password-reset/confirm [post]
func (e AuthEndpoint) handlePasswordResetConfirmPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var confirmData model.PasswordResetConfirmRequest
		if err := request.BodyJson(r, &confirmData); err != nil {
			respond.JSON(w, http.StatusBadRequest, model.Error{Code: http.StatusBadRequest, Message: err.Error()})
			return
		}
		if err := e.validate.Struct(confirmData); err != nil {
			respond.JSON(w, http.StatusBadRequest, model.Error{Code: http.StatusBadRequest, Message: err.Error()})
			return
		}

		client, err := e.clients.Client(r.Context())
		if err != nil {
			respondBackendError(w, err)
			return
		}

		if err := client.ConfirmPasswordReset(r.Context(), confirmData.Token, confirmData.Password); err != nil {
			respondBackendError(w, err)
			return
		}

		respond.JSON(w, http.StatusOK, model.Error{Code: http.StatusOK, Message: "password updated"})
	}
}

func (e AuthEndpoint) setAuthenticatedUser(r *http.Request, user *domain.User) SessionData {
	currentSession := e.session.GetData(r.Context())

	currentSession.LoggedIn = true
	currentSession.IsAdmin = user.IsAdmin()
	currentSession.UserIdentifier = string(user.Id)
	currentSession.Firstname = user.Firstname
	currentSession.Lastname = user.Lastname
	currentSession.Email = user.Email
	currentSession.MfaPendingUser = ""

	e.session.SetData(r.Context(), currentSession)

	return currentSession
}

func newSessionInfo(currentSession SessionData) model.SessionInfo {
	var loggedInUid *string
	var firstname *string
	var lastname *string
	var email *string

	if currentSession.LoggedIn {
		uid := currentSession.UserIdentifier
		f := currentSession.Firstname
		l := currentSession.Lastname
		m := currentSession.Email
		loggedInUid = &uid
		firstname = &f
		lastname = &l
		email = &m
	}

	return model.SessionInfo{
		LoggedIn:       currentSession.LoggedIn,
		IsAdmin:        currentSession.IsAdmin,
		UserIdentifier: loggedInUid,
		UserFirstname:  firstname,
		UserLastname:   lastname,
		UserEmail:      email,
	}
}

func sessionInfoPtr(currentSession SessionData) *model.SessionInfo {
	info := newSessionInfo(currentSession)
	return &info
}
