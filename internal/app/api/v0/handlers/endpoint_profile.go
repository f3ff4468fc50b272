package handlers

import (
	"bytes"
	"net/http"

	"github.com/go-pkgz/routegroup"
	"github.com/yeqown/go-qrcode/v2"

	"github.com/baglio/shop-portal/internal/app/api/core/request"
	"github.com/baglio/shop-portal/internal/app/api/core/respond"
	"github.com/baglio/shop-portal/internal/app/api/v0/model"
	"github.com/baglio/shop-portal/internal/domain"
)

type ProfileEndpoint struct {
	clients       ClientResolver
	authenticator Authenticator
	session       Session
	validate      Validator
}

func NewProfileEndpoint(
	clients ClientResolver,
	authenticator Authenticator,
	session Session,
	validator Validator,
) ProfileEndpoint {
	return ProfileEndpoint{
		clients:       clients,
		authenticator: authenticator,
		session:       session,
		validate:      validator,
	}
}

func (e ProfileEndpoint) GetName() string {
	return "ProfileEndpoint"
}

func (e ProfileEndpoint) RegisterRoutes(g *routegroup.Bundle) {
	apiGroup := g.Mount("/profile")
	apiGroup.Use(e.authenticator.LoggedIn())

	apiGroup.HandleFunc("GET /me", e.handleProfileGet())
	apiGroup.HandleFunc("PUT /me", e.handleProfilePut())
	apiGroup.HandleFunc("POST /password", e.handlePasswordPost())

	apiGroup.HandleFunc("POST /mfa/setup", e.handleMfaSetupPost())
	apiGroup.HandleFunc("GET /mfa/setup/qr", e.handleMfaSetupQrGet())
	apiGroup.HandleFunc("POST /mfa/activate", e.handleMfaActivatePost())
	apiGroup.HandleFunc("POST /mfa/deactivate", e.handleMfaDeactivatePost())
}

// handleProfileGet returns a portal Handler function.
//
// @ID profile_handleProfileGet
// @Tags Profile
// @Summary Get the profile of the current shopper.
// @Produce json
// @Success 200 {object} model.User
// @Failure 401 {object} model.Error
// @Router /profile/me [get]
func (e ProfileEndpoint) handleProfileGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		client, err := e.clients.Client(r.Context())
		if err != nil {
			respondBackendError(w, err)
			return
		}

		user, err := client.Me(r.Context())
		if err != nil {
			respondBackendError(w, err)
			return
		}

		respond.JSON(w, http.StatusOK, model.NewUser(user))
	}
}

// handleProfilePut returns a portal Handler function.
//
// @ID profile_handleProfilePut
// @Tags Profile
// @Summary Update the profile of the current shopper.
// @Produce json
// @Success 200 {object} model.User
// @Failure 400 {object} model.Error
// @Router /profile/me [put]
func (e ProfileEndpoint) handleProfilePut() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var profileData model.ProfileUpdateRequest
		if err := request.BodyJson(r, &profileData); err != nil {
			respond.JSON(w, http.StatusBadRequest, model.Error{Code: http.StatusBadRequest, Message: err.Error()})
			return
		}
		if err := e.validate.Struct(profileData); err != nil {
			respond.JSON(w, http.StatusBadRequest, model.Error{Code: http.StatusBadRequest, Message: err.Error()})
			return
		}

		client, err := e.clients.Client(r.Context())
		if err != nil {
			respondBackendError(w, err)
			return
		}

		userInfo := domain.GetUserInfo(r.Context())
		user, err := client.UpdateProfile(r.Context(), domain.User{
			Id:        userInfo.Id,
			Firstname: profileData.Firstname,
			Lastname:  profileData.Lastname,
			Phone:     profileData.Phone,
		})
		if err != nil {
			respondBackendError(w, err)
			return
		}

		// keep the cached session identity in sync
		currentSession := e.session.GetData(r.Context())
		currentSession.Firstname = user.Firstname
		currentSession.Lastname = user.Lastname
		e.session.SetData(r.Context(), currentSession)

		respond.JSON(w, http.StatusOK, model.NewUser(user))
	}
}

// handlePasswordPost returns a portal Handler function.
//
// @ID profile_handlePasswordPost
// @Tags Profile
// @Summary Change the password of the current shopper.
// @Produce json
// @Success 200 {object} model.Error
// @Failure 400 {object} model.Error
// @Router /profile/password [post]
func (e ProfileEndpoint) handlePasswordPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var passwordData model.ChangePasswordRequest
		if err := request.BodyJson(r, &passwordData); err != nil {
			respond.JSON(w, http.StatusBadRequest, model.Error{Code: http.StatusBadRequest, Message: err.Error()})
			return
		}
		if err := e.validate.Struct(passwordData); err != nil {
			respond.JSON(w, http.StatusBadRequest, model.Error{Code: http.StatusBadRequest, Message: err.Error()})
			return
		}

		client, err := e.clients.Client(r.Context())
		if err != nil {
			respondBackendError(w, err)
			return
		}

		if err := client.ChangePassword(r.Context(), passwordData.CurrentPassword, passwordData.NewPassword); err != nil {
			respondBackendError(w, err)
			return
		}

		respond.JSON(w, http.StatusOK, model.Error{Code: http.StatusOK, Message: "password changed"})
	}
}

// handleMfaSetupPost returns a portal Handler function.
//
// @ID profile_handleMfaSetupPost
// @Tags Profile
// @Summary Start the authenticator enrollment.
// @Produce json
// @Success 200 {object} model.MfaSetupResponse
// @Failure 401 {object} model.Error
// @Router /profile/mfa/setup [post]
func (e ProfileEndpoint) handleMfaSetupPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		client, err := e.clients.Client(r.Context())
		if err != nil {
			respondBackendError(w, err)
			return
		}

		setup, err := client.StartMfaSetup(r.Context())
		if err != nil {
			respondBackendError(w, err)
			return
		}

		currentSession := e.session.GetData(r.Context())
		currentSession.MfaSetupUri = setup.ProvisioningUri
		e.session.SetData(r.Context(), currentSession)

		respond.JSON(w, http.StatusOK, model.MfaSetupResponse{
			Secret:          setup.Secret,
			ProvisioningUri: setup.ProvisioningUri,
		})
	}
}

// handleMfaSetupQrGet returns a portal Handler function.
//
// @ID profile_handleMfaSetupQrGet
// @Tags Profile
// @Summary Get the pending authenticator enrollment as QR code.
// @Produce png
// @Success 200 "Image"
// @Failure 404 {object} model.Error
// @Router /profile/mfa/setup/qr [get]
func (e ProfileEndpoint) handleMfaSetupQrGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		currentSession := e.session.GetData(r.Context())
		if currentSession.MfaSetupUri == "" {
			respond.JSON(w, http.StatusNotFound,
				model.Error{Code: http.StatusNotFound, Message: "no pending enrollment"})
			return
		}

		code, err := qrcode.New(currentSession.MfaSetupUri)
		if err != nil {
			respond.JSON(w, http.StatusInternalServerError,
				model.Error{Code: http.StatusInternalServerError, Message: "failed to generate code"})
			return
		}

		buf := bytes.NewBuffer(nil)
		option := qrOption{
			Padding:   8, // padding pixels around the qr code.
			BlockSize: 4, // block pixels which represents a bit data.
		}
		qrWriter := newCompressedWriter(nopCloser{Writer: buf}, &option)
		if err := code.Save(qrWriter); err != nil {
			respond.JSON(w, http.StatusInternalServerError,
				model.Error{Code: http.StatusInternalServerError, Message: "failed to render code"})
			return
		}

		respond.Data(w, http.StatusOK, "image/png", buf.Bytes())
	}
}

// handleMfaActivatePost returns a portal Handler function.
//
// @ID profile_handleMfaActivatePost
// @Tags Profile
// @Summary Activate the pending authenticator enrollment with a first code.
// @Produce json
// @Success 200 {object} model.Error
// @Failure 400 {object} model.Error
// @Router /profile/mfa/activate [post]
func (e ProfileEndpoint) handleMfaActivatePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var codeData model.MfaCodeRequest
		if err := request.BodyJson(r, &codeData); err != nil {
			respond.JSON(w, http.StatusBadRequest, model.Error{Code: http.StatusBadRequest, Message: err.Error()})
			return
		}
		if err := e.validate.Struct(codeData); err != nil {
			respond.JSON(w, http.StatusBadRequest, model.Error{Code: http.StatusBadRequest, Message: err.Error()})
			return
		}

		client, err := e.clients.Client(r.Context())
		if err != nil {
			respondBackendError(w, err)
			return
		}

		if err := client.ActivateMfa(r.Context(), codeData.Code); err != nil {
			respondBackendError(w, err)
			return
		}

		currentSession := e.session.GetData(r.Context())
		currentSession.MfaSetupUri = ""
		e.session.SetData(r.Context(), currentSession)

		respond.JSON(w, http.StatusOK, model.Error{Code: http.StatusOK, Message: "mfa activated"})
	}
}

// handleMfaDeactivatePost returns a portal Handler function.
//
// @ID profile_handleMfaDeactivatePost
// @Tags Profile
// @Summary Deactivate MFA with a current code.
// @Produce json
// @Success 200 {object} model.Error
// @Failure 400 {object} model.Error
// @Router /profile/mfa/deactivate [post]
func (e ProfileEndpoint) handleMfaDeactivatePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var codeData model.MfaCodeRequest
		if err := request.BodyJson(r, &codeData); err != nil {
			respond.JSON(w, http.StatusBadRequest, model.Error{Code: http.StatusBadRequest, Message: err.Error()})
			return
		}
		if err := e.validate.Struct(codeData); err != nil {
			respond.JSON(w, http.StatusBadRequest, model.Error{Code: http.StatusBadRequest, Message: err.Error()})
			return
		}

		client, err := e.clients.Client(r.Context())
		if err != nil {
			respondBackendError(w, err)
			return
		}

		if err := client.DeactivateMfa(r.Context(), codeData.Code); err != nil {
			respondBackendError(w, err)
			return
		}

		respond.JSON(w, http.StatusOK, model.Error{Code: http.StatusOK, Message: "mfa deactivated"})
	}
}
