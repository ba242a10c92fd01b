package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/clearlens/camwatch/internal/service"
	"github.com/clearlens/camwatch/internal/store"
	"github.com/clearlens/camwatch/internal/validation"
	"github.com/clearlens/camwatch/pkg/api"
	"github.com/clearlens/camwatch/pkg/httpx"
	"github.com/clearlens/camwatch/pkg/slogx"
)

// UsersHandler serves registration and profile endpoints.
type UsersHandler struct {
	UserService *service.UserService
}

// HandleBeginRegistration godoc
//
//	@Summary		Begin registration
//	@Description	Creates an unconfirmed account and emails a 6-digit confirmation code.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			request	body		api.BeginRegistrationRequest	true	"New account"
//	@Success		200		{object}	api.BeginRegistrationResponse	"success"
//	@Failure		400		{object}	api.ErrorResponse				"error, error_description"
//	@Failure		409		{object}	api.ErrorResponse				"error, error_description"
//	@Router			/user/register/begin [post].
func (h *UsersHandler) HandleBeginRegistration(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req api.BeginRegistrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.ErrInvalidRequestBody.WriteError(w)
		return
	}

	for _, err := range []error{
		validation.Username(req.Username),
		validation.Email(req.Email),
		validation.Password(req.Password),
	} {
		if err != nil {
			api.NewValidationError(err.Error()).WriteError(w)
			return
		}
	}

	if err := h.UserService.BeginRegistration(ctx, req.Username, req.Email, req.Password); err != nil {
		if errors.Is(err, service.ErrAlreadyRegistered) {
			api.ErrAlreadyInUse.WriteError(w)
			return
		}
		log.Error("begin registration failed", "err", err)
		api.ErrServer.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, api.BeginRegistrationResponse{Success: true})
}

// HandleCheckRegistrationCode godoc
//
//	@Summary		Check confirmation code
//	@Description	Verifies a pending confirmation code. An expired code is replaced and re-sent.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			request	body		api.CheckRegistrationCodeRequest	true	"Email and code"
//	@Success		200		{object}	api.CheckRegistrationCodeResponse	"success"
//	@Failure		400		{object}	api.ErrorResponse					"error, error_description"
//	@Router			/user/register/check [post].
func (h *UsersHandler) HandleCheckRegistrationCode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req api.CheckRegistrationCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.ErrInvalidRequestBody.WriteError(w)
		return
	}
	if err := validation.Email(req.Email); err != nil {
		api.NewValidationError(err.Error()).WriteError(w)
		return
	}
	if err := validation.ConfirmationCode(req.ConfirmationCode); err != nil {
		api.NewValidationError(err.Error()).WriteError(w)
		return
	}

	if err := h.UserService.CheckRegistrationCode(ctx, req.Email, req.ConfirmationCode); err != nil {
		writeRegistrationError(w, log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, api.CheckRegistrationCodeResponse{Success: true})
}

// HandleCompleteRegistration godoc
//
//	@Summary		Complete registration
//	@Description	Confirms the email, writes the profile and returns a fresh token pair.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			request	body		api.CompleteRegistrationRequest	true	"Code and profile"
//	@Success		200		{object}	api.TokenPairResponse			"access_token, refresh_token"
//	@Failure		400		{object}	api.ErrorResponse				"error, error_description"
//	@Router			/user/register/complete [post].
func (h *UsersHandler) HandleCompleteRegistration(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req api.CompleteRegistrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.ErrInvalidRequestBody.WriteError(w)
		return
	}

	for _, err := range []error{
		validation.Email(req.Email),
		validation.ConfirmationCode(req.ConfirmationCode),
		validation.Name("name", req.Name),
		validation.Name("surname", req.Surname),
		validation.OptionalName("patronymic", req.Patronymic),
		validation.URL("avatar_url", req.AvatarURL),
	} {
		if err != nil {
			api.NewValidationError(err.Error()).WriteError(w)
			return
		}
	}

	pair, err := h.UserService.CompleteRegistration(ctx, req)
	if err != nil {
		writeRegistrationError(w, log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, api.TokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// HandleGetProfile godoc
//
//	@Summary		Get profile
//	@Description	Returns the authenticated user's profile.
//	@Tags			Users
//	@Produce		json
//	@Success		200	{object}	api.Profile			"name, surname, patronymic, avatar_url"
//	@Failure		401	{object}	api.ErrorResponse	"error, error_description"
//	@Failure		404	{object}	api.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/user/profile [get].
func (h *UsersHandler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	acct, ok := httpx.AccountFromContext(ctx)
	if !ok {
		api.ErrCouldNotValidateCredentials.WriteError(w)
		return
	}

	profile, err := h.UserService.GetProfile(ctx, acct.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			api.ErrResourceNotFound.WriteError(w)
			return
		}
		log.Error("profile fetch failed", "err", err)
		api.ErrStoreUnavailable.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, profile)
}

// writeRegistrationError maps registration service errors onto responses.
func writeRegistrationError(w http.ResponseWriter, log *slog.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidConfirmation):
		api.ErrInvalidConfirmation.WriteError(w)
	case errors.Is(err, service.ErrConfirmationExpired):
		api.ErrConfirmationExpired.WriteError(w)
	default:
		log.Error("registration step failed", "err", err)
		api.ErrServer.WriteError(w)
	}
}
