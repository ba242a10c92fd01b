package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/clearlens/camwatch/internal/service"
	"github.com/clearlens/camwatch/internal/validation"
	"github.com/clearlens/camwatch/pkg/api"
	"github.com/clearlens/camwatch/pkg/httpx"
	"github.com/clearlens/camwatch/pkg/slogx"
)

// AuthHandler serves the token lifecycle endpoints.
type AuthHandler struct {
	AuthService *service.AuthService
}

// HandleLogin godoc
//
//	@Summary		Login
//	@Description	Exchanges a username and password for an access/refresh token pair.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		api.LoginRequest		true	"Credentials"
//	@Success		200		{object}	api.TokenPairResponse	"access_token, refresh_token"
//	@Failure		400		{object}	api.ErrorResponse		"error, error_description"
//	@Failure		401		{object}	api.ErrorResponse		"error, error_description"
//	@Router			/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req api.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.ErrInvalidRequestBody.WriteError(w)
		return
	}
	if err := validation.Username(req.Username); err != nil {
		// Invalid usernames cannot belong to any account; reject them the
		// same way a wrong password is rejected.
		api.ErrInvalidCredentials.WriteError(w)
		return
	}

	pair, err := h.AuthService.Login(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			api.ErrInvalidCredentials.WriteError(w)
			return
		}
		log.Error("login failed", "err", err)
		api.ErrServer.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, api.TokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// HandleRefresh godoc
//
//	@Summary		Refresh tokens
//	@Description	Exchanges a refresh token for a brand-new token pair. The old pair is not revoked.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		api.RefreshTokenRequest	true	"Refresh token"
//	@Success		200		{object}	api.TokenPairResponse	"access_token, refresh_token"
//	@Failure		400		{object}	api.ErrorResponse		"error, error_description"
//	@Failure		401		{object}	api.ErrorResponse		"error, error_description"
//	@Router			/refreshToken [post].
func (h *AuthHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req api.RefreshTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
		api.ErrInvalidRequestBody.WriteError(w)
		return
	}

	pair, err := h.AuthService.Refresh(ctx, req.RefreshToken)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			api.ErrCouldNotValidateCredentials.WriteError(w)
			return
		}
		log.Error("refresh failed", "err", err)
		api.ErrStoreUnavailable.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, api.TokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// HandleValidate godoc
//
//	@Summary		Validate access token
//	@Description	Reports whether an access token is currently valid. Rejections carry no reason.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		api.ValidateAccessTokenRequest	true	"Access token"
//	@Success		200		{object}	api.ValidateAccessTokenResponse	"is_valid"
//	@Failure		400		{object}	api.ErrorResponse				"error, error_description"
//	@Failure		503		{object}	api.ErrorResponse				"error, error_description"
//	@Router			/validateAccessToken [post].
func (h *AuthHandler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req api.ValidateAccessTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.AccessToken == "" {
		api.ErrInvalidRequestBody.WriteError(w)
		return
	}

	valid, err := h.AuthService.ValidateAccessToken(ctx, req.AccessToken)
	if err != nil {
		// Backend failure must not read as "token invalid".
		log.Error("token validation backend failure", "err", err)
		api.ErrStoreUnavailable.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, api.ValidateAccessTokenResponse{IsValid: valid})
}

// HandleLogout godoc
//
//	@Summary		Logout
//	@Description	Rotates the caller's salt, invalidating every outstanding token for the account.
//	@Tags			Auth
//	@Produce		json
//	@Success		204	"No Content"
//	@Failure		401	{object}	api.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/logout [post].
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	acct, ok := httpx.AccountFromContext(ctx)
	if !ok {
		api.ErrCouldNotValidateCredentials.WriteError(w)
		return
	}

	if err := h.AuthService.Logout(ctx, acct.ID); err != nil {
		log.Error("logout failed", "err", err)
		api.ErrStoreUnavailable.WriteError(w)
		return
	}

	httpx.NoCache(w)
	w.WriteHeader(http.StatusNoContent)
}
