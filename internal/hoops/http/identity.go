package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/hoops/internal/hoops/domain"
	"github.com/aussiebroadwan/hoops/internal/hoops/identity"
	"github.com/aussiebroadwan/hoops/pkg/hoopsdk"
	"github.com/aussiebroadwan/hoops/pkg/httpx"
	"github.com/aussiebroadwan/hoops/pkg/slogx"
)

// IdentityHandler exposes the external identity provider. Identity is nil
// when no provider is configured and every route answers 404.
type IdentityHandler struct {
	Identity IdentityProvider
}

// HandleVerify godoc
//
//	@Summary		Verify an external ID token
//	@Description	Verifies an ID token minted by the external identity provider and returns the matching user profile.
//	@Tags			Identity
//	@Accept			json
//	@Produce		json
//	@Param			request	body		hoopsdk.IDTokenRequest			true	"id_token"
//	@Success		200		{object}	hoopsdk.IDTokenVerifyResponse	"valid, user"
//	@Failure		400		{object}	hoopsdk.ErrorResponse			"missing id_token"
//	@Failure		401		{object}	hoopsdk.ErrorResponse			"invalid, expired or unknown token"
//	@Failure		404		{object}	hoopsdk.ErrorResponse			"no identity provider configured"
//	@Failure		500		{object}	hoopsdk.ErrorResponse			"identity provider unavailable"
//	@Router			/api/auth/firebase/verify [post].
func (h *IdentityHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if h.Identity == nil {
		hoopsdk.ErrNotFound.WriteError(w)
		return
	}

	var req hoopsdk.IDTokenRequest
	if err := decodeJSON(w, r, &req); err != nil || strings.TrimSpace(req.IDToken) == "" {
		hoopsdk.NewAPIError(http.StatusBadRequest, hoopsdk.ErrorCodeInvalidRequest, "id_token is required").WriteError(w)
		return
	}

	user, err := h.Identity.Authenticate(ctx, req.IDToken)
	if err != nil {
		if errors.Is(err, identity.ErrUnavailable) {
			log.Error("identity provider unavailable", "err", err)
			hoopsdk.ErrServerError.WriteError(w)
			return
		}
		log.Debug("id token rejected", "err", err)
		httpx.BearerChallenge(w, "invalid authentication credentials")
		hoopsdk.ErrInvalidCredential.WriteError(w)
		return
	}

	u := toExternalUser(user)
	httpx.WriteJSON(w, http.StatusOK, hoopsdk.IDTokenVerifyResponse{Valid: true, User: &u})
}

// HandleGetUser godoc
//
//	@Summary		Look up an external user
//	@Description	Fetches a user profile from the external identity provider by uid.
//	@Tags			Identity
//	@Security		StaticToken
//	@Security		BearerAuth
//	@Produce		json
//	@Param			uid	path		string					true	"user id"
//	@Success		200	{object}	hoopsdk.ExternalUser	"user profile"
//	@Failure		401	{object}	hoopsdk.ErrorResponse	"missing or invalid credential"
//	@Failure		403	{object}	hoopsdk.ErrorResponse	"user disabled"
//	@Failure		404	{object}	hoopsdk.ErrorResponse	"user not found"
//	@Failure		500	{object}	hoopsdk.ErrorResponse	"identity provider unavailable"
//	@Router			/api/auth/user/{uid} [get].
func (h *IdentityHandler) HandleGetUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	uid := strings.TrimSpace(r.PathValue("uid"))
	if h.Identity == nil || uid == "" {
		hoopsdk.ErrNotFound.WriteError(w)
		return
	}

	user, err := h.Identity.GetUser(ctx, uid)
	switch {
	case errors.Is(err, identity.ErrUserNotFound):
		hoopsdk.NewAPIError(http.StatusNotFound, hoopsdk.ErrorCodeNotFound, "user not found").WriteError(w)
		return
	case errors.Is(err, identity.ErrUserDisabled):
		hoopsdk.ErrAccessDenied.WriteError(w)
		return
	case err != nil:
		log.Error("user lookup failed", "uid", uid, "err", err)
		hoopsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toExternalUser(user))
}

func toExternalUser(p domain.ExternalPrincipal) hoopsdk.ExternalUser {
	return hoopsdk.ExternalUser{
		UID:           p.UID,
		Email:         p.Email,
		DisplayName:   p.DisplayName,
		PhotoURL:      p.PhotoURL,
		EmailVerified: p.EmailVerified,
	}
}
