package http

import (
	"net/http"
	"strings"

	"github.com/aussiebroadwan/hoops/internal/hoops/authn"
	"github.com/aussiebroadwan/hoops/pkg/hoopsdk"
	"github.com/aussiebroadwan/hoops/pkg/httpx"
	"github.com/aussiebroadwan/hoops/pkg/slogx"
)

// StaticTokenHandler serves GET {prefix}/auth/token. The game client is
// public, so the shared token is handed out to anyone who asks.
type StaticTokenHandler struct {
	Enabled bool
	Token   string
}

// ServeHTTP godoc
//
//	@Summary		Get the shared API token
//	@Description	Returns the shared API token used by the game client. Only available when the static strategy is enabled.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	hoopsdk.StaticTokenResponse	"token"
//	@Failure		404	{object}	hoopsdk.ErrorResponse		"static strategy disabled"
//	@Router			/api/auth/token [get].
func (h *StaticTokenHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !h.Enabled || h.Token == "" {
		hoopsdk.ErrNotFound.WriteError(w)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, hoopsdk.StaticTokenResponse{Token: h.Token})
}

// VerifyHandler serves GET {prefix}/auth/verify?token=...
type VerifyHandler struct {
	// Session checks the token when the session strategy is enabled.
	Session authn.Strategy

	// Static checks the token otherwise.
	Static authn.Strategy
}

// ServeHTTP godoc
//
//	@Summary		Verify a token
//	@Description	Reports whether a token is currently accepted. The token is checked as a session token when sessions are enabled, and as the shared API token otherwise.
//	@Tags			Auth
//	@Produce		json
//	@Param			token	query		string					true	"token to verify"
//	@Success		200		{object}	hoopsdk.VerifyResponse	"valid, message, email"
//	@Failure		400		{object}	hoopsdk.ErrorResponse	"missing token"
//	@Failure		404		{object}	hoopsdk.ErrorResponse	"no token strategy enabled"
//	@Router			/api/auth/verify [get].
func (h *VerifyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	tok := strings.TrimSpace(r.URL.Query().Get("token"))
	if tok == "" {
		hoopsdk.NewAPIError(http.StatusBadRequest, hoopsdk.ErrorCodeInvalidRequest, "token query parameter is required").WriteError(w)
		return
	}

	s := h.Session
	if s == nil {
		s = h.Static
	}
	if s == nil {
		hoopsdk.ErrNotFound.WriteError(w)
		return
	}

	p, err := s.Verify(ctx, tok)
	if err != nil {
		if authn.Status(err) == http.StatusInternalServerError {
			log.Error("token verification failed", "strategy", s.Name(), "err", err)
			hoopsdk.ErrServerError.WriteError(w)
			return
		}
		log.Debug("token rejected", "strategy", s.Name(), "err", err)
		httpx.WriteJSON(w, http.StatusOK, hoopsdk.VerifyResponse{
			Valid:   false,
			Message: "Invalid or expired token",
		})
		return
	}

	httpx.WriteJSON(w, http.StatusOK, hoopsdk.VerifyResponse{
		Valid:   true,
		Message: "Token is valid",
		Email:   p.Email,
	})
}

// MeHandler serves GET {prefix}/auth/me.
type MeHandler struct{}

// ServeHTTP godoc
//
//	@Summary		Describe the caller
//	@Description	Returns the principal resolved by the auth gate for the presented credential.
//	@Tags			Auth
//	@Security		StaticToken
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	hoopsdk.PrincipalResponse	"strategy, subject, email, user"
//	@Failure		401	{object}	hoopsdk.ErrorResponse		"missing or invalid credential"
//	@Failure		403	{object}	hoopsdk.ErrorResponse		"account disabled"
//	@Router			/api/auth/me [get].
func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p, ok := authn.PrincipalFromContext(r.Context())
	if !ok {
		hoopsdk.ErrMissingCredential.WriteError(w)
		return
	}

	resp := hoopsdk.PrincipalResponse{
		Strategy: p.Strategy,
		Subject:  p.Subject,
		Email:    p.Email,
	}
	if p.External != nil {
		u := toExternalUser(*p.External)
		resp.User = &u
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}
