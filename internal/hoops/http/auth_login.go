package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/hoops/internal/hoops/service"
	"github.com/aussiebroadwan/hoops/pkg/hoopsdk"
	"github.com/aussiebroadwan/hoops/pkg/httpx"
	"github.com/aussiebroadwan/hoops/pkg/slogx"
)

// LoginHandler serves POST {prefix}/auth/login.
type LoginHandler struct {
	AccountService *service.AccountService
}

// ServeHTTP godoc
//
//	@Summary		Log in with email and password
//	@Description	Exchanges account credentials for a session token. An unknown email, an inactive account and a wrong password all produce the same 401.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		hoopsdk.LoginRequest			true	"email and password"
//	@Success		200		{object}	hoopsdk.LoginResponse			"access_token, token_type, expires_in, user"
//	@Failure		400		{object}	hoopsdk.ValidationErrorResponse	"invalid fields"
//	@Failure		401		{object}	hoopsdk.ErrorResponse			"incorrect email or password"
//	@Failure		429		{object}	hoopsdk.ErrorResponse			"too many attempts"
//	@Failure		500		{object}	hoopsdk.ErrorResponse			"internal server error"
//	@Router			/api/auth/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req hoopsdk.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		hoopsdk.ErrInvalidRequest.WriteError(w)
		return
	}
	if errs := req.Validate(); errs != nil {
		hoopsdk.WriteValidationError(w, errs)
		return
	}

	res, err := h.AccountService.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			w.Header().Set("WWW-Authenticate", "Bearer")
			hoopsdk.ErrInvalidCredentials.WriteError(w)
			return
		}
		log.Error("login failed", "err", err)
		hoopsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, hoopsdk.LoginResponse{
		AccessToken: res.Token,
		TokenType:   "bearer",
		ExpiresIn:   int64(res.ExpiresIn.Seconds()),
		User: hoopsdk.UserInfo{
			Email:           res.Email,
			IsAuthenticated: true,
		},
	})
}
