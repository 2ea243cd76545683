package authn

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/hoops/internal/hoops/domain"
	"github.com/aussiebroadwan/hoops/pkg/hoopsdk"
	"github.com/aussiebroadwan/hoops/pkg/httpx"
	"github.com/aussiebroadwan/hoops/pkg/slogx"
)

// Require admits a request only when one of strategies authenticates it.
//
// Strategies are consulted in order and the first one whose credential
// location is populated is the only one tried. A failed verification is final:
// there is no fallthrough to a later strategy and no retry. With no
// strategies every request is rejected.
func Require(strategies ...Strategy) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			var (
				selected   Strategy
				credential string
				extractErr error
			)
			for _, s := range strategies {
				cred, ok, err := s.Extract(r)
				if !ok {
					continue
				}
				selected, credential, extractErr = s, cred, err
				break
			}

			if selected == nil {
				WriteRejection(w, ErrMissingCredential)
				return
			}

			log = log.With("auth_strategy", selected.Name())

			err := extractErr
			var p domain.Principal
			if err == nil {
				p, err = selected.Verify(ctx, credential)
			}
			if err != nil {
				logRejection(log, err)
				WriteRejection(w, err)
				return
			}

			ctx = WithPrincipal(ctx, p)
			ctx = httpx.WithSubject(ctx, p.Label())
			ctx = slogx.WithContext(ctx, log)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Status maps a rejection reason to its HTTP status.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrMissingCredential),
		errors.Is(err, ErrMalformedCredential),
		errors.Is(err, ErrInvalidCredential),
		errors.Is(err, ErrExpiredCredential):
		return http.StatusUnauthorized
	case errors.Is(err, ErrAccountNotFound),
		errors.Is(err, ErrAccountInactive):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// WriteRejection writes the generic response for err. Nothing about the
// underlying reason reaches the client beyond the status code.
func WriteRejection(w http.ResponseWriter, err error) {
	switch Status(err) {
	case http.StatusUnauthorized:
		if errors.Is(err, ErrMissingCredential) {
			httpx.BearerChallenge(w, "missing credential")
			hoopsdk.ErrMissingCredential.WriteError(w)
			return
		}
		httpx.BearerChallenge(w, "invalid authentication credentials")
		hoopsdk.ErrInvalidCredential.WriteError(w)
	case http.StatusForbidden:
		hoopsdk.ErrAccessDenied.WriteError(w)
	default:
		hoopsdk.ErrServerError.WriteError(w)
	}
}

func logRejection(log *slog.Logger, err error) {
	switch Status(err) {
	case http.StatusUnauthorized:
		log.Debug("credential rejected", "err", err)
	case http.StatusForbidden:
		log.Warn("account refused", "err", err)
	default:
		log.Error("authentication failed", "err", err)
	}
}
