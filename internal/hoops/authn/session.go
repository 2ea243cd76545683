package authn

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/hoops/internal/hoops/domain"
	"github.com/aussiebroadwan/hoops/pkg/jwtx"
)

// SessionQueryParam is the fallback location for a session token.
const SessionQueryParam = "token"

// SessionVerifier is satisfied by *jwtx.Codec.
type SessionVerifier interface {
	Verify(token string) (jwtx.SessionClaims, error)
}

// SessionToken accepts tokens minted by the login flow. It is stateless: no
// account lookup happens per request.
type SessionToken struct {
	codec SessionVerifier
}

func NewSessionToken(codec SessionVerifier) *SessionToken {
	return &SessionToken{codec: codec}
}

func (s *SessionToken) Name() string { return domain.StrategySession }

// Extract reads "Authorization: Bearer <token>", falling back to the "token"
// query parameter. Any other Authorization scheme is malformed.
func (s *SessionToken) Extract(r *http.Request) (string, bool, error) {
	if authz := r.Header.Get("Authorization"); authz != "" {
		scheme, tok, found := strings.Cut(authz, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") {
			return "", true, fmt.Errorf("%w: expected bearer scheme", ErrMalformedCredential)
		}
		tok = strings.TrimSpace(tok)
		if tok == "" {
			return "", true, fmt.Errorf("%w: empty bearer token", ErrMalformedCredential)
		}
		return tok, true, nil
	}

	q := r.URL.Query()
	if !q.Has(SessionQueryParam) {
		return "", false, nil
	}
	return q.Get(SessionQueryParam), true, nil
}

// Verify never tells the caller which check failed; the codec reason is kept
// in the wrapped error for logging.
func (s *SessionToken) Verify(_ context.Context, credential string) (domain.Principal, error) {
	if credential == "" {
		return domain.Principal{}, fmt.Errorf("%w: empty token", ErrMalformedCredential)
	}

	claims, err := s.codec.Verify(credential)
	if err != nil {
		return domain.Principal{}, fmt.Errorf("%w: %w", ErrInvalidCredential, err)
	}

	email := claims.Email
	if email == "" {
		email = claims.Subject
	}
	return domain.Principal{
		Strategy: domain.StrategySession,
		Subject:  claims.Subject,
		Email:    email,
	}, nil
}
