// Package authn decides who is calling. Each Strategy knows where its
// credential lives in a request and how to verify it; Require turns a list of
// strategies into middleware that admits or rejects the request before any
// handler work happens.
package authn

import (
	"context"
	"errors"
	"net/http"

	"github.com/aussiebroadwan/hoops/internal/hoops/domain"
)

// Rejection reasons. Strategies wrap these so Require can map them to a
// status without knowing the strategy.
var (
	ErrMissingCredential   = errors.New("authn: missing credential")
	ErrMalformedCredential = errors.New("authn: malformed credential")
	ErrInvalidCredential   = errors.New("authn: invalid credential")
	ErrExpiredCredential   = errors.New("authn: expired credential")
	ErrAccountNotFound     = errors.New("authn: account not found")
	ErrAccountInactive     = errors.New("authn: account inactive")
	ErrUpstreamUnavailable = errors.New("authn: identity provider unavailable")
)

// Strategy is one way of authenticating a request.
type Strategy interface {
	// Name is the AUTH_STRATEGIES value, e.g. "static".
	Name() string

	// Extract reads the credential from the strategy's location. ok is false
	// when the location is empty. err is set when the location is populated
	// but unusable.
	Extract(r *http.Request) (credential string, ok bool, err error)

	// Verify checks the credential exactly once.
	Verify(ctx context.Context, credential string) (domain.Principal, error)
}

type ctxKey struct{}

// WithPrincipal attaches p to ctx.
func WithPrincipal(ctx context.Context, p domain.Principal) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// PrincipalFromContext returns the principal set by Require.
func PrincipalFromContext(ctx context.Context) (domain.Principal, bool) {
	p, ok := ctx.Value(ctxKey{}).(domain.Principal)
	return p, ok
}
