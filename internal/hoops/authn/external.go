package authn

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/hoops/internal/hoops/domain"
	"github.com/aussiebroadwan/hoops/internal/hoops/identity"
	"github.com/aussiebroadwan/hoops/pkg/httpx"
)

// IDTokenField is the JSON body field carrying an external ID token.
const IDTokenField = "id_token"

// Authenticator is satisfied by *identity.Provider.
type Authenticator interface {
	Authenticate(ctx context.Context, idToken string) (domain.ExternalPrincipal, error)
}

// ExternalIdentity accepts ID tokens from the external identity provider.
type ExternalIdentity struct {
	provider Authenticator
}

func NewExternalIdentity(p Authenticator) *ExternalIdentity {
	return &ExternalIdentity{provider: p}
}

func (e *ExternalIdentity) Name() string { return domain.StrategyExternal }

// Extract peeks at the JSON body and restores it for the handler.
func (e *ExternalIdentity) Extract(r *http.Request) (string, bool, error) {
	tok, ok, err := httpx.PeekJSONField(r, IDTokenField)
	if err != nil {
		return "", true, fmt.Errorf("%w: %w", ErrMalformedCredential, err)
	}
	return tok, ok, nil
}

func (e *ExternalIdentity) Verify(ctx context.Context, credential string) (domain.Principal, error) {
	if credential == "" {
		return domain.Principal{}, fmt.Errorf("%w: empty id token", ErrMalformedCredential)
	}

	user, err := e.provider.Authenticate(ctx, credential)
	if err != nil {
		return domain.Principal{}, mapIdentityError(err)
	}

	return domain.Principal{
		Strategy: domain.StrategyExternal,
		Subject:  user.UID,
		Email:    user.Email,
		External: &user,
	}, nil
}

func mapIdentityError(err error) error {
	switch {
	case errors.Is(err, identity.ErrExpiredToken):
		return fmt.Errorf("%w: %w", ErrExpiredCredential, err)
	case errors.Is(err, identity.ErrInvalidToken):
		return fmt.Errorf("%w: %w", ErrInvalidCredential, err)
	case errors.Is(err, identity.ErrUserNotFound):
		return fmt.Errorf("%w: %w", ErrAccountNotFound, err)
	case errors.Is(err, identity.ErrUserDisabled):
		return fmt.Errorf("%w: %w", ErrAccountInactive, err)
	default:
		return fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
	}
}
