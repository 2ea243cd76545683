// Package identity verifies ID tokens minted by an external identity provider
// (Firebase Authentication) and fetches the matching user profile from the
// provider's directory API.
//
// A Provider is built once at startup and is safe for concurrent use. Signing
// keys are fetched and cached by go-oidc; profiles are fetched fresh for every
// call and never stored.
package identity

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"

	"github.com/aussiebroadwan/hoops/internal/hoops/domain"
)

// Each failure is distinguishable with errors.Is.
var (
	ErrInvalidToken = errors.New("identity: invalid token")
	ErrExpiredToken = errors.New("identity: token expired")
	ErrUserNotFound = errors.New("identity: user not found")
	ErrUserDisabled = errors.New("identity: user disabled")
	ErrUnavailable  = errors.New("identity: provider unavailable")
)

const (
	DefaultJWKSURL      = "https://www.googleapis.com/service_accounts/v1/jwk/securetoken@system.gserviceaccount.com"
	DefaultDirectoryURL = "https://identitytoolkit.googleapis.com"
	DefaultTimeout      = 5 * time.Second

	issuerPrefix = "https://securetoken.google.com/"
)

type Config struct {
	// ProjectID is the expected audience and the issuer suffix.
	ProjectID string

	// Issuer overrides https://securetoken.google.com/<ProjectID>.
	Issuer string

	JWKSURL         string
	DirectoryURL    string
	CredentialsFile string

	// Timeout bounds each Verify, GetUser and Authenticate call.
	Timeout time.Duration

	// HTTPClient is used for key fetches and, without credentials, the
	// directory. Defaults to a client with Timeout.
	HTTPClient *http.Client

	// KeySet replaces the remote JWKS. Used by tests.
	KeySet oidc.KeySet

	// Directory replaces the Identity Toolkit client.
	Directory Directory

	Now func() time.Time
}

// Assertion is the verified content of an ID token.
type Assertion struct {
	UID           string
	Email         string
	EmailVerified bool
	Name          string
	Picture       string
	Expiry        time.Time
}

// Directory fetches user profiles from the identity provider.
type Directory interface {
	GetUser(ctx context.Context, uid string) (domain.ExternalPrincipal, error)
}

type Provider struct {
	verifier *oidc.IDTokenVerifier
	dir      Directory
	timeout  time.Duration
}

// New builds a Provider. ctx scopes the HTTP client used for key fetches and
// service-account token refreshes and should live as long as the process.
func New(ctx context.Context, cfg Config) (*Provider, error) {
	if strings.TrimSpace(cfg.ProjectID) == "" {
		return nil, errors.New("identity: project id is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Issuer == "" {
		cfg.Issuer = issuerPrefix + cfg.ProjectID
	}
	if cfg.JWKSURL == "" {
		cfg.JWKSURL = DefaultJWKSURL
	}
	if cfg.DirectoryURL == "" {
		cfg.DirectoryURL = DefaultDirectoryURL
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}

	keys := cfg.KeySet
	if keys == nil {
		keys = oidc.NewRemoteKeySet(oidc.ClientContext(ctx, cfg.HTTPClient), cfg.JWKSURL)
	}

	dir := cfg.Directory
	if dir == nil {
		var err error
		dir, err = NewToolkitDirectory(ctx, ToolkitConfig{
			ProjectID:       cfg.ProjectID,
			BaseURL:         cfg.DirectoryURL,
			CredentialsFile: cfg.CredentialsFile,
			HTTPClient:      cfg.HTTPClient,
		})
		if err != nil {
			return nil, err
		}
	}

	verifier := oidc.NewVerifier(cfg.Issuer, observedKeySet{keys}, &oidc.Config{
		ClientID:             cfg.ProjectID,
		SupportedSigningAlgs: []string{oidc.RS256},
		Now:                  cfg.Now,
	})

	return &Provider{verifier: verifier, dir: dir, timeout: cfg.Timeout}, nil
}

type tokenClaims struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// Verify checks signature, expiry, issuer and audience of raw.
func (p *Provider) Verify(ctx context.Context, raw string) (Assertion, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	probe := &fetchProbe{}
	tok, err := p.verifier.Verify(withProbe(ctx, probe), raw)
	if err != nil {
		var expired *oidc.TokenExpiredError
		switch {
		case errors.As(err, &expired):
			return Assertion{}, fmt.Errorf("%w: expired at %s", ErrExpiredToken, expired.Expiry.Format(time.RFC3339))
		case probe.err != nil:
			return Assertion{}, fmt.Errorf("%w: signing keys: %w", ErrUnavailable, probe.err)
		default:
			return Assertion{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
		}
	}
	if tok.Subject == "" {
		return Assertion{}, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	var c tokenClaims
	if err := tok.Claims(&c); err != nil {
		return Assertion{}, fmt.Errorf("%w: claims: %w", ErrInvalidToken, err)
	}

	return Assertion{
		UID:           tok.Subject,
		Email:         c.Email,
		EmailVerified: c.EmailVerified,
		Name:          c.Name,
		Picture:       c.Picture,
		Expiry:        tok.Expiry,
	}, nil
}

// GetUser fetches the current profile for uid.
func (p *Provider) GetUser(ctx context.Context, uid string) (domain.ExternalPrincipal, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	return p.dir.GetUser(ctx, uid)
}

// Authenticate verifies raw and then fetches the subject's profile, all
// within one timeout.
func (p *Provider) Authenticate(ctx context.Context, raw string) (domain.ExternalPrincipal, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	a, err := p.Verify(ctx, raw)
	if err != nil {
		return domain.ExternalPrincipal{}, err
	}
	return p.dir.GetUser(ctx, a.UID)
}
