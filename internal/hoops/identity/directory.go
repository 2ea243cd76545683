package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	oauthjwt "golang.org/x/oauth2/jwt"

	"github.com/aussiebroadwan/hoops/internal/hoops/domain"
)

const identityToolkitScope = "https://www.googleapis.com/auth/identitytoolkit"

type ToolkitConfig struct {
	ProjectID string
	BaseURL   string

	// CredentialsFile is a service account JSON key. Without it requests are
	// sent unauthenticated, which only works against the auth emulator.
	CredentialsFile string

	HTTPClient *http.Client
}

// ToolkitDirectory calls the Identity Toolkit accounts:lookup API.
type ToolkitDirectory struct {
	endpoint string
	client   *http.Client
}

// NewToolkitDirectory builds a directory client. With credentials, requests
// are authorized by a service-account token source that refreshes itself.
func NewToolkitDirectory(ctx context.Context, cfg ToolkitConfig) (*ToolkitDirectory, error) {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = DefaultDirectoryURL
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}

	if cfg.CredentialsFile != "" {
		jwtCfg, err := loadServiceAccount(cfg.CredentialsFile)
		if err != nil {
			return nil, err
		}
		hctx := context.WithValue(ctx, oauth2.HTTPClient, client)
		authed := oauth2.NewClient(hctx, jwtCfg.TokenSource(hctx))
		authed.Timeout = client.Timeout
		client = authed
	}

	return &ToolkitDirectory{
		endpoint: fmt.Sprintf("%s/v1/projects/%s/accounts:lookup", base, cfg.ProjectID),
		client:   client,
	}, nil
}

func loadServiceAccount(path string) (*oauthjwt.Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("identity: read credentials: %w", err)
	}
	cfg, err := google.JWTConfigFromJSON(raw, identityToolkitScope)
	if err != nil {
		return nil, fmt.Errorf("identity: parse credentials: %w", err)
	}
	return cfg, nil
}

type lookupRequest struct {
	LocalID []string `json:"localId"`
}

type lookupUser struct {
	LocalID       string `json:"localId"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"emailVerified"`
	DisplayName   string `json:"displayName"`
	PhotoURL      string `json:"photoUrl"`
	Disabled      bool   `json:"disabled"`
}

type lookupResponse struct {
	Users []lookupUser `json:"users"`
}

// GetUser returns ErrUserNotFound when uid has no profile and ErrUnavailable
// for transport failures or unexpected responses.
func (d *ToolkitDirectory) GetUser(ctx context.Context, uid string) (domain.ExternalPrincipal, error) {
	if uid == "" {
		return domain.ExternalPrincipal{}, ErrUserNotFound
	}

	body, err := json.Marshal(lookupRequest{LocalID: []string{uid}})
	if err != nil {
		return domain.ExternalPrincipal{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.endpoint, bytes.NewReader(body))
	if err != nil {
		return domain.ExternalPrincipal{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return domain.ExternalPrincipal{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return domain.ExternalPrincipal{}, fmt.Errorf("%w: read response: %w", ErrUnavailable, err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusBadRequest && bytes.Contains(data, []byte("USER_NOT_FOUND")):
		return domain.ExternalPrincipal{}, ErrUserNotFound
	default:
		return domain.ExternalPrincipal{}, fmt.Errorf("%w: lookup returned %d", ErrUnavailable, resp.StatusCode)
	}

	var out lookupResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return domain.ExternalPrincipal{}, fmt.Errorf("%w: decode response: %w", ErrUnavailable, err)
	}
	for _, u := range out.Users {
		if u.LocalID != uid {
			continue
		}
		if u.Disabled {
			return domain.ExternalPrincipal{}, ErrUserDisabled
		}
		return domain.ExternalPrincipal{
			UID:           u.LocalID,
			Email:         u.Email,
			DisplayName:   u.DisplayName,
			PhotoURL:      u.PhotoURL,
			EmailVerified: u.EmailVerified,
		}, nil
	}
	return domain.ExternalPrincipal{}, ErrUserNotFound
}
