package hoopsdk

import (
	"context"
	"net/http"
	"net/url"
)

// Login exchanges an email and password for a session token.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, c.api("/auth/login"), LoginRequest{
		Email:    email,
		Password: password,
	}, nil)
	if err != nil {
		return nil, err
	}

	var out LoginResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetStaticToken fetches the shared API token. The server only exposes it
// when the static strategy is enabled.
func (c *Client) GetStaticToken(ctx context.Context) (*StaticTokenResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, c.api("/auth/token"), nil, nil)
	if err != nil {
		return nil, err
	}

	var out StaticTokenResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyToken asks the server whether token is currently valid.
func (c *Client) VerifyToken(ctx context.Context, token string) (*VerifyResponse, error) {
	path := c.api("/auth/verify") + "?" + url.Values{"token": {token}}.Encode()
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var out VerifyResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyIDToken validates an external identity provider ID token and returns
// the matching user profile.
func (c *Client) VerifyIDToken(ctx context.Context, token string) (*IDTokenVerifyResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, c.api("/auth/firebase/verify"), IDTokenRequest{IDToken: token}, nil)
	if err != nil {
		return nil, err
	}

	var out IDTokenVerifyResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Me returns the principal the server resolved for cred.
func (c *Client) Me(ctx context.Context, cred Credential) (*PrincipalResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, c.api("/auth/me"), nil, cred)
	if err != nil {
		return nil, err
	}

	var out PrincipalResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetUser looks up an external identity provider user by uid.
func (c *Client) GetUser(ctx context.Context, cred Credential, uid string) (*ExternalUser, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, c.api("/auth/user/"+url.PathEscape(uid)), nil, cred)
	if err != nil {
		return nil, err
	}

	var out ExternalUser
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
