package hoopsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// StaticTokenHeader is the request header carrying the shared API token.
const StaticTokenHeader = "token"

// Client is a client for the hoops API.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	// Prefix is prepended to API routes. Default: "/api"
	Prefix string
}

// NewClient creates a new hoops API client.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		Prefix: "/api",
	}
}

// Credential authenticates a single request.
type Credential interface {
	apply(req *http.Request)
	body() map[string]any
}

type staticToken string

func (t staticToken) apply(req *http.Request) { req.Header.Set(StaticTokenHeader, string(t)) }
func (staticToken) body() map[string]any      { return nil }

type bearerToken string

func (t bearerToken) apply(req *http.Request) { req.Header.Set("Authorization", "Bearer "+string(t)) }
func (bearerToken) body() map[string]any      { return nil }

type idToken string

func (idToken) apply(*http.Request)    {}
func (t idToken) body() map[string]any { return map[string]any{"id_token": string(t)} }

// StaticToken authenticates with the shared API token header.
func StaticToken(token string) Credential { return staticToken(token) }

// BearerToken authenticates with a session token from Login.
func BearerToken(token string) Credential { return bearerToken(token) }

// IDToken authenticates with an external identity provider ID token carried
// in the JSON body. It only applies to requests with a body.
func IDToken(token string) Credential { return idToken(token) }

// url builds a complete URL by appending the path to the base URL.
func (c *Client) url(path string) string {
	return c.BaseURL + path
}

func (c *Client) api(path string) string {
	return c.Prefix + path
}

// doRequest performs an HTTP request. cred may be nil for public endpoints.
// When payload is non-nil it is encoded as JSON, merged with any body fields
// the credential contributes.
func (c *Client) doRequest(
	ctx context.Context,
	method, path string,
	payload any,
	cred Credential,
) (*http.Response, error) {
	var body io.Reader
	if payload != nil || (cred != nil && cred.body() != nil) {
		raw, err := encodeBody(payload, cred)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	if cred != nil {
		cred.apply(req)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	return resp, nil
}

func encodeBody(payload any, cred Credential) ([]byte, error) {
	var extra map[string]any
	if cred != nil {
		extra = cred.body()
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}
	if len(extra) == 0 {
		return raw, nil
	}

	merged := map[string]any{}
	if payload != nil {
		if err := json.Unmarshal(raw, &merged); err != nil {
			return nil, fmt.Errorf("failed to merge request body: %w", err)
		}
	}
	for k, v := range extra {
		merged[k] = v
	}
	return json.Marshal(merged)
}

// decodeJSON decodes a JSON response into target, or returns a typed error
// when the status is not the expected one.
func decodeJSON(resp *http.Response, target any, expectedStatus int) error {
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != expectedStatus {
		return parseErrorResponse(resp, bodyBytes)
	}

	if err := json.Unmarshal(bodyBytes, target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// checkStatusNoContent returns a typed error if the response status is not 204 No Content.
func checkStatusNoContent(resp *http.Response) error {
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return parseErrorResponse(resp, bodyBytes)
	}

	return nil
}
