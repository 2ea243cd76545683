package hoopsdk

// ErrorResponse is the wire form of an APIError. Client code should use
// APIError instead.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// ValidationErrorResponse is returned with 400 when request fields fail
// validation.
type ValidationErrorResponse struct {
	// Code is always "validation_error"
	Code string `json:"code"`

	Message string `json:"message"`

	// Details maps field names to a short reason
	Details map[string]string `json:"details,omitempty"`
}

// ============================================================================
// Auth
// ============================================================================

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries a session token for the authenticated account.
type LoginResponse struct {
	AccessToken string `json:"access_token"`

	// TokenType is always "bearer"
	TokenType string `json:"token_type"`

	// ExpiresIn is the token lifetime in seconds
	ExpiresIn int64 `json:"expires_in"`

	User UserInfo `json:"user"`
}

type UserInfo struct {
	Email           string `json:"email"`
	IsAuthenticated bool   `json:"is_authenticated"`
}

// StaticTokenResponse is returned by GET /api/auth/token.
type StaticTokenResponse struct {
	Token string `json:"token"`
}

// VerifyResponse reports whether a presented token is currently valid.
type VerifyResponse struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message"`
	Email   string `json:"email,omitempty"`
}

type IDTokenRequest struct {
	IDToken string `json:"id_token"`
}

// ExternalUser is a user profile held by the external identity provider.
type ExternalUser struct {
	UID           string `json:"uid"`
	Email         string `json:"email,omitempty"`
	DisplayName   string `json:"display_name,omitempty"`
	PhotoURL      string `json:"photo_url,omitempty"`
	EmailVerified bool   `json:"email_verified"`
}

type IDTokenVerifyResponse struct {
	Valid bool          `json:"valid"`
	User  *ExternalUser `json:"user,omitempty"`
}

// PrincipalResponse describes the caller as seen by the auth gate.
type PrincipalResponse struct {
	// Strategy is one of "static", "session" or "external"
	Strategy string `json:"strategy"`

	Subject string        `json:"subject,omitempty"`
	Email   string        `json:"email,omitempty"`
	User    *ExternalUser `json:"user,omitempty"`
}

// ============================================================================
// Leaderboard
// ============================================================================

// SubmitScoreRequest is the body of POST /api/leaderboard. Score and MaxCombo
// are pointers so a missing field can be told apart from zero.
type SubmitScoreRequest struct {
	Name     string `json:"name"`
	Score    *int64 `json:"score"`
	MaxCombo *int64 `json:"maxCombo"`
}

// Entry is one leaderboard row. Timestamp is milliseconds since the epoch.
type Entry struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Score     int64  `json:"score"`
	MaxCombo  int64  `json:"maxCombo"`
	Timestamp int64  `json:"timestamp"`
}

type LeaderboardResponse struct {
	Entries []Entry `json:"entries"`
	Total   int     `json:"total"`
}

// ============================================================================
// Service
// ============================================================================

// RootResponse is returned by GET /.
type RootResponse struct {
	Message string `json:"message"`
	Version string `json:"version"`
	Docs    string `json:"docs"`
}

// HealthResponse is returned by /health, /livez and /readyz.
type HealthResponse struct {
	// Status is "healthy" or "ok" when serving, "unavailable" otherwise
	Status string `json:"status"`

	Uptime  string `json:"uptime,omitempty"`
	Version string `json:"version,omitempty"`

	// Checks is only set by /readyz
	Checks *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database string `json:"database"`
}
