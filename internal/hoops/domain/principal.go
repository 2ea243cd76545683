package domain

// Strategy names, also used as AUTH_STRATEGIES values.
const (
	StrategyStatic   = "static"
	StrategySession  = "session"
	StrategyExternal = "external"
)

// ExternalPrincipal is a user profile fetched from the external identity
// provider. It is never persisted.
type ExternalPrincipal struct {
	UID           string `json:"uid"`
	Email         string `json:"email,omitempty"`
	DisplayName   string `json:"display_name,omitempty"`
	PhotoURL      string `json:"photo_url,omitempty"`
	EmailVerified bool   `json:"email_verified"`
}

// Principal is the identity attached to a request after authentication.
// Static-token callers have no Subject; only the fact that the token was
// valid is known.
type Principal struct {
	Strategy string
	Subject  string
	Email    string
	External *ExternalPrincipal
}

// Label identifies the principal in logs and rate-limit keys.
func (p Principal) Label() string {
	if p.Subject != "" {
		return p.Strategy + ":" + p.Subject
	}
	return p.Strategy
}
