package authn

import (
	"context"
	"net/http"

	"github.com/aussiebroadwan/hoops/internal/hoops/domain"
	"github.com/aussiebroadwan/hoops/pkg/cryptox"
)

// StaticTokenHeader carries the shared API token.
const StaticTokenHeader = "token"

// StaticToken accepts exactly one shared secret.
type StaticToken struct {
	secret string
}

func NewStaticToken(secret string) *StaticToken {
	return &StaticToken{secret: secret}
}

func (s *StaticToken) Name() string { return domain.StrategyStatic }

// Extract treats a present but empty header as a credential so that it is
// rejected rather than skipped.
func (s *StaticToken) Extract(r *http.Request) (string, bool, error) {
	vals, ok := r.Header[http.CanonicalHeaderKey(StaticTokenHeader)]
	if !ok || len(vals) == 0 {
		return "", false, nil
	}
	return vals[0], true, nil
}

func (s *StaticToken) Verify(_ context.Context, credential string) (domain.Principal, error) {
	if !s.Check(credential) {
		return domain.Principal{}, ErrInvalidCredential
	}
	return domain.Principal{Strategy: domain.StrategyStatic}, nil
}

// Check compares in constant time. An empty secret never matches.
func (s *StaticToken) Check(credential string) bool {
	if s.secret == "" || credential == "" {
		return false
	}
	return cryptox.ConstantTimeEqual(credential, s.secret)
}

// Fingerprint identifies the configured token in logs.
func (s *StaticToken) Fingerprint() string {
	return cryptox.FingerprintToken(s.secret)
}
