package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier validates a token and returns its claims.
type Verifier interface {
	Verify(token string) (SessionClaims, error)
}

// VerifyOptions captures the expectations checked on every token.
type VerifyOptions struct {
	// Issuer the token must carry. Empty means "don't care".
	Issuer string

	// Leeway allows small clock skew when validating exp and nbf.
	Leeway time.Duration

	// Now overrides the clock. Nil means time.Now.
	Now func() time.Time
}

var (
	ErrMalformed    = errors.New("jwtx: malformed token")
	ErrAlgMismatch  = errors.New("jwtx: algorithm mismatch")
	ErrInvalidSig   = errors.New("jwtx: invalid signature")
	ErrIssuer       = errors.New("jwtx: issuer mismatch")
	ErrExpired      = errors.New("jwtx: token expired")
	ErrNotYetValid  = errors.New("jwtx: token not yet valid")
	ErrInvalidClaim = errors.New("jwtx: invalid claims")
)

// HMACVerifier validates tokens signed by an HMACSigner with the same secret.
type HMACVerifier struct {
	method *jwt.SigningMethodHMAC
	secret []byte
	opts   VerifyOptions
}

// NewHMACVerifier returns a verifier accepting only alg.
func NewHMACVerifier(alg string, secret []byte, opts VerifyOptions) (*HMACVerifier, error) {
	method, err := hmacMethod(alg)
	if err != nil {
		return nil, err
	}
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("%w: need at least %d bytes", ErrWeakSecret, MinSecretLength)
	}
	return &HMACVerifier{method: method, secret: secret, opts: opts}, nil
}

// Verify checks signature, algorithm, exp, nbf and issuer. Errors wrap one
// of the package sentinels.
func (v *HMACVerifier) Verify(tokenStr string) (SessionClaims, error) {
	popts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{v.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(v.opts.Leeway),
	}
	if v.opts.Now != nil {
		popts = append(popts, jwt.WithTimeFunc(v.opts.Now))
	}
	if v.opts.Issuer != "" {
		popts = append(popts, jwt.WithIssuer(v.opts.Issuer))
	}

	var claims SessionClaims
	tok, err := jwt.NewParser(popts...).ParseWithClaims(tokenStr, &claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		reason := classify(err)
		if reason == ErrInvalidSig && tok != nil && tok.Method != nil && tok.Method.Alg() != v.method.Alg() {
			reason = ErrAlgMismatch
		}
		return SessionClaims{}, fmt.Errorf("%w: %w", reason, err)
	}
	if claims.Subject == "" {
		return SessionClaims{}, fmt.Errorf("%w: missing sub", ErrInvalidClaim)
	}
	return claims, nil
}

// classify maps golang-jwt validation errors onto the jwtx sentinels.
func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrMalformed
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrInvalidSig
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		return ErrAlgMismatch
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return ErrNotYetValid
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return ErrIssuer
	default:
		return ErrInvalidClaim
	}
}
