package jwtx

import (
	"fmt"
	"time"
)

// Codec issues and verifies session tokens under one secret.
type Codec struct {
	signer   Signer
	verifier Verifier
	issuer   string
	ttl      time.Duration
	now      func() time.Time
}

// CodecConfig configures NewCodec.
type CodecConfig struct {
	Alg    string
	Secret []byte
	Issuer string
	TTL    time.Duration
	Leeway time.Duration
	Now    func() time.Time
}

// NewCodec builds an HMAC signer and verifier pair from cfg.
func NewCodec(cfg CodecConfig) (*Codec, error) {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultSessionTTL
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	signer, err := NewHMACSigner(cfg.Alg, cfg.Secret)
	if err != nil {
		return nil, err
	}
	verifier, err := NewHMACVerifier(cfg.Alg, cfg.Secret, VerifyOptions{
		Issuer: cfg.Issuer,
		Leeway: cfg.Leeway,
		Now:    cfg.Now,
	})
	if err != nil {
		return nil, err
	}

	return &Codec{signer: signer, verifier: verifier, issuer: cfg.Issuer, ttl: cfg.TTL, now: cfg.Now}, nil
}

// TTL is the default lifetime used by Issue when ttl is zero.
func (c *Codec) TTL() time.Duration { return c.ttl }

// Issue mints a token for subject. A zero ttl uses the codec default.
func (c *Codec) Issue(subject string, ttl time.Duration) (string, time.Time, error) {
	if subject == "" {
		return "", time.Time{}, fmt.Errorf("%w: empty subject", ErrInvalidClaim)
	}
	if ttl <= 0 {
		ttl = c.ttl
	}
	claims := NewSessionClaims(subject, c.issuer, ttl, c.now().UTC())
	tok, err := c.signer.Sign(claims)
	if err != nil {
		return "", time.Time{}, err
	}
	return tok, claims.ExpiresAt.Time, nil
}

// Verify returns the claims of a valid, unexpired token.
func (c *Codec) Verify(token string) (SessionClaims, error) {
	return c.verifier.Verify(token)
}
