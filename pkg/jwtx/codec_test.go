package jwtx_test

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/hoops/pkg/jwtx"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newCodec(t *testing.T, clock *fakeClock, mutate ...func(*jwtx.CodecConfig)) *jwtx.Codec {
	t.Helper()
	cfg := jwtx.CodecConfig{
		Alg:    "HS256",
		Secret: testSecret,
		TTL:    time.Hour,
		Now:    clock.Now,
	}
	for _, m := range mutate {
		m(&cfg)
	}
	c, err := jwtx.NewCodec(cfg)
	require.NoError(t, err)
	return c
}

func TestCodec_IssueVerify(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	c := newCodec(t, clock)

	tok, exp, err := c.Issue("ann@example.com", 0)
	require.NoError(t, err)
	require.True(t, clock.t.Add(time.Hour).Equal(exp))
	require.Equal(t, 2, strings.Count(tok, "."))

	claims, err := c.Verify(tok)
	require.NoError(t, err)
	require.Equal(t, "ann@example.com", claims.Subject)
	require.Equal(t, "ann@example.com", claims.Email)
	require.NotEmpty(t, claims.ID)
}

func TestCodec_Expiry(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	c := newCodec(t, clock)

	tok, _, err := c.Issue("ann@example.com", 10*time.Minute)
	require.NoError(t, err)

	clock.Advance(10*time.Minute - time.Second)
	_, err = c.Verify(tok)
	require.NoError(t, err)

	clock.Advance(2 * time.Second)
	_, err = c.Verify(tok)
	require.ErrorIs(t, err, jwtx.ErrExpired)
}

func TestCodec_DefaultTTL(t *testing.T) {
	c, err := jwtx.NewCodec(jwtx.CodecConfig{Secret: testSecret})
	require.NoError(t, err)
	require.Equal(t, jwtx.DefaultSessionTTL, c.TTL())
	require.Equal(t, 1440*time.Minute, c.TTL())
}

func TestCodec_DifferentSecret(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	a := newCodec(t, clock)
	b := newCodec(t, clock, func(cfg *jwtx.CodecConfig) {
		cfg.Secret = []byte("another-secret-another-secret!!")
	})

	tok, _, err := a.Issue("ann@example.com", 0)
	require.NoError(t, err)

	_, err = b.Verify(tok)
	require.ErrorIs(t, err, jwtx.ErrInvalidSig)
}

func TestCodec_Tampered(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	c := newCodec(t, clock)

	tok, _, err := c.Issue("ann@example.com", 0)
	require.NoError(t, err)

	parts := strings.Split(tok, ".")
	other, _, err := c.Issue("mallory@example.com", 0)
	require.NoError(t, err)
	forged := parts[0] + "." + strings.Split(other, ".")[1] + "." + parts[2]

	_, err = c.Verify(forged)
	require.ErrorIs(t, err, jwtx.ErrInvalidSig)
}

func TestCodec_Malformed(t *testing.T) {
	c := newCodec(t, &fakeClock{t: time.Now()})

	for _, tok := range []string{"", "abc", "a.b", "a.b.c", "....."} {
		_, err := c.Verify(tok)
		require.ErrorIs(t, err, jwtx.ErrMalformed, "%q", tok)
	}
}

func TestCodec_AlgMismatch(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	c := newCodec(t, clock)

	claims := jwtx.NewSessionClaims("ann@example.com", "", time.Hour, clock.Now())
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(testSecret)
	require.NoError(t, err)

	_, err = c.Verify(tok)
	require.ErrorIs(t, err, jwtx.ErrAlgMismatch)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = c.Verify(none)
	require.Error(t, err)
}

func TestCodec_Issuer(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	a := newCodec(t, clock, func(cfg *jwtx.CodecConfig) { cfg.Issuer = "hoops" })
	b := newCodec(t, clock, func(cfg *jwtx.CodecConfig) { cfg.Issuer = "other" })

	tok, _, err := a.Issue("ann@example.com", 0)
	require.NoError(t, err)

	_, err = a.Verify(tok)
	require.NoError(t, err)
	_, err = b.Verify(tok)
	require.ErrorIs(t, err, jwtx.ErrIssuer)
}

func TestCodec_MissingClaims(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	c := newCodec(t, clock)

	// No exp.
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "ann"}).SignedString(testSecret)
	require.NoError(t, err)
	_, err = c.Verify(tok)
	require.Error(t, err)

	// No sub.
	tok, err = jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": clock.Now().Add(time.Hour).Unix(),
	}).SignedString(testSecret)
	require.NoError(t, err)
	_, err = c.Verify(tok)
	require.ErrorIs(t, err, jwtx.ErrInvalidClaim)

	_, _, err = c.Issue("", 0)
	require.ErrorIs(t, err, jwtx.ErrInvalidClaim)
}

func TestNewCodec_Config(t *testing.T) {
	tests := []struct {
		name    string
		alg     string
		secret  []byte
		wantErr error
	}{
		{"hs256", "HS256", testSecret, nil},
		{"hs384 lower", "hs384", testSecret, nil},
		{"hs512", "HS512", testSecret, nil},
		{"rs256", "RS256", testSecret, jwtx.ErrUnsupportedAlg},
		{"short secret", "HS256", []byte("short"), jwtx.ErrWeakSecret},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := jwtx.NewCodec(jwtx.CodecConfig{Alg: tt.alg, Secret: tt.secret})
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}
