package authn_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/hoops/internal/hoops/authn"
	"github.com/aussiebroadwan/hoops/internal/hoops/domain"
	"github.com/aussiebroadwan/hoops/internal/hoops/identity"
	"github.com/aussiebroadwan/hoops/pkg/jwtx"
)

const staticSecret = "shooting-game-api-token-2024"

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newCodec(t *testing.T, clock *fakeClock) *jwtx.Codec {
	t.Helper()
	c, err := jwtx.NewCodec(jwtx.CodecConfig{
		Alg:    "HS256",
		Secret: []byte("0123456789abcdef0123456789abcdef"),
		TTL:    time.Hour,
		Now:    clock.Now,
	})
	require.NoError(t, err)
	return c
}

// fakeProvider answers Authenticate from a fixed table keyed by token.
type fakeProvider struct {
	users map[string]domain.ExternalPrincipal
	errs  map[string]error
	calls int
}

func (f *fakeProvider) Authenticate(_ context.Context, tok string) (domain.ExternalPrincipal, error) {
	f.calls++
	if err, ok := f.errs[tok]; ok {
		return domain.ExternalPrincipal{}, err
	}
	if u, ok := f.users[tok]; ok {
		return u, nil
	}
	return domain.ExternalPrincipal{}, identity.ErrInvalidToken
}

func TestStaticToken(t *testing.T) {
	t.Parallel()

	s := authn.NewStaticToken(staticSecret)

	tests := []struct {
		name    string
		cred    string
		wantErr bool
	}{
		{"exact", staticSecret, false},
		{"empty", "", true},
		{"prefix", staticSecret[:len(staticSecret)-1], true},
		{"suffix", staticSecret + "x", true},
		{"case", strings.ToUpper(staticSecret), true},
		{"unrelated", "nope", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := s.Verify(t.Context(), tt.cred)
			if tt.wantErr {
				require.ErrorIs(t, err, authn.ErrInvalidCredential)
				return
			}
			require.NoError(t, err)
			require.Equal(t, domain.StrategyStatic, p.Strategy)
			require.Empty(t, p.Subject)
		})
	}

	t.Run("empty secret rejects everything", func(t *testing.T) {
		require.False(t, authn.NewStaticToken("").Check(""))
	})
}

func TestStaticTokenExtract(t *testing.T) {
	t.Parallel()

	s := authn.NewStaticToken(staticSecret)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok, err := s.Extract(r)
	require.NoError(t, err)
	require.False(t, ok)

	r.Header.Set("token", "")
	cred, ok, err := s.Extract(r)
	require.NoError(t, err)
	require.True(t, ok, "an empty header is still a presented credential")
	require.Empty(t, cred)

	r.Header.Set("Token", "abc")
	cred, ok, _ = s.Extract(r)
	require.True(t, ok)
	require.Equal(t, "abc", cred)
}

func TestSessionToken(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{t: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)}
	codec := newCodec(t, clock)
	s := authn.NewSessionToken(codec)

	tok, _, err := codec.Issue("ann@example.com", 0)
	require.NoError(t, err)

	t.Run("valid", func(t *testing.T) {
		p, err := s.Verify(t.Context(), tok)
		require.NoError(t, err)
		require.Equal(t, domain.StrategySession, p.Strategy)
		require.Equal(t, "ann@example.com", p.Subject)
		require.Equal(t, "ann@example.com", p.Email)
	})

	t.Run("tampered", func(t *testing.T) {
		_, err := s.Verify(t.Context(), tok[:len(tok)-2]+"xx")
		require.ErrorIs(t, err, authn.ErrInvalidCredential)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := s.Verify(t.Context(), "not-a-jwt")
		require.ErrorIs(t, err, authn.ErrInvalidCredential)
	})

	t.Run("expired collapses to invalid", func(t *testing.T) {
		other := &fakeClock{t: clock.t}
		c := newCodec(t, other)
		old, _, err := c.Issue("ann@example.com", time.Minute)
		require.NoError(t, err)

		other.Advance(2 * time.Minute)
		_, err = authn.NewSessionToken(c).Verify(t.Context(), old)
		require.ErrorIs(t, err, authn.ErrInvalidCredential)
		require.ErrorIs(t, err, jwtx.ErrExpired)
	})
}

func TestSessionTokenExtract(t *testing.T) {
	t.Parallel()

	s := authn.NewSessionToken(nil)

	tests := []struct {
		name    string
		setup   func(r *http.Request)
		target  string
		want    string
		wantOK  bool
		wantErr error
	}{
		{name: "absent", setup: func(*http.Request) {}, target: "/"},
		{name: "bearer", setup: func(r *http.Request) { r.Header.Set("Authorization", "Bearer abc") }, target: "/", want: "abc", wantOK: true},
		{name: "bearer lower-case scheme", setup: func(r *http.Request) { r.Header.Set("Authorization", "bearer abc") }, target: "/", want: "abc", wantOK: true},
		{name: "basic scheme", setup: func(r *http.Request) { r.Header.Set("Authorization", "Basic Zm9vOmJhcg==") }, target: "/", wantOK: true, wantErr: authn.ErrMalformedCredential},
		{name: "empty bearer", setup: func(r *http.Request) { r.Header.Set("Authorization", "Bearer ") }, target: "/", wantOK: true, wantErr: authn.ErrMalformedCredential},
		{name: "query fallback", setup: func(*http.Request) {}, target: "/?token=q", want: "q", wantOK: true},
		{name: "header wins over query", setup: func(r *http.Request) { r.Header.Set("Authorization", "Bearer h") }, target: "/?token=q", want: "h", wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, tt.target, nil)
			tt.setup(r)

			cred, ok, err := s.Extract(r)
			require.Equal(t, tt.wantOK, ok)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, cred)
		})
	}
}

func TestExternalIdentity(t *testing.T) {
	t.Parallel()

	prov := &fakeProvider{
		users: map[string]domain.ExternalPrincipal{
			"good": {UID: "u1", Email: "u1@example.com", EmailVerified: true},
		},
		errs: map[string]error{
			"expired":  fmt.Errorf("%w: at noon", identity.ErrExpiredToken),
			"ghost":    identity.ErrUserNotFound,
			"disabled": identity.ErrUserDisabled,
			"down":     fmt.Errorf("%w: dial tcp", identity.ErrUnavailable),
			"weird":    errors.New("boom"),
		},
	}
	s := authn.NewExternalIdentity(prov)

	p, err := s.Verify(t.Context(), "good")
	require.NoError(t, err)
	require.Equal(t, domain.StrategyExternal, p.Strategy)
	require.Equal(t, "u1", p.Subject)
	require.Equal(t, "u1@example.com", p.Email)
	require.NotNil(t, p.External)
	require.True(t, p.External.EmailVerified)

	tests := []struct {
		cred string
		want error
	}{
		{"bogus", authn.ErrInvalidCredential},
		{"expired", authn.ErrExpiredCredential},
		{"ghost", authn.ErrAccountNotFound},
		{"disabled", authn.ErrAccountInactive},
		{"down", authn.ErrUpstreamUnavailable},
		{"weird", authn.ErrUpstreamUnavailable},
		{"", authn.ErrMalformedCredential},
	}
	for _, tt := range tests {
		t.Run("reject "+tt.cred, func(t *testing.T) {
			_, err := s.Verify(t.Context(), tt.cred)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestExternalIdentityExtractRestoresBody(t *testing.T) {
	t.Parallel()

	s := authn.NewExternalIdentity(&fakeProvider{})
	body := `{"id_token":"abc","name":"ada"}`
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))

	cred, ok, err := s.Extract(r)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "abc", cred)

	rest, err := io.ReadAll(r.Body)
	require.NoError(t, err)
	require.JSONEq(t, body, string(rest))

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"ada"}`))
	_, ok, err = s.Extract(r)
	require.NoError(t, err)
	require.False(t, ok)
}
