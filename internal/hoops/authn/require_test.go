package authn_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/hoops/internal/hoops/authn"
	"github.com/aussiebroadwan/hoops/internal/hoops/domain"
	"github.com/aussiebroadwan/hoops/pkg/httpx"
)

// countingStrategy wraps a Strategy and counts Verify calls.
type countingStrategy struct {
	authn.Strategy
	verifies int
}

func (c *countingStrategy) Verify(ctx context.Context, cred string) (domain.Principal, error) {
	c.verifies++
	return c.Strategy.Verify(ctx, cred)
}

// failingStrategy always finds a credential and fails with err.
type failingStrategy struct{ err error }

func (failingStrategy) Name() string { return "failing" }
func (failingStrategy) Extract(*http.Request) (string, bool, error) {
	return "x", true, nil
}
func (f failingStrategy) Verify(context.Context, string) (domain.Principal, error) {
	return domain.Principal{}, f.err
}

func principalEcho() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := authn.PrincipalFromContext(r.Context())
		if !ok {
			http.Error(w, "no principal", http.StatusTeapot)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, map[string]string{
			"strategy": p.Strategy,
			"subject":  p.Subject,
			"label":    httpx.SubjectFromContext(r.Context()),
		})
	})
}

func TestRequire(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{t: time.Now()}
	codec := newCodec(t, clock)
	session, _, err := codec.Issue("ann@example.com", 0)
	require.NoError(t, err)

	prov := &fakeProvider{users: map[string]domain.ExternalPrincipal{"idt": {UID: "u1"}}}

	newGate := func() (http.Handler, *countingStrategy, *countingStrategy, *countingStrategy) {
		st := &countingStrategy{Strategy: authn.NewStaticToken(staticSecret)}
		se := &countingStrategy{Strategy: authn.NewSessionToken(codec)}
		ex := &countingStrategy{Strategy: authn.NewExternalIdentity(prov)}
		return httpx.Chain(principalEcho(), authn.Require(st, se, ex)), st, se, ex
	}

	tests := []struct {
		name       string
		build      func() *http.Request
		wantStatus int
		wantStrat  string
		wantAuthz  bool
		verifies   [3]int
	}{
		{
			name:       "no credential",
			build:      func() *http.Request { return httptest.NewRequest(http.MethodGet, "/", nil) },
			wantStatus: http.StatusUnauthorized,
			wantAuthz:  true,
		},
		{
			name: "static accepted",
			build: func() *http.Request {
				r := httptest.NewRequest(http.MethodGet, "/", nil)
				r.Header.Set("token", staticSecret)
				return r
			},
			wantStatus: http.StatusOK,
			wantStrat:  domain.StrategyStatic,
			verifies:   [3]int{1, 0, 0},
		},
		{
			name: "session accepted",
			build: func() *http.Request {
				r := httptest.NewRequest(http.MethodGet, "/", nil)
				r.Header.Set("Authorization", "Bearer "+session)
				return r
			},
			wantStatus: http.StatusOK,
			wantStrat:  domain.StrategySession,
			verifies:   [3]int{0, 1, 0},
		},
		{
			name: "external accepted",
			build: func() *http.Request {
				return httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"id_token":"idt"}`))
			},
			wantStatus: http.StatusOK,
			wantStrat:  domain.StrategyExternal,
			verifies:   [3]int{0, 0, 1},
		},
		{
			name: "bad static does not fall through to a valid session",
			build: func() *http.Request {
				r := httptest.NewRequest(http.MethodGet, "/", nil)
				r.Header.Set("token", "wrong")
				r.Header.Set("Authorization", "Bearer "+session)
				return r
			},
			wantStatus: http.StatusUnauthorized,
			wantAuthz:  true,
			verifies:   [3]int{1, 0, 0},
		},
		{
			name: "malformed authorization never reaches verify",
			build: func() *http.Request {
				r := httptest.NewRequest(http.MethodGet, "/", nil)
				r.Header.Set("Authorization", "Basic abc")
				return r
			},
			wantStatus: http.StatusUnauthorized,
			wantAuthz:  true,
			verifies:   [3]int{0, 0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gate, st, se, ex := newGate()
			rec := httptest.NewRecorder()
			gate.ServeHTTP(rec, tt.build())

			require.Equal(t, tt.wantStatus, rec.Code)
			require.Equal(t, tt.verifies, [3]int{st.verifies, se.verifies, ex.verifies})
			if tt.wantAuthz {
				require.Contains(t, rec.Header().Get("WWW-Authenticate"), "Bearer")
			}
			if tt.wantStrat != "" {
				var body map[string]string
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
				require.Equal(t, tt.wantStrat, body["strategy"])
				require.True(t, strings.HasPrefix(body["label"], tt.wantStrat))
			}
		})
	}
}

func TestRequireStatusMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want int
	}{
		{authn.ErrInvalidCredential, http.StatusUnauthorized},
		{authn.ErrExpiredCredential, http.StatusUnauthorized},
		{authn.ErrMalformedCredential, http.StatusUnauthorized},
		{authn.ErrAccountInactive, http.StatusForbidden},
		{authn.ErrAccountNotFound, http.StatusForbidden},
		{authn.ErrUpstreamUnavailable, http.StatusInternalServerError},
		{errors.New("surprise"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			h := httpx.Chain(principalEcho(), authn.Require(failingStrategy{err: tt.err}))
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			require.Equal(t, tt.want, rec.Code)
			require.NotContains(t, rec.Body.String(), tt.err.Error(), "reason must not leak")
		})
	}
}

func TestRequireWithoutStrategiesFailsClosed(t *testing.T) {
	t.Parallel()

	h := httpx.Chain(principalEcho(), authn.Require())
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("token", staticSecret)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
