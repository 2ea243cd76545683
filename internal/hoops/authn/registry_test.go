package authn_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/hoops/internal/hoops/authn"
	"github.com/aussiebroadwan/hoops/internal/hoops/domain"
	"github.com/aussiebroadwan/hoops/pkg/httpx"
)

func TestParseStrategies(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    []string
		wantErr bool
	}{
		{in: "static", want: []string{"static"}},
		{in: " Session , static,session", want: []string{"session", "static"}},
		{in: "static,session,external", want: []string{"static", "session", "external"}},
		{in: "", wantErr: true},
		{in: " , ", wantErr: true},
		{in: "static,oauth", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := authn.ParseStrategies(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	static := authn.NewStaticToken(staticSecret)
	reg, err := authn.NewRegistry(static, nil, authn.NewSessionToken(nil))
	require.NoError(t, err)

	require.Equal(t, []string{"static", "session"}, reg.Names())
	require.True(t, reg.Enabled(domain.StrategyStatic))
	require.False(t, reg.Enabled(domain.StrategyExternal))
	require.Len(t, reg.Only(domain.StrategySession, domain.StrategyExternal), 1)

	_, err = authn.NewRegistry(static, authn.NewStaticToken("other"))
	require.Error(t, err)

	t.Run("session-only gate refuses the static token", func(t *testing.T) {
		h := httpx.Chain(principalEcho(), reg.Require(domain.StrategySession))
		r := httptest.NewRequest(http.MethodDelete, "/", nil)
		r.Header.Set("token", staticSecret)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, r)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("default gate accepts every enabled strategy", func(t *testing.T) {
		h := httpx.Chain(principalEcho(), reg.Require())
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("token", staticSecret)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, r)
		require.Equal(t, http.StatusOK, rec.Code)
	})
}
