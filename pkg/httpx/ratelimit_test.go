package httpx_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/hoops/pkg/httpx"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestIPKeyExtractor(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{"remote addr", nil, "192.168.1.1"},
		{"forwarded for", map[string]string{"X-Forwarded-For": "203.0.113.1, 192.168.1.1"}, "203.0.113.1"},
		{"real ip", map[string]string{"X-Real-IP": "203.0.113.2"}, "203.0.113.2"},
		{"forwarded wins", map[string]string{"X-Forwarded-For": "203.0.113.1", "X-Real-IP": "203.0.113.2"}, "203.0.113.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = "192.168.1.1:12345"
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			require.Equal(t, tt.want, httpx.IPKeyExtractor(req))
		})
	}
}

func TestJSONFieldKeyExtractor(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":" Ann@Example.com ","password":"pw"}`))
	require.Equal(t, "ann@example.com", httpx.JSONFieldKeyExtractor("email")(req))

	// Body is still readable afterwards.
	buf := new(bytes.Buffer)
	_, err := buf.ReadFrom(req.Body)
	require.NoError(t, err)
	require.Contains(t, buf.String(), `"password":"pw"`)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`not json`))
	require.Empty(t, httpx.JSONFieldKeyExtractor("email")(req))
}

func TestCompositeKeyExtractor(t *testing.T) {
	a := func(*http.Request) string { return "a" }
	empty := func(*http.Request) string { return "" }
	b := func(*http.Request) string { return "b" }

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	require.Equal(t, "a:b", httpx.CompositeKeyExtractor(":", a, empty, b)(req))
	require.Empty(t, httpx.CompositeKeyExtractor(":", empty)(req))
}

func TestRateLimit(t *testing.T) {
	send := func(h http.Handler, ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = ip + ":12345"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	t.Run("blocks over limit", func(t *testing.T) {
		h := httpx.RateLimitByIP(httpx.RateLimitConfig{RequestsPerWindow: 3, Window: time.Minute, Burst: 3})(okHandler)
		for i := range 3 {
			require.Equal(t, http.StatusOK, send(h, "10.0.0.1").Code, "request %d", i+1)
		}

		rec := send(h, "10.0.0.1")
		require.Equal(t, http.StatusTooManyRequests, rec.Code)
		require.NotEmpty(t, rec.Header().Get("Retry-After"))
		require.Equal(t, "3", rec.Header().Get("X-RateLimit-Limit"))
		require.Contains(t, rec.Body.String(), "rate_limit_exceeded")
	})

	t.Run("keys tracked separately", func(t *testing.T) {
		h := httpx.RateLimitByIP(httpx.RateLimitConfig{RequestsPerWindow: 1, Window: time.Minute, Burst: 1})(okHandler)
		require.Equal(t, http.StatusOK, send(h, "10.0.0.1").Code)
		require.Equal(t, http.StatusTooManyRequests, send(h, "10.0.0.1").Code)
		require.Equal(t, http.StatusOK, send(h, "10.0.0.2").Code)
	})

	t.Run("empty key passes", func(t *testing.T) {
		h := httpx.RateLimit(httpx.RateLimitConfig{RequestsPerWindow: 1, Window: time.Minute, Burst: 1},
			func(*http.Request) string { return "" })(okHandler)
		for range 3 {
			require.Equal(t, http.StatusOK, send(h, "10.0.0.1").Code)
		}
	})

	t.Run("by ip and email", func(t *testing.T) {
		h := httpx.RateLimitByIPAndJSONField(httpx.RateLimitConfig{RequestsPerWindow: 1, Window: time.Minute, Burst: 1}, "email")(okHandler)
		login := func(email string) int {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"`+email+`"}`))
			req.RemoteAddr = "10.0.0.1:1"
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			return rec.Code
		}
		require.Equal(t, http.StatusOK, login("a@x.com"))
		require.Equal(t, http.StatusTooManyRequests, login("A@X.com"))
		require.Equal(t, http.StatusOK, login("b@x.com"))
	})

	t.Run("by subject", func(t *testing.T) {
		h := httpx.RateLimitBySubject(httpx.RateLimitConfig{RequestsPerWindow: 1, Window: time.Minute, Burst: 1})(okHandler)
		as := func(subject, ip string) int {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = ip + ":1"
			req = req.WithContext(httpx.WithSubject(req.Context(), subject))
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			return rec.Code
		}
		require.Equal(t, http.StatusOK, as("ann", "10.0.0.1"))
		require.Equal(t, http.StatusTooManyRequests, as("ann", "10.0.0.1"))
		require.Equal(t, http.StatusOK, as("bob", "10.0.0.1"))
		// A shared subject from another address has its own bucket.
		require.Equal(t, http.StatusOK, as("ann", "10.0.0.2"))
	})
}

func TestParseRateLimitFromEnv(t *testing.T) {
	def := httpx.RateLimitConfig{RequestsPerWindow: 5, Window: time.Minute, Burst: 5}

	t.Setenv("RATELIMIT_TEST_REQUESTS", "50")
	t.Setenv("RATELIMIT_TEST_WINDOW_SEC", "10")
	t.Setenv("RATELIMIT_TEST_BURST", "-1")

	got := httpx.ParseRateLimitFromEnv("TEST", def)
	require.Equal(t, 50, got.RequestsPerWindow)
	require.Equal(t, 10*time.Second, got.Window)
	require.Equal(t, 5, got.Burst)

	require.Equal(t, def, httpx.ParseRateLimitFromEnv("UNSET", def))
}

func TestRateLimitProfilesFromEnv(t *testing.T) {
	t.Setenv("RATELIMIT_STRICT_REQUESTS", "1000")
	p := httpx.RateLimitProfilesFromEnv()
	require.Equal(t, 1000, p.Strict.RequestsPerWindow)
	require.Equal(t, httpx.DefaultRateLimitProfiles().Public, p.Public)
}
