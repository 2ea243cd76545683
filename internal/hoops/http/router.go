package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/hoops/internal/hoops/authn"
	"github.com/aussiebroadwan/hoops/internal/hoops/domain"
	"github.com/aussiebroadwan/hoops/internal/hoops/service"
	"github.com/aussiebroadwan/hoops/internal/hoops/store"
	"github.com/aussiebroadwan/hoops/pkg/httpx"
	"github.com/aussiebroadwan/hoops/pkg/slogx"

	_ "github.com/aussiebroadwan/hoops/api/hoops" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// IdentityProvider is satisfied by *identity.Provider.
type IdentityProvider interface {
	Authenticate(ctx context.Context, idToken string) (domain.ExternalPrincipal, error)
	GetUser(ctx context.Context, uid string) (domain.ExternalPrincipal, error)
}

// Options are the router settings that come from configuration.
type Options struct {
	// Prefix is prepended to every API route, e.g. "/api".
	Prefix string

	CORSOrigins []string
	RateLimits  httpx.RateLimitProfiles

	// StaticToken is handed out by GET {prefix}/auth/token.
	StaticToken string
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	opts         Options
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store    store.Store
	registry *authn.Registry

	AccountService     *service.AccountService
	LeaderboardService *service.LeaderboardService
	Identity           IdentityProvider // Optional: only when the external strategy is configured
}

func NewRouter(
	opts Options,
	buildVersion string,
	st store.Store,
	registry *authn.Registry,
	logger *slog.Logger,
) *Router {
	if opts.Prefix == "/" {
		opts.Prefix = ""
	}
	r := &Router{
		Mux:          http.NewServeMux(),
		opts:         opts,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		registry:     registry,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.CORS(opts.CORSOrigins),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerIdentity()
	r.registerLeaderboard()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title						Neon Hoops API
//	@version					1.0.0
//	@description				Leaderboard backend for the Neon Hoops arcade game.
//	@description
//	@description				Protected endpoints accept whichever credentials the server enables:
//	@description				a shared API token, a session token from /api/auth/login, or an ID token
//	@description				from the external identity provider.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/hoops
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8000
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	StaticToken
//	@in							header
//	@name						token
//	@description				Shared API token.
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Session token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) route(method, path string) string {
	return method + " " + r.opts.Prefix + path
}

func (r *Router) registerAuth() {
	limits := r.opts.RateLimits

	// Session tokens are only useful when the session strategy is enabled.
	if r.registry.Enabled(domain.StrategySession) && r.AccountService != nil {
		login := &LoginHandler{AccountService: r.AccountService}

		// POST /auth/login - strict rate limit by IP + email to slow down guessing
		r.Mux.Handle(r.route(http.MethodPost, "/auth/login"),
			httpx.Chain(login,
				httpx.RateLimitByIPAndJSONField(limits.Strict, "email"),
			),
		)
	}

	static, _ := r.registry.Get(domain.StrategyStatic)
	staticHandler := &StaticTokenHandler{Enabled: static != nil, Token: r.opts.StaticToken}
	r.Mux.Handle(r.route(http.MethodGet, "/auth/token"),
		httpx.Chain(staticHandler,
			httpx.RateLimitByIP(limits.Moderate),
		),
	)

	verify := &VerifyHandler{}
	if s, ok := r.registry.Get(domain.StrategySession); ok {
		verify.Session = s
	}
	if s, ok := r.registry.Get(domain.StrategyStatic); ok {
		verify.Static = s
	}
	r.Mux.Handle(r.route(http.MethodGet, "/auth/verify"),
		httpx.Chain(verify,
			httpx.RateLimitByIP(limits.Public),
		),
	)

	// GET /auth/me - any enabled strategy
	r.Mux.Handle(r.route(http.MethodGet, "/auth/me"),
		httpx.Chain(&MeHandler{},
			httpx.RateLimitByIP(limits.Public),
			r.registry.Require(),
		),
	)
}

func (r *Router) registerIdentity() {
	limits := r.opts.RateLimits

	h := &IdentityHandler{Identity: r.Identity}

	// POST /auth/firebase/verify - public, strict-ish by IP (each call hits the provider)
	r.Mux.Handle(r.route(http.MethodPost, "/auth/firebase/verify"),
		httpx.Chain(http.HandlerFunc(h.HandleVerify),
			httpx.RateLimitByIP(limits.Moderate),
		),
	)

	r.Mux.Handle(r.route(http.MethodGet, "/auth/user/{uid}"),
		httpx.Chain(http.HandlerFunc(h.HandleGetUser),
			httpx.RateLimitByIP(limits.Public),
			r.registry.Require(),
			httpx.RateLimitBySubject(limits.Moderate),
		),
	)
}

func (r *Router) registerLeaderboard() {
	limits := r.opts.RateLimits
	h := &LeaderboardHandler{LeaderboardService: r.LeaderboardService}

	securedList := httpx.Chain(http.HandlerFunc(h.HandleList),
		httpx.RateLimitByIP(limits.Public),
		r.registry.Require(),
	)

	securedGet := httpx.Chain(http.HandlerFunc(h.HandleGet),
		httpx.RateLimitByIP(limits.Public),
		r.registry.Require(),
	)

	// POST - moderate rate limit per caller
	securedSubmit := httpx.Chain(http.HandlerFunc(h.HandleSubmit),
		httpx.RateLimitByIP(limits.Public),
		r.registry.Require(),
		httpx.RateLimitBySubject(limits.Moderate),
	)

	// DELETE - session tokens only; players holding the shared token cannot remove scores
	securedDelete := httpx.Chain(http.HandlerFunc(h.HandleDelete),
		httpx.RateLimitByIP(limits.Public),
		r.registry.Require(domain.StrategySession),
		httpx.RateLimitBySubject(limits.Moderate),
	)

	r.Mux.Handle(r.route(http.MethodGet, "/leaderboard"), securedList)
	r.Mux.Handle(r.route(http.MethodPost, "/leaderboard"), securedSubmit)
	r.Mux.Handle(r.route(http.MethodGet, "/leaderboard/{id}"), securedGet)
	r.Mux.Handle(r.route(http.MethodDelete, "/leaderboard/{id}"), securedDelete)
}

func (r *Router) registerSystem() {
	limits := r.opts.RateLimits

	r.Mux.Handle("GET /{$}",
		httpx.Chain(RootHandler(r.buildVersion),
			httpx.RateLimitByIP(limits.Public),
		),
	)
	// Health check endpoints - public limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /health",
		httpx.Chain(HealthHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(limits.Public),
		),
	)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(limits.Public),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(limits.Public),
		),
	)
}
