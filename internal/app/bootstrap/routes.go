// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	accountsfeature "github.com/volunteerhub/volunteerhub/internal/app/features/accounts"
	healthfeature "github.com/volunteerhub/volunteerhub/internal/app/features/health"
	projectsfeature "github.com/volunteerhub/volunteerhub/internal/app/features/projects"
	userstore "github.com/volunteerhub/volunteerhub/internal/app/store/users"
	"github.com/volunteerhub/volunteerhub/internal/app/system/auth"
	"github.com/volunteerhub/volunteerhub/internal/app/system/ratelimit"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: any DB or backend clients bundled in DBDeps
//   - logger: the fully configured zap.Logger for this app
//
// VolunteerHub initializes the bearer-token manager, applies the global
// token-loading middleware, and mounts the feature routers: health checks,
// account registration/login/profile, and the project aggregate API.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	tokens, err := auth.NewTokenManager(appCfg.TokenSecret, appCfg.TokenTTL, logger)
	if err != nil {
		logger.Error("token manager init failed", zap.Error(err))
		return nil, err
	}

	// Set up the UserFetcher so LoadUser fetches fresh user data on each
	// request. This ensures deleted accounts and profile updates take
	// effect immediately rather than at token expiry.
	tokens.SetUserFetcher(userstore.NewFetcher(deps.MongoDatabase))

	loginLimiter := ratelimit.New(appCfg.LoginRateLimit, appCfg.LoginRateWindow)

	r := chi.NewRouter()

	// Global auth middleware: loads the token's user into context if a
	// valid bearer token is present. Requests without one pass through
	// unauthenticated; per-route RequireUser does the gating.
	r.Use(tokens.LoadUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Accounts: registration, login, profile
	accountsHandler := accountsfeature.NewHandler(deps.MongoDatabase, logger, tokens, loginLimiter, appCfg.BcryptCost)
	r.Mount("/auth", accountsfeature.Routes(accountsHandler))

	// Projects: the aggregate API
	projectsHandler := projectsfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/projects", projectsfeature.Routes(projectsHandler))

	return r, nil
}
