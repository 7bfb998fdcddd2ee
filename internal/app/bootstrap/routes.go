// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	authfeature "github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/features/authfeature"
	healthfeature "github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/features/health"
	metafeature "github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/features/meta"
	notificationsfeature "github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/features/notifications"
	organizationsfeature "github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/features/organizations"
	requestsfeature "github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/features/requests"
	tasksfeature "github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/features/tasks"
	usersfeature "github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/features/users"
	vehiclesfeature "github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/features/vehicles"
	notificationstore "github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/store/notifications"
	organizationstore "github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/store/organizations"
	requeststore "github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/store/requests"
	taskstore "github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/store/tasks"
	userstore "github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/store/users"
	vehiclestore "github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/store/vehicles"
	"github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/system/auth"
	"github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/system/metrics"
	"github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/system/ratelimit"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. The router carries two global layers:
// request metrics and bearer token resolution. Everything below them is a
// feature router; role checks happen inside the handlers.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	tokens, err := auth.NewTokenManager(appCfg.JWTSecret, appCfg.JWTTTL)
	if err != nil {
		logger.Error("token manager init failed", zap.Error(err))
		return nil, err
	}

	db := deps.MongoDatabase
	users := userstore.New(db)
	orgs := organizationstore.New(db)
	vehicles := vehiclestore.New(db)
	requests := requeststore.New(db)
	tasks := taskstore.New(db)
	notifications := notificationstore.New(db)

	r := chi.NewRouter()

	// Global middleware: request metrics, then bearer token resolution so
	// auth.CurrentUser works in every handler.
	r.Use(metrics.Middleware)
	r.Use(tokens.LoadTokenUser)

	// Health check endpoint for load balancers and orchestrators.
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Prometheus scrape endpoint.
	r.Handle("/metrics", metrics.Handler())

	// Enum catalog for client pickers; public.
	r.Mount("/meta", metafeature.Routes())

	// Registration, login, and the current-user endpoint.
	limiter := ratelimit.NewLoginLimiterWithConfig(
		appCfg.LoginIPLimit, appCfg.LoginIPWindow,
		appCfg.LoginEmailLimit, appCfg.LoginEmailWindow)
	authHandler := authfeature.NewHandler(users, tokens, limiter, logger, appCfg.BcryptCost)
	r.Mount("/auth", authfeature.Routes(authHandler))

	r.Mount("/users", usersfeature.Routes(usersfeature.NewHandler(users, orgs, logger)))
	r.Mount("/organizations", organizationsfeature.Routes(organizationsfeature.NewHandler(orgs, logger)))
	r.Mount("/vehicles", vehiclesfeature.Routes(vehiclesfeature.NewHandler(vehicles, logger)))
	r.Mount("/requests", requestsfeature.Routes(requestsfeature.NewHandler(requests, deps.Publisher, logger)))
	r.Mount("/tasks", tasksfeature.Routes(tasksfeature.NewHandler(tasks, requests, vehicles, notifications, deps.Publisher, logger)))
	r.Mount("/notifications", notificationsfeature.Routes(notificationsfeature.NewHandler(notifications, logger)))

	return r, nil
}
