package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rmartell/inventra-backend/api/controllers"
	"github.com/rmartell/inventra-backend/api/middleware"
	analyticssvc "github.com/rmartell/inventra-backend/internal/analytics"
	assetsvc "github.com/rmartell/inventra-backend/internal/assets"
	authsvc "github.com/rmartell/inventra-backend/internal/auth"
	mediasvc "github.com/rmartell/inventra-backend/internal/media"
	refsvc "github.com/rmartell/inventra-backend/internal/refdata"
	trackingsvc "github.com/rmartell/inventra-backend/internal/tracking"
	usersvc "github.com/rmartell/inventra-backend/internal/users"
	warrantysvc "github.com/rmartell/inventra-backend/internal/warranty"
	"github.com/rmartell/inventra-backend/pkg/auth/session"
	"github.com/rmartell/inventra-backend/pkg/config"
	"github.com/rmartell/inventra-backend/pkg/logger"
	"github.com/rmartell/inventra-backend/pkg/metrics"
	"github.com/rmartell/inventra-backend/pkg/redis"
)

// Pinger is the health check surface shared by the backing stores.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config         *config.Config
	Logger         *logger.Logger
	DB             Pinger
	Redis          *redis.Client
	GCS            Pinger
	SessionManager session.AccessSessionChecker
	Registry       *prometheus.Registry

	AuthService      authsvc.Service
	UserService      usersvc.Service
	AssetService     assetsvc.Service
	TrackingService  trackingsvc.Service
	RefDataService   refsvc.Service
	AnalyticsService analyticssvc.Service
	WarrantyService  warrantysvc.Service
	MediaService     mediasvc.Service
}

func NewRouter(d Deps) http.Handler {
	cfg := d.Config
	logg := d.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)
	if d.Registry != nil {
		httpMetrics := metrics.NewHTTPMetrics(d.Registry)
		r.Use(middleware.Metrics(httpMetrics))
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{}))
	}

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, controllers.ReadinessDeps(d.DB, d.Redis, d.GCS)))
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, d.Redis, logg)).Post("/login", controllers.AuthLogin(d.AuthService, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, d.Redis, logg)).Post("/register", controllers.AuthRegister(d.AuthService, logg))
		r.Post("/refresh", controllers.AuthRefresh(d.AuthService, logg))
		r.Post("/logout", controllers.AuthLogout(d.AuthService, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, d.SessionManager, logg))

		r.Get("/users/me", controllers.UserMe(d.UserService, logg))

		r.Route("/assets", func(r chi.Router) {
			r.Get("/", controllers.AssetList(d.AssetService, logg))
			r.Post("/", controllers.AssetCreate(d.AssetService, logg))
			r.Post("/image", controllers.AssetImageUpload(d.MediaService, logg))
			r.Get("/code/{assetCode}", controllers.AssetGetByCode(d.AssetService, logg))
			r.Route("/{assetID}", func(r chi.Router) {
				r.Get("/", controllers.AssetGet(d.AssetService, logg))
				r.Patch("/tracking", controllers.AssetUpdateTracking(d.AssetService, logg))
				r.Get("/history", controllers.AssetHistory(d.AssetService, d.TrackingService, logg))
				r.Post("/warranty/register", controllers.AssetRegisterWarranty(d.WarrantyService, logg))
			})
		})

		r.Get("/departments", controllers.DepartmentList(d.RefDataService, logg))
		r.Get("/categories", controllers.CategoryList(d.RefDataService, logg))

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireRole("admin", logg))

			r.Get("/users", controllers.UserList(d.UserService, logg))
			r.Patch("/users/{userID}/role", controllers.UserUpdateRole(d.UserService, logg))

			r.Post("/departments", controllers.DepartmentCreate(d.RefDataService, logg))
			r.Delete("/departments/{departmentID}", controllers.DepartmentDelete(d.RefDataService, logg))
			r.Post("/categories", controllers.CategoryCreate(d.RefDataService, logg))
			r.Delete("/categories/{categoryID}", controllers.CategoryDelete(d.RefDataService, logg))

			r.Delete("/assets/{assetID}", controllers.AssetDelete(d.AssetService, logg))
			r.Get("/analytics/overview", controllers.AnalyticsOverview(d.AnalyticsService, logg))
		})
	})

	return r
}
