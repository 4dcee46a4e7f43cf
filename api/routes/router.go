package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tenuestore/tenue-backend/api/controllers"
	"github.com/tenuestore/tenue-backend/api/middleware"
	"github.com/tenuestore/tenue-backend/internal/categories"
	"github.com/tenuestore/tenue-backend/internal/dashboard"
	"github.com/tenuestore/tenue-backend/internal/orders"
	product "github.com/tenuestore/tenue-backend/internal/products"
	"github.com/tenuestore/tenue-backend/internal/roles"
	"github.com/tenuestore/tenue-backend/internal/settings"
	"github.com/tenuestore/tenue-backend/internal/sheetsync"
	"github.com/tenuestore/tenue-backend/pkg/config"
	"github.com/tenuestore/tenue-backend/pkg/enums"
	"github.com/tenuestore/tenue-backend/pkg/logger"
	"github.com/tenuestore/tenue-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	gatherer prometheus.Gatherer,
	readiness map[string]controllers.Pinger,
	limiter redis.RateLimiter,
	ordersSvc orders.Service,
	sheetSync sheetsync.Service,
	dashboardSvc dashboard.Service,
	productSvc product.Service,
	categorySvc categories.Service,
	settingsSvc settings.Service,
	roleSvc roles.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	intakePolicy := middleware.NewRateLimitPolicy(
		"orders",
		cfg.IntakeRateLimit.Window,
		cfg.IntakeRateLimit.IPLimit,
		cfg.IntakeRateLimit.TrustedProxyHops,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readiness))
	})
	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.With(middleware.IPRateLimit(intakePolicy, limiter, logg)).Post("/orders", controllers.SubmitOrder(ordersSvc, logg))

		r.Get("/products", controllers.PublicListProducts(productSvc, logg))
		r.Get("/products/{productId}", controllers.PublicGetProduct(productSvc, logg))
		r.Get("/categories", controllers.ListCategories(categorySvc, logg))
		r.Get("/settings", controllers.GetSettings(settingsSvc, logg))
		r.Get("/settings/delivery-price/{wilayaCode}", controllers.DeliveryPrice(settingsSvc, logg))
	})

	adminOnly := middleware.RequireRole(logg, enums.UserRoleAdmin)

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, roleSvc, logg))
		r.Use(middleware.RequireRole(logg, enums.UserRoleAdmin, enums.UserRoleModerator))

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.AdminListOrders(ordersSvc, logg))
			r.Get("/{orderId}", controllers.AdminGetOrder(ordersSvc, logg))
			r.Patch("/{orderId}/status", controllers.AdminUpdateOrderStatus(ordersSvc, logg))
			r.Post("/{orderId}/resync", controllers.AdminResyncOrder(sheetSync, logg))
			r.With(adminOnly).Delete("/{orderId}", controllers.AdminDeleteOrder(ordersSvc, logg))
		})

		r.Get("/dashboard/stats", controllers.DashboardStats(dashboardSvc, logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.AdminListProducts(productSvc, logg))
			r.Get("/{productId}", controllers.AdminGetProduct(productSvc, logg))
			r.With(adminOnly).Post("/", controllers.AdminCreateProduct(productSvc, logg))
			r.With(adminOnly).Put("/{productId}", controllers.AdminUpdateProduct(productSvc, logg))
			r.With(adminOnly).Delete("/{productId}", controllers.AdminDeleteProduct(productSvc, logg))
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", controllers.ListCategories(categorySvc, logg))
			r.Get("/{categoryId}", controllers.AdminGetCategory(categorySvc, logg))
			r.With(adminOnly).Post("/", controllers.AdminCreateCategory(categorySvc, logg))
			r.With(adminOnly).Put("/{categoryId}", controllers.AdminUpdateCategory(categorySvc, logg))
			r.With(adminOnly).Delete("/{categoryId}", controllers.AdminDeleteCategory(categorySvc, logg))
		})

		r.With(adminOnly).Put("/settings", controllers.AdminUpsertSettings(settingsSvc, logg))

		r.Route("/roles", func(r chi.Router) {
			r.Get("/{userId}", controllers.AdminGetRole(roleSvc, logg))
			r.With(adminOnly).Put("/{userId}", controllers.AdminSetRole(roleSvc, logg))
		})
	})

	return r
}
