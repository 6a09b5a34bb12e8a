package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmatoso/checkpix-backend/api/controllers"
	"github.com/dmatoso/checkpix-backend/api/middleware"
	"github.com/dmatoso/checkpix-backend/api/responses"
	productsvc "github.com/dmatoso/checkpix-backend/internal/products"
	recordsvc "github.com/dmatoso/checkpix-backend/internal/records"
	smssvc "github.com/dmatoso/checkpix-backend/internal/sms"
	verificationsvc "github.com/dmatoso/checkpix-backend/internal/verification"
	"github.com/dmatoso/checkpix-backend/pkg/auth/session"
	"github.com/dmatoso/checkpix-backend/pkg/config"
	"github.com/dmatoso/checkpix-backend/pkg/db"
	"github.com/dmatoso/checkpix-backend/pkg/logger"
	"github.com/dmatoso/checkpix-backend/pkg/metrics"
	"github.com/dmatoso/checkpix-backend/pkg/redis"
	"github.com/dmatoso/checkpix-backend/pkg/storage/local"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	gate *session.Gate,
	store *local.Store,
	httpMetrics *metrics.HTTPMetrics,
	promRegistry *prometheus.Registry,
	verificationService verificationsvc.Service,
	recordService recordsvc.Service,
	productService productsvc.Service,
	smsService smssvc.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(cfg.CORS),
		middleware.RouteGuard(cfg.Admin, logg),
	)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		responses.WriteNotFound(w)
	})

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	if promRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{}))
	}

	// Assign the limiter store only from a non-nil client: a typed-nil
	// *redis.Client inside the interface would defeat the disable check.
	loginRateLimit := middleware.LoginRateLimit(cfg.LoginRate, nil, logg)
	if redisClient != nil {
		loginRateLimit = middleware.LoginRateLimit(cfg.LoginRate, redisClient, logg)
	}

	r.Route("/api/auth", func(r chi.Router) {
		r.With(loginRateLimit).
			Post("/login", controllers.AuthLogin(gate, logg))
		r.Post("/logout", controllers.AuthLogout(gate, logg))
		r.Get("/check", controllers.AuthCheck(logg))
	})

	r.Post("/api/verify-code", controllers.VerifyCode(verificationService, logg))

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdminSession(cfg.Admin, logg))

		r.Route("/api/records", func(r chi.Router) {
			r.Get("/", controllers.RecordList(recordService, logg))
			r.Post("/", controllers.RecordCreate(recordService, logg))
			r.Get("/stats", controllers.RecordStats(recordService, logg))
			r.Put("/{recordId}", controllers.RecordUpdate(recordService, logg))
			r.Patch("/{recordId}/toggle-active", controllers.RecordToggleActive(recordService, logg))
			r.Delete("/{recordId}", controllers.RecordDelete(recordService, logg))
		})

		r.Route("/api/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(productService, logg))
			r.Post("/", controllers.ProductCreate(productService, logg))
			r.Put("/{productId}", controllers.ProductUpdate(productService, logg))
			r.Patch("/{productId}/toggle-active", controllers.ProductToggleActive(productService, logg))
			r.Delete("/{productId}", controllers.ProductDelete(productService, logg))
		})

		r.Post("/api/send-sms", controllers.SendSMS(smsService, logg))
		r.Get("/api/twilio-config", controllers.TwilioConfigGet(smsService, logg))
		r.Put("/api/twilio-config", controllers.TwilioConfigPut(smsService, logg))
		r.Post("/api/upload", controllers.Upload(store, cfg.Storage, logg))
	})

	if store != nil {
		assets := http.FileServer(http.Dir(store.Root()))
		r.Handle("/qrcodes/*", assets)
		r.Handle("/uploads/*", assets)
	}

	// Panel paths only respond once the route guard lets them through.
	panel := controllers.Panel()
	r.Handle("/painel/admin", panel)
	r.Handle("/painel/admin/*", panel)
	r.Handle("/{urlToken}/painel/admin", panel)
	r.Handle("/{urlToken}/painel/admin/*", panel)

	return r
}
