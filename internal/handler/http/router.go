package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shiva-srivastav/zest-products/internal/service"
	"github.com/shiva-srivastav/zest-products/pkg/health"
	"github.com/shiva-srivastav/zest-products/pkg/middleware"
)

// NewRouter creates a chi router with all service routes registered.
func NewRouter(
	authService *service.AuthService,
	productService *service.ProductService,
	healthHandler *health.Handler,
	logger *slog.Logger,
	corsConfig middleware.CORSConfig,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CORS(corsConfig))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.Tracing("zest-products"))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.PrometheusMetrics("zest-products"))

	// Health check and metrics endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	// Token validator bridging to the auth service.
	tokenValidator := func(token string) (*middleware.Claims, error) {
		claims, err := authService.ValidateAccessToken(token)
		if err != nil {
			return nil, err
		}
		return &middleware.Claims{
			Username: claims.Username,
			Role:     claims.Role,
		}, nil
	}

	authHandler := NewAuthHandler(authService, logger)

	// Public auth endpoints
	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Post("/refresh-token", authHandler.RefreshToken)

		// Logout requires a valid access token.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(tokenValidator))
			r.Post("/logout", authHandler.Logout)
		})
	})

	// Product catalog endpoints (auth required)
	productHandler := NewProductHandler(productService, logger)
	r.Route("/api/v1/products", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(middleware.Auth(tokenValidator))

		r.Get("/", productHandler.List)
		r.Post("/", productHandler.Create)
		r.Get("/{id}", productHandler.Get)
		r.Put("/{id}", productHandler.Update)
		r.Delete("/{id}", productHandler.Delete)

		r.Get("/{id}/items", productHandler.ListItems)
		r.Post("/{id}/items", productHandler.AddItem)
		r.Get("/{id}/items/{itemId}", productHandler.GetItem)
		r.Put("/{id}/items/{itemId}", productHandler.UpdateItem)
		r.Delete("/{id}/items/{itemId}", productHandler.DeleteItem)
	})

	return r
}
