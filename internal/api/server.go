package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/nilecart/storefront-backend/internal/api/handlers"
	"github.com/nilecart/storefront-backend/internal/api/middleware"
	"github.com/nilecart/storefront-backend/internal/application/checkout"
	"github.com/nilecart/storefront-backend/internal/infrastructure/storage"
)

// Config holds API server configuration.
type Config struct {
	Port           int
	AllowedOrigins []string
}

// DefaultConfig returns sensible defaults for the API server.
func DefaultConfig() Config {
	return Config{
		Port:           8080,
		AllowedOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
	}
}

// Server is the HTTP API server.
type Server struct {
	config     Config
	router     chi.Router
	httpServer *http.Server
	logger     *slog.Logger
	repo       storage.Repository
	checkout   *checkout.Service
	carts      *handlers.CartManager
}

// NewServer creates a new API server.
func NewServer(cfg Config, repo storage.Repository, checkoutSvc *checkout.Service, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		config:   cfg,
		router:   chi.NewRouter(),
		logger:   logger,
		repo:     repo,
		checkout: checkoutSvc,
		carts:    handlers.NewCartManager(),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// setupMiddleware configures global middleware.
func (s *Server) setupMiddleware() {
	corsConfig := middleware.CORSConfig{
		AllowedOrigins: s.config.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", handlers.SessionHeader},
	}
	s.router.Use(middleware.CORS(corsConfig))

	s.router.Use(middleware.Logging(s.logger))
}

// setupRoutes configures all API routes.
func (s *Server) setupRoutes() {
	// Health check (no /api prefix - for load balancers)
	healthHandler := handlers.NewHealthHandler()
	s.router.Get("/health", healthHandler.ServeHTTP)

	// API routes
	s.router.Route("/api", func(r chi.Router) {
		// Catalog
		productsHandler := handlers.NewProductsHandler(s.repo)
		r.Get("/products", productsHandler.List)
		r.Get("/products/{id}", productsHandler.Get)

		categoriesHandler := handlers.NewCategoriesHandler(s.repo)
		r.Get("/categories", categoriesHandler.List)

		searchHandler := handlers.NewSearchHandler(s.repo)
		r.Get("/search", searchHandler.Search)

		// Promotions
		offersHandler := handlers.NewOffersHandler(s.repo)
		r.Get("/offers", offersHandler.List)

		dealsHandler := handlers.NewDealsHandler(s.repo)
		r.Get("/deals", dealsHandler.List)

		specialsHandler := handlers.NewSpecialsHandler(s.repo)
		r.Get("/specials", specialsHandler.List)

		// Cart and wishlist (session-keyed)
		cartHandler := handlers.NewCartHandler(s.repo, s.carts)
		r.Get("/cart", cartHandler.Get)
		r.Delete("/cart", cartHandler.Clear)
		r.Post("/cart/items", cartHandler.AddItem)
		r.Put("/cart/items/{productID}", cartHandler.SetQty)
		r.Post("/cart/items/{productID}/increase", cartHandler.IncreaseQty)
		r.Post("/cart/items/{productID}/decrease", cartHandler.DecreaseQty)
		r.Delete("/cart/items/{productID}", cartHandler.RemoveItem)
		r.Get("/wishlist", cartHandler.Wishlist)
		r.Post("/wishlist", cartHandler.ToggleWishlist)

		// Shipping
		shippingHandler := handlers.NewShippingHandler()
		r.Get("/shipping", shippingHandler.List)

		// Checkout
		if s.checkout != nil {
			checkoutHandler := handlers.NewCheckoutHandler(s.repo, s.checkout)
			r.Post("/checkout", checkoutHandler.Submit)

			ordersHandler := handlers.NewOrdersHandler(s.repo)
			r.Get("/orders/{id}", ordersHandler.Get)
		}
	})
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("starting API server", "addr", addr)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down API server")

	if s.httpServer == nil {
		return nil
	}

	return s.httpServer.Shutdown(ctx)
}

// Router returns the chi router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}
