// Package httpapi binds the storefront and back-office operations to HTTP.
package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/krishma/storefront/internal/auth"
	"github.com/krishma/storefront/internal/backend"
)

// Deps is everything the router needs wired in.
type Deps struct {
	Logger         *zap.Logger
	Sessions       *auth.SessionManager
	Backend        *backend.Client
	Cart           CartService
	Checkout       CheckoutService
	Catalog        CatalogService
	Tracker        EventTracker
	RequestTimeout time.Duration
}

// NewRouter assembles the chi router: storefront routes for anyone with a
// session, customer routes behind an identity, admin routes behind the
// admin role.
func NewRouter(deps Deps) *chi.Mux {
	cartHandler := NewCartHandler(deps.Cart, deps.Catalog, deps.Tracker, deps.RequestTimeout)
	checkoutHandler := NewCheckoutHandler(deps.Checkout, deps.RequestTimeout)
	catalogHandler := NewCatalogHandler(deps.Catalog, deps.Tracker, deps.RequestTimeout)
	sessionHandler := NewSessionHandler(deps.Sessions)
	customerHandler := NewCustomerHandler(deps.Backend, deps.Catalog, deps.RequestTimeout)
	adminProducts := NewAdminProductsHandler(deps.Backend, deps.RequestTimeout)
	adminOrders := NewAdminOrdersHandler(deps.Backend, deps.RequestTimeout)
	adminCustomers := NewAdminCustomersHandler(deps.Backend, deps.RequestTimeout)
	adminReviews := NewAdminReviewsHandler(deps.Backend, deps.RequestTimeout)
	adminProfile := NewAdminProfileHandler(deps.Backend, deps.RequestTimeout)
	dashboardHandler := NewDashboardHandler(deps.Backend, deps.RequestTimeout)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(LoggerMiddleware(deps.Logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(deps.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(SessionMiddleware(deps.Sessions))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/session", sessionHandler.Login)
		r.Get("/session", sessionHandler.Current)
		r.Delete("/session", sessionHandler.Logout)

		r.Get("/products", catalogHandler.ListProducts)
		r.Get("/products/{product_id}", catalogHandler.GetProduct)
		r.Get("/recommendations", catalogHandler.Recommendations)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Delete("/", cartHandler.ClearCart)
			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{product_id}", cartHandler.UpdateQuantity)
			r.Delete("/items/{product_id}", cartHandler.RemoveItem)
		})

		r.Post("/checkout", checkoutHandler.PlaceOrder)

		r.Group(func(r chi.Router) {
			r.Use(RequireIdentity)
			r.Get("/orders", customerHandler.ListOrders)
			r.Post("/reviews", customerHandler.SubmitReview)
			r.Get("/profile", customerHandler.GetProfile)
			r.Put("/profile", customerHandler.UpdateProfile)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(RequireAdmin)

			r.Get("/products", adminProducts.List)
			r.Post("/products", adminProducts.Create)
			r.Put("/products/{product_id}", adminProducts.Update)
			r.Delete("/products/{product_id}", adminProducts.Delete)

			r.Get("/orders", adminOrders.List)
			r.Put("/orders/{order_id}", adminOrders.UpdateStatus)

			r.Get("/customers", adminCustomers.List)

			r.Get("/reviews", adminReviews.List)
			r.Put("/reviews/{review_id}", adminReviews.UpdateStatus)

			r.Get("/dashboard", dashboardHandler.Get)
			r.Get("/dashboard/export", dashboardHandler.ExportCSV)
			r.Get("/forecast", dashboardHandler.Forecast)

			r.Get("/profile", adminProfile.Get)
			r.Put("/profile", adminProfile.Update)
			r.Put("/password", adminProfile.ChangePassword)
		})
	})

	return r
}
