// internal/adapters/in/http/router.go
package httpin

import (
	"net/http"

	"lmye/internal/adapters/in/http/handlers"
	"lmye/internal/adapters/in/http/middleware"
	"lmye/internal/adapters/out/mail"
	adminapp "lmye/internal/application/admin"
	cartapp "lmye/internal/application/cart"
	"lmye/internal/application/catalog"
)

// RouterDeps collects the services (and other dependencies) injected from
// the DI container.
type RouterDeps struct {
	Catalog *catalog.Service
	Cart    *cartapp.Service
	Admin   *adminapp.Service
	Mailer  *mail.OrderMailer

	// FirebaseAuth gates /api/admin/*; nil leaves the back office unmounted.
	FirebaseAuth *middleware.FirebaseAuthClient
	// IsAdmin is the allowlist check applied to the verified token email.
	IsAdmin func(email string) bool
}

// NewRouter sets up HTTP routing. Only surfaces whose dependencies exist are
// mounted, so a partially initialized container still serves what it can.
func NewRouter(deps RouterDeps) http.Handler {
	mux := http.NewServeMux()

	// Health check (always on)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// -------------------------
	// Public catalog (read-only)
	// -------------------------
	if deps.Catalog != nil {
		catalogHandler := handlers.NewCatalogHandler(deps.Catalog)
		mux.Handle("/api/products", catalogHandler)
		mux.Handle("/api/products/", catalogHandler)
		mux.Handle("/api/gallery", catalogHandler)
		mux.Handle("/api/new-arrivals", catalogHandler)
		mux.Handle("/api/categories", catalogHandler)
		mux.Handle("/api/categories/", catalogHandler)

		mux.Handle("/api/stream/catalog", handlers.NewCatalogStreamHandler(deps.Catalog))
	}

	// -------------------------
	// Session cart
	// -------------------------
	if deps.Cart != nil && deps.Catalog != nil {
		cartHandler := middleware.Session(handlers.NewCartHandler(deps.Cart, deps.Catalog))
		mux.Handle("/api/cart", cartHandler)
		mux.Handle("/api/cart/", cartHandler)
	}

	// Order inquiry mails the cart to the atelier; mounted even when the
	// mailer is absent so the client gets a clean 503 instead of a 404.
	if deps.Cart != nil {
		mux.Handle("/api/orders/inquiry", middleware.Session(handlers.NewOrderHandler(deps.Cart, deps.Mailer)))
	}

	// -------------------------
	// Back office (Google-auth gated)
	// -------------------------
	if deps.Admin != nil && deps.FirebaseAuth != nil {
		auth := &middleware.AuthMiddleware{
			FirebaseAuth: deps.FirebaseAuth,
			IsAdmin:      deps.IsAdmin,
		}

		productHandler := auth.Handler(handlers.NewAdminProductHandler(deps.Admin))
		mux.Handle("/api/admin/products", productHandler)
		mux.Handle("/api/admin/products/", productHandler)

		categoryHandler := auth.Handler(handlers.NewAdminCategoryHandler(deps.Admin))
		mux.Handle("/api/admin/categories", categoryHandler)
		mux.Handle("/api/admin/categories/", categoryHandler)

		mux.Handle("/api/admin/uploads", auth.Handler(handlers.NewUploadHandler(deps.Admin)))
		mux.Handle("/api/admin/session", auth.Handler(handlers.NewSessionHandler()))
	}

	return mux
}
