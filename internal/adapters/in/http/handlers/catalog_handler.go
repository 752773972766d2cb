// internal/adapters/in/http/handlers/catalog_handler.go
package handlers

import (
	"net/http"

	"lmye/internal/application/catalog"
	categorydom "lmye/internal/domain/category"
	productdom "lmye/internal/domain/product"
)

// CatalogHandler serves the public read-only catalog endpoints, all derived
// from the catalog projection's latest snapshot:
//
//	GET /api/products
//	GET /api/products/{id}
//	GET /api/products/{id}/suggestions
//	GET /api/gallery?category=<name|all>
//	GET /api/new-arrivals
//	GET /api/categories
//	GET /api/categories/used
type CatalogHandler struct {
	Catalog *catalog.Service
}

func NewCatalogHandler(c *catalog.Service) http.Handler {
	return &CatalogHandler{Catalog: c}
}

func (h *CatalogHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.Catalog == nil {
		writeErr(w, http.StatusServiceUnavailable, "catalog not configured")
		return
	}
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	path := r.URL.Path

	switch {
	case path == "/api/products" || path == "/api/products/":
		list, _ := h.Catalog.Products()
		if list == nil {
			// never encode null for a list endpoint
			list = []productdom.Product{}
		}
		writeJSON(w, http.StatusOK, list)

	case path == "/api/gallery" || path == "/api/gallery/":
		cat := r.URL.Query().Get("category")
		writeJSON(w, http.StatusOK, h.Catalog.Gallery(cat))

	case path == "/api/new-arrivals" || path == "/api/new-arrivals/":
		writeJSON(w, http.StatusOK, h.Catalog.NewArrivals())

	case path == "/api/categories" || path == "/api/categories/":
		list, _ := h.Catalog.Categories()
		if list == nil {
			list = []categorydom.Category{}
		}
		writeJSON(w, http.StatusOK, list)

	case path == "/api/categories/used":
		writeJSON(w, http.StatusOK, h.Catalog.UsedCategories())

	case path == "/api/categories/contrast":
		// text color for a badge color, e.g. ?color=%23513a58
		writeJSON(w, http.StatusOK, map[string]string{
			"color": categorydom.ContrastColor(r.URL.Query().Get("color")),
		})

	default:
		h.serveProduct(w, r)
	}
}

// serveProduct handles /api/products/{id} and /api/products/{id}/suggestions.
func (h *CatalogHandler) serveProduct(w http.ResponseWriter, r *http.Request) {
	seg := pathTail(r.URL.Path, "/api/products")
	switch len(seg) {
	case 1:
		p := h.Catalog.FindByID(seg[0])
		if p == nil {
			notFound(w)
			return
		}
		writeJSON(w, http.StatusOK, p)
	case 2:
		if seg[1] != "suggestions" {
			notFound(w)
			return
		}
		writeJSON(w, http.StatusOK, h.Catalog.Suggestions(seg[0]))
	default:
		notFound(w)
	}
}
