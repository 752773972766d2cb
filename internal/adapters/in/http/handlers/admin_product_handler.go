// internal/adapters/in/http/handlers/admin_product_handler.go
package handlers

import (
	"errors"
	"log"
	"net/http"

	adminapp "lmye/internal/application/admin"
	productdom "lmye/internal/domain/product"
)

// AdminProductHandler serves the product back office (auth-gated upstream):
//
//	POST   /api/admin/products            create
//	POST   /api/admin/products/reset      delete all (one-shot listing)
//	POST   /api/admin/products/seed       insert the demo catalog
//	PUT    /api/admin/products/{id}       partial update
//	PATCH  /api/admin/products/{id}       visibility toggle {active}
//	DELETE /api/admin/products/{id}
type AdminProductHandler struct {
	Admin *adminapp.Service
}

func NewAdminProductHandler(a *adminapp.Service) http.Handler {
	return &AdminProductHandler{Admin: a}
}

func (h *AdminProductHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.Admin == nil {
		writeErr(w, http.StatusServiceUnavailable, "admin not configured")
		return
	}

	seg := pathTail(r.URL.Path, "/api/admin/products")

	switch {
	case len(seg) == 0 && r.Method == http.MethodPost:
		h.create(w, r)

	case len(seg) == 1 && seg[0] == "reset" && r.Method == http.MethodPost:
		count, err := h.Admin.DeleteAllProducts(r.Context())
		if err != nil {
			log.Printf("[admin_products] ❌ reset failed after %d deletes: %v", count, err)
			writeErr(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, map[string]int{"deleted": count})

	case len(seg) == 1 && seg[0] == "seed" && r.Method == http.MethodPost:
		if err := h.Admin.SeedProducts(r.Context()); err != nil {
			writeErr(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"status": "seeded"})

	case len(seg) == 1:
		h.serveOne(w, r, seg[0])

	default:
		notFound(w)
	}
}

func (h *AdminProductHandler) create(w http.ResponseWriter, r *http.Request) {
	var p productdom.Product
	if err := decodeJSON(r, &p); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid body")
		return
	}

	created, err := h.Admin.CreateProduct(r.Context(), p)
	if err != nil {
		if errors.Is(err, productdom.ErrInvalidProduct) {
			writeErr(w, http.StatusBadRequest, err.Error())
			return
		}
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *AdminProductHandler) serveOne(w http.ResponseWriter, r *http.Request, id string) {
	switch r.Method {
	case http.MethodPut:
		var in productdom.UpdateInput
		if err := decodeJSON(r, &in); err != nil {
			writeErr(w, http.StatusBadRequest, "invalid body")
			return
		}
		if in.Empty() {
			writeErr(w, http.StatusBadRequest, "empty update")
			return
		}
		h.finish(w, id, h.Admin.UpdateProduct(r.Context(), id, in))

	case http.MethodPatch:
		var body struct {
			Active *bool `json:"active"`
		}
		if err := decodeJSON(r, &body); err != nil || body.Active == nil {
			writeErr(w, http.StatusBadRequest, "invalid body")
			return
		}
		h.finish(w, id, h.Admin.SetProductActive(r.Context(), id, *body.Active))

	case http.MethodDelete:
		h.finish(w, id, h.Admin.DeleteProduct(r.Context(), id))

	default:
		methodNotAllowed(w)
	}
}

func (h *AdminProductHandler) finish(w http.ResponseWriter, id string, err error) {
	if err != nil {
		if errors.Is(err, productdom.ErrNotFound) {
			notFound(w)
			return
		}
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": id, "status": "ok"})
}
