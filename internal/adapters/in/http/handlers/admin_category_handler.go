// internal/adapters/in/http/handlers/admin_category_handler.go
package handlers

import (
	"errors"
	"net/http"

	adminapp "lmye/internal/application/admin"
	categorydom "lmye/internal/domain/category"
)

// AdminCategoryHandler serves the category back office (auth-gated upstream):
//
//	POST   /api/admin/categories          create
//	PUT    /api/admin/categories/{id}     partial update
//	DELETE /api/admin/categories/{id}
type AdminCategoryHandler struct {
	Admin *adminapp.Service
}

func NewAdminCategoryHandler(a *adminapp.Service) http.Handler {
	return &AdminCategoryHandler{Admin: a}
}

func (h *AdminCategoryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.Admin == nil {
		writeErr(w, http.StatusServiceUnavailable, "admin not configured")
		return
	}

	seg := pathTail(r.URL.Path, "/api/admin/categories")

	switch {
	case len(seg) == 0 && r.Method == http.MethodPost:
		var c categorydom.Category
		if err := decodeJSON(r, &c); err != nil {
			writeErr(w, http.StatusBadRequest, "invalid body")
			return
		}
		created, err := h.Admin.CreateCategory(r.Context(), c)
		if err != nil {
			if errors.Is(err, categorydom.ErrInvalidCategory) {
				writeErr(w, http.StatusBadRequest, err.Error())
				return
			}
			writeErr(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusCreated, created)

	case len(seg) == 1 && r.Method == http.MethodPut:
		var in categorydom.UpdateInput
		if err := decodeJSON(r, &in); err != nil {
			writeErr(w, http.StatusBadRequest, "invalid body")
			return
		}
		if in.Empty() {
			writeErr(w, http.StatusBadRequest, "empty update")
			return
		}
		h.finish(w, seg[0], h.Admin.UpdateCategory(r.Context(), seg[0], in))

	case len(seg) == 1 && r.Method == http.MethodDelete:
		h.finish(w, seg[0], h.Admin.DeleteCategory(r.Context(), seg[0]))

	default:
		notFound(w)
	}
}

func (h *AdminCategoryHandler) finish(w http.ResponseWriter, id string, err error) {
	if err != nil {
		if errors.Is(err, categorydom.ErrNotFound) {
			notFound(w)
			return
		}
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": id, "status": "ok"})
}
