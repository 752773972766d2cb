// internal/adapters/in/http/handlers/upload_handler.go
package handlers

import (
	"io"
	"net/http"

	adminapp "lmye/internal/application/admin"
)

// maxUploadBytes caps a single product image upload (multipart body).
const maxUploadBytes = 16 << 20 // 16 MiB

// UploadHandler serves POST /api/admin/uploads: a multipart form with a
// "file" field. The object lands under products/<upload-ms>_<filename> and
// the response carries its public URL.
type UploadHandler struct {
	Admin *adminapp.Service
}

func NewUploadHandler(a *adminapp.Service) http.Handler {
	return &UploadHandler{Admin: a}
}

func (h *UploadHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.Admin == nil {
		writeErr(w, http.StatusServiceUnavailable, "admin not configured")
		return
	}
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeErr(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "read upload failed")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	url, err := h.Admin.UploadImage(r.Context(), header.Filename, contentType, data)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"url": url})
}
