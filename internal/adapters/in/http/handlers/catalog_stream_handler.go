// internal/adapters/in/http/handlers/catalog_stream_handler.go
package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"lmye/internal/application/catalog"
)

// CatalogStreamHandler serves GET /api/stream/catalog as Server-Sent Events.
//
// Each connected client gets one bus subscription per collection, fed from
// the single backend snapshot listener. The subscriptions are canceled when
// the client disconnects — the upstream stream is unbounded and never
// completes on its own, so teardown must deregister.
type CatalogStreamHandler struct {
	Catalog *catalog.Service
}

func NewCatalogStreamHandler(c *catalog.Service) http.Handler {
	return &CatalogStreamHandler{Catalog: c}
}

func (h *CatalogStreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.Catalog == nil {
		writeErr(w, http.StatusServiceUnavailable, "catalog not configured")
		return
	}
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeErr(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	products, cancelProducts := h.Catalog.SubscribeProducts()
	defer cancelProducts()
	categories, cancelCategories := h.Catalog.SubscribeCategories()
	defer cancelCategories()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			log.Printf("[catalog_stream] client disconnected")
			return
		case list := <-products:
			if err := writeEvent(w, flusher, "products", list); err != nil {
				return
			}
		case list := <-categories:
			if err := writeEvent(w, flusher, "categories", list); err != nil {
				return
			}
		}
	}
}

func writeEvent(w http.ResponseWriter, flusher http.Flusher, event string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data); err != nil {
		return err
	}
	flusher.Flush()
	return nil
}
