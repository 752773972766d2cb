// internal/adapters/in/http/handlers/cart_handler.go
package handlers

import (
	"log"
	"net/http"

	"lmye/internal/adapters/in/http/middleware"
	cartapp "lmye/internal/application/cart"
	"lmye/internal/application/catalog"
	cartdom "lmye/internal/domain/cart"
)

// CartHandler serves the session cart:
//
//	GET    /api/cart                   items + total + count
//	DELETE /api/cart                   clear
//	GET    /api/cart/count             running item count
//	GET    /api/cart/count/stream      SSE count stream
//	POST   /api/cart/items             add {productId, quantity}
//	GET    /api/cart/items/{id}        stored quantity (1 when absent)
//	PUT    /api/cart/items/{id}        set {quantity}
//	PATCH  /api/cart/items/{id}        update {delta}
//	DELETE /api/cart/items/{id}        remove
//
// Add and set resolve the denormalized product copy from the catalog
// projection; an unknown product id is a 404.
type CartHandler struct {
	Cart    *cartapp.Service
	Catalog *catalog.Service
}

func NewCartHandler(cart *cartapp.Service, cat *catalog.Service) http.Handler {
	return &CartHandler{Cart: cart, Catalog: cat}
}

type cartView struct {
	Items []cartdom.Item `json:"items"`
	Total float64        `json:"total"`
	Count int            `json:"count"`
}

func (h *CartHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.Cart == nil || h.Catalog == nil {
		writeErr(w, http.StatusServiceUnavailable, "cart handler is not configured")
		return
	}

	sid, ok := middleware.SessionID(r.Context())
	if !ok {
		writeErr(w, http.StatusInternalServerError, "session missing")
		return
	}

	seg := pathTail(r.URL.Path, "/api/cart")

	switch {
	case len(seg) == 0 && r.Method == http.MethodGet:
		h.writeCart(w, sid)

	case len(seg) == 0 && r.Method == http.MethodDelete:
		if err := h.Cart.Clear(sid); err != nil {
			h.fail(w, "clear", err)
			return
		}
		h.writeCart(w, sid)

	case len(seg) == 1 && seg[0] == "count" && r.Method == http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]int{"count": h.Cart.Count(sid)})

	case len(seg) == 2 && seg[0] == "count" && seg[1] == "stream" && r.Method == http.MethodGet:
		h.streamCount(w, r, sid)

	case len(seg) == 1 && seg[0] == "items" && r.Method == http.MethodPost:
		h.addItem(w, r, sid)

	case len(seg) == 2 && seg[0] == "items":
		h.serveItem(w, r, sid, seg[1])

	default:
		notFound(w)
	}
}

func (h *CartHandler) serveItem(w http.ResponseWriter, r *http.Request, sid, productID string) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]any{
			"productId": productID,
			"quantity":  h.Cart.ItemQuantity(sid, productID),
		})

	case http.MethodPut:
		var body struct {
			Quantity int `json:"quantity"`
		}
		if err := decodeJSON(r, &body); err != nil {
			writeErr(w, http.StatusBadRequest, "invalid body")
			return
		}
		p := h.Catalog.FindByID(productID)
		if p == nil {
			notFound(w)
			return
		}
		// The quantity is stored verbatim, zero or negative included (the
		// product page guards qty >= 1). Such a line survives only until the
		// session is reloaded; the snapshot restore drops non-positive lines.
		if err := h.Cart.SetQuantity(sid, *p, body.Quantity); err != nil {
			h.fail(w, "set quantity", err)
			return
		}
		h.writeCart(w, sid)

	case http.MethodPatch:
		var body struct {
			Delta int `json:"delta"`
		}
		if err := decodeJSON(r, &body); err != nil {
			writeErr(w, http.StatusBadRequest, "invalid body")
			return
		}
		if err := h.Cart.UpdateQuantity(sid, productID, body.Delta); err != nil {
			h.fail(w, "update quantity", err)
			return
		}
		h.writeCart(w, sid)

	case http.MethodDelete:
		if err := h.Cart.RemoveItem(sid, productID); err != nil {
			h.fail(w, "remove item", err)
			return
		}
		h.writeCart(w, sid)

	default:
		methodNotAllowed(w)
	}
}

func (h *CartHandler) addItem(w http.ResponseWriter, r *http.Request, sid string) {
	var body struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid body")
		return
	}
	if body.Quantity <= 0 {
		body.Quantity = 1
	}

	p := h.Catalog.FindByID(body.ProductID)
	if p == nil {
		notFound(w)
		return
	}

	if err := h.Cart.Add(sid, *p, body.Quantity); err != nil {
		h.fail(w, "add item", err)
		return
	}
	h.writeCart(w, sid)
}

// streamCount pushes the running item count over SSE until the client
// disconnects; teardown deregisters the bus subscription.
func (h *CartHandler) streamCount(w http.ResponseWriter, r *http.Request, sid string) {
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

	counts, cancel := h.Cart.SubscribeCount(sid)
	defer cancel()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case count := <-counts:
			if err := writeEvent(w, flusher, "count", map[string]int{"count": count}); err != nil {
				return
			}
		}
	}
}

func (h *CartHandler) writeCart(w http.ResponseWriter, sid string) {
	writeJSON(w, http.StatusOK, cartView{
		Items: h.Cart.Items(sid),
		Total: h.Cart.Total(sid),
		Count: h.Cart.Count(sid),
	})
}

func (h *CartHandler) fail(w http.ResponseWriter, op string, err error) {
	log.Printf("[cart_handler] ❌ %s failed: %v", op, err)
	writeErr(w, http.StatusInternalServerError, err.Error())
}
