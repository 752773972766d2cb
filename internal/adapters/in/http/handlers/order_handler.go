// internal/adapters/in/http/handlers/order_handler.go
package handlers

import (
	"log"
	"net/http"

	"lmye/internal/adapters/in/http/middleware"
	"lmye/internal/adapters/out/mail"
	cartapp "lmye/internal/application/cart"
)

// OrderHandler serves POST /api/orders/inquiry: it mails the session's cart
// contents to the atelier. There is no payment flow; orders are settled by
// conversation.
type OrderHandler struct {
	Cart   *cartapp.Service
	Mailer *mail.OrderMailer
}

func NewOrderHandler(cart *cartapp.Service, mailer *mail.OrderMailer) http.Handler {
	return &OrderHandler{Cart: cart, Mailer: mailer}
}

func (h *OrderHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	if h.Cart == nil {
		writeErr(w, http.StatusServiceUnavailable, "cart not configured")
		return
	}
	if h.Mailer == nil {
		writeErr(w, http.StatusServiceUnavailable, "mail not configured")
		return
	}

	sid, ok := middleware.SessionID(r.Context())
	if !ok {
		writeErr(w, http.StatusInternalServerError, "session missing")
		return
	}

	var body struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Message string `json:"message"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid body")
		return
	}

	items := h.Cart.Items(sid)
	if len(items) == 0 {
		writeErr(w, http.StatusBadRequest, "cart is empty")
		return
	}

	if err := h.Mailer.SendInquiry(r.Context(), body.Name, body.Email, body.Message, items); err != nil {
		log.Printf("[order_handler] ❌ inquiry failed: %v", err)
		writeErr(w, http.StatusBadGateway, err.Error())
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{"status": "sent"})
}
