// internal/adapters/out/mail/order_mailer.go
package mail

import (
	"context"
	"fmt"
	"strings"

	cartdom "lmye/internal/domain/cart"
)

// OrderMailer sends cart order inquiries to the atelier inbox. Checkout is
// conversational (no payment flow): the customer sends their cart contents
// and the atelier replies by mail.
type OrderMailer struct {
	client EmailClient
	from   string
	to     string
}

func NewOrderMailer(client EmailClient, from, to string) *OrderMailer {
	return &OrderMailer{client: client, from: from, to: to}
}

// SendInquiry composes the order summary and mails it. customerEmail and
// message are free-text from the cart form.
func (m *OrderMailer) SendInquiry(ctx context.Context, customerName, customerEmail, message string, items []cartdom.Item) error {
	if m == nil || m.client == nil {
		return fmt.Errorf("order_mailer: mail client not configured")
	}
	if len(items) == 0 {
		return fmt.Errorf("order_mailer: cart is empty")
	}

	subject := fmt.Sprintf("Commande - %s", strings.TrimSpace(customerName))
	body := composeOrderBody(customerName, customerEmail, message, items)

	return m.client.Send(ctx, m.from, m.to, subject, body)
}

// composeOrderBody renders the same order summary the cart page shows:
// one line per item, then the lenient-parse total.
func composeOrderBody(customerName, customerEmail, message string, items []cartdom.Item) string {
	var b strings.Builder

	b.WriteString("Détails de la commande :\n")
	for _, it := range items {
		fmt.Fprintf(&b, "- %dx %s (%s)\n", it.Quantity, it.Product.Type, it.Product.Price)
	}
	fmt.Fprintf(&b, "\nTotal : %g€\n", cartdom.Total(items))

	if s := strings.TrimSpace(customerName); s != "" {
		fmt.Fprintf(&b, "\nClient : %s\n", s)
	}
	if s := strings.TrimSpace(customerEmail); s != "" {
		fmt.Fprintf(&b, "Email : %s\n", s)
	}
	if s := strings.TrimSpace(message); s != "" {
		fmt.Fprintf(&b, "\nMessage :\n%s\n", s)
	}

	return b.String()
}
