// ABOUTME: This file defines checkout and order models consumed by the payment flow
// ABOUTME: Order status drives the polling terminal-state decision after checkout

package models

// OrderStatus is the payment lifecycle state of an order.
type OrderStatus string

const (
	OrderPending     OrderStatus = "pending"
	OrderPendingCash OrderStatus = "pending_cash"
	OrderCompleted   OrderStatus = "completed"
	OrderFailed      OrderStatus = "failed"
	OrderRefunded    OrderStatus = "refunded"
	OrderCancelled   OrderStatus = "cancelled"
)

// IsTerminal reports whether polling may stop: the payment either settled or
// will never settle.
func (s OrderStatus) IsTerminal() bool {
	switch s {
	case OrderCompleted, OrderFailed, OrderCancelled:
		return true
	}
	return false
}

// PaymentMethod distinguishes online payment from pay-at-venue cash orders.
type PaymentMethod string

const (
	PaymentOnline PaymentMethod = "online"
	PaymentCash   PaymentMethod = "cash"
)

// CheckoutRequest starts a single-pack checkout session.
type CheckoutRequest struct {
	EventID       string `json:"event_id"`
	PackID        string `json:"pack_id"`
	Quantity      int    `json:"quantity"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone,omitempty"`
}

// CheckoutResponse is the acknowledgement for a created checkout session.
type CheckoutResponse struct {
	OrderNumber   string `json:"order_number"`
	PayURL        string `json:"pay_url"`
	PayPalOrderID string `json:"paypal_order_id,omitempty"`
}

// CartItem is one pack selection inside a multi-pack cart checkout.
type CartItem struct {
	EventID  string `json:"event_id"`
	PackID   string `json:"pack_id"`
	Quantity int    `json:"quantity"`
}

// CartCheckoutRequest starts a multi-pack checkout session.
type CartCheckoutRequest struct {
	Items         []CartItem    `json:"items"`
	CustomerName  string        `json:"customer_name"`
	CustomerEmail string        `json:"customer_email"`
	CustomerPhone string        `json:"customer_phone,omitempty"`
	PaymentMethod PaymentMethod `json:"payment_method,omitempty"`
}

// CartCheckoutResponse is the acknowledgement for a created cart checkout.
// IsPendingCash marks cash orders that settle at the venue instead of online.
type CartCheckoutResponse struct {
	OrderNumber   string        `json:"order_number"`
	PayURL        string        `json:"pay_url"`
	Amount        float64       `json:"amount"`
	TotalItems    int           `json:"total_items"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	IsPendingCash bool          `json:"is_pending_cash"`
	PayPalOrderID string        `json:"paypal_order_id,omitempty"`
}

// PackItemSummary is one pack line of a multi-pack order.
type PackItemSummary struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// Ticket is a single admission ticket attached to an order.
type Ticket struct {
	ID         string `json:"id"`
	TicketCode string `json:"ticket_code"`
	HolderName string `json:"holder_name"`
	Status     string `json:"status"`
	ScannedAt  string `json:"scanned_at,omitempty"`
	QRData     string `json:"qr_data,omitempty"`
}

// Order is a customer order as returned by the order lookup endpoint.
type Order struct {
	ID            string            `json:"id"`
	OrderNumber   string            `json:"order_number"`
	CustomerName  string            `json:"customer_name"`
	CustomerEmail string            `json:"customer_email"`
	CustomerPhone string            `json:"customer_phone,omitempty"`
	EventID       string            `json:"event_id"`
	EventSlug     string            `json:"event_slug,omitempty"`
	PackDisplay   string            `json:"pack_display,omitempty"`
	PackItems     []PackItemSummary `json:"pack_items,omitempty"`
	TotalQuantity int               `json:"total_quantity,omitempty"`
	Amount        int64             `json:"amount"` // cents
	Status        OrderStatus       `json:"status"`
	PaymentMethod PaymentMethod     `json:"payment_method,omitempty"`
	PayPalOrderID string            `json:"paypal_order_id,omitempty"`
	CreatedAt     string            `json:"created_at"`
	PaidAt        string            `json:"paid_at,omitempty"`
	Event         *Event            `json:"event,omitempty"`
	Tickets       []Ticket          `json:"tickets,omitempty"`
}

// Ack is the generic acknowledgement shape returned by mutation endpoints.
type Ack struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
