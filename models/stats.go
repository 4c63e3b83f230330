// ABOUTME: This file defines admin dashboard statistics models
// ABOUTME: Global stats cover the whole platform, EventStats one event

package models

// TopEventStats is one row of the top-events ranking inside GlobalStats.
type TopEventStats struct {
	EventID     string  `json:"event_id"`
	EventTitle  string  `json:"event_title"`
	EventDate   string  `json:"event_date"`
	Revenue     float64 `json:"revenue"`
	TicketsSold int     `json:"tickets_sold"`
	OrdersCount int     `json:"orders_count"`
}

// GlobalStats is the platform-wide dashboard summary.
type GlobalStats struct {
	TotalRevenue    float64         `json:"total_revenue"`
	TotalOrders     int             `json:"total_orders"`
	CompletedOrders int             `json:"completed_orders"`
	PendingOrders   int             `json:"pending_orders"`
	FailedOrders    int             `json:"failed_orders"`
	RefundedOrders  int             `json:"refunded_orders"`
	TicketsSold     int             `json:"tickets_sold"`
	TicketsScanned  int             `json:"tickets_scanned"`
	ScanRate        float64         `json:"scan_rate"`
	TopEvents       []TopEventStats `json:"top_events,omitempty"`
}

// PackSales is per-pack sales aggregation inside EventStats.
type PackSales struct {
	PackName string  `json:"pack_name"`
	Orders   int     `json:"orders"`
	Tickets  int     `json:"tickets"`
	Revenue  float64 `json:"revenue"`
}

// DaySales is per-day sales aggregation inside EventStats.
type DaySales struct {
	Date    string  `json:"date"`
	Orders  int     `json:"orders"`
	Revenue float64 `json:"revenue"`
}

// EventStats is the per-event dashboard breakdown.
type EventStats struct {
	EventID        string         `json:"event_id"`
	EventTitle     string         `json:"event_title"`
	TotalOrders    int            `json:"total_orders"`
	TotalRevenue   float64        `json:"total_revenue"`
	TicketsSold    int            `json:"tickets_sold"`
	TicketsScanned int            `json:"tickets_scanned"`
	ScanRate       float64        `json:"scan_rate"`
	OrdersByStatus map[string]int `json:"orders_by_status,omitempty"`
	SalesByPack    []PackSales    `json:"sales_by_pack,omitempty"`
	SalesByDay     []DaySales     `json:"sales_by_day,omitempty"`
}
