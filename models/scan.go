// ABOUTME: This file defines ticket scan models used by the steward scanner flow
// ABOUTME: Scan results distinguish ticket rejection from session expiry

package models

// ScanOutcome classifies a single scan attempt.
type ScanOutcome string

const (
	ScanSuccess     ScanOutcome = "success"
	ScanAlreadyUsed ScanOutcome = "already_used"
	ScanInvalid     ScanOutcome = "invalid"
	ScanCancelled   ScanOutcome = "cancelled"
	ScanExpired     ScanOutcome = "expired"
	ScanWrongEvent  ScanOutcome = "wrong_event"
	ScanError       ScanOutcome = "error"
)

// ScanRequest submits a scanned QR payload for validation. EventID is
// optional; the backend resolves the event from the QR payload and uses
// EventID only as a cross-check.
type ScanRequest struct {
	QRData  string `json:"qr_data"`
	EventID string `json:"event_id,omitempty"`
}

// ScanResult is the backend's verdict on one scanned ticket.
type ScanResult struct {
	Valid      bool        `json:"valid"`
	Result     ScanOutcome `json:"result"`
	Message    string      `json:"message"`
	Holder     string      `json:"holder,omitempty"`
	TicketCode string      `json:"ticket_code,omitempty"`
	PackName   string      `json:"pack_name,omitempty"`
	ScannedAt  string      `json:"scanned_at,omitempty"`
	EventID    string      `json:"event_id,omitempty"`
	EventName  string      `json:"event_name,omitempty"`
}

// ScanLog is one historical scan entry.
type ScanLog struct {
	ID          string      `json:"id"`
	TicketCode  string      `json:"ticket_code,omitempty"`
	Holder      string      `json:"holder,omitempty"`
	EventID     string      `json:"event_id"`
	EventName   string      `json:"event_name,omitempty"`
	Result      ScanOutcome `json:"result"`
	ScannedAt   string      `json:"scanned_at"`
	StewardName string      `json:"steward_name,omitempty"`
}

// ScanHistory is the envelope returned by the scan history endpoint.
type ScanHistory struct {
	Scans  []ScanLog `json:"scans"`
	Total  int       `json:"total"`
	Limit  int       `json:"limit"`
	Offset int       `json:"offset"`
}

// ScanStats aggregates scan progress for one event.
type ScanStats struct {
	EventID          string         `json:"event_id"`
	EventName        string         `json:"event_name"`
	TotalTickets     int            `json:"total_tickets"`
	ScannedTickets   int            `json:"scanned_tickets"`
	ScanRate         float64        `json:"scan_rate"`
	ResultsByType    map[string]int `json:"results_by_type,omitempty"`
	ScansByHour      map[string]int `json:"scans_by_hour,omitempty"`
	SuccessCount     int            `json:"success_count"`
	AlreadyUsedCount int            `json:"already_used_count"`
	InvalidCount     int            `json:"invalid_count"`
}
