package domain

import "time"

// TicketItem references an order item by its position within the order,
// which is how the engine addresses items.
type TicketItem struct {
	Index    int    `json:"index"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Notes    string `json:"notes,omitempty"`
}

// TicketMessage is published per station when an order is created, so a
// station worker only ever sees the slice of the order it has to cook.
type TicketMessage struct {
	OrderID     string       `json:"order_id"`
	OrderNumber string       `json:"order_number"`
	TableNumber int          `json:"table_number"`
	Station     string       `json:"station"`
	Priority    int          `json:"priority"`
	Items       []TicketItem `json:"items"`
	CreatedAt   time.Time    `json:"created_at"`
}

// StatusChangeMessage goes to the notifications fanout on every order
// status transition.
type StatusChangeMessage struct {
	OrderID     string    `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	OldStatus   string    `json:"old_status"`
	NewStatus   string    `json:"new_status"`
	ChangedBy   string    `json:"changed_by"`
	Timestamp   time.Time `json:"timestamp"`
}
