package domain

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// MenuItem is reference data loaded once at seed time; the lifecycle
// engine never mutates it.
type MenuItem struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Price       float64  `json:"price"`
	Description string   `json:"description,omitempty"`
	Ingredients []string `json:"ingredients,omitempty"`
	PrepMinutes int      `json:"prep_minutes"`
	Available   bool     `json:"available"`
	Popular     bool     `json:"popular"`
}

type Table struct {
	ID       string `json:"id"`
	Number   int    `json:"number"`
	Capacity int    `json:"capacity"`
	Section  string `json:"section"`
	Status   string `json:"status"` // available | occupied | reserved
}

// Station is a kitchen preparation area order items get routed to.
type Station struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// OrderItem carries a snapshot of the menu item taken at order-creation
// time. Items are addressed by their position within the order, not by id.
type OrderItem struct {
	MenuItemID  string     `json:"menu_item_id"`
	Name        string     `json:"name"`
	Price       float64    `json:"price"`
	Quantity    int        `json:"quantity"`
	Station     string     `json:"station"`
	Status      string     `json:"status"` // pending | preparing | ready | served
	Notes       string     `json:"notes,omitempty"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

type Order struct {
	ID               string      `json:"id"`
	Number           string      `json:"number"`
	TableID          string      `json:"table_id"`
	TableNumber      int         `json:"table_number"`
	CustomerName     string      `json:"customer_name"`
	Status           string      `json:"status"` // pending | preparing | ready | completed | cancelled
	Priority         int         `json:"priority"`
	TotalAmount      float64     `json:"total_amount"`
	EstimatedMinutes int         `json:"estimated_minutes"`
	Waiter           string      `json:"waiter"`
	Items            []OrderItem `json:"items"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

const (
	OrderPending   = "pending"
	OrderPreparing = "preparing"
	OrderReady     = "ready"
	OrderCompleted = "completed"
	OrderCancelled = "cancelled"

	ItemPending   = "pending"
	ItemPreparing = "preparing"
	ItemReady     = "ready"
	ItemServed    = "served"

	TableAvailable = "available"
	TableOccupied  = "occupied"
	TableReserved  = "reserved"
)

// DefaultStation is where items land when their category has no mapping
// (including items ordered against an unknown menu id).
const DefaultStation = "grill"

var categoryStations = map[string]string{
	"starters":  "salad",
	"salads":    "salad",
	"mains":     "grill",
	"grill":     "grill",
	"desserts":  "dessert",
	"drinks":    "drinks",
	"beverages": "drinks",
}

// StationForCategory resolves a menu category to its kitchen station.
func StationForCategory(category string) string {
	if s, ok := categoryStations[category]; ok {
		return s
	}
	return DefaultStation
}

// Terminal reports whether an order status admits no further transitions
// through the normal flow.
func Terminal(status string) bool {
	return status == OrderCompleted || status == OrderCancelled
}

// NewOrderID builds an order id from the creation instant plus a random
// suffix, so ids stay unique even when two orders land in the same
// millisecond.
func NewOrderID(now time.Time) string {
	var b [4]byte
	_, _ = rand.Read(b[:])
	return fmt.Sprintf("%d-%s", now.UnixMilli(), hex.EncodeToString(b[:]))
}

// OrderNumber derives the human-readable number from the current size of
// the order collection. Callers must hold the engine lock; the counter is
// not a reserved sequence.
func OrderNumber(currentCount int) string {
	return fmt.Sprintf("ORD-%04d", currentCount+1001)
}

// PriorityFor buckets an order by its total.
func PriorityFor(total float64) int {
	switch {
	case total >= 100:
		return 10
	case total >= 50:
		return 5
	default:
		return 1
	}
}
