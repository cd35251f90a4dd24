package service

import "front-of-house/internal/domain"

// EstimateFunc computes the estimated completion time in minutes for a new
// order. It is a creation-time derivation only; nothing recomputes it as
// the order progresses.
type EstimateFunc func(items []domain.OrderItem, menu []domain.MenuItem) int

// FlatEstimate is the default: a flat linear model over the number of
// order lines, ignoring per-item prep times.
func FlatEstimate(items []domain.OrderItem, _ []domain.MenuItem) int {
	return 5 + 8*len(items)
}

// PrepTimeEstimate weighs menu prep minutes instead. Stations cook in
// parallel, items within one station serially, so the estimate is the
// busiest station's load plus a fixed handling overhead.
func PrepTimeEstimate(items []domain.OrderItem, menu []domain.MenuItem) int {
	const overhead = 5
	const fallbackPrep = 8

	load := make(map[string]int)
	for _, it := range items {
		prep := fallbackPrep
		if mi, ok := findMenuItem(menu, it.MenuItemID); ok && mi.PrepMinutes > 0 {
			prep = mi.PrepMinutes
		}
		load[it.Station] += prep * it.Quantity
	}
	busiest := 0
	for _, minutes := range load {
		if minutes > busiest {
			busiest = minutes
		}
	}
	return overhead + busiest
}
