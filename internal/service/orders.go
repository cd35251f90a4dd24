package service

import (
	"context"
	"fmt"

	"front-of-house/internal/domain"
	"front-of-house/internal/pubsub"
)

// CreateOrder builds an order from the request, snapshotting menu data per
// item. An unknown menu item id is not rejected: the caller-supplied name
// and price are kept and the item falls to the default station. The owning
// table flips to occupied, and item tickets go out to the stations.
func (r *Restaurant) CreateOrder(ctx context.Context, req domain.CreateOrderRequest) (domain.Order, error) {
	if len(req.Items) == 0 {
		return domain.Order{}, ErrNoItems
	}
	for _, it := range req.Items {
		if it.Quantity <= 0 {
			return domain.Order{}, fmt.Errorf("%w: %s", ErrInvalidQuantity, it.MenuItemID)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	menu, err := r.store.LoadMenuItems(ctx)
	if err != nil {
		return domain.Order{}, err
	}
	orders, err := r.store.LoadOrders(ctx)
	if err != nil {
		return domain.Order{}, err
	}

	now := nowUTC()
	items := make([]domain.OrderItem, 0, len(req.Items))
	total := 0.0
	for _, reqItem := range req.Items {
		item := domain.OrderItem{
			MenuItemID: reqItem.MenuItemID,
			Name:       reqItem.Name,
			Price:      reqItem.Price,
			Quantity:   reqItem.Quantity,
			Station:    domain.DefaultStation,
			Status:     domain.ItemPending,
			Notes:      reqItem.SpecialInstructions,
		}
		if mi, ok := findMenuItem(menu, reqItem.MenuItemID); ok {
			item.Name = mi.Name
			item.Price = mi.Price
			item.Station = domain.StationForCategory(mi.Category)
		}
		total += item.Price * float64(item.Quantity)
		items = append(items, item)
	}

	customer := req.CustomerName
	if customer == "" {
		customer = defaultCustomer
	}

	order := domain.Order{
		ID:               domain.NewOrderID(now),
		Number:           domain.OrderNumber(len(orders)),
		TableID:          req.TableID,
		TableNumber:      req.TableNumber,
		CustomerName:     customer,
		Status:           domain.OrderPending,
		Priority:         domain.PriorityFor(total),
		TotalAmount:      total,
		EstimatedMinutes: r.estimate(items, menu),
		Waiter:           defaultWaiter,
		Items:            items,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	orders = append(orders, order)
	if err := r.store.SaveOrders(ctx, orders); err != nil {
		return domain.Order{}, err
	}
	r.bus.Publish(pubsub.TopicOrdersChanged, orders)

	if err := r.setTableStatus(ctx, order.TableID, domain.TableOccupied); err != nil {
		// A missing table degrades to the order existing without an
		// occupancy flip, same as every other not-found at this layer.
		r.log.Debug("table_projection_skipped", map[string]any{"table_id": order.TableID, "order": order.Number})
	}

	if r.tickets != nil {
		if err := r.tickets.PublishTickets(ctx, order); err != nil {
			r.log.Error("ticket_publish_failed", err, map[string]any{"order": order.Number})
		}
	}

	r.log.Info("order_created", map[string]any{
		"order":   order.Number,
		"table":   order.TableNumber,
		"items":   len(order.Items),
		"total":   order.TotalAmount,
		"eta_min": order.EstimatedMinutes,
	})
	return order, nil
}

// UpdateOrderStatus sets the order's status without validating the
// transition; any status may follow any other. Completing an order forces
// every item to served and frees the table; cancelling frees the table but
// leaves item states as they were.
func (r *Restaurant) UpdateOrderStatus(ctx context.Context, id, status string) (domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	orders, err := r.store.LoadOrders(ctx)
	if err != nil {
		return domain.Order{}, err
	}
	idx := findOrder(orders, id)
	if idx < 0 {
		return domain.Order{}, ErrOrderNotFound
	}

	o := &orders[idx]
	old := o.Status
	o.Status = status
	o.UpdatedAt = nowUTC()

	if status == domain.OrderCompleted {
		for i := range o.Items {
			o.Items[i].Status = domain.ItemServed
		}
	}

	if err := r.store.SaveOrders(ctx, orders); err != nil {
		return domain.Order{}, err
	}
	r.bus.Publish(pubsub.TopicOrdersChanged, orders)

	if domain.Terminal(status) {
		if err := r.setTableStatus(ctx, o.TableID, domain.TableAvailable); err != nil {
			r.log.Debug("table_projection_skipped", map[string]any{"table_id": o.TableID, "order": o.Number})
		}
	}

	r.notifyStatusChange(ctx, *o, old, status)
	r.log.Info("order_status_changed", map[string]any{"order": o.Number, "from": old, "to": status})
	return *o, nil
}

// UpdateItemStatus sets one item's status by its position in the order.
// Entering preparing stamps the start time, entering ready the completion
// time. Once every item is ready or served the order itself is promoted to
// ready; the promotion never reverses.
func (r *Restaurant) UpdateItemStatus(ctx context.Context, id string, itemIndex int, status string) (domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	orders, err := r.store.LoadOrders(ctx)
	if err != nil {
		return domain.Order{}, err
	}
	idx := findOrder(orders, id)
	if idx < 0 {
		return domain.Order{}, ErrOrderNotFound
	}
	o := &orders[idx]
	if itemIndex < 0 || itemIndex >= len(o.Items) {
		return domain.Order{}, ErrItemIndexOutOfRange
	}

	now := nowUTC()
	item := &o.Items[itemIndex]
	item.Status = status
	switch status {
	case domain.ItemPreparing:
		if item.StartedAt == nil {
			item.StartedAt = &now
		}
	case domain.ItemReady:
		if item.CompletedAt == nil {
			item.CompletedAt = &now
		}
	}

	oldOrderStatus := o.Status
	if allItemsReady(o.Items) && o.Status != domain.OrderReady {
		o.Status = domain.OrderReady
	}
	o.UpdatedAt = now

	if err := r.store.SaveOrders(ctx, orders); err != nil {
		return domain.Order{}, err
	}
	r.bus.Publish(pubsub.TopicOrdersChanged, orders)

	if o.Status != oldOrderStatus {
		r.notifyStatusChange(ctx, *o, oldOrderStatus, o.Status)
	}
	r.log.Debug("item_status_changed", map[string]any{"order": o.Number, "item": itemIndex, "to": status})
	return *o, nil
}

func allItemsReady(items []domain.OrderItem) bool {
	for _, it := range items {
		if it.Status != domain.ItemReady && it.Status != domain.ItemServed {
			return false
		}
	}
	return true
}

// setTableStatus is the table status projector: a direct field mutation by
// id, persisted and announced on the tables topic. Only order creation and
// terminal order transitions call it.
func (r *Restaurant) setTableStatus(ctx context.Context, tableID, status string) error {
	tables, err := r.store.LoadTables(ctx)
	if err != nil {
		return err
	}
	found := false
	for i := range tables {
		if tables[i].ID == tableID {
			tables[i].Status = status
			found = true
			break
		}
	}
	if !found {
		return ErrTableNotFound
	}
	if err := r.store.SaveTables(ctx, tables); err != nil {
		return err
	}
	r.bus.Publish(pubsub.TopicTablesChanged, tables)
	return nil
}

func (r *Restaurant) notifyStatusChange(ctx context.Context, o domain.Order, from, to string) {
	if r.status == nil {
		return
	}
	msg := domain.StatusChangeMessage{
		OrderID:     o.ID,
		OrderNumber: o.Number,
		OldStatus:   from,
		NewStatus:   to,
		ChangedBy:   defaultWaiter,
		Timestamp:   nowUTC(),
	}
	if err := r.status.PublishStatusChange(ctx, msg); err != nil {
		r.log.Error("status_publish_failed", err, map[string]any{"order": o.Number})
	}
}
