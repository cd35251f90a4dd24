// Package service owns the order/table lifecycle: order creation and
// status transitions, the table occupancy projection they drive, and the
// read-side queries the UI renders from. Every operation is a single
// read-modify-write of the backing collections under one mutex, so the
// engine is single-writer; run exactly one server process per store.
// Bus handlers fire while that mutex is held and must not call back into
// the engine.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"front-of-house/internal/domain"
	"front-of-house/internal/logger"
	"front-of-house/internal/pubsub"
	"front-of-house/internal/seed"
	"front-of-house/internal/store"
)

var (
	ErrNoItems             = errors.New("order must contain at least one item")
	ErrInvalidQuantity     = errors.New("item quantity must be positive")
	ErrOrderNotFound       = errors.New("order not found")
	ErrItemIndexOutOfRange = errors.New("item index out of range")
	ErrTableNotFound       = errors.New("table not found")
)

const defaultCustomer = "Guest"
const defaultWaiter = "waiter-1"

// TicketPublisher routes a freshly created order's items to the kitchen
// stations. A nil publisher means local-only operation.
type TicketPublisher interface {
	PublishTickets(ctx context.Context, order domain.Order) error
}

// StatusPublisher announces order status transitions to external
// subscribers.
type StatusPublisher interface {
	PublishStatusChange(ctx context.Context, msg domain.StatusChangeMessage) error
}

type Restaurant struct {
	mu       sync.Mutex
	store    store.Store
	bus      *pubsub.Bus
	log      *logger.Logger
	defaults seed.Data
	estimate EstimateFunc
	tickets  TicketPublisher
	status   StatusPublisher
}

type Option func(*Restaurant)

func WithTicketPublisher(p TicketPublisher) Option {
	return func(r *Restaurant) { r.tickets = p }
}

func WithStatusPublisher(p StatusPublisher) Option {
	return func(r *Restaurant) { r.status = p }
}

func WithEstimate(fn EstimateFunc) Option {
	return func(r *Restaurant) { r.estimate = fn }
}

func New(st store.Store, bus *pubsub.Bus, lg *logger.Logger, opts ...Option) *Restaurant {
	r := &Restaurant{
		store:    st,
		bus:      bus,
		log:      lg,
		defaults: seed.Defaults(),
		estimate: FlatEstimate,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Init seeds any collection whose key is still absent from the store.
func (r *Restaurant) Init(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.store.Seed(ctx, r.defaults); err != nil {
		return fmt.Errorf("seed collections: %w", err)
	}
	return nil
}

func (r *Restaurant) MenuItems(ctx context.Context) ([]domain.MenuItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.store.LoadMenuItems(ctx)
}

func (r *Restaurant) Tables(ctx context.Context) ([]domain.Table, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.store.LoadTables(ctx)
}

func (r *Restaurant) Stations(ctx context.Context) ([]domain.Station, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.store.LoadStations(ctx)
}

func (r *Restaurant) Orders(ctx context.Context) ([]domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.store.LoadOrders(ctx)
}

func (r *Restaurant) OrderByID(ctx context.Context, id string) (domain.Order, error) {
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
	return orders[idx], nil
}

// ActiveOrders leaves out orders that reached a terminal status.
func (r *Restaurant) ActiveOrders(ctx context.Context) ([]domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	orders, err := r.store.LoadOrders(ctx)
	if err != nil {
		return nil, err
	}
	active := make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		if !domain.Terminal(o.Status) {
			active = append(active, o)
		}
	}
	return active, nil
}

// TableOrders lists the non-terminal orders open against one table.
func (r *Restaurant) TableOrders(ctx context.Context, tableID string) ([]domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	orders, err := r.store.LoadOrders(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Order, 0)
	for _, o := range orders {
		if o.TableID == tableID && !domain.Terminal(o.Status) {
			out = append(out, o)
		}
	}
	return out, nil
}

// OrdersByStation lists orders that still have unserved items routed to
// the station.
func (r *Restaurant) OrdersByStation(ctx context.Context, stationID string) ([]domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	orders, err := r.store.LoadOrders(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Order, 0)
	for _, o := range orders {
		for _, item := range o.Items {
			if item.Station == stationID && item.Status != domain.ItemServed {
				out = append(out, o)
				break
			}
		}
	}
	return out, nil
}

// ClearAllData restores every collection to its seed defaults and
// republishes both topics from the seeded state.
func (r *Restaurant) ClearAllData(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	fresh := seed.Defaults()
	if err := r.store.Reset(ctx, fresh); err != nil {
		return fmt.Errorf("reset collections: %w", err)
	}
	r.bus.Publish(pubsub.TopicOrdersChanged, fresh.Orders)
	r.bus.Publish(pubsub.TopicTablesChanged, fresh.Tables)
	return nil
}

// SyncFromStore re-reads a collection modified by another process and
// republishes its topic locally. Best-effort: unknown keys are ignored.
func (r *Restaurant) SyncFromStore(ctx context.Context, key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch key {
	case store.KeyOrders:
		orders, err := r.store.LoadOrders(ctx)
		if err != nil {
			r.log.Error("sync_reload_failed", err, map[string]any{"key": key})
			return
		}
		r.bus.Publish(pubsub.TopicOrdersChanged, orders)
	case store.KeyTables:
		tables, err := r.store.LoadTables(ctx)
		if err != nil {
			r.log.Error("sync_reload_failed", err, map[string]any{"key": key})
			return
		}
		r.bus.Publish(pubsub.TopicTablesChanged, tables)
	}
}

func findOrder(orders []domain.Order, id string) int {
	for i := range orders {
		if orders[i].ID == id {
			return i
		}
	}
	return -1
}

func findMenuItem(menu []domain.MenuItem, id string) (domain.MenuItem, bool) {
	for _, m := range menu {
		if m.ID == id {
			return m, true
		}
	}
	return domain.MenuItem{}, false
}

func nowUTC() time.Time { return time.Now().UTC() }
