// Package store persists the four restaurant collections. Collections are
// read and written wholesale as JSON arrays under fixed keys; there are no
// partial updates, and concurrent writers resolve last-write-wins at the
// granularity of a whole collection.
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"front-of-house/internal/domain"
	"front-of-house/internal/seed"
)

const (
	KeyMenuItems = "restaurant_menu_items"
	KeyTables    = "restaurant_tables"
	KeyStations  = "restaurant_stations"
	KeyOrders    = "restaurant_orders"
)

type Store interface {
	LoadMenuItems(ctx context.Context) ([]domain.MenuItem, error)
	SaveMenuItems(ctx context.Context, items []domain.MenuItem) error
	LoadTables(ctx context.Context) ([]domain.Table, error)
	SaveTables(ctx context.Context, tables []domain.Table) error
	LoadStations(ctx context.Context) ([]domain.Station, error)
	SaveStations(ctx context.Context, stations []domain.Station) error
	LoadOrders(ctx context.Context) ([]domain.Order, error)
	SaveOrders(ctx context.Context, orders []domain.Order) error

	// Seed populates each collection independently, only where its key is
	// still absent. Reset overwrites all four unconditionally.
	Seed(ctx context.Context, data seed.Data) error
	Reset(ctx context.Context, data seed.Data) error

	Close()
}

// kv is the raw byte contract a backend implements. get returns (nil, nil)
// when the key is absent.
type kv interface {
	get(ctx context.Context, key string) ([]byte, error)
	put(ctx context.Context, key string, data []byte) error
}

// collections layers the typed wholesale-JSON access over a raw backend.
// Malformed persisted data decodes to an empty collection rather than an
// error; only backend I/O failures surface.
type collections struct {
	kv
}

func decode[T any](raw []byte) []T {
	if len(raw) == 0 {
		return []T{}
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		return []T{}
	}
	return out
}

func (c collections) load(ctx context.Context, key string) ([]byte, error) {
	raw, err := c.get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	return raw, nil
}

func (c collections) putJSON(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := c.put(ctx, key, data); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func (c collections) LoadMenuItems(ctx context.Context) ([]domain.MenuItem, error) {
	raw, err := c.load(ctx, KeyMenuItems)
	if err != nil {
		return nil, err
	}
	return decode[domain.MenuItem](raw), nil
}

func (c collections) SaveMenuItems(ctx context.Context, items []domain.MenuItem) error {
	return c.putJSON(ctx, KeyMenuItems, items)
}

func (c collections) LoadTables(ctx context.Context) ([]domain.Table, error) {
	raw, err := c.load(ctx, KeyTables)
	if err != nil {
		return nil, err
	}
	return decode[domain.Table](raw), nil
}

func (c collections) SaveTables(ctx context.Context, tables []domain.Table) error {
	return c.putJSON(ctx, KeyTables, tables)
}

func (c collections) LoadStations(ctx context.Context) ([]domain.Station, error) {
	raw, err := c.load(ctx, KeyStations)
	if err != nil {
		return nil, err
	}
	return decode[domain.Station](raw), nil
}

func (c collections) SaveStations(ctx context.Context, stations []domain.Station) error {
	return c.putJSON(ctx, KeyStations, stations)
}

func (c collections) LoadOrders(ctx context.Context) ([]domain.Order, error) {
	raw, err := c.load(ctx, KeyOrders)
	if err != nil {
		return nil, err
	}
	return decode[domain.Order](raw), nil
}

func (c collections) SaveOrders(ctx context.Context, orders []domain.Order) error {
	return c.putJSON(ctx, KeyOrders, orders)
}

func (c collections) Seed(ctx context.Context, data seed.Data) error {
	seedOne := func(key string, v any) error {
		raw, err := c.load(ctx, key)
		if err != nil {
			return err
		}
		if raw != nil {
			return nil
		}
		return c.putJSON(ctx, key, v)
	}
	if err := seedOne(KeyMenuItems, data.MenuItems); err != nil {
		return err
	}
	if err := seedOne(KeyTables, data.Tables); err != nil {
		return err
	}
	if err := seedOne(KeyStations, data.Stations); err != nil {
		return err
	}
	return seedOne(KeyOrders, data.Orders)
}

func (c collections) Reset(ctx context.Context, data seed.Data) error {
	if err := c.putJSON(ctx, KeyMenuItems, data.MenuItems); err != nil {
		return err
	}
	if err := c.putJSON(ctx, KeyTables, data.Tables); err != nil {
		return err
	}
	if err := c.putJSON(ctx, KeyStations, data.Stations); err != nil {
		return err
	}
	return c.putJSON(ctx, KeyOrders, data.Orders)
}
