package service

import (
	"context"
	"testing"

	"front-of-house/internal/domain"
	"front-of-house/internal/logger"
	"front-of-house/internal/pubsub"
	"front-of-house/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seeded table ids come from the default dataset
const tableA = "t-a"

type fixture struct {
	svc    *Restaurant
	store  *store.MemoryStore
	bus    *pubsub.Bus
	orders int // orders_changed publish count
	tables int // tables_changed publish count
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	f := &fixture{store: store.NewMemory(), bus: pubsub.New()}
	f.bus.Subscribe(pubsub.TopicOrdersChanged, func(any) { f.orders++ })
	f.bus.Subscribe(pubsub.TopicTablesChanged, func(any) { f.tables++ })
	f.svc = New(f.store, f.bus, logger.New("test"), opts...)
	require.NoError(t, f.svc.Init(context.Background()))
	return f
}

func twoItemRequest() domain.CreateOrderRequest {
	return domain.CreateOrderRequest{
		TableID:     tableA,
		TableNumber: 1,
		Items: []domain.CreateOrderItem{
			{MenuItemID: "m-04", Quantity: 1},                                        // Ribeye Steak 28.00, mains -> grill
			{MenuItemID: "m-02", Quantity: 2, SpecialInstructions: "dressing aside"}, // Caesar Salad 9.90, salads -> salad
		},
	}
}

func TestCreateOrderSnapshotsMenuAndComputesTotal(t *testing.T) {
	f := newFixture(t)

	order, err := f.svc.CreateOrder(context.Background(), twoItemRequest())
	require.NoError(t, err)

	require.Len(t, order.Items, 2)
	assert.Equal(t, "Ribeye Steak", order.Items[0].Name)
	assert.Equal(t, "grill", order.Items[0].Station)
	assert.Equal(t, "salad", order.Items[1].Station)
	assert.Equal(t, "dressing aside", order.Items[1].Notes)
	assert.InDelta(t, 28.00+2*9.90, order.TotalAmount, 1e-9)
	assert.Equal(t, domain.OrderPending, order.Status)
	assert.Equal(t, "Guest", order.CustomerName)
	assert.Equal(t, 5+8*2, order.EstimatedMinutes)
}

func TestCreateOrderUnknownMenuItemFallsBack(t *testing.T) {
	f := newFixture(t)

	order, err := f.svc.CreateOrder(context.Background(), domain.CreateOrderRequest{
		TableID: tableA, TableNumber: 1,
		Items: []domain.CreateOrderItem{
			{MenuItemID: "no-such-item", Name: "Off-menu special", Price: 13.00, Quantity: 1},
		},
	})
	require.NoError(t, err)

	require.Len(t, order.Items, 1)
	assert.Equal(t, "Off-menu special", order.Items[0].Name)
	assert.Equal(t, 13.00, order.Items[0].Price)
	assert.Equal(t, domain.DefaultStation, order.Items[0].Station)
	assert.Equal(t, 13.00, order.TotalAmount)
}

func TestCreateOrderValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateOrder(ctx, domain.CreateOrderRequest{TableID: tableA})
	assert.ErrorIs(t, err, ErrNoItems)

	_, err = f.svc.CreateOrder(ctx, domain.CreateOrderRequest{
		TableID: tableA,
		Items:   []domain.CreateOrderItem{{MenuItemID: "m-01", Quantity: 0}},
	})
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestOrderNumbersAreSequentialFromEmptyCollection(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var numbers []string
	for i := 0; i < 3; i++ {
		o, err := f.svc.CreateOrder(ctx, twoItemRequest())
		require.NoError(t, err)
		numbers = append(numbers, o.Number)
	}
	assert.Equal(t, []string{"ORD-1001", "ORD-1002", "ORD-1003"}, numbers)
}

func TestCreateOrderOccupiesTable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tables, err := f.svc.Tables(ctx)
	require.NoError(t, err)
	require.Equal(t, domain.TableAvailable, tableByID(t, tables, tableA).Status)

	_, err = f.svc.CreateOrder(ctx, twoItemRequest())
	require.NoError(t, err)

	tables, err = f.svc.Tables(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.TableOccupied, tableByID(t, tables, tableA).Status)
	assert.Equal(t, 1, f.tables)
}

func TestAllItemsReadyPromotesOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order, err := f.svc.CreateOrder(ctx, twoItemRequest())
	require.NoError(t, err)

	order, err = f.svc.UpdateItemStatus(ctx, order.ID, 0, domain.ItemReady)
	require.NoError(t, err)
	assert.NotEqual(t, domain.OrderReady, order.Status, "one pending item keeps the order unpromoted")
	assert.NotNil(t, order.Items[0].CompletedAt)

	order, err = f.svc.UpdateItemStatus(ctx, order.ID, 1, domain.ItemReady)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderReady, order.Status)
}

func TestItemTimestamps(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order, err := f.svc.CreateOrder(ctx, twoItemRequest())
	require.NoError(t, err)

	order, err = f.svc.UpdateItemStatus(ctx, order.ID, 0, domain.ItemPreparing)
	require.NoError(t, err)
	require.NotNil(t, order.Items[0].StartedAt)
	started := *order.Items[0].StartedAt

	// re-entering preparing keeps the original start stamp
	order, err = f.svc.UpdateItemStatus(ctx, order.ID, 0, domain.ItemPreparing)
	require.NoError(t, err)
	assert.Equal(t, started, *order.Items[0].StartedAt)
}

func TestCompleteForcesItemsServedAndFreesTable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order, err := f.svc.CreateOrder(ctx, twoItemRequest())
	require.NoError(t, err)
	_, err = f.svc.UpdateItemStatus(ctx, order.ID, 0, domain.ItemPreparing)
	require.NoError(t, err)

	order, err = f.svc.UpdateOrderStatus(ctx, order.ID, domain.OrderCompleted)
	require.NoError(t, err)

	for _, item := range order.Items {
		assert.Equal(t, domain.ItemServed, item.Status)
	}
	tables, err := f.svc.Tables(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.TableAvailable, tableByID(t, tables, tableA).Status)
}

func TestCancelFreesTableButKeepsItemStates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order, err := f.svc.CreateOrder(ctx, twoItemRequest())
	require.NoError(t, err)
	_, err = f.svc.UpdateItemStatus(ctx, order.ID, 0, domain.ItemReady)
	require.NoError(t, err)

	order, err = f.svc.UpdateOrderStatus(ctx, order.ID, domain.OrderCancelled)
	require.NoError(t, err)

	assert.Equal(t, domain.ItemReady, order.Items[0].Status)
	assert.Equal(t, domain.ItemPending, order.Items[1].Status)
	tables, err := f.svc.Tables(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.TableAvailable, tableByID(t, tables, tableA).Status)
}

func TestUnknownIDsAreSignaledAndLeaveStateUntouched(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order, err := f.svc.CreateOrder(ctx, twoItemRequest())
	require.NoError(t, err)

	before, err := f.svc.Orders(ctx)
	require.NoError(t, err)
	publishedOrders, publishedTables := f.orders, f.tables

	_, err = f.svc.UpdateOrderStatus(ctx, "bogus", domain.OrderReady)
	assert.ErrorIs(t, err, ErrOrderNotFound)

	_, err = f.svc.UpdateItemStatus(ctx, "bogus", 0, domain.ItemReady)
	assert.ErrorIs(t, err, ErrOrderNotFound)

	_, err = f.svc.UpdateItemStatus(ctx, order.ID, 7, domain.ItemReady)
	assert.ErrorIs(t, err, ErrItemIndexOutOfRange)

	after, err := f.svc.Orders(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Equal(t, publishedOrders, f.orders, "failed updates publish nothing")
	assert.Equal(t, publishedTables, f.tables)
}

func TestActiveOrdersExcludesTerminalStatuses(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.svc.CreateOrder(ctx, twoItemRequest())
	require.NoError(t, err)
	second, err := f.svc.CreateOrder(ctx, twoItemRequest())
	require.NoError(t, err)
	third, err := f.svc.CreateOrder(ctx, twoItemRequest())
	require.NoError(t, err)

	_, err = f.svc.UpdateOrderStatus(ctx, first.ID, domain.OrderCompleted)
	require.NoError(t, err)
	_, err = f.svc.UpdateOrderStatus(ctx, second.ID, domain.OrderCancelled)
	require.NoError(t, err)

	active, err := f.svc.ActiveOrders(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, third.ID, active[0].ID)
}

func TestTableOrdersAndStationOrders(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order, err := f.svc.CreateOrder(ctx, twoItemRequest())
	require.NoError(t, err)

	byTable, err := f.svc.TableOrders(ctx, tableA)
	require.NoError(t, err)
	require.Len(t, byTable, 1)

	grill, err := f.svc.OrdersByStation(ctx, "grill")
	require.NoError(t, err)
	require.Len(t, grill, 1)

	// serving the only grill item removes the order from the grill view
	_, err = f.svc.UpdateItemStatus(ctx, order.ID, 0, domain.ItemServed)
	require.NoError(t, err)
	grill, err = f.svc.OrdersByStation(ctx, "grill")
	require.NoError(t, err)
	assert.Empty(t, grill)

	salad, err := f.svc.OrdersByStation(ctx, "salad")
	require.NoError(t, err)
	assert.Len(t, salad, 1)

	_, err = f.svc.UpdateOrderStatus(ctx, order.ID, domain.OrderCompleted)
	require.NoError(t, err)
	byTable, err = f.svc.TableOrders(ctx, tableA)
	require.NoError(t, err)
	assert.Empty(t, byTable)
}

func TestOrderByID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.CreateOrder(ctx, twoItemRequest())
	require.NoError(t, err)

	got, err := f.svc.OrderByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Number, got.Number)

	_, err = f.svc.OrderByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestClearAllDataRestoresSeeds(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateOrder(ctx, twoItemRequest())
	require.NoError(t, err)

	require.NoError(t, f.svc.ClearAllData(ctx))

	orders, err := f.svc.Orders(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)

	tables, err := f.svc.Tables(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.TableAvailable, tableByID(t, tables, tableA).Status)

	menu, err := f.svc.MenuItems(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, menu)
}

func TestSyncFromStoreRepublishes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	before := f.orders
	f.svc.SyncFromStore(ctx, store.KeyOrders)
	assert.Equal(t, before+1, f.orders)

	f.svc.SyncFromStore(ctx, "some_other_key")
	assert.Equal(t, before+1, f.orders)
}

func TestPrepTimeEstimateUsesBusiestStation(t *testing.T) {
	f := newFixture(t, WithEstimate(PrepTimeEstimate))
	ctx := context.Background()

	// grill: ribeye 25; salad: 2x caesar 20 -> busiest 25, +5 overhead
	order, err := f.svc.CreateOrder(ctx, twoItemRequest())
	require.NoError(t, err)
	assert.Equal(t, 30, order.EstimatedMinutes)
}

func tableByID(t *testing.T, tables []domain.Table, id string) domain.Table {
	t.Helper()
	for _, tb := range tables {
		if tb.ID == id {
			return tb
		}
	}
	t.Fatalf("table %s not in collection", id)
	return domain.Table{}
}
