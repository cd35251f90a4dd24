package store

import (
	"context"
	"testing"

	"front-of-house/internal/domain"
	"front-of-house/internal/seed"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAbsentCollectionIsEmpty(t *testing.T) {
	s := NewMemory()

	orders, err := s.LoadOrders(context.Background())
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	in := []domain.Order{{ID: "1-ab", Number: "ORD-1001", Status: domain.OrderPending}}
	require.NoError(t, s.SaveOrders(ctx, in))

	out, err := s.LoadOrders(ctx)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestCorruptDataFallsBackToEmpty(t *testing.T) {
	s := NewMemory()
	s.PutRaw(KeyOrders, []byte(`{"not":"an array"`))

	orders, err := s.LoadOrders(context.Background())
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestSeedOnlyFillsAbsentKeys(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	mine := []domain.Table{{ID: "t-x", Number: 99, Status: domain.TableOccupied}}
	require.NoError(t, s.SaveTables(ctx, mine))

	require.NoError(t, s.Seed(ctx, seed.Defaults()))

	tables, err := s.LoadTables(ctx)
	require.NoError(t, err)
	assert.Equal(t, mine, tables, "seeding must not overwrite an existing collection")

	menu, err := s.LoadMenuItems(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, menu, "absent collections are seeded")
}

func TestResetOverwritesEverything(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	defaults := seed.Defaults()
	require.NoError(t, s.Seed(ctx, defaults))

	require.NoError(t, s.SaveOrders(ctx, []domain.Order{{ID: "x"}}))
	require.NoError(t, s.Reset(ctx, defaults))

	orders, err := s.LoadOrders(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)

	tables, err := s.LoadTables(ctx)
	require.NoError(t, err)
	assert.Equal(t, defaults.Tables, tables)
}
