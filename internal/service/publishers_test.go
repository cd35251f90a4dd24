package service

import (
	"context"
	"testing"

	"front-of-house/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	tickets []domain.Order
	changes []domain.StatusChangeMessage
}

func (p *recordingPublisher) PublishTickets(_ context.Context, order domain.Order) error {
	p.tickets = append(p.tickets, order)
	return nil
}

func (p *recordingPublisher) PublishStatusChange(_ context.Context, msg domain.StatusChangeMessage) error {
	p.changes = append(p.changes, msg)
	return nil
}

func TestCreateOrderEmitsTickets(t *testing.T) {
	rec := &recordingPublisher{}
	f := newFixture(t, WithTicketPublisher(rec))

	order, err := f.svc.CreateOrder(context.Background(), twoItemRequest())
	require.NoError(t, err)

	require.Len(t, rec.tickets, 1)
	assert.Equal(t, order.ID, rec.tickets[0].ID)
}

func TestStatusChangesAreAnnounced(t *testing.T) {
	rec := &recordingPublisher{}
	f := newFixture(t, WithStatusPublisher(rec))
	ctx := context.Background()

	order, err := f.svc.CreateOrder(ctx, twoItemRequest())
	require.NoError(t, err)

	_, err = f.svc.UpdateOrderStatus(ctx, order.ID, domain.OrderPreparing)
	require.NoError(t, err)

	// promoting through item updates announces the derived transition too
	_, err = f.svc.UpdateItemStatus(ctx, order.ID, 0, domain.ItemReady)
	require.NoError(t, err)
	_, err = f.svc.UpdateItemStatus(ctx, order.ID, 1, domain.ItemReady)
	require.NoError(t, err)

	require.Len(t, rec.changes, 2)
	assert.Equal(t, domain.OrderPending, rec.changes[0].OldStatus)
	assert.Equal(t, domain.OrderPreparing, rec.changes[0].NewStatus)
	assert.Equal(t, domain.OrderPreparing, rec.changes[1].OldStatus)
	assert.Equal(t, domain.OrderReady, rec.changes[1].NewStatus)
	assert.Equal(t, order.Number, rec.changes[1].OrderNumber)
}
