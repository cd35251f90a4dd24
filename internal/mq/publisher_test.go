package mq

import (
	"testing"

	"front-of-house/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTicketMessagesGroupByStation(t *testing.T) {
	order := domain.Order{
		ID:          "1-ab",
		Number:      "ORD-1001",
		TableNumber: 4,
		Priority:    5,
		Items: []domain.OrderItem{
			{Name: "Ribeye Steak", Quantity: 1, Station: "grill"},
			{Name: "Caesar Salad", Quantity: 2, Station: "salad", Notes: "no anchovy"},
			{Name: "Burger & Fries", Quantity: 1, Station: "grill"},
		},
	}

	msgs := TicketMessages(order)
	require.Len(t, msgs, 2)

	byStation := map[string]domain.TicketMessage{}
	for _, m := range msgs {
		byStation[m.Station] = m
		assert.Equal(t, "ORD-1001", m.OrderNumber)
		assert.Equal(t, 4, m.TableNumber)
		assert.Equal(t, 5, m.Priority)
	}

	grill := byStation["grill"]
	require.Len(t, grill.Items, 2)
	assert.Equal(t, []int{0, 2}, []int{grill.Items[0].Index, grill.Items[1].Index},
		"ticket items must carry their position within the order")

	salad := byStation["salad"]
	require.Len(t, salad.Items, 1)
	assert.Equal(t, 1, salad.Items[0].Index)
	assert.Equal(t, "no anchovy", salad.Items[0].Notes)
}

func TestTicketRouting(t *testing.T) {
	assert.Equal(t, "ticket.grill", TicketRoutingKey("grill"))
	assert.Equal(t, "station.grill.q", StationQueue("grill"))
}
