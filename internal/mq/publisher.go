package mq

import (
	"context"
	"encoding/json"
	"fmt"

	"front-of-house/internal/domain"

	"github.com/google/uuid"
)

// Publisher adapts the engine's outbound events onto the broker. It
// satisfies the service layer's TicketPublisher and StatusPublisher.
type Publisher struct {
	client *Client
}

func NewPublisher(client *Client) *Publisher {
	return &Publisher{client: client}
}

// TicketMessages slices an order into one ticket per station, each item
// referenced by its position within the order.
func TicketMessages(order domain.Order) []domain.TicketMessage {
	byStation := make(map[string][]domain.TicketItem)
	stations := make([]string, 0, 4)
	for i, item := range order.Items {
		if _, seen := byStation[item.Station]; !seen {
			stations = append(stations, item.Station)
		}
		byStation[item.Station] = append(byStation[item.Station], domain.TicketItem{
			Index:    i,
			Name:     item.Name,
			Quantity: item.Quantity,
			Notes:    item.Notes,
		})
	}
	out := make([]domain.TicketMessage, 0, len(stations))
	for _, station := range stations {
		out = append(out, domain.TicketMessage{
			OrderID:     order.ID,
			OrderNumber: order.Number,
			TableNumber: order.TableNumber,
			Station:     station,
			Priority:    order.Priority,
			Items:       byStation[station],
			CreatedAt:   order.CreatedAt,
		})
	}
	return out
}

// PublishTickets publishes one ticket message per station batch.
func (p *Publisher) PublishTickets(ctx context.Context, order domain.Order) error {
	for _, msg := range TicketMessages(order) {
		body, err := json.Marshal(msg)
		if err != nil {
			return fmt.Errorf("marshal ticket for %s: %w", msg.Station, err)
		}
		err = p.client.Publish(ctx, TicketsExchange, TicketRoutingKey(msg.Station),
			uint8(order.Priority), uuid.NewString(), order.Number, body)
		if err != nil {
			return fmt.Errorf("publish ticket for %s: %w", msg.Station, err)
		}
	}
	return nil
}

func (p *Publisher) PublishStatusChange(ctx context.Context, msg domain.StatusChangeMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal status change: %w", err)
	}
	err = p.client.Publish(ctx, NotificationsExchange, "", 0, uuid.NewString(), msg.OrderNumber, body)
	if err != nil {
		return fmt.Errorf("publish status change: %w", err)
	}
	return nil
}
