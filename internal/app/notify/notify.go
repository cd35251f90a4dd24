// Package notify tails the notifications fanout and logs every order
// status change. Stands in for whatever delivery channel (display board,
// pager, push) a deployment hooks up.
package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"front-of-house/internal/config"
	"front-of-house/internal/domain"
	"front-of-house/internal/logger"
	"front-of-house/internal/mq"
)

func Run(ctx context.Context, cfg *config.Config) error {
	lg := logger.New("notification-subscriber")

	client, err := mq.Dial(cfg.RabbitURL)
	if err != nil {
		return err
	}
	defer client.Close()
	if err := client.DeclareAll(); err != nil {
		return err
	}

	deliveries, err := client.Consume(mq.NotificationsQueue, "notification-subscriber", cfg.Prefetch)
	if err != nil {
		return err
	}
	lg.Info("subscriber_started", nil)

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("delivery channel closed")
			}
			var msg domain.StatusChangeMessage
			if err := json.Unmarshal(d.Body, &msg); err != nil {
				lg.Error("invalid_notification", err, nil)
				_ = d.Nack(false, false)
				continue
			}
			lg.Info("order_status_change", map[string]any{
				"order": msg.OrderNumber,
				"from":  msg.OldStatus,
				"to":    msg.NewStatus,
				"by":    msg.ChangedBy,
			})
			_ = d.Ack(false)
		}
	}
}
