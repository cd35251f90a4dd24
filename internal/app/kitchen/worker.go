// Package kitchen runs a station worker: it consumes the station's ticket
// queue and drives item status transitions through the server API, which
// stays the single writer of the order collection.
package kitchen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"front-of-house/internal/config"
	"front-of-house/internal/domain"
	"front-of-house/internal/logger"
	"front-of-house/internal/mq"
)

var (
	ErrRequeue = errors.New("requeue")     // nack(requeue=true)
	ErrDLQ     = errors.New("dead_letter") // nack(requeue=false)
)

const fallbackPrepMinutes = 8

func Run(ctx context.Context, cfg *config.Config) error {
	if cfg.Station == "" {
		return fmt.Errorf("station is required: set STATION")
	}
	lg := logger.New("kitchen-" + cfg.Station)

	client, err := mq.Dial(cfg.RabbitURL)
	if err != nil {
		return err
	}
	defer client.Close()
	if err := client.DeclareAll(); err != nil {
		return err
	}
	if err := client.DeclareStationQueue(cfg.Station); err != nil {
		return err
	}

	w := &worker{
		cfg: cfg,
		api: newAPIClient(cfg.ServerURL),
		lg:  lg,
	}
	if err := w.warmMenu(ctx); err != nil {
		lg.Error("menu_warmup_failed", err, nil)
	}

	deliveries, err := client.Consume(mq.StationQueue(cfg.Station), "kitchen-"+cfg.Station, cfg.Prefetch)
	if err != nil {
		return err
	}
	lg.Info("worker_started", map[string]any{"station": cfg.Station, "prefetch": cfg.Prefetch})

	beat := time.NewTicker(time.Duration(cfg.HeartbeatInterval) * time.Second)
	defer beat.Stop()

	for {
		select {
		case <-ctx.Done():
			lg.Info("graceful_shutdown", map[string]any{"station": cfg.Station})
			return nil
		case <-beat.C:
			lg.Debug("heartbeat", map[string]any{"station": cfg.Station})
		case d, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("delivery channel closed")
			}
			switch err := w.processTicket(ctx, d); {
			case err == nil:
				_ = d.Ack(false)
			case errors.Is(err, ErrDLQ):
				_ = d.Nack(false, false)
			default:
				_ = d.Nack(false, true)
			}
		}
	}
}

type worker struct {
	cfg  *config.Config
	api  *apiClient
	lg   *logger.Logger
	prep map[string]int // menu item name -> prep minutes
}

// warmMenu caches prep minutes by item name, so tickets (which carry only
// the order snapshot) can be timed realistically.
func (w *worker) warmMenu(ctx context.Context) error {
	menu, err := w.api.Menu(ctx)
	if err != nil {
		return err
	}
	w.prep = make(map[string]int, len(menu))
	for _, m := range menu {
		w.prep[m.Name] = m.PrepMinutes
	}
	return nil
}

func (w *worker) prepDelay(item domain.TicketItem) time.Duration {
	minutes := fallbackPrepMinutes
	if m, ok := w.prep[item.Name]; ok && m > 0 {
		minutes = m
	}
	perMinute := time.Duration(w.cfg.PrepSecondsPerMinute) * time.Second
	return time.Duration(minutes*item.Quantity) * perMinute
}

func (w *worker) processTicket(ctx context.Context, d amqp.Delivery) error {
	var ticket domain.TicketMessage
	if err := json.Unmarshal(d.Body, &ticket); err != nil {
		return ErrDLQ
	}
	if ticket.OrderID == "" || len(ticket.Items) == 0 {
		return ErrDLQ
	}

	w.lg.Info("ticket_received", map[string]any{
		"order": ticket.OrderNumber, "table": ticket.TableNumber, "items": len(ticket.Items),
	})

	// Items on one ticket cook serially on this station.
	for _, item := range ticket.Items {
		if err := w.api.UpdateItemStatus(ctx, ticket.OrderID, item.Index, domain.ItemPreparing); err != nil {
			w.lg.Error("item_update_failed", err, map[string]any{"order": ticket.OrderNumber, "item": item.Index})
			return ErrRequeue
		}
		select {
		case <-time.After(w.prepDelay(item)):
		case <-ctx.Done():
			return ErrRequeue
		}
		if err := w.api.UpdateItemStatus(ctx, ticket.OrderID, item.Index, domain.ItemReady); err != nil {
			w.lg.Error("item_update_failed", err, map[string]any{"order": ticket.OrderNumber, "item": item.Index})
			return ErrRequeue
		}
	}

	w.lg.Info("ticket_done", map[string]any{"order": ticket.OrderNumber, "station": ticket.Station})
	return nil
}
