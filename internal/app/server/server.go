package server

import (
	"context"
	"fmt"
	"strconv"

	"front-of-house/internal/config"
	"front-of-house/internal/domain"
	"front-of-house/internal/httpx"
	"front-of-house/internal/logger"
	"front-of-house/internal/mq"
	"front-of-house/internal/pubsub"
	"front-of-house/internal/service"
	"front-of-house/internal/store"
)

// Run wires the store backend, the event bus, optional MQ integration and
// the HTTP API, then serves until ctx is cancelled.
func Run(ctx context.Context, cfg *config.Config) error {
	lg := logger.New("front-of-house")

	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	bus := pubsub.New()
	bus.Subscribe(pubsub.TopicOrdersChanged, func(payload any) {
		if orders, ok := payload.([]domain.Order); ok {
			lg.Debug("orders_changed", map[string]any{"count": len(orders)})
		}
	})

	opts := []service.Option{}
	var mqClient *mq.Client
	if cfg.RabbitURL != "" {
		mqClient, err = mq.Dial(cfg.RabbitURL)
		if err != nil {
			return err
		}
		defer mqClient.Close()
		if err := mqClient.DeclareAll(); err != nil {
			return fmt.Errorf("declare mq topology: %w", err)
		}
		pub := mq.NewPublisher(mqClient)
		opts = append(opts, service.WithTicketPublisher(pub), service.WithStatusPublisher(pub))
		lg.Info("mq_connected", nil)
	}

	svc := service.New(st, bus, lg, opts...)
	if err := svc.Init(ctx); err != nil {
		return err
	}

	// Station queues are declared up front from the seeded station list so
	// tickets published before any worker starts are not lost.
	if mqClient != nil {
		stations, err := svc.Stations(ctx)
		if err != nil {
			return err
		}
		for _, s := range stations {
			if err := mqClient.DeclareStationQueue(s.ID); err != nil {
				return fmt.Errorf("declare station queue %s: %w", s.ID, err)
			}
		}
	}

	// A Redis-backed store can be shared with other processes; their saves
	// arrive on the sync channel and get republished locally.
	if rs, ok := st.(*store.RedisStore); ok {
		go func() {
			_ = rs.Watch(ctx, func(key string) { svc.SyncFromStore(ctx, key) })
		}()
	}

	handlers := NewHandlers(svc, lg)
	srv := httpx.New(":"+strconv.Itoa(cfg.HTTPPort), handlers.Router())
	lg.Info("server_listening", map[string]any{"port": cfg.HTTPPort, "store": cfg.StoreBackend})
	return srv.Run(ctx)
}

func openStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.StoreBackend {
	case "memory":
		return store.NewMemory(), nil
	case "redis":
		return store.NewRedis(ctx, cfg.RedisURL)
	case "postgres":
		return store.NewPostgres(ctx, cfg.PostgresURL)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
