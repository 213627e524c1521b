package worker

import (
	"context"
	"log"

	"analytics-service/internal/broker"
	"analytics-service/internal/mart"
	"analytics-service/internal/models"
	"analytics-service/internal/redisclient"
)

// RefreshWorker listens for mart-refresh events and drops both cache layers
// so the next query reloads the rewritten mart.
type RefreshWorker struct {
	consumer     *broker.Consumer
	eventHandler *broker.EventHandler
}

// NewRefreshWorker creates a worker bound to the dataset cache and the
// optional Redis response cache.
func NewRefreshWorker(consumer *broker.Consumer, cache *mart.Cache, redis *redisclient.Client) *RefreshWorker {
	eventHandler := broker.NewEventHandler()
	eventHandler.OnMartRefreshed(func(ctx context.Context, event *models.MartRefreshedEvent) error {
		log.Printf("Mart refreshed by %s (%d rows), invalidating caches", event.Source, event.RowCount)
		cache.Invalidate()
		if redis != nil {
			if err := redis.FlushResponses(ctx); err != nil {
				log.Printf("Failed to flush response cache: %v", err)
			}
		}
		return nil
	})

	return &RefreshWorker{
		consumer:     consumer,
		eventHandler: eventHandler,
	}
}

// Start starts the worker
func (w *RefreshWorker) Start(ctx context.Context) error {
	log.Println("Starting refresh worker...")
	return w.consumer.StartConsuming(ctx, w.eventHandler.HandleMessage)
}

// Stop stops the worker
func (w *RefreshWorker) Stop() error {
	log.Println("Stopping refresh worker...")
	return w.consumer.Close()
}
