package service

import (
	"context"

	"insight-center-be/internal/pkg/logger"
	"insight-center-be/pkg/events"
	pktNats "insight-center-be/pkg/nats"
)

// EventSubscriber is the consuming half of the event bus. *nats.Subscriber
// satisfies it.
type EventSubscriber interface {
	Subscribe(ctx context.Context, subject, durable string, handler pktNats.EventHandler) error
}

type IDatasetReloadListener interface {
	// Listen blocks until ctx is done.
	Listen(ctx context.Context) error
}

// datasetReloadListener drops cached datasets whenever a reseed is announced,
// so every instance serves the new import without waiting for the cache TTL.
type datasetReloadListener struct {
	subscriber EventSubscriber
	datasets   IDatasetService
	logger     logger.ILogger
}

func NewDatasetReloadListener(subscriber EventSubscriber, datasets IDatasetService, log logger.ILogger) IDatasetReloadListener {
	return &datasetReloadListener{
		subscriber: subscriber,
		datasets:   datasets,
		logger:     log,
	}
}

func (l *datasetReloadListener) Listen(ctx context.Context) error {
	if l.subscriber == nil {
		<-ctx.Done()
		return nil
	}
	// No durable name: each instance gets its own consumer and sees every reload.
	return l.subscriber.Subscribe(ctx, pktNats.Subject(events.TypeDatasetsReloaded), "", l.handle)
}

func (l *datasetReloadListener) handle(_ context.Context, event events.Event) error {
	l.datasets.Invalidate()
	l.logger.Info("DatasetReload", "Dataset cache invalidated", event.Payload())
	return nil
}
