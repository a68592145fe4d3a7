package service

import (
	"context"
	"testing"
	"time"

	"insight-center-be/internal/entity"
	"insight-center-be/internal/pkg/logger"
	"insight-center-be/pkg/events"
	pktNats "insight-center-be/pkg/nats"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// replaySubscriber hands its queued events to the handler, then waits for ctx.
type replaySubscriber struct {
	subject string
	events  []events.Event
}

func (s *replaySubscriber) Subscribe(ctx context.Context, subject, _ string, handler pktNats.EventHandler) error {
	s.subject = subject
	for _, event := range s.events {
		if err := handler(ctx, event); err != nil {
			return err
		}
	}
	<-ctx.Done()
	return nil
}

func TestDatasetReloadInvalidatesCache(t *testing.T) {
	ctx := context.Background()
	svc, factory := newTestDatasetService(t, true)

	cached, err := svc.GetOverviewMetrics(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, cached.TotalPincodes)

	require.NoError(t, factory.NewUnitOfWork(ctx).PincodeRepository().UpsertMany(ctx, []*entity.PincodeRecord{
		{Pincode: "600001", State: "Tamil Nadu", District: "Chennai"},
	}))

	sub := &replaySubscriber{events: []events.Event{events.DatasetsReloaded(4, 2, 1)}}
	listenCtx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
	defer cancel()
	require.NoError(t, NewDatasetReloadListener(sub, svc, logger.NewNopLogger()).Listen(listenCtx))

	assert.Equal(t, "events.datasets.reloaded", sub.subject)
	fresh, err := svc.GetOverviewMetrics(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 4, fresh.TotalPincodes)
}

func TestDatasetReloadWithoutBus(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	svc, _ := newTestDatasetService(t, true)

	assert.NoError(t, NewDatasetReloadListener(nil, svc, logger.NewNopLogger()).Listen(ctx))
}
