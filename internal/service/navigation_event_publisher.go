package service

import (
	"context"
	"sync"
	"time"

	"insight-center-be/internal/pkg/logger"
	"insight-center-be/pkg/events"
)

const (
	navigationEventQueueSize = 256
	navigationPublishTimeout = 2 * time.Second
	navigationEventLogModule = "NavigationEvents"
)

// EventSink delivers one event to the external bus. *nats.Publisher
// satisfies it.
type EventSink interface {
	Publish(ctx context.Context, event events.Event) error
}

// INavigationEventPublisher emits navigation transitions. Publish never
// blocks the caller: events are queued and delivered by a background
// worker, and dropped when the queue is full.
type INavigationEventPublisher interface {
	Publish(ctx context.Context, event events.Event)
	Close()
}

type navigationEventPublisher struct {
	sink   EventSink
	queue  chan events.Event
	done   chan struct{}
	wg     sync.WaitGroup
	once   sync.Once
	logger logger.ILogger
}

// NewNavigationEventPublisher starts the delivery worker. A nil sink (NATS
// disabled) drops every event.
func NewNavigationEventPublisher(sink EventSink, log logger.ILogger) INavigationEventPublisher {
	p := &navigationEventPublisher{
		sink:   sink,
		queue:  make(chan events.Event, navigationEventQueueSize),
		done:   make(chan struct{}),
		logger: log,
	}
	if sink != nil {
		p.wg.Add(1)
		go p.run()
	}
	return p
}

func (p *navigationEventPublisher) Publish(_ context.Context, event events.Event) {
	if p.sink == nil {
		return
	}
	select {
	case <-p.done:
	case p.queue <- event:
	default:
		p.logger.Warn(navigationEventLogModule, "Event queue full, dropping event", map[string]interface{}{
			"type": event.EventType(),
		})
	}
}

// Close stops the worker. Events still queued are dropped.
func (p *navigationEventPublisher) Close() {
	p.once.Do(func() { close(p.done) })
	p.wg.Wait()
}

func (p *navigationEventPublisher) run() {
	defer p.wg.Done()
	for {
		select {
		case <-p.done:
			return
		case event := <-p.queue:
			p.deliver(event)
		}
	}
}

func (p *navigationEventPublisher) deliver(event events.Event) {
	ctx, cancel := context.WithTimeout(context.Background(), navigationPublishTimeout)
	defer cancel()

	if err := p.sink.Publish(ctx, event); err != nil {
		p.logger.Warn(navigationEventLogModule, "Failed to publish navigation event", map[string]interface{}{
			"type":  event.EventType(),
			"error": err,
		})
	}
}
