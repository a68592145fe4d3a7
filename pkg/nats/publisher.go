package nats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"insight-center-be/pkg/events"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

const (
	StreamName    = "EVENTS"
	SubjectPrefix = "events"
)

// ErrNotConnected is returned by Publish while the connection is down.
var ErrNotConnected = errors.New("nats not connected")

// Publisher handles sending events to the NATS bus.
type Publisher struct {
	nc *nats.Conn
	js jetstream.JetStream

	streamReady atomic.Bool
}

// NewPublisher returns without waiting for the server; the connection keeps
// retrying in the background. The EVENTS stream is ensured once connected.
func NewPublisher(url string) (*Publisher, error) {
	nc, err := nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(5),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	p := &Publisher{nc: nc, js: js}
	if nc.IsConnected() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = p.ensureStream(ctx)
	}
	return p, nil
}

// ensureStream creates the EVENTS stream with limits retention so any number
// of consumers can replay the audit trail.
func (p *Publisher) ensureStream(ctx context.Context) error {
	if p.streamReady.Load() {
		return nil
	}
	_, err := p.js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:      StreamName,
		Subjects:  []string{SubjectPrefix + ".>"},
		Storage:   jetstream.FileStorage,
		Retention: jetstream.LimitsPolicy,
		MaxAge:    7 * 24 * time.Hour,
	})
	if err != nil {
		return fmt.Errorf("failed to ensure stream %s: %w", StreamName, err)
	}
	p.streamReady.Store(true)
	return nil
}

// Connected reports whether the connection is currently up.
func (p *Publisher) Connected() bool {
	return p.nc != nil && p.nc.Status() == nats.CONNECTED
}

// Subject returns the subject an event of the given type is published on.
func Subject(eventType string) string {
	return fmt.Sprintf("%s.%s", SubjectPrefix, eventType)
}

// Publish sends an event to NATS. It fails fast with ErrNotConnected instead
// of waiting out the JetStream timeout while the server is unreachable.
func (p *Publisher) Publish(ctx context.Context, event events.Event) error {
	if !p.Connected() {
		return ErrNotConnected
	}
	if err := p.ensureStream(ctx); err != nil {
		return err
	}

	data, err := json.Marshal(event.Payload())
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	subject := Subject(event.EventType())
	if _, err := p.js.Publish(ctx, subject, data); err != nil {
		return fmt.Errorf("failed to publish event to subject %s: %w", subject, err)
	}
	return nil
}

// Close closes the NATS connection.
func (p *Publisher) Close() {
	if p.nc != nil {
		p.nc.Close()
	}
}
