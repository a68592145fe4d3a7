package service

import (
	"context"
	"encoding/json"
	"time"

	"insight-center-be/internal/dto"
	"insight-center-be/internal/entity"
	"insight-center-be/internal/pkg/logger"
	"insight-center-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService persists search audit messages into search_events.
type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		uowFactory: uowFactory,
		logger:     log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.SearchAuditMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("Consumer", "Failed to unmarshal search audit message", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err,
		})
		msg.Ack() // retrying a malformed payload never succeeds
		return
	}

	occurredAt := payload.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}

	event := &entity.SearchEvent{
		SessionId: payload.SessionID,
		Query:     payload.Query,
		Pincode:   payload.Pincode,
		Outcome:   payload.Outcome,
		CreatedAt: occurredAt,
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	if err := uow.SearchEventRepository().Create(ctx, event); err != nil {
		cs.logger.Error("Consumer", "Failed to store search event", map[string]interface{}{
			"session_id": payload.SessionID,
			"error":      err,
		})
		msg.Nack()
		return
	}

	msg.Ack()
}
