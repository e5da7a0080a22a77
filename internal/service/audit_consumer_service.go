package service

import (
	"context"
	"encoding/json"
	"time"

	"excel-analytics-be/internal/entity"
	"excel-analytics-be/internal/pkg/logger"
	"excel-analytics-be/internal/repository/unitofwork"
	"excel-analytics-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

type IAuditConsumerService interface {
	Consume(ctx context.Context) error
}

// auditConsumerService turns upload activity events into persisted
// system log rows for the admin audit trail.
type auditConsumerService struct {
	subscriber message.Subscriber
	topic      string
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewAuditConsumerService(
	subscriber message.Subscriber,
	topic string,
	uowFactory unitofwork.RepositoryFactory,
	sysLogger logger.ILogger,
) IAuditConsumerService {
	return &auditConsumerService{
		subscriber: subscriber,
		topic:      topic,
		uowFactory: uowFactory,
		logger:     sysLogger,
	}
}

func (cs *auditConsumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topic)
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

func (cs *auditConsumerService) processMessage(ctx context.Context, msg *message.Message) {
	var ev events.ActivityEvent
	if err := json.Unmarshal(msg.Payload, &ev); err != nil {
		cs.logger.Error("audit", "failed to unmarshal activity event", map[string]interface{}{
			"error": err.Error(),
		})
		// Ack invalid messages to prevent infinite retry.
		msg.Ack()
		return
	}

	details, _ := json.Marshal(ev)
	detailsStr := string(details)
	module := "upload"

	level := "INFO"
	if ev.Degraded {
		level = "WARN"
	}

	entry := &entity.SystemLog{
		Id:        uuid.New(),
		Level:     level,
		Module:    &module,
		Message:   ev.Action,
		Details:   &detailsStr,
		CreatedAt: time.Now(),
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	if err := uow.SystemLogRepository().Create(ctx, entry); err != nil {
		cs.logger.Error("audit", "failed to persist audit entry", map[string]interface{}{
			"action": ev.Action,
			"error":  err.Error(),
		})
		msg.Nack()
		return
	}

	msg.Ack()
}
