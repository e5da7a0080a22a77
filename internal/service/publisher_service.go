package service

import (
	"context"
	"encoding/json"

	"excel-analytics-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

type IPublisherService interface {
	PublishActivity(ctx context.Context, ev events.ActivityEvent) error
}

type publisherService struct {
	publisher message.Publisher
	topic     string
}

func NewPublisherService(publisher message.Publisher, topic string) IPublisherService {
	return &publisherService{
		publisher: publisher,
		topic:     topic,
	}
}

func (s *publisherService) PublishActivity(_ context.Context, ev events.ActivityEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return s.publisher.Publish(s.topic, message.NewMessage(watermill.NewUUID(), payload))
}
