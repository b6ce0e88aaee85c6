package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/tuanvumaihuynh/brewery/internal/storage/mq"
)

// Service consumes beer lifecycle events.
type Service struct {
	logger     *slog.Logger
	mqConsumer mq.Consumer
}

func New(
	logger *slog.Logger,
	mqConsumer mq.Consumer,
) *Service {
	return &Service{
		logger:     logger.With(slog.String("service", "event")),
		mqConsumer: mqConsumer,
	}
}

type CleanupFunc func()

func (s *Service) Run(ctx context.Context) (CleanupFunc, error) {
	if err := register(s.mqConsumer, TopicBeerCreated, s.handleBeerCreatedEvent); err != nil {
		return nil, err
	}
	if err := register(s.mqConsumer, TopicBeerDeleted, s.handleBeerDeletedEvent); err != nil {
		return nil, err
	}

	mqCleanup, err := s.mqConsumer.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("run mq consumer: %w", err)
	}

	return CleanupFunc(mqCleanup), nil
}

// register decodes payloads on topic as T before handing them to handle.
func register[T any](consumer mq.Consumer, topic string, handle func(context.Context, T) error) error {
	if err := consumer.RegisterHandler(topic, func(ctx context.Context, topic string, payload []byte) error {
		var ev T
		if err := json.Unmarshal(payload, &ev); err != nil {
			return fmt.Errorf("unmarshal %s event: %w", topic, err)
		}

		if err := handle(ctx, ev); err != nil {
			return fmt.Errorf("handle %s event: %w", topic, err)
		}

		return nil
	}); err != nil {
		return fmt.Errorf("register %s event handler: %w", topic, err)
	}

	return nil
}
