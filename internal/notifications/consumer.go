package notifications

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"chamber/internal/shared/config"
	"chamber/pkg/logger"

	"github.com/IBM/sarama"
)

// Consumer drains the notification topic and hands events to the email
// service
type Consumer interface {
	Start(ctx context.Context) error
	Stop() error
}

type kafkaConsumer struct {
	consumerGroup sarama.ConsumerGroup
	topics        []string
	emailService  EmailService
	cancel        context.CancelFunc
}

func NewKafkaConsumer(cfg config.KafkaConfig, emailService EmailService) (Consumer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Consumer.Group.Session.Timeout = 30 * time.Second
	saramaConfig.Consumer.Group.Heartbeat.Interval = 3 * time.Second
	saramaConfig.Consumer.Return.Errors = true
	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	saramaConfig.Consumer.Offsets.AutoCommit.Enable = true
	saramaConfig.Consumer.Offsets.AutoCommit.Interval = time.Second

	consumerGroup, err := sarama.NewConsumerGroup(cfg.Brokers, cfg.ConsumerGroup, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	return &kafkaConsumer{
		consumerGroup: consumerGroup,
		topics:        []string{cfg.Topic},
		emailService:  emailService,
	}, nil
}

func (c *kafkaConsumer) Start(ctx context.Context) error {
	ctx, c.cancel = context.WithCancel(ctx)

	go func() {
		for err := range c.consumerGroup.Errors() {
			slog.Error("notification consumer group error", "error", err)
		}
	}()

	go func() {
		handler := &consumerGroupHandler{emailService: c.emailService}
		for {
			select {
			case <-ctx.Done():
				return
			default:
				if err := c.consumerGroup.Consume(ctx, c.topics, handler); err != nil {
					slog.Error("notification consumer error", "error", err)
					time.Sleep(time.Second)
				}
			}
		}
	}()

	slog.Info("notification consumer started", "topics", c.topics)
	return nil
}

func (c *kafkaConsumer) Stop() error {
	if c.cancel != nil {
		c.cancel()
	}
	if err := c.consumerGroup.Close(); err != nil {
		return fmt.Errorf("failed to close consumer group: %w", err)
	}
	return nil
}

type consumerGroupHandler struct {
	emailService EmailService
}

func (h *consumerGroupHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *consumerGroupHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *consumerGroupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message := <-claim.Messages():
			if message == nil {
				return nil
			}
			h.processMessage(session.Context(), message)
			// Mark even on failure; email delivery is best-effort and a
			// poison message must not wedge the partition
			session.MarkMessage(message, "")

		case <-session.Context().Done():
			return nil
		}
	}
}

func (h *consumerGroupHandler) processMessage(ctx context.Context, message *sarama.ConsumerMessage) {
	event, err := EventFromJSON(message.Value)
	if err != nil {
		slog.Error("failed to decode notification event", "error", err, "offset", message.Offset)
		return
	}

	if event.Type != EventBookingConfirmed {
		slog.Warn("unknown notification event type", "type", event.Type)
		return
	}

	err = h.emailService.SendBookingConfirmation(ctx, event)
	logger.LogEmailDispatch(ctx, event.RecipientEmail, err)
}
