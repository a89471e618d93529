package notifications

import (
	"context"
	"log/slog"

	"chamber/internal/bookings"
	"chamber/internal/shared/config"
	"chamber/pkg/logger"
)

// Service fans booking confirmations out to email. With Kafka configured,
// events flow producer -> topic -> consumer group; without it, the service
// degrades to a direct in-process send. Either way delivery is
// fire-and-forget: failures are logged and never reach the wizard.
type Service struct {
	producer     Producer
	consumer     Consumer
	emailService EmailService
}

// NewService wires the delivery pipeline from configuration
func NewService(cfg *config.Config) (*Service, error) {
	emailService, err := NewEmailService(cfg.Email)
	if err != nil {
		return nil, err
	}

	svc := &Service{emailService: emailService}

	if !cfg.KafkaEnabled() {
		slog.Info("Kafka not configured, notifications will be sent in-process")
		return svc, nil
	}

	producer, err := NewKafkaProducer(cfg.Kafka)
	if err != nil {
		return nil, err
	}
	consumer, err := NewKafkaConsumer(cfg.Kafka, emailService)
	if err != nil {
		producer.Close()
		return nil, err
	}

	svc.producer = producer
	svc.consumer = consumer
	return svc, nil
}

// Start launches the consumer group when Kafka is in play
func (s *Service) Start(ctx context.Context) error {
	if s.consumer == nil {
		return nil
	}
	return s.consumer.Start(ctx)
}

// Stop tears down the Kafka client pair
func (s *Service) Stop() error {
	var firstErr error
	if s.consumer != nil {
		if err := s.consumer.Stop(); err != nil {
			firstErr = err
		}
	}
	if s.producer != nil {
		if err := s.producer.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// NotifyBookingConfirmed implements bookings.Notifier. It returns
// immediately; the publish or direct send happens on its own goroutine
// with a context detached from the request.
func (s *Service) NotifyBookingConfirmed(booking *bookings.Booking) {
	event := NewBookingConfirmedEvent(booking)

	go func() {
		ctx := context.Background()
		if s.producer != nil {
			if err := s.producer.Publish(ctx, event); err != nil {
				slog.Error("failed to publish booking confirmation", "booking_id", event.BookingID, "error", err)
			}
			return
		}

		err := s.emailService.SendBookingConfirmation(ctx, event)
		logger.LogEmailDispatch(ctx, event.RecipientEmail, err)
	}()
}
