// Package realtime bridges the broadcast notification channel into the
// notification store. The channel is a soft dependency: if the brokers are
// unreachable the store keeps working in local-only mode.
package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"hooks/internal/domain"
	"hooks/internal/metrics"
)

// EventNotification is the single broadcast event type the consumer acts on.
const EventNotification = "notification"

// Envelope is the wire shape on the channel. Events other than
// EventNotification are ignored.
type Envelope struct {
	Event   string                   `json:"event"`
	Payload domain.NotificationDraft `json:"payload"`
}

// Sink receives drafts decoded from the channel.
type Sink interface {
	Add(ctx context.Context, draft domain.NotificationDraft) domain.Notification
}

type Consumer struct {
	reader *kafka.Reader
	sink   Sink
	logger *zap.Logger
	cancel context.CancelFunc
	done   chan struct{}
}

func NewConsumer(brokers []string, topic, groupID string, sink Sink, logger *zap.Logger) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: brokers,
		Topic:   topic,
		GroupID: groupID,
	})
	return &Consumer{
		reader: reader,
		sink:   sink,
		logger: logger,
		done:   make(chan struct{}),
	}
}

// Start launches the read loop. Read errors are logged and retried; the loop
// never escalates a channel failure to the caller.
func (c *Consumer) Start(ctx context.Context) {
	ctx, c.cancel = context.WithCancel(ctx)
	go c.consume(ctx)
}

func (c *Consumer) consume(ctx context.Context) {
	defer close(c.done)
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				c.logger.Info("notification channel consumer stopped")
				return
			}
			c.logger.Warn("notification channel read failed", zap.Error(err))
			continue
		}

		if err := c.process(ctx, msg.Value); err != nil {
			metrics.ChannelEvents.WithLabelValues("dropped").Inc()
			c.logger.Warn("notification event dropped",
				zap.Int64("offset", msg.Offset),
				zap.Error(err))
		} else {
			metrics.ChannelEvents.WithLabelValues("processed").Inc()
		}
	}
}

// process decodes one message and dispatches recognized events to the sink.
// Duplicate deliveries are not deduplicated; each becomes its own
// notification with a fresh id (at-least-once semantics).
func (c *Consumer) process(ctx context.Context, value []byte) error {
	var env Envelope
	if err := json.Unmarshal(value, &env); err != nil {
		return fmt.Errorf("decode event: %w", err)
	}
	if env.Event != EventNotification {
		return nil
	}

	draft := env.Payload
	if !draft.Type.Valid() {
		draft.Type = domain.NotificationSystem
	}
	if !draft.Priority.Valid() {
		draft.Priority = domain.PriorityMedium
	}
	c.sink.Add(ctx, draft)
	return nil
}

// Close cancels the read loop and releases the subscription.
func (c *Consumer) Close() error {
	if c.cancel != nil {
		c.cancel()
		<-c.done
	}
	return c.reader.Close()
}
