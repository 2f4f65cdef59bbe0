package dispatch

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	"liyu1981.xyz/tpms-service/pkg/common"
)

// KafkaDispatcher publishes notifications to a topic keyed by tire id, so all
// transitions of one tire land on the same partition in order.
type KafkaDispatcher struct {
	writer *kafkago.Writer
}

// Dispatch runs while the tire is locked, so a single notification must be
// flushed right away rather than wait out the writer's default 1s batch window.
const kafkaBatchTimeout = 10 * time.Millisecond

func NewKafkaDispatcher(brokers []string, topic string) *KafkaDispatcher {
	return &KafkaDispatcher{
		writer: &kafkago.Writer{
			Addr:         kafkago.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafkago.Hash{},
			BatchSize:    1,
			BatchTimeout: kafkaBatchTimeout,
			RequiredAcks: kafkago.RequireOne,
			Async:        false,
		},
	}
}

func (k *KafkaDispatcher) Dispatch(ctx context.Context, event Event) error {
	msg, err := serializeToMessage(event)
	if err != nil {
		return err
	}

	if err := k.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka publish notification %s: %w", event.NotificationID, err)
	}

	common.GetLoggerWith(common.LoggerNameDispatch).Debug("Notification published to kafka",
		zap.String("topic", k.writer.Topic),
		zap.String("notification_id", event.NotificationID))
	return nil
}

func (k *KafkaDispatcher) Close() error {
	return k.writer.Close()
}

func serializeToMessage(event Event) (kafkago.Message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize notification event: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(event.TireID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "new_alert_type", Value: []byte(event.NewAlertType)},
			{Key: "sent_at", Value: []byte(event.SentAt.UTC().Format(time.RFC3339))},
		},
	}, nil
}
