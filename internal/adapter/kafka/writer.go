// Package kafka publishes earthquake events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/quake-feed/internal/domain"
)

// Writer produces messages to a Kafka topic.
// It implements watch.Sink.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the given brokers and topic.
func NewWriter(brokers []string, topic string, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// Publish serializes and publishes the events in a single WriteMessages call.
func (w *Writer) Publish(ctx context.Context, events []domain.EarthquakeRecord) error {
	if len(events) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(events))
	for i := range events {
		msg, err := serializeToMessage(events[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	return w.writer.WriteMessages(ctx, msgs...)
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals an earthquake record into a Kafka message keyed
// by the feed's event ID, so replays of the same event land in one partition.
func serializeToMessage(event domain.EarthquakeRecord) (kafkago.Message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize earthquake record: %w", err)
	}

	headers := []kafkago.Header{
		{Key: "event_time", Value: []byte(event.Time.Format(time.RFC3339))},
	}
	// No header when the feed has not issued a PAGER assessment.
	if event.Alert != nil {
		headers = append(headers, kafkago.Header{Key: "alert", Value: []byte(*event.Alert)})
	}
	return kafkago.Message{
		Key:     []byte(event.ID),
		Value:   data,
		Headers: headers,
	}, nil
}
