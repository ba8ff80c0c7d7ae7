// Package kafka publishes completed floor analyses to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"roamscope/internal/config"
	"roamscope/internal/domain"
)

// Writer produces analysis messages to a Kafka topic.
// It implements service.Publisher.
type Writer struct {
	writer *kafkago.Writer
}

// NewWriter creates a Kafka producer for the configured analysis topic.
func NewWriter(cfg config.KafkaConfig) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w}
}

// PublishAnalysis serializes a floor analysis and publishes it, keyed
// by floor so per-floor ordering is preserved.
func (w *Writer) PublishAnalysis(ctx context.Context, analysis *domain.FloorAnalysis) error {
	msg, err := serializeToMessage(analysis)
	if err != nil {
		return err
	}
	return w.writer.WriteMessages(ctx, msg)
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a FloorAnalysis into a Kafka message.
func serializeToMessage(analysis *domain.FloorAnalysis) (kafkago.Message, error) {
	data, err := json.Marshal(analysis)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize analysis: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(analysis.Floor),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "source", Value: []byte(analysis.Source)},
			{Key: "generated_at", Value: []byte(analysis.GeneratedAt.Format(time.RFC3339))},
		},
	}, nil
}
