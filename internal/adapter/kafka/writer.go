package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/storm-impact-summary/internal/aggregate"
	"github.com/couchcryptid/storm-impact-summary/internal/config"
)

// snapshotKey is the constant message key for summary snapshots. A single
// key lets the sink topic run log compaction and retain only the newest
// summary.
const snapshotKey = "storm-impact-summary"

// Writer produces summary snapshots to a Kafka topic.
// It implements pipeline.SnapshotPublisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured sink topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSinkTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// PublishSnapshot serializes and publishes one summary snapshot to the sink
// topic.
func (w *Writer) PublishSnapshot(ctx context.Context, snap aggregate.Snapshot) error {
	msg, err := serializeSnapshot(snap)
	if err != nil {
		return err
	}
	return w.writer.WriteMessages(ctx, msg)
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeSnapshot marshals a Snapshot into a Kafka message.
func serializeSnapshot(snap aggregate.Snapshot) (kafkago.Message, error) {
	data, err := json.Marshal(snap)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize snapshot: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(snapshotKey),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "record_count", Value: []byte(strconv.FormatInt(snap.Records, 10))},
			{Key: "generated_at", Value: []byte(snap.GeneratedAt.Format(time.RFC3339))},
		},
	}, nil
}
