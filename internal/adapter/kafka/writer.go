package kafka

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/geoin-git/kiln-monitor/internal/domain"
)

// Writer publishes classified kiln snapshots to a Kafka topic for downstream
// analytics. It implements pipeline.Publisher.
type Writer struct {
	writer    *kafkago.Writer
	reference time.Time
	logger    *slog.Logger
}

// NewWriter creates a Kafka producer for the configured snapshot topic.
func NewWriter(brokers []string, topic string, reference time.Time, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, reference: reference, logger: logger}
}

// PublishSnapshot serializes every record in the refreshed set, status
// included, and publishes them in a single WriteMessages call.
func (w *Writer) PublishSnapshot(ctx context.Context, records []domain.KilnRecord) error {
	if len(records) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(records))
	for i := range records {
		msg, err := serializeToMessage(records[i], w.reference)
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

// snapshotRecord is the wire form: the canonical record plus its derived
// status, which is never stored on the record itself.
type snapshotRecord struct {
	Record domain.KilnRecord `json:"record"`
	Status domain.Status     `json:"status"`
}

// serializeToMessage marshals a KilnRecord into a Kafka message.
func serializeToMessage(rec domain.KilnRecord, reference time.Time) (kafkago.Message, error) {
	status := domain.Classify(rec.Validity, reference)
	data, err := json.Marshal(snapshotRecord{Record: rec, Status: status})
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize kiln record: %w", err)
	}
	return kafkago.Message{
		Key:   recordKey(rec),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "status", Value: []byte(status)},
		},
	}, nil
}

// recordKey derives a deterministic key from the record's identity fields so
// republishing the same dataset lands on the same partitions.
func recordKey(rec domain.KilnRecord) []byte {
	input := fmt.Sprintf("%s|%.4f|%.4f", rec.Name, rec.Lat, rec.Lng)
	hash := sha256.Sum256([]byte(input))
	return []byte(hex.EncodeToString(hash[:8]))
}
