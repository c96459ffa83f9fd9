package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/couchcryptid/storm-data-shared/retry"
	"github.com/jonboulle/clockwork"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/sony/gobreaker"

	"github.com/couchcryptid/thermal-trace/internal/config"
	"github.com/couchcryptid/thermal-trace/internal/observability"
	"github.com/couchcryptid/thermal-trace/internal/session"
)

// ErrCircuitOpen is returned while the breaker rejects publishes.
var ErrCircuitOpen = errors.New("fault publisher circuit open")

const (
	publishAttempts   = 3
	initialBackoff    = 200 * time.Millisecond
	maxPublishBackoff = 2 * time.Second
)

// messageWriter is the subset of *kafkago.Writer the fault writer uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// FaultMessage is the JSON value of one published fault.
type FaultMessage struct {
	SessionID    string    `json:"session_id"`
	LogRow       int       `json:"log_row"`
	ReadingIndex int       `json:"reading_index"`
	Lon          float64   `json:"lon"`
	Lat          float64   `json:"lat"`
	Temp         float64   `json:"temp"`
	Text         string    `json:"text"`
	PublishedAt  time.Time `json:"published_at"`
}

// FaultWriter publishes fault-log rows to a Kafka topic.
type FaultWriter struct {
	writer  messageWriter
	circuit *gobreaker.CircuitBreaker
	clock   clockwork.Clock
	logger  *slog.Logger
	metrics *observability.Metrics

	attempts int
	backoff  time.Duration
}

// NewFaultWriter creates a Kafka producer for the configured fault topic.
func NewFaultWriter(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) *FaultWriter {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaFaultTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return newFaultWriter(w, logger, metrics)
}

func newFaultWriter(w messageWriter, logger *slog.Logger, metrics *observability.Metrics) *FaultWriter {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "kafka-faults",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     30 * time.Second,
	})
	return &FaultWriter{
		writer:   w,
		circuit:  cb,
		clock:    clockwork.NewRealClock(),
		logger:   logger,
		metrics:  metrics,
		attempts: publishAttempts,
		backoff:  initialBackoff,
	}
}

// PublishFaults writes every fault in one WriteMessages call. Keys are
// "{sessionID}-{readingIndex}" so re-publishing a trace overwrites rather than
// duplicates on a compacted topic.
func (w *FaultWriter) PublishFaults(ctx context.Context, sessionID string, faults []session.FaultRecord) error {
	if len(faults) == 0 {
		return nil
	}

	now := w.clock.Now().UTC()
	msgs := make([]kafkago.Message, len(faults))
	for i := range faults {
		msg, err := serializeToMessage(sessionID, faults[i], now)
		if err != nil {
			w.metrics.FaultPublishes.WithLabelValues("error").Inc()
			return err
		}
		msgs[i] = msg
	}

	err := w.writeWithRetry(ctx, msgs)
	switch {
	case errors.Is(err, ErrCircuitOpen):
		w.metrics.FaultPublishes.WithLabelValues("circuit_open").Inc()
		return err
	case err != nil:
		w.metrics.FaultPublishes.WithLabelValues("error").Inc()
		return fmt.Errorf("publish %d faults: %w", len(msgs), err)
	}

	w.metrics.FaultPublishes.WithLabelValues("success").Add(float64(len(msgs)))
	w.logger.Info("faults published", "session_id", sessionID, "count", len(msgs))
	return nil
}

// writeWithRetry retries failed writes with exponential backoff. An open
// breaker ends the loop immediately.
func (w *FaultWriter) writeWithRetry(ctx context.Context, msgs []kafkago.Message) error {
	backoff := w.backoff
	var err error
	for attempt := 1; attempt <= w.attempts; attempt++ {
		_, err = w.circuit.Execute(func() (interface{}, error) {
			return nil, w.writer.WriteMessages(ctx, msgs...)
		})
		if err == nil {
			return nil
		}
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return fmt.Errorf("%w: %v", ErrCircuitOpen, err)
		}
		if attempt == w.attempts {
			break
		}
		w.logger.Warn("fault publish failed, retrying", "attempt", attempt, "backoff", backoff, "error", err)
		if !retry.SleepWithContext(ctx, backoff) {
			return ctx.Err()
		}
		backoff = retry.NextBackoff(backoff, maxPublishBackoff)
	}
	return err
}

func (w *FaultWriter) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a fault record into a Kafka message.
func serializeToMessage(sessionID string, f session.FaultRecord, publishedAt time.Time) (kafkago.Message, error) {
	data, err := json.Marshal(FaultMessage{
		SessionID:    sessionID,
		LogRow:       f.LogRow,
		ReadingIndex: f.Reading.Index,
		Lon:          f.Reading.Lon,
		Lat:          f.Reading.Lat,
		Temp:         f.Reading.Temp,
		Text:         f.Text,
		PublishedAt:  publishedAt,
	})
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize fault %d: %w", f.LogRow, err)
	}
	return kafkago.Message{
		Key:   []byte(sessionID + "-" + strconv.Itoa(f.Reading.Index)),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "session_id", Value: []byte(sessionID)},
			{Key: "log_row", Value: []byte(strconv.Itoa(f.LogRow))},
			{Key: "published_at", Value: []byte(publishedAt.Format(time.RFC3339))},
		},
	}, nil
}
