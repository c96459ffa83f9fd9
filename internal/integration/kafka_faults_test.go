//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"strconv"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"

	"github.com/couchcryptid/thermal-trace/internal/adapter/kafka"
	"github.com/couchcryptid/thermal-trace/internal/config"
	"github.com/couchcryptid/thermal-trace/internal/domain"
	"github.com/couchcryptid/thermal-trace/internal/observability"
	"github.com/couchcryptid/thermal-trace/internal/session"
	"github.com/couchcryptid/thermal-trace/internal/simulate"
)

const testFaultTopic = "test-thermal-faults"

func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()
	container, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0", tckafka.WithClusterID("thermal-trace-test"))
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			t.Logf("terminate kafka container: %v", err)
		}
	})
	require.NoError(t, err, "start kafka container")

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)
	return brokers[0]
}

func createTopic(t *testing.T, broker, topic string) {
	t.Helper()
	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)
	cc, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err)
	defer cc.Close()

	require.NoError(t, cc.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

// TestPublishFaults_RoundTrip loads a simulated traversal, publishes its fault
// log and reads every message back from the topic.
func TestPublishFaults_RoundTrip(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testFaultTopic)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	metrics := observability.NewMetricsForTesting()

	sess := session.New(session.DiscardView, session.DefaultOptions(), logger, metrics)
	require.NoError(t, sess.OnLoad(simulate.Traversal(100, simulate.NewRand(42))))
	faults := sess.Faults()
	require.NotEmpty(t, faults)

	cfg := &config.Config{KafkaBrokers: []string{broker}, KafkaFaultTopic: testFaultTopic}
	w := kafka.NewFaultWriter(cfg, logger, metrics)
	defer w.Close()

	sessionID := sess.Snapshot().TraceID
	require.NoError(t, w.PublishFaults(ctx, sessionID, faults))

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:   []string{broker},
		Topic:     testFaultTopic,
		Partition: 0,
		MinBytes:  1,
		MaxBytes:  10e6,
	})
	defer reader.Close()

	for i, want := range faults {
		readCtx, readCancel := context.WithTimeout(ctx, 30*time.Second)
		msg, err := reader.ReadMessage(readCtx)
		readCancel()
		require.NoError(t, err, "read fault %d", i)

		assert.Equal(t, sessionID+"-"+strconv.Itoa(want.Reading.Index), string(msg.Key))

		headers := make(map[string]string, len(msg.Headers))
		for _, h := range msg.Headers {
			headers[h.Key] = string(h.Value)
		}
		assert.Equal(t, sessionID, headers["session_id"])
		assert.Equal(t, strconv.Itoa(want.LogRow), headers["log_row"])
		assert.NotEmpty(t, headers["published_at"])

		var got kafka.FaultMessage
		require.NoError(t, json.Unmarshal(msg.Value, &got))
		assert.Equal(t, want.LogRow, got.LogRow)
		assert.Equal(t, want.Reading.Index, got.ReadingIndex)
		assert.Equal(t, want.Text, got.Text)
		assert.GreaterOrEqual(t, got.Temp, domain.FaultThreshold)
	}
}
