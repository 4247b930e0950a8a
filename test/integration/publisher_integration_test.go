//go:build integration

package integration

import (
	"context"
	"encoding/json"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruteo/lending/internal/domain/event"
	infraKafka "github.com/ruteo/lending/internal/infrastructure/kafka"
	pkgkafka "github.com/ruteo/lending/pkg/kafka"
	"github.com/ruteo/lending/pkg/observability"
	"github.com/ruteo/lending/pkg/testutil"
)

func createTopic(t *testing.T, broker, topic string) {
	t.Helper()

	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)

	controllerConn, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err)
	defer controllerConn.Close()

	require.NoError(t, controllerConn.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

func TestEventPublisher_PublishesDomainEvents(t *testing.T) {
	ctx := context.Background()

	kc := testutil.NewKafkaContainer(ctx, t)
	t.Cleanup(func() { kc.Cleanup(t) })

	const topic = "lending-events-test"
	createTopic(t, kc.Brokers[0], topic)

	producer := pkgkafka.NewProducer(pkgkafka.Config{Brokers: kc.Brokers})
	t.Cleanup(func() { producer.Close() })

	logger := observability.InitLogger(observability.LogConfig{Level: "debug", Format: "json"})
	publisher := infraKafka.NewEventPublisher(producer, topic, logger)

	loanID := uuid.New().String()
	tenantID := uuid.New().String()
	evt := event.NewLoanOriginated(
		loanID, tenantID, uuid.New().String(),
		decimal.NewFromInt(3000), decimal.NewFromInt(3000),
		decimal.NewFromInt(1200), decimal.NewFromInt(4200),
		decimal.NewFromInt(300), 14,
	)

	publishCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	require.NoError(t, publisher.Publish(publishCtx, evt))

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:   kc.Brokers,
		Topic:     topic,
		Partition: 0,
		MaxWait:   time.Second,
	})
	t.Cleanup(func() { reader.Close() })

	readCtx, cancelRead := context.WithTimeout(ctx, 30*time.Second)
	defer cancelRead()
	msg, err := reader.ReadMessage(readCtx)
	require.NoError(t, err)

	// The loan ID keys the message so all events of one loan stay ordered.
	assert.Equal(t, loanID, string(msg.Key))

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, "lending.loan.originated", headers["event_type"])
	assert.Equal(t, tenantID, headers["tenant_id"])
	assert.Equal(t, evt.EventID(), headers["event_id"])

	var payload map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &payload))
	assert.Equal(t, "3000", payload["requested_amount"])
	assert.Equal(t, float64(14), payload["week_duration"])
}
