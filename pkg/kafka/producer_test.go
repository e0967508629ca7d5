package kafka

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func header(msg kafka.Message, key string) string {
	return NewHeaderCarrier(&msg.Headers).Get(key)
}

func TestNewEvent_Fields(t *testing.T) {
	type cartData struct {
		ProfileID string `json:"profile_id"`
		Count     int    `json:"count"`
	}

	e, err := NewEvent("cart.updated", "guest-1", "cart", "storefront", cartData{"guest-1", 2})
	require.NoError(t, err)

	assert.NotEmpty(t, e.EventID)
	assert.Equal(t, "cart.updated", e.EventType)
	assert.Equal(t, "guest-1", e.AggregateID)
	assert.Equal(t, "cart", e.AggregateType)
	assert.Equal(t, 1, e.Version)
	assert.WithinDuration(t, time.Now().UTC(), e.Timestamp, 2*time.Second)

	var got cartData
	require.NoError(t, json.Unmarshal(e.Data, &got))
	assert.Equal(t, cartData{"guest-1", 2}, got)
}

func TestNewEvent_UnencodableData(t *testing.T) {
	_, err := NewEvent("x", "a", "t", "s", make(chan int))
	require.Error(t, err)
}

func TestEvent_EnvelopeDecodes(t *testing.T) {
	e, err := NewEvent("wishlist.updated", "guest-2", "wishlist", "storefront", map[string]int{"count": 1})
	require.NoError(t, err)
	e.WithCorrelationID("corr-1").WithMetadata("product_id", "3")

	raw, err := e.Marshal()
	require.NoError(t, err)

	var back Event
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, "corr-1", back.CorrelationID)
	assert.Equal(t, "3", back.Metadata["product_id"])
	assert.JSONEq(t, `{"count":1}`, string(back.Data))
}

func TestProducer_PublishSetsKeyAndHeaders(t *testing.T) {
	otel.SetTextMapPropagator(propagation.TraceContext{})

	w := &fakeWriter{}
	p := NewProducerWithWriter(w, []string{"localhost:9092"}, slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil)))

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: traceID, SpanID: spanID, TraceFlags: trace.FlagsSampled,
	}))

	e, err := NewEvent("cart.cleared", "guest-3", "cart", "storefront", struct{}{})
	require.NoError(t, err)
	e.WithCorrelationID("corr-9")

	require.NoError(t, p.Publish(ctx, "storefront.cart.cleared", e))
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, "storefront.cart.cleared", msg.Topic)
	assert.Equal(t, []byte("guest-3"), msg.Key)
	assert.Equal(t, "cart.cleared", header(msg, "event_type"))
	assert.Equal(t, "storefront", header(msg, "source"))
	assert.Equal(t, "corr-9", header(msg, "correlation_id"))
	assert.Contains(t, header(msg, "traceparent"), "4bf92f3577b34da6a3ce929d0e0e4736")

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestProducer_PublishWrapsWriterError(t *testing.T) {
	var logs bytes.Buffer
	boom := errors.New("leader not available")
	p := NewProducerWithWriter(&fakeWriter{err: boom}, nil, slog.New(slog.NewJSONHandler(&logs, nil)))

	e, err := NewEvent("cart.updated", "guest-4", "cart", "storefront", nil)
	require.NoError(t, err)

	err = p.Publish(context.Background(), "storefront.cart.updated", e)
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "storefront.cart.updated")
	assert.Contains(t, logs.String(), "failed to publish event")
}

func TestProducer_PingWithoutBrokers(t *testing.T) {
	p := NewProducerWithWriter(&fakeWriter{}, nil, slog.Default())
	assert.Error(t, p.Ping(context.Background()))
}

func TestHeaderCarrier(t *testing.T) {
	headers := []kafka.Header{{Key: "existing", Value: []byte("v1")}}
	c := NewHeaderCarrier(&headers)

	assert.Equal(t, "v1", c.Get("existing"))
	assert.Empty(t, c.Get("missing"))

	c.Set("existing", "v2")
	c.Set("new", "v3")
	assert.Equal(t, "v2", c.Get("existing"))
	assert.ElementsMatch(t, []string{"existing", "new"}, c.Keys())
	assert.Len(t, headers, 2)
}
