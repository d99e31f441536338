//go:build unit

package events_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"slot-booker/internal/infra/events"
	"slot-booker/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

func sampleEvent() shared.Event {
	holdID := uuid.New()
	start := time.Date(2030, time.March, 4, 15, 0, 0, 0, time.UTC)
	return shared.Event{
		ID:         uuid.New(),
		Type:       shared.EventHoldPlaced,
		TenantID:   uuid.New(),
		ProviderID: uuid.New(),
		ServiceID:  uuid.New(),
		HoldID:     &holdID,
		StartAt:    start,
		EndAt:      start.Add(time.Hour),
		OccurredAt: start.Add(-2 * time.Hour),
	}
}

func header(msg kafka.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func TestKafkaPublisher_Publish(t *testing.T) {
	w := &recordingWriter{}
	p := events.NewKafkaPublisher(w, "booking.events")
	e := sampleEvent()

	require.NoError(t, p.Publish(context.Background(), e))
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, "booking.events", msg.Topic)
	assert.Equal(t, e.ProviderID.String(), string(msg.Key))
	assert.Equal(t, e.ID.String(), header(msg, "event_id"))
	assert.Equal(t, "hold.placed", header(msg, "event_type"))

	var decoded shared.Event
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, e.ID, decoded.ID)
	assert.Equal(t, *e.HoldID, *decoded.HoldID)
	assert.True(t, e.StartAt.Equal(decoded.StartAt))

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestKafkaPublisher_EmptyBatchSkipsWriter(t *testing.T) {
	w := &recordingWriter{err: errors.New("must not be called")}
	p := events.NewKafkaPublisher(w, "booking.events")
	assert.NoError(t, p.Publish(context.Background()))
}

func TestKafkaPublisher_WriteError(t *testing.T) {
	w := &recordingWriter{err: errors.New("leader not available")}
	p := events.NewKafkaPublisher(w, "booking.events")

	err := p.Publish(context.Background(), sampleEvent(), sampleEvent())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write 2 events")
}

func TestLogPublisher_Publish(t *testing.T) {
	var buf bytes.Buffer
	p := events.NewLogPublisher(slog.New(slog.NewJSONHandler(&buf, nil)))
	e := sampleEvent()

	require.NoError(t, p.Publish(context.Background(), e))
	assert.Contains(t, buf.String(), `"event_type":"hold.placed"`)
	assert.Contains(t, buf.String(), e.HoldID.String())
}
