package events_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/movement_tracker/internal/core/domain"
	"github.com/SscSPs/movement_tracker/internal/events"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type published struct {
	subject string
	data    []byte
}

type fakeConn struct {
	messages []published
	err      error
}

func (f *fakeConn) Publish(subj string, data []byte) error {
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, published{subject: subj, data: data})
	return nil
}

type fakeEnqueuer struct {
	distinctID string
	event      string
	props      map[string]any
}

func (f *fakeEnqueuer) Enqueue(distinctID string, event string, properties map[string]any) error {
	f.distinctID, f.event, f.props = distinctID, event, properties
	return nil
}

func sampleEvent(t domain.EventType) domain.MovementEvent {
	return domain.MovementEvent{
		Type:       t,
		MovementID: "mov-1",
		AreaID:     "area-1",
		ActorID:    "user-1",
		Status:     domain.StatusApproved,
		OccurredAt: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestNATSSink_PublishesJSONOnEventSubject(t *testing.T) {
	conn := &fakeConn{}
	sink := events.NewNATSSink(conn, "acme")

	require.NoError(t, sink.Publish(context.Background(), sampleEvent(domain.EventApproved)))

	require.Len(t, conn.messages, 1)
	assert.Equal(t, "acme.movement.approved", conn.messages[0].subject)

	var decoded domain.MovementEvent
	require.NoError(t, json.Unmarshal(conn.messages[0].data, &decoded))
	assert.Equal(t, domain.EventApproved, decoded.Type)
	assert.Equal(t, "mov-1", decoded.MovementID)
	assert.Equal(t, domain.StatusApproved, decoded.Status)
	assert.True(t, decoded.OccurredAt.Equal(sampleEvent(domain.EventApproved).OccurredAt))
}

func TestNATSSink_DefaultPrefix(t *testing.T) {
	sink := events.NewNATSSink(&fakeConn{}, "")
	assert.Equal(t, "movements.movement.rejected", sink.Subject(domain.EventRejected))
}

func TestPosthogSink_CapturesForActor(t *testing.T) {
	client := &fakeEnqueuer{}
	sink := events.NewPosthogSink(client)

	require.NoError(t, sink.Publish(context.Background(), sampleEvent(domain.EventCreated)))

	assert.Equal(t, "user-1", client.distinctID)
	assert.Equal(t, "movement_created", client.event)
	assert.Equal(t, "mov-1", client.props["movement_id"])
	assert.Equal(t, "APPROVED", client.props["status"])
}

func TestMetricsSink_CountsPerEvent(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink := events.NewMetricsSink(reg)
	ctx := context.Background()

	require.NoError(t, sink.Publish(ctx, sampleEvent(domain.EventApproved)))
	require.NoError(t, sink.Publish(ctx, sampleEvent(domain.EventApproved)))
	require.NoError(t, sink.Publish(ctx, sampleEvent(domain.EventDeleted)))

	assert.Equal(t, 2, testutil.CollectAndCount(reg, "movement_transitions_total"))
}

func TestMultiSink_TriesEverySinkAndJoinsErrors(t *testing.T) {
	failing := &fakeConn{err: errors.New("nats down")}
	working := &fakeConn{}
	sink := events.MultiSink{
		events.NewNATSSink(failing, "a"),
		events.NewNATSSink(working, "b"),
		events.NewLogSink(nil),
	}

	err := sink.Publish(context.Background(), sampleEvent(domain.EventUpdated))

	require.Error(t, err)
	assert.ErrorContains(t, err, "nats down")
	assert.Len(t, working.messages, 1)
}

func TestMultiSink_Empty(t *testing.T) {
	assert.NoError(t, events.MultiSink{}.Publish(context.Background(), sampleEvent(domain.EventCreated)))
}
