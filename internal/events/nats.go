package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/SscSPs/movement_tracker/internal/core/domain"
	"github.com/nats-io/nats.go"
)

// publisher is the subset of *nats.Conn the sink needs.
type publisher interface {
	Publish(subj string, data []byte) error
}

var _ publisher = (*nats.Conn)(nil)

// NATSSink publishes events as JSON on "<prefix>.movement.<event>".
type NATSSink struct {
	conn   publisher
	prefix string
}

func NewNATSSink(conn publisher, prefix string) *NATSSink {
	if prefix == "" {
		prefix = "movements"
	}
	return &NATSSink{conn: conn, prefix: prefix}
}

// ConnectNATS dials url and returns the sink together with the connection,
// which the caller drains on shutdown.
func ConnectNATS(url, prefix string) (*NATSSink, *nats.Conn, error) {
	conn, err := nats.Connect(url, nats.Name("movement-tracker"))
	if err != nil {
		return nil, nil, fmt.Errorf("connect to NATS: %w", err)
	}
	return NewNATSSink(conn, prefix), conn, nil
}

// Subject returns the subject an event type is published on.
func (s *NATSSink) Subject(t domain.EventType) string {
	return s.prefix + ".movement." + string(t)
}

func (s *NATSSink) Publish(_ context.Context, event domain.MovementEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal movement event: %w", err)
	}
	if err := s.conn.Publish(s.Subject(event.Type), payload); err != nil {
		return fmt.Errorf("publish %s: %w", event.Type, err)
	}
	return nil
}
