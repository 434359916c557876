package queue

import "context"

// Client sends messages to a queue backend.
type Client interface {
	Send(ctx context.Context, msg Message) error
}

// Noop drops every message. It stands in when no queue is configured.
type Noop struct{}

// Send implements Client.
func (Noop) Send(context.Context, Message) error { return nil }

var _ Client = Noop{}
