// Package pubsub provides a generic publish/subscribe event system.
package pubsub

import (
	"context"
	"time"
)

// EventType names what happened.
type EventType string

const (
	// LoggedEvent carries a formatted log line.
	LoggedEvent EventType = "logged"
	// OpenedEvent is published when a palette session starts.
	OpenedEvent EventType = "opened"
	// ClosedEvent is published when a palette session ends, with or without execution.
	ClosedEvent EventType = "closed"
	// ExecutedEvent is published after a confirmed item's action ran.
	ExecutedEvent EventType = "executed"
	// ReloadedEvent is published when an external data source was refreshed.
	ReloadedEvent EventType = "reloaded"
)

// Event is a published event with a typed payload.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber hands out subscription channels.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher publishes typed payloads.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}
