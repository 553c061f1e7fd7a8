package pubsub

import (
	"context"
	"encoding/json"
)

// Event is a published message on a topic. Version numbers are per-topic
// and strictly increasing so clients can order or deduplicate.
type Event struct {
	Topic   string          `json:"topic"`
	Type    string          `json:"type"` // e.g. "reloaded", "invalid", "watching"
	Data    json.RawMessage `json:"data"`
	Version int             `json:"version"`
}

// Subscription is a client's handle on a topic stream.
type Subscription interface {
	// Topic returns the subscription topic.
	Topic() string

	// Events returns the channel events arrive on.
	Events() <-chan Event

	// Close detaches the subscription.
	Close() error
}

// Publisher manages subscriptions and event delivery.
type Publisher interface {
	// Subscribe attaches to a topic. Context cancellation closes the
	// subscription.
	Subscribe(ctx context.Context, topic string) (Subscription, error)

	// Publish sends an event to all subscribers of a topic.
	Publish(topic string, eventType string, data interface{}) error

	// Close shuts down the publisher and all subscriptions.
	Close() error
}

// CatalogStatus reports the state of the loaded catalog to UI subscribers.
type CatalogStatus struct {
	State        string `json:"state"` // loading, valid, invalid, error
	Message      string `json:"message"`
	Practices    int    `json:"practices"`
	Dependencies int    `json:"dependencies"`
}
