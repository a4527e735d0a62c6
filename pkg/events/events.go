package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/diagnosis/menupage/pkg/logger"
	"github.com/nats-io/nats.go"
)

type Publisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
	Close() error
}

type NATSEventBus struct {
	conn *nats.Conn
}

func NewNATSEventBus(url string) (*NATSEventBus, error) {
	conn, err := nats.Connect(url, nats.Name("menupage-api"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &NATSEventBus{conn: conn}, nil
}

func (n *NATSEventBus) Publish(ctx context.Context, subject string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}

	logger.DebugContext(ctx, "Publishing event", "subject", subject, "data", string(payload))

	return n.conn.Publish(subject, payload)
}

func (n *NATSEventBus) Close() error {
	if err := n.conn.Drain(); err != nil {
		n.conn.Close()
		return err
	}
	return nil
}

// NoopPublisher is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, subject string, data interface{}) error {
	logger.DebugContext(ctx, "Event dropped, no broker configured", "subject", subject)
	return nil
}

func (NoopPublisher) Close() error { return nil }

const (
	AccountRegistered = "account.registered"

	RestaurantCreated = "restaurant.created"
	RestaurantUpdated = "restaurant.updated"
	RestaurantDeleted = "restaurant.deleted"
)

type AccountRegisteredEvent struct {
	AccountID    string    `json:"accountId"`
	Email        string    `json:"email"`
	RegisteredAt time.Time `json:"registeredAt"`
}

type RestaurantCreatedEvent struct {
	RestaurantID string    `json:"restaurantId"`
	UserID       string    `json:"userId"`
	Slug         string    `json:"slug"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"createdAt"`
}

type RestaurantUpdatedEvent struct {
	RestaurantID string    `json:"restaurantId"`
	UserID       string    `json:"userId"`
	Slug         string    `json:"slug"`
	Changes      []string  `json:"changes"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type RestaurantDeletedEvent struct {
	RestaurantID string    `json:"restaurantId"`
	UserID       string    `json:"userId"`
	Slug         string    `json:"slug"`
	DeletedAt    time.Time `json:"deletedAt"`
}
