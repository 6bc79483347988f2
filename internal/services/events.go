package services

import (
	"encoding/json"
	"fmt"
	"time"

	"catalog/internal/models"
)

// Routing keys of the catalog events.
const (
	EventProductCreated = "product.created"
	EventProductUpdated = "product.updated"
	EventProductDeleted = "product.deleted"
)

// EventPublisher delivers an encoded event under a routing key.
// *rabbitmq.Client satisfies it.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// ProductEvent is the message published after a catalog change. Product is
// nil for deletions.
type ProductEvent struct {
	Type       string          `json:"type"`
	ProductID  uint            `json:"product_id"`
	Product    *models.Product `json:"product,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// Encode marshals the event to JSON.
func (e ProductEvent) Encode() ([]byte, error) {
	body, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s event: %w", e.Type, err)
	}
	return body, nil
}
