package producer

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	OrderCreatedEvent         EventType = "order.created"
	ArtworkStatusChangedEvent EventType = "artwork.status_changed"
	UserSuspendedEvent        EventType = "user.suspended"
)

// DomainEvent 寫入 kafka 的外層結構, Payload 依 EventType 不同
type DomainEvent struct {
	EventID     string          `json:"eventId"`
	AggregateID string          `json:"aggregateId"`
	CreatedAt   time.Time       `json:"createdAt"`
	EventType   EventType       `json:"eventType"`
	Payload     json.RawMessage `json:"payload"`
}

func NewDomainEvent(eventType EventType, aggregateID string, payload any) (*DomainEvent, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &DomainEvent{
		EventID:     uuid.New().String(),
		AggregateID: aggregateID,
		CreatedAt:   time.Now().UTC(),
		EventType:   eventType,
		Payload:     data,
	}, nil
}

type OrderCreatedPayload struct {
	OrderID       string   `json:"orderId"`
	UserID        string   `json:"userId"`
	Amount        string   `json:"amount"`
	PaymentMethod string   `json:"paymentMethod"`
	ArtworkIDs    []string `json:"artworkIds"`
}

type ArtworkStatusChangedPayload struct {
	ArtworkID string `json:"artworkId"`
	From      string `json:"from"`
	To        string `json:"to"`
}

type UserSuspendedPayload struct {
	UserID    string `json:"userId"`
	Suspended bool   `json:"suspended"`
}
