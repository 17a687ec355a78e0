package events

import (
	"context"
	"encoding/json"
	"time"
)

const DefaultChannel = "basha.listings"

const (
	ListingCreated = "listing.created"
	BookingCreated = "booking.created"
	BookingDecided = "booking.decided"
)

type Event struct {
	Type      string          `json:"type"`
	RoomID    string          `json:"roomId"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp int64           `json:"timestamp"`
}

// NewEvent marshals payload into an event stamped with the current time.
func NewEvent(eventType, roomID string, payload any) (Event, error) {
	e := Event{Type: eventType, RoomID: roomID, Timestamp: time.Now().UnixMilli()}
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return e, err
		}
		e.Payload = b
	}
	return e, nil
}

// Publisher fans marketplace events out to other services.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

type Config struct {
	Driver   string `mapstructure:"driver"` // none, redis, amqp
	Channel  string `mapstructure:"channel"`
	AMQPURL  string `mapstructure:"amqp_url"`
	Exchange string `mapstructure:"exchange"`
}

// NoopPublisher drops every event.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, Event) error { return nil }
func (NoopPublisher) Close() error                         { return nil }
