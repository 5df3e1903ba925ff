package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-faster/errors"
	"github.com/segmentio/kafka-go"
)

type Type string

const (
	ItemAdded   Type = "cart.item.added"
	ItemUpdated Type = "cart.item.updated"
	// ItemRemoved is emitted when an adjustment drops the quantity below one.
	ItemRemoved Type = "cart.item.removed"
	ItemDeleted Type = "cart.item.deleted"
)

type CartEvent struct {
	Type       Type      `json:"type"`
	ItemID     string    `json:"item_id"`
	Quantity   int64     `json:"quantity"`
	TotalPrice float64   `json:"total_price"`
	At         time.Time `json:"at"`
}

type Publisher interface {
	Publish(ctx context.Context, event CartEvent) error
	Close() error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	writer messageWriter
}

func NewKafkaPublisher(topic string, brokers ...string) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           10 * time.Millisecond,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}
	return &KafkaPublisher{writer: w}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event CartEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "marshal cart event")
	}

	msg := kafka.Message{
		Key:   []byte(event.ItemID), // keeps one item's events ordered
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return errors.Wrap(err, "write cart event")
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// Nop discards events. It is used when no brokers are configured.
type Nop struct{}

func (Nop) Publish(context.Context, CartEvent) error { return nil }
func (Nop) Close() error                             { return nil }
