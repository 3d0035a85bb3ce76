// Package kafkarelay forwards bus events to a Kafka topic. It registers as an
// ordinary notify.Subscriber; Kafka is a sink here, not a source of truth.
package kafkarelay

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/heartmarshall/inventory-backend/internal/config"
	"github.com/heartmarshall/inventory-backend/internal/notify"
)

const (
	// SubscriberID is the registry handle of the relay.
	SubscriberID = "relay:kafka"

	defaultBuffer = 256
	writeTimeout  = 10 * time.Second
)

// ErrClosed is returned by Send after Close.
var ErrClosed = errors.New("kafka relay closed")

// Producer is the subset of *kafka.Writer the relay needs.
type Producer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// NewWriter builds a writer that hashes on the message key, so all events of
// one item land on one partition in publish order.
func NewWriter(cfg config.KafkaConfig) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(cfg.BrokerList()...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           10 * time.Millisecond,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}
}

// Relay queues encoded events and writes them to Kafka from one goroutine.
// Send never blocks the bus: when the queue is full the event is dropped and
// logged. Broker errors are logged, they do not unregister the relay.
type Relay struct {
	producer Producer
	log      *slog.Logger
	queue    chan []byte
	done     chan struct{}

	mu     sync.Mutex
	closed bool
}

// New starts a relay with the given queue size (<= 0 selects 256).
func New(producer Producer, logger *slog.Logger, buffer int) *Relay {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	r := &Relay{
		producer: producer,
		log:      logger.With("subscriber", SubscriberID),
		queue:    make(chan []byte, buffer),
		done:     make(chan struct{}),
	}
	go r.run()
	return r
}

func (r *Relay) ID() string { return SubscriberID }

// Send enqueues msg for delivery.
func (r *Relay) Send(ctx context.Context, msg []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrClosed
	}

	select {
	case r.queue <- msg:
	default:
		r.log.WarnContext(ctx, "kafka relay queue full, event dropped", slog.Int("queue", cap(r.queue)))
	}
	return nil
}

// Close stops accepting events, drains the queue and closes the producer.
func (r *Relay) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	close(r.queue)
	r.mu.Unlock()

	<-r.done
	return r.producer.Close()
}

func (r *Relay) run() {
	defer close(r.done)

	for msg := range r.queue {
		r.write(msg)
	}
}

func (r *Relay) write(msg []byte) {
	h, err := notify.DecodeHeader(msg)
	if err != nil {
		r.log.Error("kafka relay: undecodable event", slog.String("error", err.Error()))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	err = r.producer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(h.ItemID.String()),
		Value: msg,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(h.Type)},
		},
	})
	if err != nil {
		r.log.Error("kafka relay: write failed",
			slog.String("event", string(h.Type)),
			slog.String("item_id", h.ItemID.String()),
			slog.String("error", err.Error()),
		)
	}
}
