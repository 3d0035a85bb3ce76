package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/inventory-backend/internal/domain"
)

const (
	DefaultSendTimeout     = 2 * time.Second
	DefaultSendConcurrency = 32
)

// Delivery summarizes one Publish call.
type Delivery struct {
	Sent    int
	Dropped int
}

// Bus encodes events and delivers them to every registered subscriber.
// Delivery is best-effort: failures are logged and the failing subscriber
// is dropped, never reported to the publisher.
type Bus struct {
	registry    *Registry
	log         *slog.Logger
	tracer      trace.Tracer
	sendTimeout time.Duration
	concurrency int

	// publishMu keeps a single global event order, so every subscriber
	// observes events in publish order.
	publishMu sync.Mutex
}

// Option configures a Bus.
type Option func(*Bus)

// WithSendTimeout bounds each individual subscriber send.
func WithSendTimeout(d time.Duration) Option {
	return func(b *Bus) {
		if d > 0 {
			b.sendTimeout = d
		}
	}
}

// WithConcurrency limits how many subscriber sends run at once.
func WithConcurrency(n int) Option {
	return func(b *Bus) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBus creates a bus delivering to the subscribers of registry.
func NewBus(registry *Registry, logger *slog.Logger, opts ...Option) *Bus {
	b := &Bus{
		registry:    registry,
		log:         logger.With("service", "notify"),
		tracer:      otel.Tracer("github.com/heartmarshall/inventory-backend/internal/notify"),
		sendTimeout: DefaultSendTimeout,
		concurrency: DefaultSendConcurrency,
	}
	for _, o := range opts {
		o(b)
	}
	return b
}

// Publish delivers ev to a snapshot of the registry. It returns after every
// send has finished or timed out. Subscribers whose send failed are removed
// from the registry and closed once the sweep is over.
//
// Delivery is detached from ctx cancellation: an event for a committed
// change is still delivered when the originating request has gone away.
func (b *Bus) Publish(ctx context.Context, ev domain.Event) Delivery {
	ctx, span := b.tracer.Start(ctx, "notify.Publish",
		trace.WithAttributes(attribute.String("event.type", ev.Type().String())))
	defer span.End()

	msg, err := Encode(ev)
	if err != nil {
		span.RecordError(err)
		b.log.ErrorContext(ctx, "encode event", slog.String("type", ev.Type().String()), slog.String("error", err.Error()))
		return Delivery{}
	}

	b.publishMu.Lock()
	defer b.publishMu.Unlock()

	subs := b.registry.Snapshot()
	span.SetAttributes(attribute.Int("notify.subscribers", len(subs)))
	if len(subs) == 0 {
		return Delivery{}
	}

	sendCtx := context.WithoutCancel(ctx)

	var (
		mu   sync.Mutex
		dead []Subscriber
	)

	g := new(errgroup.Group)
	g.SetLimit(b.concurrency)
	for _, sub := range subs {
		g.Go(func() error {
			sctx, cancel := context.WithTimeout(sendCtx, b.sendTimeout)
			defer cancel()

			if err := sub.Send(sctx, msg); err != nil {
				b.log.WarnContext(ctx, "notification delivery failed",
					slog.String("subscriber", sub.ID()),
					slog.String("type", ev.Type().String()),
					slog.String("error", err.Error()),
				)
				mu.Lock()
				dead = append(dead, sub)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	for _, sub := range dead {
		if b.registry.Unregister(sub.ID()) {
			_ = sub.Close()
		}
	}

	d := Delivery{Sent: len(subs) - len(dead), Dropped: len(dead)}
	span.SetAttributes(attribute.Int("notify.sent", d.Sent), attribute.Int("notify.dropped", d.Dropped))
	return d
}

// Subscribers returns the number of live subscribers.
func (b *Bus) Subscribers() int {
	return b.registry.Len()
}

// Capacity returns how many subscribers the registry accepts.
func (b *Bus) Capacity() int {
	return b.registry.Cap()
}

// Close unregisters and closes every subscriber. Used at shutdown.
func (b *Bus) Close() {
	b.publishMu.Lock()
	defer b.publishMu.Unlock()

	for _, sub := range b.registry.Snapshot() {
		if b.registry.Unregister(sub.ID()) {
			if err := sub.Close(); err != nil {
				b.log.Warn("close subscriber", slog.String("subscriber", sub.ID()), slog.String("error", err.Error()))
			}
		}
	}
}
