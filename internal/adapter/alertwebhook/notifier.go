// Package alertwebhook turns low-stock alerts into calls to an email webhook.
package alertwebhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/heartmarshall/inventory-backend/internal/config"
	"github.com/heartmarshall/inventory-backend/internal/domain"
	"github.com/heartmarshall/inventory-backend/internal/notify"
)

const (
	// SubscriberID is the registry handle of the notifier.
	SubscriberID = "relay:alert-webhook"

	queueSize = 64
)

// ErrClosed is returned by Send after Close.
var ErrClosed = errors.New("alert webhook closed")

// Message is the request body accepted by the email function.
type Message struct {
	Subject string `json:"subject"`
	Text    string `json:"text"`
}

// Notifier is a notify.Subscriber that ignores everything but
// low_stock_alert and POSTs those to the webhook with a bearer key.
// Deliveries happen on a background goroutine; failures are logged.
type Notifier struct {
	url    string
	apiKey string
	client *http.Client
	log    *slog.Logger
	queue  chan Message
	done   chan struct{}

	mu     sync.Mutex
	closed bool
}

// New creates a notifier and starts its delivery goroutine.
func New(cfg config.AlertConfig, logger *slog.Logger) *Notifier {
	n := &Notifier{
		url:    cfg.WebhookURL,
		apiKey: cfg.APIKey,
		client: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		log:   logger.With("subscriber", SubscriberID),
		queue: make(chan Message, queueSize),
		done:  make(chan struct{}),
	}
	go n.run()
	return n
}

func (n *Notifier) ID() string { return SubscriberID }

// Send filters and enqueues msg.
func (n *Notifier) Send(ctx context.Context, msg []byte) error {
	h, err := notify.DecodeHeader(msg)
	if err != nil {
		return fmt.Errorf("alert webhook: %w", err)
	}
	if h.Type != domain.EventLowStockAlert {
		return nil
	}

	var env struct {
		Data notify.LowStockPayload `json:"data"`
	}
	if err := json.Unmarshal(msg, &env); err != nil {
		return fmt.Errorf("alert webhook: decode alert: %w", err)
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return ErrClosed
	}
	select {
	case n.queue <- newMessage(env.Data):
	default:
		n.log.WarnContext(ctx, "alert queue full, alert dropped", slog.String("sku", env.Data.SKU))
	}
	return nil
}

// Close stops accepting alerts and waits for queued ones to be delivered.
func (n *Notifier) Close() error {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return nil
	}
	n.closed = true
	close(n.queue)
	n.mu.Unlock()

	<-n.done
	return nil
}

func newMessage(p notify.LowStockPayload) Message {
	return Message{
		Subject: fmt.Sprintf("Low stock alert: %s", p.SKU),
		Text:    p.Message,
	}
}

func (n *Notifier) run() {
	defer close(n.done)

	for m := range n.queue {
		if err := n.deliver(m); err != nil {
			n.log.Error("alert delivery failed", slog.String("subject", m.Subject), slog.String("error", err.Error()))
		}
	}
}

func (n *Notifier) deliver(m Message) error {
	body, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), n.timeout())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if n.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+n.apiKey)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("post: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook responded %d", resp.StatusCode)
	}
	return nil
}

func (n *Notifier) timeout() time.Duration {
	if n.client.Timeout > 0 {
		return n.client.Timeout
	}
	return 5 * time.Second
}
