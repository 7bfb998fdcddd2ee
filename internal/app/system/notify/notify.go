// internal/app/system/notify/notify.go

// Package notify publishes coordination events to RabbitMQ so external
// consumers (dispatch dashboards, SMS relays run by partner organizations)
// can react to assignments without polling the API.
//
// The publisher is optional: when no AMQP URL is configured, NewPublisher
// returns a disabled publisher whose Publish is a no-op. Handlers always go
// through the in-database notifications store; this is a secondary fan-out.
package notify

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	retry "github.com/avast/retry-go"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Exchange is the topic exchange all coordination events are published to.
const Exchange = "drls.notifications"

// Routing keys for the event types we emit.
const (
	KeyTaskCreated          = "task.created"
	KeyTaskStatusUpdated    = "task.status.updated"
	KeyRequestStatusUpdated = "request.status.updated"
)

// Event is the wire envelope for a published message.
type Event struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload"`
}

// Publisher publishes events to the coordination exchange.
type Publisher struct {
	url string
	log *zap.Logger

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewPublisher connects to RabbitMQ and declares the exchange. An empty url
// yields a disabled publisher; connection failures are returned so startup
// can decide whether to proceed.
func NewPublisher(url string, log *zap.Logger) (*Publisher, error) {
	p := &Publisher{url: url, log: log}
	if url == "" {
		log.Info("amqp publisher disabled (no url configured)")
		return p, nil
	}
	if err := p.connect(); err != nil {
		return nil, err
	}
	log.Info("amqp publisher connected", zap.String("exchange", Exchange))
	return p, nil
}

// Enabled reports whether the publisher has an AMQP endpoint configured.
func (p *Publisher) Enabled() bool { return p != nil && p.url != "" }

func (p *Publisher) connect() error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return err
	}
	if err := ch.ExchangeDeclare(Exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return err
	}
	p.conn = conn
	p.ch = ch
	return nil
}

// Publish sends an event with the given routing key. The payload is JSON
// encoded into the event envelope. Transient failures are retried a few
// times with backoff; a dropped connection is re-dialed once per attempt.
// Publish never fails the caller's request: errors are logged and swallowed.
func (p *Publisher) Publish(ctx context.Context, key string, payload any) {
	if !p.Enabled() {
		return
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		p.log.Error("amqp event payload encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	body, err := json.Marshal(Event{
		ID:         uuid.NewString(),
		Type:       key,
		OccurredAt: time.Now().UTC(),
		Payload:    raw,
	})
	if err != nil {
		p.log.Error("amqp event encode failed", zap.String("key", key), zap.Error(err))
		return
	}

	err = retry.Do(
		func() error { return p.publishOnce(ctx, key, body) },
		retry.Attempts(3),
		retry.Delay(200*time.Millisecond),
		retry.Context(ctx),
	)
	if err != nil {
		p.log.Error("amqp publish failed", zap.String("key", key), zap.Error(err))
	}
}

func (p *Publisher) publishOnce(ctx context.Context, key string, body []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch == nil || p.conn == nil || p.conn.IsClosed() {
		if err := p.connect(); err != nil {
			return err
		}
	}

	err := p.ch.PublishWithContext(ctx, Exchange, key, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Body:         body,
	})
	if err != nil {
		// Force a re-dial on the next attempt.
		p.ch = nil
		return err
	}
	return nil
}

// Close shuts down the AMQP channel and connection.
func (p *Publisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch != nil {
		p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		p.conn.Close()
		p.conn = nil
	}
}
