package rabbitmq

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/familyfin/ledgerhub/db/models"
	"github.com/getsentry/sentry-go"
	"github.com/labstack/gommon/log"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/ziflex/lecho/v3"
)

// bufPool reuses the buffers ledger events are encoded into.
var bufPool = sync.Pool{
	New: func() interface{} { return new(bytes.Buffer) },
}

const (
	contentTypeJSON = "application/json"

	routingKeyPrefix = "ledger."
	// AllLedgerEvents matches the routing key of every ledger event.
	AllLedgerEvents = "ledger.#"
)

var ErrDisconnected = errors.New("disconnected from RabbitMQ")

type LedgerEventHandler = func(ctx context.Context, event models.LedgerEvent) error

type Client interface {
	PublishLedgerEvent(ctx context.Context, event models.LedgerEvent) error
	ConsumeLedgerEvents(ctx context.Context, routingKey string, handler LedgerEventHandler) error
	// Close will close all connections to rabbitmq
	Close() error
}

type DefaultClient struct {
	amqpClient AMQPClient
	logger     *lecho.Logger

	ledgerExchange    string
	consumerQueueName string
}

type ClientOption = func(client *DefaultClient)

func WithLedgerExchange(exchange string) ClientOption {
	return func(client *DefaultClient) {
		client.ledgerExchange = exchange
	}
}

func WithConsumerQueueName(name string) ClientOption {
	return func(client *DefaultClient) {
		client.consumerQueueName = name
	}
}

func WithLogger(logger *lecho.Logger) ClientOption {
	return func(client *DefaultClient) {
		client.logger = logger
	}
}

// NewClient declares the ledger exchange on amqpClient and returns a client
// publishing to it.
func NewClient(amqpClient AMQPClient, options ...ClientOption) (*DefaultClient, error) {
	client := &DefaultClient{
		amqpClient: amqpClient,
		logger: lecho.New(
			os.Stdout,
			lecho.WithLevel(log.DEBUG),
			lecho.WithTimestamp(),
		),
		ledgerExchange:    "ledger_events",
		consumerQueueName: "ledger_auditor",
	}
	for _, opt := range options {
		opt(client)
	}

	err := amqpClient.ExchangeDeclare(
		client.ledgerExchange,
		exchangeKindTopic,
		// durable and not auto-deleted, the exchange survives broker restarts
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, err
	}
	return client, nil
}

func (client *DefaultClient) Close() error { return client.amqpClient.Close() }

// RoutingKey returns the routing key a ledger event of eventType is published with.
func RoutingKey(eventType string) string {
	return routingKeyPrefix + eventType
}

func (client *DefaultClient) PublishLedgerEvent(ctx context.Context, event models.LedgerEvent) error {
	payload := bufPool.Get().(*bytes.Buffer)
	payload.Reset()
	defer bufPool.Put(payload)

	if err := json.NewEncoder(payload).Encode(event); err != nil {
		return err
	}

	err := client.amqpClient.PublishWithContext(ctx,
		client.ledgerExchange,
		RoutingKey(event.Type),
		false,
		false,
		amqp.Publishing{
			ContentType: contentTypeJSON,
			MessageId:   event.ID.String(),
			Timestamp:   event.OccurredAt,
			Body:        payload.Bytes(),
		},
	)
	if err != nil {
		captureErr(client.logger, err)
		return err
	}

	client.logger.Debugf("Successfully published ledger event %s of type %s", event.ID, event.Type)
	return nil
}

// ConsumeLedgerEvents runs handler for every ledger event matching routingKey
// until ctx is done. Messages that cannot be decoded or handled are dropped.
func (client *DefaultClient) ConsumeLedgerEvents(ctx context.Context, routingKey string, handler LedgerEventHandler) error {
	deliveries, err := client.amqpClient.Listen(ctx, client.ledgerExchange, routingKey, client.consumerQueueName, WithAutoAck(false))
	if err != nil {
		return err
	}

	client.logger.Info("Starting RabbitMQ consumer loop")
	for {
		select {
		case <-ctx.Done():
			return context.Canceled
		case delivery, ok := <-deliveries:
			if !ok {
				return ErrDisconnected
			}
			client.handleDelivery(ctx, delivery, handler)
		}
	}
}

func (client *DefaultClient) handleDelivery(ctx context.Context, delivery amqp.Delivery, handler LedgerEventHandler) {
	var event models.LedgerEvent
	if err := json.Unmarshal(delivery.Body, &event); err != nil {
		captureErr(client.logger, fmt.Errorf("decode ledger event: %w", err))
		// requeueing would only fail again
		if err := delivery.Nack(false, false); err != nil {
			captureErr(client.logger, err)
		}
		return
	}

	if err := handler(ctx, event); err != nil {
		captureErr(client.logger, err)
		if err := delivery.Nack(false, false); err != nil {
			captureErr(client.logger, err)
		}
		return
	}

	if err := delivery.Ack(false); err != nil {
		captureErr(client.logger, err)
	}
}

func captureErr(logger *lecho.Logger, err error) {
	logger.Error(err)
	sentry.CaptureException(err)
}
