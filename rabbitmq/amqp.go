package rabbitmq

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/ziflex/lecho/v3"
)

const (
	defaultHeartbeat = 10 * time.Second
	defaultLocale    = "en_US"

	exchangeKindTopic = "topic"
)

type reconnectSignal int

const (
	signalReconnected reconnectSignal = iota
	signalClosed
)

// AMQPClient is the subset of an AMQP connection the ledger needs. The default
// implementation reconnects on its own after the broker closed the connection.
type AMQPClient interface {
	Listen(ctx context.Context, exchange string, routingKey string, queueName string, options ...AMQPListenOptions) (<-chan amqp.Delivery, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	Close() error
}

type defaultAMQPClient struct {
	uri    string
	logger *lecho.Logger

	mu   sync.RWMutex
	conn *amqp.Connection
	// publishing and consuming use separate channels so flow control on one does not stall the other
	consumeChannel *amqp.Channel
	publishChannel *amqp.Channel
	closed         chan *amqp.Error

	listenersMu sync.Mutex
	listeners   []chan reconnectSignal

	reconnecting atomic.Bool
}

func DialAMQP(uri string, logger *lecho.Logger) (AMQPClient, error) {
	client := &defaultAMQPClient{
		uri:    uri,
		logger: logger,
	}
	if err := client.connect(); err != nil {
		return nil, err
	}
	go client.reconnectionLoop()
	return client, nil
}

func newBackoff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.MaxInterval = 10 * time.Second
	b.MaxElapsedTime = time.Minute
	return b
}

func (c *defaultAMQPClient) connect() error {
	conn, err := amqp.DialConfig(c.uri, amqp.Config{
		Heartbeat: defaultHeartbeat,
		Locale:    defaultLocale,
		Dial:      amqp.DefaultDial(3 * time.Second),
	})
	if err != nil {
		return err
	}
	consumeChannel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return err
	}
	publishChannel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return err
	}
	closed := make(chan *amqp.Error, 1)
	conn.NotifyClose(closed)

	c.mu.Lock()
	c.conn = conn
	c.consumeChannel = consumeChannel
	c.publishChannel = publishChannel
	c.closed = closed
	c.mu.Unlock()
	return nil
}

func (c *defaultAMQPClient) broadcast(signal reconnectSignal) {
	c.listenersMu.Lock()
	defer c.listenersMu.Unlock()
	for _, listener := range c.listeners {
		select {
		case listener <- signal:
		default:
			// listener is gone
		}
	}
}

func (c *defaultAMQPClient) reconnectionLoop() {
	for {
		c.mu.RLock()
		closed := c.closed
		c.mu.RUnlock()

		amqpError, ok := <-closed
		if !ok || amqpError == nil {
			// graceful Close
			return
		}
		c.logger.Error(amqpError)

		c.reconnecting.Store(true)
		c.logger.Info("amqp: trying to reconnect...")
		if err := backoff.Retry(c.connect, newBackoff()); err != nil {
			c.logger.Errorf("amqp: giving up reconnecting: %v", err)
			c.broadcast(signalClosed)
			return
		}
		c.reconnecting.Store(false)
		c.logger.Info("amqp: successfully reconnected")
		c.broadcast(signalReconnected)
	}
}

func (c *defaultAMQPClient) Close() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.conn.Close()
}

func (c *defaultAMQPClient) ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error {
	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()

	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	return ch.ExchangeDeclare(name, kind, durable, autoDelete, internal, noWait, args)
}

type ListenOptions struct {
	Durable       bool
	AutoDelete    bool
	Exclusive     bool
	AutoAck       bool
	DeliveryLimit int
}

type AMQPListenOptions = func(opts ListenOptions) ListenOptions

func WithDurable(durable bool) AMQPListenOptions {
	return func(opts ListenOptions) ListenOptions {
		opts.Durable = durable
		return opts
	}
}

func WithAutoDelete(autoDelete bool) AMQPListenOptions {
	return func(opts ListenOptions) ListenOptions {
		opts.AutoDelete = autoDelete
		return opts
	}
}

func WithExclusive(exclusive bool) AMQPListenOptions {
	return func(opts ListenOptions) ListenOptions {
		opts.Exclusive = exclusive
		return opts
	}
}

func WithAutoAck(autoAck bool) AMQPListenOptions {
	return func(opts ListenOptions) ListenOptions {
		opts.AutoAck = autoAck
		return opts
	}
}

// Listen binds queueName to exchange and forwards its deliveries. After a
// reconnect the forwarding continues on the new channel; when reconnecting
// fails for good the returned channel is closed.
func (c *defaultAMQPClient) Listen(ctx context.Context, exchange string, routingKey string, queueName string, options ...AMQPListenOptions) (<-chan amqp.Delivery, error) {
	opts := ListenOptions{Durable: true, DeliveryLimit: 10}
	for _, opt := range options {
		opts = opt(opts)
	}

	deliveries, err := c.consume(exchange, routingKey, queueName, opts)
	if err != nil {
		return nil, err
	}

	out := make(chan amqp.Delivery)
	signals := make(chan reconnectSignal, 2)
	c.listenersMu.Lock()
	c.listeners = append(c.listeners, signals)
	c.listenersMu.Unlock()

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case signal := <-signals:
				if signal == signalClosed {
					close(out)
					return
				}
				d, err := c.consume(exchange, routingKey, queueName, opts)
				if err != nil {
					c.logger.Error(err)
					close(out)
					return
				}
				c.logger.Infof("amqp: consuming %s again after reconnect", routingKey)
				deliveries = d
			case delivery, ok := <-deliveries:
				if !ok {
					// the channel died with the connection, wait for the reconnect signal
					deliveries = nil
					continue
				}
				select {
				case out <- delivery:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}

func (c *defaultAMQPClient) consume(exchange string, routingKey string, queueName string, opts ListenOptions) (<-chan amqp.Delivery, error) {
	c.mu.RLock()
	ch := c.consumeChannel
	c.mu.RUnlock()

	if err := ch.ExchangeDeclare(exchange, exchangeKindTopic, opts.Durable, opts.AutoDelete, false, false, nil); err != nil {
		return nil, err
	}

	// a message that keeps failing is dropped after DeliveryLimit redeliveries
	queue, err := ch.QueueDeclare(queueName, opts.Durable, opts.AutoDelete, opts.Exclusive, false, amqp.Table{
		"delivery-limit": opts.DeliveryLimit,
	})
	if err != nil {
		return nil, err
	}

	if err := ch.QueueBind(queue.Name, routingKey, exchange, false, nil); err != nil {
		return nil, err
	}

	return ch.Consume(queue.Name, "", opts.AutoAck, opts.Exclusive, false, false, nil)
}

func (c *defaultAMQPClient) PublishWithContext(ctx context.Context, exchange string, key string, mandatory bool, immediate bool, msg amqp.Publishing) error {
	if c.reconnecting.Load() {
		err := backoff.Retry(func() error {
			if c.reconnecting.Load() {
				return errors.New("amqp: trying to publish during reconnect")
			}
			return nil
		}, backoff.WithContext(newBackoff(), ctx))
		if err != nil {
			return err
		}
	}

	c.mu.RLock()
	ch := c.publishChannel
	c.mu.RUnlock()
	return ch.PublishWithContext(ctx, exchange, key, mandatory, immediate, msg)
}
