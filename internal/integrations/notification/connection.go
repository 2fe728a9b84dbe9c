package notification

import (
	"context"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	minReconnectDelay = time.Second
	maxReconnectDelay = 30 * time.Second
)

// Connection соединение с RabbitMQ, которое восстанавливается после обрыва.
// Реализует Channel; пока идёт переподключение, публикация возвращает ErrNotConnected.
type Connection struct {
	url   string
	queue string
	log   Logger

	mu   sync.RWMutex
	conn *amqp.Connection
	ch   *amqp.Channel

	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// Dial подключается к брокеру, объявляет durable очередь и следит за соединением
func Dial(url, queue string, log Logger) (*Connection, error) {
	c := &Connection{
		url:   url,
		queue: queue,
		log:   log,
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	if err := c.connect(); err != nil {
		return nil, err
	}
	go c.watch()
	return c, nil
}

func (c *Connection) connect() error {
	conn, err := amqp.Dial(c.url)
	if err != nil {
		return fmt.Errorf("%w: dial: %v", ErrNotConnected, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("%w: channel: %v", ErrNotConnected, err)
	}

	if _, err := ch.QueueDeclare(c.queue, true, false, false, false, nil); err != nil {
		conn.Close()
		return fmt.Errorf("%w: declare queue %s: %v", ErrNotConnected, c.queue, err)
	}

	c.mu.Lock()
	c.conn, c.ch = conn, ch
	c.mu.Unlock()
	return nil
}

// PublishWithContext публикует через текущий канал
func (c *Connection) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	c.mu.RLock()
	ch := c.ch
	c.mu.RUnlock()

	if ch == nil {
		return ErrNotConnected
	}
	return ch.PublishWithContext(ctx, exchange, key, mandatory, immediate, msg)
}

func (c *Connection) watch() {
	defer close(c.done)

	for {
		c.mu.RLock()
		conn, ch := c.conn, c.ch
		c.mu.RUnlock()

		connClosed := conn.NotifyClose(make(chan *amqp.Error, 1))
		chClosed := ch.NotifyClose(make(chan *amqp.Error, 1))

		var reason *amqp.Error
		select {
		case <-c.stop:
			return
		case reason = <-connClosed:
		case reason = <-chClosed:
		}

		c.mu.Lock()
		c.ch = nil
		c.mu.Unlock()
		conn.Close()
		c.log.Warn("Notification: RabbitMQ connection lost: %v", reason)

		if !c.reconnect() {
			return
		}
		c.log.Info("Notification: RabbitMQ connection restored")
	}
}

// reconnect повторяет подключение с растущей задержкой; false - соединение закрыто
func (c *Connection) reconnect() bool {
	delay := minReconnectDelay
	for {
		select {
		case <-c.stop:
			return false
		case <-time.After(delay):
		}

		err := c.connect()
		if err == nil {
			return true
		}
		c.log.Warn("Notification: reconnect failed, next attempt in %s: %v", nextReconnectDelay(delay), err)
		delay = nextReconnectDelay(delay)
	}
}

func nextReconnectDelay(delay time.Duration) time.Duration {
	delay *= 2
	if delay > maxReconnectDelay {
		return maxReconnectDelay
	}
	return delay
}

// Close останавливает переподключение и закрывает соединение
func (c *Connection) Close() error {
	c.once.Do(func() { close(c.stop) })
	<-c.done

	c.mu.Lock()
	defer c.mu.Unlock()
	c.ch = nil
	if c.conn == nil || c.conn.IsClosed() {
		return nil
	}
	return c.conn.Close()
}
