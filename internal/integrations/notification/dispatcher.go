package notification

import (
	"context"
	"sync"
	"time"

	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/domain"
)

type pending struct {
	appointment domain.Appointment
	occurredAt  time.Time
}

// Dispatcher принимает события в буфер и публикует их в отдельной горутине.
// Publish не ждёт брокер; при переполненном буфере событие отбрасывается.
type Dispatcher struct {
	publisher *Publisher
	log       Logger

	mu     sync.RWMutex
	closed bool
	queue  chan pending
	done   chan struct{}
}

// NewDispatcher создает диспетчер и запускает горутину отправки
func NewDispatcher(publisher *Publisher, bufferSize int, log Logger) *Dispatcher {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	d := &Dispatcher{
		publisher: publisher,
		log:       log,
		queue:     make(chan pending, bufferSize),
		done:      make(chan struct{}),
	}
	go d.loop()
	return d
}

// Publish ставит событие о текущем статусе записи в очередь отправки
func (d *Dispatcher) Publish(_ context.Context, a *domain.Appointment) error {
	if _, ok := eventTypes[a.Status]; !ok {
		return nil
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return ErrClosed
	}

	select {
	case d.queue <- pending{appointment: *a, occurredAt: time.Now()}:
		return nil
	default:
		d.log.Warn("Notification: buffer full, event dropped for appointment id=%d status=%s", a.ID, a.Status)
		return ErrBufferFull
	}
}

// Close прекращает приём событий и ждёт отправки буфера до отмены ctx
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		d.log.Warn("Notification: %d events not sent before shutdown", len(d.queue))
		return ctx.Err()
	}
}

func (d *Dispatcher) loop() {
	defer close(d.done)

	for p := range d.queue {
		if err := d.publisher.publish(context.Background(), &p.appointment, p.occurredAt); err != nil {
			d.log.Error("Notification: %v", err)
		}
	}
}
