// Package notification передаёт события записей сервису уведомлений через
// очередь RabbitMQ. Доставка SMS и email выполняется за пределами ядра.
package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/domain"
)

// Publisher публикует события записей в очередь
type Publisher struct {
	ch      Channel
	queue   string
	timeout time.Duration
	log     Logger
}

// NewPublisher создает издателя событий
func NewPublisher(ch Channel, queue string, timeout time.Duration, log Logger) *Publisher {
	return &Publisher{
		ch:      ch,
		queue:   queue,
		timeout: timeout,
		log:     log,
	}
}

// Publish публикует событие о текущем статусе записи. Для статусов без
// уведомления клиента ничего не отправляет.
func (p *Publisher) Publish(ctx context.Context, a *domain.Appointment) error {
	return p.publish(ctx, a, time.Now())
}

func (p *Publisher) publish(ctx context.Context, a *domain.Appointment, occurredAt time.Time) error {
	eventType, ok := eventTypes[a.Status]
	if !ok {
		return nil
	}

	event := NewEvent(eventType, a, occurredAt)
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	err = p.ch.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.ID,
		Type:         string(event.Type),
		Timestamp:    event.OccurredAt,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("%w: appointment id=%d type=%s: %v", ErrPublish, a.ID, eventType, err)
	}

	p.log.Info("Notification: published %s for appointment id=%d", eventType, a.ID)
	return nil
}

// NewEvent строит событие для записи
func NewEvent(eventType EventType, a *domain.Appointment, now time.Time) Event {
	return Event{
		ID:                uuid.NewString(),
		Type:              eventType,
		AppointmentID:     a.ID,
		SalonID:           a.SalonID,
		ClientID:          a.ClientID,
		StaffMemberID:     a.StaffMemberID,
		ServiceID:         a.ServiceID,
		Date:              a.Date.Format(domain.DateFormat),
		StartTime:         a.StartTime.String(),
		EndTime:           a.EndTime.String(),
		Status:            string(a.Status),
		RescheduledFromID: a.RescheduledFromID,
		OccurredAt:        now.UTC(),
	}
}

// Nop издатель, который ничего не отправляет (уведомления отключены)
type Nop struct{}

// Publish ничего не делает
func (Nop) Publish(context.Context, *domain.Appointment) error { return nil }
