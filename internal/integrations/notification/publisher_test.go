package notification

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/domain"
	"github.com/Trio-Ads/saloneo-deploy-sub005/pkg/logger"
)

type fakeChannel struct {
	key      string
	messages []amqp.Publishing
	err      error
}

func (f *fakeChannel) PublishWithContext(_ context.Context, _, key string, _, _ bool, msg amqp.Publishing) error {
	if f.err != nil {
		return f.err
	}
	f.key = key
	f.messages = append(f.messages, msg)
	return nil
}

func sample(status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{
		ID:            42,
		SalonID:       1,
		ClientID:      9,
		StaffMemberID: 7,
		ServiceID:     3,
		Date:          time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		StartTime:     "10:00",
		EndTime:       "11:00",
		Status:        status,
	}
}

func TestPublish_Scheduled(t *testing.T) {
	ch := &fakeChannel{}
	p := NewPublisher(ch, "appointment_events", time.Second, logger.Nop())

	require.NoError(t, p.Publish(context.Background(), sample(domain.StatusScheduled)))
	require.Len(t, ch.messages, 1)
	assert.Equal(t, "appointment_events", ch.key)

	msg := ch.messages[0]
	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, string(EventScheduled), msg.Type)
	_, err := uuid.Parse(msg.MessageId)
	assert.NoError(t, err)

	var event Event
	require.NoError(t, json.Unmarshal(msg.Body, &event))
	assert.Equal(t, int64(42), event.AppointmentID)
	assert.Equal(t, "2025-06-02", event.Date)
	assert.Equal(t, "10:00", event.StartTime)
	assert.Equal(t, msg.MessageId, event.ID)
}

func TestPublish_SkipsSilentStatuses(t *testing.T) {
	ch := &fakeChannel{}
	p := NewPublisher(ch, "appointment_events", time.Second, logger.Nop())

	for _, s := range []domain.AppointmentStatus{domain.StatusCompleted, domain.StatusNoShow, domain.StatusRescheduled} {
		require.NoError(t, p.Publish(context.Background(), sample(s)))
	}
	assert.Empty(t, ch.messages)
}

func TestPublish_Error(t *testing.T) {
	ch := &fakeChannel{err: errors.New("channel closed")}
	p := NewPublisher(ch, "appointment_events", time.Second, logger.Nop())

	err := p.Publish(context.Background(), sample(domain.StatusCancelled))
	assert.ErrorIs(t, err, ErrPublish)
}
