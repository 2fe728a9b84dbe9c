package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestService_WithinBookingWindow(t *testing.T) {
	now := time.Date(2025, 6, 2, 14, 0, 0, 0, time.UTC)
	day := func(offset, hh int) time.Time { return time.Date(2025, 6, 2+offset, hh, 0, 0, 0, time.UTC) }

	tests := []struct {
		name     string
		min, max int
		start    time.Time
		want     bool
	}{
		{name: "past today", min: 0, max: 0, start: day(0, 10), want: false},
		{name: "exactly now", min: 0, max: 0, start: now, want: false},
		{name: "later today", min: 0, max: 0, start: day(0, 15), want: true},
		{name: "min one day blocks today", min: 1, max: 0, start: day(0, 15), want: false},
		{name: "min one day allows tomorrow", min: 1, max: 0, start: day(1, 9), want: true},
		{name: "max bound inclusive", min: 0, max: 7, start: day(7, 9), want: true},
		{name: "beyond max", min: 0, max: 7, start: day(8, 9), want: false},
		{name: "unlimited max", min: 0, max: 0, start: day(300, 9), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &Service{MinAdvanceDays: tt.min, MaxAdvanceDays: tt.max}
			assert.Equal(t, tt.want, svc.WithinBookingWindow(tt.start, now))
		})
	}
}

func TestService_Validate(t *testing.T) {
	valid := func() *Service {
		return &Service{SalonID: 1, Name: "Coupe", DurationMinutes: 45, BufferAfterMinutes: 10, MaxAdvanceDays: 30}
	}

	assert.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(s *Service)
	}{
		{name: "zero duration", mutate: func(s *Service) { s.DurationMinutes = 0 }},
		{name: "negative buffer", mutate: func(s *Service) { s.BufferBeforeMinutes = -5 }},
		{name: "empty name", mutate: func(s *Service) { s.Name = "  " }},
		{name: "max below min", mutate: func(s *Service) { s.MinAdvanceDays = 10; s.MaxAdvanceDays = 5 }},
		{name: "no salon", mutate: func(s *Service) { s.SalonID = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := valid()
			tt.mutate(svc)
			assert.ErrorIs(t, svc.Validate(), ErrValidation)
		})
	}
}
