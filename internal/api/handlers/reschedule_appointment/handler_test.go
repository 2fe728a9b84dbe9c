package reschedule_appointment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/api/middleware"
	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/domain"
	rescheduleAppointment "github.com/Trio-Ads/saloneo-deploy-sub005/internal/usecase/reschedule_appointment"
	"github.com/Trio-Ads/saloneo-deploy-sub005/pkg/logger"
	"github.com/Trio-Ads/saloneo-deploy-sub005/pkg/ptr"
	"github.com/Trio-Ads/saloneo-deploy-sub005/pkg/types"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *rescheduleAppointment.Request) (*rescheduleAppointment.Response, error) {
	args := m.Called(ctx, req)
	if resp, ok := args.Get(0).(*rescheduleAppointment.Response); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}

func serve(h *Handler, target, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/appointments/{appointmentId}/reschedule", h.Handle).Methods(http.MethodPatch)

	req := httptest.NewRequest(http.MethodPatch, target, strings.NewReader(body))
	req = req.WithContext(middleware.WithSalonID(req.Context(), 7))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Rescheduled(t *testing.T) {
	uc := &mockUseCase{}
	date := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)
	result := &rescheduleAppointment.Response{
		Original: &domain.Appointment{
			ID: 10, SalonID: 7, StaffMemberID: 3, Status: domain.StatusRescheduled,
			Date: date.AddDate(0, 0, -1), StartTime: types.TimeString("10:00"), EndTime: types.TimeString("11:00"),
			SupersededByID: ptr.Ptr(int64(11)), Version: 2,
		},
		Appointment: &domain.Appointment{
			ID: 11, SalonID: 7, StaffMemberID: 5, Status: domain.StatusScheduled,
			Date: date, StartTime: types.TimeString("14:00"), EndTime: types.TimeString("15:00"),
			RescheduledFromID: ptr.Ptr(int64(10)), Version: 1,
		},
	}
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *rescheduleAppointment.Request) bool {
		return req.SalonID == 7 && req.AppointmentID == 10 &&
			req.StaffMemberID != nil && *req.StaffMemberID == 5 &&
			req.Date.Equal(date) && req.StartTime == types.TimeString("14:00") &&
			req.ExpectedVersion != nil && *req.ExpectedVersion == 1
	})).Return(result, nil)

	rec := serve(NewHandler(uc, logger.Nop()), "/appointments/10/reschedule",
		`{"staffId":5,"date":"2025-06-03","startTime":"14:00","expectedVersion":1}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp RescheduleResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(11), resp.Appointment.ID)
	assert.Equal(t, "scheduled", resp.Appointment.Status)
	assert.Equal(t, "rescheduled", resp.Original.Status)
	require.NotNil(t, resp.Original.SupersededByID)
	assert.Equal(t, int64(11), *resp.Original.SupersededByID)
	uc.AssertExpectations(t)
}

func TestHandler_BadRequest(t *testing.T) {
	tests := []struct {
		name   string
		target string
		body   string
	}{
		{name: "appointment id", target: "/appointments/abc/reschedule", body: `{"date":"2025-06-03","startTime":"14:00"}`},
		{name: "missing date", target: "/appointments/10/reschedule", body: `{"startTime":"14:00"}`},
		{name: "date format", target: "/appointments/10/reschedule", body: `{"date":"03.06.2025","startTime":"14:00"}`},
		{name: "time format", target: "/appointments/10/reschedule", body: `{"date":"2025-06-03","startTime":"14:75"}`},
		{name: "unknown field", target: "/appointments/10/reschedule", body: `{"date":"2025-06-03","startTime":"14:00","room":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}

			rec := serve(NewHandler(uc, logger.Nop()), tt.target, tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
		})
	}
}

func TestHandler_DomainErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{name: "not found", err: rescheduleAppointment.ErrAppointmentNotFound, status: http.StatusNotFound, code: "not_found"},
		{name: "conflict", err: &domain.ConflictError{Reason: domain.ConflictOverlapsAppointment, ConflictingID: 12}, status: http.StatusConflict, code: "conflict"},
		{name: "terminal", err: &domain.TransitionError{From: domain.StatusCancelled, To: domain.StatusRescheduled}, status: http.StatusUnprocessableEntity, code: "invalid_state_transition"},
		{name: "stale", err: rescheduleAppointment.ErrVersionConflict, status: http.StatusConflict, code: "stale_write"},
		{name: "unavailable", err: rescheduleAppointment.ErrUnavailable, status: http.StatusServiceUnavailable, code: "unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := serve(NewHandler(uc, logger.Nop()), "/appointments/10/reschedule", `{"date":"2025-06-03","startTime":"14:00"}`)

			assert.Equal(t, tt.status, rec.Code)
			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body["code"])
		})
	}
}
