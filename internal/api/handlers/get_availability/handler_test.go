package get_availability

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/api/middleware"
	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/domain"
	getAvailability "github.com/Trio-Ads/saloneo-deploy-sub005/internal/usecase/get_availability"
	"github.com/Trio-Ads/saloneo-deploy-sub005/pkg/logger"
	"github.com/Trio-Ads/saloneo-deploy-sub005/pkg/types"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *getAvailability.Request) (*getAvailability.Response, error) {
	args := m.Called(ctx, req)
	if resp, ok := args.Get(0).(*getAvailability.Response); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}

func serve(h *Handler, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/staff/{staffId}/availability", h.Handle).Methods(http.MethodGet)

	req := httptest.NewRequest(http.MethodGet, target, nil)
	req = req.WithContext(middleware.WithSalonID(req.Context(), 7))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandler_OK(t *testing.T) {
	monday := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *getAvailability.Request) bool {
		return req.SalonID == 7 && req.StaffMemberID == 3 && req.ServiceID == 5 &&
			req.From.Equal(monday) && req.To.Equal(monday) && req.Origin == domain.OriginOnline
	})).Return(&getAvailability.Response{
		StaffMemberID:   3,
		ServiceID:       5,
		DurationMinutes: 60,
		StepMinutes:     15,
		From:            monday,
		To:              monday,
		Days: []domain.DayAvailability{
			{Date: monday, StartTimes: []types.TimeString{"09:10", "09:25"}},
		},
	}, nil)

	rec := serve(NewHandler(uc, logger.Nop()), "/staff/3/availability?serviceId=5&from=2025-06-02&to=2025-06-02")

	require.Equal(t, http.StatusOK, rec.Code)
	var body AvailabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Days, 1)
	assert.Equal(t, "2025-06-02", body.Days[0].Date)
	assert.Equal(t, []string{"09:10", "09:25"}, body.Days[0].StartTimes)
	uc.AssertExpectations(t)
}

func TestHandler_InvalidParams(t *testing.T) {
	targets := []string{
		"/staff/abc/availability?serviceId=5&from=2025-06-02&to=2025-06-02",
		"/staff/3/availability?from=2025-06-02&to=2025-06-02",
		"/staff/3/availability?serviceId=5&from=2025-06-02",
		"/staff/3/availability?serviceId=5&from=2025-06-02&to=2025-06-02&source=phone",
	}

	for _, target := range targets {
		uc := &mockUseCase{}
		rec := serve(NewHandler(uc, logger.Nop()), target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
		uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
	}
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{err: getAvailability.ErrRangeTooLong, status: http.StatusBadRequest},
		{err: getAvailability.ErrStaffNotFound, status: http.StatusNotFound},
		{err: getAvailability.ErrUnavailable, status: http.StatusServiceUnavailable},
		{err: getAvailability.ErrInternal, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		uc := &mockUseCase{}
		uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

		rec := serve(NewHandler(uc, logger.Nop()), "/staff/3/availability?serviceId=5&from=2025-06-02&to=2025-06-08")
		assert.Equal(t, tt.status, rec.Code, tt.err.Error())
	}
}
