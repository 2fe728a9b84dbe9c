package delete_staff

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/api/middleware"
	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/service/staff"
	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/service/staff/models"
	"github.com/Trio-Ads/saloneo-deploy-sub005/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Delete(ctx context.Context, salonID, id int64, force bool) (*models.DeleteStaffResponse, error) {
	args := m.Called(ctx, salonID, id, force)
	if resp, ok := args.Get(0).(*models.DeleteStaffResponse); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}

func serve(h *Handler, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/staff/{staffId}", h.Handle).Methods(http.MethodDelete)

	req := httptest.NewRequest(http.MethodDelete, target, nil)
	req = req.WithContext(middleware.WithSalonID(req.Context(), 7))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandler(t *testing.T) {
	tests := []struct {
		name   string
		target string
		force  bool
		resp   *models.DeleteStaffResponse
		err    error
		status int
	}{
		{name: "deleted", target: "/staff/3", resp: &models.DeleteStaffResponse{ID: 3}, status: http.StatusOK},
		{name: "has appointments", target: "/staff/3", err: staff.ErrStaffHasAppointments, status: http.StatusConflict},
		{name: "force", target: "/staff/3?force=true", force: true, resp: &models.DeleteStaffResponse{ID: 3, CancelledAppointmentIDs: []int64{8}}, status: http.StatusOK},
		{name: "not found", target: "/staff/3", err: staff.ErrStaffNotFound, status: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			if tt.resp != nil {
				svc.On("Delete", mock.Anything, int64(7), int64(3), tt.force).Return(tt.resp, nil)
			} else {
				svc.On("Delete", mock.Anything, int64(7), int64(3), tt.force).Return(nil, tt.err)
			}

			rec := serve(NewHandler(svc, logger.Nop()), tt.target)

			assert.Equal(t, tt.status, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestHandler_InvalidForce(t *testing.T) {
	svc := &mockService{}

	rec := serve(NewHandler(svc, logger.Nop()), "/staff/3?force=maybe")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
