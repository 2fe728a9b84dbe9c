package subscription

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/domain"
	"github.com/Trio-Ads/saloneo-deploy-sub005/pkg/logger"
)

func TestGetPlanLimits_FromService(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/internal/salons/5/subscription", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"salonId":5,"plan":"PRO","limits":{"maxAppointmentsPerMonth":2000,"maxStaff":20,"maxServices":100}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, logger.Nop())
	limits, err := c.GetPlanLimits(context.Background(), &domain.Salon{ID: 5, Plan: domain.PlanFree})

	require.NoError(t, err)
	assert.Equal(t, domain.PlanLimits{MaxAppointmentsPerMonth: 2000, MaxStaff: 20, MaxServices: 100}, limits)
}

func TestGetPlanLimits_GracefulDegradation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, logger.Nop())

	stored := domain.PlanLimits{MaxAppointmentsPerMonth: 10, MaxStaff: 1, MaxServices: 1}
	limits, err := c.GetPlanLimits(context.Background(), &domain.Salon{ID: 5, Plan: domain.PlanFree, Limits: stored})
	require.NoError(t, err)
	assert.Equal(t, stored, limits)

	limits, err = c.GetPlanLimits(context.Background(), &domain.Salon{ID: 5, Plan: domain.PlanFree})
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultPlanLimits(domain.PlanFree), limits)
}

func TestGetSubscription_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/internal/salons/1/subscription":
			w.WriteHeader(http.StatusNotFound)
		default:
			_, _ = w.Write([]byte(`{"plan":"GOLD"}`))
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, logger.Nop())

	_, err := c.GetSubscription(context.Background(), 1)
	assert.ErrorIs(t, err, ErrSubscriptionNotFound)

	_, err = c.GetSubscription(context.Background(), 2)
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestGetPlanLimits_NoBaseURL(t *testing.T) {
	c := NewClient("", time.Second, logger.Nop())

	limits, err := c.GetPlanLimits(context.Background(), &domain.Salon{ID: 1, Plan: domain.PlanEnterprise})
	require.NoError(t, err)
	assert.Equal(t, domain.PlanLimits{}, limits)
}
