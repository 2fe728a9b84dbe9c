package subscription

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/domain"
)

// Client клиент сервиса подписок. Без baseURL работает только по лимитам,
// сохранённым у салона.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента сервиса подписок
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetSubscription получает подписку салона
func (c *Client) GetSubscription(ctx context.Context, salonID int64) (*Subscription, error) {
	url := fmt.Sprintf("%s/internal/salons/%d/subscription", c.baseURL, salonID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, ErrSubscriptionNotFound
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var sub Subscription
	if err := json.NewDecoder(resp.Body).Decode(&sub); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	if !domain.Plan(sub.Plan).IsValid() {
		return nil, fmt.Errorf("%w: unknown plan %q", ErrInvalidResponse, sub.Plan)
	}

	return &sub, nil
}

// GetPlanLimits лимиты тарифа салона с graceful degradation: при
// недоступности сервиса используются лимиты, сохранённые у салона,
// а если их нет, то лимиты по умолчанию для его тарифа
func (c *Client) GetPlanLimits(ctx context.Context, salon *domain.Salon) (domain.PlanLimits, error) {
	if c.baseURL == "" {
		return fallbackLimits(salon), nil
	}

	sub, err := c.GetSubscription(ctx, salon.ID)
	if err != nil {
		if err == ErrSubscriptionNotFound {
			c.log.Warn("Subscription not found for salon_id=%d, using stored limits", salon.ID)
		} else {
			c.log.Error("Subscription service unavailable, applying graceful degradation for salon_id=%d: %v", salon.ID, err)
		}
		return fallbackLimits(salon), nil
	}

	return domain.PlanLimits{
		MaxAppointmentsPerMonth: sub.Limits.MaxAppointmentsPerMonth,
		MaxStaff:                sub.Limits.MaxStaff,
		MaxServices:             sub.Limits.MaxServices,
	}, nil
}

func fallbackLimits(salon *domain.Salon) domain.PlanLimits {
	if salon.Limits != (domain.PlanLimits{}) {
		return salon.Limits
	}
	return domain.DefaultPlanLimits(salon.Plan)
}
