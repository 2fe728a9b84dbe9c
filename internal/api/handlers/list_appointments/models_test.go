package list_appointments

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToServiceRequest(t *testing.T) {
	query := url.Values{
		"staffId": {"4"},
		"from":    {"2025-06-02"},
		"to":      {"2025-06-06"},
		"status":  {"scheduled,confirmed", " completed "},
		"limit":   {"50"},
		"offset":  {"100"},
	}

	req, err := ToServiceRequest(7, query)
	require.NoError(t, err)

	assert.Equal(t, int64(7), req.SalonID)
	require.NotNil(t, req.StaffMemberID)
	assert.Equal(t, int64(4), *req.StaffMemberID)
	require.NotNil(t, req.StartDate)
	assert.Equal(t, time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), *req.StartDate)
	require.NotNil(t, req.EndDate)
	assert.Equal(t, time.Date(2025, 6, 6, 0, 0, 0, 0, time.UTC), *req.EndDate)
	assert.Equal(t, []string{"scheduled", "confirmed", "completed"}, req.Statuses)
	assert.Equal(t, 50, req.Limit)
	assert.Equal(t, 100, req.Offset)
}

func TestToServiceRequest_Empty(t *testing.T) {
	req, err := ToServiceRequest(7, url.Values{})
	require.NoError(t, err)

	assert.Nil(t, req.StaffMemberID)
	assert.Nil(t, req.StartDate)
	assert.Nil(t, req.EndDate)
	assert.Empty(t, req.Statuses)
	assert.Zero(t, req.Limit)
}

func TestToServiceRequest_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		query url.Values
	}{
		{name: "staffId not a number", query: url.Values{"staffId": {"abc"}}},
		{name: "staffId zero", query: url.Values{"staffId": {"0"}}},
		{name: "from format", query: url.Values{"from": {"02.06.2025"}}},
		{name: "to format", query: url.Values{"to": {"2025-13-01"}}},
		{name: "limit too large", query: url.Values{"limit": {"501"}}},
		{name: "negative offset", query: url.Values{"offset": {"-1"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ToServiceRequest(7, tt.query)
			assert.Error(t, err)
		})
	}
}
