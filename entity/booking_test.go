package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBookingDate(t *testing.T) {
	cases := []struct {
		raw  string
		ok   bool
		want string
	}{
		{"2024-03-15T10:30:00Z", true, "2024-03-15"},
		{"2024-03-15 10:30:00", true, "2024-03-15"},
		{"2024-03-15", true, "2024-03-15"},
		{"", false, ""},
		{"not-a-date", false, ""},
		{"15/03/2024", false, ""},
	}
	for _, c := range cases {
		got, ok := ParseBookingDate(c.raw)
		assert.Equal(t, c.ok, ok, "raw %q", c.raw)
		if c.ok {
			assert.Equal(t, c.want, got.Format("2006-01-02"), "raw %q", c.raw)
		}
	}
}

func validRequest() ReportRequest {
	return ReportRequest{
		Name: "bookings-by-day",
		Period: TimeRange{
			From: time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC),
			To:   time.Date(2024, 3, 18, 0, 0, 0, 0, time.UTC),
		},
		Dimension:   ByTime,
		Granularity: GranularityDay,
	}
}

func TestReportRequestValidate(t *testing.T) {
	req := validRequest()
	require.NoError(t, req.Validate())

	req = validRequest()
	req.Name = ""
	assert.Error(t, req.Validate())

	req = validRequest()
	req.Period.To = req.Period.From
	assert.Error(t, req.Validate())

	req = validRequest()
	req.Dimension = "galaxy"
	assert.Error(t, req.Validate())

	req = validRequest()
	req.Granularity = 0
	assert.Error(t, req.Validate())

	// granularity is only meaningful on the time axis
	req = validRequest()
	req.Dimension = ByService
	req.Granularity = 0
	assert.NoError(t, req.Validate())

	req = validRequest()
	req.Filter.ServiceID = "not-a-uuid"
	assert.Error(t, req.Validate())

	req = validRequest()
	req.Filter.ServiceID = "8b5a9c1e-2f3d-4a5b-8c6d-7e8f9a0b1c2d"
	assert.NoError(t, req.Validate())

	req = validRequest()
	req.Filter.Currency = "PLN"
	assert.NoError(t, req.Validate())

	req = validRequest()
	req.Filter.Currency = "PLNX"
	assert.Error(t, req.Validate())

	req = validRequest()
	bad := TimeRange{From: req.Period.From, To: req.Period.From}
	req.ComparePeriod = &bad
	assert.Error(t, req.Validate())
}

func TestBucketDistinctCustomers(t *testing.T) {
	b := NewBucket("2024-03-15")
	assert.Equal(t, 0, b.DistinctCustomers())

	b.CustomerIDs["c1"] = struct{}{}
	b.CustomerIDs["c1"] = struct{}{}
	b.CustomerIDs["c2"] = struct{}{}
	assert.Equal(t, 2, b.DistinctCustomers())
}
