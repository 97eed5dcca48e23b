package report

import (
	"testing"

	"github.com/mariia-hub/booking-reports/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func testRecord(date string) entity.BookingRecord {
	return entity.BookingRecord{
		ID:          "6f1e0c0a-9b2d-4f3e-8a6b-1c2d3e4f5a6b",
		ServiceID:   "a1b2c3d4-0000-0000-0000-000000000001",
		ProviderID:  "a1b2c3d4-0000-0000-0000-000000000002",
		CustomerID:  "a1b2c3d4-0000-0000-0000-000000000003",
		BookingDate: date,
		Status:      entity.Completed,
		TotalAmount: decimal.NewFromInt(100),
		Currency:    "PLN",
	}
}

func TestTimeKeyDay(t *testing.T) {
	resolve := ResolverFor(entity.ByTime, entity.GranularityDay)

	assert.Equal(t, "2024-03-15", resolve(testRecord("2024-03-15T10:30:00Z")))
	// time of day never splits a day bucket
	assert.Equal(t, "2024-03-15", resolve(testRecord("2024-03-15T23:59:59Z")))
	assert.Equal(t, "2024-03-15", resolve(testRecord("2024-03-15")))
}

func TestTimeKeyWeekNormalizesToMonday(t *testing.T) {
	resolve := ResolverFor(entity.ByTime, entity.GranularityWeek)

	// 2024-03-15 is a Friday; its week starts Monday 2024-03-11
	assert.Equal(t, "2024-03-11", resolve(testRecord("2024-03-15T10:30:00Z")))
	// Sunday still belongs to the Monday-led week
	assert.Equal(t, "2024-03-11", resolve(testRecord("2024-03-17T08:00:00Z")))
	// Monday maps to itself
	assert.Equal(t, "2024-03-11", resolve(testRecord("2024-03-11T00:00:00Z")))
}

func TestTimeKeyMonthNormalizesToFirst(t *testing.T) {
	resolve := ResolverFor(entity.ByTime, entity.GranularityMonth)

	assert.Equal(t, "2024-03-01", resolve(testRecord("2024-03-15T10:30:00Z")))
	assert.Equal(t, "2024-03-01", resolve(testRecord("2024-03-31T23:00:00Z")))
}

func TestTimeKeyMalformedDateFallsBackToUnknown(t *testing.T) {
	for _, g := range []entity.Granularity{entity.GranularityDay, entity.GranularityWeek, entity.GranularityMonth} {
		resolve := ResolverFor(entity.ByTime, g)
		assert.Equal(t, KeyUnknown, resolve(testRecord("not-a-date")))
		assert.Equal(t, KeyUnknown, resolve(testRecord("")))
	}
}

func TestResolverIsPure(t *testing.T) {
	resolve := ResolverFor(entity.ByTime, entity.GranularityWeek)
	r := testRecord("2024-03-15T10:30:00Z")
	first := resolve(r)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, resolve(r))
	}
}

func TestCategoryKeys(t *testing.T) {
	r := testRecord("2024-03-15T10:30:00Z")

	assert.Equal(t, r.ServiceID, ResolverFor(entity.ByService, 0)(r))
	assert.Equal(t, r.ProviderID, ResolverFor(entity.ByProvider, 0)(r))
	assert.Equal(t, "PLN", ResolverFor(entity.ByCurrency, 0)(r))

	empty := testRecord("2024-03-15T10:30:00Z")
	empty.ServiceID = ""
	assert.Equal(t, KeyUnknown, ResolverFor(entity.ByService, 0)(empty))
}
