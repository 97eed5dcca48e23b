package report

import (
	"time"

	"github.com/mariia-hub/booking-reports/entity"
)

// KeyUnknown collects records whose booking date cannot be parsed. Partial
// reports beat failed reports, so malformed dates are bucketed, not dropped.
const KeyUnknown = "unknown"

const keyDateLayout = "2006-01-02"

// KeyResolver derives a stable bucket key from a record. Same record, same
// key, always.
type KeyResolver func(r entity.BookingRecord) string

// ResolverFor returns the key resolver for the requested grouping axis.
// Granularity only applies to the time dimension.
func ResolverFor(dim entity.Dimension, g entity.Granularity) KeyResolver {
	switch dim {
	case entity.ByService:
		return func(r entity.BookingRecord) string { return categoryKey(r.ServiceID) }
	case entity.ByProvider:
		return func(r entity.BookingRecord) string { return categoryKey(r.ProviderID) }
	case entity.ByCurrency:
		return func(r entity.BookingRecord) string { return categoryKey(r.Currency) }
	default:
		return func(r entity.BookingRecord) string { return timeKey(r.BookingDate, g) }
	}
}

func categoryKey(v string) string {
	if v == "" {
		return KeyUnknown
	}
	return v
}

func timeKey(raw string, g entity.Granularity) string {
	t, ok := entity.ParseBookingDate(raw)
	if !ok {
		return KeyUnknown
	}
	return bucketStart(t, g).Format(keyDateLayout)
}

// bucketStart truncates t to the start of its bucket. Week buckets start on
// Monday 00:00, month buckets on the first of the month.
func bucketStart(t time.Time, g entity.Granularity) time.Time {
	loc := t.Location()
	switch g {
	case entity.GranularityWeek:
		weekday := int(t.Weekday())
		daysBack := (weekday + 6) % 7
		return time.Date(t.Year(), t.Month(), t.Day()-daysBack, 0, 0, 0, 0, loc)
	case entity.GranularityMonth:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, loc)
	default:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	}
}

func bucketNext(t time.Time, g entity.Granularity) time.Time {
	switch g {
	case entity.GranularityWeek:
		return t.AddDate(0, 0, 7)
	case entity.GranularityMonth:
		return t.AddDate(0, 1, 0)
	default:
		return t.AddDate(0, 0, 1)
	}
}
